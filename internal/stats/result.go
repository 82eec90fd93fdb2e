package stats

import (
	"fmt"
	"io"

	"github.com/verte-zerg/typecore/internal/model"
)

// RenderResult prints a summary of a finished session.
func RenderResult(w io.Writer, title string, s model.Stats) error {
	rank := RankFor(s.WPM)
	if _, err := fmt.Fprintf(w, "%s\n", title); err != nil {
		return err
	}
	rows := [][]string{
		{"Speed", fmt.Sprintf("%d WPM", s.WPM)},
		{"Accuracy", fmt.Sprintf("%d%%", s.Accuracy)},
		{"Characters/min", fmt.Sprintf("%d", s.CPM)},
		{"Errors", fmt.Sprintf("%d", s.Errors)},
		{"Characters", fmt.Sprintf("%d", s.TotalChars)},
		{"Time", FormatSeconds(s.ElapsedSeconds)},
		{"Rank", rank.Title},
	}
	for _, line := range (Table{Rows: rows, RightAlign: map[int]bool{1: true}}).Lines() {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// FormatSeconds renders seconds as m:ss.
func FormatSeconds(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
