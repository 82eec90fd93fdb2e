package stats

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Table lays out rows in columns aligned by terminal display width, so CJK
// titles line up with ASCII ones.
type Table struct {
	Headers    []string
	Rows       [][]string
	RightAlign map[int]bool
	// MaxWidth truncates cells of a column with an ellipsis.
	MaxWidth map[int]int
}

// Lines renders the table. A header row is followed by a dashed rule.
func (t Table) Lines() []string {
	cells := make([][]string, 0, len(t.Rows)+1)
	if len(t.Headers) > 0 {
		cells = append(cells, t.Headers)
	}
	cells = append(cells, t.Rows...)

	cols := 0
	for _, row := range cells {
		if len(row) > cols {
			cols = len(row)
		}
	}
	if cols == 0 {
		return nil
	}

	clipped := make([][]string, len(cells))
	widths := make([]int, cols)
	for r, row := range cells {
		clipped[r] = make([]string, cols)
		for c := 0; c < cols; c++ {
			if c < len(row) {
				clipped[r][c] = t.clip(c, row[c])
			}
			if w := runewidth.StringWidth(clipped[r][c]); w > widths[c] {
				widths[c] = w
			}
		}
	}

	lines := make([]string, 0, len(clipped)+1)
	for r, row := range clipped {
		lines = append(lines, t.formatRow(row, widths))
		if r == 0 && len(t.Headers) > 0 {
			rule := make([]string, cols)
			for c, w := range widths {
				rule[c] = strings.Repeat("-", w)
			}
			lines = append(lines, strings.Join(rule, " "))
		}
	}
	return lines
}

func (t Table) clip(col int, value string) string {
	limit, ok := t.MaxWidth[col]
	if !ok || limit <= 0 {
		return value
	}
	return runewidth.Truncate(value, limit, "…")
}

func (t Table) formatRow(row []string, widths []int) string {
	parts := make([]string, len(widths))
	for c, w := range widths {
		if t.RightAlign[c] {
			parts[c] = runewidth.FillLeft(row[c], w)
		} else {
			parts[c] = runewidth.FillRight(row[c], w)
		}
	}
	return strings.Join(parts, " ")
}
