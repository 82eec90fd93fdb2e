package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

type cellState int

const (
	cellPending cellState = iota
	cellCurrentWord
	cellCorrect
	cellIncorrect
)

// wrongSpace marks a target space that received another character.
const wrongSpace = '•'

type cell struct {
	r          rune
	state      cellState
	cursor     bool
	width      int
	isSpace    bool
	breakAfter bool
}

func (c cell) render() string {
	var style lipgloss.Style
	switch c.state {
	case cellCorrect:
		style = correctStyle
	case cellIncorrect:
		style = incorrectStyle
	case cellCurrentWord:
		style = currentWordStyle
	default:
		style = pendingStyle
	}
	if c.cursor {
		style = style.Underline(true)
	}
	return style.Render(string(c.r))
}

// Closing punctuation never starts a line.
var noLineStart = map[rune]bool{
	'，': true, '。': true, '、': true, '；': true, '：': true,
	'！': true, '？': true, '）': true, '》': true, '」': true, '』': true,
	',': true, '.': true, ';': true, ':': true, '!': true, '?': true,
}

func buildCells(targetRunes, inputRunes []rune, cursorIndex int) []cell {
	current, hasCurrent := wordAt(targetRunes, cursorIndex)

	out := make([]cell, 0, len(targetRunes))
	for i, target := range targetRunes {
		c := cell{r: target, state: cellPending, isSpace: target == ' '}
		if i < len(inputRunes) {
			switch {
			case inputRunes[i] == target:
				c.state = cellCorrect
			case target == ' ':
				c.r = wrongSpace
				c.state = cellIncorrect
			default:
				c.state = cellIncorrect
			}
		} else if hasCurrent && !c.isSpace && i >= current.start && i < current.end {
			c.state = cellCurrentWord
		}
		c.cursor = i == cursorIndex && i >= len(inputRunes)
		c.width = runewidth.RuneWidth(c.r)
		c.breakAfter = c.isSpace || (runewidth.RuneWidth(target) > 1 && !nextIsClosing(targetRunes, i))
		out = append(out, c)
	}
	return out
}

func nextIsClosing(runes []rune, i int) bool {
	return i+1 < len(runes) && noLineStart[runes[i+1]]
}

type wordRange struct {
	start int
	end   int
}

// wordAt returns the word under the cursor. Spaces separate words and every
// wide character is a word of its own.
func wordAt(targetRunes []rune, cursorIndex int) (wordRange, bool) {
	if cursorIndex < 0 || cursorIndex >= len(targetRunes) {
		return wordRange{}, false
	}
	if targetRunes[cursorIndex] == ' ' {
		cursorIndex++
		if cursorIndex >= len(targetRunes) {
			return wordRange{}, false
		}
	}
	if runewidth.RuneWidth(targetRunes[cursorIndex]) > 1 {
		return wordRange{start: cursorIndex, end: cursorIndex + 1}, true
	}
	start := cursorIndex
	for start > 0 && targetRunes[start-1] != ' ' && runewidth.RuneWidth(targetRunes[start-1]) <= 1 {
		start--
	}
	end := cursorIndex
	for end < len(targetRunes) && targetRunes[end] != ' ' && runewidth.RuneWidth(targetRunes[end]) <= 1 {
		end++
	}
	return wordRange{start: start, end: end}, true
}

func renderCells(cells []cell) string {
	var b strings.Builder
	for _, c := range cells {
		b.WriteString(c.render())
	}
	return b.String()
}

// wrapCells splits cells into lines no wider than width, breaking at the last
// opportunity on the line. A space at a break is dropped from the output.
func wrapCells(cells []cell, width int) [][]cell {
	if width <= 0 {
		return [][]cell{cells}
	}
	var lines [][]cell
	line := make([]cell, 0, len(cells))
	lineWidth := 0
	breakIdx := -1

	for i := 0; i < len(cells); {
		c := cells[i]
		if lineWidth+c.width > width && len(line) > 0 {
			if breakIdx >= 0 {
				head := line[:breakIdx+1]
				if line[breakIdx].isSpace {
					head = line[:breakIdx]
				}
				lines = append(lines, append([]cell{}, head...))
				line = append([]cell{}, line[breakIdx+1:]...)
			} else {
				lines = append(lines, append([]cell{}, line...))
				line = line[:0]
			}
			lineWidth = widthOf(line)
			breakIdx = lastBreak(line)
			continue
		}
		line = append(line, c)
		lineWidth += c.width
		if c.breakAfter {
			breakIdx = len(line) - 1
		}
		i++
	}
	return append(lines, line)
}

func wrapText(cells []cell, width int) string {
	lines := wrapCells(cells, width)
	rendered := make([]string, len(lines))
	for i, line := range lines {
		rendered[i] = renderCells(line)
	}
	return strings.Join(rendered, "\n")
}

func widthOf(line []cell) int {
	total := 0
	for _, c := range line {
		total += c.width
	}
	return total
}

func lastBreak(line []cell) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].breakAfter {
			return i
		}
	}
	return -1
}
