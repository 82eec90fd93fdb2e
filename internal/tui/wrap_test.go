package tui

import "testing"

func cellText(cells []cell) string {
	runes := make([]rune, len(cells))
	for i, c := range cells {
		runes[i] = c.r
	}
	return string(runes)
}

func TestBuildCellsCursor(t *testing.T) {
	cells := buildCells([]rune("ab"), []rune("a"), 1)
	if len(cells) != 2 {
		t.Fatalf("expected 2 cells, got %d", len(cells))
	}
	if cells[0].state != cellCorrect || cells[0].cursor {
		t.Fatalf("expected first cell correct without cursor, got %+v", cells[0])
	}
	if !cells[1].cursor {
		t.Fatalf("expected cursor on second cell")
	}
}

func TestBuildCellsNoCursorWhenComplete(t *testing.T) {
	cells := buildCells([]rune("a"), []rune("a"), -1)
	if cells[0].state != cellCorrect || cells[0].cursor {
		t.Fatalf("expected completed cell without cursor, got %+v", cells[0])
	}
}

func TestBuildCellsKeepsTargetOnMistype(t *testing.T) {
	cells := buildCells([]rune("ab"), []rune("ax"), 2)
	if cells[1].state != cellIncorrect || cells[1].r != 'b' {
		t.Fatalf("expected target rune marked incorrect, got %+v", cells[1])
	}
}

func TestBuildCellsWordHighlighting(t *testing.T) {
	cells := buildCells([]rune("one two"), []rune("o"), 1)
	if cells[1].state != cellCurrentWord || cells[2].state != cellCurrentWord {
		t.Fatalf("expected rest of current word highlighted")
	}
	if cells[4].state != cellPending || cells[6].state != cellPending {
		t.Fatalf("expected next word pending")
	}
}

func TestBuildCellsWideCharacterIsOwnWord(t *testing.T) {
	cells := buildCells([]rune("床前明"), []rune("床"), 1)
	if cells[1].state != cellCurrentWord {
		t.Fatalf("expected cursor character highlighted")
	}
	if cells[2].state != cellPending {
		t.Fatalf("expected following character pending")
	}
	if cells[1].width != 2 {
		t.Fatalf("expected wide cell, got width %d", cells[1].width)
	}
}

func TestBuildCellsWrongSpace(t *testing.T) {
	cells := buildCells([]rune("a b"), []rune("ax"), 2)
	if cells[1].r != wrongSpace || cells[1].state != cellIncorrect {
		t.Fatalf("expected wrong space marker, got %+v", cells[1])
	}
}

func TestWrapCellsBreaksAtSpaces(t *testing.T) {
	lines := wrapCells(buildCells([]rune("aa bb cc"), nil, 0), 5)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if cellText(lines[0]) != "aa" || cellText(lines[1]) != "bb cc" {
		t.Fatalf("unexpected lines %q %q", cellText(lines[0]), cellText(lines[1]))
	}
}

func TestWrapCellsBreaksBetweenWideCharacters(t *testing.T) {
	lines := wrapCells(buildCells([]rune("床前明月光，疑是"), nil, 0), 6)
	want := []string{"床前明", "月光，", "疑是"}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), len(lines))
	}
	for i, line := range lines {
		if cellText(line) != want[i] {
			t.Fatalf("line %d: expected %q, got %q", i, want[i], cellText(line))
		}
	}
}

func TestWrapCellsHardBreaksLongWord(t *testing.T) {
	lines := wrapCells(buildCells([]rune("abcdef"), nil, 0), 4)
	if len(lines) != 2 || cellText(lines[0]) != "abcd" || cellText(lines[1]) != "ef" {
		t.Fatalf("unexpected lines %v", lines)
	}
}

func TestWrapCellsWithoutWidth(t *testing.T) {
	lines := wrapCells(buildCells([]rune("one two"), nil, 0), 0)
	if len(lines) != 1 || cellText(lines[0]) != "one two" {
		t.Fatalf("expected a single line, got %v", lines)
	}
}
