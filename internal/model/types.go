// Package model defines shared data structures.
package model

// Status is the lifecycle state of a typing session.
type Status int

const (
	// StatusIdle means no input has been received and the timer has not started.
	StatusIdle Status = iota
	// StatusRunning means the timer has started and input is in progress.
	StatusRunning
	// StatusFinished means the committed input covers the whole target.
	StatusFinished
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRunning:
		return "running"
	case StatusFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Stats is a metrics snapshot derived from a session.
type Stats struct {
	WPM            int
	Accuracy       int
	CPM            int
	Errors         int
	TotalChars     int
	ElapsedSeconds int
}

// DefaultStats returns the snapshot reported before a session has started.
func DefaultStats() Stats {
	return Stats{Accuracy: 100}
}

// Category groups exercises.
type Category string

const (
	CategoryBasic   Category = "basic"
	CategoryEnglish Category = "english"
	CategoryPoetry  Category = "poetry"
	CategoryWords   Category = "words"
)

// Categories lists the known categories in display order.
func Categories() []Category {
	return []Category{CategoryBasic, CategoryEnglish, CategoryPoetry, CategoryWords}
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// PinyinChar pairs a target character with its romanization.
type PinyinChar struct {
	Char   string `toml:"char"`
	Pinyin string `toml:"pinyin"`
}

// Exercise is a piece of practice text.
type Exercise struct {
	ID          string       `toml:"id"`
	Category    Category     `toml:"category"`
	Title       string       `toml:"title"`
	Content     string       `toml:"content"`
	Author      string       `toml:"author"`
	Translation string       `toml:"translation"`
	Pinyin      []PinyinChar `toml:"pinyin"`
}

// Config defines practice settings.
type Config struct {
	Category   Category
	ExerciseID string
	Sound      bool
	Volume     float64
	Lang       string
	Words      int
	CapsPct    float64
	PunctPct   float64
	PunctSet   string
}
