package engine_test

import (
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/verte-zerg/typecore/internal/engine"
	"github.com/verte-zerg/typecore/internal/model"
)

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1_700_000_000, 0)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type recorder struct {
	correct   int
	incorrect int
}

func (r *recorder) Correct()   { r.correct++ }
func (r *recorder) Incorrect() { r.incorrect++ }

func newEngine(target string) (*engine.Engine, *fakeClock, *recorder) {
	clock := newFakeClock()
	rec := &recorder{}
	e := engine.New(target, engine.WithClock(clock), engine.WithFeedback(rec))
	return e, clock, rec
}

func TestEngineLifecycle(t *testing.T) {
	Convey("Given an engine with target abc", t, func() {
		e, clock, rec := newEngine("abc")

		Convey("It starts idle with default stats", func() {
			So(e.Status(), ShouldEqual, model.StatusIdle)
			So(e.Stats(), ShouldResemble, model.DefaultStats())
			So(e.StartedAt().IsZero(), ShouldBeTrue)
			So(e.Ticking(), ShouldBeFalse)
		})

		Convey("When typing a, ax, axc", func() {
			e.SubmitInput("a")
			So(rec.correct, ShouldEqual, 1)
			So(rec.incorrect, ShouldEqual, 0)
			So(e.Status(), ShouldEqual, model.StatusRunning)
			So(e.StartedAt(), ShouldEqual, clock.now)

			clock.Advance(2 * time.Second)
			e.SubmitInput("ax")
			So(rec.correct, ShouldEqual, 1)
			So(rec.incorrect, ShouldEqual, 1)

			clock.Advance(4 * time.Second)
			e.SubmitInput("axc")

			Convey("Then the session finishes with one error", func() {
				stats := e.Stats()
				So(e.Status(), ShouldEqual, model.StatusFinished)
				So(stats.TotalChars, ShouldEqual, 3)
				So(stats.Errors, ShouldEqual, 1)
				So(stats.Accuracy, ShouldEqual, 67)
				So(stats.ElapsedSeconds, ShouldEqual, 6)
				So(e.Ticking(), ShouldBeFalse)
			})

			Convey("Then further input is ignored", func() {
				before := e.Stats()
				clock.Advance(time.Minute)
				e.SubmitInput("ab")
				e.BeginComposition()
				e.EndComposition("abc")
				So(e.Input(), ShouldEqual, "axc")
				So(e.Status(), ShouldEqual, model.StatusFinished)
				So(e.Stats(), ShouldResemble, before)
				So(e.Composing(), ShouldBeFalse)
				So(rec.correct, ShouldEqual, 2)
			})
		})

		Convey("When a candidate exceeds the target", func() {
			e.SubmitInput("abcd")

			Convey("Then nothing changes", func() {
				So(e.Input(), ShouldEqual, "")
				So(e.Status(), ShouldEqual, model.StatusIdle)
				So(rec.correct+rec.incorrect, ShouldEqual, 0)
			})

			Convey("And repeating it is still a no-op", func() {
				e.SubmitInput("a")
				e.SubmitInput("abcdef")
				So(e.Input(), ShouldEqual, "a")
				So(e.Status(), ShouldEqual, model.StatusRunning)
			})
		})

		Convey("When a character is deleted", func() {
			e.SubmitInput("a")
			e.SubmitInput("ax")
			e.SubmitInput("a")

			Convey("Then no callback fires for the deletion", func() {
				So(rec.correct, ShouldEqual, 1)
				So(rec.incorrect, ShouldEqual, 1)
				So(e.Input(), ShouldEqual, "a")
				So(e.Cursor(), ShouldEqual, 1)
			})
		})

		Convey("When reset mid-session", func() {
			e.SubmitInput("a")
			e.BeginComposition()
			clock.Advance(3 * time.Second)
			e.Refresh()
			e.Reset()

			Convey("Then the engine is idle with empty input and default stats", func() {
				So(e.Status(), ShouldEqual, model.StatusIdle)
				So(e.Input(), ShouldEqual, "")
				So(e.StartedAt().IsZero(), ShouldBeTrue)
				So(e.Stats(), ShouldResemble, model.DefaultStats())
				So(e.Composing(), ShouldBeFalse)
				So(e.Target(), ShouldEqual, "abc")
			})

			Convey("Then a stray composition end is ignored", func() {
				e.EndComposition("ab")
				So(e.Input(), ShouldEqual, "")
				So(e.Status(), ShouldEqual, model.StatusIdle)
			})
		})
	})
}

func TestEngineComposition(t *testing.T) {
	Convey("Given an engine with a Chinese target", t, func() {
		e, clock, rec := newEngine("你好")

		Convey("When a composition starts on an idle engine", func() {
			e.BeginComposition()

			Convey("Then the session runs without any callback", func() {
				So(e.Status(), ShouldEqual, model.StatusRunning)
				So(e.StartedAt(), ShouldEqual, clock.now)
				So(e.Composing(), ShouldBeTrue)
				So(rec.correct+rec.incorrect, ShouldEqual, 0)
			})

			Convey("Then direct input is ignored while composing", func() {
				e.SubmitInput("n")
				So(e.Input(), ShouldEqual, "")
				So(rec.correct+rec.incorrect, ShouldEqual, 0)
			})

			Convey("Then ending with 你 fires exactly one correct callback", func() {
				e.EndComposition("你")
				So(rec.correct, ShouldEqual, 1)
				So(rec.incorrect, ShouldEqual, 0)
				So(e.Input(), ShouldEqual, "你")
				So(e.Composing(), ShouldBeFalse)
			})

			Convey("Then a wrong multi-character chunk still fires one correct callback", func() {
				clock.Advance(time.Second)
				e.EndComposition("他们")
				So(rec.correct, ShouldEqual, 1)
				So(rec.incorrect, ShouldEqual, 0)
				So(e.Status(), ShouldEqual, model.StatusFinished)
				So(e.Stats().Errors, ShouldEqual, 2)
			})

			Convey("Then an oversized chunk is rejected but the composition closes", func() {
				e.EndComposition("你好吗")
				So(e.Input(), ShouldEqual, "")
				So(e.Composing(), ShouldBeFalse)
				So(rec.correct, ShouldEqual, 0)
			})
		})

		Convey("When a composition ends without growing the input", func() {
			e.SubmitInput("你")
			e.BeginComposition()
			e.EndComposition("你")
			So(rec.correct, ShouldEqual, 1)
			e.BeginComposition()
			e.EndComposition("")
			So(rec.correct, ShouldEqual, 1)
			So(e.Input(), ShouldEqual, "")
		})
	})
}

func TestEngineTicks(t *testing.T) {
	Convey("Given a running session", t, func() {
		e, clock, _ := newEngine("hello world")
		idle := e.TickID()
		e.SubmitInput("h")
		running := e.TickID()

		So(running, ShouldNotEqual, idle)
		So(e.Ticking(), ShouldBeTrue)

		Convey("A tick with the live id recomputes stats", func() {
			clock.Advance(12 * time.Second)
			So(e.Tick(running), ShouldBeTrue)
			So(e.Stats().ElapsedSeconds, ShouldEqual, 12)
			So(e.Stats().CPM, ShouldEqual, 5)
		})

		Convey("Further input does not restart the tick source", func() {
			e.SubmitInput("he")
			e.SubmitInput("hel")
			So(e.TickID(), ShouldEqual, running)
		})

		Convey("A stale id is dropped", func() {
			clock.Advance(time.Second)
			So(e.Tick(idle), ShouldBeFalse)
			So(e.Stats(), ShouldResemble, model.DefaultStats())
		})

		Convey("Reset invalidates the running tick source", func() {
			e.Reset()
			clock.Advance(time.Second)
			So(e.Tick(running), ShouldBeFalse)
			So(e.Ticking(), ShouldBeFalse)
		})

		Convey("Finishing invalidates the running tick source", func() {
			clock.Advance(time.Second)
			e.SubmitInput("hello world")
			So(e.Status(), ShouldEqual, model.StatusFinished)
			So(e.Tick(running), ShouldBeFalse)
			So(e.Tick(e.TickID()), ShouldBeFalse)
		})

		Convey("A tick without elapsed time keeps the previous snapshot", func() {
			So(e.Tick(running), ShouldBeTrue)
			So(e.Stats(), ShouldResemble, model.DefaultStats())
		})
	})
}

func TestEmptyTargetNeverFinishes(t *testing.T) {
	e, _, rec := newEngine("abc")
	e.SubmitInput("a")
	e.ResetTarget("")

	e.SubmitInput("")
	e.SubmitInput("a")
	e.BeginComposition()
	e.EndComposition("")

	if e.Status() == model.StatusFinished {
		t.Fatalf("expected empty target to never finish")
	}
	if e.Input() != "" {
		t.Fatalf("expected empty input, got %q", e.Input())
	}
	if rec.correct != 1 {
		t.Fatalf("expected only the pre-reset callback, got %d", rec.correct)
	}
}

func TestFinishAtStartInstantKeepsDefaults(t *testing.T) {
	e, _, _ := newEngine("a")
	e.SubmitInput("a")
	if e.Status() != model.StatusFinished {
		t.Fatalf("expected finished, got %s", e.Status())
	}
	if e.Stats() != model.DefaultStats() {
		t.Fatalf("expected default stats without elapsed time, got %+v", e.Stats())
	}
}

func TestSessionStaysConsistentAcrossRandomEvents(t *testing.T) {
	target := "the quick brown fox"
	e, clock, _ := newEngine(target)
	candidates := []string{"t", "th", "tx", "the q", strings.Repeat("x", 40), "", "the quick brown fox!", "the quick"}

	for i := 0; i < 200; i++ {
		clock.Advance(137 * time.Millisecond)
		switch i % 5 {
		case 0:
			e.BeginComposition()
		case 1:
			e.EndComposition(candidates[(i*3)%len(candidates)])
		default:
			e.SubmitInput(candidates[i%len(candidates)])
		}
		e.Tick(e.TickID())

		if n := len(e.InputRunes()); n > len([]rune(target)) {
			t.Fatalf("input length %d exceeds target", n)
		}
		finished := len(e.InputRunes()) == len([]rune(target))
		if finished != (e.Status() == model.StatusFinished) {
			t.Fatalf("status %s inconsistent with input %q", e.Status(), e.Input())
		}
		if e.StartedAt().IsZero() != (e.Status() == model.StatusIdle) {
			t.Fatalf("start time inconsistent with status %s", e.Status())
		}
		stats := e.Stats()
		if stats.Accuracy < 0 || stats.Accuracy > 100 {
			t.Fatalf("accuracy out of range: %d", stats.Accuracy)
		}
		if stats.WPM < 0 {
			t.Fatalf("negative wpm: %d", stats.WPM)
		}
		if e.Status() == model.StatusFinished {
			e.Reset()
		}
	}
}
