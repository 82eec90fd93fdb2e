package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/verte-zerg/typecore/internal/engine"
)

func drain(t *testing.T, s beep.Streamer) ([][2]float64, int) {
	t.Helper()
	buf := make([][2]float64, 512)
	var all [][2]float64
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		all = append(all, buf[:n]...)
		if !ok {
			return all, len(all)
		}
	}
	t.Fatalf("streamer never drained")
	return nil, 0
}

func TestToneLengthAndRange(t *testing.T) {
	rate := beep.SampleRate(8000)
	samples, n := drain(t, NewTone(errorTone, rate))
	if want := rate.N(150 * time.Millisecond); n != want {
		t.Fatalf("expected %d samples, got %d", want, n)
	}
	for i, s := range samples {
		if math.Abs(s[0]) > errorTone.StartGain+1e-9 || s[0] != s[1] {
			t.Fatalf("sample %d out of range: %v", i, s)
		}
	}
}

func TestSoundsDrain(t *testing.T) {
	rate := beep.SampleRate(8000)
	cases := map[Kind]time.Duration{
		KindCorrect: 50 * time.Millisecond,
		KindError:   150 * time.Millisecond,
	}
	for kind, length := range cases {
		_, n := drain(t, Sound(kind, rate, 1))
		if want := rate.N(length); n != want {
			t.Fatalf("%s: expected %d samples, got %d", kind, want, n)
		}
	}

	// Mixed notes end with the last one; allow one buffer of slack for the mixer.
	_, n := drain(t, Sound(KindSuccess, rate, 1))
	longest := rate.N(3*successNoteGap + successNoteLength)
	if n < longest || n > longest+512 {
		t.Fatalf("success: expected about %d samples, got %d", longest, n)
	}
	if Sound(Kind(99), rate, 1) != nil {
		t.Fatalf("expected nil streamer for unknown kind")
	}
}

func TestInterpolateExponential(t *testing.T) {
	if got := interpolate(800, 1200, 0, RampExponential); got != 800 {
		t.Fatalf("expected start value, got %v", got)
	}
	if got := interpolate(800, 1200, 1, RampExponential); math.Abs(got-1200) > 1e-9 {
		t.Fatalf("expected end value, got %v", got)
	}
	if got := interpolate(0, 10, 0.5, RampExponential); got != 5 {
		t.Fatalf("expected linear fallback, got %v", got)
	}
}

type recordingSink struct {
	played int
	closed bool
}

func (s *recordingSink) Play(beep.Streamer) { s.played++ }
func (s *recordingSink) Close()             { s.closed = true }

func TestPlayerFeedsEngine(t *testing.T) {
	sink := &recordingSink{}
	player := NewPlayer(sink, beep.SampleRate(8000), 0.5, true)

	e := engine.New("ab", engine.WithFeedback(player))
	e.SubmitInput("a")
	e.SubmitInput("ax")
	if sink.played != 2 {
		t.Fatalf("expected 2 sounds, got %d", sink.played)
	}

	if player.Toggle() {
		t.Fatalf("expected toggle to disable")
	}
	player.Success()
	if sink.played != 2 {
		t.Fatalf("expected disabled player to stay silent")
	}

	player.SetEnabled(true)
	player.Close()
	player.Correct()
	if !sink.closed || sink.played != 2 {
		t.Fatalf("expected closed player to stay silent")
	}
}
