package audio

import (
	"time"

	"github.com/gopxl/beep"
)

// Kind names a feedback sound.
type Kind int

const (
	KindCorrect Kind = iota
	KindError
	KindSuccess
)

func (k Kind) String() string {
	switch k {
	case KindCorrect:
		return "correct"
	case KindError:
		return "error"
	case KindSuccess:
		return "success"
	default:
		return "unknown"
	}
}

var (
	// A short rising click.
	correctTone = Tone{
		Wave: WaveSine, StartFreq: 800, EndFreq: 1200, FreqRamp: RampExponential,
		StartGain: 0.05, EndGain: 0.001, GainRamp: RampExponential,
		Duration: 50 * time.Millisecond,
	}
	// A low falling buzz.
	errorTone = Tone{
		Wave: WaveSaw, StartFreq: 150, EndFreq: 100, FreqRamp: RampLinear,
		StartGain: 0.1, EndGain: 0.001, GainRamp: RampLinear,
		Duration: 150 * time.Millisecond,
	}
	// C5 E5 G5 C6.
	successNotes = []float64{523.25, 659.25, 783.99, 1046.50}
)

const (
	successNoteGap    = 100 * time.Millisecond
	successNoteLength = 500 * time.Millisecond
)

// Sound builds the streamer for a feedback sound at the given volume (0..1).
func Sound(kind Kind, rate beep.SampleRate, volume float64) beep.Streamer {
	var s beep.Streamer
	switch kind {
	case KindCorrect:
		s = NewTone(correctTone, rate)
	case KindError:
		s = NewTone(errorTone, rate)
	case KindSuccess:
		s = arpeggio(rate)
	default:
		return nil
	}
	return withVolume(s, volume)
}

func arpeggio(rate beep.SampleRate) beep.Streamer {
	notes := make([]beep.Streamer, 0, len(successNotes))
	for i, freq := range successNotes {
		note := NewTone(Tone{
			Wave: WaveTriangle, StartFreq: freq, EndFreq: freq,
			StartGain: 0.1, EndGain: 0.001, GainRamp: RampExponential,
			Duration: successNoteLength,
		}, rate)
		delay := rate.N(time.Duration(i) * successNoteGap)
		notes = append(notes, beep.Seq(beep.Silence(delay), note))
	}
	return beep.Mix(notes...)
}
