// Package audio synthesizes keystroke feedback sounds.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// SampleRate is the output rate for all generated sounds.
const SampleRate = beep.SampleRate(44100)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSaw
	WaveTriangle
)

// Ramp is the interpolation curve between a start and an end value.
type Ramp int

const (
	RampLinear Ramp = iota
	RampExponential
)

// Tone describes a single oscillator note with frequency and gain ramps.
type Tone struct {
	Wave      Wave
	StartFreq float64
	EndFreq   float64
	FreqRamp  Ramp
	StartGain float64
	EndGain   float64
	GainRamp  Ramp
	Duration  time.Duration
}

type toneStreamer struct {
	tone     Tone
	rate     beep.SampleRate
	phase    float64
	position int
	total    int
}

// NewTone returns a streamer that plays t once.
func NewTone(t Tone, rate beep.SampleRate) beep.Streamer {
	return &toneStreamer{tone: t, rate: rate, total: rate.N(t.Duration)}
}

func (s *toneStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	if s.position >= s.total {
		return 0, false
	}
	for i := range samples {
		if s.position >= s.total {
			return i, true
		}
		progress := float64(s.position) / float64(s.total)
		freq := interpolate(s.tone.StartFreq, s.tone.EndFreq, progress, s.tone.FreqRamp)
		gain := interpolate(s.tone.StartGain, s.tone.EndGain, progress, s.tone.GainRamp)

		val := gain * waveAt(s.tone.Wave, s.phase)
		samples[i][0] = val
		samples[i][1] = val

		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.position++
	}
	return len(samples), true
}

func (s *toneStreamer) Err() error { return nil }

func waveAt(w Wave, phase float64) float64 {
	switch w {
	case WaveSaw:
		return 2.0 * (phase - 0.5)
	case WaveTriangle:
		return 1.0 - 4.0*math.Abs(phase-0.5)
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// Exponential ramps need strictly positive endpoints; anything else falls back to linear.
func interpolate(from, to, progress float64, ramp Ramp) float64 {
	if ramp == RampExponential && from > 0 && to > 0 {
		return from * math.Pow(to/from, progress)
	}
	return from + (to-from)*progress
}

func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
