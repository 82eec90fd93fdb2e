package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Sink plays streamers.
type Sink interface {
	Play(s beep.Streamer)
	Close()
}

// SpeakerSink plays through the system audio device.
type SpeakerSink struct {
	mixer *beep.Mixer
}

// NewSpeakerSink initializes the speaker at the given rate.
func NewSpeakerSink(rate beep.SampleRate) (*SpeakerSink, error) {
	if err := speaker.Init(rate, rate.N(50*time.Millisecond)); err != nil {
		return nil, err
	}
	sink := &SpeakerSink{mixer: &beep.Mixer{}}
	speaker.Play(sink.mixer)
	return sink, nil
}

// Play implements Sink.
func (s *SpeakerSink) Play(st beep.Streamer) {
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

// Close implements Sink.
func (s *SpeakerSink) Close() {
	speaker.Clear()
	speaker.Close()
}

// Player turns feedback events into sounds. A Player without a sink is silent.
type Player struct {
	mu      sync.Mutex
	sink    Sink
	rate    beep.SampleRate
	volume  float64
	enabled bool
}

// NewPlayer creates a player writing to sink. A nil sink yields a silent player.
func NewPlayer(sink Sink, rate beep.SampleRate, volume float64, enabled bool) *Player {
	if volume < 0 {
		volume = 0
	}
	if volume > 1 {
		volume = 1
	}
	return &Player{sink: sink, rate: rate, volume: volume, enabled: enabled}
}

// Correct plays the correct keystroke click.
func (p *Player) Correct() { p.play(KindCorrect) }

// Incorrect plays the error buzz.
func (p *Player) Incorrect() { p.play(KindError) }

// Success plays the completion arpeggio.
func (p *Player) Success() { p.play(KindSuccess) }

// Enabled reports whether sounds are played.
func (p *Player) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enabled
}

// SetEnabled turns sounds on or off.
func (p *Player) SetEnabled(enabled bool) {
	p.mu.Lock()
	p.enabled = enabled
	p.mu.Unlock()
}

// Toggle flips the enabled state and returns the new value.
func (p *Player) Toggle() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.enabled = !p.enabled
	return p.enabled
}

// Close releases the sink.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.sink != nil {
		p.sink.Close()
		p.sink = nil
	}
}

func (p *Player) play(kind Kind) {
	p.mu.Lock()
	sink, enabled := p.sink, p.enabled
	rate, volume := p.rate, p.volume
	p.mu.Unlock()
	if sink == nil || !enabled {
		return
	}
	if s := Sound(kind, rate, volume); s != nil {
		sink.Play(s)
	}
}
