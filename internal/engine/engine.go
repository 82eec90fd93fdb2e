// Package engine implements the typing session state machine.
//
// An Engine turns direct input candidates and input-method composition events
// into a session that moves from idle to running to finished, and derives
// speed and accuracy metrics from the committed input. It is not safe for
// concurrent use; drive it from a single event loop.
package engine

import (
	"time"

	"github.com/verte-zerg/typecore/internal/model"
)

// TickInterval is the cadence of metrics recomputation while running.
const TickInterval = time.Second

// Engine owns the state of one typing session.
type Engine struct {
	clock    Clock
	feedback Feedback

	target []rune
	input  []rune

	status    model.Status
	startedAt time.Time
	composing bool
	stats     model.Stats

	tickID int
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the time source.
func WithClock(c Clock) Option {
	return func(e *Engine) {
		if c != nil {
			e.clock = c
		}
	}
}

// WithFeedback sets the receiver of per-keystroke notifications.
func WithFeedback(f Feedback) Option {
	return func(e *Engine) {
		if f != nil {
			e.feedback = f
		}
	}
}

// New constructs an idle engine for the given target text.
func New(target string, opts ...Option) *Engine {
	e := &Engine{
		clock:    SystemClock{},
		feedback: NopFeedback{},
		target:   []rune(target),
		stats:    model.DefaultStats(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SubmitInput handles a direct input event carrying the full candidate input.
// The event is ignored while a composition is open, when the candidate is
// longer than the target, or once the session is finished.
func (e *Engine) SubmitInput(candidate string) {
	if e.composing {
		return
	}
	next := []rune(candidate)
	if !e.accepts(next) {
		return
	}
	if len(next) > len(e.input) {
		pos := len(next) - 1
		if next[pos] == e.target[pos] {
			e.feedback.Correct()
		} else {
			e.feedback.Incorrect()
		}
	}
	changed := !equalRunes(next, e.input)
	e.input = next
	if changed {
		e.start()
	}
	e.checkFinished()
}

// BeginComposition marks the start of an input-method composition. An idle
// session starts running; nothing is scored until the composition ends.
func (e *Engine) BeginComposition() {
	if e.status == model.StatusFinished {
		return
	}
	e.composing = true
	e.start()
}

// EndComposition handles the finalized text of a composition. A composed
// chunk that grows the input fires a single Correct notification no matter
// how many characters it holds. Without an open composition the call is a no-op.
func (e *Engine) EndComposition(final string) {
	if !e.composing {
		return
	}
	e.composing = false
	next := []rune(final)
	if !e.accepts(next) {
		return
	}
	if len(next) > len(e.input) {
		e.feedback.Correct()
	}
	e.input = next
	e.checkFinished()
}

// Reset returns the engine to idle, keeping the current target.
func (e *Engine) Reset() {
	if e.status == model.StatusRunning {
		e.tickID++
	}
	e.input = nil
	e.status = model.StatusIdle
	e.startedAt = time.Time{}
	e.composing = false
	e.stats = model.DefaultStats()
}

// ResetTarget returns the engine to idle with a new target. An empty target
// is accepted; such a session can never finish.
func (e *Engine) ResetTarget(target string) {
	e.Reset()
	e.target = []rune(target)
}

// Tick recomputes metrics for the tick source identified by id. It reports
// whether that source is still live; stale ids and ticks outside a running
// session are dropped.
func (e *Engine) Tick(id int) bool {
	if e.status != model.StatusRunning || id != e.tickID {
		return false
	}
	e.recompute()
	return true
}

// TickID identifies the current tick source. It changes whenever the session
// enters or leaves the running state.
func (e *Engine) TickID() int {
	return e.tickID
}

// Ticking reports whether a tick source should be alive.
func (e *Engine) Ticking() bool {
	return e.status == model.StatusRunning
}

// Refresh recomputes metrics now if the session is running.
func (e *Engine) Refresh() {
	if e.status == model.StatusRunning {
		e.recompute()
	}
}

// Status returns the session status.
func (e *Engine) Status() model.Status {
	return e.status
}

// Stats returns the latest metrics snapshot.
func (e *Engine) Stats() model.Stats {
	return e.stats
}

// Target returns the target text.
func (e *Engine) Target() string {
	return string(e.target)
}

// Input returns the committed input.
func (e *Engine) Input() string {
	return string(e.input)
}

// TargetRunes returns a copy of the target characters.
func (e *Engine) TargetRunes() []rune {
	return append([]rune(nil), e.target...)
}

// InputRunes returns a copy of the committed input characters.
func (e *Engine) InputRunes() []rune {
	return append([]rune(nil), e.input...)
}

// Cursor is the index of the next character to type.
func (e *Engine) Cursor() int {
	return len(e.input)
}

// Composing reports whether a composition is open.
func (e *Engine) Composing() bool {
	return e.composing
}

// StartedAt returns the session start time, zero while idle.
func (e *Engine) StartedAt() time.Time {
	return e.startedAt
}

// Elapsed returns the time since the session started, zero while idle.
func (e *Engine) Elapsed() time.Duration {
	if e.startedAt.IsZero() {
		return 0
	}
	return e.clock.Now().Sub(e.startedAt)
}

func (e *Engine) accepts(next []rune) bool {
	return len(next) <= len(e.target) && e.status != model.StatusFinished
}

func (e *Engine) start() {
	if e.status != model.StatusIdle {
		return
	}
	e.status = model.StatusRunning
	e.startedAt = e.clock.Now()
	e.tickID++
}

func (e *Engine) checkFinished() {
	if len(e.target) == 0 || len(e.input) != len(e.target) {
		return
	}
	if e.status == model.StatusIdle {
		e.start()
	}
	e.status = model.StatusFinished
	e.tickID++
	e.recompute()
}

func (e *Engine) recompute() {
	if e.startedAt.IsZero() {
		return
	}
	stats, ok := ComputeStats(e.target, e.input, e.clock.Now().Sub(e.startedAt))
	if !ok {
		return
	}
	e.stats = stats
}

func equalRunes(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
