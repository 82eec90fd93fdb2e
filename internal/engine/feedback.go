package engine

// Feedback receives per-keystroke outcome notifications.
type Feedback interface {
	Correct()
	Incorrect()
}

// NopFeedback discards all notifications.
type NopFeedback struct{}

// Correct implements Feedback.
func (NopFeedback) Correct() {}

// Incorrect implements Feedback.
func (NopFeedback) Incorrect() {}

// FeedbackFuncs adapts plain functions to Feedback. Nil fields are skipped.
type FeedbackFuncs struct {
	OnCorrect   func()
	OnIncorrect func()
}

// Correct implements Feedback.
func (f FeedbackFuncs) Correct() {
	if f.OnCorrect != nil {
		f.OnCorrect()
	}
}

// Incorrect implements Feedback.
func (f FeedbackFuncs) Incorrect() {
	if f.OnIncorrect != nil {
		f.OnIncorrect()
	}
}
