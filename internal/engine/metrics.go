package engine

import (
	"math"
	"time"

	"github.com/verte-zerg/typecore/internal/model"
)

// charsPerWord is the conventional word length used by WPM.
const charsPerWord = 5.0

// ComputeStats derives a metrics snapshot from the target, the committed input
// and the time elapsed since the session started. Elapsed time is truncated to
// whole milliseconds. It returns false when no time has elapsed, in which case
// the caller keeps its previous snapshot.
func ComputeStats(target, input []rune, elapsed time.Duration) (model.Stats, bool) {
	ms := elapsed.Milliseconds()
	minutes := float64(ms) / 60000.0
	if minutes <= 0 {
		return model.Stats{}, false
	}

	errors := CountErrors(target, input)
	typed := float64(len(input))

	grossWPM := (typed / charsPerWord) / minutes
	netWPM := math.Max(0, grossWPM-float64(errors)/minutes)

	accuracy := 100.0
	if len(input) > 0 {
		accuracy = math.Max(0, (typed-float64(errors))/typed*100)
	}

	return model.Stats{
		WPM:            roundHalfUp(netWPM),
		Accuracy:       roundHalfUp(accuracy),
		CPM:            roundHalfUp(typed / minutes),
		Errors:         errors,
		TotalChars:     len(input),
		ElapsedSeconds: roundHalfUp(float64(ms) / 1000.0),
	}, true
}

// CountErrors counts input positions that differ from the target. Input runes
// past the end of the target are counted as errors.
func CountErrors(target, input []rune) int {
	errors := 0
	for i, r := range input {
		if i >= len(target) || r != target[i] {
			errors++
		}
	}
	return errors
}

// All callers pass non-negative values, where half-up and half-away-from-zero agree.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
