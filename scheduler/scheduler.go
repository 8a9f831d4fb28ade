package scheduler

import (
	"time"

	"github.com/drillsrs/drill/store"
)

// NextDueDate computes when the card is next due, given its full answer
// history in date order. Inactive cards are never due; an active card with
// no answers yet is due right now.
//
// The due date is re-derived from the whole history on every call: the
// ladder index starts at 0, climbs on correct answers and drops on
// incorrect ones (clamped to the ladder ends), and the final interval is
// added to the most recent answer's date. The same history always yields
// the same result.
func NextDueDate(card *store.Card, answers []*store.Answer, now time.Time) *time.Time {
	if !card.IsActive {
		return nil
	}
	if len(answers) == 0 {
		return &now
	}

	index := 0
	for _, answer := range answers {
		if answer.IsCorrect {
			index = min(index+1, len(Thresholds)-1)
		} else {
			index = max(index-1, 0)
		}
	}

	due := answers[len(answers)-1].Date.Add(Thresholds[index])
	return &due
}

// ConsecutiveCorrect counts the trailing run of correct answers, newest
// backward, stopping at the first incorrect one.
func ConsecutiveCorrect(answers []*store.Answer) int {
	for i := len(answers) - 1; i >= 0; i-- {
		if !answers[i].IsCorrect {
			return len(answers) - 1 - i
		}
	}
	return len(answers)
}
