package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drillsrs/drill/store"
)

func answerAt(t time.Time, correct bool) *store.Answer {
	return &store.Answer{Date: t, IsCorrect: correct}
}

func TestNextDueDateInactive(t *testing.T) {
	now := time.Now()
	card := &store.Card{IsActive: false}

	// Inactive cards have no due date no matter the history.
	require.Nil(t, NextDueDate(card, nil, now))
	require.Nil(t, NextDueDate(card, []*store.Answer{
		answerAt(now.Add(-time.Hour), true),
		answerAt(now, true),
	}, now))
}

func TestNextDueDateUnanswered(t *testing.T) {
	now := time.Now()
	card := &store.Card{IsActive: true}

	due := NextDueDate(card, nil, now)
	require.NotNil(t, due)
	assert.Equal(t, now, *due)
}

func TestNextDueDateLadderWalk(t *testing.T) {
	t0 := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	card := &store.Card{IsActive: true}

	// Correct at T0: index 1, due T0+4h.
	history := []*store.Answer{answerAt(t0, true)}
	due := NextDueDate(card, history, t0)
	require.NotNil(t, due)
	assert.Equal(t, t0.Add(4*time.Hour), *due)

	// Incorrect at T0+4h: back to index 0, immediately due again.
	history = append(history, answerAt(t0.Add(4*time.Hour), false))
	due = NextDueDate(card, history, t0.Add(4*time.Hour))
	require.NotNil(t, due)
	assert.Equal(t, t0.Add(4*time.Hour), *due)

	// Correct at T0+5h: index 1 again, due T0+9h.
	history = append(history, answerAt(t0.Add(5*time.Hour), true))
	due = NextDueDate(card, history, t0.Add(5*time.Hour))
	require.NotNil(t, due)
	assert.Equal(t, t0.Add(9*time.Hour), *due)
}

func TestNextDueDateClampsAtLadderTop(t *testing.T) {
	t0 := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	card := &store.Card{IsActive: true}

	var history []*store.Answer
	last := t0
	for i := 0; i < len(Thresholds)*3; i++ {
		last = t0.Add(time.Duration(i) * time.Hour)
		history = append(history, answerAt(last, true))
	}

	due := NextDueDate(card, history, last)
	require.NotNil(t, due)
	assert.Equal(t, last.Add(Thresholds[len(Thresholds)-1]), *due)
}

func TestNextDueDateClampsAtLadderBottom(t *testing.T) {
	t0 := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	card := &store.Card{IsActive: true}

	var history []*store.Answer
	last := t0
	for i := 0; i < 20; i++ {
		last = t0.Add(time.Duration(i) * time.Minute)
		history = append(history, answerAt(last, false))
	}

	due := NextDueDate(card, history, last)
	require.NotNil(t, due)
	assert.Equal(t, last, *due)
}

func TestNextDueDateDeterministic(t *testing.T) {
	t0 := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	card := &store.Card{IsActive: true}
	history := []*store.Answer{
		answerAt(t0, true),
		answerAt(t0.Add(4*time.Hour), true),
		answerAt(t0.Add(12*time.Hour), false),
		answerAt(t0.Add(13*time.Hour), true),
	}

	first := NextDueDate(card, history, t0.Add(14*time.Hour))
	second := NextDueDate(card, history, t0.Add(99*time.Hour))
	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Equal(t, *first, *second)
}

func TestConsecutiveCorrect(t *testing.T) {
	t0 := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		outcomes []bool
		want     int
	}{
		{"empty history", nil, 0},
		{"all correct", []bool{true, true, true}, 3},
		{"all incorrect", []bool{false, false}, 0},
		{"trailing run", []bool{true, false, true, true}, 2},
		{"incorrect last", []bool{true, true, false}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var history []*store.Answer
			for i, correct := range tt.outcomes {
				history = append(history, answerAt(t0.Add(time.Duration(i)*time.Hour), correct))
			}
			assert.Equal(t, tt.want, ConsecutiveCorrect(history))
		})
	}
}
