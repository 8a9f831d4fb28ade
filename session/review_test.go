package session

import (
	"context"
	"math/rand"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drillsrs/drill/internal/console"
	"github.com/drillsrs/drill/store"
)

// mockStore backs the session engines with an in-memory deck. Updates and
// review records are applied to the cards so the next round sees the
// advanced due dates, just like the real store.
type mockStore struct {
	cards   []*store.Card
	answers map[int32][]*store.Answer
	updates []*store.UpdateCard
	reviews []*store.RecordReview
}

func newMockStore(cards ...*store.Card) *mockStore {
	return &mockStore{cards: cards, answers: map[int32][]*store.Answer{}}
}

func (m *mockStore) ListCards(_ context.Context, find *store.FindCard) ([]*store.Card, error) {
	result := make([]*store.Card, 0)
	for _, card := range m.cards {
		if find.DeckID != nil && card.DeckID != *find.DeckID {
			continue
		}
		if find.IsActive != nil && card.IsActive != *find.IsActive {
			continue
		}
		result = append(result, card)
	}

	switch find.OrderBy {
	case store.CardOrderDueDate:
		sort.SliceStable(result, func(i, j int) bool {
			a, b := result[i], result[j]
			if a.DueDate != nil && b.DueDate != nil && !a.DueDate.Equal(*b.DueDate) {
				return a.DueDate.Before(*b.DueDate)
			}
			return a.Num < b.Num
		})
	default:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Num < result[j].Num
		})
	}

	if find.Limit != nil && len(result) > *find.Limit {
		result = result[:*find.Limit]
	}
	return result, nil
}

func (m *mockStore) ListAnswers(_ context.Context, find *store.FindAnswer) ([]*store.Answer, error) {
	if find.CardID == nil {
		return nil, nil
	}
	return m.answers[*find.CardID], nil
}

func (m *mockStore) UpdateCard(_ context.Context, update *store.UpdateCard) error {
	m.updates = append(m.updates, update)
	m.applyUpdate(update)
	return nil
}

func (m *mockStore) RecordReview(_ context.Context, record *store.RecordReview) error {
	m.reviews = append(m.reviews, record)
	m.answers[record.Answer.CardID] = append(m.answers[record.Answer.CardID], record.Answer)
	m.applyUpdate(record.Update)
	return nil
}

func (m *mockStore) applyUpdate(update *store.UpdateCard) {
	for _, card := range m.cards {
		if card.ID != update.ID {
			continue
		}
		if update.Answers != nil {
			card.Answers = *update.Answers
		}
		if update.IsActive != nil {
			card.IsActive = *update.IsActive
		}
		if update.ActivationDate != nil {
			card.ActivationDate = update.ActivationDate
		}
		if update.DueDate != nil {
			card.DueDate = update.DueDate
		}
	}
}

var reviewNow = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func dueCard(id int32, num int, question string, answers ...string) *store.Card {
	due := reviewNow.Add(-time.Hour)
	return &store.Card{
		ID:       id,
		DeckID:   1,
		Num:      num,
		Question: question,
		Answers:  answers,
		IsActive: true,
		DueDate:  &due,
	}
}

func newReview(s *mockStore, input string) (*Review, *strings.Builder) {
	var out strings.Builder
	return &Review{
		Store:   s,
		Console: console.New(strings.NewReader(input), &out),
		Rand:    rand.New(rand.NewSource(1)),
		Now:     func() time.Time { return reviewNow },
	}, &out
}

func TestReviewAllCorrect(t *testing.T) {
	s := newMockStore(
		dueCard(1, 1, "first", "ok"),
		dueCard(2, 2, "second", "ok"),
	)
	r, out := newReview(s, "ok\nok\n")

	err := r.Run(context.Background(), &store.Deck{ID: 1}, ModeDirect, 0)
	require.NoError(t, err)

	require.Len(t, s.reviews, 2)
	for _, review := range s.reviews {
		assert.True(t, review.Answer.IsCorrect)
		require.NotNil(t, review.Update.DueDate)
		// First correct answer climbs to the four-hour rung.
		assert.Equal(t, reviewNow.Add(4*time.Hour), *review.Update.DueDate)
	}
	assert.Contains(t, out.String(), "Correct!")
	assert.Contains(t, out.String(), "No more cards to review.")
	assert.Contains(t, out.String(), "Next review in 4 hours.")
}

func TestReviewIncorrectThenCorrect(t *testing.T) {
	s := newMockStore(dueCard(1, 1, "hello", "bonjour"))
	r, out := newReview(s, "hola\n0\nbonjour\n")

	err := r.Run(context.Background(), &store.Deck{ID: 1}, ModeDirect, 0)
	require.NoError(t, err)

	// The missed card stayed in the round and was answered again.
	require.Len(t, s.reviews, 2)
	assert.False(t, s.reviews[0].Answer.IsCorrect)
	assert.Equal(t, "hola", s.reviews[0].Answer.Text)
	assert.Nil(t, s.reviews[0].Update.DueDate)

	assert.True(t, s.reviews[1].Answer.IsCorrect)
	require.NotNil(t, s.reviews[1].Update.DueDate)
	// The miss dropped the ladder index to the floor, so the correct
	// answer lands back on the four-hour rung.
	assert.Equal(t, reviewNow.Add(4*time.Hour), *s.reviews[1].Update.DueDate)

	assert.Contains(t, out.String(), "Not quite...")
	assert.Contains(t, out.String(), "expected: bonjour")
	assert.Contains(t, out.String(), "0 - not correct")
}

func TestReviewOverrideAddsAlias(t *testing.T) {
	s := newMockStore(dueCard(1, 1, "hello", "bonjour"))
	r, _ := newReview(s, "salut\n2\n")

	err := r.Run(context.Background(), &store.Deck{ID: 1}, ModeDirect, 0)
	require.NoError(t, err)

	require.Len(t, s.reviews, 1)
	assert.True(t, s.reviews[0].Answer.IsCorrect)
	require.NotNil(t, s.reviews[0].Update.Answers)
	assert.Equal(t, []string{"bonjour", "salut"}, *s.reviews[0].Update.Answers)
	assert.Equal(t, []string{"bonjour", "salut"}, s.cards[0].Answers)
}

func TestReviewOverrideMarksCorrect(t *testing.T) {
	s := newMockStore(dueCard(1, 1, "hello", "bonjour"))
	r, _ := newReview(s, "bonjour!\nnope\n1\n")

	err := r.Run(context.Background(), &store.Deck{ID: 1}, ModeDirect, 0)
	require.NoError(t, err)

	require.Len(t, s.reviews, 1)
	assert.True(t, s.reviews[0].Answer.IsCorrect)
	// Marked correct without touching the answers list.
	assert.Nil(t, s.reviews[0].Update.Answers)
	assert.Equal(t, []string{"bonjour"}, s.cards[0].Answers)
}

func TestReviewNothingDue(t *testing.T) {
	later := reviewNow.Add(3 * time.Hour)
	s := newMockStore(&store.Card{
		ID: 1, DeckID: 1, Num: 1, Question: "hello", Answers: []string{"bonjour"},
		IsActive: true, DueDate: &later,
	})
	r, out := newReview(s, "")

	err := r.Run(context.Background(), &store.Deck{ID: 1}, ModeDirect, 0)
	require.NoError(t, err)

	assert.Empty(t, s.reviews)
	assert.Contains(t, out.String(), "No cards to review.")
	assert.Contains(t, out.String(), "Next review in 3 hours.")
}

func TestReviewMaxCards(t *testing.T) {
	s := newMockStore(
		dueCard(1, 1, "first", "ok"),
		dueCard(2, 2, "second", "ok"),
		dueCard(3, 3, "third", "ok"),
	)
	r, _ := newReview(s, "ok\n")

	err := r.Run(context.Background(), &store.Deck{ID: 1}, ModeDirect, 1)
	require.NoError(t, err)

	// One correct answer exhausts the budget; the rest stay due.
	assert.Len(t, s.reviews, 1)
}

func TestReviewReversedMode(t *testing.T) {
	s := newMockStore(dueCard(1, 1, "hello", "bonjour"))
	r, out := newReview(s, "hello\n")

	err := r.Run(context.Background(), &store.Deck{ID: 1}, ModeReversed, 0)
	require.NoError(t, err)

	require.Len(t, s.reviews, 1)
	assert.True(t, s.reviews[0].Answer.IsCorrect)
	assert.Equal(t, "hello", s.reviews[0].Answer.Text)
	assert.Contains(t, out.String(), "Question: bonjour")
}

func TestReviewInterrupted(t *testing.T) {
	s := newMockStore(
		dueCard(1, 1, "first", "ok"),
		dueCard(2, 2, "second", "ok"),
	)
	r, _ := newReview(s, "ok\n")

	err := r.Run(context.Background(), &store.Deck{ID: 1}, ModeDirect, 0)
	require.Error(t, err)

	// The card answered before the interrupt is already committed.
	assert.Len(t, s.reviews, 1)
}

func TestReinsertBounds(t *testing.T) {
	sawLow, sawHigh := false, false
	for seed := int64(0); seed < 64; seed++ {
		rng := rand.New(rand.NewSource(seed))
		a, b, c, d := &store.Card{ID: 1}, &store.Card{ID: 2}, &store.Card{ID: 3}, &store.Card{ID: 4}
		queue := []*store.Card{a, b, c, d}

		// The card at position 1 was just missed; the cursor has already
		// moved past it.
		got := reinsert(queue, 2, b, rng)

		require.Len(t, got, 5)
		pos := -1
		for i := len(got) - 1; i >= 2; i-- {
			if got[i] == b {
				pos = i
				break
			}
		}
		require.GreaterOrEqual(t, pos, 3)
		require.LessOrEqual(t, pos, 4)
		switch pos {
		case 3:
			sawLow = true
		case 4:
			sawHigh = true
		}

		// Nothing already consumed or waiting gets displaced.
		assert.Equal(t, a, got[0])
		assert.Equal(t, b, got[1])
		assert.Equal(t, c, got[2])
	}
	// Both ends of the inclusive range must be reachable.
	assert.True(t, sawLow)
	assert.True(t, sawHigh)
}
