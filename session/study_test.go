package session

import (
	"context"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drillsrs/drill/internal/console"
	"github.com/drillsrs/drill/store"
)

func inactiveCard(id int32, num int, question string, answers ...string) *store.Card {
	return &store.Card{
		ID:       id,
		DeckID:   1,
		Num:      num,
		Question: question,
		Answers:  answers,
	}
}

func newStudy(s *mockStore, input string) (*Study, *strings.Builder) {
	var out strings.Builder
	return &Study{
		Store:   s,
		Console: console.New(strings.NewReader(input), &out),
		Rand:    rand.New(rand.NewSource(1)),
		Now:     func() time.Time { return reviewNow },
	}, &out
}

func TestStudyActivatesCards(t *testing.T) {
	s := newMockStore(
		inactiveCard(1, 1, "first", "eins"),
		inactiveCard(2, 2, "second", "zwei"),
	)
	// Two enters per card: one after the question, one after the answers.
	st, out := newStudy(s, "\n\n\n\n")

	err := st.Run(context.Background(), &store.Deck{ID: 1}, ModeDirect, 10)
	require.NoError(t, err)

	require.Len(t, s.updates, 2)
	for _, update := range s.updates {
		require.NotNil(t, update.IsActive)
		assert.True(t, *update.IsActive)
		require.NotNil(t, update.ActivationDate)
		assert.Equal(t, reviewNow, *update.ActivationDate)
		// Freshly activated cards are due right away.
		require.NotNil(t, update.DueDate)
		assert.Equal(t, reviewNow, *update.DueDate)
	}
	assert.True(t, s.cards[0].IsActive)
	assert.True(t, s.cards[1].IsActive)

	assert.Contains(t, out.String(), "2 cards to study. After seeing a card, hit enter.")
	assert.Contains(t, out.String(), "Question: first")
	assert.Contains(t, out.String(), "Answers: eins")
}

func TestStudyNoCards(t *testing.T) {
	s := newMockStore(dueCard(1, 1, "hello", "bonjour"))
	st, out := newStudy(s, "")

	err := st.Run(context.Background(), &store.Deck{ID: 1}, ModeDirect, 10)
	require.NoError(t, err)

	assert.Empty(t, s.updates)
	assert.Contains(t, out.String(), "No cards to study.")
}

func TestStudyHonorsLimit(t *testing.T) {
	s := newMockStore(
		inactiveCard(1, 1, "first", "eins"),
		inactiveCard(2, 2, "second", "zwei"),
		inactiveCard(3, 3, "third", "drei"),
	)
	st, _ := newStudy(s, "\n\n")

	err := st.Run(context.Background(), &store.Deck{ID: 1}, ModeDirect, 1)
	require.NoError(t, err)

	require.Len(t, s.updates, 1)
	// Lowest ordinal first.
	assert.Equal(t, int32(1), s.updates[0].ID)
}

func TestStudyInterrupted(t *testing.T) {
	s := newMockStore(
		inactiveCard(1, 1, "first", "eins"),
		inactiveCard(2, 2, "second", "zwei"),
	)
	st, _ := newStudy(s, "\n\n\n")

	err := st.Run(context.Background(), &store.Deck{ID: 1}, ModeDirect, 10)
	require.Error(t, err)

	// The first card was fully seen and committed before the interrupt.
	require.Len(t, s.updates, 1)
	assert.Equal(t, int32(1), s.updates[0].ID)
	assert.True(t, s.cards[0].IsActive)
	assert.False(t, s.cards[1].IsActive)
}

func TestStudyReversedMode(t *testing.T) {
	s := newMockStore(inactiveCard(1, 1, "hello", "bonjour"))
	st, out := newStudy(s, "\n\n")

	err := st.Run(context.Background(), &store.Deck{ID: 1}, ModeReversed, 10)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Question: bonjour")
	assert.Contains(t, out.String(), "Answers: hello")
}
