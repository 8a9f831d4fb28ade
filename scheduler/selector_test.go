package scheduler

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drillsrs/drill/store"
)

// mockCardStore answers ListCards from an in-memory slice, honoring the
// filters and orderings the selectors rely on.
type mockCardStore struct {
	cards []*store.Card
}

func (m *mockCardStore) ListCards(_ context.Context, find *store.FindCard) ([]*store.Card, error) {
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
			if a.IsActive != b.IsActive {
				return a.IsActive
			}
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

func deckCards(deckID int32, now time.Time) []*store.Card {
	due := func(d time.Duration) *time.Time {
		t := now.Add(d)
		return &t
	}
	return []*store.Card{
		{ID: 1, DeckID: deckID, Num: 1, IsActive: true, DueDate: due(-2 * time.Hour)},
		{ID: 2, DeckID: deckID, Num: 2, IsActive: true, DueDate: due(3 * time.Hour)},
		{ID: 3, DeckID: deckID, Num: 3, IsActive: true, DueDate: due(-30 * time.Minute)},
		{ID: 4, DeckID: deckID, Num: 4, IsActive: false},
		{ID: 5, DeckID: deckID, Num: 5, IsActive: false},
		{ID: 6, DeckID: deckID, Num: 6, IsActive: false},
	}
}

func TestDueCards(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	deck := &store.Deck{ID: 7}
	s := &mockCardStore{cards: deckCards(deck.ID, now)}

	due, err := DueCards(context.Background(), s, deck, now)
	require.NoError(t, err)

	ids := []int32{}
	for _, card := range due {
		ids = append(ids, card.ID)
	}
	// Earliest due first; card 2 is not yet due.
	assert.Equal(t, []int32{1, 3}, ids)
}

func TestDueCardsNoneDue(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	deck := &store.Deck{ID: 7}
	s := &mockCardStore{cards: deckCards(deck.ID, now.Add(-48*time.Hour))}

	due, err := DueCards(context.Background(), s, deck, now.Add(-72*time.Hour))
	require.NoError(t, err)
	assert.Empty(t, due)
}

func TestActiveCardsOrdering(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	deck := &store.Deck{ID: 7}
	s := &mockCardStore{cards: deckCards(deck.ID, now)}

	active, err := ActiveCards(context.Background(), s, deck)
	require.NoError(t, err)
	require.Len(t, active, 3)
	// Sorted by due date ascending regardless of being due.
	assert.Equal(t, int32(1), active[0].ID)
	assert.Equal(t, int32(3), active[1].ID)
	assert.Equal(t, int32(2), active[2].ID)
}

func TestCardsToStudy(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	deck := &store.Deck{ID: 7}
	s := &mockCardStore{cards: deckCards(deck.ID, now)}

	cards, err := CardsToStudy(context.Background(), s, deck, 2)
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, 4, cards[0].Num)
	assert.Equal(t, 5, cards[1].Num)

	cards, err = CardsToStudy(context.Background(), s, deck, 10)
	require.NoError(t, err)
	assert.Len(t, cards, 3)
}
