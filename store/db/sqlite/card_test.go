package sqlite

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drillsrs/drill/internal/profile"
	"github.com/drillsrs/drill/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	p := &profile.Profile{
		Mode:   "dev",
		Data:   t.TempDir(),
		Driver: "sqlite",
	}
	require.NoError(t, p.Validate())

	driver, err := NewDB(p)
	require.NoError(t, err)

	s := store.New(driver, p)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func seedDeck(t *testing.T, s *store.Store, questions ...string) (*store.Deck, map[string]*store.Card) {
	t.Helper()
	ctx := context.Background()

	deck, err := s.CreateDeck(ctx, &store.Deck{Name: "numbers"})
	require.NoError(t, err)

	cards := make(map[string]*store.Card, len(questions))
	for i, question := range questions {
		card, err := s.CreateCard(ctx, &store.Card{
			DeckID:   deck.ID,
			Num:      i + 1,
			Question: question,
			Answers:  []string{question},
		})
		require.NoError(t, err)
		cards[question] = card
	}
	return deck, cards
}

// cardOrder returns the deck's questions in ordinal order, asserting along
// the way that the ordinals are still exactly 1..N.
func cardOrder(t *testing.T, s *store.Store, deckID int32) []string {
	t.Helper()

	cards, err := s.ListCards(context.Background(), &store.FindCard{DeckID: &deckID, OrderBy: store.CardOrderNum})
	require.NoError(t, err)

	questions := make([]string, 0, len(cards))
	nums := make([]int, 0, len(cards))
	for _, card := range cards {
		questions = append(questions, card.Question)
		nums = append(nums, card.Num)
	}

	sort.Ints(nums)
	for i, num := range nums {
		require.Equal(t, i+1, num, "ordinals must stay a permutation of 1..N")
	}
	return questions
}

func TestMoveCardShiftsRange(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	deck, cards := seedDeck(t, s, "one", "two", "three")

	// Moving up: everything between the old and new slot shifts one down.
	oldNum := 1
	require.NoError(t, s.MoveCard(ctx, &store.MoveCard{
		DeckID: deck.ID,
		CardID: cards["one"].ID,
		OldNum: &oldNum,
		NewNum: 3,
	}))
	assert.Equal(t, []string{"two", "three", "one"}, cardOrder(t, s, deck.ID))

	// And back down: the same range shifts one up.
	oldNum = 3
	require.NoError(t, s.MoveCard(ctx, &store.MoveCard{
		DeckID: deck.ID,
		CardID: cards["one"].ID,
		OldNum: &oldNum,
		NewNum: 1,
	}))
	assert.Equal(t, []string{"one", "two", "three"}, cardOrder(t, s, deck.ID))
}

func TestMoveCardNoOp(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	deck, cards := seedDeck(t, s, "one", "two", "three")

	oldNum := 2
	require.NoError(t, s.MoveCard(ctx, &store.MoveCard{
		DeckID: deck.ID,
		CardID: cards["two"].ID,
		OldNum: &oldNum,
		NewNum: 2,
	}))
	assert.Equal(t, []string{"one", "two", "three"}, cardOrder(t, s, deck.ID))
}

func TestMoveCardNewCardMakesRoom(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	deck, _ := seedDeck(t, s, "one", "two", "three")

	card, err := s.CreateCard(ctx, &store.Card{
		DeckID:   deck.ID,
		Num:      4,
		Question: "four",
		Answers:  []string{"four"},
	})
	require.NoError(t, err)

	// A brand-new card has no meaningful position: everything at the
	// target slot or later shifts up first.
	require.NoError(t, s.MoveCard(ctx, &store.MoveCard{
		DeckID: deck.ID,
		CardID: card.ID,
		NewNum: 1,
	}))
	assert.Equal(t, []string{"four", "one", "two", "three"}, cardOrder(t, s, deck.ID))
}
