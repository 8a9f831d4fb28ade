package scheduler

import (
	"context"
	"time"

	"github.com/drillsrs/drill/store"
)

// CardStore is the slice of the storage collaborator the selectors need.
type CardStore interface {
	ListCards(ctx context.Context, find *store.FindCard) ([]*store.Card, error)
}

func boolPtr(b bool) *bool { return &b }

// ActiveCards returns every active card in the deck sorted by due date
// ascending, whether due yet or not. The first entry tells when the next
// review happens.
func ActiveCards(ctx context.Context, s CardStore, deck *store.Deck) ([]*store.Card, error) {
	return s.ListCards(ctx, &store.FindCard{
		DeckID:   &deck.ID,
		IsActive: boolPtr(true),
		OrderBy:  store.CardOrderDueDate,
	})
}

// DueCards returns the active cards in the deck whose due date has passed,
// earliest due first with the ordinal as tie-break.
func DueCards(ctx context.Context, s CardStore, deck *store.Deck, now time.Time) ([]*store.Card, error) {
	cards, err := ActiveCards(ctx, s, deck)
	if err != nil {
		return nil, err
	}

	due := make([]*store.Card, 0, len(cards))
	for _, card := range cards {
		if card.DueDate != nil && !card.DueDate.After(now) {
			due = append(due, card)
		}
	}
	return due, nil
}

// CardsToStudy returns up to howMany inactive cards in the deck, lowest
// ordinal first.
func CardsToStudy(ctx context.Context, s CardStore, deck *store.Deck, howMany int) ([]*store.Card, error) {
	return s.ListCards(ctx, &store.FindCard{
		DeckID:   &deck.ID,
		IsActive: boolPtr(false),
		OrderBy:  store.CardOrderNum,
		Limit:    &howMany,
	})
}
