package store

import (
	"context"

	"github.com/lithammer/shortuuid/v4"

	"github.com/drillsrs/drill/internal/errkind"
)

// Deck is the object representing a deck of flashcards.
type Deck struct {
	ID          int32
	UID         string
	Name        string
	Description string
}

// FindDeck is the find condition for deck.
type FindDeck struct {
	ID   *int32
	Name *string
}

// UpdateDeck is the update request for deck.
type UpdateDeck struct {
	ID          int32
	Name        *string
	Description *string
}

// DeleteDeck is the delete request for deck.
type DeleteDeck struct {
	ID int32
}

// CreateDeck creates a new deck, stamping a stable UID used by exports.
func (s *Store) CreateDeck(ctx context.Context, create *Deck) (*Deck, error) {
	if create.UID == "" {
		create.UID = shortuuid.New()
	}
	return s.driver.CreateDeck(ctx, create)
}

// ListDecks lists decks with filter.
func (s *Store) ListDecks(ctx context.Context, find *FindDeck) ([]*Deck, error) {
	return s.driver.ListDecks(ctx, find)
}

// GetDeck gets a deck by find condition.
func (s *Store) GetDeck(ctx context.Context, find *FindDeck) (*Deck, error) {
	list, err := s.driver.ListDecks(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// UpdateDeck updates a deck.
func (s *Store) UpdateDeck(ctx context.Context, update *UpdateDeck) error {
	return s.driver.UpdateDeck(ctx, update)
}

// DeleteDeck deletes a deck with its cards, their answers, and its tags.
func (s *Store) DeleteDeck(ctx context.Context, delete *DeleteDeck) error {
	return s.driver.DeleteDeck(ctx, delete)
}

// ResolveDeck resolves a possibly empty deck name to a deck. An empty name
// resolves only when exactly one deck exists; several decks need an explicit
// name.
func (s *Store) ResolveDeck(ctx context.Context, name string) (*Deck, error) {
	if name == "" {
		decks, err := s.driver.ListDecks(ctx, &FindDeck{})
		if err != nil {
			return nil, err
		}
		if len(decks) < 1 {
			return nil, errkind.New(errkind.CodeDeckNotFound, "No deck available. Create one first.")
		}
		if len(decks) > 1 {
			return nil, errkind.New(errkind.CodeAmbiguousDeck, "Need to specify which deck to use.")
		}
		return decks[0], nil
	}

	deck, err := s.GetDeck(ctx, &FindDeck{Name: &name})
	if err != nil {
		return nil, err
	}
	if deck == nil {
		return nil, errkind.New(errkind.CodeDeckNotFound, "A deck with name %q doesn't exist", name)
	}
	return deck, nil
}
