package store

import (
	"context"
	"time"

	"github.com/lithammer/shortuuid/v4"

	"github.com/drillsrs/drill/internal/errkind"
)

// CardOrder selects how listed cards are sorted.
type CardOrder string

const (
	// CardOrderNum sorts by the per-deck ordinal, ascending.
	CardOrderNum CardOrder = "NUM"
	// CardOrderDueDate sorts active cards first, then by due date
	// ascending with the ordinal as tie-break.
	CardOrderDueDate CardOrder = "DUE_DATE"
)

// Card is the object representing a flashcard.
//
// A card is created inactive with no due date. It becomes active exactly
// once, via a study session, and from then on carries a due date that is
// recomputed after every recorded answer.
type Card struct {
	ID     int32
	UID    string
	DeckID int32
	// Num is the unique per-deck ordinal. It defines display order and
	// the due-date tie-break.
	Num      int
	Question string
	// Answers is the non-empty list of acceptable answers. Matching is
	// case-insensitive; review can append new synonyms.
	Answers        []string
	IsActive       bool
	ActivationDate *time.Time
	DueDate        *time.Time
	// Tags holds the tag references attached to this card, a subset of
	// the deck's tags.
	Tags []*Tag
}

// FindCard is the find condition for card.
type FindCard struct {
	ID           *int32
	DeckID       *int32
	Num          *int
	IsActive     *bool
	QuestionLike *string

	OrderBy CardOrder
	Limit   *int
}

// UpdateCard is the update request for card.
type UpdateCard struct {
	ID             int32
	Num            *int
	Question       *string
	Answers        *[]string
	IsActive       *bool
	ActivationDate *time.Time
	DueDate        *time.Time
	// TagIDs, when set, replaces the card's tag set.
	TagIDs *[]int32
}

// DeleteCard is the delete request for card.
type DeleteCard struct {
	ID int32
}

// MoveCard is the renumbering request for card.
//
// When OldNum is set, the other cards in the half-open range between OldNum
// and NewNum shift by one position toward the vacated slot. When OldNum is
// nil the card has no meaningful position yet: every card at NewNum or later
// shifts up by one first.
type MoveCard struct {
	DeckID int32
	CardID int32
	OldNum *int
	NewNum int
}

// MaxCardNum is the query for the highest ordinal in a deck.
type MaxCardNum struct {
	DeckID int32
	// ActiveOnly restricts the query to active cards.
	ActiveOnly bool
}

// RecordReview is the per-card commit unit of a review session: one answer
// record plus the resulting card mutation, applied atomically.
type RecordReview struct {
	Answer *Answer
	Update *UpdateCard
}

// CreateCard creates a new card, stamping a stable UID used by exports.
func (s *Store) CreateCard(ctx context.Context, create *Card) (*Card, error) {
	if create.UID == "" {
		create.UID = shortuuid.New()
	}
	return s.driver.CreateCard(ctx, create)
}

// ListCards lists cards with filter.
func (s *Store) ListCards(ctx context.Context, find *FindCard) ([]*Card, error) {
	return s.driver.ListCards(ctx, find)
}

// GetCard gets a card by find condition.
func (s *Store) GetCard(ctx context.Context, find *FindCard) (*Card, error) {
	list, err := s.driver.ListCards(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// GetCardByNum gets a card in a deck by its ordinal.
func (s *Store) GetCardByNum(ctx context.Context, deck *Deck, num int) (*Card, error) {
	card, err := s.GetCard(ctx, &FindCard{DeckID: &deck.ID, Num: &num})
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, errkind.New(errkind.CodeCardNotFound, "A card with ID %d doesn't exist", num)
	}
	return card, nil
}

// UpdateCard updates a card.
func (s *Store) UpdateCard(ctx context.Context, update *UpdateCard) error {
	return s.driver.UpdateCard(ctx, update)
}

// DeleteCard deletes a card with its answer records.
func (s *Store) DeleteCard(ctx context.Context, delete *DeleteCard) error {
	return s.driver.DeleteCard(ctx, delete)
}

// MoveCard renumbers a card within its deck.
func (s *Store) MoveCard(ctx context.Context, move *MoveCard) error {
	return s.driver.MoveCard(ctx, move)
}

// MaxCardNum returns the highest card ordinal in a deck, or 0 for an empty
// deck.
func (s *Store) MaxCardNum(ctx context.Context, find *MaxCardNum) (int, error) {
	return s.driver.MaxCardNum(ctx, find)
}

// RecordReview commits one reviewed card: the answer record and the card
// mutation together.
func (s *Store) RecordReview(ctx context.Context, record *RecordReview) error {
	return s.driver.RecordReview(ctx, record)
}
