package store

import (
	"context"
	"database/sql"
)

// Driver is an interface for store driver.
// It contains all methods that store database driver should implement.
type Driver interface {
	GetDB() *sql.DB
	Close() error

	IsInitialized(ctx context.Context) (bool, error)

	// Deck model related methods.
	CreateDeck(ctx context.Context, create *Deck) (*Deck, error)
	ListDecks(ctx context.Context, find *FindDeck) ([]*Deck, error)
	UpdateDeck(ctx context.Context, update *UpdateDeck) error
	// DeleteDeck deletes a deck with everything it owns: the cards'
	// answers, the cards, and the tags, in a single transaction.
	DeleteDeck(ctx context.Context, delete *DeleteDeck) error

	// Card model related methods.
	CreateCard(ctx context.Context, create *Card) (*Card, error)
	ListCards(ctx context.Context, find *FindCard) ([]*Card, error)
	UpdateCard(ctx context.Context, update *UpdateCard) error
	DeleteCard(ctx context.Context, delete *DeleteCard) error

	// MoveCard renumbers a card within its deck, shifting the affected
	// range by one position. The shift and the final assignment are a
	// single transaction; a partial shift would corrupt the ordering.
	MoveCard(ctx context.Context, move *MoveCard) error
	MaxCardNum(ctx context.Context, find *MaxCardNum) (int, error)

	// Tag model related methods.
	CreateTag(ctx context.Context, create *Tag) (*Tag, error)
	ListTags(ctx context.Context, find *FindTag) ([]*Tag, error)
	UpdateTag(ctx context.Context, update *UpdateTag) error
	DeleteTag(ctx context.Context, delete *DeleteTag) error
	CountTagUsages(ctx context.Context, tagID int32) (int, error)

	// Answer model related methods.
	CreateAnswer(ctx context.Context, create *Answer) (*Answer, error)
	ListAnswers(ctx context.Context, find *FindAnswer) ([]*Answer, error)

	// RecordReview appends an answer record and applies the post-answer
	// card update in one transaction. This is the per-card commit unit of
	// a review session: an interrupt loses at most the card in flight.
	RecordReview(ctx context.Context, record *RecordReview) error
}
