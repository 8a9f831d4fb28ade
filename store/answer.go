package store

import (
	"context"
	"time"
)

// Answer is the record of one review attempt on a card. Answer records are
// immutable once created: never updated or reordered, only appended.
type Answer struct {
	ID        int32
	CardID    int32
	Date      time.Time
	Text      string
	IsCorrect bool
}

// FindAnswer is the find condition for answer. Results are always ordered by
// date ascending.
type FindAnswer struct {
	CardID *int32
}

// CreateAnswer appends an answer record to a card.
func (s *Store) CreateAnswer(ctx context.Context, create *Answer) (*Answer, error) {
	return s.driver.CreateAnswer(ctx, create)
}

// ListAnswers lists answer records with filter, oldest first.
func (s *Store) ListAnswers(ctx context.Context, find *FindAnswer) ([]*Answer, error) {
	return s.driver.ListAnswers(ctx, find)
}
