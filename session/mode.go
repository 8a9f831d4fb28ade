// Package session drives the interactive study and review sessions.
package session

import (
	"context"

	"github.com/pkg/errors"

	"github.com/drillsrs/drill/store"
)

// Mode selects which side of a card is shown as the question. It only
// affects presentation, never scheduling or history.
type Mode string

const (
	// ModeDirect shows the question side.
	ModeDirect Mode = "direct"
	// ModeReversed prompts with one of the answers and expects the question.
	ModeReversed Mode = "reversed"
	// ModeMixed flips a fair coin per presentation.
	ModeMixed Mode = "mixed"
)

// ParseMode parses a mode flag value.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeDirect, ModeReversed, ModeMixed:
		return Mode(s), nil
	}
	return "", errors.Errorf("invalid mode %q (choose direct, reversed or mixed)", s)
}

// Store is the slice of the storage collaborator the session engines need.
type Store interface {
	ListCards(ctx context.Context, find *store.FindCard) ([]*store.Card, error)
	ListAnswers(ctx context.Context, find *store.FindAnswer) ([]*store.Answer, error)
	UpdateCard(ctx context.Context, update *store.UpdateCard) error
	RecordReview(ctx context.Context, record *store.RecordReview) error
}
