package session

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"github.com/drillsrs/drill/internal/console"
	"github.com/drillsrs/drill/scheduler"
	"github.com/drillsrs/drill/store"
)

// Study runs study sessions: showing a bounded number of inactive cards in
// ordinal order and activating each one. Study is exposure only, nothing is
// graded and no answer record is created.
type Study struct {
	Store   Store
	Console *console.Console
	Rand    *rand.Rand
	Now     func() time.Time
}

// Run presents up to howMany inactive cards and activates them one by one.
// Each activation is committed individually.
func (s *Study) Run(ctx context.Context, deck *store.Deck, mode Mode, howMany int) error {
	cards, err := scheduler.CardsToStudy(ctx, s.Store, deck, howMany)
	if err != nil {
		return err
	}

	if len(cards) == 0 {
		s.Console.Println("No cards to study.")
		return nil
	}

	s.Console.Printf("%d cards to study. After seeing a card, hit enter.\n\n", len(cards))

	for index, card := range cards {
		s.Console.Printf("Card #%d (%.1f%% done, %d left)\n",
			card.Num,
			float64(index)/float64(len(cards))*100,
			len(cards)-index)

		rawQuestion := card.Question
		rawAnswers := card.Answers
		if mode == ModeReversed || (mode == ModeMixed && s.Rand.Float64() > 0.5) {
			rawQuestion = rawAnswers[s.Rand.Intn(len(rawAnswers))]
			rawAnswers = []string{card.Question}
		}

		if _, err := s.Console.Ask(console.RenderQuestion(rawQuestion, card.Tags)); err != nil {
			return err
		}
		if _, err := s.Console.Ask("Answers: " + strings.Join(rawAnswers, ", ")); err != nil {
			return err
		}
		s.Console.Println()

		now := s.Now()
		card.IsActive = true
		active := true
		if err := s.Store.UpdateCard(ctx, &store.UpdateCard{
			ID:             card.ID,
			IsActive:       &active,
			ActivationDate: &now,
			// An active card with no history is due immediately.
			DueDate: scheduler.NextDueDate(card, nil, now),
		}); err != nil {
			return err
		}
	}

	return nil
}
