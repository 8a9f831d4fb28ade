package session

import (
	"context"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/drillsrs/drill/internal/console"
	"github.com/drillsrs/drill/scheduler"
	"github.com/drillsrs/drill/store"
)

// Review runs review sessions: repeated shuffled rounds over the due cards
// of a deck until nothing is due anymore.
//
// The random source and the clock are injected so tests can pin the shuffle,
// the reinsertion index, and the recorded timestamps.
type Review struct {
	Store   Store
	Console *console.Console
	Rand    *rand.Rand
	Now     func() time.Time
}

// reviewOutcome is what one card presentation produced.
type reviewOutcome struct {
	answer *store.Answer
	// aliasAdded is set when the user chose to accept their answer as a
	// new synonym, growing the card's answers list.
	aliasAdded bool
}

// Run drives the session. maxCards, when positive, caps how many cards may
// be answered correctly before the session stops handing out new ones.
func (r *Review) Run(ctx context.Context, deck *store.Deck, mode Mode, maxCards int) error {
	firstIteration := true
	cardsLeft := maxCards

	for {
		queue, err := scheduler.DueCards(ctx, r.Store, deck, r.Now())
		if err != nil {
			return err
		}
		r.Rand.Shuffle(len(queue), func(i, j int) {
			queue[i], queue[j] = queue[j], queue[i]
		})
		if maxCards > 0 && len(queue) > cardsLeft {
			queue = queue[:cardsLeft]
		}

		if len(queue) == 0 {
			if firstIteration {
				r.Console.Println("No cards to review.")
			} else {
				r.Console.Println("No more cards to review.")
			}
			active, err := scheduler.ActiveCards(ctx, r.Store, deck)
			if err != nil {
				return err
			}
			if len(active) > 0 && active[0].DueDate != nil {
				r.Console.Printf("Next review in %s.\n", console.FormatDuration(active[0].DueDate.Sub(r.Now())))
			}
			return nil
		}

		if !firstIteration {
			r.Console.Printf("%d cards to review.\n\n", len(queue))
		}

		index := 0
		correctCount := 0
		for index < len(queue) {
			card := queue[index]
			outcome, err := r.reviewSingleCard(index, correctCount, len(queue), card, mode)
			if err != nil {
				return err
			}
			index++

			update := &store.UpdateCard{ID: card.ID}
			if outcome.aliasAdded {
				update.Answers = &card.Answers
			}

			if outcome.answer.IsCorrect {
				history, err := r.Store.ListAnswers(ctx, &store.FindAnswer{CardID: &card.ID})
				if err != nil {
					return err
				}
				history = append(history, outcome.answer)
				update.DueDate = scheduler.NextDueDate(card, history, r.Now())
				correctCount++
				if maxCards > 0 {
					cardsLeft--
				}
			} else {
				queue = reinsert(queue, index, card, r.Rand)
			}

			// One commit per card: an interrupt never loses more than
			// the card in flight.
			if err := r.Store.RecordReview(ctx, &store.RecordReview{
				Answer: outcome.answer,
				Update: update,
			}); err != nil {
				return err
			}
		}

		firstIteration = false
	}
}

// reinsert puts a missed card back into the round's queue at a random slot
// in [index + remaining/2, len(queue)], so it resurfaces later in the same
// round, biased toward the back half of what's left. The upper bound is the
// queue length before insertion; repeated misses can keep pushing a card
// further back without a cap.
func reinsert(queue []*store.Card, index int, card *store.Card, rng *rand.Rand) []*store.Card {
	lo := index + (len(queue)-index)/2
	hi := len(queue)
	pos := lo + rng.Intn(hi-lo+1)

	queue = append(queue, nil)
	copy(queue[pos+1:], queue[pos:])
	queue[pos] = card
	return queue
}

func (r *Review) reviewSingleCard(index, correctCount, queueLen int, card *store.Card, mode Mode) (*reviewOutcome, error) {
	r.Console.Printf("Card #%d (%.1f%% done, %d left, %.1f%% correct)\n",
		card.Num,
		float64(index)/float64(queueLen)*100,
		queueLen-index,
		float64(correctCount)/float64(max(1, index))*100)

	rawQuestion := card.Question
	rawAnswers := card.Answers
	if mode == ModeReversed || (mode == ModeMixed && r.Rand.Float64() > 0.5) {
		rawQuestion = rawAnswers[r.Rand.Intn(len(rawAnswers))]
		rawAnswers = []string{card.Question}
	}

	r.Console.Println(console.RenderQuestion(rawQuestion, card.Tags))
	answerText, err := r.Console.AskNonEmpty("Answer: ")
	if err != nil {
		return nil, err
	}

	isCorrect := false
	for _, accepted := range rawAnswers {
		if strings.EqualFold(answerText, accepted) {
			isCorrect = true
			break
		}
	}

	aliasAdded := false
	if isCorrect {
		r.Console.Println(console.Color("Correct!", console.ColorSuccess))
	} else {
		r.Console.Printf("%s expected: %s\n", console.Color("Not quite...", console.ColorFail), strings.Join(rawAnswers, ", "))
		r.Console.Println("0 - not correct")
		r.Console.Println("1 - correct, don't add alias")
		r.Console.Println("2 - correct, add alias")

		for {
			input, err := r.Console.Ask("Choice: ")
			if err != nil {
				return nil, err
			}
			choice, err := strconv.Atoi(strings.TrimSpace(input))
			if err != nil || choice < 0 || choice > 2 {
				continue
			}
			switch choice {
			case 0:
				isCorrect = false
			case 1:
				isCorrect = true
			case 2:
				isCorrect = true
				card.Answers = append(card.Answers, answerText)
				aliasAdded = true
			}
			break
		}
	}
	r.Console.Println()

	return &reviewOutcome{
		answer: &store.Answer{
			CardID:    card.ID,
			Date:      r.Now(),
			Text:      answerText,
			IsCorrect: isCorrect,
		},
		aliasAdded: aliasAdded,
	}, nil
}
