package main

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/drillsrs/drill/store"
)

// deckFile is the JSON wire format of an exported deck. Card ids are the
// per-deck ordinals, tag references are names, timestamps are ISO-8601.
type deckFile struct {
	Name        string         `json:"name"`
	Description *string        `json:"description"`
	Tags        []deckFileTag  `json:"tags"`
	Cards       []deckFileCard `json:"cards"`
}

type deckFileTag struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type deckFileCard struct {
	ID             int              `json:"id"`
	Question       string           `json:"question"`
	Answers        []string         `json:"answers"`
	Active         bool             `json:"active"`
	ActivationDate *string          `json:"activation_date"`
	Tags           []string         `json:"tags"`
	UserAnswers    []deckFileAnswer `json:"user_answers"`
}

type deckFileAnswer struct {
	Date    string `json:"date"`
	Correct bool   `json:"correct"`
}

func formatExportTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

// parseExportTime accepts the formats this tool and its predecessors wrote:
// RFC 3339 and bare ISO-8601 without a zone.
func parseExportTime(s string) (time.Time, error) {
	for _, layout := range []string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05.999999",
		"2006-01-02T15:04:05",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.Errorf("unrecognized timestamp %q", s)
}

func buildDeckFile(ctx context.Context, s *store.Store, deck *store.Deck) (*deckFile, error) {
	file := &deckFile{Name: deck.Name}
	if deck.Description != "" {
		file.Description = &deck.Description
	}

	tags, err := s.ListTags(ctx, &store.FindTag{DeckID: &deck.ID})
	if err != nil {
		return nil, err
	}
	file.Tags = make([]deckFileTag, 0, len(tags))
	for _, tag := range tags {
		file.Tags = append(file.Tags, deckFileTag{Name: tag.Name, Color: tag.Color})
	}

	cards, err := s.ListCards(ctx, &store.FindCard{DeckID: &deck.ID, OrderBy: store.CardOrderNum})
	if err != nil {
		return nil, err
	}
	file.Cards = make([]deckFileCard, 0, len(cards))
	for _, card := range cards {
		answers, err := s.ListAnswers(ctx, &store.FindAnswer{CardID: &card.ID})
		if err != nil {
			return nil, err
		}

		entry := deckFileCard{
			ID:             card.Num,
			Question:       card.Question,
			Answers:        card.Answers,
			Active:         card.IsActive,
			ActivationDate: formatExportTime(card.ActivationDate),
			Tags:           make([]string, 0, len(card.Tags)),
			UserAnswers:    make([]deckFileAnswer, 0, len(answers)),
		}
		for _, tag := range card.Tags {
			entry.Tags = append(entry.Tags, tag.Name)
		}
		for _, answer := range answers {
			entry.UserAnswers = append(entry.UserAnswers, deckFileAnswer{
				Date:    answer.Date.Format(time.RFC3339),
				Correct: answer.IsCorrect,
			})
		}
		file.Cards = append(file.Cards, entry)
	}
	return file, nil
}

var exportCmd = &cobra.Command{
	Use:   "export <deck> [path]",
	Short: "export a deck to a JSON file",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd.Context(), func(ctx context.Context, s *store.Store) error {
			deck, err := s.ResolveDeck(ctx, args[0])
			if err != nil {
				return err
			}
			file, err := buildDeckFile(ctx, s, deck)
			if err != nil {
				return err
			}

			var out io.Writer = os.Stdout
			if len(args) > 1 {
				handle, err := os.Create(args[1])
				if err != nil {
					return errors.Wrapf(err, "failed to create %s", args[1])
				}
				defer handle.Close()
				out = handle
			}
			return errors.Wrap(json.NewEncoder(out).Encode(file), "failed to write export")
		})
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
