package main

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/drillsrs/drill/scheduler"
	"github.com/drillsrs/drill/store"
)

var importCmd = &cobra.Command{
	Use:   "import [path]",
	Short: "import a deck from a JSON file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var in io.Reader = os.Stdin
		if len(args) > 0 {
			handle, err := os.Open(args[0])
			if err != nil {
				return errors.Wrapf(err, "failed to open %s", args[0])
			}
			defer handle.Close()
			in = handle
		}

		var file deckFile
		if err := json.NewDecoder(in).Decode(&file); err != nil {
			return errors.Wrap(err, "failed to parse deck file")
		}

		return withStore(cmd.Context(), func(ctx context.Context, s *store.Store) error {
			return importDeck(ctx, s, &file)
		})
	},
}

func importDeck(ctx context.Context, s *store.Store, file *deckFile) error {
	existing, err := s.GetDeck(ctx, &store.FindDeck{Name: &file.Name})
	if err != nil {
		return err
	}
	if existing != nil {
		ok, err := cons.Confirm("Are you sure you want to overwrite deck %q?", file.Name)
		if err != nil || !ok {
			return err
		}
		if err := s.DeleteDeck(ctx, &store.DeleteDeck{ID: existing.ID}); err != nil {
			return err
		}
	}

	description := ""
	if file.Description != nil {
		description = *file.Description
	}
	deck, err := s.CreateDeck(ctx, &store.Deck{Name: file.Name, Description: description})
	if err != nil {
		return err
	}

	tagsByName := make(map[string]*store.Tag, len(file.Tags))
	for _, entry := range file.Tags {
		color := entry.Color
		if color == "" {
			color = store.DefaultTagColor
		}
		tag, err := s.CreateTag(ctx, &store.Tag{DeckID: deck.ID, Name: entry.Name, Color: color})
		if err != nil {
			return err
		}
		tagsByName[tag.Name] = tag
	}

	now := time.Now()
	for _, entry := range file.Cards {
		if err := importCard(ctx, s, deck, tagsByName, &entry, now); err != nil {
			return errors.Wrapf(err, "failed to import card #%d", entry.ID)
		}
	}
	return nil
}

func importCard(
	ctx context.Context,
	s *store.Store,
	deck *store.Deck,
	tagsByName map[string]*store.Tag,
	entry *deckFileCard,
	now time.Time,
) error {
	answers := make([]*store.Answer, 0, len(entry.UserAnswers))
	for _, answerEntry := range entry.UserAnswers {
		date, err := parseExportTime(answerEntry.Date)
		if err != nil {
			return err
		}
		answers = append(answers, &store.Answer{Date: date, IsCorrect: answerEntry.Correct})
	}

	card := &store.Card{
		DeckID:   deck.ID,
		Num:      entry.ID,
		Question: entry.Question,
		Answers:  entry.Answers,
		IsActive: entry.Active,
	}
	if entry.ActivationDate != nil {
		date, err := parseExportTime(*entry.ActivationDate)
		if err != nil {
			return err
		}
		card.ActivationDate = &date
	} else if len(answers) > 0 {
		// Older exports carry no activation date; the first recorded answer
		// is the closest stand-in.
		card.ActivationDate = &answers[0].Date
	}

	tags := make([]*store.Tag, 0, len(entry.Tags))
	for _, name := range entry.Tags {
		tag, ok := tagsByName[name]
		if !ok {
			return errors.Errorf("card references unknown tag %q", name)
		}
		tags = append(tags, tag)
	}
	card.Tags = tags

	// Due dates are derived state: recompute from the imported history
	// instead of trusting the file.
	card.DueDate = scheduler.NextDueDate(card, answers, now)

	card, err := s.CreateCard(ctx, card)
	if err != nil {
		return err
	}

	for _, answer := range answers {
		answer.CardID = card.ID
		if _, err := s.CreateAnswer(ctx, answer); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(importCmd)
}
