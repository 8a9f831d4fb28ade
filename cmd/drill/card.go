package main

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/drillsrs/drill/internal/console"
	"github.com/drillsrs/drill/store"
)

const (
	placePrepend = "prepend"
	placeAppend  = "append"

	sortNone    = "none"
	sortDueDate = "due-date"
)

var listCardsCmd = &cobra.Command{
	Use:   "list-cards [deck]",
	Short: "print all flashcards in a deck",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		question, _ := cmd.Flags().GetString("question")
		tagFilter, _ := cmd.Flags().GetString("tag")
		sortStyle, _ := cmd.Flags().GetString("sort")
		showAnswers, _ := cmd.Flags().GetBool("show-answers")

		var orderBy store.CardOrder
		switch sortStyle {
		case sortNone:
			orderBy = store.CardOrderNum
		case sortDueDate:
			orderBy = store.CardOrderDueDate
		default:
			return errors.Errorf("invalid sort style %q (choose %s or %s)", sortStyle, sortNone, sortDueDate)
		}

		return withStore(cmd.Context(), func(ctx context.Context, s *store.Store) error {
			deck, err := s.ResolveDeck(ctx, deckArg(args))
			if err != nil {
				return err
			}

			find := &store.FindCard{DeckID: &deck.ID, OrderBy: orderBy}
			if question != "" {
				find.QuestionLike = &question
			}
			cards, err := s.ListCards(ctx, find)
			if err != nil {
				return err
			}
			if tagFilter != "" {
				cards = filterCardsByTag(cards, tagFilter)
			}

			if len(cards) == 0 {
				cons.Println("No cards to show.")
				return nil
			}

			maxNum, err := s.MaxCardNum(ctx, &store.MaxCardNum{DeckID: deck.ID})
			if err != nil {
				return err
			}
			indexWidth := len(strconv.Itoa(maxNum)) + 1

			for _, card := range cards {
				if err := printSingleCard(ctx, s, indexWidth, card, showAnswers); err != nil {
					return err
				}
			}
			return nil
		})
	},
}

func filterCardsByTag(cards []*store.Card, name string) []*store.Card {
	filtered := make([]*store.Card, 0, len(cards))
	for _, card := range cards {
		for _, tag := range card.Tags {
			if strings.EqualFold(tag.Name, name) {
				filtered = append(filtered, card)
				break
			}
		}
	}
	return filtered
}

func printSingleCard(ctx context.Context, s *store.Store, indexWidth int, card *store.Card, showAnswers bool) error {
	cons.Printf("Card %*s: ", indexWidth, "#"+strconv.Itoa(card.Num))

	if card.IsActive && card.DueDate != nil {
		answers, err := s.ListAnswers(ctx, &store.FindAnswer{CardID: &card.ID})
		if err != nil {
			return err
		}
		correct := 0
		for _, answer := range answers {
			if answer.IsCorrect {
				correct++
			}
		}
		percent := 100.0
		if len(answers) > 0 {
			percent = float64(correct) * 100.0 / float64(len(answers))
		}
		cons.Printf("(answered %d time(s), %6.02f%% correct, due %s) ",
			len(answers), percent, console.FormatDuration(time.Until(*card.DueDate)))
	}

	cons.Printf("%s", card.Question)
	if showAnswers {
		cons.Printf(": %s", strings.Join(card.Answers, ", "))
	}
	if len(card.Tags) > 0 {
		cons.Printf(" [%s]", console.FormatTags(card.Tags))
	}
	cons.Println()
	return nil
}

var createCardCmd = &cobra.Command{
	Use:     "create-card [deck]",
	Aliases: []string{"add-card"},
	Short:   "add a new flashcard to a deck",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		question, _ := cmd.Flags().GetString("question")
		answers, _ := cmd.Flags().GetStringArray("answer")
		tagNames, _ := cmd.Flags().GetStringArray("tag")
		place, _ := cmd.Flags().GetString("place")

		if place != placePrepend && place != placeAppend {
			return errors.Errorf("invalid place %q (choose %s or %s)", place, placePrepend, placeAppend)
		}

		return withStore(cmd.Context(), func(ctx context.Context, s *store.Store) error {
			deck, err := s.ResolveDeck(ctx, deckArg(args))
			if err != nil {
				return err
			}

			tags := make([]*store.Tag, 0, len(tagNames))
			for _, name := range tagNames {
				tag, err := s.GetTagByName(ctx, deck, name)
				if err != nil {
					return err
				}
				tags = append(tags, tag)
			}

			maxNum, err := s.MaxCardNum(ctx, &store.MaxCardNum{DeckID: deck.ID})
			if err != nil {
				return err
			}

			card, err := s.CreateCard(ctx, &store.Card{
				DeckID:   deck.ID,
				Num:      maxNum + 1,
				Question: question,
				Answers:  answers,
				Tags:     tags,
			})
			if err != nil {
				return err
			}

			// Prepending puts the new card right after the studied part of
			// the deck, so it comes up in the next study session.
			if place == placePrepend {
				maxActiveNum, err := s.MaxCardNum(ctx, &store.MaxCardNum{DeckID: deck.ID, ActiveOnly: true})
				if err != nil {
					return err
				}
				if err := s.MoveCard(ctx, &store.MoveCard{
					DeckID: deck.ID,
					CardID: card.ID,
					OldNum: &card.Num,
					NewNum: maxActiveNum + 1,
				}); err != nil {
					return err
				}
			}
			return nil
		})
	},
}

var updateCardCmd = &cobra.Command{
	Use:     "update-card <deck> <id>",
	Aliases: []string{"edit-card"},
	Short:   "edit a single flashcard",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		num, err := strconv.Atoi(args[1])
		if err != nil {
			return errors.Errorf("invalid card id %q", args[1])
		}

		return withStore(cmd.Context(), func(ctx context.Context, s *store.Store) error {
			deck, err := s.ResolveDeck(ctx, args[0])
			if err != nil {
				return err
			}
			card, err := s.GetCardByNum(ctx, deck, num)
			if err != nil {
				return err
			}

			ok, err := cons.Confirm("Are you sure you want to update card #%d (%q)?", card.Num, card.Question)
			if err != nil || !ok {
				return err
			}

			update := &store.UpdateCard{ID: card.ID}
			if cmd.Flags().Changed("question") {
				question, _ := cmd.Flags().GetString("question")
				update.Question = &question
			}
			if cmd.Flags().Changed("answer") {
				answers, _ := cmd.Flags().GetStringArray("answer")
				update.Answers = &answers
			}
			if cmd.Flags().Changed("tag") {
				tagNames, _ := cmd.Flags().GetStringArray("tag")
				tagIDs := make([]int32, 0, len(tagNames))
				for _, name := range tagNames {
					tag, err := s.GetTagByName(ctx, deck, name)
					if err != nil {
						return err
					}
					tagIDs = append(tagIDs, tag.ID)
				}
				update.TagIDs = &tagIDs
			}
			if err := s.UpdateCard(ctx, update); err != nil {
				return err
			}

			if cmd.Flags().Changed("new-id") {
				newNum, _ := cmd.Flags().GetInt("new-id")
				return s.MoveCard(ctx, &store.MoveCard{
					DeckID: deck.ID,
					CardID: card.ID,
					OldNum: &card.Num,
					NewNum: newNum,
				})
			}
			return nil
		})
	},
}

var deleteCardCmd = &cobra.Command{
	Use:   "delete-card <deck> <id>",
	Short: "delete a single flashcard",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		num, err := strconv.Atoi(args[1])
		if err != nil {
			return errors.Errorf("invalid card id %q", args[1])
		}

		return withStore(cmd.Context(), func(ctx context.Context, s *store.Store) error {
			deck, err := s.ResolveDeck(ctx, args[0])
			if err != nil {
				return err
			}
			card, err := s.GetCardByNum(ctx, deck, num)
			if err != nil {
				return err
			}

			ok, err := cons.Confirm("Are you sure you want to delete card #%d (%q)?", card.Num, card.Question)
			if err != nil || !ok {
				return err
			}
			return s.DeleteCard(ctx, &store.DeleteCard{ID: card.ID})
		})
	},
}

func init() {
	listCardsCmd.Flags().StringP("question", "q", "", "filter by question text")
	listCardsCmd.Flags().StringP("tag", "t", "", "filter by tag")
	listCardsCmd.Flags().String("sort", sortNone, "change sort style (none or due-date)")
	listCardsCmd.Flags().Bool("show-answers", false, "show answers text")

	createCardCmd.Flags().StringP("question", "q", "", "set the card's question text")
	createCardCmd.Flags().StringArrayP("answer", "a", nil, "set the card's answers text")
	createCardCmd.Flags().StringArrayP("tag", "t", nil, "add optional tags to the card")
	createCardCmd.Flags().StringP("place", "p", placePrepend, "choose where to put the card in the deck")
	_ = createCardCmd.MarkFlagRequired("question")
	_ = createCardCmd.MarkFlagRequired("answer")

	updateCardCmd.Flags().StringP("question", "q", "", "set the card's question text")
	updateCardCmd.Flags().StringArrayP("answer", "a", nil, "set the card's answers text")
	updateCardCmd.Flags().StringArrayP("tag", "t", nil, "set the tags of the card")
	updateCardCmd.Flags().Int("new-id", 0, "move the card to the desired place in the deck")

	rootCmd.AddCommand(listCardsCmd, createCardCmd, updateCardCmd, deleteCardCmd)
}
