package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/drillsrs/drill/internal/errkind"
	"github.com/drillsrs/drill/store"
)

var listDecksCmd = &cobra.Command{
	Use:   "list-decks",
	Short: "print all decks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withStore(cmd.Context(), func(ctx context.Context, s *store.Store) error {
			decks, err := s.ListDecks(ctx, &store.FindDeck{})
			if err != nil {
				return err
			}
			if len(decks) == 0 {
				cons.Println("No decks to show.")
				return nil
			}

			for _, deck := range decks {
				cards, err := s.ListCards(ctx, &store.FindCard{DeckID: &deck.ID})
				if err != nil {
					return err
				}
				description := deck.Description
				if description == "" {
					description = "(no description)"
				}
				cons.Printf("%s: %s (%d cards)\n", deck.Name, description, len(cards))
			}
			return nil
		})
	},
}

var createDeckCmd = &cobra.Command{
	Use:   "create-deck <deck>",
	Short: "create a new deck",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		description, err := cmd.Flags().GetString("description")
		if err != nil {
			return err
		}

		return withStore(cmd.Context(), func(ctx context.Context, s *store.Store) error {
			existing, err := s.GetDeck(ctx, &store.FindDeck{Name: &name})
			if err != nil {
				return err
			}
			if existing != nil {
				return errkind.New(errkind.CodeDeckExists, "A deck with name %q already exists", name)
			}

			_, err = s.CreateDeck(ctx, &store.Deck{Name: name, Description: description})
			return err
		})
	},
}

var updateDeckCmd = &cobra.Command{
	Use:   "update-deck <deck>",
	Short: "edit a single deck",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		return withStore(cmd.Context(), func(ctx context.Context, s *store.Store) error {
			deck, err := s.ResolveDeck(ctx, name)
			if err != nil {
				return err
			}

			update := &store.UpdateDeck{ID: deck.ID}
			if cmd.Flags().Changed("description") {
				description, err := cmd.Flags().GetString("description")
				if err != nil {
					return err
				}
				update.Description = &description
			}
			return s.UpdateDeck(ctx, update)
		})
	},
}

var deleteDeckCmd = &cobra.Command{
	Use:   "delete-deck <deck>",
	Short: "delete a whole deck",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		return withStore(cmd.Context(), func(ctx context.Context, s *store.Store) error {
			deck, err := s.ResolveDeck(ctx, name)
			if err != nil {
				return err
			}

			ok, err := cons.Confirm("Are you sure you want to delete deck %q?", deck.Name)
			if err != nil || !ok {
				return err
			}
			return s.DeleteDeck(ctx, &store.DeleteDeck{ID: deck.ID})
		})
	},
}

func init() {
	createDeckCmd.Flags().String("description", "", "set the deck description")
	updateDeckCmd.Flags().String("description", "", "set the deck description")

	rootCmd.AddCommand(listDecksCmd, createDeckCmd, updateDeckCmd, deleteDeckCmd)
}
