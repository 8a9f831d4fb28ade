package main

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/drillsrs/drill/internal/console"
	"github.com/drillsrs/drill/store"
)

var listTagsCmd = &cobra.Command{
	Use:   "list-tags [deck]",
	Short: "print all tags in a deck",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd.Context(), func(ctx context.Context, s *store.Store) error {
			deck, err := s.ResolveDeck(ctx, deckArg(args))
			if err != nil {
				return err
			}

			tags, err := s.ListTags(ctx, &store.FindTag{DeckID: &deck.ID})
			if err != nil {
				return err
			}
			if len(tags) == 0 {
				cons.Println("No tags to show.")
				return nil
			}

			for i, tag := range tags {
				usages, err := s.CountTagUsages(ctx, tag.ID)
				if err != nil {
					return err
				}
				cons.Printf("Tag #%d\n", i+1)
				cons.Printf("Name:    %s\n", tag.Name)
				cons.Printf("Color:   %s\n", tag.Color)
				cons.Printf("Preview: [%s]\n", console.FormatTag(tag))
				cons.Printf("Usages:  %d\n", usages)
				cons.Println()
			}
			return nil
		})
	},
}

var createTagCmd = &cobra.Command{
	Use:   "create-tag [deck]",
	Short: "add a new tag to a deck",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, err := cmd.Flags().GetString("name")
		if err != nil {
			return err
		}

		return withStore(cmd.Context(), func(ctx context.Context, s *store.Store) error {
			deck, err := s.ResolveDeck(ctx, deckArg(args))
			if err != nil {
				return err
			}

			_, err = s.CreateTag(ctx, &store.Tag{
				DeckID: deck.ID,
				Name:   name,
				Color:  store.DefaultTagColor,
			})
			return err
		})
	},
}

var updateTagCmd = &cobra.Command{
	Use:   "update-tag <deck> <tag>",
	Short: "edit a single tag",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd.Context(), func(ctx context.Context, s *store.Store) error {
			deck, err := s.ResolveDeck(ctx, args[0])
			if err != nil {
				return err
			}
			tag, err := s.GetTagByName(ctx, deck, args[1])
			if err != nil {
				return err
			}

			update := &store.UpdateTag{ID: tag.ID}
			if cmd.Flags().Changed("name") {
				name, err := cmd.Flags().GetString("name")
				if err != nil {
					return err
				}
				update.Name = &name
			}
			if cmd.Flags().Changed("color") {
				color, err := cmd.Flags().GetString("color")
				if err != nil {
					return err
				}
				if !store.IsValidTagColor(color) {
					return errors.Errorf("invalid color %q (choose one of %s)",
						color, strings.Join(store.TagColors, ", "))
				}
				update.Color = &color
			}
			return s.UpdateTag(ctx, update)
		})
	},
}

var deleteTagCmd = &cobra.Command{
	Use:   "delete-tag <deck> <tag>",
	Short: "delete a tag from the deck",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd.Context(), func(ctx context.Context, s *store.Store) error {
			deck, err := s.ResolveDeck(ctx, args[0])
			if err != nil {
				return err
			}
			tag, err := s.GetTagByName(ctx, deck, args[1])
			if err != nil {
				return err
			}

			ok, err := cons.Confirm("Are you sure you want to delete tag %q?", tag.Name)
			if err != nil || !ok {
				return err
			}
			return s.DeleteTag(ctx, &store.DeleteTag{ID: tag.ID})
		})
	},
}

// deckArg returns the optional deck-name positional, empty when omitted. An
// empty name resolves only when exactly one deck exists.
func deckArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}

func init() {
	createTagCmd.Flags().StringP("name", "n", "", "set the tag's name")
	_ = createTagCmd.MarkFlagRequired("name")
	updateTagCmd.Flags().StringP("name", "n", "", "set the new tag name")
	updateTagCmd.Flags().StringP("color", "c", "", "set the tag color")

	rootCmd.AddCommand(listTagsCmd, createTagCmd, updateTagCmd, deleteTagCmd)
}
