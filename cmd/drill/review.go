package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/drillsrs/drill/session"
	"github.com/drillsrs/drill/store"
)

var reviewCmd = &cobra.Command{
	Use:   "review [deck]",
	Short: "begin a review session",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		maxCards, _ := cmd.Flags().GetInt("count")
		modeFlag, _ := cmd.Flags().GetString("mode")

		mode, err := session.ParseMode(modeFlag)
		if err != nil {
			return err
		}

		return withStore(cmd.Context(), func(ctx context.Context, s *store.Store) error {
			deck, err := s.ResolveDeck(ctx, deckArg(args))
			if err != nil {
				return err
			}

			review := &session.Review{
				Store:   s,
				Console: cons,
				Rand:    newSessionRand(),
				Now:     time.Now,
			}
			return review.Run(ctx, deck, mode, maxCards)
		})
	},
}

func init() {
	reviewCmd.Flags().IntP("count", "n", 0,
		"set max number of flashcards to answer correctly, 0 for no limit")
	reviewCmd.Flags().StringP("mode", "m", string(session.ModeDirect),
		"learning mode (direct, reversed or mixed)")

	rootCmd.AddCommand(reviewCmd)
}
