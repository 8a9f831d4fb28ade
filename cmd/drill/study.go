package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/drillsrs/drill/session"
	"github.com/drillsrs/drill/store"
)

var studyCmd = &cobra.Command{
	Use:     "study [deck]",
	Aliases: []string{"learn"},
	Short:   "begin a study session",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		howMany, _ := cmd.Flags().GetInt("count")
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

			study := &session.Study{
				Store:   s,
				Console: cons,
				Rand:    newSessionRand(),
				Now:     time.Now,
			}
			return study.Run(ctx, deck, mode, howMany)
		})
	},
}

func init() {
	studyCmd.Flags().IntP("count", "n", 10, "set how many flashcards to study")
	studyCmd.Flags().StringP("mode", "m", string(session.ModeDirect),
		"learning mode (direct, reversed or mixed)")

	rootCmd.AddCommand(studyCmd)
}
