package main

import (
	_ "embed"

	"github.com/spf13/cobra"
)

//go:embed howto.txt
var howtoText string

var howtoCmd = &cobra.Command{
	Use:   "how-to",
	Short: "show a mini-tutorial how to use",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		cons.Printf("%s", howtoText)
	},
}

func init() {
	rootCmd.AddCommand(howtoCmd)
}
