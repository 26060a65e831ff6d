package main

import (
	"context"

	"github.com/spf13/cobra"
)

var randomNum int

var randomCmd = &cobra.Command{
	Use:   "random [pattern]",
	Short: "Show random lore",
	Long:  "Sample entries uniformly at random, optionally restricted to those whose text contains the pattern.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRandom,
}

func init() {
	randomCmd.Flags().IntVarP(&randomNum, "num", "n", 1, "Number of entries to sample")
}

func runRandom(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	svc, closer, err := newArchive()
	if err != nil {
		return err
	}
	defer closer.Close()

	pattern := ""
	if len(args) == 1 {
		pattern = args[0]
	}

	entries, err := svc.Random(ctx, pattern, randomNum)
	if err != nil {
		return err
	}

	return printEntries(ctx, cmd, svc, entries, false)
}
