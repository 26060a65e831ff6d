package main

import (
	"context"

	"github.com/spf13/cobra"
)

var (
	bestNum  int
	bestJSON bool
)

var bestCmd = &cobra.Command{
	Use:   "best",
	Short: "Show the highest-rated lore",
	Args:  cobra.NoArgs,
	RunE:  runBest,
}

func init() {
	bestCmd.Flags().IntVarP(&bestNum, "num", "n", 10, "Number of entries to show")
	bestCmd.Flags().BoolVar(&bestJSON, "json", false, "Output in JSON format")
}

func runBest(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	svc, closer, err := newArchive()
	if err != nil {
		return err
	}
	defer closer.Close()

	entries, err := svc.Best(ctx, bestNum)
	if err != nil {
		return err
	}

	if bestJSON {
		return printJSON(cmd.OutOrStdout(), map[string]any{
			"entries": entries,
			"total":   len(entries),
		})
	}

	return printEntries(ctx, cmd, svc, entries, false)
}
