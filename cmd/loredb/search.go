package main

import (
	"context"

	"github.com/spf13/cobra"
)

var (
	searchByAuthor bool
	searchNum      int
)

var searchCmd = &cobra.Command{
	Use:   "search <pattern>",
	Short: "Search lore by substring",
	Long:  "Show the newest entries whose text contains the pattern (case-sensitive). With --author, match against the author instead.",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().BoolVarP(&searchByAuthor, "author", "a", false, "Search on author instead of text")
	searchCmd.Flags().IntVarP(&searchNum, "num", "n", 10, "Number of entries to show")
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	svc, closer, err := newArchive()
	if err != nil {
		return err
	}
	defer closer.Close()

	entries, err := svc.Search(ctx, args[0], searchByAuthor, searchNum)
	if err != nil {
		return err
	}

	return printEntries(ctx, cmd, svc, entries, true)
}
