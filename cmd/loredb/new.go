package main

import (
	"context"

	"github.com/spf13/cobra"
)

var newNum int

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Show the most recent lore",
	Args:  cobra.NoArgs,
	RunE:  runNew,
}

func init() {
	newCmd.Flags().IntVarP(&newNum, "num", "n", 10, "Number of entries to show")
}

func runNew(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	svc, closer, err := newArchive()
	if err != nil {
		return err
	}
	defer closer.Close()

	entries, err := svc.Recent(ctx, newNum)
	if err != nil {
		return err
	}

	return printEntries(ctx, cmd, svc, entries, true)
}
