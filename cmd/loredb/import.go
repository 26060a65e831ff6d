package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import lore from a pipe-separated file",
	Long:  "Read time|author|text lines. Rows with unparseable timestamps are kept with an unknown time; rows duplicating archived lore upvote the existing entry.",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	svc, closer, err := newArchive()
	if err != nil {
		return err
	}
	defer closer.Close()

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open import file: %w", err)
	}
	defer f.Close()

	result, err := svc.Import(ctx, f)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d entries (%d reinforced, %d without a usable timestamp)\n",
		result.Imported, result.Reinforced, result.BadTimestamps)
	return nil
}
