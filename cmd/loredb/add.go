package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/hyperengineering/loredb/internal/archive"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <author> <lore>...",
	Short: "Archive new lore",
	Long:  "Archive a quote attributed to an author. Re-adding lore that is already archived upvotes the existing entry instead of creating a duplicate.",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	svc, closer, err := newArchive()
	if err != nil {
		return err
	}
	defer closer.Close()

	author := args[0]
	text := strings.Join(args[1:], " ")

	entry, created, err := svc.Add(ctx, author, text)
	if err != nil {
		return err
	}

	if !created {
		fmt.Fprintln(cmd.OutOrStdout(), "Lore already archived; upvoted the existing entry.")
	}

	tags, err := svc.Tags(ctx, entry.ID)
	if err != nil {
		return err
	}
	return archive.FormatLore(cmd.OutOrStdout(), entry, tags)
}
