package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:   "update <id> <author> <lore>...",
	Short: "Replace an entry's author and text",
	Long:  "Rewrite the author and text of an existing entry in place. Votes, rating, and the original timestamp are preserved.",
	Args:  cobra.MinimumNArgs(3),
	RunE:  runUpdate,
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	svc, closer, err := newArchive()
	if err != nil {
		return err
	}
	defer closer.Close()

	author := args[1]
	text := strings.Join(args[2:], " ")

	if err := svc.Update(ctx, id, author, text); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Updated 1 entry (id %d)\n", id)
	return nil
}
