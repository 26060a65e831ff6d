package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var getTagNum int

var tagCmd = &cobra.Command{
	Use:   "tag <id> <name>...",
	Short: "Tag lore",
	Long:  "Attach one or more free-text tags to an entry. Tags are created on first use; re-tagging is a no-op.",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runTag,
}

var getTagCmd = &cobra.Command{
	Use:   "get-tag <name>",
	Short: "Show lore carrying a tag",
	Args:  cobra.ExactArgs(1),
	RunE:  runGetTag,
}

var deleteTagCmd = &cobra.Command{
	Use:   "delete-tag <id> <name>",
	Short: "Remove a tag from lore",
	Args:  cobra.ExactArgs(2),
	RunE:  runDeleteTag,
}

func init() {
	getTagCmd.Flags().IntVarP(&getTagNum, "num", "n", 10, "Number of entries to show")
}

func runTag(cmd *cobra.Command, args []string) error {
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

	names := args[1:]
	if err := svc.AddTags(ctx, id, names); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Tagged entry %d with %s\n", id, strings.Join(names, ", "))
	return nil
}

func runGetTag(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	svc, closer, err := newArchive()
	if err != nil {
		return err
	}
	defer closer.Close()

	entries, err := svc.EntriesForTag(ctx, args[0], getTagNum)
	if err != nil {
		return err
	}

	return printEntries(ctx, cmd, svc, entries, true)
}

func runDeleteTag(cmd *cobra.Command, args []string) error {
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

	if err := svc.RemoveTag(ctx, id, args[1]); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Removed tag %q from entry %d\n", args[1], id)
	return nil
}
