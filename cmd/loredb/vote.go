package main

import (
	"context"
	"fmt"

	"github.com/hyperengineering/loredb/internal/rating"
	"github.com/spf13/cobra"
)

var upvoteCmd = &cobra.Command{
	Use:   "upvote <id>...",
	Short: "Upvote lore by id",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runVote(cmd, args, rating.Up)
	},
}

var downvoteCmd = &cobra.Command{
	Use:   "downvote <id>...",
	Short: "Downvote lore by id",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runVote(cmd, args, rating.Down)
	},
}

// runVote applies the direction to each id in order. A missing id aborts
// the batch; votes already applied stay.
func runVote(cmd *cobra.Command, args []string, dir rating.Direction) error {
	ctx := context.Background()

	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := parseID(arg)
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}

	svc, closer, err := newArchive()
	if err != nil {
		return err
	}
	defer closer.Close()

	if err := svc.Vote(ctx, ids, dir); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Applied %d %svote(s)\n", len(ids), dir)
	return nil
}
