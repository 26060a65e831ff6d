package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	topNum  int
	topJSON bool
)

var topCmd = &cobra.Command{
	Use:   "top",
	Short: "Rank authors by summed lore rating",
	Long:  "Group entries by author (case-insensitive) and rank authors by the sum of their entries' ratings. Entries voted down to the cutoff no longer count.",
	Args:  cobra.NoArgs,
	RunE:  runTop,
}

func init() {
	topCmd.Flags().IntVarP(&topNum, "num", "n", 10, "Number of authors to show")
	topCmd.Flags().BoolVar(&topJSON, "json", false, "Output in JSON format")
}

func runTop(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	svc, closer, err := newArchive()
	if err != nil {
		return err
	}
	defer closer.Close()

	scores, err := svc.TopAuthors(ctx, topNum)
	if err != nil {
		return err
	}

	if topJSON {
		return printJSON(cmd.OutOrStdout(), map[string]any{
			"authors": scores,
			"total":   len(scores),
		})
	}

	if len(scores) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No ranked authors yet.")
		return nil
	}

	w := newTabWriter(cmd.OutOrStdout())
	fmt.Fprintln(w, "AUTHOR\tLORE\tSCORE")
	for _, s := range scores {
		fmt.Fprintf(w, "%s\t%d\t%.3f\n", s.Author, s.Count, s.Score)
	}
	return w.Flush()
}
