package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var dumpPipe bool

var dumpCmd = &cobra.Command{
	Use:   "dump <file>",
	Short: "Export the whole archive to a file",
	Long:  "Write every entry in ascending time order. The default format is human-readable blocks; --pipe writes time|author|text lines that `loredb import` can read back (vote counts and tags are not carried).",
	Args:  cobra.ExactArgs(1),
	RunE:  runDump,
}

func init() {
	dumpCmd.Flags().BoolVar(&dumpPipe, "pipe", false, "Write pipe-separated lines instead of blocks")
}

func runDump(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	svc, closer, err := newArchive()
	if err != nil {
		return err
	}
	defer closer.Close()

	f, err := os.Create(args[0])
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer f.Close()

	if dumpPipe {
		err = svc.DumpPipe(ctx, f)
	} else {
		err = svc.Dump(ctx, f)
	}
	if err != nil {
		return err
	}

	count, err := svc.Count(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d entries to %s\n", count, args[0])
	return nil
}
