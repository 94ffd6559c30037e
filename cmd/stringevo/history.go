package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"stringgenetics/internal/history"
)

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history <path>",
		Short: "Print a saved best-of-generation history, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := history.Load(args[0])
			if err != nil {
				return fmt.Errorf("loading history: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Target: %q\n", h.Target())
			for i, e := range h.Entries() {
				if limit > 0 && i >= limit {
					break
				}
				fmt.Fprintf(out, "Gen %4d | %.3f | %s\n", e.Generation, e.Fitness, e.Text)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of entries to print (0 = all)")
	return cmd
}
