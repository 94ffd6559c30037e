package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"stringgenetics/internal/evolve"
)

func newScoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "score <target> <text>",
		Short: "Print the fitness of text against target",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fitness, err := evolve.Score(args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%.6f\n", fitness)
			return nil
		},
	}
}
