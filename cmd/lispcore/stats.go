package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newStatsCmd())
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print the default generation budgets this build would start with",
		RunE: func(cmd *cobra.Command, args []string) error {
			m := newMachine()
			s := m.Stats()
			fmt.Printf("young budget: %d bytes\n", s.YoungSize)
			fmt.Printf("old budget:   %d bytes\n", s.OldSize)
			fmt.Printf("tenuring age: %d\n", thresholdAge)
			return nil
		},
	}
}
