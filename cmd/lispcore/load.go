package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lispcore/pkg/loader"
	"lispcore/pkg/sexpr"
)

func init() {
	rootCmd.AddCommand(newLoadCmd())
}

func newLoadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load <file>",
		Short: "Read a file of S-expressions into the heap and report what landed there",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoad(args[0])
		},
	}
}

func runLoad(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}

	m := newMachine()
	r := sexpr.NewReader(string(data))
	nodes, err := r.ReadAll()
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}

	list, err := loader.LoadAll(m, nodes)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	m.Preserve(&list)
	defer m.Release(1)

	stats := m.Stats()
	fmt.Printf("loaded %d top-level forms from %s\n", len(nodes), path)
	fmt.Printf("young: %d objects, %d/%d bytes\n", stats.YoungObjects, stats.YoungUsed, stats.YoungSize)
	fmt.Printf("old:   %d objects, %d/%d bytes\n", stats.OldObjects, stats.OldUsed, stats.OldSize)
	fmt.Printf("remembered set: %d entries\n", stats.RemSetEntries)
	return nil
}
