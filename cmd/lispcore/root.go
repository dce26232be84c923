// Command lispcore drives the generational heap directly: loading
// S-expression source into heap objects, reporting generation occupancy,
// and stress-testing the collector under sustained allocation.
//
// Built as a cobra multi-subcommand CLI: one package-level rootCmd, one
// file per subcommand, each registering itself from init().
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"lispcore/pkg/gc"
	"lispcore/pkg/heap"
)

var (
	verbose         bool
	initialSize     int
	oldToYoungRatio int
	growRatio       int
	thresholdAge    uint8
)

var rootCmd = &cobra.Command{
	Use:     "lispcore",
	Short:   "Exercise the generational heap behind a small Lisp reader",
	Version: "0.1.0",
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log each allocation, collection, and growth")
	rootCmd.PersistentFlags().IntVar(&initialSize, "initial-size", 1<<20, "young generation's starting byte budget")
	rootCmd.PersistentFlags().IntVar(&oldToYoungRatio, "old-to-young-ratio", 2, "old generation budget as a multiple of the young budget")
	rootCmd.PersistentFlags().IntVar(&growRatio, "grow-ratio", 2, "multiplier applied to both budgets on growth")
	var age int
	rootCmd.PersistentFlags().IntVar(&age, "threshold-age", 8, "minor collections survived before tenuring")
	cobra.OnInitialize(func() { thresholdAge = uint8(age) })
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func newMachine() *gc.Machine {
	log := newLogger()
	cfg := gc.Config{
		InitialSize:     initialSize,
		OldToYoungRatio: oldToYoungRatio,
		GrowRatio:       growRatio,
		ThresholdAge:    thresholdAge,
		Logger:          log,
	}
	return gc.NewMachine(cfg)
}

func execute() {
	defer func() {
		if r := recover(); r != nil {
			if fe, ok := r.(*heap.FatalError); ok {
				fmt.Fprintf(os.Stderr, "lispcore: %s\n", fe.Error())
				os.Exit(2)
			}
			panic(r)
		}
	}()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	execute()
}
