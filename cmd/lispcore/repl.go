package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lispcore/pkg/gc"
	"lispcore/pkg/heap"
	"lispcore/pkg/loader"
	"lispcore/pkg/sexpr"
)

func init() {
	rootCmd.AddCommand(newReplCmd())
}

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Read one S-expression per line and load it onto the heap",
		RunE: func(cmd *cobra.Command, args []string) error {
			runRepl()
			return nil
		},
	}
}

// runRepl loads one line at a time, recovering a FatalError per line
// instead of letting it take down the whole session — unlike load/stress,
// which exit(2) on a core FatalError since they have no later input to
// recover for.
func runRepl() {
	m := newMachine()
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("lispcore> ")
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			fmt.Print("lispcore> ")
			continue
		}
		loadLine(m, line)
		fmt.Print("lispcore> ")
	}
}

func loadLine(m *gc.Machine, line string) {
	defer func() {
		if r := recover(); r != nil {
			if fe, ok := r.(*heap.FatalError); ok {
				fmt.Fprintf(os.Stderr, "fatal: %s\n", fe.Error())
				return
			}
			panic(r)
		}
	}()

	r := sexpr.NewReader(line)
	n, err := r.Read()
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse error: %v\n", err)
		return
	}
	if n == nil {
		return
	}
	v, err := loader.Load(m, n)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load error: %v\n", err)
		return
	}
	fmt.Println(v.String())
}
