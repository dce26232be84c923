package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRunLoadReportsFormCount(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.lisp")
	if err := os.WriteFile(path, []byte("(define x 1)\n(+ x 2)\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	initialSize = 1 << 16
	oldToYoungRatio = 2
	growRatio = 2
	thresholdAge = 8

	if err := runLoad(path); err != nil {
		t.Fatalf("runLoad: %v", err)
	}
}

func TestRunLoadMissingFile(t *testing.T) {
	if err := runLoad(filepath.Join(t.TempDir(), "does-not-exist.lisp")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
