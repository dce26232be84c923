package sexpr

import "testing"

func mustRead(t *testing.T, src string) *Node {
	t.Helper()
	r := NewReader(src)
	n, err := r.Read()
	if err != nil {
		t.Fatalf("Read(%q): %v", src, err)
	}
	if n == nil {
		t.Fatalf("Read(%q): expected a node, got nil", src)
	}
	return n
}

func TestReadAtoms(t *testing.T) {
	if n := mustRead(t, "42"); n.Kind != KindInt || n.Int != 42 {
		t.Fatalf("got %+v", n)
	}
	if n := mustRead(t, "-7"); n.Kind != KindInt || n.Int != -7 {
		t.Fatalf("got %+v", n)
	}
	if n := mustRead(t, "3.5"); n.Kind != KindFloat || n.Float != 3.5 {
		t.Fatalf("got %+v", n)
	}
	if n := mustRead(t, "foo-bar?"); n.Kind != KindSymbol || n.Symbol != "foo-bar?" {
		t.Fatalf("got %+v", n)
	}
	if n := mustRead(t, "#t"); n.Kind != KindBool || n.Bool != true {
		t.Fatalf("got %+v", n)
	}
	if n := mustRead(t, "#f"); n.Kind != KindBool || n.Bool != false {
		t.Fatalf("got %+v", n)
	}
	if n := mustRead(t, `"hi"`); n.Kind != KindString || n.String != "hi" {
		t.Fatalf("got %+v", n)
	}
	if n := mustRead(t, `#\a`); n.Kind != KindChar || n.Char != 'a' {
		t.Fatalf("got %+v", n)
	}
	if n := mustRead(t, `#\newline`); n.Kind != KindChar || n.Char != '\n' {
		t.Fatalf("got %+v", n)
	}
}

func TestReadList(t *testing.T) {
	n := mustRead(t, "(1 2 3)")
	if n.Kind != KindPair {
		t.Fatalf("expected a pair, got %+v", n)
	}
	var vals []int64
	for n.Kind == KindPair {
		vals = append(vals, n.Car.Int)
		n = n.Cdr
	}
	if n.Kind != KindNil {
		t.Fatalf("expected list to terminate in nil, got %+v", n)
	}
	want := []int64{1, 2, 3}
	if len(vals) != len(want) {
		t.Fatalf("got %v, want %v", vals, want)
	}
	for i := range want {
		if vals[i] != want[i] {
			t.Fatalf("got %v, want %v", vals, want)
		}
	}
}

func TestReadEmptyList(t *testing.T) {
	n := mustRead(t, "()")
	if n.Kind != KindNil {
		t.Fatalf("expected nil for empty list, got %+v", n)
	}
}

func TestReadDottedPair(t *testing.T) {
	n := mustRead(t, "(1 . 2)")
	if n.Kind != KindPair || n.Car.Int != 1 || n.Cdr.Kind != KindInt || n.Cdr.Int != 2 {
		t.Fatalf("got %+v", n)
	}
}

func TestReadQuote(t *testing.T) {
	n := mustRead(t, "'x")
	if n.Kind != KindPair || n.Car.Kind != KindSymbol || n.Car.Symbol != "quote" {
		t.Fatalf("expected (quote x), got %+v", n)
	}
	if n.Cdr.Kind != KindPair || n.Cdr.Car.Symbol != "x" || n.Cdr.Cdr.Kind != KindNil {
		t.Fatalf("expected (quote x), got %+v", n)
	}
}

func TestReadVector(t *testing.T) {
	n := mustRead(t, "#(1 2 3)")
	if n.Kind != KindVector || len(n.Items) != 3 {
		t.Fatalf("got %+v", n)
	}
	for i, want := range []int64{1, 2, 3} {
		if n.Items[i].Int != want {
			t.Fatalf("item %d: got %v, want %d", i, n.Items[i], want)
		}
	}
}

func TestReadAllMultipleTopLevelForms(t *testing.T) {
	r := NewReader("1 2 ; comment\n3")
	nodes, err := r.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(nodes) != 3 {
		t.Fatalf("expected 3 forms, got %d", len(nodes))
	}
}

func TestReadUnclosedListIsAnError(t *testing.T) {
	r := NewReader("(1 2")
	if _, err := r.Read(); err == nil {
		t.Fatal("expected an error for an unclosed list")
	}
}
