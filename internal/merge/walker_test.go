package merge

import (
	"slices"
	"testing"
)

func TestWalkerSequential(t *testing.T) {
	w := NewWalker(slices.Values([]int{1, 2, 3}))
	defer w.Stop()

	var got []int
	for w.Valid() {
		got = append(got, w.Current())
		w.Advance()
	}
	if !slices.Equal(got, []int{1, 2, 3}) {
		t.Fatalf("walked %v, want [1 2 3]", got)
	}
	if w.Valid() {
		t.Fatal("walker still valid after exhaustion")
	}
}

func TestWalkerEmpty(t *testing.T) {
	w := NewWalker(slices.Values([]string(nil)))
	defer w.Stop()
	if w.Valid() {
		t.Fatal("walker over empty sequence must start invalid")
	}
}

func TestWalkerAdvancePastEnd(t *testing.T) {
	w := NewWalker(slices.Values([]int{7}))
	defer w.Stop()
	w.Advance()
	w.Advance() // must be a no-op
	if w.Valid() {
		t.Fatal("walker became valid again after exhaustion")
	}
}
