package chain

import (
	"reflect"
	"testing"
)

func TestRingWindow(t *testing.T) {
	r := newRing[string](3)
	words := []string{"a", "b", "c", "d", "e"}
	for pos, w := range words {
		r.set(pos, w)
	}

	// After five writes the logical window is the last three, oldest first.
	got := r.window(len(words), nil)
	want := []string{"c", "d", "e"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("window() = %v, want %v", got, want)
	}
}

func TestRingWindowExactFill(t *testing.T) {
	r := newRing[int](4)
	for pos := 0; pos < 4; pos++ {
		r.set(pos, pos*10)
	}
	got := r.window(4, nil)
	want := []int{0, 10, 20, 30}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("window() = %v, want %v", got, want)
	}
}

func TestRingWindowReusesDst(t *testing.T) {
	r := newRing[int](2)
	r.set(0, 1)
	r.set(1, 2)

	scratch := make([]int, 0, 2)
	got := r.window(2, scratch)
	if &got[0] != &scratch[:1][0] {
		t.Error("window() did not reuse the destination slice")
	}
}

func TestRingZeroCapacityPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("newRing(0) did not panic")
		}
	}()
	newRing[int](0)
}
