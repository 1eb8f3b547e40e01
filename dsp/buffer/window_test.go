package buffer

import "testing"

func windowContents(w *Window) []float64 {
	out := make([]float64, w.Len())
	for i := range out {
		out[i] = w.At(i)
	}
	return out
}

func requireEqual(t *testing.T, got, want []float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestNewWindowZeroFilled(t *testing.T) {
	w := NewWindow(4)
	requireEqual(t, windowContents(w), []float64{0, 0, 0, 0})

	if NewWindow(-1).Len() != 0 {
		t.Fatal("negative length should yield an empty window")
	}
}

func TestWindowPushEvictsOldest(t *testing.T) {
	w := NewWindow(5)
	w.Push([]float64{1, 2})
	requireEqual(t, windowContents(w), []float64{0, 0, 0, 1, 2})

	w.Push([]float64{3, 4, 5})
	requireEqual(t, windowContents(w), []float64{1, 2, 3, 4, 5})

	// Wraps around the backing array.
	w.Push([]float64{6, 7, 8})
	requireEqual(t, windowContents(w), []float64{4, 5, 6, 7, 8})
}

func TestWindowPushLongerThanLength(t *testing.T) {
	w := NewWindow(3)
	w.Push([]float64{1})
	w.Push([]float64{2, 3, 4, 5, 6})
	requireEqual(t, windowContents(w), []float64{4, 5, 6})
}

func TestWindowCopyTo(t *testing.T) {
	w := NewWindow(6)
	w.Push([]float64{1, 2, 3, 4, 5, 6, 7, 8})

	dst := make([]float64, 3)
	if n := w.CopyTo(dst, 2); n != 3 {
		t.Fatalf("CopyTo = %d, want 3", n)
	}
	requireEqual(t, dst, []float64{5, 6, 7})

	if n := w.CopyTo(make([]float64, 10), 4); n != 2 {
		t.Fatalf("CopyTo past end = %d, want 2", n)
	}
	if n := w.CopyTo(dst, 6); n != 0 {
		t.Fatalf("CopyTo out of range = %d, want 0", n)
	}

	requireEqual(t, w.Slice(0, 6), []float64{3, 4, 5, 6, 7, 8})
}

func TestWindowReset(t *testing.T) {
	w := NewWindow(3)
	w.Push([]float64{1, 2})
	w.Reset()
	requireEqual(t, windowContents(w), []float64{0, 0, 0})

	w.Push([]float64{9})
	requireEqual(t, windowContents(w), []float64{0, 0, 9})
}
