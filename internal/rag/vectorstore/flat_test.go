package vectorstore

import (
	"testing"
)

func buildIndex(t *testing.T, vectors [][]float32) *FlatIndex {
	t.Helper()
	ix := NewFlatIndex()
	if err := ix.Build(vectors); err != nil {
		t.Fatalf("Build: %v", err)
	}
	return ix
}

func TestSearchOrdersByDistance(t *testing.T) {
	ix := buildIndex(t, [][]float32{
		{0, 10}, // row 0, far
		{0, 1},  // row 1, near
		{0, 4},  // row 2, middle
	})

	got := ix.Search([]float32{0, 0}, 3)
	if len(got) != 3 {
		t.Fatalf("got %d neighbors, want 3", len(got))
	}
	wantRows := []int{1, 2, 0}
	for i, n := range got {
		if n.Row != wantRows[i] {
			t.Errorf("neighbor %d row = %d, want %d", i, n.Row, wantRows[i])
		}
	}
	if got[0].Distance != 1 || got[1].Distance != 16 || got[2].Distance != 100 {
		t.Errorf("distances = %v, %v, %v", got[0].Distance, got[1].Distance, got[2].Distance)
	}
	for i := 1; i < len(got); i++ {
		if got[i].Distance < got[i-1].Distance {
			t.Error("distances are not non-decreasing")
		}
	}
}

func TestSearchExactMatchFirst(t *testing.T) {
	ix := buildIndex(t, [][]float32{
		{1, 2, 3},
		{4, 5, 6},
		{7, 8, 9},
	})

	got := ix.Search([]float32{4, 5, 6}, 1)
	if len(got) != 1 {
		t.Fatalf("got %d neighbors, want 1", len(got))
	}
	if got[0].Row != 1 || got[0].Distance != 0 {
		t.Errorf("got row %d distance %v, want row 1 distance 0", got[0].Row, got[0].Distance)
	}
}

func TestSearchClampsK(t *testing.T) {
	ix := buildIndex(t, [][]float32{{1}, {2}})

	if got := ix.Search([]float32{0}, 10); len(got) != 2 {
		t.Errorf("k beyond size: got %d neighbors, want 2", len(got))
	}
	if got := ix.Search([]float32{0}, 0); got != nil {
		t.Errorf("k=0: got %v, want nil", got)
	}
	if got := ix.Search([]float32{0}, -3); got != nil {
		t.Errorf("k<0: got %v, want nil", got)
	}
}

func TestSearchTiesBreakByRow(t *testing.T) {
	ix := buildIndex(t, [][]float32{
		{0, 2},
		{2, 0},
		{0, -2},
	})

	// All three rows sit at the same distance from the origin.
	got := ix.Search([]float32{0, 0}, 3)
	for i, n := range got {
		if n.Row != i {
			t.Errorf("neighbor %d row = %d, want %d", i, n.Row, i)
		}
	}
}

func TestSearchEmptyIndex(t *testing.T) {
	ix := NewFlatIndex()
	if err := ix.Build(nil); err != nil {
		t.Fatalf("Build(nil): %v", err)
	}
	if ix.Size() != 0 || ix.Dimension() != 0 {
		t.Errorf("empty index: size=%d dimension=%d", ix.Size(), ix.Dimension())
	}
	if got := ix.Search([]float32{1, 2}, 5); got != nil {
		t.Errorf("got %v, want nil", got)
	}
}

func TestSearchDimensionMismatch(t *testing.T) {
	ix := buildIndex(t, [][]float32{{1, 2, 3}})
	if got := ix.Search([]float32{1, 2}, 1); got != nil {
		t.Errorf("mismatched query: got %v, want nil", got)
	}
}

func TestBuildRejectsRaggedVectors(t *testing.T) {
	ix := NewFlatIndex()
	err := ix.Build([][]float32{{1, 2}, {1, 2, 3}})
	if err == nil {
		t.Fatal("expected an error for mixed dimensions")
	}
}

func TestBuildAcceptsZeroVectors(t *testing.T) {
	ix := buildIndex(t, [][]float32{{0, 0}, {1, 0}})
	got := ix.Search([]float32{0, 0}, 2)
	if len(got) != 2 || got[0].Row != 0 || got[0].Distance != 0 {
		t.Errorf("zero vector should be searchable: %v", got)
	}
}

func TestBuildCopiesInput(t *testing.T) {
	source := [][]float32{{1, 1}}
	ix := buildIndex(t, source)
	source[0][0] = 99

	got := ix.Search([]float32{1, 1}, 1)
	if got[0].Distance != 0 {
		t.Error("index shares memory with the caller's vectors")
	}
}

func TestBuildReplacesContents(t *testing.T) {
	ix := buildIndex(t, [][]float32{{1}, {2}, {3}})
	if err := ix.Build([][]float32{{5, 5}}); err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	if ix.Size() != 1 || ix.Dimension() != 2 {
		t.Errorf("after rebuild: size=%d dimension=%d", ix.Size(), ix.Dimension())
	}
}
