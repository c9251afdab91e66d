package vectorstore

import (
	"fmt"
	"sort"

	"studymate/internal/rag/interfaces"
	"studymate/internal/rag/schema"
)

// FlatIndex is an exact nearest-neighbor index over a fixed set of vectors
// using squared L2 distance. It is rebuilt wholesale whenever the document
// set changes; there is no incremental insertion or removal. A built index
// is immutable, so concurrent searches need no locking.
type FlatIndex struct {
	dimension int
	vectors   [][]float32
}

// NewFlatIndex creates an empty index.
func NewFlatIndex() *FlatIndex {
	return &FlatIndex{}
}

// Build replaces the index contents with copies of exactly these vectors,
// row order preserved: row i answers for input vector i. Building over zero
// vectors is legal and yields an index that returns no neighbors.
func (ix *FlatIndex) Build(vectors [][]float32) error {
	if len(vectors) == 0 {
		ix.dimension = 0
		ix.vectors = nil
		return nil
	}

	dimension := len(vectors[0])
	if dimension == 0 {
		return fmt.Errorf("cannot index zero-dimension vectors")
	}
	rows := make([][]float32, len(vectors))
	for i, v := range vectors {
		if len(v) != dimension {
			return fmt.Errorf("vector %d has dimension %d, want %d", i, len(v), dimension)
		}
		rows[i] = append([]float32(nil), v...)
	}

	ix.dimension = dimension
	ix.vectors = rows
	return nil
}

// Search returns the min(k, Size()) rows nearest to the query vector in
// ascending distance order. Distance ties break toward the lower row id so
// repeated searches return identical results. An empty index or a query of
// the wrong dimension yields no neighbors.
func (ix *FlatIndex) Search(query []float32, k int) []schema.Neighbor {
	if k <= 0 || len(ix.vectors) == 0 || len(query) != ix.dimension {
		return nil
	}

	neighbors := make([]schema.Neighbor, len(ix.vectors))
	for i, v := range ix.vectors {
		neighbors[i] = schema.Neighbor{Row: i, Distance: squaredL2(query, v)}
	}
	sort.Slice(neighbors, func(i, j int) bool {
		if neighbors[i].Distance != neighbors[j].Distance {
			return neighbors[i].Distance < neighbors[j].Distance
		}
		return neighbors[i].Row < neighbors[j].Row
	})

	if k > len(neighbors) {
		k = len(neighbors)
	}
	return neighbors[:k]
}

// Size reports the number of indexed vectors.
func (ix *FlatIndex) Size() int {
	return len(ix.vectors)
}

// Dimension reports the vector dimension, 0 for an empty index.
func (ix *FlatIndex) Dimension() int {
	return ix.dimension
}

func squaredL2(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return sum
}

var _ interfaces.VectorIndex = (*FlatIndex)(nil)
