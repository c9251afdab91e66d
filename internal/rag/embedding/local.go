package embedding

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"strings"
	"unicode"
)

// DefaultLocalDimension is the vector size of the local model.
const DefaultLocalDimension = 256

// LocalModel is an offline embedder producing hashed bag-of-words vectors:
// each lowercased token is hashed into one of Dimension buckets and the
// resulting count vector is L2-normalized. It needs no network or model
// files, and for a fixed dimension the same text always maps to the same
// vector, which makes it the model used in tests and demo mode.
type LocalModel struct {
	dimension int
}

// NewLocalModel creates a LocalModel with the given vector dimension,
// substituting the default for non-positive values.
func NewLocalModel(dimension int) *LocalModel {
	if dimension <= 0 {
		dimension = DefaultLocalDimension
	}
	return &LocalModel{dimension: dimension}
}

func (m *LocalModel) Name() string {
	return fmt.Sprintf("hashed-bow-%d", m.dimension)
}

func (m *LocalModel) Dimension() int {
	return m.dimension
}

// EmbedBatch maps each text to its hashed bag-of-words vector. An empty
// input yields an empty output.
func (m *LocalModel) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i] = m.embed(text)
	}
	return vectors, nil
}

func (m *LocalModel) embed(text string) []float32 {
	vector := make([]float32, m.dimension)

	tokens := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	for _, token := range tokens {
		h := fnv.New32a()
		h.Write([]byte(token))
		vector[h.Sum32()%uint32(m.dimension)]++
	}

	var norm float64
	for _, v := range vector {
		norm += float64(v) * float64(v)
	}
	if norm > 0 {
		scale := float32(1 / math.Sqrt(norm))
		for i := range vector {
			vector[i] *= scale
		}
	}
	return vector
}
