package mock

import (
	"context"
	"hash/fnv"
	"math"
)

// DefaultDimension is the vector length of the default deterministic mock.
const DefaultDimension = 64

// MockEmbedder is a test double for ai.Embedder. Without injected
// behavior it derives a stable unit vector from each text, so equal
// texts always embed identically and similarity scores are repeatable
// across runs.
type MockEmbedder struct {
	// EmbedTextFunc overrides EmbedText when set.
	EmbedTextFunc func(ctx context.Context, text string) ([]float32, error)

	// EmbedTextsFunc overrides EmbedTexts when set.
	EmbedTextsFunc func(ctx context.Context, texts []string) ([][]float32, error)

	dimension int
	callCount int
}

// NewMockEmbedder returns a mock with the deterministic default behavior.
// The concrete type is returned so tests can inject behavior and inspect
// call counts.
func NewMockEmbedder() *MockEmbedder {
	return &MockEmbedder{dimension: DefaultDimension}
}

// Dimension returns the mock's vector length.
func (m *MockEmbedder) Dimension() int {
	return m.dimension
}

// EmbedText returns the deterministic vector for text, or defers to
// EmbedTextFunc when set.
func (m *MockEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	m.callCount++
	if m.EmbedTextFunc != nil {
		return m.EmbedTextFunc(ctx, text)
	}
	return deterministicVector(text, m.dimension), nil
}

// EmbedTexts returns deterministic vectors for texts, or defers to
// EmbedTextsFunc when set.
func (m *MockEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	m.callCount++
	if m.EmbedTextsFunc != nil {
		return m.EmbedTextsFunc(ctx, texts)
	}
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i] = deterministicVector(text, m.dimension)
	}
	return vectors, nil
}

// CallCount reports how many times either embed method was invoked.
func (m *MockEmbedder) CallCount() int {
	return m.callCount
}

// Reset clears the call count and any injected behavior.
func (m *MockEmbedder) Reset() {
	m.callCount = 0
	m.EmbedTextFunc = nil
	m.EmbedTextsFunc = nil
}

// deterministicVector expands an FNV hash of the text into dim pseudo
// random components via a linear congruential step, then normalizes to
// unit length so dot products behave like cosine scores.
func deterministicVector(text string, dim int) []float32 {
	h := fnv.New32a()
	h.Write([]byte(text))
	state := h.Sum32()

	vector := make([]float32, dim)
	var sumSquares float64
	for i := range vector {
		state = state*1664525 + 1013904223
		vector[i] = float32(state%1000)/500.0 - 1.0
		sumSquares += float64(vector[i]) * float64(vector[i])
	}
	if sumSquares > 0 {
		inv := float32(1.0 / math.Sqrt(sumSquares))
		for i := range vector {
			vector[i] *= inv
		}
	}
	return vector
}
