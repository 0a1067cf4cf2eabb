// Package mock provides test double implementations of the ai interfaces.
//
// The mocks allow tests to run without an external embedding service and
// produce deterministic, unit-length vectors: the same text always yields
// the same vector, so identity and ranking assertions are stable.
//
//	mockProvider := mock.NewMockProvider()
//	vector, err := mockProvider.Embedder().EmbedText(ctx, "test")
//
// Custom behavior is injected via function fields:
//
//	embedder := mock.NewMockEmbedder()
//	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
//	    return nil, errors.New("embedding service down")
//	}
package mock
