package driven

import "context"

// EmbeddingService generates vector embeddings from text.
//
// Implementations may include:
//   - OpenAI (text-embedding-3-small, text-embedding-3-large)
//   - Ollama (nomic-embed-text, all-minilm)
//   - Local models via inference servers
//
// The model identity matters: an index snapshot records the model tag
// it was built with, and queries must be embedded with the same model.
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts efficiently.
	// This is more efficient than calling Embed in a loop for large batches.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size (e.g., 384, 1536, 3072).
	Dimensions() int

	// ModelName returns the version tag of the embedding model, as
	// recorded in index snapshots.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight
	// test request. Used before committing to a batch embedding run.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
