package domain

// IndexSnapshot is the persisted form of an embedding index: the
// admitted stories, their embeddings in the same order, and the
// identity of the embedding model that produced them.
//
// An index is built once per corpus snapshot by an offline batch pass,
// persisted, and loaded read-only at process start. All embeddings in
// one snapshot come from the same model version; a snapshot loaded
// under a differently-configured embedder is a load-time warning, never
// a silent mix.
type IndexSnapshot struct {
	// Stories are the indexed entries, in corpus order.
	Stories []Story

	// Embeddings holds one vector per story, aligned by position.
	Embeddings [][]float32

	// Dimension is the embedding vector length.
	Dimension int

	// Model is the embedding model/version tag that produced the
	// vectors (for example "openai/text-embedding-3-small").
	Model string
}
