package domain

import "time"

// Settings holds the tunable application configuration.
// Values are persisted in the TOML config file; API keys are
// intentionally excluded and read from the environment instead.
type Settings struct {
	// ChunkSize is the chunker's target window size in characters.
	ChunkSize int

	// ChunkOverlap is the character overlap between adjacent chunks.
	ChunkOverlap int

	// MaxResults is the maximum number of search hits returned.
	MaxResults int

	// MaxHistory is the session sliding-window capacity in exchanges.
	MaxHistory int

	// MinSimilarity is the minimum cosine similarity for fuzzy
	// course-name resolution. Catalog matches below it are treated
	// as "course not found".
	MinSimilarity float64

	// AnthropicModel is the model used for answering queries.
	AnthropicModel string

	// EmbeddingProvider selects the embedding backend ("openai" or "ollama").
	EmbeddingProvider string

	// EmbeddingModel is the embedding model name.
	EmbeddingModel string

	// DocsDir is the folder scanned for course documents on ingest.
	DocsDir string

	// RequestTimeout bounds each model or retrieval network call.
	RequestTimeout time.Duration
}

// DefaultSettings returns the settings used when no config file exists.
func DefaultSettings() Settings {
	return Settings{
		ChunkSize:         800,
		ChunkOverlap:      100,
		MaxResults:        DefaultMaxResults,
		MaxHistory:        DefaultMaxExchanges,
		MinSimilarity:     0.3,
		AnthropicModel:    "claude-sonnet-4-20250514",
		EmbeddingProvider: "openai",
		EmbeddingModel:    "text-embedding-3-small",
		DocsDir:           "docs",
		RequestTimeout:    120 * time.Second,
	}
}
