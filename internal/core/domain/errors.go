package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrMalformedDocument indicates a course document is missing its
	// title header. Ingestion of that one document is skipped; other
	// documents in a batch proceed.
	ErrMalformedDocument = errors.New("malformed course document")

	// ErrCourseNotFound indicates fuzzy course-name resolution failed.
	// Surfaced as a descriptive tool-result string, not a hard failure
	// of the query.
	ErrCourseNotFound = errors.New("no matching course found")

	// ErrUnknownTool indicates the model requested a tool name that is
	// not registered. A configuration defect, logged and surfaced as an
	// error tool-result.
	ErrUnknownTool = errors.New("unknown tool")

	// ErrIndexInconsistency indicates a course upsert partially failed.
	// The previous version of the course stays authoritative until a
	// full re-upsert succeeds.
	ErrIndexInconsistency = errors.New("index inconsistency")

	// ErrLLMUnavailable indicates the language model service is not
	// configured. Question answering is disabled without it.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured. Ingestion and semantic search are disabled without it.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrVectorIndexUnavailable indicates the vector index is not
	// configured. Semantic similarity search is disabled.
	ErrVectorIndexUnavailable = errors.New("vector index unavailable")
)
