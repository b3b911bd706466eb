package driving

import (
	"context"

	"github.com/coursechat-labs/coursechat-cli/internal/core/domain"
)

// IngestService turns raw course documents into searchable chunks.
type IngestService interface {
	// IngestFile parses and indexes one course document, replacing any
	// previous version of the same title. Returns the parsed course
	// and the number of chunks indexed.
	IngestFile(ctx context.Context, path string) (*domain.Course, int, error)

	// IngestFolder ingests every readable document in the folder.
	// Already-ingested titles are skipped unless force is set.
	// Per-document failures are recorded, not fatal.
	IngestFolder(ctx context.Context, dir string, force bool) (*IngestReport, error)
}

// IngestReport summarises one folder ingestion run.
type IngestReport struct {
	// CoursesAdded is the number of courses (re)indexed.
	CoursesAdded int

	// ChunksAdded is the total number of chunks indexed.
	ChunksAdded int

	// Skipped is the number of already-ingested titles left untouched.
	Skipped int

	// Failed maps file paths to their ingestion error messages.
	Failed map[string]string
}
