package driven

import "context"

// VectorIndex provides metadata-filtered similarity search over
// embeddings. The application runs two instances: one for the course
// catalog (name resolution) and one for course content, so that
// re-embedding content never touches catalog entries.
type VectorIndex interface {
	// Add inserts entries into the index. Existing IDs are replaced.
	Add(ctx context.Context, entries []VectorEntry) error

	// DeleteCourse removes every entry belonging to the course title.
	DeleteCourse(ctx context.Context, courseTitle string) error

	// Replace atomically swaps every entry belonging to the course
	// title for the given entries. Concurrent searches observe either
	// the old set or the new set, never the gap between them.
	Replace(ctx context.Context, courseTitle string, entries []VectorEntry) error

	// Search finds the k nearest neighbours to the query vector among
	// entries passing the filter, ordered by ascending distance.
	Search(ctx context.Context, query []float32, k int, filter VectorFilter) ([]VectorHit, error)

	// Count returns the number of entries in the index.
	Count(ctx context.Context) (int, error)

	// Close releases resources.
	Close() error
}

// VectorEntry is one indexed vector with its filterable metadata.
type VectorEntry struct {
	// ID is the entry identifier (chunk ID, or course title for
	// catalog entries).
	ID string

	// Embedding is the vector representation.
	Embedding []float32

	// CourseTitle is the owning course, used for equality filtering
	// and course-wide deletion.
	CourseTitle string

	// LessonNumber is the owning lesson, when applicable.
	LessonNumber *int
}

// VectorFilter restricts a search by metadata equality.
// Zero values match everything.
type VectorFilter struct {
	// CourseTitle, when non-empty, matches only that course's entries.
	CourseTitle string

	// LessonNumber, when non-nil, matches only that lesson's entries.
	LessonNumber *int
}

// VectorHit is a similarity search result.
type VectorHit struct {
	// ID is the matched entry.
	ID string

	// Distance is the embedding-space distance (1 - cosine similarity).
	// Lower is closer.
	Distance float64
}
