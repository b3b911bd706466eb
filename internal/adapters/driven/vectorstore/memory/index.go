// Package memory provides an in-memory vector index with brute-force
// cosine similarity and metadata equality filters.
package memory

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/coursechat-labs/coursechat-cli/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// Index is a thread-safe in-memory implementation of driven.VectorIndex.
// Suitable for corpora of course-material size, where exact brute-force
// search stays cheap and avoids a native-index dependency.
type Index struct {
	mu      sync.RWMutex
	entries map[string]driven.VectorEntry
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{entries: make(map[string]driven.VectorEntry)}
}

// Add inserts entries, replacing any with the same ID.
func (x *Index) Add(_ context.Context, entries []driven.VectorEntry) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	for _, e := range entries {
		x.entries[e.ID] = e
	}
	return nil
}

// DeleteCourse removes every entry belonging to the course title.
func (x *Index) DeleteCourse(_ context.Context, courseTitle string) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	for id, e := range x.entries {
		if e.CourseTitle == courseTitle {
			delete(x.entries, id)
		}
	}
	return nil
}

// Replace swaps a course's entries under one write lock, so readers
// see either the old set or the new set.
func (x *Index) Replace(_ context.Context, courseTitle string, entries []driven.VectorEntry) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	for id, e := range x.entries {
		if e.CourseTitle == courseTitle {
			delete(x.entries, id)
		}
	}
	for _, e := range entries {
		x.entries[e.ID] = e
	}
	return nil
}

// Search returns up to k entries passing the filter, ordered by
// ascending cosine distance to the query. An empty index yields an
// empty result, not an error.
func (x *Index) Search(ctx context.Context, query []float32, k int, filter driven.VectorFilter) ([]driven.VectorHit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if k <= 0 {
		return nil, nil
	}

	x.mu.RLock()
	defer x.mu.RUnlock()

	hits := make([]driven.VectorHit, 0, len(x.entries))
	for id, e := range x.entries {
		if !matches(e, filter) {
			continue
		}
		hits = append(hits, driven.VectorHit{
			ID:       id,
			Distance: 1 - cosine(query, e.Embedding),
		})
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Distance != hits[j].Distance {
			return hits[i].Distance < hits[j].Distance
		}
		// Ties break on ID for deterministic ordering.
		return hits[i].ID < hits[j].ID
	})

	if len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

// Count returns the number of stored entries.
func (x *Index) Count(_ context.Context) (int, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.entries), nil
}

// Close releases resources.
func (x *Index) Close() error {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.entries = make(map[string]driven.VectorEntry)
	return nil
}

func matches(e driven.VectorEntry, f driven.VectorFilter) bool {
	if f.CourseTitle != "" && e.CourseTitle != f.CourseTitle {
		return false
	}
	if f.LessonNumber != nil {
		if e.LessonNumber == nil || *e.LessonNumber != *f.LessonNumber {
			return false
		}
	}
	return true
}

// cosine computes cosine similarity between two vectors.
// Mismatched lengths compare over the shorter prefix.
func cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
