package services

import (
	"context"
	"fmt"

	"github.com/coursechat-labs/coursechat-cli/internal/core/ports/driven"
	"github.com/coursechat-labs/coursechat-cli/internal/logger"
)

// RebuildIndexes repopulates the vector indexes from the course store.
// The store holds every embedding, so a process restart never needs to
// re-embed anything.
func RebuildIndexes(
	ctx context.Context,
	courseStore driven.CourseStore,
	catalogIndex driven.VectorIndex,
	contentIndex driven.VectorIndex,
) error {
	titles, err := courseStore.ListCourseTitles(ctx)
	if err != nil {
		return fmt.Errorf("list courses: %w", err)
	}

	var chunkTotal int
	for _, title := range titles {
		course, err := courseStore.GetCourse(ctx, title)
		if err != nil {
			return fmt.Errorf("load course %q: %w", title, err)
		}
		if len(course.Embedding) > 0 {
			entry := driven.VectorEntry{
				ID:          course.Title,
				Embedding:   course.Embedding,
				CourseTitle: course.Title,
			}
			if err := catalogIndex.Add(ctx, []driven.VectorEntry{entry}); err != nil {
				return fmt.Errorf("rebuild catalog entry %q: %w", title, err)
			}
		}

		chunks, err := courseStore.GetChunks(ctx, title)
		if err != nil {
			return fmt.Errorf("load chunks for %q: %w", title, err)
		}
		entries := make([]driven.VectorEntry, 0, len(chunks))
		for i := range chunks {
			if len(chunks[i].Embedding) == 0 {
				continue
			}
			entries = append(entries, driven.VectorEntry{
				ID:           chunks[i].ID(),
				Embedding:    chunks[i].Embedding,
				CourseTitle:  chunks[i].CourseTitle,
				LessonNumber: chunks[i].LessonNumber,
			})
		}
		if len(entries) > 0 {
			if err := contentIndex.Add(ctx, entries); err != nil {
				return fmt.Errorf("rebuild content entries for %q: %w", title, err)
			}
		}
		chunkTotal += len(entries)
	}

	logger.Debug("Rebuilt indexes: %d courses, %d chunks", len(titles), chunkTotal)
	return nil
}
