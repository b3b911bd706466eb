package driven

import (
	"context"

	"github.com/coursechat-labs/coursechat-cli/internal/core/domain"
)

// CourseStore persists courses, lessons and chunks.
// Backed by SQLite for durable metadata, or memory for tests.
// The stored set of course titles doubles as the restart-safe record
// of what has already been ingested.
type CourseStore interface {
	// SaveCourse stores or updates a course and its lesson list.
	SaveCourse(ctx context.Context, course *domain.Course) error

	// SaveChunks stores chunks for a course, replacing the course's
	// previous chunks.
	SaveChunks(ctx context.Context, chunks []domain.CourseChunk) error

	// GetCourse retrieves a course by exact title.
	GetCourse(ctx context.Context, title string) (*domain.Course, error)

	// GetChunk retrieves a specific chunk by ID.
	GetChunk(ctx context.Context, id string) (*domain.CourseChunk, error)

	// GetChunks retrieves all chunks for a course in index order.
	GetChunks(ctx context.Context, courseTitle string) ([]domain.CourseChunk, error)

	// DeleteCourse removes a course and its chunks.
	DeleteCourse(ctx context.Context, title string) error

	// ListCourseTitles returns every ingested course title.
	ListCourseTitles(ctx context.Context) ([]string, error)

	// CountCourses returns the number of ingested courses.
	CountCourses(ctx context.Context) (int, error)
}
