// Package memory provides in-memory implementations of the storage
// ports, used in tests and for ephemeral runs.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/coursechat-labs/coursechat-cli/internal/core/domain"
	"github.com/coursechat-labs/coursechat-cli/internal/core/ports/driven"
)

// Ensure CourseStore implements the interface.
var _ driven.CourseStore = (*CourseStore)(nil)

// CourseStore is an in-memory implementation of driven.CourseStore.
type CourseStore struct {
	mu      sync.RWMutex
	courses map[string]domain.Course
	chunks  map[string][]domain.CourseChunk
}

// NewCourseStore creates an empty in-memory course store.
func NewCourseStore() *CourseStore {
	return &CourseStore{
		courses: make(map[string]domain.Course),
		chunks:  make(map[string][]domain.CourseChunk),
	}
}

// SaveCourse stores or updates a course.
func (s *CourseStore) SaveCourse(_ context.Context, course *domain.Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.courses[course.Title] = *course
	return nil
}

// SaveChunks stores chunks for a course, replacing previous ones.
func (s *CourseStore) SaveChunks(_ context.Context, chunks []domain.CourseChunk) error {
	if len(chunks) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	title := chunks[0].CourseTitle
	s.chunks[title] = append([]domain.CourseChunk(nil), chunks...)
	return nil
}

// GetCourse retrieves a course by exact title.
func (s *CourseStore) GetCourse(_ context.Context, title string) (*domain.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	course, ok := s.courses[title]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &course, nil
}

// GetChunk retrieves a specific chunk by ID.
func (s *CourseStore) GetChunk(_ context.Context, id string) (*domain.CourseChunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, chunks := range s.chunks {
		for i := range chunks {
			if chunks[i].ID() == id {
				chunk := chunks[i]
				return &chunk, nil
			}
		}
	}
	return nil, domain.ErrNotFound
}

// GetChunks retrieves all chunks for a course in index order.
func (s *CourseStore) GetChunks(_ context.Context, courseTitle string) ([]domain.CourseChunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	chunks := s.chunks[courseTitle]
	out := append([]domain.CourseChunk(nil), chunks...)
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out, nil
}

// DeleteCourse removes a course and its chunks.
func (s *CourseStore) DeleteCourse(_ context.Context, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.courses, title)
	delete(s.chunks, title)
	return nil
}

// ListCourseTitles returns every stored title, sorted.
func (s *CourseStore) ListCourseTitles(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	titles := make([]string, 0, len(s.courses))
	for title := range s.courses {
		titles = append(titles, title)
	}
	sort.Strings(titles)
	return titles, nil
}

// CountCourses returns the number of stored courses.
func (s *CourseStore) CountCourses(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.courses), nil
}
