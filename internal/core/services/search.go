package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/coursechat-labs/coursechat-cli/internal/core/domain"
	"github.com/coursechat-labs/coursechat-cli/internal/core/ports/driven"
	"github.com/coursechat-labs/coursechat-cli/internal/core/ports/driving"
	"github.com/coursechat-labs/coursechat-cli/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService provides filtered semantic retrieval over the corpus.
// Course-name hints are resolved against the catalog index before any
// content search runs, so a bad hint fails loudly instead of silently
// widening the search.
type SearchService struct {
	courseStore   driven.CourseStore
	catalogIndex  driven.VectorIndex
	contentIndex  driven.VectorIndex
	embedder      driven.EmbeddingService
	minSimilarity float64
	maxResults    int
}

// NewSearchService creates a new search service.
func NewSearchService(
	courseStore driven.CourseStore,
	catalogIndex driven.VectorIndex,
	contentIndex driven.VectorIndex,
	embedder driven.EmbeddingService,
	settings domain.Settings,
) *SearchService {
	maxResults := settings.MaxResults
	if maxResults <= 0 {
		maxResults = domain.DefaultMaxResults
	}
	return &SearchService{
		courseStore:   courseStore,
		catalogIndex:  catalogIndex,
		contentIndex:  contentIndex,
		embedder:      embedder,
		minSimilarity: settings.MinSimilarity,
		maxResults:    maxResults,
	}
}

// Search performs filtered nearest-neighbour retrieval.
func (s *SearchService) Search(
	ctx context.Context, query string, opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	logger.Section("Content Search")
	logger.Debug("Query: %q course=%q", query, opts.CourseName)

	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.SearchResult{}, nil
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = s.maxResults
	}

	filter := driven.VectorFilter{LessonNumber: opts.LessonNumber}
	if opts.CourseName != "" {
		title, err := s.resolveCourseName(ctx, opts.CourseName)
		if err != nil {
			return nil, err
		}
		logger.Debug("Resolved course %q -> %q", opts.CourseName, title)
		filter.CourseTitle = title
	}

	queryVec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	hits, err := s.contentIndex.Search(ctx, queryVec, limit, filter)
	if err != nil {
		return nil, fmt.Errorf("content search: %w", err)
	}
	logger.Debug("Content index returned %d hits", len(hits))

	return s.hydrate(ctx, hits)
}

// resolveCourseName matches a fuzzy course-name hint against the
// catalog index. The best match must clear the similarity floor;
// otherwise the hint is rejected by name.
func (s *SearchService) resolveCourseName(ctx context.Context, name string) (string, error) {
	nameVec, err := s.embedder.Embed(ctx, name)
	if err != nil {
		return "", fmt.Errorf("embed course name: %w", err)
	}

	hits, err := s.catalogIndex.Search(ctx, nameVec, 1, driven.VectorFilter{})
	if err != nil {
		return "", fmt.Errorf("catalog search: %w", err)
	}
	if len(hits) == 0 {
		return "", fmt.Errorf("%w: %q", domain.ErrCourseNotFound, name)
	}

	best := hits[0]
	similarity := 1 - best.Distance
	if similarity < s.minSimilarity {
		logger.Debug("Best catalog match %q below similarity floor (%.3f < %.3f)",
			best.ID, similarity, s.minSimilarity)
		return "", fmt.Errorf("%w: %q", domain.ErrCourseNotFound, name)
	}
	return best.ID, nil
}

// hydrate turns index hits into full results using the course store.
// Hits whose chunks are missing from the store are dropped with a
// warning rather than failing the whole search.
func (s *SearchService) hydrate(ctx context.Context, hits []driven.VectorHit) ([]domain.SearchResult, error) {
	results := make([]domain.SearchResult, 0, len(hits))
	courses := make(map[string]*domain.Course)

	for _, hit := range hits {
		chunk, err := s.courseStore.GetChunk(ctx, hit.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				logger.Warn("Index hit %q has no stored chunk, skipping", hit.ID)
				continue
			}
			return nil, fmt.Errorf("load chunk %q: %w", hit.ID, err)
		}

		result := domain.SearchResult{
			Chunk:    *chunk,
			Distance: hit.Distance,
		}

		course, ok := courses[chunk.CourseTitle]
		if !ok {
			course, err = s.courseStore.GetCourse(ctx, chunk.CourseTitle)
			if err != nil && !errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("load course %q: %w", chunk.CourseTitle, err)
			}
			courses[chunk.CourseTitle] = course
		}
		if course != nil {
			result.CourseLink = course.Link
			if chunk.LessonNumber != nil {
				if lesson := course.FindLesson(*chunk.LessonNumber); lesson != nil {
					result.LessonLink = lesson.Link
				}
			}
		}

		results = append(results, result)
	}
	return results, nil
}

// Outline resolves a fuzzy course name and returns the course with its
// lesson list.
func (s *SearchService) Outline(ctx context.Context, courseName string) (*domain.Course, error) {
	courseName = strings.TrimSpace(courseName)
	if courseName == "" {
		return nil, fmt.Errorf("%w: empty course name", domain.ErrCourseNotFound)
	}

	title, err := s.resolveCourseName(ctx, courseName)
	if err != nil {
		return nil, err
	}
	course, err := s.courseStore.GetCourse(ctx, title)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Catalog and store disagree; the catalog entry is stale.
			return nil, fmt.Errorf("%w: %q", domain.ErrCourseNotFound, courseName)
		}
		return nil, err
	}
	return course, nil
}

// Analytics returns corpus statistics for display.
func (s *SearchService) Analytics(ctx context.Context) (*domain.CourseAnalytics, error) {
	titles, err := s.courseStore.ListCourseTitles(ctx)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return &domain.CourseAnalytics{
		TotalCourses: len(titles),
		CourseTitles: titles,
	}, nil
}
