package driving

import (
	"context"

	"github.com/coursechat-labs/coursechat-cli/internal/core/domain"
)

// SearchService provides direct retrieval over the course corpus.
// It backs the search tool, the CLI search command and the MCP tools.
type SearchService interface {
	// Search performs filtered nearest-neighbour retrieval. A fuzzy
	// course name is resolved first; failed resolution is an error
	// wrapping domain.ErrCourseNotFound, never a silent unfiltered
	// search. An empty corpus yields an empty slice.
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error)

	// Outline resolves a fuzzy course name and returns the course
	// with its full lesson list.
	Outline(ctx context.Context, courseName string) (*domain.Course, error)

	// Analytics returns corpus statistics for display.
	Analytics(ctx context.Context) (*domain.CourseAnalytics, error)
}
