package cli

import (
	"context"

	configfile "github.com/coursechat-labs/coursechat-cli/internal/adapters/driven/config/file"
	"github.com/coursechat-labs/coursechat-cli/internal/core/domain"
	"github.com/coursechat-labs/coursechat-cli/internal/core/ports/driving"
)

// setupTestServices swaps the wired services for mocks and blocks
// initServices from overwriting them. The returned cleanup restores
// the package state.
func setupTestServices() func() {
	servicesWired = true
	settings = domain.DefaultSettings()

	store, err := configfile.NewSettingsStore("")
	if err == nil {
		settingsStore = store
	}

	searchService = &mockSearchService{}
	ingestService = &mockIngestService{}
	askService = &mockAskService{}

	return func() {
		servicesWired = false
		searchService = nil
		ingestService = nil
		askService = nil
	}
}

func intPtr(n int) *int { return &n }

type mockSearchService struct {
	results   []domain.SearchResult
	course    *domain.Course
	analytics *domain.CourseAnalytics
	err       error

	gotQuery string
	gotOpts  domain.SearchOptions
}

var _ driving.SearchService = (*mockSearchService)(nil)

func (m *mockSearchService) Search(_ context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error) {
	m.gotQuery = query
	m.gotOpts = opts
	if m.err != nil {
		return nil, m.err
	}
	if m.results == nil {
		return []domain.SearchResult{
			{
				Chunk: domain.CourseChunk{
					CourseTitle:  "Building RAG Systems",
					LessonNumber: intPtr(1),
					Content:      "Retrieval augmented generation combines search with LLMs.",
				},
				Distance:   0.12,
				LessonLink: "https://example.com/rag/lesson-1",
			},
		}, nil
	}
	return m.results, nil
}

func (m *mockSearchService) Outline(_ context.Context, courseName string) (*domain.Course, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.course != nil {
		return m.course, nil
	}
	return &domain.Course{Title: courseName}, nil
}

func (m *mockSearchService) Analytics(_ context.Context) (*domain.CourseAnalytics, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.analytics != nil {
		return m.analytics, nil
	}
	return &domain.CourseAnalytics{
		TotalCourses: 2,
		CourseTitles: []string{"Building RAG Systems", "Intro to MCP"},
	}, nil
}

type mockIngestService struct {
	course *domain.Course
	chunks int
	report *driving.IngestReport
	err    error

	gotPath  string
	gotForce bool
}

var _ driving.IngestService = (*mockIngestService)(nil)

func (m *mockIngestService) IngestFile(_ context.Context, path string) (*domain.Course, int, error) {
	m.gotPath = path
	if m.err != nil {
		return nil, 0, m.err
	}
	course := m.course
	if course == nil {
		course = &domain.Course{Title: "Building RAG Systems"}
	}
	return course, m.chunks, nil
}

func (m *mockIngestService) IngestFolder(_ context.Context, dir string, force bool) (*driving.IngestReport, error) {
	m.gotPath = dir
	m.gotForce = force
	if m.err != nil {
		return nil, m.err
	}
	if m.report != nil {
		return m.report, nil
	}
	return &driving.IngestReport{CoursesAdded: 1, ChunksAdded: 8}, nil
}

type mockAskService struct {
	answer *domain.Answer
	err    error

	gotQuery   string
	gotSession string
}

var _ driving.AskService = (*mockAskService)(nil)

func (m *mockAskService) Ask(_ context.Context, query, sessionID string) (*domain.Answer, error) {
	m.gotQuery = query
	m.gotSession = sessionID
	if m.err != nil {
		return nil, m.err
	}
	if m.answer != nil {
		return m.answer, nil
	}
	return &domain.Answer{Text: "RAG combines retrieval with generation.", SessionID: "session-1"}, nil
}
