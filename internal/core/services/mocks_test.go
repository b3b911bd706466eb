package services

import (
	"context"
	"fmt"

	"github.com/coursechat-labs/coursechat-cli/internal/core/domain"
	"github.com/coursechat-labs/coursechat-cli/internal/core/ports/driven"
)

// mockEmbedder returns canned vectors keyed by input text. Unknown
// texts get a fixed fallback so ingestion of arbitrary chunks works.
type mockEmbedder struct {
	vectors  map[string][]float32
	fallback []float32
	embedErr error
	calls    []string
}

func newMockEmbedder() *mockEmbedder {
	return &mockEmbedder{
		vectors:  make(map[string][]float32),
		fallback: []float32{0.1, 0.1},
	}
}

func (m *mockEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	m.calls = append(m.calls, text)
	if vec, ok := m.vectors[text]; ok {
		return vec, nil
	}
	return m.fallback, nil
}

func (m *mockEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := m.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}

func (m *mockEmbedder) Dimensions() int              { return 2 }
func (m *mockEmbedder) ModelName() string            { return "mock-embedder" }
func (m *mockEmbedder) Ping(_ context.Context) error { return nil }
func (m *mockEmbedder) Close() error                 { return nil }

// mockLLM replays scripted responses in order and records requests.
type mockLLM struct {
	responses []*driven.ChatResponse
	requests  []driven.ChatRequest
	chatErr   error
}

func (m *mockLLM) Chat(_ context.Context, req driven.ChatRequest) (*driven.ChatResponse, error) {
	if m.chatErr != nil {
		return nil, m.chatErr
	}
	m.requests = append(m.requests, req)
	if len(m.requests) > len(m.responses) {
		return nil, fmt.Errorf("mock llm: no scripted response for call %d", len(m.requests))
	}
	return m.responses[len(m.requests)-1], nil
}

func (m *mockLLM) ModelName() string            { return "mock-llm" }
func (m *mockLLM) Ping(_ context.Context) error { return nil }
func (m *mockLLM) Close() error                 { return nil }

// mockTool returns a fixed result and citations.
type mockTool struct {
	name      string
	result    string
	citations []domain.SourceCitation
	err       error
	gotArgs   map[string]any
}

func (m *mockTool) Definition() driven.ToolDefinition {
	return driven.ToolDefinition{
		Name:        m.name,
		Description: "test tool",
		InputSchema: map[string]any{"type": "object"},
	}
}

func (m *mockTool) Execute(_ context.Context, args map[string]any) (string, []domain.SourceCitation, error) {
	m.gotArgs = args
	if m.err != nil {
		return "", nil, m.err
	}
	return m.result, m.citations, nil
}

// mockSearchService implements driving.SearchService for tool tests.
type mockSearchService struct {
	results    []domain.SearchResult
	searchErr  error
	course     *domain.Course
	outlineErr error
	gotQuery   string
	gotOpts    domain.SearchOptions
	gotOutline string
}

func (m *mockSearchService) Search(_ context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error) {
	m.gotQuery = query
	m.gotOpts = opts
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.results, nil
}

func (m *mockSearchService) Outline(_ context.Context, courseName string) (*domain.Course, error) {
	m.gotOutline = courseName
	if m.outlineErr != nil {
		return nil, m.outlineErr
	}
	return m.course, nil
}

func (m *mockSearchService) Analytics(_ context.Context) (*domain.CourseAnalytics, error) {
	return &domain.CourseAnalytics{}, nil
}

func intPtr(n int) *int { return &n }
