package mcp

import (
	"context"

	"github.com/coursechat-labs/coursechat-cli/internal/core/domain"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	results   []domain.SearchResult
	course    *domain.Course
	analytics *domain.CourseAnalytics
	err       error
}

func (m *mockSearchService) Search(
	_ context.Context,
	_ string,
	_ domain.SearchOptions,
) ([]domain.SearchResult, error) {
	return m.results, m.err
}

func (m *mockSearchService) Outline(_ context.Context, _ string) (*domain.Course, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.course, nil
}

func (m *mockSearchService) Analytics(_ context.Context) (*domain.CourseAnalytics, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.analytics, nil
}

// mockAskService is a mock implementation of driving.AskService.
type mockAskService struct {
	answer *domain.Answer
	err    error
}

func (m *mockAskService) Ask(_ context.Context, _ string, _ string) (*domain.Answer, error) {
	return m.answer, m.err
}

func intPtr(n int) *int { return &n }
