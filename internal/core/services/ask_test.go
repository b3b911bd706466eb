package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	storagemem "github.com/coursechat-labs/coursechat-cli/internal/adapters/driven/storage/memory"
	"github.com/coursechat-labs/coursechat-cli/internal/core/domain"
	"github.com/coursechat-labs/coursechat-cli/internal/core/ports/driven"
)

func textResponse(text string) *driven.ChatResponse {
	return &driven.ChatResponse{
		StopReason: driven.StopEndTurn,
		Blocks:     []driven.ContentBlock{{Type: driven.BlockText, Text: text}},
	}
}

func toolUseResponse(id, name string, input map[string]any) *driven.ChatResponse {
	return &driven.ChatResponse{
		StopReason: driven.StopToolUse,
		Blocks: []driven.ContentBlock{{
			Type:      driven.BlockToolUse,
			ToolUseID: id,
			ToolName:  name,
			ToolInput: input,
		}},
	}
}

func newAskService(llm *mockLLM, tools ...Tool) (*AskService, *storagemem.SessionStore) {
	registry := NewToolRegistry()
	for _, tool := range tools {
		registry.Register(tool)
	}
	sessions := storagemem.NewSessionStore(domain.DefaultMaxExchanges)
	return NewAskService(llm, registry, sessions), sessions
}

func TestAsk_DirectAnswerWithoutTools(t *testing.T) {
	llm := &mockLLM{responses: []*driven.ChatResponse{textResponse("Go is a language.")}}
	svc, _ := newAskService(llm)

	answer, err := svc.Ask(context.Background(), "What is Go?", "")
	require.NoError(t, err)

	assert.Equal(t, "Go is a language.", answer.Text)
	assert.Empty(t, answer.Sources)
	assert.NotEmpty(t, answer.SessionID)

	// Single round trip; tools were offered.
	require.Len(t, llm.requests, 1)
	assert.NotEmpty(t, llm.requests[0].Tools)
}

func TestAsk_TwoPhaseToolLoop(t *testing.T) {
	citations := []domain.SourceCitation{{CourseTitle: "Intro to Go", LessonNumber: intPtr(1)}}
	tool := &mockTool{
		name:      "search_course_content",
		result:    "[Intro to Go - Lesson 1]\nGoroutines are lightweight.",
		citations: citations,
	}
	llm := &mockLLM{responses: []*driven.ChatResponse{
		toolUseResponse("toolu_01", "search_course_content", map[string]any{"query": "goroutines"}),
		textResponse("Goroutines are lightweight threads."),
	}}
	svc, _ := newAskService(llm, tool)

	answer, err := svc.Ask(context.Background(), "What are goroutines?", "")
	require.NoError(t, err)

	assert.Equal(t, "Goroutines are lightweight threads.", answer.Text)
	assert.Equal(t, citations, answer.Sources)
	assert.Equal(t, "goroutines", tool.gotArgs["query"])

	require.Len(t, llm.requests, 2)

	// Second call carries the tool call and its result, but no tools.
	followUp := llm.requests[1]
	assert.Empty(t, followUp.Tools)
	require.Len(t, followUp.Messages, 3)
	assert.Equal(t, domain.RoleAssistant, followUp.Messages[1].Role)
	assert.Equal(t, driven.BlockToolUse, followUp.Messages[1].Blocks[0].Type)
	result := followUp.Messages[2].Blocks[0]
	assert.Equal(t, driven.BlockToolResult, result.Type)
	assert.Equal(t, "toolu_01", result.ToolUseID)
	assert.Contains(t, result.ToolResult, "Goroutines are lightweight.")
}

func TestAsk_ToolFailureBecomesErrorResult(t *testing.T) {
	tool := &mockTool{name: "search_course_content", err: errors.New("index offline")}
	llm := &mockLLM{responses: []*driven.ChatResponse{
		toolUseResponse("toolu_01", "search_course_content", map[string]any{"query": "x"}),
		textResponse("I could not search the courses."),
	}}
	svc, _ := newAskService(llm, tool)

	answer, err := svc.Ask(context.Background(), "question", "")
	require.NoError(t, err)
	assert.Equal(t, "I could not search the courses.", answer.Text)
	assert.Empty(t, answer.Sources)

	result := llm.requests[1].Messages[2].Blocks[0]
	assert.True(t, result.IsError)
	assert.Contains(t, result.ToolResult, "index offline")
}

func TestAsk_UnknownToolBecomesErrorResult(t *testing.T) {
	llm := &mockLLM{responses: []*driven.ChatResponse{
		toolUseResponse("toolu_01", "imaginary_tool", nil),
		textResponse("fallback answer"),
	}}
	svc, _ := newAskService(llm)

	answer, err := svc.Ask(context.Background(), "question", "")
	require.NoError(t, err)
	assert.Equal(t, "fallback answer", answer.Text)

	result := llm.requests[1].Messages[2].Blocks[0]
	assert.True(t, result.IsError)
	assert.Contains(t, result.ToolResult, "imaginary_tool")
}

func TestAsk_SessionHistoryFeedsFollowUps(t *testing.T) {
	llm := &mockLLM{responses: []*driven.ChatResponse{
		textResponse("MCP is a protocol."),
		textResponse("It was introduced by Anthropic."),
	}}
	svc, _ := newAskService(llm)

	first, err := svc.Ask(context.Background(), "What is MCP?", "")
	require.NoError(t, err)

	second, err := svc.Ask(context.Background(), "Who introduced it?", first.SessionID)
	require.NoError(t, err)
	assert.Equal(t, first.SessionID, second.SessionID)

	// The follow-up system prompt carries the prior exchange.
	system := llm.requests[1].System
	assert.Contains(t, system, "Previous conversation:")
	assert.Contains(t, system, "User: What is MCP?")
	assert.Contains(t, system, "Assistant: MCP is a protocol.")

	// The first call had no history.
	assert.NotContains(t, llm.requests[0].System, "Previous conversation:")
}

func TestAsk_RecordsExchange(t *testing.T) {
	llm := &mockLLM{responses: []*driven.ChatResponse{textResponse("Answer.")}}
	svc, sessions := newAskService(llm)

	answer, err := svc.Ask(context.Background(), "Question?", "")
	require.NoError(t, err)

	history, err := sessions.History(context.Background(), answer.SessionID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, domain.Message{Role: domain.RoleUser, Content: "Question?"}, history[0])
	assert.Equal(t, domain.Message{Role: domain.RoleAssistant, Content: "Answer."}, history[1])
}

func TestAsk_EmptyQuery(t *testing.T) {
	svc, _ := newAskService(&mockLLM{})
	_, err := svc.Ask(context.Background(), "   ", "")
	assert.Error(t, err)
}

func TestAsk_ModelErrorPropagates(t *testing.T) {
	llm := &mockLLM{chatErr: domain.ErrLLMUnavailable}
	svc, _ := newAskService(llm)

	_, err := svc.Ask(context.Background(), "question", "")
	assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
}

func TestAsk_ConcurrentQueriesKeepSourcesSeparate(t *testing.T) {
	// Two services sharing nothing but the pattern: each query's
	// sources come only from its own tool executions.
	toolA := &mockTool{
		name:      "search_course_content",
		result:    "a",
		citations: []domain.SourceCitation{{CourseTitle: "Course A"}},
	}
	llmA := &mockLLM{responses: []*driven.ChatResponse{
		toolUseResponse("t1", "search_course_content", map[string]any{"query": "a"}),
		textResponse("answer a"),
	}}
	svcA, _ := newAskService(llmA, toolA)

	answer, err := svcA.Ask(context.Background(), "question a", "")
	require.NoError(t, err)
	require.Len(t, answer.Sources, 1)
	assert.Equal(t, "Course A", answer.Sources[0].CourseTitle)

	// A second query through the same service starts with no sources.
	llmA.responses = append(llmA.responses, textResponse("direct answer"))
	answer2, err := svcA.Ask(context.Background(), "question b", "")
	require.NoError(t, err)
	assert.Empty(t, answer2.Sources)
}
