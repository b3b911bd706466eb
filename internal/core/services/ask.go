package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/coursechat-labs/coursechat-cli/internal/core/domain"
	"github.com/coursechat-labs/coursechat-cli/internal/core/ports/driven"
	"github.com/coursechat-labs/coursechat-cli/internal/core/ports/driving"
	"github.com/coursechat-labs/coursechat-cli/internal/logger"
)

// Ensure AskService implements the interface.
var _ driving.AskService = (*AskService)(nil)

// systemPrompt is the static instruction block sent with every query.
// Session history is appended to it rather than interleaved into the
// message list, keeping the message list purely the current exchange.
const systemPrompt = `You are an AI assistant specialized in course materials and educational content.

Tool usage:
- Use search_course_content for questions about specific course content or detailed educational materials
- Use get_course_outline for questions about a course's structure, lesson list or links
- At most one round of tool calls per user question; synthesize the results into your answer
- If a search yields no results, state that clearly without offering alternatives

Response requirements:
- Answer general knowledge questions directly without tools
- Be brief, concise and focused
- Do not mention the search process or that you used a tool
- Answer the question asked, nothing more`

// loopState is the phase of one query through the agent loop. The loop
// only ever moves forward; there is no second round of tool calls.
type loopState int

const (
	// stateAwaitingModel: first model call, tools offered.
	stateAwaitingModel loopState = iota

	// stateExecutingTools: the model requested tool calls; run them.
	stateExecutingTools

	// stateAwaitingFollowUp: tool results sent back, final call
	// without tools.
	stateAwaitingFollowUp

	// stateDone: final answer text available.
	stateDone
)

// AskService answers questions through a two-phase tool-calling loop:
// the model may request one round of tool calls, receives the results,
// and must then answer in text.
type AskService struct {
	llm      driven.LLMService
	tools    *ToolRegistry
	sessions driven.SessionStore
}

// NewAskService creates a new ask service.
func NewAskService(llm driven.LLMService, tools *ToolRegistry, sessions driven.SessionStore) *AskService {
	return &AskService{
		llm:      llm,
		tools:    tools,
		sessions: sessions,
	}
}

// Ask runs one query through the agent loop.
func (s *AskService) Ask(ctx context.Context, query, sessionID string) (*domain.Answer, error) {
	logger.Section("Ask")

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("empty query")
	}
	if sessionID == "" {
		sessionID = uuid.NewString()
		logger.Debug("New session %s", sessionID)
	}

	system, err := s.buildSystem(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	messages := []driven.AgentMessage{driven.TextMessage(domain.RoleUser, query)}

	var (
		state    = stateAwaitingModel
		answer   string
		sources  []domain.SourceCitation
		response *driven.ChatResponse
	)

	for state != stateDone {
		switch state {
		case stateAwaitingModel:
			response, err = s.llm.Chat(ctx, driven.ChatRequest{
				System:   system,
				Messages: messages,
				Tools:    s.tools.Definitions(),
			})
			if err != nil {
				return nil, fmt.Errorf("model call: %w", err)
			}
			if response.StopReason == driven.StopToolUse {
				state = stateExecutingTools
			} else {
				answer = response.Text()
				state = stateDone
			}

		case stateExecutingTools:
			results, toolSources := s.runToolCalls(ctx, response.ToolCalls())
			sources = toolSources

			messages = append(messages,
				driven.AgentMessage{Role: domain.RoleAssistant, Blocks: response.Blocks},
				driven.AgentMessage{Role: domain.RoleUser, Blocks: results},
			)
			state = stateAwaitingFollowUp

		case stateAwaitingFollowUp:
			// No tools offered: the model has to answer in text now.
			response, err = s.llm.Chat(ctx, driven.ChatRequest{
				System:   system,
				Messages: messages,
			})
			if err != nil {
				return nil, fmt.Errorf("follow-up call: %w", err)
			}
			answer = response.Text()
			state = stateDone
		}
	}

	if err := s.sessions.Append(ctx, sessionID, domain.Exchange{User: query, Assistant: answer}); err != nil {
		logger.Warn("Failed to record session history: %v", err)
	}

	return &domain.Answer{
		Text:      answer,
		Sources:   sources,
		SessionID: sessionID,
	}, nil
}

// runToolCalls executes every requested tool call. Tool failures become
// error-flagged results for the model rather than failures of the query.
func (s *AskService) runToolCalls(ctx context.Context, calls []driven.ContentBlock) ([]driven.ContentBlock, []domain.SourceCitation) {
	results := make([]driven.ContentBlock, 0, len(calls))
	var sources []domain.SourceCitation

	for _, call := range calls {
		logToolCall(call.ToolName, call.ToolInput)

		text, citations, err := s.tools.Execute(ctx, call.ToolName, call.ToolInput)
		result := driven.ContentBlock{
			Type:      driven.BlockToolResult,
			ToolUseID: call.ToolUseID,
		}
		if err != nil {
			logger.Warn("Tool %s failed: %v", call.ToolName, err)
			result.ToolResult = fmt.Sprintf("Tool error: %v", err)
			result.IsError = true
		} else {
			result.ToolResult = text
			sources = append(sources, citations...)
		}
		results = append(results, result)
	}
	return results, sources
}

// buildSystem assembles the system prompt, appending prior session
// history as context.
func (s *AskService) buildSystem(ctx context.Context, sessionID string) (string, error) {
	history, err := s.sessions.History(ctx, sessionID)
	if err != nil {
		return "", fmt.Errorf("load history: %w", err)
	}
	if len(history) == 0 {
		return systemPrompt, nil
	}

	var b strings.Builder
	b.WriteString(systemPrompt)
	b.WriteString("\n\nPrevious conversation:\n")
	for _, msg := range history {
		fmt.Fprintf(&b, "%s: %s\n", roleLabel(msg.Role), msg.Content)
	}
	return b.String(), nil
}

func roleLabel(role string) string {
	switch role {
	case domain.RoleUser:
		return "User"
	case domain.RoleAssistant:
		return "Assistant"
	default:
		return role
	}
}
