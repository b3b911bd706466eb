package driven

import "context"

// Stop reasons reported by the model.
const (
	// StopEndTurn means the model produced a final textual answer.
	StopEndTurn = "end_turn"

	// StopToolUse means the model requested one or more tool calls.
	StopToolUse = "tool_use"
)

// Content block types in model requests and responses.
const (
	BlockText       = "text"
	BlockToolUse    = "tool_use"
	BlockToolResult = "tool_result"
)

// LLMService provides tool-calling language model access.
// The model is treated as a pure function from request to response;
// its internal reasoning is not modelled. Calls must respect the
// context deadline supplied by the caller.
type LLMService interface {
	// Chat sends one request to the model and returns its response.
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight
	// test request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// ChatRequest is one call to the model.
type ChatRequest struct {
	// System is the system prompt, including any conversation summary.
	System string

	// Messages is the ordered message list.
	Messages []AgentMessage

	// Tools are the tool definitions offered to the model for this
	// call. Empty means the model must answer in text.
	Tools []ToolDefinition

	// MaxTokens caps the generated output length.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic).
	Temperature float64
}

// ChatResponse is the model's reply to one ChatRequest.
type ChatResponse struct {
	// StopReason is StopEndTurn or StopToolUse.
	StopReason string

	// Blocks are the response content blocks in order.
	Blocks []ContentBlock
}

// Text concatenates the text blocks of the response.
func (r *ChatResponse) Text() string {
	var out string
	for _, b := range r.Blocks {
		if b.Type == BlockText {
			out += b.Text
		}
	}
	return out
}

// ToolCalls returns the tool-use blocks of the response.
func (r *ChatResponse) ToolCalls() []ContentBlock {
	var calls []ContentBlock
	for _, b := range r.Blocks {
		if b.Type == BlockToolUse {
			calls = append(calls, b)
		}
	}
	return calls
}

// AgentMessage is one message in the agent conversation. Unlike plain
// history messages it can carry structured content blocks, which the
// two-phase loop needs to echo tool calls and results back to the model.
type AgentMessage struct {
	// Role is "user" or "assistant".
	Role string

	// Blocks are the message content blocks.
	Blocks []ContentBlock
}

// TextMessage builds a single-text-block message.
func TextMessage(role, text string) AgentMessage {
	return AgentMessage{Role: role, Blocks: []ContentBlock{{Type: BlockText, Text: text}}}
}

// ContentBlock is one unit of message content: plain text, a tool
// invocation request, or a tool result.
type ContentBlock struct {
	// Type is BlockText, BlockToolUse or BlockToolResult.
	Type string

	// Text is the block text (BlockText).
	Text string

	// ToolUseID correlates a tool result with its request.
	ToolUseID string

	// ToolName is the requested tool (BlockToolUse).
	ToolName string

	// ToolInput holds the requested tool parameters (BlockToolUse).
	ToolInput map[string]any

	// ToolResult is the tool's textual output (BlockToolResult).
	ToolResult string

	// IsError marks a tool result that reports a failure.
	IsError bool
}

// ToolDefinition describes a callable capability to the model.
type ToolDefinition struct {
	// Name is the tool identifier the model invokes it by.
	Name string `json:"name"`

	// Description tells the model when to use the tool.
	Description string `json:"description"`

	// InputSchema is the JSON-schema description of the parameters.
	InputSchema map[string]any `json:"input_schema"`
}
