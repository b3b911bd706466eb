package domain

// Message roles used in conversation history.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// DefaultMaxExchanges is the default session sliding-window capacity.
const DefaultMaxExchanges = 5

// Message is a single (role, text) turn in a conversation.
type Message struct {
	// Role is one of RoleUser, RoleAssistant or RoleSystem.
	Role string

	// Content is the message text.
	Content string
}

// Exchange is one user turn plus the assistant's reply.
// It is the unit of session-history eviction: a session holds at most
// its configured number of exchanges, oldest evicted first.
type Exchange struct {
	// User is the user's query text.
	User string

	// Assistant is the final answer text.
	Assistant string
}

// Messages flattens the exchange into ordered messages.
func (e Exchange) Messages() []Message {
	return []Message{
		{Role: RoleUser, Content: e.User},
		{Role: RoleAssistant, Content: e.Assistant},
	}
}
