package driving

import (
	"context"

	"github.com/coursechat-labs/coursechat-cli/internal/core/domain"
)

// AskService answers natural-language questions about the corpus
// through the tool-calling agent loop.
type AskService interface {
	// Ask runs one query through the two-phase agent loop and returns
	// the final answer with its source citations. An empty sessionID
	// starts a new session; the returned Answer carries the session
	// the exchange was recorded under.
	Ask(ctx context.Context, query, sessionID string) (*domain.Answer, error)
}
