package driven

import (
	"context"

	"github.com/coursechat-labs/coursechat-cli/internal/core/domain"
)

// SessionStore keeps bounded per-session conversation history.
// Each session is a fixed-capacity window of exchanges; appending past
// capacity evicts the oldest exchange. Appends are atomic per session
// identifier; distinct sessions are independent.
type SessionStore interface {
	// Append adds one exchange to the session, creating the session
	// if it does not exist and evicting the oldest exchange when the
	// window is full.
	Append(ctx context.Context, sessionID string, exchange domain.Exchange) error

	// History returns the session's messages in chronological order.
	// An unknown session yields an empty history, not an error.
	History(ctx context.Context, sessionID string) ([]domain.Message, error)

	// Clear removes all sessions.
	Clear(ctx context.Context) error
}
