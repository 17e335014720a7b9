package analysis

import "context"

// Conversation roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one prior message in a conversation transcript.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client is the remote language-model dependency. It is treated as
// untrusted and possibly unavailable; every failure is reported through
// ErrClientFailure so callers can map it to their own failure states.
type Client interface {
	// Generate performs a single request/response analysis call and
	// returns the raw model text.
	Generate(ctx context.Context, system, user string) (string, error)
	// Converse sends a system context plus the full ordered transcript
	// and returns the assistant's reply.
	Converse(ctx context.Context, system string, turns []Turn) (string, error)
}
