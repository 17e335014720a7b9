package chat

import (
	"context"

	"github.com/google/uuid"
)

// System defines the public contract for chat operations.
type System interface {
	Handler() *Handler

	Messages(ctx context.Context, contractID uuid.UUID) ([]Message, error)
	Post(ctx context.Context, contractID uuid.UUID, cmd PostCommand) (*Reply, error)
}
