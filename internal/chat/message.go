// Package chat implements the per-contract assistant conversation:
// durable message history plus grounded question answering against a
// stored contract's analysis.
package chat

import (
	"time"

	"github.com/google/uuid"
)

// Message is a single stored conversation turn for a contract.
type Message struct {
	ID         uuid.UUID `json:"id"`
	ContractID uuid.UUID `json:"contract_id"`
	Role       string    `json:"role"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

// Reply is the response to a posted message.
type Reply struct {
	User      Message `json:"user"`
	Assistant Message `json:"assistant"`
}

// PostCommand carries a new user message for a contract conversation.
type PostCommand struct {
	Message string `json:"message"`
}
