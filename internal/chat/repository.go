package chat

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/clauseguard/clauseguard/internal/analysis"
	"github.com/clauseguard/clauseguard/internal/contracts"
	"github.com/clauseguard/clauseguard/pkg/query"
	"github.com/clauseguard/clauseguard/pkg/repository"
)

type repo struct {
	db        *sql.DB
	contracts contracts.System
	client    analysis.Client
	logger    *slog.Logger
}

// New creates a chat repository implementing the System interface.
func New(
	db *sql.DB,
	contractSys contracts.System,
	client analysis.Client,
	logger *slog.Logger,
) System {
	return &repo{
		db:        db,
		contracts: contractSys,
		client:    client,
		logger:    logger.With("system", "chat"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) Messages(ctx context.Context, contractID uuid.UUID) ([]Message, error) {
	if _, err := r.contracts.Find(ctx, contractID); err != nil {
		return nil, err
	}

	q, args := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("ContractID", contractID).
		Build()

	msgs, err := repository.QueryMany(ctx, r.db, q, args, scanMessage)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	return msgs, nil
}

// Post sends a user message to the assistant and records the exchange.
// The transcript sent to the model is the stored history plus the new user
// turn; neither turn is persisted unless the model call succeeds, so a
// failed call leaves the conversation exactly as it was.
func (r *repo) Post(ctx context.Context, contractID uuid.UUID, cmd PostCommand) (*Reply, error) {
	text := strings.TrimSpace(cmd.Message)
	if text == "" {
		return nil, ErrEmptyMessage
	}

	contract, err := r.contracts.Find(ctx, contractID)
	if err != nil {
		return nil, err
	}

	history, err := r.Messages(ctx, contractID)
	if err != nil {
		return nil, err
	}

	turns := make([]analysis.Turn, 0, len(history)+1)
	for _, m := range history {
		turns = append(turns, analysis.Turn{Role: m.Role, Content: m.Content})
	}
	turns = append(turns, analysis.Turn{Role: analysis.RoleUser, Content: text})

	reply, err := r.client.Converse(ctx, BuildContext(contract), turns)
	if err != nil {
		r.logger.Error("assistant call failed", "contract_id", contractID, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrAssistantUnavailable, err)
	}

	insert := `
		INSERT INTO chat_messages(id, contract_id, role, content)
		VALUES ($1, $2, $3, $4)
		RETURNING id, contract_id, role, content, created_at`

	result, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Reply, error) {
		userMsg, err := repository.QueryOne(ctx, tx, insert, []any{
			uuid.New(), contractID, analysis.RoleUser, text,
		}, scanMessage)
		if err != nil {
			return Reply{}, err
		}

		assistantMsg, err := repository.QueryOne(ctx, tx, insert, []any{
			uuid.New(), contractID, analysis.RoleAssistant, reply,
		}, scanMessage)
		if err != nil {
			return Reply{}, err
		}

		return Reply{User: userMsg, Assistant: assistantMsg}, nil
	})

	if err != nil {
		return nil, fmt.Errorf("store exchange: %w", err)
	}

	r.logger.Info("message exchanged",
		"contract_id", contractID,
		"history", len(history),
	)
	return &result, nil
}
