package contracts

import (
	"context"

	"github.com/google/uuid"

	"github.com/clauseguard/clauseguard/pkg/pagination"
)

// System defines the public contract for contract domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Contract], error)

	Find(ctx context.Context, id uuid.UUID) (*Contract, error)
	Risks(ctx context.Context, contractID uuid.UUID) ([]Risk, error)
	StoreResult(ctx context.Context, cmd StoreCommand) (*Contract, error)
	UpdateRisk(ctx context.Context, riskID uuid.UUID, cmd UpdateRiskCommand) (*Risk, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
