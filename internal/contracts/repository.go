package contracts

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/clauseguard/clauseguard/pkg/pagination"
	"github.com/clauseguard/clauseguard/pkg/query"
	"github.com/clauseguard/clauseguard/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a contract repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "contracts"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Contract], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Filename", "Summary")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count contracts: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanContract)
	if err != nil {
		return nil, fmt.Errorf("query contracts: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Contract, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	c, err := repository.QueryOne(ctx, r.db, q, args, scanContract)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &c, nil
}

func (r *repo) Risks(ctx context.Context, contractID uuid.UUID) ([]Risk, error) {
	qb := query.
		NewBuilder(riskProjection, query.SortField{Field: "RiskID"}).
		WhereEquals("ContractID", contractID)

	q, args := qb.Build()
	risks, err := repository.QueryMany(ctx, r.db, q, args, scanRisk)
	if err != nil {
		return nil, fmt.Errorf("query risks: %w", err)
	}
	return risks, nil
}

func (r *repo) StoreResult(ctx context.Context, cmd StoreCommand) (*Contract, error) {
	if cmd.Result == nil {
		return nil, fmt.Errorf("%w: missing analysis result", ErrInvalidInput)
	}

	analysisJSON, err := json.Marshal(cmd.Result)
	if err != nil {
		return nil, fmt.Errorf("marshal analysis: %w", err)
	}

	id := uuid.New()
	insertContract := `
		INSERT INTO contracts(id, filename, raw_text, summary, overall_risk_score, overall_risk_level, analysis)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, filename, raw_text, summary, overall_risk_score, overall_risk_level, analysis, created_at`

	insertRisk := `
		INSERT INTO risks(id, contract_id, risk_id, title, severity, category, clause, explanation, recommendation, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	c, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Contract, error) {
		contract, err := repository.QueryOne(ctx, tx, insertContract, []any{
			id,
			cmd.Filename,
			cmd.RawText,
			cmd.Result.Summary,
			cmd.Result.OverallRiskScore,
			cmd.Result.OverallRiskLevel,
			analysisJSON,
		}, scanContract)
		if err != nil {
			return contract, err
		}

		for _, risk := range cmd.Result.Risks {
			_, err := tx.ExecContext(ctx, insertRisk,
				uuid.New(),
				id,
				risk.ID,
				risk.Title,
				risk.Severity,
				risk.Category,
				risk.Clause,
				risk.Explanation,
				risk.Recommendation,
				RiskStatusPending,
			)
			if err != nil {
				return contract, fmt.Errorf("insert risk %q: %w", risk.ID, err)
			}
		}

		return contract, nil
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("contract stored",
		"id", c.ID,
		"filename", c.Filename,
		"risks", len(cmd.Result.Risks),
	)
	return &c, nil
}

func (r *repo) UpdateRisk(ctx context.Context, riskID uuid.UUID, cmd UpdateRiskCommand) (*Risk, error) {
	if cmd.Status == nil && cmd.UserNote == nil {
		return nil, fmt.Errorf("%w: no fields to update", ErrInvalidInput)
	}

	if cmd.Status != nil && !validRiskStatus(*cmd.Status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, *cmd.Status)
	}

	q := `
		UPDATE risks
		SET status = COALESCE($2, status),
		    user_note = COALESCE($3, user_note),
		    updated_at = now()
		WHERE id = $1
		RETURNING id, contract_id, risk_id, title, severity, category, clause, explanation, recommendation, status, user_note, updated_at`

	risk, err := repository.QueryOne(ctx, r.db, q, []any{riskID, cmd.Status, cmd.UserNote}, scanRisk)
	if err != nil {
		return nil, repository.MapError(err, ErrRiskNotFound, ErrDuplicate)
	}

	r.logger.Info("risk updated", "id", risk.ID, "status", risk.Status)
	return &risk, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM contracts WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("contract deleted", "id", id)
	return nil
}

func validRiskStatus(s string) bool {
	switch s {
	case RiskStatusPending, RiskStatusReviewed, RiskStatusAccepted, RiskStatusDisputed:
		return true
	}
	return false
}
