package contracts_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/clauseguard/clauseguard/internal/analysis"
	"github.com/clauseguard/clauseguard/internal/contracts"
	"github.com/clauseguard/clauseguard/pkg/pagination"
)

type mockSystem struct {
	listFn       func(ctx context.Context, page pagination.PageRequest, filters contracts.Filters) (*pagination.PageResult[contracts.Contract], error)
	findFn       func(ctx context.Context, id uuid.UUID) (*contracts.Contract, error)
	risksFn      func(ctx context.Context, contractID uuid.UUID) ([]contracts.Risk, error)
	storeFn      func(ctx context.Context, cmd contracts.StoreCommand) (*contracts.Contract, error)
	updateRiskFn func(ctx context.Context, riskID uuid.UUID, cmd contracts.UpdateRiskCommand) (*contracts.Risk, error)
	deleteFn     func(ctx context.Context, id uuid.UUID) error
}

func (m *mockSystem) Handler() *contracts.Handler {
	return contracts.NewHandler(
		m,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		pagination.Config{DefaultPageSize: 20, MaxPageSize: 100},
	)
}

func (m *mockSystem) List(ctx context.Context, page pagination.PageRequest, filters contracts.Filters) (*pagination.PageResult[contracts.Contract], error) {
	return m.listFn(ctx, page, filters)
}

func (m *mockSystem) Find(ctx context.Context, id uuid.UUID) (*contracts.Contract, error) {
	return m.findFn(ctx, id)
}

func (m *mockSystem) Risks(ctx context.Context, contractID uuid.UUID) ([]contracts.Risk, error) {
	return m.risksFn(ctx, contractID)
}

func (m *mockSystem) StoreResult(ctx context.Context, cmd contracts.StoreCommand) (*contracts.Contract, error) {
	return m.storeFn(ctx, cmd)
}

func (m *mockSystem) UpdateRisk(ctx context.Context, riskID uuid.UUID, cmd contracts.UpdateRiskCommand) (*contracts.Risk, error) {
	return m.updateRiskFn(ctx, riskID, cmd)
}

func (m *mockSystem) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFn(ctx, id)
}

func setupMux(h *contracts.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	group := h.Routes()
	for _, route := range group.Routes {
		pattern := route.Method + " " + group.Prefix + route.Pattern
		mux.HandleFunc(pattern, route.Handler)
	}
	return mux
}

func sampleContract() contracts.Contract {
	return contracts.Contract{
		ID:               uuid.MustParse("550e8400-e29b-41d4-a716-446655440000"),
		Filename:         "lease.pdf",
		RawText:          "This lease agreement...",
		Summary:          "Standard residential lease.",
		OverallRiskScore: 45,
		OverallRiskLevel: "Medium",
		Analysis: analysis.Result{
			OverallRiskScore: 45,
			OverallRiskLevel: "Medium",
			Summary:          "Standard residential lease.",
		},
		CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestFiltersFromQuery(t *testing.T) {
	t.Run("empty query", func(t *testing.T) {
		f := contracts.FiltersFromQuery(url.Values{})
		if f.Filename != nil || f.RiskLevel != nil {
			t.Errorf("filters = %+v, want empty", f)
		}
	})

	t.Run("populated query", func(t *testing.T) {
		values := url.Values{}
		values.Set("filename", "lease")
		values.Set("risk_level", "High")

		f := contracts.FiltersFromQuery(values)
		if f.Filename == nil || *f.Filename != "lease" {
			t.Errorf("filename filter = %v", f.Filename)
		}
		if f.RiskLevel == nil || *f.RiskLevel != "High" {
			t.Errorf("risk level filter = %v", f.RiskLevel)
		}
	})
}

func TestHandlerList(t *testing.T) {
	contract := sampleContract()

	t.Run("returns paginated list", func(t *testing.T) {
		sys := &mockSystem{
			listFn: func(_ context.Context, _ pagination.PageRequest, _ contracts.Filters) (*pagination.PageResult[contracts.Contract], error) {
				result := pagination.NewPageResult([]contracts.Contract{contract}, 1, 1, 20)
				return &result, nil
			},
		}
		mux := setupMux(sys.Handler())

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/contracts", nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var result pagination.PageResult[contracts.Contract]
		if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if result.Total != 1 || len(result.Data) != 1 {
			t.Fatalf("result = %+v, want single contract", result)
		}
		if result.Data[0].ID != contract.ID {
			t.Errorf("id = %v, want %v", result.Data[0].ID, contract.ID)
		}
	})

	t.Run("passes filters from query", func(t *testing.T) {
		var captured contracts.Filters
		sys := &mockSystem{
			listFn: func(_ context.Context, _ pagination.PageRequest, filters contracts.Filters) (*pagination.PageResult[contracts.Contract], error) {
				captured = filters
				result := pagination.NewPageResult([]contracts.Contract{}, 0, 1, 20)
				return &result, nil
			},
		}
		mux := setupMux(sys.Handler())

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/contracts?risk_level=Critical", nil)
		mux.ServeHTTP(rec, req)

		if captured.RiskLevel == nil || *captured.RiskLevel != "Critical" {
			t.Errorf("captured filters = %+v", captured)
		}
	})
}

func TestHandlerFind(t *testing.T) {
	contract := sampleContract()
	risk := contracts.Risk{
		ID:         uuid.New(),
		ContractID: contract.ID,
		RiskID:     "R1",
		Title:      "Late fee escalation",
		Severity:   "High",
		Status:     contracts.RiskStatusPending,
	}

	t.Run("returns contract with risks", func(t *testing.T) {
		sys := &mockSystem{
			findFn: func(_ context.Context, id uuid.UUID) (*contracts.Contract, error) {
				return &contract, nil
			},
			risksFn: func(_ context.Context, _ uuid.UUID) ([]contracts.Risk, error) {
				return []contracts.Risk{risk}, nil
			},
		}
		mux := setupMux(sys.Handler())

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/contracts/"+contract.ID.String(), nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var detail contracts.ContractDetail
		if err := json.NewDecoder(rec.Body).Decode(&detail); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if detail.ID != contract.ID {
			t.Errorf("id = %v, want %v", detail.ID, contract.ID)
		}
		if len(detail.Risks) != 1 || detail.Risks[0].RiskID != "R1" {
			t.Errorf("risks = %+v, want single R1", detail.Risks)
		}
	})

	t.Run("unknown contract", func(t *testing.T) {
		sys := &mockSystem{
			findFn: func(_ context.Context, _ uuid.UUID) (*contracts.Contract, error) {
				return nil, contracts.ErrNotFound
			},
		}
		mux := setupMux(sys.Handler())

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/contracts/"+uuid.NewString(), nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("invalid id", func(t *testing.T) {
		sys := &mockSystem{}
		mux := setupMux(sys.Handler())

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/contracts/nope", nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})
}

func TestHandlerSearch(t *testing.T) {
	var captured contracts.Filters
	sys := &mockSystem{
		listFn: func(_ context.Context, page pagination.PageRequest, filters contracts.Filters) (*pagination.PageResult[contracts.Contract], error) {
			captured = filters
			result := pagination.NewPageResult([]contracts.Contract{}, 0, page.Page, page.PageSize)
			return &result, nil
		},
	}
	mux := setupMux(sys.Handler())

	body := strings.NewReader(`{"page": 2, "page_size": 10, "risk_level": "High"}`)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/contracts/search", body)
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if captured.RiskLevel == nil || *captured.RiskLevel != "High" {
		t.Errorf("filters = %+v, want High risk level", captured)
	}
}

func TestHandlerUpdateRisk(t *testing.T) {
	riskID := uuid.New()

	t.Run("updates status and note", func(t *testing.T) {
		var captured contracts.UpdateRiskCommand
		sys := &mockSystem{
			updateRiskFn: func(_ context.Context, id uuid.UUID, cmd contracts.UpdateRiskCommand) (*contracts.Risk, error) {
				captured = cmd
				return &contracts.Risk{ID: id, Status: *cmd.Status, UserNote: *cmd.UserNote}, nil
			},
		}
		mux := setupMux(sys.Handler())

		body := strings.NewReader(`{"status": "reviewed", "note": "Discussed with counsel."}`)
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/contracts/risks/"+riskID.String(), body)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if captured.Status == nil || *captured.Status != "reviewed" {
			t.Errorf("status = %v, want reviewed", captured.Status)
		}
		if captured.UserNote == nil || *captured.UserNote != "Discussed with counsel." {
			t.Errorf("note = %v", captured.UserNote)
		}
	})

	t.Run("invalid status", func(t *testing.T) {
		sys := &mockSystem{
			updateRiskFn: func(_ context.Context, _ uuid.UUID, _ contracts.UpdateRiskCommand) (*contracts.Risk, error) {
				return nil, contracts.ErrInvalidStatus
			},
		}
		mux := setupMux(sys.Handler())

		body := strings.NewReader(`{"status": "bogus"}`)
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/contracts/risks/"+riskID.String(), body)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("unknown risk", func(t *testing.T) {
		sys := &mockSystem{
			updateRiskFn: func(_ context.Context, _ uuid.UUID, _ contracts.UpdateRiskCommand) (*contracts.Risk, error) {
				return nil, contracts.ErrRiskNotFound
			},
		}
		mux := setupMux(sys.Handler())

		body := strings.NewReader(`{"status": "accepted"}`)
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/contracts/risks/"+riskID.String(), body)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
	})
}

func TestHandlerDelete(t *testing.T) {
	t.Run("deletes contract", func(t *testing.T) {
		id := uuid.New()
		sys := &mockSystem{
			deleteFn: func(_ context.Context, got uuid.UUID) error {
				if got != id {
					t.Errorf("delete id = %v, want %v", got, id)
				}
				return nil
			},
		}
		mux := setupMux(sys.Handler())

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("DELETE", "/contracts/"+id.String(), nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Fatalf("status = %d, want 204", rec.Code)
		}
	})

	t.Run("unknown contract", func(t *testing.T) {
		sys := &mockSystem{
			deleteFn: func(_ context.Context, _ uuid.UUID) error {
				return contracts.ErrNotFound
			},
		}
		mux := setupMux(sys.Handler())

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("DELETE", "/contracts/"+uuid.NewString(), nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
	})
}
