package api

import (
	"github.com/clauseguard/clauseguard/internal/config"
	"github.com/clauseguard/clauseguard/internal/infrastructure"
	"github.com/clauseguard/clauseguard/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination pagination.Config
	Analyzer   config.AnalyzerConfig
	Jobs       config.JobsConfig
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Database:  infra.Database,
			Storage:   infra.Storage,
		},
		Pagination: cfg.API.Pagination,
		Analyzer:   cfg.Analyzer,
		Jobs:       cfg.Jobs,
	}
}
