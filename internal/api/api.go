// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"fmt"
	"net/http"

	"github.com/clauseguard/clauseguard/internal/config"
	"github.com/clauseguard/clauseguard/internal/infrastructure"
	"github.com/clauseguard/clauseguard/pkg/middleware"
	"github.com/clauseguard/clauseguard/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware.
// The job worker pool is registered with the lifecycle coordinator so workers
// drain before shutdown completes.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)

	domain, err := NewDomain(runtime)
	if err != nil {
		return nil, err
	}

	if err := domain.Jobs.Start(runtime.Lifecycle); err != nil {
		return nil, fmt.Errorf("start job workers: %w", err)
	}

	mux := http.NewServeMux()
	registerRoutes(mux, domain, cfg, runtime)

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))

	return m, nil
}
