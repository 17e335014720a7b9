package api

import (
	"net/http"

	"github.com/clauseguard/clauseguard/internal/config"
	"github.com/clauseguard/clauseguard/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) {
	routes.Register(
		mux,
		domain.Jobs.Handler(cfg.API.MaxUploadSizeBytes()).Routes(),
		domain.Contracts.Handler().Routes(),
		domain.Chat.Handler().Routes(),
		newStorageHandler(runtime.Storage, runtime.Logger).routes(),
	)
}
