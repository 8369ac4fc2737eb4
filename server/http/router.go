package serverhttp

import (
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/stu2454/enableNSWmapping/internal/config"
	cwHnd "github.com/stu2454/enableNSWmapping/internal/crosswalk/handler"
	"github.com/stu2454/enableNSWmapping/internal/middleware"
	"github.com/stu2454/enableNSWmapping/server/http/handlers"
)

func NewRouter(cfg config.Config, logger zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// order matters: recover -> requestID -> logging -> cors -> limit
	r.Use(middleware.Recover(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(cfg.AllowOrigins))
	r.Use(middleware.LimitBytes(int64(cfg.MaxUploadMB) * 1024 * 1024))

	r.Get("/health", handlers.Health)

	r.Post("/crosswalk", cwHnd.Crosswalk(cfg, logger))
	r.Post("/crosswalk/report", cwHnd.CrosswalkReport(cfg, logger))

	return r
}
