// Package httpapi composes the top-level router. Handlers stay in their
// verticals; this package only owns the middleware chain and the operational
// endpoints.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	identityhandler "listly/internal/identity/handler"
	listhandler "listly/internal/list/handler"
	"listly/internal/platform/metrics"
	"listly/internal/platform/middleware"
	"listly/pkg/httputil"
)

// HealthChecker is anything that can report backend liveness. Nil checkers
// are skipped so the memory-backed dev setup stays healthy.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Deps carries everything the router wires together.
type Deps struct {
	Identity *identityhandler.Handler
	Lists    *listhandler.Handler
	Logger   *slog.Logger
	Metrics  *metrics.Metrics
	Health   map[string]HealthChecker
}

// New builds the application router.
func New(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.Latency(deps.Metrics))
	r.Use(middleware.ContentTypeJSON)

	deps.Identity.Register(r)
	deps.Lists.Register(r)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", handleHealth(deps.Health))

	return r
}

func handleHealth(checkers map[string]HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := http.StatusOK
		result := make(map[string]string, len(checkers)+1)
		result["status"] = "ok"
		for name, checker := range checkers {
			if checker == nil {
				continue
			}
			if err := checker.Health(r.Context()); err != nil {
				status = http.StatusServiceUnavailable
				result["status"] = "degraded"
				result[name] = err.Error()
			} else {
				result[name] = "ok"
			}
		}
		httputil.WriteJSON(w, status, result)
	}
}
