// Package httptransport assembles the HTTP surface: routing, cross-cutting
// middleware, and operational endpoints. Handlers stay thin; domain logic
// lives in the services.
package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"medibook/internal/accessgate"
	accountHandler "medibook/internal/account/handler"
	"medibook/internal/assistant"
	bookingHandler "medibook/internal/booking/handler"
)

// Deps are the wired handlers the router mounts. Assistant is nil when no
// API key is configured and its route is left off.
type Deps struct {
	Gate      *accessgate.Middleware
	Accounts  *accountHandler.Handler
	Bookings  *bookingHandler.Handler
	Assistant *assistant.Handler
}

// NewRouter wires all endpoints behind the standard middleware stack.
func NewRouter(deps Deps, allowedOrigin string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if allowedOrigin != "" {
		r.Use(cors(allowedOrigin))
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	deps.Accounts.Register(r, deps.Gate)
	deps.Bookings.Register(r, deps.Gate)
	if deps.Assistant != nil {
		deps.Assistant.Register(r, deps.Gate)
	}
	return r
}

// cors answers preflight and tags responses for the single allowed
// cross-origin caller.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
