package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	mw "call-quality-go/internal/api/middleware"
)

// Dependencies holds the handlers the router wires up.
type Dependencies struct {
	HealthHandler  http.HandlerFunc
	AnalyzeHandler http.HandlerFunc
}

// NewRouter builds the chi router with the middleware stack and all routes.
// OPTIONS preflights are answered by the CORS middleware before routing.
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(mw.Logger)
	r.Use(mw.Recovery)
	r.Use(mw.CORS)

	r.Get("/healthz", deps.HealthHandler)
	r.Post("/analyze", deps.AnalyzeHandler)

	return r
}
