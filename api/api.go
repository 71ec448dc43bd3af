// Package api implements the keyless HTTP service that exposes address
// conversion, vote hashing, sign doc encoding and envelope assembly.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/oasisprotocol/deepspace/log"
	"github.com/oasisprotocol/deepspace/metrics"
	"github.com/oasisprotocol/deepspace/tx"
)

const (
	moduleName = "api"

	// Request bodies are small JSON documents.
	maxBodyBytes = 1 << 20
)

// API serves the v1 endpoints.
type API struct {
	router  *chi.Mux
	family  tx.Family
	metrics metrics.RequestMetrics
	logger  *log.Logger
}

// NewAPI creates the API. Envelopes are tagged with family.
func NewAPI(family tx.Family, l *log.Logger) *API {
	a := &API{
		router:  chi.NewRouter(),
		family:  family,
		metrics: metrics.NewDefaultRequestMetrics(moduleName),
		logger:  l.WithModule(moduleName),
	}

	r := a.router
	r.Use(CorsMiddleware)
	r.Use(MetricsMiddleware(a.metrics, *a.logger))
	r.Use(middleware.Recoverer)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/addresses/{address}", a.GetAddress)
		r.Post("/vote_hash", a.PostVoteHash)
		r.Post("/sign_doc", a.PostSignDoc)
		r.Post("/txs", a.PostTxs)
	})

	return a
}

// Router gets the router for this API.
func (a *API) Router() http.Handler {
	return a.router
}
