// Package metrics contains the prometheus infrastructure.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	cmdCommon "github.com/oasisprotocol/deepspace/cmd/common"
	"github.com/oasisprotocol/deepspace/log"
)

// ScrapePath is where the pull service exposes the default registry.
const ScrapePath = "/metrics"

// PullService exposes collected metrics for Prometheus to scrape.
type PullService struct {
	server *http.Server
	logger *log.Logger
}

// NewPullService creates a pull service listening on endpoint.
func NewPullService(endpoint string, logger *log.Logger) *PullService {
	mux := http.NewServeMux()
	mux.Handle(ScrapePath, promhttp.Handler())
	return &PullService{
		server: &http.Server{
			Addr:              endpoint,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      10 * time.Second,
		},
		logger: logger.WithModule("metrics"),
	}
}

// Handler serves the scrape endpoint.
func (s *PullService) Handler() http.Handler {
	return s.server.Handler
}

// Run serves until ctx is canceled.
func (s *PullService) Run(ctx context.Context) error {
	return cmdCommon.RunServer(ctx, s.server, s.logger)
}
