// Package api implements the serve sub-command.
package api

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/oasisprotocol/deepspace/api"
	"github.com/oasisprotocol/deepspace/cmd/common"
	"github.com/oasisprotocol/deepspace/config"
	"github.com/oasisprotocol/deepspace/log"
	"github.com/oasisprotocol/deepspace/metrics"
	"github.com/oasisprotocol/deepspace/tx"
)

const (
	moduleName = "api"
)

var (
	// Path to the configuration file.
	configFile string

	apiCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve the deepspace encoding API",
		Run:   runServer,
	}
)

func runServer(cmd *cobra.Command, args []string) {
	// Initialize config.
	cfg, err := config.InitConfig(configFile)
	if err != nil {
		log.NewDefaultLogger("init").Error("init failed",
			"error", err,
		)
		os.Exit(1)
	}

	// Initialize common environment.
	if err = common.Init(cfg); err != nil {
		log.NewDefaultLogger("init").Error("init failed",
			"error", err,
		)
		os.Exit(1)
	}
	logger := common.RootLogger()

	if cfg.Server == nil {
		logger.Error("server config not provided")
		os.Exit(1)
	}

	service, err := NewService(cfg)
	if err != nil {
		logger.Error("service failed to start", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return service.Run(ctx) })
	if cfg.Metrics != nil {
		pull := metrics.NewPullService(cfg.Metrics.PullEndpoint, logger)
		g.Go(func() error { return pull.Run(ctx) })
	}
	if err := g.Wait(); err != nil {
		logger.Error("service stopped", "error", err)
		os.Exit(1)
	}
}

// Service is the deepspace API service.
type Service struct {
	server string
	api    *api.API
	logger *log.Logger
}

// NewService creates a new API service. Envelopes are tagged with the
// configured chain family, cosmos if no chain is configured.
func NewService(cfg *config.Config) (*Service, error) {
	logger := common.RootLogger().WithModule(moduleName)

	family := tx.FamilyCosmos
	if cfg.Chain != nil {
		var err error
		if family, err = cfg.Chain.TxFamily(); err != nil {
			return nil, err
		}
	}

	return &Service{
		server: cfg.Server.Endpoint,
		api:    api.NewAPI(family, logger),
		logger: logger,
	}, nil
}

// Run serves the API until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:           s.server,
		Handler:        s.api.Router(),
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}
	return common.RunServer(ctx, server, s.logger)
}

// Register registers the serve sub-command.
func Register(parentCmd *cobra.Command) {
	apiCmd.Flags().StringVar(&configFile, "config", "./conf/deepspace.yml", "path to the config.yml file")
	parentCmd.AddCommand(apiCmd)
}
