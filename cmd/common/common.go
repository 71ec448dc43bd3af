// Package common implements common deepspace command options.
package common

import (
	"context"
	"errors"
	"fmt"
	"io"
	stdLog "log"
	"net/http"
	"os"
	"time"

	"github.com/akrylysov/pogreb"

	"github.com/oasisprotocol/deepspace/config"
	"github.com/oasisprotocol/deepspace/log"
)

// How long a server gets to drain in-flight requests on shutdown.
const shutdownTimeout = 10 * time.Second

var rootLogger = log.NewDefaultLogger("deepspace")

// Init initializes the common environment.
func Init(cfg *config.Config) error {
	var w io.Writer = os.Stdout
	format := log.FmtJSON
	level := log.LevelDebug

	if cfg.Log != nil {
		var err error
		if w, err = getLoggingStream(cfg.Log); err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		if format, err = log.ParseFormat(cfg.Log.Format); err != nil {
			return err
		}
		if level, err = log.ParseLevel(cfg.Log.Level); err != nil {
			return err
		}
	}
	logger, err := log.NewLogger("deepspace", w, format, level)
	if err != nil {
		return err
	}
	rootLogger = logger

	// Route pogreb's own messages (index rebuilds, recovery) into our logs.
	pogreb.SetLogger(stdLog.New(log.WriterIntoLogger(RootLogger().WithModule("pogreb")), "", 0))

	return nil
}

// RootLogger returns the logger defined by logging flags.
func RootLogger() *log.Logger {
	return rootLogger
}

func getLoggingStream(cfg *config.LogConfig) (io.Writer, error) {
	if cfg == nil || cfg.File == "" {
		return os.Stdout, nil
	}
	w, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, err
	}
	return w, nil
}

// RunServer serves until ctx is canceled, then shuts the server down
// gracefully. A server that stops on its own returns its error.
func RunServer(ctx context.Context, server *http.Server, logger *log.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", "endpoint", server.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("server stopped", "endpoint", server.Addr, "err", err)
		return err
	case <-ctx.Done():
		logger.Info("shutting down server", "endpoint", server.Addr)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down %s: %w", server.Addr, err)
		}
		return nil
	}
}
