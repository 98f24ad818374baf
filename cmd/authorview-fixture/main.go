// Command authorview-fixture serves the embedded fixture records over HTTP so
// authorview can be run locally without a remote API.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/atomicstack/authorview/internal/fixture"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

func main() {
	fs := pflag.NewFlagSet("authorview-fixture", pflag.ContinueOnError)
	addr := fs.String("addr", "127.0.0.1:8080", "listen address")
	dataPath := fs.String("data", "", "YAML record set to serve instead of the embedded one")
	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	data, err := loadData(*dataPath)
	if err != nil {
		logger.Error("load fixture", zap.Error(err))
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := serve(ctx, *addr, fixture.NewServer(data).Handler(), logger); err != nil {
		logger.Error("serve", zap.Error(err))
		os.Exit(1)
	}
}

func loadData(path string) (fixture.Data, error) {
	if path == "" {
		return fixture.Default(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return fixture.Data{}, fmt.Errorf("read %s: %w", path, err)
	}
	return fixture.Load(raw)
}

func serve(ctx context.Context, addr string, handler http.Handler, logger *zap.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
