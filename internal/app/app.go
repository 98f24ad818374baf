package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/atomicstack/authorview/internal/api"
	"github.com/atomicstack/authorview/internal/backend"
	"github.com/atomicstack/authorview/internal/controller"
	"github.com/atomicstack/authorview/internal/logging/events"
	"github.com/atomicstack/authorview/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"
)

// Config describes user-provided application options.
type Config struct {
	APIURL      string
	Timeout     time.Duration
	MinInterval time.Duration
	User        int
	Width       int
	Height      int
	ShowFooter  bool
	Markdown    bool
}

// Run bootstraps and executes the Bubble Tea program until the user quits,
// ctx is cancelled, or the process receives SIGINT/SIGTERM.
func Run(ctx context.Context, cfg Config) (err error) {
	defer func() { events.App.Stop(err) }()

	model, loader, err := newModel(cfg)
	if err != nil {
		return err
	}
	defer loader.Stop()

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithoutSignalHandler())

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	g, gctx := errgroup.WithContext(ctx)
	done := make(chan struct{})
	g.Go(func() error {
		defer close(done)
		_, runErr := program.Run()
		if errors.Is(runErr, tea.ErrProgramKilled) {
			return nil
		}
		return runErr
	})
	g.Go(func() error {
		select {
		case sig := <-sigs:
			events.App.Signal(sig.String())
			program.Quit()
		case <-gctx.Done():
			program.Quit()
		case <-done:
		}
		return nil
	})
	return g.Wait()
}

func newModel(cfg Config) (*ui.Model, *backend.Loader, error) {
	var opts []api.Option
	if cfg.Timeout > 0 {
		opts = append(opts, api.WithTimeout(cfg.Timeout))
	}
	client, err := api.New(cfg.APIURL, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("create api client: %w", err)
	}
	loader := backend.NewLoader(client, cfg.MinInterval)
	model := ui.NewModel(controller.New(), loader, ui.Options{
		Width:      cfg.Width,
		Height:     cfg.Height,
		ShowFooter: cfg.ShowFooter,
		Markdown:   cfg.Markdown,
		User:       cfg.User,
	})
	return model, loader, nil
}
