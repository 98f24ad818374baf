package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/atomicstack/authorview/internal/app"
	"github.com/atomicstack/authorview/internal/config"
	"github.com/atomicstack/authorview/internal/logging"
	"github.com/atomicstack/authorview/internal/logging/events"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"
)

// configError marks failures that should exit with status 2.
type configError struct {
	err error
}

func (e *configError) Error() string { return e.err.Error() }

func (e *configError) Unwrap() error { return e.err }

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var cfgErr *configError
		if errors.As(err, &cfgErr) {
			fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "authorview",
		Short:         "Browse authors, their posts, and post comments from a REST API",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			runtimeCfg, err := loadConfig(cmd.Flags(), os.Args[1:], os.Environ())
			if err != nil {
				return err
			}
			logging.Configure(runtimeCfg.Logging.FilePath)
			logging.SetTraceEnabled(runtimeCfg.Logging.Trace)
			defer logging.Sync()

			traceStartup(runtimeCfg)

			if err := app.Run(cmd.Context(), runtimeCfg.App); err != nil {
				logging.Error(err)
				return err
			}
			return nil
		},
	}
	cmd.Flags().AddFlagSet(config.Flags())
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &configError{err: err}
	})
	return cmd
}

// loadConfig resolves and validates configuration from parsed flags.
func loadConfig(fs *pflag.FlagSet, argv, environ []string) (config.Config, error) {
	cfg, err := config.FromFlags(fs, environ)
	if err != nil {
		return config.Config{}, &configError{err: err}
	}
	cfg.Args = append([]string(nil), argv...)
	if err := config.Validate(cfg); err != nil {
		return config.Config{}, &configError{err: err}
	}
	return cfg, nil
}

func traceStartup(cfg config.Config) {
	events.App.Start(startupTracePayload(cfg))
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags))
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	payload := map[string]interface{}{
		"argv":   cfg.Args,
		"flags":  flags,
		"config": cfg,
	}
	if cfg.File != "" {
		payload["configFile"] = cfg.File
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	} else {
		payload["executableError"] = err.Error()
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	} else {
		payload["cwdError"] = err.Error()
	}
	payload["tty"] = collectTTYDetails()
	return payload
}

type ttyDetails struct {
	Detected *ttyDetected     `json:"detected,omitempty"`
	Probes   []ttyProbeResult `json:"probes"`
}

type ttyDetected struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ttyProbeResult struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

// collectTTYDetails inspects standard descriptors for terminal support and dimensions.
func collectTTYDetails() ttyDetails {
	probes := []struct {
		name string
		fd   uintptr
	}{
		{"stdin", os.Stdin.Fd()},
		{"stdout", os.Stdout.Fd()},
		{"stderr", os.Stderr.Fd()},
	}
	results := make([]ttyProbeResult, 0, len(probes))
	var detected *ttyDetected
	for _, probe := range probes {
		entry := ttyProbeResult{Name: probe.name}
		fd := int(probe.fd)
		if fd >= 0 && term.IsTerminal(fd) {
			entry.IsTerminal = true
			if width, height, err := term.GetSize(fd); err == nil {
				entry.Width = width
				entry.Height = height
				if detected == nil {
					detected = &ttyDetected{Source: probe.name, Width: width, Height: height}
				}
			} else {
				entry.Error = err.Error()
			}
		} else {
			entry.IsTerminal = false
		}
		results = append(results, entry)
	}
	return ttyDetails{Detected: detected, Probes: results}
}
