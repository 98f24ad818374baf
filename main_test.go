package main

import (
	"errors"
	"testing"
	"time"

	"github.com/atomicstack/authorview/internal/app"
	"github.com/atomicstack/authorview/internal/config"
)

func TestCollectTTYDetailsIncludesStandardDescriptors(t *testing.T) {
	info := collectTTYDetails()
	if len(info.Probes) != 3 {
		t.Fatalf("expected 3 probe entries, got %d", len(info.Probes))
	}
	expected := []string{"stdin", "stdout", "stderr"}
	for i, name := range expected {
		if info.Probes[i].Name != name {
			t.Fatalf("expected probe %d name %q, got %q", i, name, info.Probes[i].Name)
		}
	}
}

func TestStartupTracePayloadIncludesFlags(t *testing.T) {
	cfg := config.Config{
		App: app.Config{
			APIURL:  "http://localhost:8080",
			Timeout: 5 * time.Second,
			Width:   80,
			Height:  24,
		},
		Logging: config.Logging{
			FilePath: "trace.log",
			Trace:    true,
		},
		File: "authorview.yaml",
		Flags: map[string]string{
			"apiURL": "http://localhost:8080",
			"width":  "80",
			"height": "24",
			"footer": "true",
		},
		Args: []string{"--api-url", "http://localhost:8080"},
	}

	payload := startupTracePayload(cfg)

	flagsValue, ok := payload["flags"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected flags map in payload")
	}
	if flagsValue["apiURL"] != "http://localhost:8080" {
		t.Fatalf("expected api url flag, got %v", flagsValue["apiURL"])
	}
	if flagsValue["width"] != "80" || flagsValue["height"] != "24" {
		t.Fatalf("expected 80x24, got %v x %v", flagsValue["width"], flagsValue["height"])
	}
	if flagsValue["trace"] != true {
		t.Fatalf("expected trace flag true, got %v", flagsValue["trace"])
	}
	if flagsValue["logFile"] != "trace.log" {
		t.Fatalf("expected log file trace.log, got %v", flagsValue["logFile"])
	}
	if payload["configFile"] != "authorview.yaml" {
		t.Fatalf("expected config file in payload, got %v", payload["configFile"])
	}
	if _, ok := payload["tty"].(ttyDetails); !ok {
		t.Fatalf("expected tty details in payload")
	}
	if cfgValue, ok := payload["config"].(config.Config); !ok {
		t.Fatalf("expected config in payload")
	} else if cfgValue.App != cfg.App {
		t.Fatalf("expected app config %#v, got %#v", cfg.App, cfgValue.App)
	}
}

func TestLoadConfigMarksValidationFailures(t *testing.T) {
	cmd := newRootCmd()
	if err := cmd.ParseFlags([]string{"--width", "10"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	_, err := loadConfig(cmd.Flags(), nil, nil)
	var cfgErr *configError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected configuration error for missing api url, got %v", err)
	}
}

func TestLoadConfigResolvesFlags(t *testing.T) {
	cmd := newRootCmd()
	argv := []string{"--api-url", "http://localhost:8080", "--user", "3"}
	if err := cmd.ParseFlags(argv); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	cfg, err := loadConfig(cmd.Flags(), argv, []string{"AUTHORVIEW_USER=7"})
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.App.APIURL != "http://localhost:8080" || cfg.App.User != 3 {
		t.Fatalf("unexpected app config %#v", cfg.App)
	}
	if len(cfg.Args) != len(argv) {
		t.Fatalf("expected argv recorded, got %v", cfg.Args)
	}
}

func TestUnknownFlagIsConfigurationError(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--bogus"})
	err := cmd.Execute()
	var cfgErr *configError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}
