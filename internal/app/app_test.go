package app

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestRunRejectsInvalidAPIURL(t *testing.T) {
	err := Run(context.Background(), Config{APIURL: "ftp://example.com"})
	if err == nil {
		t.Fatalf("expected error for unsupported scheme")
	}
	if !strings.Contains(err.Error(), "create api client") {
		t.Fatalf("expected wrapped client error, got %v", err)
	}
}

func TestNewModelWiresLoader(t *testing.T) {
	model, loader, err := newModel(Config{
		APIURL:      "http://127.0.0.1:1",
		Timeout:     time.Second,
		MinInterval: 10 * time.Millisecond,
		Width:       80,
		Height:      24,
	})
	if err != nil {
		t.Fatalf("newModel: %v", err)
	}
	defer loader.Stop()
	if model == nil || loader == nil {
		t.Fatalf("expected model and loader")
	}
	if view := model.View(); !strings.Contains(view, "No user selected") {
		t.Fatalf("expected initial view, got:\n%s", view)
	}
}
