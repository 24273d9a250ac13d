package app

import (
	"errors"
	"path/filepath"
	"slices"
	"testing"

	"github.com/atomicstack/webshell/internal/platform"
)

func TestBackendsIncludeBuiltins(t *testing.T) {
	names := Backends()
	for _, want := range []string{"headless", "term"} {
		if !slices.Contains(names, want) {
			t.Fatalf("expected backend %q in %v", want, names)
		}
	}
}

func TestRunUnknownBackend(t *testing.T) {
	err := Run(Config{Backend: "cocoa", StartURL: "about:blank"})
	if !errors.Is(err, platform.ErrUnknownBackend) {
		t.Fatalf("expected ErrUnknownBackend, got %v", err)
	}
}

func TestRunWithoutResources(t *testing.T) {
	t.Chdir(t.TempDir())
	err := Run(Config{Backend: "headless", StartURL: "about:blank"})
	if !errors.Is(err, platform.ErrResourcesNotFound) {
		t.Fatalf("expected ErrResourcesNotFound, got %v", err)
	}
}

func TestOpenHistoryPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.db")
	rec := openHistory(path)
	rec.Record("https://servo.org/", "Servo")
	if err := rec.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	reopened := openHistory(path)
	defer reopened.Close()
	recent := reopened.Recent()
	if len(recent) != 1 || recent[0].URL != "https://servo.org/" {
		t.Fatalf("expected the visit to survive a reopen, got %#v", recent)
	}
}

func TestOpenHistoryFallsBackToMemory(t *testing.T) {
	dir := t.TempDir()
	rec := openHistory(dir)
	defer rec.Close()
	rec.Record("https://example.com/", "Example")
	if got := rec.Suggest("example", 8); len(got) != 1 {
		t.Fatalf("expected in-memory suggestions, got %v", got)
	}
}
