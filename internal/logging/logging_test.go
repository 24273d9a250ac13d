package logging

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCaptureRecordsAndDrains(t *testing.T) {
	Configure(filepath.Join(t.TempDir(), "test.log"))
	t.Cleanup(func() { Configure("") })
	Captured().Drain()

	Infof("loaded %s", "about:blank")
	Warnf("slow %d", 3)
	Error(errors.New("boom"))
	Error(nil)

	entries := Captured().Drain()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Level != LevelInfo || entries[0].Message != "loaded about:blank" {
		t.Fatalf("unexpected first entry %+v", entries[0])
	}
	if entries[1].Level != LevelWarn || entries[2].Level != LevelError {
		t.Fatalf("unexpected levels %v %v", entries[1].Level, entries[2].Level)
	}
	if again := Captured().Drain(); len(again) != 0 {
		t.Fatalf("expected drain to empty the buffer, got %d", len(again))
	}
}

func TestCaptureIsBounded(t *testing.T) {
	c := &Capture{}
	for i := 0; i < captureLimit+5; i++ {
		c.add(Entry{Message: "x"})
	}
	if got := len(c.Drain()); got != captureLimit {
		t.Fatalf("expected %d entries, got %d", captureLimit, got)
	}
	if c.Dropped() != 5 {
		t.Fatalf("expected 5 dropped, got %d", c.Dropped())
	}
}

func TestTraceWritesJSONWhenEnabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "trace.log")
	Configure(path)
	t.Cleanup(func() {
		Configure("")
		SetTraceEnabled(false)
	})

	Trace("skipped", nil)
	SetTraceEnabled(true)
	Trace("loop.pass", map[string]interface{}{"events": 2})

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read trace: %v", err)
	}
	out := string(data)
	if strings.Contains(out, "skipped") {
		t.Fatalf("expected disabled trace to be dropped, got %s", out)
	}
	if !strings.Contains(out, `"event":"loop.pass"`) {
		t.Fatalf("expected loop.pass trace, got %s", out)
	}
}
