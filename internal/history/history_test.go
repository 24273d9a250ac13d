package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return s, path
}

func TestStoreRecordUpserts(t *testing.T) {
	s, _ := openStore(t)
	defer s.Close()
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	if err := s.Record(ctx, Visit{URL: "https://a.example", Title: "A", LastVisit: base}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := s.Record(ctx, Visit{URL: "https://b.example", LastVisit: base.Add(time.Minute)}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := s.Record(ctx, Visit{URL: "https://a.example", LastVisit: base.Add(2 * time.Minute)}); err != nil {
		t.Fatalf("record: %v", err)
	}
	visits, err := s.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(visits) != 2 {
		t.Fatalf("expected 2 visits, got %d", len(visits))
	}
	if visits[0].URL != "https://a.example" || visits[0].Count != 2 || visits[0].Title != "A" {
		t.Fatalf("unexpected first visit %+v", visits[0])
	}
	if err := s.Retitle(ctx, "https://b.example", "B"); err != nil {
		t.Fatalf("retitle: %v", err)
	}
	visits, _ = s.Recent(ctx, 1)
	if len(visits) != 1 {
		t.Fatalf("expected limit to apply, got %d", len(visits))
	}
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if visits, _ := s.Recent(ctx, 10); len(visits) != 0 {
		t.Fatalf("expected empty history, got %d", len(visits))
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	s, path := openStore(t)
	if err := s.Record(context.Background(), Visit{URL: "https://keep.example"}); err != nil {
		t.Fatalf("record: %v", err)
	}
	s.Close()

	again, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer again.Close()
	visits, err := again.Recent(context.Background(), 10)
	if err != nil || len(visits) != 1 {
		t.Fatalf("expected persisted visit, got %v (%v)", visits, err)
	}
}

func TestRecorderPersistsThroughWorker(t *testing.T) {
	s, path := openStore(t)
	r := NewRecorder(s, 0)
	r.Record("https://go.dev/doc", "Documentation")
	r.Record("https://go.dev/doc", "")
	if err := r.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	r2 := NewRecorder(reopened, 0)
	defer r2.Close()
	recent := r2.Recent()
	if len(recent) != 1 || recent[0].Count != 2 || recent[0].Title != "Documentation" {
		t.Fatalf("unexpected cache after reload %+v", recent)
	}
}

func TestRecorderFlushesCoalescedWrites(t *testing.T) {
	s, path := openStore(t)
	r := NewRecorder(s, time.Hour)
	r.Record("https://stale.example", "")
	r.Clear()
	r.Record("https://go.dev", "")
	r.Retitle("https://go.dev", "Loading")
	r.Retitle("https://go.dev", "The Go Programming Language")
	if err := r.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	recent, err := reopened.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 1 || recent[0].URL != "https://go.dev" || recent[0].Title != "The Go Programming Language" {
		t.Fatalf("expected only the coalesced go.dev visit, got %+v", recent)
	}
}

func TestRecorderMemoryOnly(t *testing.T) {
	r := NewRecorder(nil, 0)
	defer r.Close()
	r.Record("https://a.example", "")
	r.Record("https://b.example", "")
	r.Record("https://a.example", "")
	recent := r.Recent()
	if len(recent) != 2 || recent[0].URL != "https://a.example" || recent[0].Count != 2 {
		t.Fatalf("unexpected recent %+v", recent)
	}
	r.Retitle("https://b.example", "Bee")
	if got := r.Recent()[1].Title; got != "Bee" {
		t.Fatalf("expected retitle, got %q", got)
	}
	r.Clear()
	if len(r.Recent()) != 0 {
		t.Fatalf("expected cleared cache")
	}
}

func TestSuggestRanksCloserMatchesFirst(t *testing.T) {
	r := NewRecorder(nil, 0)
	defer r.Close()
	r.Record("https://example.com/very/long/path/to/page", "")
	r.Record("https://servo.org", "Servo")
	r.Record("https://example.com", "Example Domain")

	got := r.Suggest("example", 5)
	if len(got) != 2 {
		t.Fatalf("expected 2 suggestions, got %v", got)
	}
	if got[0] != "https://example.com" {
		t.Fatalf("expected closest match first, got %v", got)
	}
	if got := r.Suggest("srv", 5); len(got) != 1 || got[0] != "https://servo.org" {
		t.Fatalf("expected fuzzy match on servo, got %v", got)
	}
	if got := r.Suggest("example", 1); len(got) != 1 {
		t.Fatalf("expected limit to apply, got %v", got)
	}
	if r.Suggest("  ", 5) != nil {
		t.Fatalf("expected no suggestions for blank input")
	}
}

func TestRecordAfterCloseIsIgnored(t *testing.T) {
	r := NewRecorder(nil, 0)
	if err := r.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	r.Record("https://late.example", "")
	r.Clear()
	if err := r.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	if len(r.Recent()) != 0 {
		t.Fatalf("expected nothing recorded after close")
	}
}
