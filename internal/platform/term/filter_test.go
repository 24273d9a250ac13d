package term

import "testing"

func newTestList(labels ...string) *tabList {
	items := make([]tabItem, len(labels))
	for i, label := range labels {
		items[i] = tabItem{Index: i, Label: label, URL: "https://" + label + ".example/"}
	}
	l := newTabList()
	l.SetTabs(items, 0)
	return l
}

func TestSetFilterTracksCursorAndRestoresPosition(t *testing.T) {
	l := newTestList("servo", "rust", "mozilla")
	l.Cursor = 2
	l.SetFilter("rust", len("rust"))
	if len(l.Items) != 1 || l.Items[0].Label != "rust" {
		t.Fatalf("expected only rust, got %#v", l.Items)
	}
	if l.Cursor != 0 {
		t.Fatalf("expected filtered cursor at 0, got %d", l.Cursor)
	}
	l.SetFilter("", 0)
	if l.Cursor != 2 || l.LastCursor != -1 {
		t.Fatalf("expected cursor restored to 2, got %d (last %d)", l.Cursor, l.LastCursor)
	}
}

func TestFilterMatchesURL(t *testing.T) {
	l := newTestList("Servo Blog", "News")
	l.Full[1].URL = "https://servo.org/news/"
	l.SetFilter("servo.org", len("servo.org"))
	if len(l.Items) != 1 || l.Items[0].Index != 1 {
		t.Fatalf("expected url match on tab 1, got %#v", l.Items)
	}
}

func TestInsertAndDeleteFilterText(t *testing.T) {
	l := newTestList("alpha", "beta")
	if !l.InsertFilterText("al") {
		t.Fatal("expected insert to succeed")
	}
	if l.Filter != "al" || l.FilterCursor != 2 {
		t.Fatalf("unexpected filter state %q/%d", l.Filter, l.FilterCursor)
	}
	if !l.DeleteFilterRuneBackward() || l.Filter != "a" {
		t.Fatalf("expected rune deletion, got %q", l.Filter)
	}
	l.SetFilter("abc def", len("abc def"))
	if !l.DeleteFilterWordBackward() || l.Filter != "abc " {
		t.Fatalf("expected trailing word removed, got %q", l.Filter)
	}
	l.SetFilter("abc", 0)
	if l.DeleteFilterRuneBackward() {
		t.Fatal("expected delete at start to fail")
	}
}

func TestSetTabsFollowsCurrent(t *testing.T) {
	l := newTestList("one", "two", "three")
	l.SetTabs(l.Full, 2)
	if item, ok := l.Selected(); !ok || item.Index != 2 {
		t.Fatalf("expected current tab selected, got %#v", item)
	}
	if l.MoveCursor(1) {
		t.Fatalf("expected cursor clamped at the end")
	}
	if !l.MoveCursor(-5) || l.Cursor != 0 {
		t.Fatalf("expected cursor clamped at the start, got %d", l.Cursor)
	}
}

func TestBestMatchPrefersExactLabel(t *testing.T) {
	items := []tabItem{{Label: "servo nightly"}, {Label: "servo"}, {Label: "observer"}}
	if idx := bestMatchIndex(items, "SERVO"); idx != 1 {
		t.Fatalf("expected exact match at 1, got %d", idx)
	}
	if idx := bestMatchIndex(items, "obs"); idx != 2 {
		t.Fatalf("expected prefix match at 2, got %d", idx)
	}
	if idx := bestMatchIndex(nil, "x"); idx != -1 {
		t.Fatalf("expected -1 for no items, got %d", idx)
	}
}
