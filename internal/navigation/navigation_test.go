package navigation

import (
	"errors"
	"testing"
)

func TestResolve(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"https://example.com/path?q=1", "https://example.com/path?q=1"},
		{"http://localhost:8080", "http://localhost:8080"},
		{"about:blank", "about:blank"},
		{"file:///tmp/index.html", "file:///tmp/index.html"},
		{"example.com", "http://example.com"},
		{"servo.org", "http://servo.org"},
		{"golang.dev", "http://golang.dev"},
		{"  example.net  ", "http://example.net"},
		{"hello world", "https://duckduckgo.com/html/?q=hello+world"},
		{"example", "https://duckduckgo.com/html/?q=example"},
		{"a&b", "https://duckduckgo.com/html/?q=a%26b"},
		{".com", "https://duckduckgo.com/html/?q=.com"},
	}
	for _, tc := range cases {
		u, err := Resolve(tc.input, "")
		if err != nil {
			t.Fatalf("Resolve(%q): unexpected error %v", tc.input, err)
		}
		if u.String() != tc.want {
			t.Fatalf("Resolve(%q) = %s, want %s", tc.input, u, tc.want)
		}
	}
}

func TestResolveCustomTemplate(t *testing.T) {
	u, err := Resolve("go modules", "https://search.example/?s=%s&x=1")
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if u.String() != "https://search.example/?s=go+modules&x=1" {
		t.Fatalf("unexpected url %s", u)
	}
}

func TestResolveFailures(t *testing.T) {
	if _, err := Resolve("   ", ""); !errors.Is(err, ErrUnresolvable) {
		t.Fatalf("expected ErrUnresolvable for blank input, got %v", err)
	}
	if _, err := Resolve("hello", "https://no-placeholder.example/"); !errors.Is(err, ErrUnresolvable) {
		t.Fatalf("expected ErrUnresolvable without placeholder, got %v", err)
	}
}
