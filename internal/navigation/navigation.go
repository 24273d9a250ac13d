// Package navigation turns address bar input into a URL to load.
package navigation

import (
	"errors"
	"net/url"
	"strings"
)

// DefaultSearchTemplate is used when no template is configured. %s is
// replaced with the query escaped input.
const DefaultSearchTemplate = "https://duckduckgo.com/html/?q=%s"

// ErrUnresolvable is returned for input that cannot become a URL.
var ErrUnresolvable = errors.New("unresolvable address")

var bareDomainSuffixes = []string{".com", ".org", ".net", ".io", ".dev", ".edu", ".gov"}

// Resolve interprets input as an absolute URL, then as a bare domain, and
// otherwise as a search query.
func Resolve(input, template string) (*url.URL, error) {
	text := strings.TrimSpace(input)
	if text == "" {
		return nil, ErrUnresolvable
	}
	if u, ok := parseAbsolute(text); ok {
		return u, nil
	}
	if isBareDomain(text) {
		if u, ok := parseAbsolute("http://" + text); ok {
			return u, nil
		}
	}
	if template == "" {
		template = DefaultSearchTemplate
	}
	if !strings.Contains(template, "%s") {
		return nil, ErrUnresolvable
	}
	u, err := url.Parse(strings.Replace(template, "%s", url.QueryEscape(text), 1))
	if err != nil {
		return nil, errors.Join(ErrUnresolvable, err)
	}
	return u, nil
}

func parseAbsolute(text string) (*url.URL, bool) {
	if strings.ContainsAny(text, " \t") {
		return nil, false
	}
	u, err := url.Parse(text)
	if err != nil || u.Scheme == "" {
		return nil, false
	}
	switch u.Scheme {
	case "about", "data", "file", "mailto", "javascript":
		return u, u.Opaque != "" || u.Path != ""
	}
	if u.Host == "" {
		return nil, false
	}
	return u, true
}

func isBareDomain(text string) bool {
	if strings.ContainsAny(text, " \t/?#") {
		return false
	}
	lower := strings.ToLower(text)
	for _, suffix := range bareDomainSuffixes {
		if strings.HasSuffix(lower, suffix) && len(lower) > len(suffix) {
			return true
		}
	}
	return false
}
