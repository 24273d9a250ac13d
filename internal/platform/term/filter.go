package term

import (
	"strings"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// tabItem is one sidebar row. Index is the tab's position in the window.
type tabItem struct {
	Index int
	Label string
	URL   string
}

// tabList is the sidebar's filterable view of the open tabs.
type tabList struct {
	Full         []tabItem
	Items        []tabItem
	Filter       string
	FilterCursor int
	Cursor       int
	LastCursor   int
	current      int
}

func newTabList() *tabList {
	return &tabList{LastCursor: -1, current: -1}
}

// SetTabs replaces the full list and reapplies the current filter. When the
// window's current tab changes and nothing is filtered, the cursor follows it.
func (l *tabList) SetTabs(items []tabItem, current int) {
	l.Full = items
	l.applyFilter()
	moved := current != l.current
	l.current = current
	if moved && strings.TrimSpace(l.Filter) == "" {
		for i, item := range l.Items {
			if item.Index == current {
				l.Cursor = i
			}
		}
	}
}

// SetFilter updates the filter query and cursor position.
func (l *tabList) SetFilter(query string, cursor int) {
	trimmed := strings.TrimSpace(query)
	prevTrimmed := strings.TrimSpace(l.Filter)
	restore := -1
	l.Filter = query
	runes := []rune(l.Filter)
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(runes) {
		cursor = len(runes)
	}
	l.FilterCursor = cursor
	if trimmed != "" {
		if prevTrimmed == "" {
			l.LastCursor = l.Cursor
		}
		l.Cursor = 0
	} else if prevTrimmed != "" {
		restore = l.LastCursor
	}
	l.applyFilter()
	if trimmed != "" && len(l.Items) > 0 {
		if idx := bestMatchIndex(l.Items, trimmed); idx >= 0 {
			l.Cursor = idx
		}
	}
	if trimmed == "" && prevTrimmed != "" {
		if restore >= 0 && restore < len(l.Items) {
			l.Cursor = restore
		} else if len(l.Items) > 0 {
			l.Cursor = len(l.Items) - 1
		}
		l.LastCursor = -1
	}
}

func (l *tabList) applyFilter() {
	l.Items = filterTabs(l.Full, l.Filter)
	if len(l.Items) == 0 {
		l.Cursor = 0
		return
	}
	if l.Cursor < 0 {
		l.Cursor = 0
	}
	if l.Cursor >= len(l.Items) {
		l.Cursor = len(l.Items) - 1
	}
}

func (l *tabList) filterCursorPos() int {
	runes := []rune(l.Filter)
	if l.FilterCursor < 0 {
		return 0
	}
	if l.FilterCursor > len(runes) {
		return len(runes)
	}
	return l.FilterCursor
}

// InsertFilterText inserts text into the filter at the cursor position.
func (l *tabList) InsertFilterText(text string) bool {
	insert := []rune(text)
	if len(insert) == 0 {
		return false
	}
	runes := []rune(l.Filter)
	pos := l.filterCursorPos()
	updated := make([]rune, 0, len(runes)+len(insert))
	updated = append(updated, runes[:pos]...)
	updated = append(updated, insert...)
	updated = append(updated, runes[pos:]...)
	l.SetFilter(string(updated), pos+len(insert))
	return true
}

// DeleteFilterRuneBackward deletes a rune before the filter cursor.
func (l *tabList) DeleteFilterRuneBackward() bool {
	runes := []rune(l.Filter)
	pos := l.filterCursorPos()
	if pos == 0 || len(runes) == 0 {
		return false
	}
	updated := append(runes[:pos-1], runes[pos:]...)
	l.SetFilter(string(updated), pos-1)
	return true
}

// DeleteFilterWordBackward deletes the word preceding the cursor.
func (l *tabList) DeleteFilterWordBackward() bool {
	runes := []rune(l.Filter)
	pos := l.filterCursorPos()
	if pos == 0 || len(runes) == 0 {
		return false
	}
	i := pos
	for i > 0 && unicode.IsSpace(runes[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(runes[i-1]) {
		i--
	}
	updated := append(runes[:i], runes[pos:]...)
	l.SetFilter(string(updated), i)
	return true
}

// MoveCursor moves the selection by delta, clamped to the visible rows.
func (l *tabList) MoveCursor(delta int) bool {
	if len(l.Items) == 0 {
		return false
	}
	next := l.Cursor + delta
	if next < 0 {
		next = 0
	}
	if next >= len(l.Items) {
		next = len(l.Items) - 1
	}
	if next == l.Cursor {
		return false
	}
	l.Cursor = next
	return true
}

// Selected returns the highlighted tab.
func (l *tabList) Selected() (tabItem, bool) {
	if l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return tabItem{}, false
	}
	return l.Items[l.Cursor], true
}

// filterTabs returns the tabs whose title or URL matches query.
func filterTabs(items []tabItem, query string) []tabItem {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return append([]tabItem(nil), items...)
	}
	targets := make([]string, len(items))
	for i, item := range items {
		targets[i] = item.Label + " " + item.URL
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, targets)
	if len(ranks) > 0 {
		matches := make(map[int]struct{}, len(ranks))
		for _, rank := range ranks {
			matches[rank.OriginalIndex] = struct{}{}
		}
		filtered := make([]tabItem, 0, len(matches))
		for idx, item := range items {
			if _, ok := matches[idx]; ok {
				filtered = append(filtered, item)
			}
		}
		return filtered
	}
	lower := strings.ToLower(trimmed)
	filtered := make([]tabItem, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Label), lower) || strings.Contains(strings.ToLower(item.URL), lower) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// bestMatchIndex returns the best index for the query among the items.
func bestMatchIndex(items []tabItem, query string) int {
	trimmed := strings.TrimSpace(query)
	if len(items) == 0 {
		return -1
	}
	if trimmed == "" {
		return 0
	}
	lower := strings.ToLower(trimmed)
	for i, item := range items {
		if strings.EqualFold(item.Label, trimmed) {
			return i
		}
	}
	for i, item := range items {
		if strings.HasPrefix(strings.ToLower(item.Label), lower) {
			return i
		}
	}
	for i, item := range items {
		if strings.Contains(strings.ToLower(item.Label), lower) {
			return i
		}
	}
	labels := make([]string, len(items))
	for i, item := range items {
		labels[i] = item.Label
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, labels)
	if len(ranks) == 0 {
		return 0
	}
	best := ranks[0]
	for _, rank := range ranks[1:] {
		if rank.Distance < best.Distance || (rank.Distance == best.Distance && rank.OriginalIndex < best.OriginalIndex) {
			best = rank
		}
	}
	if best.OriginalIndex < 0 || best.OriginalIndex >= len(items) {
		return 0
	}
	return best.OriginalIndex
}
