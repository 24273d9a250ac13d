package state

import (
	"errors"
	"fmt"
)

// Validate reports every structural violation in the tree. A nil result means
// the tree is consistent.
func (a *AppState) Validate() error {
	if a == nil {
		return errors.New("nil application state")
	}
	var errs []error
	if len(a.Windows) == 0 {
		if a.CurrentWindowIndex != None {
			errs = append(errs, fmt.Errorf("current window index %d set with no windows", a.CurrentWindowIndex))
		}
	} else if a.CurrentWindowIndex < 0 || a.CurrentWindowIndex >= len(a.Windows) {
		errs = append(errs, fmt.Errorf("current window index %d out of range [0,%d)", a.CurrentWindowIndex, len(a.Windows)))
	}
	seen := make(map[BrowserID]int)
	for wi := range a.Windows {
		if err := a.Windows[wi].validate(wi, seen); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (w *WindowState) validate(wi int, seen map[BrowserID]int) error {
	var errs []error
	if len(w.Browsers) == 0 {
		errs = append(errs, fmt.Errorf("window %d: no browsers", wi))
	} else if w.CurrentBrowserIndex < 0 || w.CurrentBrowserIndex >= len(w.Browsers) {
		errs = append(errs, fmt.Errorf("window %d: current browser index %d out of range [0,%d)", wi, w.CurrentBrowserIndex, len(w.Browsers)))
	}
	for bi, b := range w.Browsers {
		if b.ID == "" {
			errs = append(errs, fmt.Errorf("window %d: browser %d has no id", wi, bi))
		} else if prev, dup := seen[b.ID]; dup {
			errs = append(errs, fmt.Errorf("window %d: browser id %q duplicated (first in window %d)", wi, b.ID, prev))
		} else {
			seen[b.ID] = wi
		}
		if b.Zoom <= 0 {
			errs = append(errs, fmt.Errorf("window %d: browser %q zoom %v not positive", wi, b.ID, b.Zoom))
		}
	}
	return errors.Join(errs...)
}
