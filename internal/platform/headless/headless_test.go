package headless

import (
	"testing"
	"time"

	"github.com/atomicstack/webshell/internal/platform"
	"github.com/atomicstack/webshell/internal/state"
)

func TestRunTicksOnInputAndWake(t *testing.T) {
	app := NewApp(platform.Options{})
	w, _ := app.NewWindow()
	win := w.(*Window)

	ticks := make(chan []platform.WindowEvent, 8)
	done := make(chan error, 1)
	go func() {
		done <- app.Run(func() { ticks <- win.Events() })
	}()

	next := func() []platform.WindowEvent {
		select {
		case evts := <-ticks:
			return evts
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for tick")
			return nil
		}
	}

	if evts := next(); len(evts) != 0 {
		t.Fatalf("expected empty startup tick, got %v", evts)
	}
	win.PushCommand(platform.Do(platform.CmdReload))
	if evts := next(); len(evts) != 1 {
		t.Fatalf("expected one command, got %v", evts)
	}
	win.Waker().Wake()
	evts := next()
	if len(evts) != 1 {
		t.Fatalf("expected awaken event, got %v", evts)
	}
	if _, ok := evts[0].(platform.EventLoopAwaken); !ok {
		t.Fatalf("expected EventLoopAwaken, got %#v", evts[0])
	}

	app.Quit()
	app.Quit()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("unexpected run error %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("run did not return after quit")
	}
}

func TestWakesAreLevelTriggered(t *testing.T) {
	app := NewApp(platform.Options{})
	w, _ := app.NewWindow()
	for i := 0; i < 10; i++ {
		w.Waker().Wake()
	}
	if len(app.wake) != 1 {
		t.Fatalf("expected a single pending wake, got %d", len(app.wake))
	}
}

func TestWakeAfterCloseIsNoop(t *testing.T) {
	app := NewApp(platform.Options{})
	w, _ := app.NewWindow()
	win := w.(*Window)
	win.Close()
	win.Waker().Wake()
	if len(app.wake) != 0 {
		t.Fatalf("expected stale wake to be dropped")
	}
	if _, ok := win.Events()[0].(platform.WillClose); !ok {
		t.Fatalf("expected WillClose queued")
	}
}

func TestRenderRecordsDetachedCopies(t *testing.T) {
	app := NewApp(platform.Options{Width: 640, Height: 480})
	w, _ := app.NewWindow()
	win := w.(*Window)
	ws := state.NewWindow()
	ws.Browsers = []state.BrowserState{state.NewBrowser("a")}
	win.Render(&ws)
	ws.Browsers[0].Title = "mutated"
	got, ok := win.LastRender()
	if !ok || got.Browsers[0].Title != "" {
		t.Fatalf("expected detached render copy, got %+v", got)
	}
	v, _ := win.NewView()
	if g := v.Geometry(); g.ViewSize.Width != 640 || g.HiDPIFactor != 1 {
		t.Fatalf("unexpected geometry %+v", g)
	}
}

func TestLiveResizeRunsCallbackInline(t *testing.T) {
	app := NewApp(platform.Options{})
	w, _ := app.NewWindow()
	view := w.(*Window).View()
	calls := 0
	view.SetLiveResizeCallback(func() {
		calls++
		if len(view.Events()) != 1 {
			t.Fatalf("expected geometry event during live resize")
		}
	})
	view.SimulateLiveResize(platform.DrawableGeometry{ViewSize: platform.Size{Width: 10, Height: 10}, HiDPIFactor: 2})
	if calls != 1 || view.Geometry().HiDPIFactor != 2 {
		t.Fatalf("expected inline callback with new geometry")
	}
}

func TestRegistered(t *testing.T) {
	f, err := platform.Lookup(Name)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	app, err := f(platform.Options{})
	if err != nil || app == nil {
		t.Fatalf("factory failed: %v", err)
	}
}
