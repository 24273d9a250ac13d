package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/atomicstack/webshell/internal/engine"
	"github.com/atomicstack/webshell/internal/engine/headless"
	"github.com/atomicstack/webshell/internal/history"
	"github.com/atomicstack/webshell/internal/logging"
	"github.com/atomicstack/webshell/internal/platform"
	"github.com/atomicstack/webshell/internal/shell"

	_ "github.com/atomicstack/webshell/internal/platform/headless"
	_ "github.com/atomicstack/webshell/internal/platform/term"
)

const (
	windowTitle = "webshell"
	// loadLatency is how long the simulated engine takes to finish a load.
	loadLatency = 150 * time.Millisecond
	// historyWriteInterval spaces history writes to the database.
	historyWriteInterval = 50 * time.Millisecond
)

// Config describes user-provided application options.
type Config struct {
	Backend        string
	StartURL       string
	SearchTemplate string
	Resources      string
	HistoryPath    string
	Width          int
	Height         int
}

// Backends lists the platform backends compiled into this binary.
func Backends() []string {
	return platform.Names()
}

// Run opens the window, starts the engine and blocks in the backend's event
// loop until the last window closes.
func Run(cfg Config) error {
	factory, err := platform.Lookup(cfg.Backend)
	if err != nil {
		return err
	}
	papp, err := factory(platform.Options{Width: cfg.Width, Height: cfg.Height, Title: windowTitle})
	if err != nil {
		return fmt.Errorf("start %s backend: %w", cfg.Backend, err)
	}
	win, err := papp.NewWindow()
	if err != nil {
		return fmt.Errorf("open window: %w", err)
	}
	view, err := win.NewView()
	if err != nil {
		return fmt.Errorf("open view: %w", err)
	}

	resources := cfg.Resources
	if resources == "" {
		if resources, err = papp.ResourcesPath(); err != nil {
			return fmt.Errorf("locate resources: %w", err)
		}
	}
	adapter, err := engine.New(headless.Factory(loadLatency), resources, view, win.Waker())
	if err != nil {
		return err
	}
	defer adapter.Shutdown()
	logging.Infof("engine %s, backend %s, resources %s", adapter.Version(), cfg.Backend, resources)

	recorder := openHistory(cfg.HistoryPath)
	defer func() {
		if err := recorder.Close(); err != nil {
			logging.Error(err)
		}
	}()

	sh := shell.New(shell.Options{
		App:            papp,
		Window:         win,
		View:           view,
		Engine:         adapter,
		History:        recorder,
		Logs:           logging.Captured(),
		SearchTemplate: cfg.SearchTemplate,
		Keymap:         platform.DefaultKeymap(),
	})
	if err := sh.Bootstrap(cfg.StartURL); err != nil {
		return err
	}
	tick := func() { sh.HandleEvents() }
	view.SetLiveResizeCallback(tick)
	return papp.Run(tick)
}

// openHistory opens the visit database at path. An empty path, or a database
// that cannot be opened, keeps history in memory for this run.
func openHistory(path string) *history.Recorder {
	if path == "" {
		return history.NewRecorder(nil, 0)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		logging.Error(fmt.Errorf("history directory: %w", err))
		return history.NewRecorder(nil, 0)
	}
	store, err := history.Open(path)
	if err != nil {
		logging.Error(err)
		logging.Warnf("history disabled for this session")
		return history.NewRecorder(nil, 0)
	}
	return history.NewRecorder(store, historyWriteInterval)
}
