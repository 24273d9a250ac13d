package main

import (
	"fmt"
	"os"

	"github.com/atomicstack/webshell/internal/app"
	"github.com/atomicstack/webshell/internal/config"
	"github.com/atomicstack/webshell/internal/logging"
	"github.com/atomicstack/webshell/internal/logging/events"
	"github.com/atomicstack/webshell/internal/navigation"
	"github.com/atomicstack/webshell/internal/platform"
	"github.com/atomicstack/webshell/internal/platform/term"
	xterm "golang.org/x/term"
)

func main() {
	runtimeCfg := config.MustLoad()
	if err := config.Validate(runtimeCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(runtimeCfg.Logging.FilePath)
	logging.SetTraceEnabled(runtimeCfg.Logging.Trace)

	events.App.Start(describeStartup(runtimeCfg, terminalSize).payload())

	if err := app.Run(runtimeCfg.App); err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// startup is what the shell is about to do, resolved before the window opens.
type startup struct {
	Backend    string
	Available  []string
	ConfigFile string

	StartInput string
	StartURL   string
	StartError string

	Resources      string
	ResourcesError string

	History string

	// Terminal is only probed for the term backend.
	Terminal *platform.Size
}

// describeStartup resolves the start URL and resources directory the same way
// app.Run will, so a trace shows where a launch went wrong.
func describeStartup(cfg config.Config, probe func() (platform.Size, bool)) startup {
	s := startup{
		Backend:    cfg.App.Backend,
		Available:  app.Backends(),
		ConfigFile: cfg.File,
		StartInput: cfg.App.StartURL,
		History:    cfg.App.HistoryPath,
	}
	if s.History == "" {
		s.History = "memory"
	}
	if u, err := navigation.Resolve(cfg.App.StartURL, cfg.App.SearchTemplate); err != nil {
		s.StartError = err.Error()
	} else {
		s.StartURL = u.String()
	}
	s.Resources = cfg.App.Resources
	if s.Resources == "" {
		if dir, err := platform.FindResources(); err != nil {
			s.ResourcesError = err.Error()
		} else {
			s.Resources = dir
		}
	}
	if cfg.App.Backend == term.Name && probe != nil {
		if size, ok := probe(); ok {
			s.Terminal = &size
		}
	}
	return s
}

func (s startup) payload() map[string]interface{} {
	p := map[string]interface{}{
		"backend":    s.Backend,
		"backends":   s.Available,
		"startInput": s.StartInput,
		"history":    s.History,
	}
	if s.ConfigFile != "" {
		p["configFile"] = s.ConfigFile
	}
	if s.StartError != "" {
		p["startError"] = s.StartError
	} else {
		p["startURL"] = s.StartURL
	}
	if s.ResourcesError != "" {
		p["resourcesError"] = s.ResourcesError
	} else {
		p["resources"] = s.Resources
	}
	if s.Terminal != nil {
		p["terminal"] = map[string]int{"cols": s.Terminal.Width, "rows": s.Terminal.Height}
	}
	return p
}

// terminalSize reports the size of the first standard stream that is a
// terminal.
func terminalSize() (platform.Size, bool) {
	for _, f := range []*os.File{os.Stdout, os.Stdin, os.Stderr} {
		fd := int(f.Fd())
		if !xterm.IsTerminal(fd) {
			continue
		}
		if w, h, err := xterm.GetSize(fd); err == nil {
			return platform.Size{Width: w, Height: h}, true
		}
	}
	return platform.Size{}, false
}
