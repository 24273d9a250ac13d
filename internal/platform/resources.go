package platform

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// ResourcesDir is the directory name backends search for engine resources.
const ResourcesDir = "shell_resources"

// ErrResourcesNotFound is returned when no candidate directory exists.
var ErrResourcesNotFound = errors.New("engine resources not found")

// FindResources looks for the resources directory next to the working
// directory, under ./resources, and in the bundle layout beside the binary.
func FindResources() (string, error) {
	var candidates []string
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates,
			filepath.Join(cwd, ResourcesDir),
			filepath.Join(cwd, "resources", ResourcesDir),
		)
	}
	if exe, err := os.Executable(); err == nil {
		candidates = append(candidates, filepath.Join(filepath.Dir(exe), "..", "Resources", ResourcesDir))
	}
	return firstDir(candidates)
}

func firstDir(candidates []string) (string, error) {
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && info.IsDir() {
			return filepath.Clean(c), nil
		}
	}
	return "", fmt.Errorf("%w (searched %d locations)", ErrResourcesNotFound, len(candidates))
}

// OpenURL hands url to the desktop's default browser.
func OpenURL(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open %s: %w", url, err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
