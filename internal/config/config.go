package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/atomicstack/webshell/internal/app"
	"github.com/atomicstack/webshell/internal/navigation"
	"github.com/spf13/viper"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	// File is the config file that was read, if any.
	File  string
	Flags map[string]string
	Args  []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	DefaultStartURL = "https://blog.servo.org/"
	DefaultBackend  = "term"
)

const (
	envConfig         = "WEBSHELL_CONFIG"
	envBackend        = "WEBSHELL_BACKEND"
	envStartURL       = "WEBSHELL_START_URL"
	envSearchTemplate = "WEBSHELL_SEARCH_TEMPLATE"
	envResources      = "WEBSHELL_RESOURCES"
	envHistory        = "WEBSHELL_HISTORY"
	envLogFile        = "WEBSHELL_LOG_FILE"
	envTrace          = "WEBSHELL_TRACE"
	envWidth          = "WEBSHELL_WIDTH"
	envHeight         = "WEBSHELL_HEIGHT"
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment. Flags win over
// environment variables, which win over the config file.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("webshell", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	configFile := fs.String("config", "", "path to a TOML config file")
	backend := fs.String("backend", "", "platform backend to use")
	search := fs.String("search", "", "search URL template, %s is replaced by the query")
	resources := fs.String("resources", "", "path to the engine resources directory")
	historyPath := fs.String("history", "", "path to the history database (empty keeps history in memory)")
	logFile := fs.String("log-file", "", "path to the log file")
	trace := fs.Bool("trace", false, "enable verbose JSON trace logging")
	width := fs.Int("width", 0, "initial width (cells for term, pixels otherwise; 0 picks a default)")
	height := fs.Int("height", 0, "initial height (rows for term, pixels otherwise; 0 picks a default)")

	positional, err := parseInterleaved(fs, args)
	if err != nil {
		return Config{}, err
	}
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	path := *configFile
	explicit := set["config"]
	if !explicit {
		if v, ok := env[envConfig]; ok && v != "" {
			path, explicit = v, true
		} else {
			path = defaultConfigPath(env)
		}
	}
	file, read, err := readFile(path, explicit)
	if err != nil {
		return Config{}, err
	}

	r := resolver{set: set, env: env, file: file}
	start := r.str("start_url", "", envStartURL, "", DefaultStartURL)
	if len(positional) > 0 {
		start = positional[0]
	}

	cfg := Config{
		App: app.Config{
			Backend:        r.str("backend", "backend", envBackend, *backend, DefaultBackend),
			StartURL:       start,
			SearchTemplate: r.str("search_template", "search", envSearchTemplate, *search, navigation.DefaultSearchTemplate),
			Resources:      r.str("resources", "resources", envResources, *resources, ""),
			HistoryPath:    r.str("history", "history", envHistory, *historyPath, defaultHistoryPath(env)),
		},
		Logging: Logging{
			FilePath: r.str("log_file", "log-file", envLogFile, *logFile, ""),
			Trace:    r.boolean("trace", "trace", envTrace, *trace),
		},
		Args: append([]string(nil), args...),
	}
	if cfg.App.Width, err = r.integer("width", "width", envWidth, *width); err != nil {
		return Config{}, err
	}
	if cfg.App.Height, err = r.integer("height", "height", envHeight, *height); err != nil {
		return Config{}, err
	}
	if read {
		cfg.File = path
	}
	cfg.Flags = map[string]string{
		"config":    cfg.File,
		"backend":   cfg.App.Backend,
		"start":     cfg.App.StartURL,
		"search":    cfg.App.SearchTemplate,
		"resources": cfg.App.Resources,
		"history":   cfg.App.HistoryPath,
		"logFile":   cfg.Logging.FilePath,
		"trace":     strconv.FormatBool(cfg.Logging.Trace),
		"width":     strconv.Itoa(cfg.App.Width),
		"height":    strconv.Itoa(cfg.App.Height),
	}
	return cfg, nil
}

// readFile loads the TOML file at path. A missing file is only an error when
// the user named it.
func readFile(path string, explicit bool) (*viper.Viper, bool, error) {
	v := viper.New()
	v.SetConfigType("toml")
	if path == "" {
		return v, false, nil
	}
	if _, err := os.Stat(path); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return v, false, nil
		}
		return nil, false, fmt.Errorf("config file: %w", err)
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, false, fmt.Errorf("read config %s: %w", path, err)
	}
	return v, true, nil
}

// resolver picks each value from the first source that sets it.
type resolver struct {
	set  map[string]bool
	env  map[string]string
	file *viper.Viper
}

func (r resolver) str(key, flagName, envKey, flagValue, fallback string) string {
	if flagName != "" && r.set[flagName] {
		return flagValue
	}
	if v, ok := r.env[envKey]; ok {
		return v
	}
	if r.file.IsSet(key) {
		return r.file.GetString(key)
	}
	return fallback
}

func (r resolver) boolean(key, flagName, envKey string, flagValue bool) bool {
	if r.set[flagName] {
		return flagValue
	}
	if v, ok := r.env[envKey]; ok && strings.TrimSpace(v) != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	if r.file.IsSet(key) {
		return r.file.GetBool(key)
	}
	return flagValue
}

func (r resolver) integer(key, flagName, envKey string, flagValue int) (int, error) {
	if r.set[flagName] {
		return flagValue, nil
	}
	if v, ok := r.env[envKey]; ok && strings.TrimSpace(v) != "" {
		parsed, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("%s: %w", envKey, err)
		}
		return parsed, nil
	}
	if r.file.IsSet(key) {
		return r.file.GetInt(key), nil
	}
	return flagValue, nil
}

func defaultConfigPath(env map[string]string) string {
	if dir := configHome(env); dir != "" {
		return filepath.Join(dir, "webshell", "config.toml")
	}
	return ""
}

func defaultHistoryPath(env map[string]string) string {
	if dir := env["XDG_DATA_HOME"]; dir != "" {
		return filepath.Join(dir, "webshell", "history.db")
	}
	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".local", "share", "webshell", "history.db")
	}
	return ""
}

func configHome(env map[string]string) string {
	if dir := env["XDG_CONFIG_HOME"]; dir != "" {
		return dir
	}
	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config")
	}
	return ""
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate rejects configurations the application cannot start with.
func Validate(cfg Config) error {
	if !slices.Contains(app.Backends(), cfg.App.Backend) {
		return fmt.Errorf("unknown backend %q (available: %s)", cfg.App.Backend, strings.Join(app.Backends(), ", "))
	}
	if strings.TrimSpace(cfg.App.StartURL) == "" {
		return errors.New("start URL must not be empty")
	}
	if !strings.Contains(cfg.App.SearchTemplate, "%s") {
		return fmt.Errorf("search template %q has no %%s placeholder", cfg.App.SearchTemplate)
	}
	if cfg.App.Width < 0 {
		return fmt.Errorf("width must be >= 0 (got %d)", cfg.App.Width)
	}
	if cfg.App.Height < 0 {
		return fmt.Errorf("height must be >= 0 (got %d)", cfg.App.Height)
	}
	return nil
}

// parseInterleaved parses flags that appear before or after positional
// arguments and returns the positionals in order. Everything after "--" is
// positional.
func parseInterleaved(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	rest := args
	for len(rest) > 0 {
		if err := fs.Parse(rest); err != nil {
			return nil, err
		}
		left := fs.Args()
		if consumed := len(rest) - len(left); consumed > 0 && rest[consumed-1] == "--" {
			return append(positional, left...), nil
		}
		if len(left) == 0 {
			break
		}
		positional = append(positional, left[0])
		rest = left[1:]
	}
	return positional, nil
}
