package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"

	"github.com/atomicstack/integration-selector/internal/app"
	"github.com/atomicstack/integration-selector/internal/selector"
	"github.com/atomicstack/integration-selector/internal/theme"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	// File is the TOML defaults file that was loaded, if any.
	File  string
	Flags map[string]string
	Args  []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envPrefix      = "INTEGRATION_SELECTOR_"
	envConfig      = envPrefix + "CONFIG"
	envSource      = envPrefix + "SOURCE"
	envMulti       = envPrefix + "MULTI"
	envSelected    = envPrefix + "SELECTED"
	envFixture     = envPrefix + "FIXTURE"
	envDB          = envPrefix + "DB"
	envTeam        = envPrefix + "TEAM"
	envUser        = envPrefix + "USER"
	envNameDisplay = envPrefix + "NAME_DISPLAY"
	envDynamicCmd  = envPrefix + "DYNAMIC_CMD"
	envDynamicURL  = envPrefix + "DYNAMIC_URL"
	envDynamicPath = envPrefix + "DYNAMIC_PATH"
	envDebounce    = envPrefix + "DEBOUNCE"
	envPerPage     = envPrefix + "PER_PAGE"
	envTitle       = envPrefix + "TITLE"
	envTheme       = envPrefix + "THEME"
	envWidth       = envPrefix + "WIDTH"
	envHeight      = envPrefix + "HEIGHT"
	envShowFooter  = envPrefix + "FOOTER"
	envTrace       = envPrefix + "TRACE"
	envLogFile     = envPrefix + "LOG_FILE"
)

const (
	defaultDebounce = 300 * time.Millisecond
	defaultPerPage  = 50
)

// File mirrors the TOML defaults file. Values set there are overridden by
// the environment, which is overridden by flags.
type File struct {
	Source      string                  `toml:"source"`
	Multi       bool                    `toml:"multi"`
	Selected    []string                `toml:"selected"`
	Options     []selector.DialogOption `toml:"options"`
	Fixture     string                  `toml:"fixture"`
	DB          string                  `toml:"db"`
	Team        string                  `toml:"team"`
	User        string                  `toml:"user"`
	NameDisplay string                  `toml:"name_display"`
	Dynamic     DynamicFile             `toml:"dynamic"`
	Debounce    time.Duration           `toml:"debounce"`
	PerPage     int                     `toml:"per_page"`
	Title       string                  `toml:"title"`
	Theme       string                  `toml:"theme"`
	Width       int                     `toml:"width"`
	Height      int                     `toml:"height"`
	Footer      bool                    `toml:"footer"`
	Trace       bool                    `toml:"trace"`
	LogFile     string                  `toml:"log_file"`
}

// DynamicFile is the [dynamic] table.
type DynamicFile struct {
	Cmd  string `toml:"cmd"`
	URL  string `toml:"url"`
	Path string `toml:"path"`
}

func defaults() File {
	return File{
		Source:      selector.SourceStatic.String(),
		NameDisplay: string(selector.ShowUsername),
		Debounce:    defaultDebounce,
		PerPage:     defaultPerPage,
		Theme:       theme.Dark.Name,
	}
}

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	file := defaults()
	configPath := findConfigPath(args, envOrDefault(env, envConfig, ""))
	if configPath != "" {
		if _, err := toml.DecodeFile(configPath, &file); err != nil {
			return Config{}, fmt.Errorf("config file %s: %w", configPath, err)
		}
	}

	fs := pflag.NewFlagSet("integration-selector", pflag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))
	v := register(fs, env, file, configPath)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if rest := fs.Args(); len(rest) > 0 {
		return Config{}, fmt.Errorf("unexpected arguments: %s", strings.Join(rest, " "))
	}

	staticOptions := file.Options
	if len(v.options) > 0 {
		parsed, err := parseOptions(v.options)
		if err != nil {
			return Config{}, err
		}
		staticOptions = parsed
	}

	cfg := Config{
		App: app.Config{
			Source:        v.source,
			Multi:         v.multi,
			Selected:      append([]string(nil), v.selected...),
			Options:       staticOptions,
			Fixture:       v.fixture,
			DBPath:        v.db,
			TeamID:        v.team,
			CurrentUserID: v.user,
			NameDisplay:   v.nameDisplay,
			DynamicCmd:    v.dynamicCmd,
			DynamicURL:    v.dynamicURL,
			DynamicPath:   v.dynamicPath,
			Debounce:      v.debounce,
			PerPage:       v.perPage,
			Title:         v.title,
			Theme:         v.themeName,
			Width:         v.width,
			Height:        v.height,
			ShowFooter:    v.footer,
		},
		Logging: Logging{
			FilePath: v.logFile,
			Trace:    v.trace,
		},
		File:  configPath,
		Flags: make(map[string]string),
		Args:  append([]string(nil), args...),
	}
	fs.VisitAll(func(f *pflag.Flag) {
		cfg.Flags[f.Name] = f.Value.String()
	})
	return cfg, nil
}

// Usage returns the flag help text.
func Usage() string {
	fs := pflag.NewFlagSet("integration-selector", pflag.ContinueOnError)
	register(fs, nil, defaults(), "")
	return "Usage: integration-selector [flags]\n\n" + fs.FlagUsages()
}

type values struct {
	source      string
	multi       bool
	selected    []string
	options     []string
	fixture     string
	db          string
	team        string
	user        string
	nameDisplay string
	dynamicCmd  string
	dynamicURL  string
	dynamicPath string
	debounce    time.Duration
	perPage     int
	title       string
	themeName   string
	width       int
	height      int
	footer      bool
	trace       bool
	logFile     string
}

// register binds every flag. Defaults come from the environment, falling
// back to the defaults file.
func register(fs *pflag.FlagSet, env map[string]string, file File, configPath string) *values {
	v := &values{}
	fs.SortFlags = false
	fs.String("config", configPath, "TOML file with default settings")
	fs.StringVar(&v.source, "source", envOrDefault(env, envSource, file.Source), "data source: users, channels, dynamic-options or static-options")
	fs.BoolVar(&v.multi, "multi", envOrBool(env, envMulti, file.Multi), "allow selecting several items")
	fs.StringSliceVar(&v.selected, "selected", envOrList(env, envSelected, file.Selected), "previously selected option values (multi-select)")
	fs.StringArrayVar(&v.options, "option", nil, "static option as value=text (repeatable)")
	fs.StringVar(&v.fixture, "fixture", envOrDefault(env, envFixture, file.Fixture), "YAML or JSONC fixture with options, users and channels")
	fs.StringVar(&v.db, "db", envOrDefault(env, envDB, file.DB), "SQLite user/channel directory (in-memory when empty)")
	fs.StringVar(&v.team, "team", envOrDefault(env, envTeam, file.Team), "team id channels are restricted to")
	fs.StringVar(&v.user, "user", envOrDefault(env, envUser, file.User), "current user id, marked (you)")
	fs.StringVar(&v.nameDisplay, "name-display", envOrDefault(env, envNameDisplay, file.NameDisplay), "teammate name display: username, full_name or nickname_full_name")
	fs.StringVar(&v.dynamicCmd, "dynamic-cmd", envOrDefault(env, envDynamicCmd, file.Dynamic.Cmd), "command that prints dynamic options as JSON")
	fs.StringVar(&v.dynamicURL, "dynamic-url", envOrDefault(env, envDynamicURL, file.Dynamic.URL), "HTTP endpoint that returns dynamic options as JSON")
	fs.StringVar(&v.dynamicPath, "dynamic-path", envOrDefault(env, envDynamicPath, file.Dynamic.Path), "gjson path of the options array in dynamic responses")
	fs.DurationVar(&v.debounce, "debounce", envOrDuration(env, envDebounce, file.Debounce), "quiet period before a search runs")
	fs.IntVar(&v.perPage, "per-page", envOrInt(env, envPerPage, file.PerPage), "page size for remote sources")
	fs.StringVar(&v.title, "title", envOrDefault(env, envTitle, file.Title), "header title")
	fs.StringVar(&v.themeName, "theme", envOrDefault(env, envTheme, file.Theme), "colour theme: "+strings.Join(theme.Names(), ", "))
	fs.IntVar(&v.width, "width", envOrInt(env, envWidth, file.Width), "desired viewport width in cells (0 uses terminal width)")
	fs.IntVar(&v.height, "height", envOrInt(env, envHeight, file.Height), "desired viewport height in rows (0 uses terminal height)")
	fs.BoolVar(&v.footer, "footer", envOrBool(env, envShowFooter, file.Footer), "enable footer hint row (disabled by default)")
	fs.BoolVar(&v.trace, "trace", envOrBool(env, envTrace, file.Trace), "enable verbose JSON trace logging")
	fs.StringVar(&v.logFile, "log-file", envOrDefault(env, envLogFile, file.LogFile), "path to the log file")
	return v
}

// findConfigPath looks for --config before the full parse, since the file
// provides the defaults the other flags are registered with.
func findConfigPath(args []string, fallback string) string {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			break
		}
		if v, ok := strings.CutPrefix(arg, "--config="); ok {
			return v
		}
		if arg == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return fallback
}

func parseOptions(values []string) ([]selector.DialogOption, error) {
	opts := make([]selector.DialogOption, 0, len(values))
	for _, raw := range values {
		value, text, found := strings.Cut(raw, "=")
		if value == "" {
			return nil, fmt.Errorf("option %q has no value", raw)
		}
		if !found {
			text = value
		}
		opts = append(opts, selector.DialogOption{Value: value, Text: text})
	}
	return opts, nil
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

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrList(env map[string]string, key string, fallback []string) []string {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if errors.Is(err, pflag.ErrHelp) {
		fmt.Fprint(os.Stderr, Usage())
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures the configuration describes a screen that can be built.
func Validate(cfg Config) error {
	a := cfg.App
	if _, err := selector.ParseSource(a.Source); err != nil {
		return err
	}
	if _, err := theme.Lookup(a.Theme); err != nil {
		return err
	}
	switch selector.NameDisplay(a.NameDisplay) {
	case selector.ShowUsername, selector.ShowFullName, selector.ShowNicknameFullName:
	default:
		return fmt.Errorf("unknown name display %q", a.NameDisplay)
	}
	if a.DynamicCmd != "" && a.DynamicURL != "" {
		return errors.New("dynamic-cmd and dynamic-url are mutually exclusive")
	}
	if a.Width < 0 {
		return fmt.Errorf("width must be >= 0 (got %d)", a.Width)
	}
	if a.Height < 0 {
		return fmt.Errorf("height must be >= 0 (got %d)", a.Height)
	}
	if a.Debounce < 0 {
		return fmt.Errorf("debounce must be >= 0 (got %s)", a.Debounce)
	}
	if a.PerPage <= 0 {
		return fmt.Errorf("per-page must be > 0 (got %d)", a.PerPage)
	}
	return nil
}
