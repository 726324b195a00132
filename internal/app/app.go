package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/integration-selector/internal/directory"
	"github.com/atomicstack/integration-selector/internal/provider"
	"github.com/atomicstack/integration-selector/internal/selector"
	"github.com/atomicstack/integration-selector/internal/theme"
	"github.com/atomicstack/integration-selector/internal/ui"
)

// ErrCancelled is returned by Run when the screen closed without a result.
var ErrCancelled = errors.New("selection cancelled")

const (
	providerInterval = 50 * time.Millisecond
	httpTimeout      = 10 * time.Second
)

// Config describes user-provided application options.
type Config struct {
	Source   string
	Multi    bool
	Selected []string
	Options  []selector.DialogOption

	Fixture       string
	DBPath        string
	TeamID        string
	CurrentUserID string
	NameDisplay   string

	DynamicCmd  string
	DynamicURL  string
	DynamicPath string

	Debounce time.Duration
	PerPage  int

	Title      string
	Theme      string
	Width      int
	Height     int
	ShowFooter bool
}

// Session is one assembled selector screen together with the resources
// backing its data source.
type Session struct {
	route selector.Route
	model *ui.Model
	dir   *directory.Directory
}

// Open resolves the configured source and builds its screen.
func Open(ctx context.Context, cfg Config) (*Session, error) {
	source, err := selector.ParseSource(cfg.Source)
	if err != nil {
		return nil, err
	}
	palette, err := theme.Lookup(cfg.Theme)
	if err != nil {
		return nil, err
	}

	var fixture provider.Fixture
	if cfg.Fixture != "" {
		if fixture, err = provider.LoadFixture(cfg.Fixture); err != nil {
			return nil, err
		}
	}

	s := &Session{}
	providers := selector.Providers{Options: cfg.Options}
	if len(providers.Options) == 0 {
		providers.Options = fixture.Options
	}

	switch source {
	case selector.SourceUsers, selector.SourceChannels:
		dir, err := openDirectory(ctx, cfg.DBPath, fixture)
		if err != nil {
			return nil, err
		}
		s.dir = dir
		providers.Users = dir.Users()
		providers.Channels = dir.Channels(cfg.TeamID)
	case selector.SourceDynamic:
		dynamic, err := dynamicFetcher(cfg, fixture)
		if err != nil {
			return nil, err
		}
		if dynamic != nil {
			providers.Dynamic = provider.NewDedupe(dynamic, provider.DefaultDedupeTimeout)
		}
	}

	route, err := selector.NewRoute(source, providers)
	if err != nil {
		s.Close()
		return nil, err
	}
	model, err := ui.NewModel(ui.Options{
		Route:         route,
		Multi:         cfg.Multi,
		Selected:      cfg.Selected,
		Title:         cfg.Title,
		NameDisplay:   selector.NameDisplay(cfg.NameDisplay),
		CurrentUserID: cfg.CurrentUserID,
		PerPage:       cfg.PerPage,
		Debounce:      cfg.Debounce,
		Palette:       palette,
		Width:         cfg.Width,
		Height:        cfg.Height,
		ShowFooter:    cfg.ShowFooter,
		Animate:       true,
	})
	if err != nil {
		s.Close()
		return nil, err
	}
	s.route = route
	s.model = model
	return s, nil
}

func openDirectory(ctx context.Context, path string, fixture provider.Fixture) (*directory.Directory, error) {
	var (
		dir *directory.Directory
		err error
	)
	if path != "" {
		dir, err = directory.Open(path)
	} else {
		dir, err = directory.OpenMemory()
	}
	if err != nil {
		return nil, err
	}
	if len(fixture.Users) > 0 || len(fixture.Channels) > 0 {
		if err := dir.Seed(ctx, fixture.Users, fixture.Channels); err != nil {
			dir.Close()
			return nil, err
		}
	}
	return dir, nil
}

// dynamicFetcher picks the command, the endpoint or the fixture list, in that
// order. A nil fetcher means nothing was configured.
func dynamicFetcher(cfg Config, fixture provider.Fixture) (selector.Fetcher, error) {
	switch {
	case cfg.DynamicCmd != "":
		return provider.NewCommand(cfg.DynamicCmd, cfg.DynamicPath, providerInterval)
	case cfg.DynamicURL != "":
		return provider.NewHTTP(cfg.DynamicURL, cfg.DynamicPath, httpTimeout, providerInterval)
	case cfg.Fixture != "":
		return provider.NewStatic(fixture.Dynamic), nil
	}
	return nil, nil
}

// Model returns the Bubble Tea model of the screen.
func (s *Session) Model() *ui.Model {
	return s.model
}

// Route returns the resolved data source.
func (s *Session) Route() selector.Route {
	return s.route
}

// Result reports the completion value, if the screen completed.
func (s *Session) Result() (selector.Result, bool) {
	return s.model.Result()
}

// Close releases the directory, if one was opened.
func (s *Session) Close() error {
	if s.dir == nil {
		return nil
	}
	err := s.dir.Close()
	s.dir = nil
	return err
}

// Run bootstraps and executes the Bubble Tea program, then prints the result
// as JSON on stdout. The screen itself is drawn on stderr.
func Run(cfg Config) error {
	s, err := Open(context.Background(), cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	program := tea.NewProgram(s.Model(), tea.WithAltScreen(), tea.WithOutput(os.Stderr))
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return s.write(os.Stdout)
}

func (s *Session) write(w io.Writer) error {
	res, ok := s.Result()
	if !ok {
		return ErrCancelled
	}
	return WriteResult(w, s.route, res)
}

// ExitCode maps a Run error to a process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrCancelled):
		return 130
	case errors.Is(err, selector.ErrUnknownSource), errors.Is(err, selector.ErrMissingProvider):
		return 2
	default:
		return 1
	}
}

// Describe formats an error for the terminal.
func Describe(err error) string {
	if errors.Is(err, ErrCancelled) {
		return "Cancelled"
	}
	return fmt.Sprintf("Error: %v", err)
}
