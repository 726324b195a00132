package ui

import (
	"reflect"
	"time"

	"github.com/atomicstack/integration-selector/internal/backend"
	"github.com/atomicstack/integration-selector/internal/logging/events"
	"github.com/atomicstack/integration-selector/internal/selector"
	"github.com/atomicstack/integration-selector/internal/theme"
	"github.com/atomicstack/integration-selector/internal/ui/command"
	uistate "github.com/atomicstack/integration-selector/internal/ui/state"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type level = uistate.Level

const (
	headerActionSeparator = "  "
	defaultPerPage        = 50
	loadingText           = "Loading Options..."
	noResultsText         = "No Results"
)

type msgHandler func(tea.Msg) tea.Cmd

// Options configures a selector screen.
type Options struct {
	Route    selector.Route
	Multi    bool
	Selected []string
	// Title overrides the header text derived from the route.
	Title         string
	NameDisplay   selector.NameDisplay
	CurrentUserID string
	PerPage       int
	Debounce      time.Duration
	Palette       theme.Palette
	Width         int
	Height        int
	ShowFooter    bool
	// Animate enables the blinking caret and the loading spinner.
	Animate    bool
	OnComplete func(selector.Result)
}

// Model implements the Bubble Tea model for one integration selector screen.
// It is also the navigation host of its controller.
type Model struct {
	ctrl   *selector.Controller
	level  *level
	screen string
	title  string

	nameDisplay   selector.NameDisplay
	currentUserID string
	perPage       int

	palette     theme.Palette
	styles      *theme.Styles
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	animate     bool

	errMsg       string
	headerAction *selector.Action

	debouncer *backend.Debouncer
	bus       *command.Bus

	spinner           spinner.Model
	spinning          bool
	filterCursor      cursor.Model
	filterCursorDirty bool

	handlers map[reflect.Type]msgHandler

	quitting   bool
	completed  bool
	result     selector.Result
	onComplete func(selector.Result)
}

// NewModel builds the screen and its controller.
func NewModel(opts Options) (*Model, error) {
	palette := opts.Palette
	if palette.Name == "" {
		palette = theme.Dark
	}
	perPage := opts.PerPage
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	m := &Model{
		nameDisplay:   opts.NameDisplay,
		currentUserID: opts.CurrentUserID,
		perPage:       perPage,
		palette:       palette,
		styles:        theme.Build(palette),
		showFooter:    opts.ShowFooter,
		animate:       opts.Animate,
		debouncer:     backend.NewDebouncer(opts.Debounce),
		onComplete:    opts.OnComplete,
	}
	ctrl, err := selector.NewController(selector.Config{
		Route:      opts.Route,
		Multi:      opts.Multi,
		Selected:   opts.Selected,
		Host:       m,
		OnComplete: m.complete,
	})
	if err != nil {
		return nil, err
	}
	m.ctrl = ctrl
	m.screen = ctrl.ID()
	m.title = opts.Title
	if m.title == "" {
		m.title = defaultTitle(opts.Route.Source, opts.Multi)
	}
	m.level = uistate.NewLevel(m.screen, m.title, ctrl.Search().Visible())
	m.bus = command.New(m.screen, opts.Route.Fetcher)
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	if opts.Multi && len(opts.Selected) > 0 {
		events.Selection.Hydrate(m.screen, len(opts.Selected), ctrl.Store().Len())
	}

	s := spinner.New()
	s.Spinner = spinner.MiniDot
	s.Style = *m.styles.Loading
	m.spinner = s

	c := cursor.New()
	c.Style = m.styles.Cursor.Copy()
	c.TextStyle = m.styles.Filter.Copy()
	c.SetChar(" ")
	if !m.animate {
		c.SetMode(cursor.CursorStatic)
	}
	m.filterCursor = c
	m.syncViewport()
	m.registerHandlers()
	return m, nil
}

func defaultTitle(source selector.Source, multi bool) string {
	switch source {
	case selector.SourceUsers:
		if multi {
			return "Select Users"
		}
		return "Select User"
	case selector.SourceChannels:
		if multi {
			return "Select Channels"
		}
		return "Select Channel"
	default:
		if multi {
			return "Select Options"
		}
		return "Select Option"
	}
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if req, ok := m.ctrl.Search().LoadBase(); ok {
		cmds = append(cmds, m.fetch(command.SlotBase, req))
	}
	if cmd := m.filterCursor.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return batch(cmds)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if m.quitting {
		return m, nil
	}
	if cmd := m.updateFilterCursorModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(searchFireMsg{}):     m.handleSearchFireMsg,
		reflect.TypeOf(command.Result{}):    m.handleFetchResultMsg,
		reflect.TypeOf(spinner.TickMsg{}):   m.handleSpinnerTickMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.quitting {
		m.teardown()
		return tea.Quit
	}
	if m.filterCursorDirty {
		m.filterCursorDirty = false
		m.filterCursor.Blink = false
		if cmd := m.filterCursor.BlinkCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if cmd := m.startSpinner(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return batch(cmds)
}

func batch(cmds []tea.Cmd) tea.Cmd {
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Pop closes the screen. The program quits once the current update returns.
func (m *Model) Pop() {
	m.quitting = true
}

// SetHeaderAction registers the header button.
func (m *Model) SetHeaderAction(action selector.Action) {
	m.headerAction = &action
	events.UI.HeaderAction(m.screen, action.ID)
}

func (m *Model) complete(res selector.Result) {
	m.completed = true
	m.result = res
	count := 1
	if res.Multi {
		count = len(res.Items)
	}
	events.App.Complete(m.screen, res.Multi, count)
	if m.onComplete != nil {
		m.onComplete(res)
	}
}

func (m *Model) teardown() {
	m.debouncer.Stop()
	m.bus.Stop()
	m.spinning = false
}

// Result returns the completion result. ok is false when the screen was
// cancelled or is still open.
func (m *Model) Result() (res selector.Result, ok bool) {
	return m.result, m.completed
}

// Controller exposes the screen's selection controller.
func (m *Model) Controller() *selector.Controller {
	return m.ctrl
}

// Screen returns the screen instance id.
func (m *Model) Screen() string {
	return m.screen
}
