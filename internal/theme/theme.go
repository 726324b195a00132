package theme

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Loading               *lipgloss.Style
	Item                  *lipgloss.Style
	ItemIndicator         *lipgloss.Style
	SelectedItemIndicator *lipgloss.Style
	SelectedItem          *lipgloss.Style
	Check                 *lipgloss.Style
	Secondary             *lipgloss.Style
	Error                 *lipgloss.Style
	Info                  *lipgloss.Style
	Header                *lipgloss.Style
	HeaderAction          *lipgloss.Style
	HeaderActionDisabled  *lipgloss.Style
	Footer                *lipgloss.Style
	Chip                  *lipgloss.Style
	ChipFocused           *lipgloss.Style
	Filter                *lipgloss.Style
	FilterPrompt          *lipgloss.Style
	FilterPlaceholder     *lipgloss.Style
	Cursor                *lipgloss.Style
}

// Palette is the set of colours a Styles value is derived from.
type Palette struct {
	Name        string
	Text        lipgloss.Color
	TextStrong  lipgloss.Color
	Muted       lipgloss.Color
	Faint       lipgloss.Color
	Accent      lipgloss.Color
	AccentAlt   lipgloss.Color
	Highlight   lipgloss.Color
	Error       lipgloss.Color
	CursorText  lipgloss.Color
	ChipText    lipgloss.Color
	ChipFill    lipgloss.Color
	ChipFocused lipgloss.Color
}

var (
	// Dark is the default palette, tuned for dark terminal backgrounds.
	Dark = Palette{
		Name:        "dark",
		Text:        lipgloss.Color("249"),
		TextStrong:  lipgloss.Color("255"),
		Muted:       lipgloss.Color("245"),
		Faint:       lipgloss.Color("241"),
		Accent:      lipgloss.Color("33"),
		AccentAlt:   lipgloss.Color("34"),
		Highlight:   lipgloss.Color("238"),
		Error:       lipgloss.Color("196"),
		CursorText:  lipgloss.Color("0"),
		ChipText:    lipgloss.Color("255"),
		ChipFill:    lipgloss.Color("237"),
		ChipFocused: lipgloss.Color("33"),
	}
	// Light suits light terminal backgrounds.
	Light = Palette{
		Name:        "light",
		Text:        lipgloss.Color("238"),
		TextStrong:  lipgloss.Color("232"),
		Muted:       lipgloss.Color("243"),
		Faint:       lipgloss.Color("247"),
		Accent:      lipgloss.Color("25"),
		AccentAlt:   lipgloss.Color("28"),
		Highlight:   lipgloss.Color("254"),
		Error:       lipgloss.Color("160"),
		CursorText:  lipgloss.Color("255"),
		ChipText:    lipgloss.Color("232"),
		ChipFill:    lipgloss.Color("252"),
		ChipFocused: lipgloss.Color("25"),
	}
)

// Names lists the built-in palettes.
func Names() []string {
	return []string{Dark.Name, Light.Name}
}

// Lookup returns the named palette. An empty name selects Dark.
func Lookup(name string) (Palette, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", Dark.Name:
		return Dark, nil
	case Light.Name:
		return Light, nil
	default:
		return Palette{}, fmt.Errorf("unknown theme %q (want one of %s)", name, strings.Join(Names(), ", "))
	}
}

// Build derives the style set from a palette. It holds no state; callers
// rebuild on every render pass.
func Build(p Palette) *Styles {
	return &Styles{
		Loading: ptr(
			lipgloss.NewStyle().Foreground(p.Accent).Italic(true),
		),
		Item: ptr(
			lipgloss.NewStyle().Foreground(p.Text),
		),
		ItemIndicator: ptr(
			lipgloss.NewStyle().Foreground(p.Highlight),
		),
		SelectedItemIndicator: ptr(
			lipgloss.NewStyle().Foreground(p.Accent).Background(p.Highlight),
		),
		SelectedItem: ptr(
			lipgloss.NewStyle().Foreground(p.TextStrong).Background(p.Highlight).Bold(true),
		),
		Check: ptr(
			lipgloss.NewStyle().Foreground(p.AccentAlt).Bold(true),
		),
		Secondary: ptr(
			lipgloss.NewStyle().Foreground(p.Faint),
		),
		Error: ptr(
			lipgloss.NewStyle().Foreground(p.Error).Bold(true),
		),
		Info: ptr(
			lipgloss.NewStyle().Foreground(p.Text),
		),
		Header: ptr(
			lipgloss.NewStyle().Foreground(p.Muted).Bold(true),
		),
		HeaderAction: ptr(
			lipgloss.NewStyle().Foreground(p.Accent).Bold(true),
		),
		HeaderActionDisabled: ptr(
			lipgloss.NewStyle().Foreground(p.Faint),
		),
		Footer: ptr(
			lipgloss.NewStyle().Foreground(p.Text),
		),
		Chip: ptr(
			lipgloss.NewStyle().Foreground(p.ChipText).Background(p.ChipFill).Padding(0, 1),
		),
		ChipFocused: ptr(
			lipgloss.NewStyle().Foreground(p.CursorText).Background(p.ChipFocused).Padding(0, 1).Bold(true),
		),
		Filter: ptr(
			lipgloss.NewStyle().Foreground(p.Text),
		),
		FilterPrompt: ptr(
			lipgloss.NewStyle().Foreground(p.AccentAlt).Bold(true),
		),
		FilterPlaceholder: ptr(
			lipgloss.NewStyle().Foreground(p.Faint),
		),
		Cursor: ptr(
			lipgloss.NewStyle().Foreground(p.CursorText).Background(p.Accent).Blink(true),
		),
	}
}

// Default builds the dark style set.
func Default() *Styles {
	return Build(Dark)
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
