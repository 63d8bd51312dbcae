package ui

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines a color scheme for UI output. Each field is a
// lipgloss.TerminalColor suitable for Style.Foreground.
type Theme struct {
	// Name is the identifier of the theme.
	Name string
	// Accent highlights labels and headers.
	Accent lipgloss.TerminalColor
	// Value is the color of computed values.
	Value lipgloss.TerminalColor
	// Success marks completed evaluations.
	Success lipgloss.TerminalColor
	// Error marks failures.
	Error lipgloss.TerminalColor
	// Dim is used for secondary details such as precision and timing.
	Dim lipgloss.TerminalColor
	// bold enables bold labels.
	bold bool
}

var (
	// DarkTheme is optimized for dark terminal backgrounds.
	DarkTheme = Theme{
		Name:    "dark",
		Accent:  lipgloss.Color("39"),
		Value:   lipgloss.Color("#E0E0E0"),
		Success: lipgloss.Color("82"),
		Error:   lipgloss.Color("196"),
		Dim:     lipgloss.Color("245"),
		bold:    true,
	}

	// LightTheme is optimized for light terminal backgrounds.
	LightTheme = Theme{
		Name:    "light",
		Accent:  lipgloss.Color("27"),
		Value:   lipgloss.Color("#202020"),
		Success: lipgloss.Color("28"),
		Error:   lipgloss.Color("124"),
		Dim:     lipgloss.Color("240"),
		bold:    true,
	}

	// NoColorTheme disables all styling.
	NoColorTheme = Theme{
		Name:    "none",
		Accent:  lipgloss.NoColor{},
		Value:   lipgloss.NoColor{},
		Success: lipgloss.NoColor{},
		Error:   lipgloss.NoColor{},
		Dim:     lipgloss.NoColor{},
	}

	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// Styles is the set of lipgloss styles derived from a Theme.
type Styles struct {
	Label   lipgloss.Style
	Value   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Dim     lipgloss.Style
}

// Styles derives the lipgloss styles of t.
func (t Theme) Styles() Styles {
	return Styles{
		Label:   lipgloss.NewStyle().Foreground(t.Accent).Bold(t.bold),
		Value:   lipgloss.NewStyle().Foreground(t.Value),
		Success: lipgloss.NewStyle().Foreground(t.Success),
		Error:   lipgloss.NewStyle().Foreground(t.Error).Bold(t.bold),
		Dim:     lipgloss.NewStyle().Foreground(t.Dim),
	}
}

// GetCurrentTheme returns the currently active theme in a thread-safe manner.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme sets the currently active theme in a thread-safe manner.
// Tests use it to restore state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// SetTheme changes the active theme by name. Valid names are "dark",
// "light" and "none"; unknown names select the dark theme.
func SetTheme(name string) {
	switch name {
	case "light":
		SetCurrentTheme(LightTheme)
	case "none":
		SetCurrentTheme(NoColorTheme)
	default:
		SetCurrentTheme(DarkTheme)
	}
}

// InitTheme initializes the theme from the noColor flag and the NO_COLOR
// environment variable (https://no-color.org/).
func InitTheme(noColor bool) {
	if noColor {
		SetCurrentTheme(NoColorTheme)
		return
	}
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		SetCurrentTheme(NoColorTheme)
		return
	}
	SetCurrentTheme(DarkTheme)
}
