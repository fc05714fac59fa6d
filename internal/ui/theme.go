package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/mjdusa/etcher/internal/state"
)

// DefaultThemeName is used when no theme has been saved.
const DefaultThemeName = "Etcher"

// Theme is a named palette. Colors are hex strings.
type Theme struct {
	Name string

	Background string
	Surface    string
	Border     string
	Focus      string

	SelectionBg   string
	SelectionText string

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string

	// Progress bar color per flash phase.
	FlashColors map[state.FlashType]string
}

// Styles holds the lipgloss styles derived from a theme.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style

	Header     lipgloss.Style
	Footer     lipgloss.Style
	Logo       lipgloss.Style
	Selected   lipgloss.Style
	Disabled   lipgloss.Style
	Panel      lipgloss.Style
	FocusPanel lipgloss.Style

	theme Theme
}

func fg(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

func panel(border string) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border)).
		Padding(0, 1)
}

// Styles builds the styles for t.
func (t Theme) Styles() Styles {
	bar := lipgloss.NewStyle().
		Background(lipgloss.Color(t.Surface)).
		Padding(0, 1)

	return Styles{
		Text:        fg(t.Text),
		MutedText:   fg(t.Muted),
		FaintText:   fg(t.Faint),
		AccentText:  fg(t.Accent),
		SuccessText: fg(t.Success).Bold(true),
		WarningText: fg(t.Warning),
		DangerText:  fg(t.Danger).Bold(true),

		Header: bar.Foreground(lipgloss.Color(t.Text)),
		Footer: bar.Foreground(lipgloss.Color(t.Muted)),
		Logo:   fg(t.Accent).Bold(true),
		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)),
		Disabled:   fg(t.Faint).Faint(true),
		Panel:      panel(t.Border),
		FocusPanel: panel(t.Focus),

		theme: t,
	}
}

// WithBackground returns a copy whose text styles paint bgColor explicitly,
// so nothing shows through as the terminal default inside a bar.
func (s Styles) WithBackground(bgColor string) Styles {
	bg := lipgloss.Color(bgColor)
	out := s
	for _, st := range []*lipgloss.Style{
		&out.Text, &out.MutedText, &out.FaintText, &out.AccentText,
		&out.SuccessText, &out.WarningText, &out.DangerText,
		&out.Header, &out.Footer, &out.Logo, &out.Selected, &out.Disabled,
	} {
		*st = st.Background(bg)
	}
	return out
}

// PhaseStyle returns the badge style for a flash phase.
func (s Styles) PhaseStyle(phase state.FlashType) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.theme.Background)).
		Background(lipgloss.Color(s.theme.PhaseColor(phase))).
		Padding(0, 1)
}

// PhaseColor returns the progress bar color for a flash phase.
func (t Theme) PhaseColor(phase state.FlashType) string {
	if c := t.FlashColors[phase]; c != "" {
		return c
	}
	return t.Accent
}

var themeOrder = []string{"Etcher", "Nightfox", "Kanagawa"}

var themes = map[string]Theme{
	"Etcher":   etcherTheme(),
	"Nightfox": nightfoxTheme(),
	"Kanagawa": kanagawaTheme(),
}

// GetTheme returns a theme by name, or the default theme.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes[DefaultThemeName]
}

// NextTheme returns the theme after current in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns the theme names in cycle order.
func ThemeNames() []string {
	return themeOrder
}

// flashColors maps the phases in order: starting, decompressing, flashing,
// verifying, finished.
func flashColors(starting, decompressing, flashing, verifying, finished string) map[state.FlashType]string {
	return map[state.FlashType]string{
		state.FlashStarting:      starting,
		state.FlashDecompressing: decompressing,
		state.FlashFlashing:      flashing,
		state.FlashVerifying:     verifying,
		state.FlashFinished:      finished,
	}
}

// etcherTheme follows the desktop app: dark slate with the blue flash bar
// turning green while validating.
func etcherTheme() Theme {
	return Theme{
		Name:          "Etcher",
		Background:    "#1f2022",
		Surface:       "#2f3033",
		Border:        "#4d5057",
		Focus:         "#2297de",
		SelectionBg:   "#1a5a8c",
		SelectionText: "#ffffff",
		Text:          "#e8e8e8",
		Muted:         "#a6a8ad",
		Faint:         "#74777e",
		Accent:        "#2297de",
		Success:       "#1ac135",
		Warning:       "#ffb400",
		Danger:        "#ff423d",
		Info:          "#6bb2ec",
		FlashColors:   flashColors("#74777e", "#6bb2ec", "#2297de", "#1ac135", "#1ac135"),
	}
}

// https://github.com/EdenEast/nightfox.nvim
func nightfoxTheme() Theme {
	return Theme{
		Name:          "Nightfox",
		Background:    "#131a24",
		Surface:       "#192330",
		Border:        "#39506d",
		Focus:         "#719cd6",
		SelectionBg:   "#2b3b51",
		SelectionText: "#cdcecf",
		Text:          "#cdcecf",
		Muted:         "#738091",
		Faint:         "#71839b",
		Accent:        "#719cd6",
		Success:       "#81b29a",
		Warning:       "#dbc074",
		Danger:        "#c94f6d",
		Info:          "#63cdcf",
		FlashColors:   flashColors("#738091", "#63cdcf", "#719cd6", "#9d79d6", "#81b29a"),
	}
}

// https://github.com/rebelot/kanagawa.nvim
func kanagawaTheme() Theme {
	return Theme{
		Name:          "Kanagawa",
		Background:    "#16161D",
		Surface:       "#1F1F28",
		Border:        "#54546D",
		Focus:         "#7E9CD8",
		SelectionBg:   "#2D4F67",
		SelectionText: "#DCD7BA",
		Text:          "#DCD7BA",
		Muted:         "#C8C093",
		Faint:         "#727169",
		Accent:        "#7E9CD8",
		Success:       "#98BB6C",
		Warning:       "#E6C384",
		Danger:        "#E46876",
		Info:          "#7FB4CA",
		FlashColors:   flashColors("#727169", "#7FB4CA", "#7E9CD8", "#957FB8", "#98BB6C"),
	}
}
