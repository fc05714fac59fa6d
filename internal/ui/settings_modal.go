package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mjdusa/etcher/internal/settings"
)

var settingLabels = map[string]string{
	settings.ErrorReporting:         "Anonymously report errors and usage statistics to balena.io",
	settings.UnmountOnSuccess:       "Eject on success",
	settings.ValidateWriteOnSuccess: "Auto-validate writes on success",
	settings.DisableExternalLinks:   "Hide external links",
}

// settingsModal edits the boolean settings. Changes are written immediately.
type settingsModal struct {
	store  SettingsStore
	keys   []string
	cursor int
	err    string
}

func newSettingsModal(store SettingsStore) *settingsModal {
	return &settingsModal{store: store, keys: settings.Toggles}
}

// Update implements Modal.
func (s *settingsModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil, false
	}
	switch {
	case key.Matches(km, keys.Escape), key.Matches(km, keys.Settings), key.Matches(km, keys.Quit):
		return s, nil, true
	case key.Matches(km, keys.Up):
		if s.cursor > 0 {
			s.cursor--
		}
	case key.Matches(km, keys.Down):
		if s.cursor < len(s.keys)-1 {
			s.cursor++
		}
	case key.Matches(km, keys.Toggle), key.Matches(km, keys.Confirm):
		s.err = ""
		if _, err := s.store.Toggle(s.keys[s.cursor]); err != nil {
			s.err = err.Error()
		}
	}
	return s, nil, false
}

// View implements Modal.
func (s *settingsModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Settings"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	for i, k := range s.keys {
		mark := "[ ]"
		if s.store.GetBool(k) {
			mark = "[x]"
		}
		label, ok := settingLabels[k]
		if !ok {
			label = k
		}
		line := mark + " " + label
		if i == s.cursor {
			b.WriteString(styles.Selected.Render(line))
		} else {
			b.WriteString(styles.Text.Render(line))
		}
		b.WriteString("\n")
	}

	if s.err != "" {
		b.WriteString("\n")
		b.WriteString(styles.DangerText.Render(s.err))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("space toggle · esc close"))

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Accent)).
		Padding(1, 2).
		Width(min(72, max(width-4, 30)))

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}
