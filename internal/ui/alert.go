package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderAlert renders the anonymous usage data notice.
func (m Model) renderAlert() string {
	styles := m.theme.Styles()
	link := styles.AccentText.Underline(true)

	var b strings.Builder
	b.WriteString(styles.Text.Render("Etcher collects a limited amount of anonymous data to help us improve user experience. You can opt out in the "))
	b.WriteString(link.Render("settings"))
	b.WriteString(styles.FaintText.Render(" [,]"))
	b.WriteString(styles.Text.Render("."))
	b.WriteString("\n")
	b.WriteString(styles.Text.Render("For more information about how we use this data, see our "))
	b.WriteString(link.Render("privacy policy"))
	b.WriteString(styles.FaintText.Render(" [p]"))
	b.WriteString(styles.Text.Render("."))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("[d] dismiss"))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Info)).
		Padding(0, 1).
		Width(max(m.width-2, 20)).
		Render(b.String())
}
