package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderSuccess renders the finish screen shown after a successful flash.
func (m Model) renderSuccess() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.SuccessText.Render("Flash Complete!"))
	b.WriteString("\n\n")

	if res, ok := m.flash.LastResult(); ok {
		b.WriteString(styles.Text.Render(fmt.Sprintf("%d successful target(s)", res.Successful)))
		if res.Failed > 0 {
			b.WriteString("\n")
			b.WriteString(styles.DangerText.Render(fmt.Sprintf("%d failed target(s)", res.Failed)))
		}
		b.WriteString("\n\n")
	}

	b.WriteString(styles.Text.Bold(true).Render("Flash another"))
	b.WriteString(" ")
	b.WriteString(styles.FaintText.Render("[n]"))

	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Success)).
		Padding(1, 4).
		Render(b.String())

	return lipgloss.Place(m.width, max(m.height-4, lipgloss.Height(panel)), lipgloss.Center, lipgloss.Center, panel)
}
