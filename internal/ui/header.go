package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mjdusa/etcher/internal/page"
)

// renderHeader renders the top bar: logo, daemon status and the settings and
// help links.
func (m Model) renderHeader(layout page.Layout) string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	sep := bg.Spaces(2)

	left := []string{
		bg.Render("etcher", styles.Logo),
		m.daemonIndicator(styles, bg),
	}

	var right []string
	right = append(right, bg.Render("[,]", styles.FaintText)+bg.Space()+bg.Render("settings", styles.MutedText))
	if layout.SupportLink {
		right = append(right, bg.Render("[S]", styles.FaintText)+bg.Space()+bg.Render("help", styles.MutedText))
	}
	right = append(right, bg.Render("[h]", styles.FaintText)+bg.Space()+bg.Render("keys", styles.MutedText))

	leftStr := bg.Join(left, "  ")
	rightStr := bg.Join(right, "  ")
	gap := m.width - lipgloss.Width(leftStr) - lipgloss.Width(rightStr) - 2
	content := leftStr + bg.Spaces(max(gap, 1)) + rightStr
	if gap < 1 {
		content = leftStr + sep + rightStr
	}

	return styles.Header.Width(m.width).Render(content)
}

// daemonIndicator reports the connection to the flashing daemon.
func (m Model) daemonIndicator(styles Styles, bg BgStyle) string {
	err, offline := m.flash.DaemonHealth()
	switch {
	case offline:
		return bg.Render("● daemon offline", styles.DangerText)
	case err != nil:
		return bg.Render("● retrying", styles.WarningText)
	default:
		return bg.Render("● ready", styles.SuccessText)
	}
}

// renderFooter renders the transient notice and the short key help.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	var parts []string
	if m.notice != "" {
		parts = append(parts, styles.WarningText.Render(truncate(m.notice, max(m.width-30, 20))))
	}
	hints := make([]string, 0, 2)
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		hints = append(hints, styles.FaintText.Render(h.Key)+" "+styles.MutedText.Render(h.Desc))
	}
	parts = append(parts, strings.Join(hints, "  "))
	return styles.Footer.Width(m.width).Render(strings.Join(parts, "  "))
}
