package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mjdusa/etcher/internal/page"
	"github.com/mjdusa/etcher/internal/promo"
)

// promoPanel is the featured project panel shown while flashing. It decides
// its own visibility: the content may fail to load or the terminal may be too
// narrow.
type promoPanel struct {
	requested bool
	loaded    bool
	content   promo.Content
	viewport  viewport.Model
}

func (p *promoPanel) apply(msg promoContentMsg) {
	if msg.err != nil {
		p.loaded = false
		return
	}
	p.loaded = true
	p.content = msg.content
	p.viewport.SetContent(strings.Join(msg.content.Lines, "\n\n"))
}

func (p *promoPanel) resize(width, height int) {
	p.viewport.Width = max(width-4, 0)
	p.viewport.Height = max(height-4, 0)
}

// maybeFetchPromo requests the promo content the first time the layout wants
// the panel.
func (m *Model) maybeFetchPromo() tea.Cmd {
	if m.promo.requested || m.fetcher == nil {
		return nil
	}
	if !m.page.Layout().Has(page.RegionPromo) {
		return nil
	}
	m.promo.requested = true
	return fetchPromoCmd(m.ctx, m.fetcher, m.page.View().PromoURL)
}

// promoShowing reports whether the panel is actually drawn.
func (m Model) promoShowing() bool {
	return m.promo.loaded &&
		m.width >= LayoutSplitWidth &&
		m.page.Layout().Has(page.RegionPromo)
}

// reportPromoVisibility is the panel's visibility callback into the page.
func (m *Model) reportPromoVisibility() {
	visible := m.promoShowing()
	if visible != m.page.View().PromoPanelVisible {
		m.page.SetPromoPanelVisible(visible)
	}
}

func (m Model) promoWidth() int {
	return max(m.width-2*LayoutStepWidth-flashStepSplitExtra-6, 20)
}

func (m Model) bodyHeight() int {
	return max(m.height-6, 8)
}

func (m Model) renderPromo() string {
	if !m.promoShowing() {
		return ""
	}
	styles := m.theme.Styles()
	var b strings.Builder
	if m.promo.content.Title != "" {
		b.WriteString(styles.AccentText.Bold(true).Render(m.promo.content.Title))
		b.WriteString("\n\n")
	}
	b.WriteString(m.promo.viewport.View())
	return styles.Panel.
		Width(m.promoWidth()).
		Height(m.bodyHeight()).
		Render(lipgloss.NewStyle().MaxWidth(m.promoWidth() - 2).Render(b.String()))
}
