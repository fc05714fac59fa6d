package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/mjdusa/etcher/internal/page"
)

// renderWorkflow lays out the main phase: the step row, or the reduced info
// column in split view, then the flash step and the promo panel.
func (m Model) renderWorkflow(layout page.Layout) string {
	var columns []string

	if layout.Has(page.RegionSteps) {
		columns = append(columns,
			m.renderSourceStep(layout),
			m.renderStepBorder(layout.Gates.DriveStepDisabled),
			m.renderTargetStep(layout),
			m.renderStepBorder(layout.Gates.FlashStepDisabled),
		)
	}
	if layout.Has(page.RegionReducedInfo) {
		columns = append(columns, m.renderReducedInfo(layout.Snapshot))
	}
	if layout.Has(page.RegionFlashStep) {
		columns = append(columns, m.renderFlashStep(layout))
	}
	if layout.Has(page.RegionPromo) {
		if panel := m.renderPromo(); panel != "" {
			columns = append(columns, panel)
		}
	}

	if m.width < LayoutCompactWidth {
		return lipgloss.JoinVertical(lipgloss.Left, columns...)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}

func (m Model) stepPanel(s step, width int) lipgloss.Style {
	styles := m.theme.Styles()
	panel := styles.Panel
	if m.focus == s {
		panel = styles.FocusPanel
	}
	return panel.Width(width)
}

// renderStepBorder draws the connector between two steps, dimmed when the
// next step is disabled.
func (m Model) renderStepBorder(disabled bool) string {
	if m.width < LayoutCompactWidth {
		return ""
	}
	styles := m.theme.Styles()
	style := styles.AccentText
	if disabled {
		style = styles.Disabled
	}
	return lipgloss.NewStyle().PaddingTop(2).Render(style.Render("──"))
}

func (m Model) renderSourceStep(layout page.Layout) string {
	styles := m.theme.Styles()
	snap := layout.Snapshot

	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render("Source"))
	b.WriteString("\n\n")

	switch {
	case m.editingImage:
		b.WriteString(m.imageInput.View())
		b.WriteString("\n")
		b.WriteString(styles.FaintText.Render("enter select · esc cancel"))
	case snap.HasImage:
		if snap.ImageLogo != "" {
			b.WriteString(styles.FaintText.Render(snap.ImageLogo))
			b.WriteString("\n")
		}
		b.WriteString(styles.Text.Bold(true).Render(truncateMiddle(snap.ImageName, LayoutStepWidth-4)))
		b.WriteString("\n")
		if snap.ImageSize != nil {
			b.WriteString(styles.MutedText.Render(humanize.Bytes(*snap.ImageSize)))
			b.WriteString("\n")
		}
		if !snap.IsFlashing {
			b.WriteString(styles.FaintText.Render("[x] remove  [o] change"))
		}
	default:
		b.WriteString(styles.Text.Render("Flash from file"))
		b.WriteString(" ")
		b.WriteString(styles.FaintText.Render("[o]"))
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Render("Clone drive"))
		b.WriteString(" ")
		b.WriteString(styles.FaintText.Render("[c] in targets"))
	}

	return m.stepPanel(stepSource, LayoutStepWidth).Render(b.String())
}

func (m Model) renderTargetStep(layout page.Layout) string {
	styles := m.theme.Styles()
	snap := layout.Snapshot
	disabled := layout.Gates.DriveStepDisabled

	title := styles.AccentText.Bold(true).Render("Target")
	heading := styles.Text.Render(snap.DriveTitle)
	if disabled {
		title = styles.Disabled.Bold(true).Render("Target")
		heading = styles.Disabled.Render(snap.DriveTitle)
	}

	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n\n")
	b.WriteString(heading)
	b.WriteString("\n")

	drives := m.selection.AvailableDrives()
	if len(drives) == 0 {
		b.WriteString(styles.FaintText.Render("Plug in a drive"))
	}
	img, _ := m.selection.Image()
	for i, d := range drives {
		mark := "[ ]"
		if m.selection.IsSelected(d.Device) {
			mark = "[x]"
		}
		if img.Drive != nil && img.Drive.Device == d.Device {
			mark = "[s]"
		}
		label := d.Description
		if label == "" {
			label = d.Device
		}
		line := fmt.Sprintf("%s %s", mark, truncate(label, LayoutStepWidth-14))
		line += " " + humanize.Bytes(d.Size)

		style := styles.Text
		switch {
		case disabled:
			style = styles.Disabled
		case d.IsReadOnly:
			style = styles.FaintText
		case d.IsSystem:
			style = styles.WarningText
		}
		if m.focus == stepTarget && i == m.cursor {
			style = styles.Selected
		}
		b.WriteString("\n")
		b.WriteString(style.Render(line))
	}

	return m.stepPanel(stepTarget, LayoutStepWidth).Render(b.String())
}

// renderReducedInfo is the compact source and target summary shown next to
// the promo panel while flashing.
func (m Model) renderReducedInfo(snap page.Snapshot) string {
	styles := m.theme.Styles()

	var b strings.Builder
	if snap.ImageLogo != "" {
		b.WriteString(styles.FaintText.Render(snap.ImageLogo))
		b.WriteString("\n")
	}
	b.WriteString(styles.Text.Bold(true).Render(truncateMiddle(snap.ImageName, LayoutStepWidth-4)))
	if snap.ImageSize != nil {
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Render(humanize.Bytes(*snap.ImageSize)))
	}
	b.WriteString("\n\n")
	b.WriteString(styles.Text.Bold(true).Render(snap.DriveTitle))
	if snap.DriveLabel != "" {
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Render(snap.DriveLabel))
	}

	return styles.Panel.Width(LayoutStepWidth).Render(b.String())
}
