package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/dustin/go-humanize"

	"github.com/mjdusa/etcher/internal/page"
	"github.com/mjdusa/etcher/internal/state"
)

// flashStepSplitExtra widens the flash step in split view.
const flashStepSplitExtra = 4

func newProgressBar(theme Theme, phase state.FlashType) progress.Model {
	return progress.New(
		progress.WithSolidFill(theme.PhaseColor(phase)),
		progress.WithoutPercentage(),
	)
}

var phaseLabels = map[state.FlashType]string{
	state.FlashStarting:      "Starting...",
	state.FlashDecompressing: "Decompressing...",
	state.FlashFlashing:      "Flashing...",
	state.FlashVerifying:     "Validating...",
	state.FlashFinished:      "Finishing...",
}

func (m Model) renderFlashStep(layout page.Layout) string {
	styles := m.theme.Styles()
	width := LayoutStepWidth
	if layout.SplitView {
		width += flashStepSplitExtra
	}

	title := styles.AccentText.Bold(true).Render("Flash")
	if layout.Gates.FlashStepDisabled && !layout.Snapshot.IsFlashing {
		title = styles.Disabled.Bold(true).Render("Flash")
	}

	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n\n")

	if layout.Snapshot.IsFlashing {
		b.WriteString(m.renderProgress(layout.Flash))
		b.WriteString("\n")
		b.WriteString(styles.FaintText.Render("[C] cancel"))
	} else {
		label := styles.Text.Bold(true).Render("Flash!") + " " + styles.FaintText.Render("[f]")
		if layout.Gates.FlashStepDisabled {
			label = styles.Disabled.Render("Flash!")
		}
		b.WriteString(label)
		if m.flashErr != "" {
			b.WriteString("\n")
			b.WriteString(styles.DangerText.Render(truncate(m.flashErr, width*2)))
		}
	}

	return m.stepPanel(stepFlash, width).Render(b.String())
}

// renderProgress draws the live flash state.
func (m Model) renderProgress(fs state.FlashState) string {
	styles := m.theme.Styles()

	var b strings.Builder
	label, ok := phaseLabels[fs.Type]
	if !ok {
		label = "Flashing..."
	}
	badge := styles.PhaseStyle(fs.Type).Render(label)

	if fs.Percentage == nil {
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(badge)
		return b.String()
	}

	pct := *fs.Percentage
	b.WriteString(badge)
	b.WriteString(" ")
	b.WriteString(styles.Text.Render(fmt.Sprintf("%.0f%%", pct)))
	b.WriteString("\n")
	bar := m.progress
	bar.FullColor = m.theme.PhaseColor(fs.Type)
	b.WriteString(bar.ViewAs(pct / 100))

	if details := formatFlashDetails(fs); details != "" {
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Render(details))
	}
	if fs.Failed > 0 {
		b.WriteString("\n")
		b.WriteString(styles.DangerText.Render(fmt.Sprintf("%d failed", fs.Failed)))
	}
	return b.String()
}

// formatFlashDetails summarises speed and remaining time.
func formatFlashDetails(fs state.FlashState) string {
	var parts []string
	if fs.Speed != nil && *fs.Speed > 0 {
		parts = append(parts, humanize.Bytes(uint64(*fs.Speed))+"/s")
	}
	if fs.ETA != nil && *fs.ETA > 0 {
		parts = append(parts, "ETA "+formatETA(*fs.ETA))
	}
	return strings.Join(parts, " · ")
}

func formatETA(d time.Duration) string {
	d = d.Round(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh%02dm", int(d.Hours()), int(d.Minutes())%60)
}

// describeFailure explains why a finished session did not succeed.
func describeFailure(res state.Result) string {
	switch {
	case res.Cancelled:
		return "Flashing was cancelled"
	case res.Err != "":
		return res.Err
	case res.Failed > 0:
		return fmt.Sprintf("%d target(s) failed", res.Failed)
	default:
		return "Nothing was written"
	}
}
