package ui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mjdusa/etcher/internal/config"
	"github.com/mjdusa/etcher/internal/flashd"
	"github.com/mjdusa/etcher/internal/page"
	"github.com/mjdusa/etcher/internal/settings"
	"github.com/mjdusa/etcher/internal/state"
)

// handleKey processes keyboard input. Overlays take precedence over the
// workflow, in the same order they are drawn.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if m.modal != nil {
		next, cmd, closed := m.modal.Update(msg, m.keys)
		if closed {
			m.modal = nil
			m.page.CloseSettings()
			return m, cmd
		}
		m.modal = next
		return m, cmd
	}

	if m.editingImage {
		return m.handleImageInputKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.CycleTheme):
		return m, m.cycleTheme()
	case key.Matches(msg, m.keys.Settings):
		m.openSettings()
		return m, nil
	case key.Matches(msg, m.keys.Support):
		m.page.OpenSupport()
		return m, nil
	case key.Matches(msg, m.keys.Homepage):
		m.page.OpenHomepage()
		return m, nil
	}

	if m.page.Phase() == page.PhaseSuccess {
		if key.Matches(msg, m.keys.FlashAnother) {
			m.page.FlashAnother()
			m.flashErr = ""
			m.focus = stepSource
			m.wasFlashing = m.page.Snapshot().IsFlashing
		}
		return m, nil
	}

	if m.page.View().AnalyticsAlertVisible {
		switch {
		case key.Matches(msg, m.keys.DismissAlert):
			m.page.DismissAlert()
			return m, nil
		case key.Matches(msg, m.keys.Privacy):
			m.page.OpenPrivacyPolicy()
			return m, nil
		}
	}

	switch {
	case key.Matches(msg, m.keys.Tab):
		m.focus = (m.focus + 1) % 3
		return m, nil
	case key.Matches(msg, m.keys.ShiftTab):
		m.focus = (m.focus + 2) % 3
		return m, nil
	case key.Matches(msg, m.keys.Escape):
		m.focus = stepSource
		return m, nil
	}

	switch m.focus {
	case stepSource:
		return m.handleSourceKey(msg)
	case stepTarget:
		return m.handleTargetKey(msg)
	default:
		return m.handleFlashKey(msg)
	}
}

func (m Model) handleSourceKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.page.Snapshot().IsFlashing {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.OpenImage), key.Matches(msg, m.keys.Confirm):
		m.editingImage = true
		m.imageInput.SetValue("")
		return m, m.imageInput.Focus()
	case key.Matches(msg, m.keys.ClearImage):
		m.selection.DeselectImage()
		return m, nil
	}
	return m, nil
}

func (m Model) handleImageInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.editingImage = false
		m.imageInput.Blur()
		return m, nil
	case tea.KeyEnter:
		m.editingImage = false
		m.imageInput.Blur()
		img, err := imageFromFile(m.imageInput.Value())
		if err != nil {
			return m, m.setNotice(err.Error())
		}
		m.selection.SelectImage(img)
		m.page.DismissAlert()
		m.focus = stepTarget
		return m, nil
	}
	var cmd tea.Cmd
	m.imageInput, cmd = m.imageInput.Update(msg)
	return m, cmd
}

func (m Model) handleTargetKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	drives := m.selection.AvailableDrives()
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(drives)-1 {
			m.cursor++
		}
		return m, nil
	}

	if m.page.Snapshot().IsFlashing || len(drives) == 0 {
		return m, nil
	}
	drive := drives[min(m.cursor, len(drives)-1)]

	switch {
	case key.Matches(msg, m.keys.CloneDrive):
		size := drive.Size
		m.selection.SelectImage(state.Image{Path: drive.Device, Size: &size, Drive: &drive})
		m.page.DismissAlert()
		return m, nil
	case key.Matches(msg, m.keys.Toggle), key.Matches(msg, m.keys.Confirm):
		if m.page.Gates().DriveStepDisabled {
			return m, m.setNotice("Select a source first")
		}
		if drive.IsReadOnly && !m.selection.IsSelected(drive.Device) {
			return m, m.setNotice(fmt.Sprintf("%s is read-only", drive.Device))
		}
		if err := m.selection.ToggleDrive(drive.Device); err != nil {
			if errors.Is(err, state.ErrSourceDrive) {
				return m, m.setNotice("That drive is the flash source")
			}
			return m, m.setNotice(err.Error())
		}
		m.page.DismissAlert()
		return m, nil
	}
	return m, nil
}

func (m Model) handleFlashKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Flash), key.Matches(msg, m.keys.Confirm):
		if m.page.Gates().FlashStepDisabled || m.page.Snapshot().IsFlashing {
			return m, nil
		}
		req, ok := m.flashRequest()
		if !ok {
			return m, nil
		}
		m.flashErr = ""
		return m, startFlashCmd(m.ctx, m.client, req)
	case key.Matches(msg, m.keys.Cancel):
		if !m.page.Snapshot().IsFlashing {
			return m, nil
		}
		return m, cancelFlashCmd(m.ctx, m.client)
	}
	return m, nil
}

// flashRequest builds the daemon request from the live selection.
func (m Model) flashRequest() (flashd.FlashRequest, bool) {
	img, ok := m.selection.Image()
	if !ok {
		return flashd.FlashRequest{}, false
	}
	drives := m.selection.SelectedDrives()
	if len(drives) == 0 {
		return flashd.FlashRequest{}, false
	}
	devices := make([]string, 0, len(drives))
	for _, d := range drives {
		devices = append(devices, d.Device)
	}
	return flashd.FlashRequest{
		Image:    img.Path,
		Devices:  devices,
		Validate: m.settings.GetBool(settings.ValidateWriteOnSuccess),
		Unmount:  m.settings.GetBool(settings.UnmountOnSuccess),
	}, true
}

func (m *Model) openSettings() {
	m.page.OpenSettings()
	m.modal = newSettingsModal(m.settings)
}

func (m *Model) cycleTheme() tea.Cmd {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	m.progress = newProgressBar(m.theme, m.flash.FlashState().Type)
	m.progress.Width = max(LayoutStepWidth-4, 10)
	if m.themes == nil {
		return nil
	}
	if err := m.themes.SetTheme(m.theme.Name); err != nil {
		m.log.WithError(err).Warn("save theme failed")
	}
	return nil
}

func (m *Model) clampCursor() {
	n := len(m.selection.AvailableDrives())
	if m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}

// imageFromFile validates a path typed into the source step.
func imageFromFile(raw string) (state.Image, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return state.Image{}, errors.New("no image path given")
	}
	path, err := config.ExpandPath(raw)
	if err != nil {
		return state.Image{}, fmt.Errorf("expand image path: %w", err)
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	info, err := os.Stat(path)
	if err != nil {
		return state.Image{}, fmt.Errorf("open image: %w", err)
	}
	if info.IsDir() {
		return state.Image{}, fmt.Errorf("%s is a directory", path)
	}
	size := uint64(info.Size())
	return state.Image{Path: path, Size: &size}, nil
}
