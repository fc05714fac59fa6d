package state

import (
	"errors"
	"slices"
	"sync"

	"github.com/mjdusa/etcher/internal/flashd"
)

var (
	// ErrUnknownDrive is returned when selecting a device that is not in the
	// available drive list.
	ErrUnknownDrive = errors.New("unknown drive")

	// ErrSourceDrive is returned when selecting the drive the image is read from.
	ErrSourceDrive = errors.New("drive is the image source")
)

// Image describes the selected flash source.
type Image struct {
	Name       string
	Path       string
	Size       *uint64
	Logo       string
	Drive      *flashd.Drive // set when the source is a drive being cloned
	SupportURL string
}

func (img Image) clone() Image {
	dup := img
	if img.Size != nil {
		size := *img.Size
		dup.Size = &size
	}
	if img.Drive != nil {
		drive := *img.Drive
		dup.Drive = &drive
	}
	return dup
}

// Selection tracks the chosen image and target drives.
type Selection struct {
	hub *Hub

	mu        sync.RWMutex
	image     *Image
	selected  []string // device paths in selection order
	available []flashd.Drive
}

// NewSelection returns an empty selection that notifies hub on change.
func NewSelection(hub *Hub) *Selection {
	return &Selection{hub: hub}
}

// SelectImage replaces the selected image. A selected target that is the
// image's source drive is dropped.
func (s *Selection) SelectImage(img Image) {
	s.mu.Lock()
	dup := img.clone()
	s.image = &dup
	if img.Drive != nil {
		s.selected = slices.DeleteFunc(s.selected, func(dev string) bool {
			return dev == img.Drive.Device
		})
	}
	s.mu.Unlock()
	s.hub.Notify()
}

// DeselectImage clears the selected image.
func (s *Selection) DeselectImage() {
	s.mu.Lock()
	s.image = nil
	s.mu.Unlock()
	s.hub.Notify()
}

// SelectDrive adds device to the selected targets.
func (s *Selection) SelectDrive(device string) error {
	s.mu.Lock()
	if err := s.checkSelectableLocked(device); err != nil {
		s.mu.Unlock()
		return err
	}
	if !slices.Contains(s.selected, device) {
		s.selected = append(s.selected, device)
	}
	s.mu.Unlock()
	s.hub.Notify()
	return nil
}

// DeselectDrive removes device from the selected targets.
func (s *Selection) DeselectDrive(device string) {
	s.mu.Lock()
	s.selected = slices.DeleteFunc(s.selected, func(dev string) bool { return dev == device })
	s.mu.Unlock()
	s.hub.Notify()
}

// ToggleDrive selects device when unselected and deselects it otherwise.
func (s *Selection) ToggleDrive(device string) error {
	if s.IsSelected(device) {
		s.DeselectDrive(device)
		return nil
	}
	return s.SelectDrive(device)
}

func (s *Selection) checkSelectableLocked(device string) error {
	if !slices.ContainsFunc(s.available, func(d flashd.Drive) bool { return d.Device == device }) {
		return ErrUnknownDrive
	}
	if s.image != nil && s.image.Drive != nil && s.image.Drive.Device == device {
		return ErrSourceDrive
	}
	return nil
}

// SetAvailableDrives replaces the drive catalogue. Selected drives that are no
// longer present are deselected. Observers are only notified on change.
func (s *Selection) SetAvailableDrives(drives []flashd.Drive) {
	s.mu.Lock()
	if slices.Equal(s.available, drives) {
		s.mu.Unlock()
		return
	}
	s.available = slices.Clone(drives)
	s.selected = slices.DeleteFunc(s.selected, func(dev string) bool {
		return !slices.ContainsFunc(s.available, func(d flashd.Drive) bool { return d.Device == dev })
	})
	s.mu.Unlock()
	s.hub.Notify()
}

// HasImage reports whether an image is selected.
func (s *Selection) HasImage() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.image != nil
}

// HasDrive reports whether at least one target drive is selected.
func (s *Selection) HasDrive() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.selected) > 0
}

// Image returns a copy of the selected image.
func (s *Selection) Image() (Image, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.image == nil {
		return Image{}, false
	}
	return s.image.clone(), true
}

// SelectedDrives returns the selected drives in selection order.
func (s *Selection) SelectedDrives() []flashd.Drive {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]flashd.Drive, 0, len(s.selected))
	for _, dev := range s.selected {
		idx := slices.IndexFunc(s.available, func(d flashd.Drive) bool { return d.Device == dev })
		if idx >= 0 {
			out = append(out, s.available[idx])
		}
	}
	return out
}

// IsSelected reports whether device is a selected target.
func (s *Selection) IsSelected(device string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Contains(s.selected, device)
}

// AvailableDrives returns a copy of the drive catalogue.
func (s *Selection) AvailableDrives() []flashd.Drive {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.available)
}
