package page

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mjdusa/etcher/internal/flashd"
	"github.com/mjdusa/etcher/internal/state"
)

const (
	// NoTargetsTitle is the drive title when nothing is selected.
	NoTargetsTitle = "No targets found"

	// UntitledDevice is the drive title of a single drive without a description.
	UntitledDevice = "Untitled Device"
)

// Snapshot is the display-ready projection of the selection and flash stores.
// It is always replaced as a whole.
type Snapshot struct {
	IsFlashing bool
	HasImage   bool
	HasDrive   bool
	ImageName  string
	ImageLogo  string
	ImageSize  *uint64
	DriveTitle string
	DriveLabel string
}

// Project derives a Snapshot from the current store state. It has no side
// effects. HasImage and HasDrive are derived from the same reads as the
// names so a concurrent mutation cannot produce a snapshot that contradicts
// itself.
func Project(sel SelectionSource, fl FlashSource) Snapshot {
	img, hasImage := sel.Image()
	drives := sel.SelectedDrives()

	snap := Snapshot{
		IsFlashing: fl.IsFlashing(),
		HasImage:   hasImage,
		HasDrive:   len(drives) > 0,
		ImageName:  ImageName(img, hasImage),
		DriveTitle: DrivesTitle(drives),
		DriveLabel: DriveListLabel(drives),
	}
	if hasImage {
		snap.ImageLogo = img.Logo
		if img.Size != nil {
			size := *img.Size
			snap.ImageSize = &size
		}
	}
	return snap
}

// DrivesTitle summarises the selected drives for the target step.
func DrivesTitle(drives []flashd.Drive) string {
	switch len(drives) {
	case 0:
		return NoTargetsTitle
	case 1:
		if desc := drives[0].Description; desc != "" {
			return desc
		}
		return UntitledDevice
	default:
		return fmt.Sprintf("%d Targets", len(drives))
	}
}

// DriveListLabel lists the selected drives one per line.
func DriveListLabel(drives []flashd.Drive) string {
	lines := make([]string, 0, len(drives))
	for _, d := range drives {
		if d.DisplayName != "" {
			lines = append(lines, fmt.Sprintf("%s (%s)", d.Description, d.DisplayName))
			continue
		}
		lines = append(lines, d.Description)
	}
	return strings.Join(lines, "\n")
}

// ImageName is the name shown for the selected source.
func ImageName(img state.Image, ok bool) string {
	if !ok {
		return ""
	}
	if img.Drive != nil {
		return img.Drive.Description
	}
	if img.Name != "" {
		return img.Name
	}
	if strings.TrimSpace(img.Path) == "" {
		return ""
	}
	return filepath.Base(img.Path)
}
