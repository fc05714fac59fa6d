package page

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/mjdusa/etcher/internal/flashd"
	"github.com/mjdusa/etcher/internal/state"
)

// SelectionSource is the read side of the selection store.
type SelectionSource interface {
	Image() (state.Image, bool)
	SelectedDrives() []flashd.Drive
}

// FlashSource is the part of the flash store the page reads, plus the one
// mutation it is allowed to make.
type FlashSource interface {
	IsFlashing() bool
	FlashState() state.FlashState
	ResetState()
}

// Settings is the read side of the settings store.
type Settings interface {
	Get(ctx context.Context, key string) (any, error)
	GetSync(key string) any
}

// Observer registers a callback for store mutations.
type Observer interface {
	Observe(fn func()) (unsubscribe func())
}

// PreferenceStore persists small string preferences.
type PreferenceStore interface {
	GetItem(key string) (string, bool)
	SetItem(key, value string) error
}

// Opener opens external links. It must not block.
type Opener interface {
	Open(url string)
}

// Deps are the collaborators a Page needs. All fields except Log are required.
type Deps struct {
	Selection SelectionSource
	Flash     FlashSource
	Settings  Settings
	Hub       Observer
	Prefs     PreferenceStore
	Opener    Opener
	Log       *logrus.Entry
}

var (
	_ SelectionSource = (*state.Selection)(nil)
	_ FlashSource     = (*state.Flash)(nil)
	_ Observer        = (*state.Hub)(nil)
)
