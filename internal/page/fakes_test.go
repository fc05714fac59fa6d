package page

import (
	"context"
	"errors"
	"sync"

	"github.com/mjdusa/etcher/internal/flashd"
	"github.com/mjdusa/etcher/internal/state"
)

type fakeSelection struct {
	image  *state.Image
	drives []flashd.Drive
}

func (f *fakeSelection) Image() (state.Image, bool) {
	if f.image == nil {
		return state.Image{}, false
	}
	return *f.image, true
}

func (f *fakeSelection) SelectedDrives() []flashd.Drive {
	return append([]flashd.Drive(nil), f.drives...)
}

type fakeFlash struct {
	flashing bool
	state    state.FlashState
	resets   int
	onReset  func()
}

func (f *fakeFlash) IsFlashing() bool             { return f.flashing }
func (f *fakeFlash) FlashState() state.FlashState { return f.state }
func (f *fakeFlash) ResetState() {
	f.resets++
	f.state = state.FlashState{}
	if f.onReset != nil {
		f.onReset()
	}
}

type fakeSettings struct {
	values map[string]any
	err    error
}

func (f *fakeSettings) Get(ctx context.Context, key string) (any, error) {
	if f.err != nil {
		return nil, f.err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.values[key], nil
}

func (f *fakeSettings) GetSync(key string) any {
	return f.values[key]
}

type fakePrefs struct {
	mu       sync.Mutex
	items    map[string]string
	writeErr error
	writes   int
}

func newFakePrefs() *fakePrefs {
	return &fakePrefs{items: map[string]string{}}
}

func (f *fakePrefs) GetItem(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.items[key]
	return v, ok
}

func (f *fakePrefs) SetItem(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	if f.writeErr != nil {
		return f.writeErr
	}
	f.items[key] = value
	return nil
}

type fakeOpener struct {
	urls []string
}

func (f *fakeOpener) Open(url string) {
	f.urls = append(f.urls, url)
}

var errSettings = errors.New("settings unavailable")

type fixture struct {
	sel      *fakeSelection
	flash    *fakeFlash
	settings *fakeSettings
	hub      *state.Hub
	prefs    *fakePrefs
	opener   *fakeOpener
}

func newFixture() *fixture {
	return &fixture{
		sel:      &fakeSelection{},
		flash:    &fakeFlash{},
		settings: &fakeSettings{values: map[string]any{}},
		hub:      &state.Hub{},
		prefs:    newFakePrefs(),
		opener:   &fakeOpener{},
	}
}

func (f *fixture) deps() Deps {
	return Deps{
		Selection: f.sel,
		Flash:     f.flash,
		Settings:  f.settings,
		Hub:       f.hub,
		Prefs:     f.prefs,
		Opener:    f.opener,
	}
}

func (f *fixture) mounted() *Page {
	p := New(f.deps())
	p.Mount(p.Sync)
	return p
}

func ptr[T any](v T) *T { return &v }
