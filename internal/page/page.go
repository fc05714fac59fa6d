package page

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/mjdusa/etcher/internal/settings"
)

// Phase is the page's top-level mode.
type Phase int

const (
	PhaseMain Phase = iota
	PhaseSuccess
)

func (p Phase) String() string {
	switch p {
	case PhaseSuccess:
		return "success"
	default:
		return "main"
	}
}

// AnalyticsAlertKey is the preference holding the alert visibility.
const AnalyticsAlertKey = "analytics_alert_visible"

// External link targets.
const (
	HomepageURL       = "https://www.balena.io/etcher?ref=etcher_footer"
	PrivacyPolicyURL  = "https://www.balena.io/privacy-policy"
	DefaultSupportURL = "https://github.com/balena-io/etcher/blob/master/docs/SUPPORT.md"
)

// ViewState is the state owned by the page itself.
type ViewState struct {
	Phase                 Phase
	PromoPanelVisible     bool
	SettingsVisible       bool
	PromoURL              string
	AnalyticsAlertVisible bool
}

// Page coordinates the three-step workflow. All methods must be called from
// the UI loop; the only cross-goroutine entry point is the notify callback
// handed to Mount.
type Page struct {
	deps Deps
	log  *logrus.Entry

	view     ViewState
	snapshot Snapshot

	mounted     bool
	generation  uint64
	unsubscribe func()
}

// New builds a page from the persisted alert preference and the current
// store state.
func New(deps Deps) *Page {
	log := deps.Log
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = logrus.NewEntry(discard)
	}
	p := &Page{deps: deps, log: log}
	p.view = ViewState{
		Phase:                 PhaseMain,
		AnalyticsAlertVisible: p.readBool(AnalyticsAlertKey),
	}
	p.snapshot = Project(deps.Selection, deps.Flash)
	return p
}

// Mount subscribes to store notifications. notify runs on whichever goroutine
// mutated a store; it must schedule Sync on the UI loop and return. Mounting
// an already mounted page does nothing.
func (p *Page) Mount(notify func()) {
	if p.mounted {
		return
	}
	p.mounted = true
	p.generation++
	p.unsubscribe = p.deps.Hub.Observe(notify)
	p.snapshot = Project(p.deps.Selection, p.deps.Flash)
}

// Unmount drops the store subscription. Pending promo results are ignored
// afterwards.
func (p *Page) Unmount() {
	if !p.mounted {
		return
	}
	p.mounted = false
	if p.unsubscribe != nil {
		p.unsubscribe()
		p.unsubscribe = nil
	}
}

// Mounted reports whether the page is subscribed.
func (p *Page) Mounted() bool {
	return p.mounted
}

// Sync re-projects the stores and replaces the cached snapshot. It does
// nothing when the page is not mounted.
func (p *Page) Sync() {
	if !p.mounted {
		return
	}
	p.snapshot = Project(p.deps.Selection, p.deps.Flash)
}

// Snapshot returns the cached store projection.
func (p *Page) Snapshot() Snapshot {
	return p.snapshot
}

// View returns the page-owned state.
func (p *Page) View() ViewState {
	return p.view
}

// Gates returns the step gating for the cached snapshot.
func (p *Page) Gates() Gates {
	return Gate(p.snapshot)
}

// Phase returns the current phase.
func (p *Page) Phase() Phase {
	return p.view.Phase
}

// GoToSuccess is the flash step's completion callback.
func (p *Page) GoToSuccess() {
	if p.view.Phase != PhaseMain {
		return
	}
	p.view.Phase = PhaseSuccess
}

// FlashAnother leaves the success view. The flash store is reset before the
// phase changes so the main view never shows the finished session.
func (p *Page) FlashAnother() {
	if p.view.Phase != PhaseSuccess {
		return
	}
	p.deps.Flash.ResetState()
	p.view.Phase = PhaseMain
	p.Sync()
}

// DismissAlert hides the analytics alert and persists the choice. The
// preference is written before the flag changes.
func (p *Page) DismissAlert() {
	if !p.view.AnalyticsAlertVisible {
		return
	}
	if err := p.writeBool(AnalyticsAlertKey, false); err != nil {
		p.log.WithError(err).Warn("persist analytics alert dismissal failed")
	}
	p.view.AnalyticsAlertVisible = false
}

// OpenSettings shows the settings overlay.
func (p *Page) OpenSettings() {
	p.SetSettingsVisible(true)
}

// CloseSettings hides the settings overlay.
func (p *Page) CloseSettings() {
	p.SetSettingsVisible(false)
}

// SetSettingsVisible changes the settings overlay state. Any change hides the
// analytics alert for the rest of the session.
func (p *Page) SetSettingsVisible(visible bool) {
	if p.view.SettingsVisible == visible {
		return
	}
	p.view.SettingsVisible = visible
	p.view.AnalyticsAlertVisible = false
}

// SetPromoPanelVisible is the promo panel's visibility report. It is the only
// writer of PromoPanelVisible.
func (p *Page) SetPromoPanelVisible(visible bool) {
	p.view.PromoPanelVisible = visible
}

// ExternalLinksEnabled reports whether help links may be shown.
func (p *Page) ExternalLinksEnabled() bool {
	disabled, _ := p.deps.Settings.GetSync(settings.DisableExternalLinks).(bool)
	return !disabled
}

// OpenSupport opens the selected image's support page, or the default one.
func (p *Page) OpenSupport() {
	if !p.ExternalLinksEnabled() {
		return
	}
	url := DefaultSupportURL
	if img, ok := p.deps.Selection.Image(); ok && strings.TrimSpace(img.SupportURL) != "" {
		url = img.SupportURL
	}
	p.deps.Opener.Open(url)
}

// OpenHomepage opens the project homepage.
func (p *Page) OpenHomepage() {
	p.deps.Opener.Open(HomepageURL)
}

// OpenPrivacyPolicy opens the privacy policy linked from the analytics alert.
func (p *Page) OpenPrivacyPolicy() {
	p.deps.Opener.Open(PrivacyPolicyURL)
}

// readBool treats anything but an explicit "false" as true.
func (p *Page) readBool(key string) bool {
	value, ok := p.deps.Prefs.GetItem(key)
	if !ok {
		return true
	}
	return value != "false"
}

func (p *Page) writeBool(key string, value bool) error {
	v := "true"
	if !value {
		v = "false"
	}
	return p.deps.Prefs.SetItem(key, v)
}
