package ui

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/mjdusa/etcher/internal/flashd"
	"github.com/mjdusa/etcher/internal/page"
	"github.com/mjdusa/etcher/internal/promo"
	"github.com/mjdusa/etcher/internal/state"
)

// FlashClient starts and cancels flash sessions on the daemon.
type FlashClient interface {
	StartFlash(ctx context.Context, req flashd.FlashRequest) error
	CancelFlash(ctx context.Context) error
}

// SettingsStore is the part of the settings store the overlay edits.
type SettingsStore interface {
	GetBool(key string) bool
	Toggle(key string) (bool, error)
}

// ThemeStore persists the chosen theme.
type ThemeStore interface {
	SetTheme(name string) error
}

// PromoFetcher downloads promo panel content.
type PromoFetcher interface {
	Fetch(ctx context.Context, url string) (promo.Content, error)
}

// step identifies one column of the workflow row.
type step int

const (
	stepSource step = iota
	stepTarget
	stepFlash
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Page      *page.Page
	Selection *state.Selection
	Flash     *state.Flash
	Client    FlashClient
	Settings  SettingsStore
	Themes    ThemeStore
	Promo     PromoFetcher
	Log       *logrus.Entry
	ThemeName string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Collaborators
	ctx       context.Context
	page      *page.Page
	selection *state.Selection
	flash     *state.Flash
	client    FlashClient
	settings  SettingsStore
	themes    ThemeStore
	fetcher   PromoFetcher
	log       *logrus.Entry
	keys      keyMap

	// Store notifications are coalesced into one pending sync.
	dirty  chan struct{}
	notify func()

	// UI state
	theme  Theme
	width  int
	height int
	ready  bool

	// Steps
	focus        step
	cursor       int
	editingImage bool
	imageInput   textinput.Model

	// Flash step
	progress    progress.Model
	spinner     spinner.Model
	wasFlashing bool
	flashErr    string

	// Last finished session passed to the completion check.
	resultHandled  bool
	handledSession string

	promo promoPanel

	// Overlays
	modal    Modal
	showHelp bool

	notice   string
	noticeAt time.Time
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	log := opts.Log
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = logrus.NewEntry(discard)
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = DefaultThemeName
	}

	dirty := make(chan struct{}, 1)
	notify := func() {
		select {
		case dirty <- struct{}{}:
		default:
		}
	}

	input := textinput.New()
	input.Placeholder = "/path/to/image.img"
	input.Prompt = "> "
	input.CharLimit = 4096

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	theme := GetTheme(themeName)
	return Model{
		ctx:        ctx,
		page:       opts.Page,
		selection:  opts.Selection,
		flash:      opts.Flash,
		client:     opts.Client,
		settings:   opts.Settings,
		themes:     opts.Themes,
		fetcher:    opts.Promo,
		log:        log,
		keys:       DefaultKeyMap(),
		dirty:      dirty,
		notify:     notify,
		theme:      theme,
		imageInput: input,
		progress:   newProgressBar(theme, state.FlashStarting),
		spinner:    spin,
	}
}

// Init implements tea.Model. It mounts the page, so Init must run before the
// first Update. The initial storeChangedMsg performs the first sync and arms
// the notification wait.
func (m Model) Init() tea.Cmd {
	m.page.Mount(m.notify)
	return tea.Batch(
		loadPromoURLCmd(m.ctx, m.page.PromoLoader()),
		m.spinner.Tick,
		func() tea.Msg { return storeChangedMsg{} },
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.progress.Width = max(LayoutStepWidth-4, 10)
		m.promo.resize(m.promoWidth(), m.bodyHeight())
		m.reportPromoVisibility()
		return m, nil

	case storeChangedMsg:
		m.page.Sync()
		cmd := m.afterSync()
		return m, tea.Batch(waitForChangeCmd(m.ctx, m.dirty), cmd)

	case promoURLMsg:
		if m.page.ApplyPromo(page.PromoResult(msg)) {
			return m, m.maybeFetchPromo()
		}
		return m, nil

	case promoContentMsg:
		m.promo.apply(msg)
		if msg.err != nil {
			m.log.WithError(msg.err).Debug("promo content unavailable")
		}
		m.reportPromoVisibility()
		return m, nil

	case flashActionMsg:
		if msg.err != nil {
			m.log.WithError(msg.err).WithField("action", msg.action).Warn("flash request failed")
			return m, m.setNotice(msg.action + " failed: " + msg.err.Error())
		}
		return m, nil

	case clearNoticeMsg:
		if time.Time(msg).Equal(m.noticeAt) {
			m.notice = ""
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.editingImage {
		var cmd tea.Cmd
		m.imageInput, cmd = m.imageInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// afterSync runs the flash step's completion check and keeps the promo panel
// in step with the new snapshot.
func (m *Model) afterSync() tea.Cmd {
	snap := m.page.Snapshot()
	if snap.IsFlashing && !m.wasFlashing {
		m.flashErr = ""
	}
	m.checkCompletion()
	m.wasFlashing = snap.IsFlashing
	m.clampCursor()

	cmd := m.maybeFetchPromo()
	m.reportPromoVisibility()
	return cmd
}

// checkCompletion reports each finished session once. Several store updates
// can collapse into one sync, so the running state of a short session may
// never be seen; the session id is what makes a result new.
func (m *Model) checkCompletion() {
	session, res, ok := m.flash.Finished()
	if !ok {
		m.resultHandled = false
		return
	}
	if m.resultHandled && session == m.handledSession {
		return
	}
	if m.page.Phase() != page.PhaseMain {
		return
	}
	m.resultHandled = true
	m.handledSession = session
	if res.Succeeded() {
		m.page.GoToSuccess()
		return
	}
	m.flashErr = describeFailure(res)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	layout := m.page.Layout()
	if layout.Has(page.RegionSettings) && m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}

	var b strings.Builder
	b.WriteString(m.renderHeader(layout))
	b.WriteString("\n\n")

	if layout.Has(page.RegionSuccess) {
		b.WriteString(m.renderSuccess())
	} else {
		b.WriteString(m.renderWorkflow(layout))
		if layout.Has(page.RegionAlert) {
			b.WriteString("\n\n")
			b.WriteString(m.renderAlert())
		}
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// Run starts the Bubble Tea program and unmounts the page when it exits.
func Run(opts Options) error {
	m := New(opts)
	defer opts.Page.Unmount()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if err != nil && m.ctx.Err() != nil {
		return nil
	}
	return err
}

// Messages

type storeChangedMsg struct{}

type promoURLMsg page.PromoResult

type promoContentMsg struct {
	content promo.Content
	err     error
}

type flashActionMsg struct {
	action string
	err    error
}

type clearNoticeMsg time.Time

// Commands

func waitForChangeCmd(ctx context.Context, dirty <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-dirty:
			return storeChangedMsg{}
		case <-ctx.Done():
			return nil
		}
	}
}

func loadPromoURLCmd(ctx context.Context, load func(context.Context) page.PromoResult) tea.Cmd {
	return func() tea.Msg {
		return promoURLMsg(load(ctx))
	}
}

func fetchPromoCmd(ctx context.Context, fetcher PromoFetcher, url string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, PromoFetchTimeout)
		defer cancel()
		content, err := fetcher.Fetch(ctx, url)
		return promoContentMsg{content: content, err: err}
	}
}

func startFlashCmd(ctx context.Context, client FlashClient, req flashd.FlashRequest) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, ActionTimeout)
		defer cancel()
		return flashActionMsg{action: "flash", err: client.StartFlash(ctx, req)}
	}
}

func cancelFlashCmd(ctx context.Context, client FlashClient) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, ActionTimeout)
		defer cancel()
		return flashActionMsg{action: "cancel", err: client.CancelFlash(ctx)}
	}
}

// setNotice shows a transient message in the footer.
func (m *Model) setNotice(text string) tea.Cmd {
	m.notice = text
	m.noticeAt = time.Now()
	at := m.noticeAt
	return tea.Tick(NoticeTTL, func(time.Time) tea.Msg {
		return clearNoticeMsg(at)
	})
}
