package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/mjdusa/etcher/internal/browser"
	"github.com/mjdusa/etcher/internal/config"
	"github.com/mjdusa/etcher/internal/flashd"
	"github.com/mjdusa/etcher/internal/logging"
	"github.com/mjdusa/etcher/internal/page"
	"github.com/mjdusa/etcher/internal/prefs"
	"github.com/mjdusa/etcher/internal/promo"
	"github.com/mjdusa/etcher/internal/settings"
	"github.com/mjdusa/etcher/internal/state"
	"github.com/mjdusa/etcher/internal/ui"
)

// ErrNoTerminal is returned when stdout is not a terminal.
var ErrNoTerminal = errors.New("etcher needs an interactive terminal")

// Options configure the Etcher application.
type Options struct {
	ConfigPath string
	PollEvery  int  // seconds; zero uses the config value
	Debug      bool // forces debug logging
}

// Run boots the Etcher TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return ErrNoTerminal
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.PollEvery > 0 {
		cfg.PollInterval = time.Duration(opts.PollEvery) * time.Second
	}
	if opts.Debug {
		cfg.LogLevel = "debug"
	}

	if err := logging.Setup(logging.Options{File: cfg.LogFile, Level: cfg.LogLevel}); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer logging.Close()
	log := logging.NewLogger("app")

	userPrefs := prefs.Open(cfg.PrefsPath)

	store, err := settings.Open(cfg.SettingsPath)
	if err != nil {
		log.WithError(err).Warn("settings unreadable, using defaults")
		store = settings.New()
	}

	client, err := flashd.NewClient(cfg.DaemonAddr)
	if err != nil {
		return fmt.Errorf("init daemon client: %w", err)
	}

	hub := &state.Hub{}
	selection := state.NewSelection(hub)
	flash := state.NewFlash(hub)

	StartSync(ctx, selection, flash, client, cfg.PollInterval, logging.NewLogger("sync"))

	go func() {
		if err := store.Watch(ctx, hub.Notify); err != nil {
			log.WithError(err).Warn("settings watcher stopped")
		}
	}()

	mainPage := page.New(page.Deps{
		Selection: selection,
		Flash:     flash,
		Settings:  store,
		Hub:       hub,
		Prefs:     userPrefs,
		Opener:    browser.New(logging.NewLogger("browser")),
		Log:       logging.NewLogger("page"),
	})

	log.WithField("daemon", cfg.DaemonAddr).Info("starting ui")
	return ui.Run(ui.Options{
		Context:   ctx,
		Page:      mainPage,
		Selection: selection,
		Flash:     flash,
		Client:    client,
		Settings:  store,
		Themes:    userPrefs,
		Promo:     promo.NewFetcher(),
		Log:       logging.NewLogger("ui"),
		ThemeName: userPrefs.Theme(),
	})
}
