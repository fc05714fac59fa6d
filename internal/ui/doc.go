// Package ui provides the terminal user interface for Etcher.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program rendering the page controller from
// internal/page. The page owns all workflow state; this package draws the
// regions the page's layout names and turns key presses into page and store
// calls.
//
// # Package Structure
//
//   - app.go: Model, Init/Update/View, messages and commands, Run
//   - input.go: key handling per overlay and per step
//   - header.go: logo, daemon status, settings and help links, footer
//   - steps.go: source and target steps, reduced flashing info
//   - flash.go: flash step with progress bar and spinner
//   - promo.go: featured project panel and its visibility report
//   - alert.go, success.go, settings_modal.go, help.go: overlays and screens
//   - theme.go, style_helpers.go: lipgloss themes
//
// # Store Updates
//
// Selection and flash stores change on other goroutines (daemon stream,
// poller). Their notifications only mark the model dirty through a one-slot
// channel; a waiting command turns that into a storeChangedMsg and Update
// calls page.Sync on the UI loop. Bursts of notifications collapse into one
// sync, which is safe because every sync re-reads both stores in full.
//
// # Completion
//
// The flash step watches the snapshot's IsFlashing flag. When a session ends
// with a successful result the page moves to the success phase; any other
// result stays on the main view with an error under the flash button.
//
// # Theme Support
//
// Three themes are available (Etcher, Nightfox, Kanagawa). T cycles them and
// the choice is saved to the preferences file.
package ui
