package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Settings   key.Binding
	Support    key.Binding
	Homepage   key.Binding
	Tab        key.Binding
	ShiftTab   key.Binding
	Escape     key.Binding

	// Steps
	Up           key.Binding
	Down         key.Binding
	Confirm      key.Binding
	Toggle       key.Binding
	OpenImage    key.Binding
	CloneDrive   key.Binding
	ClearImage   key.Binding
	Flash        key.Binding
	Cancel       key.Binding
	FlashAnother key.Binding

	// Analytics alert
	DismissAlert key.Binding
	Privacy      key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		// Global
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Settings: key.NewBinding(
			key.WithKeys(","),
			key.WithHelp(",", "Settings"),
		),
		Support: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "Open support page"),
		),
		Homepage: key.NewBinding(
			key.WithKeys("W"),
			key.WithHelp("W", "Open homepage"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next step"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Previous step"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Close"),
		),

		// Steps
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "space"),
			key.WithHelp("Space", "Toggle target"),
		),
		OpenImage: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "Flash from file"),
		),
		CloneDrive: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Clone highlighted drive"),
		),
		ClearImage: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Remove source"),
		),
		Flash: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Flash!"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "Cancel flashing"),
		),
		FlashAnother: key.NewBinding(
			key.WithKeys("n", "enter"),
			key.WithHelp("n", "Flash another"),
		),

		// Analytics alert
		DismissAlert: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Dismiss notice"),
		),
		Privacy: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "Privacy policy"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.ShiftTab, k.Up, k.Down},
		{k.OpenImage, k.CloneDrive, k.ClearImage, k.Toggle},
		{k.Flash, k.Cancel, k.FlashAnother},
		{k.DismissAlert, k.Privacy},
		{k.Settings, k.Support, k.Homepage, k.CycleTheme, k.Help, k.Quit},
	}
}
