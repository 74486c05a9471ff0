// Copyright 2026 The Postapp Authors
// SPDX-License-Identifier: Apache-2.0

package adminui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the dashboard. Forms and modals
// capture raw keys while open; only Cancel and Submit apply there.
type KeyMap struct {
	Up   key.Binding
	Down key.Binding

	PreviousPage key.Binding
	NextPage     key.Binding

	NextTab     key.Binding
	PreviousTab key.Binding
	TabPost     key.Binding
	TabUser     key.Binding
	TabProfile  key.Binding

	// History navigation.
	Back    key.Binding
	Forward key.Binding

	Search  key.Binding
	Refresh key.Binding

	Create key.Binding
	Edit   key.Binding
	Delete key.Binding
	Open   key.Binding

	// Detail pane scrolling.
	ScrollUp   key.Binding
	ScrollDown key.Binding

	// Form navigation.
	NextField     key.Binding
	PreviousField key.Binding
	Submit        key.Binding
	Cancel        key.Binding
	Confirm       key.Binding

	Logout key.Binding
	Quit   key.Binding
}

// DefaultKeyMap pairs vim-style letters with the arrow keys.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	PreviousPage: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "prev page"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "next page"),
	),
	NextTab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next tab"),
	),
	PreviousTab: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("S-tab", "prev tab"),
	),
	TabPost: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "posts"),
	),
	TabUser: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "users"),
	),
	TabProfile: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "profile"),
	),
	Back: key.NewBinding(
		key.WithKeys("alt+left", "["),
		key.WithHelp("[", "back"),
	),
	Forward: key.NewBinding(
		key.WithKeys("alt+right", "]"),
		key.WithHelp("]", "forward"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r", "ctrl+r"),
		key.WithHelp("r", "refresh"),
	),
	Create: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d", "delete"),
		key.WithHelp("d", "delete"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open"),
	),
	ScrollUp: key.NewBinding(
		key.WithKeys("ctrl+u", "pgup"),
		key.WithHelp("C-u", "scroll up"),
	),
	ScrollDown: key.NewBinding(
		key.WithKeys("ctrl+d", "pgdown"),
		key.WithHelp("C-d", "scroll down"),
	),
	NextField: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next field"),
	),
	PreviousField: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("S-tab", "prev field"),
	),
	Submit: key.NewBinding(
		key.WithKeys("ctrl+s", "enter"),
		key.WithHelp("enter", "submit"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("y", "enter"),
		key.WithHelp("y", "confirm"),
	),
	Logout: key.NewBinding(
		key.WithKeys("L"),
		key.WithHelp("L", "logout"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
