// Copyright 2026 The Postapp Authors
// SPDX-License-Identifier: Apache-2.0

package adminui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/FahadRazzaq1121/postapp/lib/tui"
)

// ToastKind selects a toast's color and icon.
type ToastKind int

const (
	ToastSuccess ToastKind = iota
	ToastError
	ToastWarning
)

// DefaultToastDuration is how long a toast stays up.
const DefaultToastDuration = 3 * time.Second

// Toast is a transient notice shown in the top-right corner.
type Toast struct {
	Kind    ToastKind
	Message string

	id uint64
}

// toastFadeMsg dismisses the toast with the matching id. A newer toast
// survives the fade of the one it replaced.
type toastFadeMsg struct {
	id uint64
}

// showToast replaces the current toast and schedules its fade.
func (model *Model) showToast(kind ToastKind, message string) tea.Cmd {
	model.toastSequence++
	id := model.toastSequence
	model.toast = &Toast{Kind: kind, Message: message, id: id}
	return tea.Tick(model.toastDuration, func(time.Time) tea.Msg {
		return toastFadeMsg{id: id}
	})
}

func (model *Model) fadeToast(message toastFadeMsg) {
	if model.toast != nil && model.toast.id == message.id {
		model.toast = nil
	}
}

func renderToast(toast Toast, theme tui.Theme) string {
	color, icon := theme.Success, "✓"
	switch toast.Kind {
	case ToastError:
		color, icon = theme.Error, "✗"
	case ToastWarning:
		color, icon = theme.Warning, "!"
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Foreground(color).
		Padding(0, 1).
		MaxWidth(60).
		Render(icon + " " + toast.Message)
}
