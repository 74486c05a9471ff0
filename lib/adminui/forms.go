// Copyright 2026 The Postapp Authors
// SPDX-License-Identifier: Apache-2.0

package adminui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/FahadRazzaq1121/postapp/lib/api"
	"github.com/FahadRazzaq1121/postapp/lib/dashboard"
	"github.com/FahadRazzaq1121/postapp/lib/tui"
	"github.com/FahadRazzaq1121/postapp/lib/validate"
)

// formKind identifies what a form submits.
type formKind int

const (
	formLogin formKind = iota
	formCreateUser
	formEditUser
	formCreatePost
)

// formField is one input of a form. Exactly one of input, area, or
// choice is set.
type formField struct {
	name     string // Validation field name, e.g. "email".
	label    string
	input    *textinput.Model
	area     *textarea.Model
	choice   *tui.Dropdown
	disabled bool
}

func (field formField) value() string {
	switch {
	case field.input != nil:
		return field.input.Value()
	case field.area != nil:
		return field.area.Value()
	case field.choice != nil:
		return field.choice.Value()
	}
	return ""
}

// form is the state of the login screen or an open form modal.
type form struct {
	kind        formKind
	title       string
	submitLabel string
	hint        []string
	fields      []formField
	focus       int
	errors      validate.Errors
	submitting  bool

	// target is the user being edited.
	target api.User
}

const formInputWidth = 40

func newTextField(name, label, placeholder string) formField {
	input := textinput.New()
	input.Placeholder = placeholder
	input.Prompt = ""
	input.Width = formInputWidth
	return formField{name: name, label: label, input: &input}
}

func newPasswordField(name, label string) formField {
	field := newTextField(name, label, "")
	field.input.EchoMode = textinput.EchoPassword
	field.input.EchoCharacter = '•'
	return field
}

func newLoginForm() *form {
	result := &form{
		kind:        formLogin,
		title:       "Login",
		submitLabel: "Login",
		fields: []formField{
			newTextField("email", "Email", "you@example.com"),
			newPasswordField("password", "Password"),
		},
	}
	result.focusField(0)
	return result
}

// newUserForm opens the create form, or the edit form when existing is
// non-nil. The role choices are the ones caller may assign.
func newUserForm(caller api.Role, existing *api.User) *form {
	var options []tui.DropdownOption
	for _, role := range dashboard.AssignableRoles(caller) {
		options = append(options, tui.DropdownOption{Label: string(role), Value: string(role)})
	}
	roleChoice := tui.NewDropdown("Select Role", options)

	result := &form{
		kind:        formCreateUser,
		title:       "Create User",
		submitLabel: "Create User",
		hint: []string{
			"Your password must have:",
			"  • At least 8 characters",
			"  • At least one uppercase letter",
			"  • At least one lowercase letter",
			"  • At least one number",
		},
		fields: []formField{
			newTextField("name", "Name", ""),
			{name: "role", label: "Role", choice: &roleChoice},
			newTextField("email", "Email", ""),
			newPasswordField("password", "Password"),
		},
	}
	if existing != nil {
		result.kind = formEditUser
		result.title = "Update User"
		result.submitLabel = "Update User"
		result.target = *existing
		result.hint = nil
		result.fields[0].input.SetValue(existing.Name)
		roleChoice.Select(string(existing.Role))
		result.fields[2].input.SetValue(existing.Email)
		result.fields[2].disabled = true
		result.fields[3].disabled = true
	}
	result.focusField(0)
	return result
}

func newPostForm() *form {
	content := textarea.New()
	content.Placeholder = "Markdown is supported"
	content.ShowLineNumbers = false
	content.SetWidth(formInputWidth)
	content.SetHeight(5)

	result := &form{
		kind:        formCreatePost,
		title:       "Create Post",
		submitLabel: "Create Post",
		fields: []formField{
			newTextField("title", "Title", ""),
			{name: "content", label: "Content", area: &content},
			newTextField("image", "Image", "path to an image file (optional)"),
		},
	}
	result.focusField(0)
	return result
}

// value returns the current value of the named field.
func (f *form) value(name string) string {
	for _, field := range f.fields {
		if field.name == name {
			return field.value()
		}
	}
	return ""
}

// focusField moves focus to index, skipping disabled fields forward.
func (f *form) focusField(index int) tea.Cmd {
	count := len(f.fields)
	for step := 0; step < count; step++ {
		candidate := ((index+step)%count + count) % count
		if !f.fields[candidate].disabled {
			index = candidate
			break
		}
	}
	f.focus = index

	var cmd tea.Cmd
	for position := range f.fields {
		field := &f.fields[position]
		switch {
		case field.input != nil && position == index:
			cmd = field.input.Focus()
		case field.input != nil:
			field.input.Blur()
		case field.area != nil && position == index:
			cmd = field.area.Focus()
		case field.area != nil:
			field.area.Blur()
		}
	}
	return cmd
}

func (f *form) move(delta int) tea.Cmd {
	count := len(f.fields)
	index := f.focus
	for step := 0; step < count; step++ {
		index = ((index+delta)%count + count) % count
		if !f.fields[index].disabled {
			break
		}
	}
	return f.focusField(index)
}

// update routes a key to the form. submit is true when the key asks
// for the form to be submitted.
func (f *form) update(message tea.KeyMsg, keys KeyMap) (cmd tea.Cmd, submit bool) {
	if f.submitting {
		return nil, false
	}
	field := &f.fields[f.focus]

	switch {
	case key.Matches(message, keys.NextField):
		return f.move(1), false
	case key.Matches(message, keys.PreviousField):
		return f.move(-1), false
	case message.String() == "ctrl+s":
		return nil, true
	case message.Type == tea.KeyEnter && field.area == nil:
		return nil, true
	}

	switch {
	case field.choice != nil:
		switch message.Type {
		case tea.KeyUp:
			field.choice.MoveUp()
		case tea.KeyDown:
			field.choice.MoveDown()
		}
	case field.area != nil:
		updated, areaCmd := field.area.Update(message)
		*field.area = updated
		cmd = areaCmd
	case field.input != nil:
		switch message.Type {
		case tea.KeyUp:
			return f.move(-1), false
		case tea.KeyDown:
			return f.move(1), false
		}
		updated, inputCmd := field.input.Update(message)
		*field.input = updated
		cmd = inputCmd
	}
	return cmd, false
}

// userForm collects the user form values for validation.
func (f *form) userForm() validate.UserForm {
	return validate.UserForm{
		Name:     strings.TrimSpace(f.value("name")),
		Email:    strings.TrimSpace(f.value("email")),
		Password: f.value("password"),
		Role:     f.value("role"),
	}
}

func (f *form) postForm() validate.PostForm {
	return validate.PostForm{
		Title:     strings.TrimSpace(f.value("title")),
		Content:   f.value("content"),
		ImagePath: strings.TrimSpace(f.value("image")),
	}
}

// view renders the form body. Field errors show under their input.
func (f *form) view(theme tui.Theme) string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.HeaderForeground)
	labelStyle := lipgloss.NewStyle().Foreground(theme.FaintText)
	focusedLabel := lipgloss.NewStyle().Foreground(theme.Accent)
	disabledStyle := lipgloss.NewStyle().Foreground(theme.BorderColor)
	errorStyle := lipgloss.NewStyle().Foreground(theme.Error)

	lines := []string{titleStyle.Render(f.title), ""}
	for index, field := range f.fields {
		label := labelStyle
		if index == f.focus {
			label = focusedLabel
		}
		lines = append(lines, label.Render(field.label))

		switch {
		case field.disabled:
			shown := field.value()
			if field.input != nil && field.input.EchoMode == textinput.EchoPassword {
				shown = "••••••••"
			}
			lines = append(lines, disabledStyle.Render(shown))
		case field.choice != nil:
			lines = append(lines, field.choice.Render(theme, index == f.focus, index == f.focus)...)
		case field.area != nil:
			lines = append(lines, field.area.View())
		case field.input != nil:
			lines = append(lines, field.input.View())
		}

		if message := f.errors.For(field.name); message != "" {
			lines = append(lines, errorStyle.Render(message))
		}
		lines = append(lines, "")
	}

	for _, hint := range f.hint {
		lines = append(lines, labelStyle.Render(hint))
	}
	if len(f.hint) > 0 {
		lines = append(lines, "")
	}

	button := lipgloss.NewStyle().
		Foreground(theme.SelectedForeground).
		Background(theme.SelectedBackground).
		Padding(0, 1)
	if f.submitting {
		lines = append(lines, labelStyle.Render("Submitting..."))
	} else {
		lines = append(lines, button.Render(f.submitLabel)+labelStyle.Render("  enter submit · esc cancel"))
	}
	return strings.Join(lines, "\n")
}
