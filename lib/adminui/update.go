// Copyright 2026 The Postapp Authors
// SPDX-License-Identifier: Apache-2.0

package adminui

import (
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/FahadRazzaq1121/postapp/lib/api"
	"github.com/FahadRazzaq1121/postapp/lib/dashboard"
	"github.com/FahadRazzaq1121/postapp/lib/secret"
	"github.com/FahadRazzaq1121/postapp/lib/store"
	"github.com/FahadRazzaq1121/postapp/lib/validate"
)

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.detailFor = ""
		model.syncDetail()
		return model, nil

	case tea.KeyMsg:
		return model.handleKey(message)

	case navigationMsg:
		cmd := model.applyLocation()
		if message.signal {
			cmd = tea.Batch(cmd, listenForNavigation(model.navigation))
		}
		return model, cmd

	case listEventMsg:
		model.handleListEvent(message)
		channel := model.postList.Events()
		if message.tab == dashboard.TabUser {
			channel = model.userList.Events()
		}
		return model, listenForListEvent(message.tab, channel)

	case profileResultMsg:
		return model.handleProfileResult(message)

	case loginResultMsg:
		return model.handleLoginResult(message)

	case mutationResultMsg:
		return model.handleMutationResult(message)

	case userDetailMsg:
		if model.modal == modalUserDetail && model.userDetail.id == message.id {
			model.userDetail.loading = false
			model.userDetail.detail = message.detail
			model.userDetail.err = message.err
			if message.err != nil && model.session.HandleError(message.err) {
				model.modal = modalNone
			}
		}
		return model, nil

	case toastFadeMsg:
		model.fadeToast(message)
		return model, nil

	case logRecordMsg:
		model.logSequence++
		sequence := model.logSequence
		model.logLine = message.Summary
		model.logLevel = message.Level
		return model, tea.Tick(logRecordFadeDelay, func(time.Time) tea.Msg {
			return logRecordFadeMsg{sequence: sequence}
		})

	case logRecordFadeMsg:
		if message.sequence == model.logSequence {
			model.logLine = ""
		}
		return model, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		model.spinner, cmd = model.spinner.Update(message)
		return model, cmd
	}

	next := model.forwardToInputs(message)
	return model, next
}

// forwardToInputs hands non-key messages such as cursor blinks to the
// focused text input.
func (model *Model) forwardToInputs(message tea.Msg) tea.Cmd {
	var target *form
	switch {
	case model.screen == screenLogin:
		target = model.login
	case model.modal == modalForm:
		target = model.form
	case model.searching:
		var cmd tea.Cmd
		model.search, cmd = model.search.Update(message)
		return cmd
	}
	if target == nil {
		return nil
	}
	field := &target.fields[target.focus]
	switch {
	case field.input != nil:
		updated, cmd := field.input.Update(message)
		*field.input = updated
		return cmd
	case field.area != nil:
		updated, cmd := field.area.Update(message)
		*field.area = updated
		return cmd
	}
	return nil
}

// applyLocation brings the screen in line with History.Current.
func (model *Model) applyLocation() tea.Cmd {
	location := model.history.Current()
	model.location = location

	if location.IsLogin() {
		model.unmountLists()
		model.modal = modalNone
		model.form = nil
		model.awaitingProfile = false
		model.profileErr = nil
		model.tab = ""
		if model.screen == screenLogin && model.login != nil {
			return nil
		}
		model.screen = screenLogin
		model.login = newLoginForm()
		return model.login.focusField(0)
	}

	model.screen = screenDashboard
	if _, loaded := model.profile.Profile(); !loaded {
		if model.awaitingProfile || model.profileErr != nil {
			return nil
		}
		model.awaitingProfile = true
		return model.fetchProfile()
	}

	tab, ok := dashboard.ResolveTab(location.Tab, model.profile.Role())
	if !ok {
		model.unmountLists()
		model.tab = ""
		return nil
	}
	if tab != location.Tab {
		model.history.Replace(dashboard.DashboardLocation(tab))
	}
	return model.activateTab(tab)
}

// activateTab mounts the list behind tab and unmounts the other one.
func (model *Model) activateTab(tab dashboard.Tab) tea.Cmd {
	if model.tab == tab && model.mounted == listTabOf(tab) {
		return nil
	}
	model.tab = tab
	model.searching = false
	model.search.Blur()
	model.search.SetValue("")
	model.selection[tab] = 0
	model.detailFor = ""

	switch tab {
	case dashboard.TabPost:
		model.userList.Unmount()
		model.postList.Mount(model.ctx)
		model.mounted = dashboard.TabPost
		model.search.Placeholder = "Search by post title"
	case dashboard.TabUser:
		model.postList.Unmount()
		model.userList.Mount(model.ctx)
		model.mounted = dashboard.TabUser
		model.search.Placeholder = "Search by email"
	default:
		model.unmountLists()
		return model.fetchProfile()
	}
	return nil
}

// listTabOf is the list a tab mounts, or "" for tabs without one.
func listTabOf(tab dashboard.Tab) dashboard.Tab {
	if tab == dashboard.TabPost || tab == dashboard.TabUser {
		return tab
	}
	return ""
}

func (model *Model) unmountLists() {
	model.postList.Unmount()
	model.userList.Unmount()
	model.mounted = ""
}

func (model *Model) fetchProfile() tea.Cmd {
	profile, ctx := model.profile, model.ctx
	return func() tea.Msg {
		outcome, err := profile.Fetch(ctx)
		return profileResultMsg{outcome: outcome, err: err}
	}
}

func (model Model) handleProfileResult(message profileResultMsg) (tea.Model, tea.Cmd) {
	model.awaitingProfile = false
	if message.err != nil {
		if model.session.HandleError(message.err) {
			return model, nil
		}
		if message.outcome == store.Failed {
			model.profileErr = message.err
			model.logger.Warn("loading profile failed", "error", message.err)
			next := model.showToast(ToastError, api.MessageOf(message.err, "Failed to load profile"))
			return model, next
		}
		return model, nil
	}
	model.profileErr = nil
	if message.outcome == store.Applied && model.screen == screenDashboard {
		next := model.applyLocation()
		return model, next
	}
	return model, nil
}

func (model *Model) handleListEvent(message listEventMsg) {
	event := message.event
	if event.Outcome == store.Failed && event.Err != nil && !dashboard.IsSessionError(event.Err) {
		model.logger.Warn("list fetch failed", "tab", string(message.tab), "error", event.Err)
	}
	model.clampSelection(message.tab)
	if message.tab == dashboard.TabPost {
		model.detailFor = ""
		model.syncDetail()
	}
}

func (model *Model) clampSelection(tab dashboard.Tab) {
	count := 0
	switch tab {
	case dashboard.TabPost:
		count = len(model.postList.Items())
	case dashboard.TabUser:
		count = len(model.userList.Items())
	}
	model.selection[tab] = max(min(model.selection[tab], count-1), 0)
}

// handleKey routes a key to whatever has focus.
func (model Model) handleKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	if message.Type == tea.KeyCtrlC {
		return model, tea.Quit
	}
	if model.screen == screenLogin {
		cmd, submit := model.login.update(message, model.keys)
		if submit {
			return model.submitLogin()
		}
		return model, cmd
	}

	switch model.modal {
	case modalForm:
		return model.handleFormKeys(message)
	case modalConfirmDelete:
		return model.handleConfirmKeys(message)
	case modalUserDetail:
		if key.Matches(message, model.keys.Cancel) || key.Matches(message, model.keys.Open) {
			model.modal = modalNone
		}
		return model, nil
	}

	if model.searching {
		return model.handleSearchKeys(message)
	}
	return model.handleDashboardKeys(message)
}

func (model Model) submitLogin() (tea.Model, tea.Cmd) {
	login := model.login
	email := strings.TrimSpace(login.value("email"))
	password := login.value("password")
	if cmd, invalid := model.formInvalid(login, validate.Login(validate.LoginForm{Email: email, Password: password})); invalid {
		return model, cmd
	}

	buffer, err := secret.NewFromBytes([]byte(password))
	login.fields[1].input.SetValue("")
	if err != nil {
		next := model.showToast(ToastError, "Could not protect the password: "+err.Error())
		return model, next
	}
	login.submitting = true

	auth, ctx := model.auth, model.ctx
	return model, func() tea.Msg {
		defer buffer.Close()
		result, err := auth.Login(ctx, email, buffer)
		return loginResultMsg{result: result, err: err}
	}
}

// formInvalid records validation errors on target. invalid is true
// when err is non-nil.
func (model *Model) formInvalid(target *form, err error) (tea.Cmd, bool) {
	if err == nil {
		target.errors = nil
		return nil, false
	}
	var fieldErrors validate.Errors
	if errors.As(err, &fieldErrors) {
		target.errors = fieldErrors
		return nil, true
	}
	return model.showToast(ToastError, err.Error()), true
}

func (model Model) handleLoginResult(message loginResultMsg) (tea.Model, tea.Cmd) {
	if model.login != nil {
		model.login.submitting = false
	}
	if message.err != nil {
		next := model.showToast(ToastError, api.MessageOf(message.err, "Login failed"))
		return model, next
	}
	if err := model.tokens.Store(message.result.Token); err != nil {
		model.logger.Error("storing access token", "error", err)
		next := model.showToast(ToastError, "Could not save the session: "+err.Error())
		return model, next
	}
	model.profile.Clear()
	model.profileErr = nil
	model.session.LoginSucceeded()
	notice := message.result.Message
	if notice == "" {
		notice = "Login successful"
	}
	next := model.showToast(ToastSuccess, notice)
	return model, next
}

func (model Model) handleSearchKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch message.Type {
	case tea.KeyEsc, tea.KeyEnter:
		model.searching = false
		model.search.Blur()
		return model, nil
	}
	before := model.search.Value()
	var cmd tea.Cmd
	model.search, cmd = model.search.Update(message)
	if value := model.search.Value(); value != before {
		switch model.tab {
		case dashboard.TabPost:
			model.postList.SetSearch(value)
		case dashboard.TabUser:
			model.userList.SetSearch(value)
		}
	}
	return model, cmd
}

func (model Model) handleDashboardKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := model.keys
	switch {
	case key.Matches(message, keys.Quit):
		return model, tea.Quit
	case key.Matches(message, keys.Logout):
		model.session.Logout()
		return model, nil
	case key.Matches(message, keys.Back):
		model.history.Back()
		return model, nil
	case key.Matches(message, keys.Forward):
		model.history.Forward()
		return model, nil
	case key.Matches(message, keys.NextTab):
		model.cycleTab(1)
		return model, nil
	case key.Matches(message, keys.PreviousTab):
		model.cycleTab(-1)
		return model, nil
	case key.Matches(message, keys.TabPost):
		model.selectTab(dashboard.TabPost)
		return model, nil
	case key.Matches(message, keys.TabUser):
		model.selectTab(dashboard.TabUser)
		return model, nil
	case key.Matches(message, keys.TabProfile):
		model.selectTab(dashboard.TabMyProfile)
		return model, nil
	case key.Matches(message, keys.Refresh):
		next := model.refresh()
		return model, next
	}

	if listTabOf(model.tab) == "" {
		return model, nil
	}
	return model.handleListKeys(message)
}

// selectTab records a tab change in the history. The navigation
// signal that follows mounts it.
func (model *Model) selectTab(tab dashboard.Tab) {
	if !dashboard.CanView(model.profile.Role(), tab) {
		return
	}
	model.session.SelectTab(tab)
}

func (model *Model) cycleTab(delta int) {
	tabs := dashboard.VisibleTabs(model.profile.Role())
	if len(tabs) == 0 {
		return
	}
	current := 0
	for index, tab := range tabs {
		if tab == model.tab {
			current = index
		}
	}
	next := ((current+delta)%len(tabs) + len(tabs)) % len(tabs)
	model.session.SelectTab(tabs[next])
}

func (model *Model) refresh() tea.Cmd {
	if _, loaded := model.profile.Profile(); !loaded {
		model.profileErr = nil
		model.awaitingProfile = true
		return model.fetchProfile()
	}
	switch model.tab {
	case dashboard.TabPost:
		model.postList.Refresh()
	case dashboard.TabUser:
		model.userList.Refresh()
	case dashboard.TabMyProfile:
		return model.fetchProfile()
	}
	return nil
}

func (model Model) handleListKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := model.keys
	count := model.itemCount()
	selected := model.selection[model.tab]

	switch {
	case key.Matches(message, keys.Search):
		model.searching = true
		next := model.search.Focus()
		return model, next
	case key.Matches(message, keys.Up):
		if selected > 0 {
			model.selection[model.tab] = selected - 1
			model.syncDetail()
		}
	case key.Matches(message, keys.Down):
		if selected < count-1 {
			model.selection[model.tab] = selected + 1
			model.syncDetail()
		}
	case key.Matches(message, keys.PreviousPage):
		model.turnPage(-1)
	case key.Matches(message, keys.NextPage):
		model.turnPage(1)
	case key.Matches(message, keys.ScrollUp):
		model.detail.SetYOffset(model.detail.YOffset - max(model.detail.Height/2, 1))
	case key.Matches(message, keys.ScrollDown):
		model.detail.SetYOffset(model.detail.YOffset + max(model.detail.Height/2, 1))
	case key.Matches(message, keys.Create):
		next := model.openCreateForm()
		return model, next
	case key.Matches(message, keys.Edit) && count > 0:
		next := model.openEditForm(selected)
		return model, next
	case key.Matches(message, keys.Delete) && count > 0:
		model.confirmDelete(selected)
	case key.Matches(message, keys.Open) && count > 0:
		next := model.openUserDetail(selected)
		return model, next
	}
	return model, nil
}

func (model *Model) itemCount() int {
	switch model.tab {
	case dashboard.TabPost:
		return len(model.postList.Items())
	case dashboard.TabUser:
		return len(model.userList.Items())
	}
	return 0
}

// turnPage moves the active list by delta pages. Moves past either
// end are ignored.
func (model *Model) turnPage(delta int) {
	var err error
	switch {
	case model.tab == dashboard.TabPost && delta < 0:
		err = model.postList.PreviousPage()
	case model.tab == dashboard.TabPost:
		err = model.postList.NextPage()
	case delta < 0:
		err = model.userList.PreviousPage()
	default:
		err = model.userList.NextPage()
	}
	if err == nil {
		model.selection[model.tab] = 0
	}
}

func (model *Model) openCreateForm() tea.Cmd {
	role := model.profile.Role()
	switch {
	case model.tab == dashboard.TabPost && dashboard.CanManagePosts(role):
		model.form = newPostForm()
	case model.tab == dashboard.TabUser && dashboard.CanCreateUser(role):
		model.form = newUserForm(role, nil)
	default:
		return nil
	}
	model.modal = modalForm
	return model.form.focusField(0)
}

func (model *Model) openEditForm(index int) tea.Cmd {
	role := model.profile.Role()
	items := model.userList.Items()
	if model.tab != dashboard.TabUser || !dashboard.CanEditUser(role) || index >= len(items) {
		return nil
	}
	target := items[index]
	model.form = newUserForm(role, &target)
	model.modal = modalForm
	return model.form.focusField(0)
}

func (model *Model) confirmDelete(index int) {
	role := model.profile.Role()
	switch model.tab {
	case dashboard.TabPost:
		items := model.postList.Items()
		if !dashboard.CanManagePosts(role) || index >= len(items) {
			return
		}
		model.deletion = deleteTarget{tab: dashboard.TabPost, id: items[index].ID, label: items[index].Title}
	case dashboard.TabUser:
		items := model.userList.Items()
		if !dashboard.CanDeleteUser(role) || index >= len(items) {
			return
		}
		model.deletion = deleteTarget{tab: dashboard.TabUser, id: items[index].ID, label: items[index].Email}
	default:
		return
	}
	model.modal = modalConfirmDelete
}

func (model *Model) openUserDetail(index int) tea.Cmd {
	items := model.userList.Items()
	if model.tab != dashboard.TabUser || index >= len(items) {
		return nil
	}
	id := items[index].ID
	model.userDetail = userDetailState{id: id, loading: true}
	model.modal = modalUserDetail

	users, ctx := model.users, model.ctx
	return func() tea.Msg {
		detail, err := users.Get(ctx, id)
		return userDetailMsg{id: id, detail: detail, err: err}
	}
}

func (model Model) handleFormKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(message, model.keys.Cancel) && !model.form.submitting {
		model.modal = modalNone
		model.form = nil
		return model, nil
	}
	cmd, submit := model.form.update(message, model.keys)
	if !submit {
		return model, cmd
	}
	switch model.form.kind {
	case formCreatePost:
		return model.submitPost()
	case formCreateUser, formEditUser:
		return model.submitUser()
	}
	return model, nil
}

func (model Model) submitPost() (tea.Model, tea.Cmd) {
	current := model.form
	values := current.postForm()
	if cmd, invalid := model.formInvalid(current, validate.Post(values)); invalid {
		return model, cmd
	}
	current.submitting = true

	posts, ctx := model.posts, model.ctx
	return model, func() tea.Msg {
		draft := api.PostDraft{Title: values.Title, Content: values.Content}
		if values.ImagePath != "" {
			upload, file, err := api.OpenImage(values.ImagePath)
			if err != nil {
				return mutationResultMsg{op: opCreatePost, err: err}
			}
			defer file.Close()
			draft.Image = upload
		}
		result, err := posts.Create(ctx, draft)
		return mutationResultMsg{op: opCreatePost, result: result, err: err}
	}
}

func (model Model) submitUser() (tea.Model, tea.Cmd) {
	current := model.form
	values := current.userForm()
	caller := model.profile.Role()

	var err error
	if current.kind == formEditUser {
		err = validate.EditUser(values, caller)
	} else {
		err = validate.NewUser(values, caller)
	}
	if cmd, invalid := model.formInvalid(current, err); invalid {
		return model, cmd
	}
	current.submitting = true

	users, ctx := model.users, model.ctx
	if current.kind == formEditUser {
		id := current.target.ID
		draft := api.UserDraft{Name: values.Name, Role: api.Role(values.Role)}
		return model, func() tea.Msg {
			result, err := users.Update(ctx, id, draft)
			return mutationResultMsg{op: opUpdateUser, result: result, err: err}
		}
	}
	draft := api.UserDraft{Name: values.Name, Email: values.Email, Password: values.Password, Role: api.Role(values.Role)}
	return model, func() tea.Msg {
		result, err := users.Create(ctx, draft)
		return mutationResultMsg{op: opCreateUser, result: result, err: err}
	}
}

func (model Model) handleConfirmKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Cancel), message.String() == "n":
		model.modal = modalNone
		return model, nil
	case key.Matches(message, model.keys.Confirm):
	default:
		return model, nil
	}

	target := model.deletion
	model.modal = modalNone
	ctx := model.ctx
	if target.tab == dashboard.TabUser {
		users := model.users
		return model, func() tea.Msg {
			result, err := users.Delete(ctx, target.id)
			return mutationResultMsg{op: opDeleteUser, result: result, err: err}
		}
	}
	posts := model.posts
	return model, func() tea.Msg {
		result, err := posts.Delete(ctx, target.id)
		return mutationResultMsg{op: opDeletePost, result: result, err: err}
	}
}

func (model Model) handleMutationResult(message mutationResultMsg) (tea.Model, tea.Cmd) {
	if model.form != nil {
		model.form.submitting = false
	}
	if message.err != nil {
		if model.session.HandleError(message.err) {
			return model, nil
		}
		model.logger.Debug("mutation failed", "error", message.err)
		fallback := message.err.Error()
		if message.op.deletes() {
			fallback = "Error deleting"
		}
		next := model.showToast(ToastError, api.MessageOf(message.err, fallback))
		return model, next
	}

	if !message.result.Success {
		notice := message.result.Message
		if notice == "" {
			notice = "The server did not apply the change"
		}
		next := model.showToast(ToastWarning, notice)
		return model, next
	}

	var notice string
	switch message.op {
	case opCreatePost:
		notice = message.result.Message
		model.postList.Refresh()
	case opCreateUser:
		notice = "New user created successfully"
		model.userList.Refresh()
	case opUpdateUser:
		notice = "User updated successfully"
		model.userList.Refresh()
	case opDeletePost:
		notice = message.result.Message
		model.postList.ResetAfterDelete()
		model.selection[dashboard.TabPost] = 0
	case opDeleteUser:
		notice = message.result.Message
		model.userList.ResetAfterDelete()
		model.selection[dashboard.TabUser] = 0
	}
	if message.op.deletes() {
		model.search.SetValue("")
	} else {
		model.modal = modalNone
		model.form = nil
	}
	if notice == "" {
		notice = "Done"
	}
	next := model.showToast(ToastSuccess, notice)
	return model, next
}
