// Copyright 2026 The Postapp Authors
// SPDX-License-Identifier: Apache-2.0

package adminui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/FahadRazzaq1121/postapp/lib/api"
	"github.com/FahadRazzaq1121/postapp/lib/dashboard"
	"github.com/FahadRazzaq1121/postapp/lib/listview"
	"github.com/FahadRazzaq1121/postapp/lib/tui"
)

const (
	// excerptLength is how much post content a list row shows.
	excerptLength = 120

	// detailMinWidth is the narrowest terminal that gets the post
	// detail pane beside the list.
	detailMinWidth = 100

	fallbackWidth  = 80
	fallbackHeight = 24
)

// View implements tea.Model.
func (model Model) View() string {
	width, height := model.size()

	var view string
	if model.screen == screenLogin {
		view = model.renderLogin(width, height)
	} else {
		view = model.renderDashboard(width, height)
		if box := model.renderModal(); box != "" {
			view = tui.PlaceCentered(view, box, width, height)
		}
	}

	if model.toast != nil {
		toast := renderToast(*model.toast, model.theme)
		anchorX := max(width-lipgloss.Width(toast)-1, 0)
		view = tui.SpliceOverlay(view, strings.Split(toast, "\n"), anchorX, 1)
	}
	return view
}

func (model Model) size() (int, int) {
	width, height := model.width, model.height
	if width <= 0 {
		width = fallbackWidth
	}
	if height <= 0 {
		height = fallbackHeight
	}
	return width, height
}

func (model Model) renderLogin(width, height int) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(model.theme.BorderColor).
		Padding(1, 3).
		Render(model.login.view(model.theme))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

func (model Model) renderDashboard(width, height int) string {
	header := model.renderHeader(width)
	status := model.renderStatus(width)
	help := model.renderHelp(width)
	bodyHeight := max(height-lipgloss.Height(header)-2, 1)

	var body string
	switch {
	case model.awaitingProfile:
		body = model.spinner.View() + " Loading profile..."
	case model.profileErr != nil:
		body = lipgloss.NewStyle().Foreground(model.theme.Error).
			Render("Could not load your profile: " + api.MessageOf(model.profileErr, "unknown error") + ". Press r to retry.")
	case model.tab == dashboard.TabPost:
		body = model.renderPostTab(width, bodyHeight)
	case model.tab == dashboard.TabUser:
		body = model.renderUserTab(width)
	case model.tab == dashboard.TabMyProfile:
		body = model.renderProfile(width)
	default:
		body = lipgloss.NewStyle().Foreground(model.theme.FaintText).Render("Your role has no dashboard tabs.")
	}
	body = lipgloss.NewStyle().Height(bodyHeight).MaxHeight(bodyHeight).Render(body)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, status, help)
}

func (model Model) renderHeader(width int) string {
	active := lipgloss.NewStyle().Bold(true).Foreground(model.theme.Accent).Underline(true)
	inactive := lipgloss.NewStyle().Foreground(model.theme.FaintText)

	var tabs []string
	for index, tab := range dashboard.VisibleTabs(model.profile.Role()) {
		label := fmt.Sprintf("%d %s", index+1, tab.Label())
		if tab == model.tab {
			tabs = append(tabs, active.Render(label))
		} else {
			tabs = append(tabs, inactive.Render(label))
		}
	}
	left := strings.Join(tabs, inactive.Render("  │  "))

	right := ""
	if user, ok := model.profile.Profile(); ok {
		right = lipgloss.NewStyle().Foreground(model.theme.NormalText).Render(user.Name) + " " +
			lipgloss.NewStyle().Foreground(model.theme.RoleColor(string(user.Role))).Render("["+string(user.Role)+"]")
	}
	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	line := left + strings.Repeat(" ", gap) + right

	rule := lipgloss.NewStyle().Foreground(model.theme.BorderColor).Render(strings.Repeat("─", width))
	return line + "\n" + rule
}

// renderSearchLine renders the title and search input above a list.
func (model Model) renderSearchLine(title string, pending bool, extra string) string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(model.theme.HeaderForeground)
	line := titleStyle.Render(title) + "  " + model.search.View()
	if pending {
		line += lipgloss.NewStyle().Foreground(model.theme.FaintText).Render("  …")
	}
	if extra != "" {
		line += "  " + extra
	}
	return line
}

func (model Model) renderPagination(display listview.Display, noun string) string {
	pages := model.paginator
	pages.SetTotalPages(display.Total)
	pages.Page = min(display.Page, display.LastPage()) - 1
	label := lipgloss.NewStyle().Foreground(model.theme.FaintText).Render(display.Label(noun))
	if display.TotalPages <= 1 {
		return label
	}
	return label + "   " + pages.View() + lipgloss.NewStyle().Foreground(model.theme.FaintText).
		Render(fmt.Sprintf("  page %d/%d", display.Page, display.LastPage()))
}

func (model Model) renderPostTab(width, height int) string {
	cursor := model.postList.Cursor()
	search := model.renderSearchLine("Posts", model.postList.SearchPending(), model.hint("n", "Create Post", dashboard.CanManagePosts(model.profile.Role())))
	posts, display := model.postList.Page()
	footer := model.renderPagination(display, "posts")

	listWidth := width
	showDetail := width >= detailMinWidth
	if showDetail {
		listWidth = width / 2
	}
	listHeight := max(height-3, 1)

	list := model.renderPostRows(posts, cursor.EffectiveSearch, listWidth-2, listHeight)
	if showDetail {
		list = lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Width(listWidth).Render(list),
			model.renderDetailPane(),
		)
	}
	return strings.Join([]string{search, "", list, footer}, "\n")
}

func (model Model) renderPostRows(posts []api.Post, search string, width, height int) string {
	state, _ := model.postList.State()
	if len(posts) == 0 {
		if state == listview.Loading || state == listview.Idle {
			return model.spinner.View() + " Loading posts..."
		}
		return lipgloss.NewStyle().Foreground(model.theme.FaintText).Render("No posts available.")
	}

	selected := model.selection[dashboard.TabPost]
	base := lipgloss.NewStyle().Foreground(model.theme.NormalText).Bold(true)
	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	pattern := []rune(search)

	var lines []string
	for index, post := range posts {
		marker := "  "
		if index == selected {
			marker = lipgloss.NewStyle().Foreground(model.theme.Accent).Render("▌ ")
		}
		title := ansi.Truncate(post.Title, width, "…")
		positions := tui.FuzzyMatch(title, pattern, model.slab).Positions
		lines = append(lines, marker+tui.HighlightMatches(title, positions, base, model.theme))
		if excerpt := tui.Excerpt(post.Content, excerptLength); excerpt != "" {
			lines = append(lines, marker+faint.Render(ansi.Truncate(excerpt, width, "…")))
		}
		lines = append(lines, marker+faint.Render("Author: "+post.Author.Name), "")
	}
	return strings.Join(windowAround(lines, selectedLine(posts, selected), height), "\n")
}

// selectedLine is the first rendered line of the selected post row.
func selectedLine(posts []api.Post, selected int) int {
	line := 0
	for index := 0; index < selected && index < len(posts); index++ {
		line += 3
		if tui.Excerpt(posts[index].Content, excerptLength) != "" {
			line++
		}
	}
	return line
}

// windowAround returns at most height lines of lines, scrolled so that
// line focus is visible.
func windowAround(lines []string, focus, height int) []string {
	if len(lines) <= height {
		return lines
	}
	start := 0
	if focus >= height {
		start = focus - height + 4
	}
	start = max(min(start, len(lines)-height), 0)
	return lines[start : start+height]
}

// syncDetail renders the selected post into the detail viewport.
func (model *Model) syncDetail() {
	width, height := model.size()
	model.detail.Width = max(width-width/2-3, 10)
	model.detail.Height = max(height-8, 3)

	posts := model.postList.Items()
	selected := model.selection[dashboard.TabPost]
	if model.tab != dashboard.TabPost || selected >= len(posts) {
		model.detail.SetContent("")
		model.detailFor = ""
		return
	}
	post := posts[selected]
	if model.detailFor == post.ID {
		return
	}
	model.detailFor = post.ID

	heading := lipgloss.NewStyle().Bold(true).Foreground(model.theme.HeaderForeground).Render(post.Title)
	meta := lipgloss.NewStyle().Foreground(model.theme.FaintText).Render("by " + post.Author.Name)
	if post.Image != "" {
		meta += lipgloss.NewStyle().Foreground(model.theme.LinkForeground).Render("  image: " + post.Image)
	}
	content := RenderMarkdown(post.Content, model.theme, model.detail.Width)
	model.detail.SetContent(heading + "\n" + meta + "\n\n" + content)
	model.detail.GotoTop()
}

func (model Model) renderDetailPane() string {
	gutter := tui.RenderScrollbar(model.theme, model.detail.Height,
		model.detail.TotalLineCount(), model.detail.VisibleLineCount(), model.detail.YOffset)
	divider := lipgloss.NewStyle().Foreground(model.theme.BorderColor).
		Render(strings.TrimSuffix(strings.Repeat("│\n", model.detail.Height), "\n"))
	return lipgloss.JoinHorizontal(lipgloss.Top, divider, " ", model.detail.View(), gutter)
}

func (model Model) renderUserTab(width int) string {
	role := model.profile.Role()
	search := model.renderSearchLine("Users", model.userList.SearchPending(), model.hint("n", "Create User", dashboard.CanCreateUser(role)))
	users, display := model.userList.Page()
	footer := model.renderPagination(display, "users")

	state, _ := model.userList.State()
	var table string
	switch {
	case len(users) == 0 && (state == listview.Loading || state == listview.Idle):
		table = model.spinner.View() + " Loading users..."
	case len(users) == 0:
		table = lipgloss.NewStyle().Foreground(model.theme.FaintText).Render("No users found.")
	default:
		table = model.renderUserTable(users, role, width)
	}
	return strings.Join([]string{search, "", table, footer}, "\n")
}

func (model Model) renderUserTable(users []api.User, role api.Role, width int) string {
	actions := "view"
	if dashboard.CanEditUser(role) {
		actions += " · edit · delete"
	}
	nameWidth := max((width-30)/3, 10)
	emailWidth := max((width-30)/2, 14)
	const roleWidth = 12

	cell := func(text string, cellWidth int) string {
		text = ansi.Truncate(text, cellWidth-1, "…")
		return text + strings.Repeat(" ", max(cellWidth-ansi.StringWidth(text), 0))
	}

	header := lipgloss.NewStyle().Bold(true).Foreground(model.theme.HeaderForeground).
		Render("  " + cell("Name", nameWidth) + cell("Email", emailWidth) + cell("Role", roleWidth) + "Action")
	lines := []string{header}

	selected := model.selection[dashboard.TabUser]
	for index, user := range users {
		marker := "  "
		style := lipgloss.NewStyle().Foreground(model.theme.NormalText)
		if index == selected {
			marker = "▌ "
			style = style.Background(model.theme.SelectedBackground).Foreground(model.theme.SelectedForeground)
		}
		roleCell := lipgloss.NewStyle().Foreground(model.theme.RoleColor(string(user.Role))).Render(cell(string(user.Role), roleWidth))
		lines = append(lines,
			style.Render(marker+cell(user.Name, nameWidth)+cell(user.Email, emailWidth))+
				roleCell+
				lipgloss.NewStyle().Foreground(model.theme.FaintText).Render(actions))
	}
	return strings.Join(lines, "\n")
}

func (model Model) renderProfile(width int) string {
	title := lipgloss.NewStyle().Bold(true).Foreground(model.theme.HeaderForeground).Render("My Profile")
	user, ok := model.profile.Profile()
	var body string
	if !ok {
		body = model.spinner.View()
	} else {
		label := lipgloss.NewStyle().Foreground(model.theme.FaintText).Width(8)
		value := lipgloss.NewStyle().Foreground(model.theme.NormalText)
		rows := []string{
			lipgloss.NewStyle().Bold(true).Render("User Details"),
			"",
			label.Render("ID") + value.Render(user.ID),
			label.Render("Name") + value.Render(user.Name),
			label.Render("Email") + value.Render(user.Email),
			label.Render("Role") + lipgloss.NewStyle().Foreground(model.theme.RoleColor(string(user.Role))).Render(string(user.Role)),
		}
		body = strings.Join(rows, "\n")
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(model.theme.BorderColor).
		Padding(1, 2).
		Width(min(60, max(width-4, 20))).
		Render(title + "\n\n" + body)
}

// hint renders "key label" when shown is true.
func (model Model) hint(keyName, label string, shown bool) string {
	if !shown {
		return ""
	}
	return lipgloss.NewStyle().Foreground(model.theme.Accent).Render(keyName) +
		lipgloss.NewStyle().Foreground(model.theme.FaintText).Render(" "+label)
}

// renderStatus shows the active list's load state or the latest
// forwarded log record.
func (model Model) renderStatus(width int) string {
	if model.logLine != "" {
		color := model.theme.Warning
		if model.logLevel >= slog.LevelError {
			color = model.theme.Error
		}
		return lipgloss.NewStyle().Foreground(color).Render(ansi.Truncate(model.logLine, width, "…"))
	}

	var state listview.State
	var err error
	switch model.tab {
	case dashboard.TabPost:
		state, err = model.postList.State()
	case dashboard.TabUser:
		state, err = model.userList.State()
	default:
		return ""
	}
	switch state {
	case listview.Loading:
		return lipgloss.NewStyle().Foreground(model.theme.FaintText).Render(model.spinner.View() + " loading")
	case listview.Errored:
		return lipgloss.NewStyle().Foreground(model.theme.Error).
			Render(ansi.Truncate(api.MessageOf(err, "Failed to load"), width, "…"))
	}
	return ""
}

func (model Model) renderHelp(width int) string {
	keys := model.keys
	var bindings []string
	add := func(help string, description string) {
		bindings = append(bindings, help+" "+description)
	}
	switch {
	case model.searching:
		add("enter/esc", "done")
	case listTabOf(model.tab) != "":
		add(keys.Up.Help().Key+"/"+keys.Down.Help().Key, "select")
		add(keys.PreviousPage.Help().Key+"/"+keys.NextPage.Help().Key, "page")
		add(keys.Search.Help().Key, keys.Search.Help().Desc)
		if model.tab == dashboard.TabUser {
			add(keys.Open.Help().Key, "details")
		}
		fallthrough
	default:
		add(keys.NextTab.Help().Key, "tabs")
		add(keys.Back.Help().Key+keys.Forward.Help().Key, "history")
		add(keys.Logout.Help().Key, keys.Logout.Help().Desc)
		add(keys.Quit.Help().Key, keys.Quit.Help().Desc)
	}
	return lipgloss.NewStyle().Foreground(model.theme.HelpText).
		Render(ansi.Truncate(strings.Join(bindings, " · "), width, "…"))
}

// renderModal renders the open overlay box, or "".
func (model Model) renderModal() string {
	var content string
	switch model.modal {
	case modalForm:
		content = model.form.view(model.theme)
	case modalConfirmDelete:
		content = model.renderConfirm()
	case modalUserDetail:
		content = model.renderUserDetail()
	default:
		return ""
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(model.theme.Accent).
		Background(model.theme.ModalBackground).
		Padding(1, 2).
		Render(content)
}

func (model Model) renderConfirm() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(model.theme.Error).Render("Delete Alert")
	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	return strings.Join([]string{
		title,
		"",
		"Are you sure you want to delete this?",
		faint.Render(model.deletion.label),
		faint.Render("This action cannot be reversible."),
		"",
		model.hint("y", "delete", true) + "   " + model.hint("n/esc", "cancel", true),
	}, "\n")
}

func (model Model) renderUserDetail() string {
	state := model.userDetail
	title := lipgloss.NewStyle().Bold(true).Foreground(model.theme.HeaderForeground).Render("User Details")
	if state.loading {
		return title + "\n\n" + model.spinner.View() + " Loading..."
	}
	if state.err != nil {
		return title + "\n\n" + lipgloss.NewStyle().Foreground(model.theme.Error).
			Render(api.MessageOf(state.err, "Error fetching user details"))
	}

	label := lipgloss.NewStyle().Foreground(model.theme.FaintText).Width(8)
	detail := state.detail
	lines := []string{
		title,
		"",
		label.Render("Name") + detail.Name,
		label.Render("Email") + detail.Email,
		label.Render("Role") + lipgloss.NewStyle().Foreground(model.theme.RoleColor(string(detail.Role))).Render(string(detail.Role)),
		"",
		lipgloss.NewStyle().Bold(true).Render("Posts"),
	}
	if len(detail.Posts) == 0 {
		lines = append(lines, lipgloss.NewStyle().Foreground(model.theme.FaintText).Render("No posts available for this user."))
	}
	for _, post := range detail.Posts {
		lines = append(lines, "• "+post.Title)
		if excerpt := tui.Excerpt(post.Content, 60); excerpt != "" {
			lines = append(lines, "  "+lipgloss.NewStyle().Foreground(model.theme.FaintText).Render(excerpt))
		}
	}
	lines = append(lines, "", model.hint("esc", "close", true))
	return strings.Join(lines, "\n")
}
