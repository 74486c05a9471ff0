// Copyright 2026 The Postapp Authors
// SPDX-License-Identifier: Apache-2.0

package adminui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/junegunn/fzf/src/util"

	"github.com/FahadRazzaq1121/postapp/lib/api"
	"github.com/FahadRazzaq1121/postapp/lib/dashboard"
	"github.com/FahadRazzaq1121/postapp/lib/listview"
	"github.com/FahadRazzaq1121/postapp/lib/secret"
	"github.com/FahadRazzaq1121/postapp/lib/store"
	"github.com/FahadRazzaq1121/postapp/lib/tui"
)

// Authenticator exchanges credentials for an access token.
type Authenticator interface {
	Login(ctx context.Context, email string, password *secret.Buffer) (api.LoginResult, error)
}

// PostService creates and deletes posts.
type PostService interface {
	Create(ctx context.Context, draft api.PostDraft) (api.MutationResult, error)
	Delete(ctx context.Context, id string) (api.MutationResult, error)
}

// UserService reads and mutates single users.
type UserService interface {
	Get(ctx context.Context, id string) (api.UserDetail, error)
	Create(ctx context.Context, draft api.UserDraft) (api.MutationResult, error)
	Update(ctx context.Context, id string, draft api.UserDraft) (api.MutationResult, error)
	Delete(ctx context.Context, id string) (api.MutationResult, error)
}

// TokenStore persists the access token issued at login.
type TokenStore interface {
	Store(token string) error
}

// Config wires a Model to the layers below it. Every field except
// Theme, Keys, ToastDuration, and Logger is required.
type Config struct {
	// Context bounds every request the Model starts.
	Context context.Context

	Auth   Authenticator
	Posts  PostService
	Users  UserService
	Tokens TokenStore

	PostList *listview.Controller[api.Post]
	UserList *listview.Controller[api.User]
	Profile  *store.ProfileSlice

	Session *dashboard.Session
	History *dashboard.History

	// Navigation signals history changes. See NavigationHistory.
	Navigation <-chan struct{}

	Theme         *tui.Theme
	Keys          *KeyMap
	ToastDuration time.Duration
	Logger        *slog.Logger
}

// NavigationHistory returns a history starting at initial and the
// channel a Model listens on for its changes. Signals coalesce: the
// Model reads History.Current when it wakes, so a dropped duplicate
// loses nothing.
func NavigationHistory(initial dashboard.Location) (*dashboard.History, <-chan struct{}) {
	signals := make(chan struct{}, 1)
	history := dashboard.NewHistory(initial, func(dashboard.Location) {
		select {
		case signals <- struct{}{}:
		default:
		}
	})
	return history, signals
}

// screen is the top-level view.
type screen int

const (
	screenLogin screen = iota
	screenDashboard
)

// modalKind identifies the overlay above the dashboard.
type modalKind int

const (
	modalNone modalKind = iota
	modalForm
	modalConfirmDelete
	modalUserDetail
)

// deleteTarget names the record a delete confirmation is about.
type deleteTarget struct {
	tab   dashboard.Tab
	id    string
	label string
}

// userDetailState is the user detail overlay.
type userDetailState struct {
	id      string
	loading bool
	detail  api.UserDetail
	err     error
}

// Messages delivered to Update.
type (
	// navigationMsg asks the Model to apply History.Current. signal
	// is set when it came from the navigation channel, whose listener
	// must then be re-armed.
	navigationMsg struct {
		signal bool
	}

	listEventMsg struct {
		tab   dashboard.Tab
		event listview.Event
	}

	profileResultMsg struct {
		outcome store.Outcome
		err     error
	}

	loginResultMsg struct {
		result api.LoginResult
		err    error
	}

	mutationResultMsg struct {
		op     mutationOp
		result api.MutationResult
		err    error
	}

	userDetailMsg struct {
		id     string
		detail api.UserDetail
		err    error
	}
)

// mutationOp identifies a create, update, or delete.
type mutationOp int

const (
	opCreatePost mutationOp = iota
	opDeletePost
	opCreateUser
	opUpdateUser
	opDeleteUser
)

func (op mutationOp) deletes() bool { return op == opDeletePost || op == opDeleteUser }

// Model is the top-level bubbletea model of postadmin.
type Model struct {
	ctx    context.Context
	auth   Authenticator
	posts  PostService
	users  UserService
	tokens TokenStore

	postList *listview.Controller[api.Post]
	userList *listview.Controller[api.User]
	profile  *store.ProfileSlice
	session  *dashboard.Session
	history  *dashboard.History

	navigation <-chan struct{}

	theme         tui.Theme
	keys          KeyMap
	toastDuration time.Duration
	logger        *slog.Logger

	width  int
	height int

	screen   screen
	login    *form
	tab      dashboard.Tab
	mounted  dashboard.Tab // Tab whose list controller is mounted, or "".
	location dashboard.Location

	// awaitingProfile is set while the dashboard waits for the
	// profile to decide which tabs the user may see.
	awaitingProfile bool
	profileErr      error

	search    textinput.Model
	searching bool

	// Row selection per list tab.
	selection map[dashboard.Tab]int

	detail    viewport.Model
	detailFor string // Post ID rendered into detail.

	spinner   spinner.Model
	paginator paginator.Model
	slab      *util.Slab

	modal      modalKind
	form       *form
	deletion   deleteTarget
	userDetail userDetailState

	toast         *Toast
	toastSequence uint64

	logLine     string
	logLevel    slog.Level
	logSequence uint64
}

// NewModel returns a Model showing the history's current location.
func NewModel(config Config) Model {
	theme := tui.DefaultTheme
	if config.Theme != nil {
		theme = *config.Theme
	}
	keys := DefaultKeyMap
	if config.Keys != nil {
		keys = *config.Keys
	}
	if config.ToastDuration <= 0 {
		config.ToastDuration = DefaultToastDuration
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.Context == nil {
		config.Context = context.Background()
	}

	search := textinput.New()
	search.Prompt = "/ "
	search.Width = 40

	pages := paginator.New()
	pages.Type = paginator.Dots
	pages.PerPage = listview.PageSize

	return Model{
		ctx:           config.Context,
		auth:          config.Auth,
		posts:         config.Posts,
		users:         config.Users,
		tokens:        config.Tokens,
		postList:      config.PostList,
		userList:      config.UserList,
		profile:       config.Profile,
		session:       config.Session,
		history:       config.History,
		navigation:    config.Navigation,
		theme:         theme,
		keys:          keys,
		toastDuration: config.ToastDuration,
		logger:        config.Logger,
		screen:        screenLogin,
		login:         newLoginForm(),
		search:        search,
		selection:     make(map[dashboard.Tab]int),
		detail:        viewport.New(0, 0),
		spinner:       spinner.New(spinner.WithSpinner(spinner.Dot)),
		paginator:     pages,
		slab:          util.MakeSlab(100*1024, 2048),
	}
}

// Init implements tea.Model. The first navigationMsg applies the
// starting location.
func (model Model) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return navigationMsg{} },
		listenForNavigation(model.navigation),
		listenForListEvent(dashboard.TabPost, model.postList.Events()),
		listenForListEvent(dashboard.TabUser, model.userList.Events()),
		model.spinner.Tick,
		textinput.Blink,
	)
}

func listenForNavigation(channel <-chan struct{}) tea.Cmd {
	if channel == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-channel; !ok {
			return nil
		}
		return navigationMsg{signal: true}
	}
}

func listenForListEvent(tab dashboard.Tab, channel <-chan listview.Event) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-channel
		if !ok {
			return nil
		}
		return listEventMsg{tab: tab, event: event}
	}
}

// Close unmounts both list views and waits for their fetches. Call it
// after the program exits.
func (model Model) Close() {
	model.postList.Unmount()
	model.userList.Unmount()
	model.postList.Wait()
	model.userList.Wait()
}
