// Copyright 2026 The Postapp Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"errors"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/FahadRazzaq1121/postapp/cmd/postadmin/cli"
	"github.com/FahadRazzaq1121/postapp/lib/adminui"
	"github.com/FahadRazzaq1121/postapp/lib/api"
	"github.com/FahadRazzaq1121/postapp/lib/dashboard"
	"github.com/FahadRazzaq1121/postapp/lib/listview"
	"github.com/FahadRazzaq1121/postapp/lib/store"
	"github.com/FahadRazzaq1121/postapp/lib/tokencache"
)

type dashboardParams struct {
	cli.ClientParams
	Tab      string `json:"tab" flag:"tab" desc:"tab to open: post, user, or my_profile" default:"post"`
	Location string `json:"location" flag:"location" desc:"address to open, e.g. /dashboard?tab=user (overrides --tab)"`
}

// startLocation resolves --location, or --tab when it is unset.
func (p *dashboardParams) startLocation() (dashboard.Location, error) {
	location := dashboard.DashboardLocation(dashboard.Tab(p.Tab))
	if p.Location != "" {
		parsed, err := dashboard.ParseLocation(p.Location)
		if err != nil {
			return dashboard.Location{}, cli.Validation("--location: %w", err)
		}
		location = parsed
	}
	if location.IsLogin() {
		return location, nil
	}
	switch location.Tab {
	case dashboard.TabPost, dashboard.TabUser, dashboard.TabMyProfile:
		return location, nil
	}
	return dashboard.Location{}, cli.Validation("unknown tab %q (want post, user, or my_profile)", location.Tab)
}

func dashboardCommand(streams cli.Streams) *cli.Command {
	var params dashboardParams
	return &cli.Command{
		Name:    "dashboard",
		Summary: "Open the interactive dashboard",
		Description: `Open the terminal dashboard.

Without a cached token the login screen comes first. The tabs offered
depend on the logged-in user's role; a tab the role may not see falls
back to the first one it may.

Keys: 1/2/3 switch tabs, / searches, h/l page, n creates, e edits,
d deletes, enter opens user details, [ and ] walk back and forward
through visited tabs, L logs out, q quits.`,
		Usage: "postadmin dashboard [flags]",
		Examples: []cli.Example{
			{Description: "Open straight onto the user list", Command: "postadmin dashboard --tab user"},
			{Description: "Open a copied address", Command: "postadmin dashboard --location '/dashboard?tab=my_profile'"},
		},
		Params: func() any { params = dashboardParams{}; return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := noArgs(args); err != nil {
				return err
			}
			start, err := params.startLocation()
			if err != nil {
				return err
			}
			env, err := params.Open(streams, logger)
			if err != nil {
				return err
			}
			return runDashboard(ctx, env, start)
		},
	}
}

func runDashboard(ctx context.Context, env *cli.Environment, start dashboard.Location) error {
	cfg := env.Config

	// Inside the program, warnings surface in the status line instead
	// of corrupting the screen.
	handler := adminui.NewTUILogHandler(slog.LevelWarn)
	logger := slog.New(handler)

	if _, err := env.Tokens.Load(); err != nil {
		if !errors.Is(err, tokencache.ErrNoToken) {
			env.Logger.Warn("reading cached token", "error", err)
		}
		start = dashboard.LoginLocation()
	}

	history, navigation := adminui.NavigationHistory(start)
	profile := store.NewProfileSlice(env.Client.Profile())
	session := dashboard.NewSession(dashboard.SessionConfig{
		Tokens:  env.Tokens,
		History: history,
		OnEnd:   profile.Clear,
		Logger:  logger,
	})
	postList := listview.New(listview.Config[api.Post]{
		Slice:             store.NewListSlice[api.Post](env.Client.Posts(), logger),
		Guard:             session,
		Debounce:          cfg.List.Debounce,
		ResetPageOnSearch: cfg.List.ResetsPage(),
		Logger:            logger,
	})
	userList := listview.New(listview.Config[api.User]{
		Slice:             store.NewListSlice[api.User](env.Client.Users(), logger),
		Guard:             session,
		Debounce:          cfg.List.Debounce,
		ResetPageOnSearch: cfg.List.ResetsPage(),
		Logger:            logger,
	})

	model := adminui.NewModel(adminui.Config{
		Context:       ctx,
		Auth:          env.Client.Auth(),
		Posts:         env.Client.Posts(),
		Users:         env.Client.Users(),
		Tokens:        env.Tokens,
		PostList:      postList,
		UserList:      userList,
		Profile:       profile,
		Session:       session,
		History:       history,
		Navigation:    navigation,
		ToastDuration: cfg.UI.ToastDuration,
		Logger:        logger,
	})

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	handler.SetProgram(program)

	final, err := program.Run()
	if done, ok := final.(adminui.Model); ok {
		done.Close()
	} else {
		model.Close()
	}
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return cli.Internal("dashboard: %w", err)
	}
	return nil
}
