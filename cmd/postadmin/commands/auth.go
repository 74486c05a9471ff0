// Copyright 2026 The Postapp Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/FahadRazzaq1121/postapp/cmd/postadmin/cli"
	"github.com/FahadRazzaq1121/postapp/lib/api"
	"github.com/FahadRazzaq1121/postapp/lib/tokencache"
	"github.com/FahadRazzaq1121/postapp/lib/validate"
)

type loginParams struct {
	cli.ClientParams
	PasswordFile string `json:"-" flag:"password-file" desc:"file containing the password, or - to prompt (default: prompt)"`
}

func loginCommand(streams cli.Streams) *cli.Command {
	var params loginParams
	return &cli.Command{
		Name:    "login",
		Summary: "Log in and cache the access token",
		Description: `Log in to the backend and cache the access token for later commands.

The token is sealed on disk under paths.state, scoped to the configured
base URL. It is dropped when it expires or when the backend rejects it.

The password is prompted for with echo disabled, read from
--password-file, or read from the first line of stdin when stdin is not
a terminal.`,
		Usage: "postadmin login <email> [flags]",
		Examples: []cli.Example{
			{Description: "Log in interactively", Command: "postadmin login admin@example.com"},
			{Description: "Log in to staging from a script", Command: "postadmin login ops@example.com --api-url https://staging.example.com/api --password-file /run/secrets/postadmin"},
		},
		Params: func() any { params = loginParams{}; return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			email, err := oneArg(args, "email", "postadmin login <email> [flags]")
			if err != nil {
				return err
			}
			env, err := params.Open(streams, logger)
			if err != nil {
				return err
			}

			password, err := cli.ReadPassword(streams, params.PasswordFile)
			if err != nil {
				return err
			}
			defer password.Close()
			if err := validate.Login(validate.LoginForm{Email: email, Password: password.String()}); err != nil {
				return cli.Validation("%w", err)
			}

			result, err := env.Client.Auth().Login(ctx, email, password)
			if err != nil {
				switch api.KindOf(err) {
				case api.Unauthorized, api.Validation:
					return cli.Validation("login failed: %s", api.MessageOf(err, err.Error()))
				}
				return env.Fail("login", err)
			}
			if err := env.Tokens.Store(result.Token); err != nil {
				return cli.Internal("caching access token: %w", err)
			}

			notice := result.Message
			if notice == "" {
				notice = "Login successful"
			}
			fmt.Fprintln(streams.Err, notice)
			logger.Debug("token cached", "scope", env.Tokens.Scope(), "base_url", env.Config.API.BaseURL)
			return nil
		},
	}
}

func logoutCommand(streams cli.Streams) *cli.Command {
	var params cli.ClientParams
	return &cli.Command{
		Name:    "logout",
		Summary: "Forget the cached access token",
		Usage:   "postadmin logout [flags]",
		Params:  func() any { params = cli.ClientParams{}; return &params },
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if err := noArgs(args); err != nil {
				return err
			}
			env, err := params.Open(streams, logger)
			if err != nil {
				return err
			}
			if err := env.Tokens.Clear(); err != nil {
				return cli.Internal("clearing access token: %w", err)
			}
			fmt.Fprintf(streams.Err, "Logged out of %s\n", env.Config.API.BaseURL)
			return nil
		},
	}
}

type whoamiParams struct {
	cli.ClientParams
	cli.JSONOutput
	Offline bool `json:"offline" flag:"offline" desc:"read the cached token's claims instead of asking the backend"`
}

// identity is the --json shape of whoami.
type identity struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	ExpiresAt string `json:"expires_at,omitempty"`
}

func whoamiCommand(streams cli.Streams) *cli.Command {
	var params whoamiParams
	return &cli.Command{
		Name:    "whoami",
		Summary: "Show the logged-in user",
		Description: `Show the user the cached token belongs to.

By default the backend is asked (GET /user/me), which also proves the
token is still accepted. --offline decodes the cached token's claims
without a request; those claims are unverified.`,
		Usage:  "postadmin whoami [flags]",
		Params: func() any { params = whoamiParams{}; return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := noArgs(args); err != nil {
				return err
			}
			env, err := params.Open(streams, logger)
			if err != nil {
				return err
			}

			var who identity
			if params.Offline {
				claims, err := env.Tokens.Claims()
				switch {
				case errors.Is(err, tokencache.ErrOpaqueToken):
					return cli.Validation("the cached token carries no readable claims").
						WithHint("Run 'postadmin whoami' without --offline to ask the backend.")
				case err != nil:
					return env.Fail("reading cached token", err)
				}
				who = identity{ID: claims.Subject, Name: claims.Name, Email: claims.Email, Role: claims.Role}
				if !claims.ExpiresAt.IsZero() {
					who.ExpiresAt = claims.ExpiresAt.UTC().Format("2006-01-02T15:04:05Z")
				}
			} else {
				user, err := env.Client.Profile().Me(ctx)
				if err != nil {
					return env.Fail("loading profile", err)
				}
				who = identity{ID: user.ID, Name: user.Name, Email: user.Email, Role: string(user.Role)}
			}

			if done, err := params.EmitJSON(streams.Out, who); done {
				return err
			}
			rows := [][]string{
				{"ID", who.ID},
				{"Name", who.Name},
				{"Email", who.Email},
				{"Role", who.Role},
			}
			if who.ExpiresAt != "" {
				rows = append(rows, []string{"Expires", who.ExpiresAt})
			}
			for _, row := range rows {
				fmt.Fprintf(streams.Out, "%-8s %s\n", row[0]+":", row[1])
			}
			return nil
		},
	}
}
