// Copyright 2026 The Postapp Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/FahadRazzaq1121/postapp/cmd/postadmin/cli"
	"github.com/FahadRazzaq1121/postapp/lib/api"
	"github.com/FahadRazzaq1121/postapp/lib/dashboard"
	"github.com/FahadRazzaq1121/postapp/lib/tui"
	"github.com/FahadRazzaq1121/postapp/lib/validate"
)

func userCommand(streams cli.Streams) *cli.Command {
	return &cli.Command{
		Name:    "user",
		Summary: "List, inspect, create, update, and delete users",
		Description: `Manage users.

Listing and inspecting are open to every role. Admins may create users
with the User role; SuperAdmins may create users of any role and are the
only role that may update or delete users.`,
		Subcommands: []*cli.Command{
			userListCommand(streams),
			userGetCommand(streams),
			userCreateCommand(streams),
			userUpdateCommand(streams),
			userDeleteCommand(streams),
		},
	}
}

func userListCommand(streams cli.Streams) *cli.Command {
	var params listParams
	return &cli.Command{
		Name:    "list",
		Summary: "List users, ten per page",
		Usage:   "postadmin user list [flags]",
		Examples: []cli.Example{
			{Description: "Users whose email contains example.com", Command: "postadmin user list --search example.com"},
		},
		Params: func() any { params = listParams{}; return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := noArgs(args); err != nil {
				return err
			}
			query, err := params.query()
			if err != nil {
				return err
			}
			env, err := params.Open(streams, logger)
			if err != nil {
				return err
			}
			page, err := env.Client.Users().List(ctx, query)
			if err != nil {
				return env.Fail("listing users", err)
			}

			result := newListResult(query, page, "users")
			if done, err := params.EmitJSON(streams.Out, result); done {
				return err
			}
			rows := make([][]string, 0, len(result.Records))
			for _, user := range result.Records {
				rows = append(rows, []string{user.ID, user.Name, user.Email, string(user.Role)})
			}
			printTable(streams.Out, []string{"ID", "NAME", "EMAIL", "ROLE"}, rows)
			fmt.Fprintln(streams.Out, result.Label)
			return nil
		},
	}
}

type userGetParams struct {
	cli.ClientParams
	cli.JSONOutput
}

func userGetCommand(streams cli.Streams) *cli.Command {
	var params userGetParams
	return &cli.Command{
		Name:    "get",
		Summary: "Show a user and their posts",
		Usage:   "postadmin user get <user-id> [flags]",
		Params:  func() any { params = userGetParams{}; return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			id, err := oneArg(args, "user ID", "postadmin user get <user-id> [flags]")
			if err != nil {
				return err
			}
			env, err := params.Open(streams, logger)
			if err != nil {
				return err
			}
			detail, err := env.Client.Users().Get(ctx, id)
			if err != nil {
				return env.Fail("loading user", err)
			}
			if done, err := params.EmitJSON(streams.Out, detail); done {
				return err
			}

			fmt.Fprintf(streams.Out, "Name:    %s\nEmail:   %s\nRole:    %s\n", detail.Name, detail.Email, detail.Role)
			if len(detail.Posts) == 0 {
				fmt.Fprintln(streams.Out, "\nNo posts available for this user.")
				return nil
			}
			fmt.Fprintf(streams.Out, "\nPosts (%s):\n", itoa(len(detail.Posts)))
			rows := make([][]string, 0, len(detail.Posts))
			for _, post := range detail.Posts {
				rows = append(rows, []string{post.ID, tui.Excerpt(post.Title, 40), tui.Excerpt(post.Content, 60)})
			}
			printTable(streams.Out, []string{"ID", "TITLE", "EXCERPT"}, rows)
			return nil
		},
	}
}

// caller loads the logged-in user, whose role gates the mutations.
func caller(ctx context.Context, env *cli.Environment) (api.User, error) {
	me, err := env.Client.Profile().Me(ctx)
	if err != nil {
		return api.User{}, env.Fail("loading profile", err)
	}
	return me, nil
}

type userCreateParams struct {
	cli.ClientParams
	Name         string `json:"name" flag:"name" desc:"display name (required)"`
	Email        string `json:"email" flag:"email" desc:"login email (required)"`
	Role         string `json:"role" flag:"role" desc:"SuperAdmin, Admin, or User (required)"`
	PasswordFile string `json:"-" flag:"password-file" desc:"file containing the new user's password, or - to prompt (default: prompt)"`
}

func userCreateCommand(streams cli.Streams) *cli.Command {
	var params userCreateParams
	return &cli.Command{
		Name:    "create",
		Summary: "Create a user",
		Description: `Create a user.

The password must have at least 8 characters, including an uppercase
letter, a lowercase letter, and a number.`,
		Usage:  "postadmin user create --name <name> --email <email> --role <role> [flags]",
		Params: func() any { params = userCreateParams{}; return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := noArgs(args); err != nil {
				return err
			}
			env, err := params.Open(streams, logger)
			if err != nil {
				return err
			}
			me, err := caller(ctx, env)
			if err != nil {
				return err
			}
			if !dashboard.CanCreateUser(me.Role) {
				return cli.Forbidden("role %s may not create users", me.Role)
			}

			password, err := cli.ReadPassword(streams, params.PasswordFile)
			if err != nil {
				return err
			}
			defer password.Close()

			form := validate.UserForm{Name: params.Name, Email: params.Email, Password: password.String(), Role: params.Role}
			if err := validate.NewUser(form, me.Role); err != nil {
				return cli.Validation("%w", err)
			}
			result, err := env.Client.Users().Create(ctx, api.UserDraft{
				Name:     form.Name,
				Email:    form.Email,
				Password: form.Password,
				Role:     api.Role(form.Role),
			})
			if err != nil {
				return env.Fail("creating user", err)
			}
			return reportMutation(streams.Out, result, "New user created successfully")
		},
	}
}

type userUpdateParams struct {
	cli.ClientParams
	Name string `json:"name" flag:"name" desc:"new display name (default: unchanged)"`
	Role string `json:"role" flag:"role" desc:"new role (default: unchanged)"`
}

func userUpdateCommand(streams cli.Streams) *cli.Command {
	var params userUpdateParams
	return &cli.Command{
		Name:    "update",
		Summary: "Change a user's name or role",
		Description: `Change a user's name or role. Email and password cannot be changed
here. Only SuperAdmins may update users.`,
		Usage:  "postadmin user update <user-id> [--name <name>] [--role <role>] [flags]",
		Params: func() any { params = userUpdateParams{}; return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			id, err := oneArg(args, "user ID", "postadmin user update <user-id> [flags]")
			if err != nil {
				return err
			}
			if params.Name == "" && params.Role == "" {
				return cli.Validation("nothing to update: pass --name, --role, or both")
			}
			env, err := params.Open(streams, logger)
			if err != nil {
				return err
			}
			me, err := caller(ctx, env)
			if err != nil {
				return err
			}
			if !dashboard.CanEditUser(me.Role) {
				return cli.Forbidden("role %s may not update users", me.Role)
			}

			existing, err := env.Client.Users().Get(ctx, id)
			if err != nil {
				return env.Fail("loading user", err)
			}
			form := validate.UserForm{Name: existing.Name, Role: string(existing.Role)}
			if params.Name != "" {
				form.Name = params.Name
			}
			if params.Role != "" {
				form.Role = params.Role
			}
			if err := validate.EditUser(form, me.Role); err != nil {
				return cli.Validation("%w", err)
			}

			result, err := env.Client.Users().Update(ctx, id, api.UserDraft{Name: form.Name, Role: api.Role(form.Role)})
			if err != nil {
				return env.Fail("updating user", err)
			}
			return reportMutation(streams.Out, result, "User updated successfully")
		},
	}
}

func userDeleteCommand(streams cli.Streams) *cli.Command {
	var params cli.ClientParams
	return &cli.Command{
		Name:    "delete",
		Summary: "Delete a user",
		Usage:   "postadmin user delete <user-id> [flags]",
		Params:  func() any { params = cli.ClientParams{}; return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			id, err := oneArg(args, "user ID", "postadmin user delete <user-id> [flags]")
			if err != nil {
				return err
			}
			env, err := params.Open(streams, logger)
			if err != nil {
				return err
			}
			me, err := caller(ctx, env)
			if err != nil {
				return err
			}
			if !dashboard.CanDeleteUser(me.Role) {
				return cli.Forbidden("role %s may not delete users", me.Role)
			}
			result, err := env.Client.Users().Delete(ctx, id)
			if err != nil {
				return env.Fail("deleting user", err)
			}
			return reportMutation(streams.Out, result, "User deleted")
		},
	}
}
