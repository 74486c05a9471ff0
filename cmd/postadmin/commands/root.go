// Copyright 2026 The Postapp Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands assembles the postadmin command tree.
package commands

import (
	"github.com/FahadRazzaq1121/postapp/cmd/postadmin/cli"
)

// Root returns the top-level postadmin command wired to streams.
func Root(streams cli.Streams) *cli.Command {
	root := &cli.Command{
		Name:    "postadmin",
		Summary: "Administer posts and users",
		Description: `postadmin manages the posts and users of a post/user admin backend.

Run "postadmin dashboard" for the interactive terminal UI, or use the
post and user subcommands from scripts. Log in once with "postadmin
login"; the token is cached per backend until it expires or the backend
rejects it.

Exit status is 0 on success, 1 on error, and 2 when the session is
missing or rejected.`,
		Subcommands: []*cli.Command{
			loginCommand(streams),
			logoutCommand(streams),
			whoamiCommand(streams),
			dashboardCommand(streams),
			postCommand(streams),
			userCommand(streams),
			versionCommand(streams),
		},
	}
	root.SetStreams(streams)
	return root
}
