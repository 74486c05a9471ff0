// Copyright 2026 The Postapp Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/FahadRazzaq1121/postapp/cmd/postadmin/cli"
	"github.com/FahadRazzaq1121/postapp/lib/version"
)

type versionParams struct {
	cli.JSONOutput
}

func versionCommand(streams cli.Streams) *cli.Command {
	var params versionParams
	return &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Params:  func() any { params = versionParams{}; return &params },
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			if err := noArgs(args); err != nil {
				return err
			}
			if done, err := params.EmitJSON(streams.Out, map[string]string{
				"version":    version.Version,
				"commit":     version.GitCommit,
				"build_time": version.BuildTime,
			}); done {
				return err
			}
			fmt.Fprintf(streams.Out, "postadmin %s\n", version.Full())
			return nil
		},
	}
}
