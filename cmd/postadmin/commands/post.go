// Copyright 2026 The Postapp Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/FahadRazzaq1121/postapp/cmd/postadmin/cli"
	"github.com/FahadRazzaq1121/postapp/lib/api"
	"github.com/FahadRazzaq1121/postapp/lib/tui"
	"github.com/FahadRazzaq1121/postapp/lib/validate"
)

func postCommand(streams cli.Streams) *cli.Command {
	return &cli.Command{
		Name:    "post",
		Summary: "List, create, and delete posts",
		Subcommands: []*cli.Command{
			postListCommand(streams),
			postCreateCommand(streams),
			postDeleteCommand(streams),
		},
	}
}

func postListCommand(streams cli.Streams) *cli.Command {
	var params listParams
	return &cli.Command{
		Name:    "list",
		Summary: "List posts, ten per page",
		Usage:   "postadmin post list [flags]",
		Examples: []cli.Example{
			{Description: "Second page of posts whose title mentions release", Command: "postadmin post list --search release --page 2"},
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
			page, err := env.Client.Posts().List(ctx, query)
			if err != nil {
				return env.Fail("listing posts", err)
			}

			result := newListResult(query, page, "posts")
			if done, err := params.EmitJSON(streams.Out, result); done {
				return err
			}
			rows := make([][]string, 0, len(result.Records))
			for _, post := range result.Records {
				rows = append(rows, []string{post.ID, tui.Excerpt(post.Title, 40), post.Author.Name})
			}
			printTable(streams.Out, []string{"ID", "TITLE", "AUTHOR"}, rows)
			fmt.Fprintln(streams.Out, result.Label)
			return nil
		},
	}
}

type postCreateParams struct {
	cli.ClientParams
	Title       string `json:"title" flag:"title" desc:"post title (required)"`
	Content     string `json:"content" flag:"content" desc:"post body, Markdown"`
	ContentFile string `json:"content_file" flag:"content-file" desc:"read the post body from a file, or - for stdin"`
	Image       string `json:"image" flag:"image" desc:"image file to attach"`
}

func postCreateCommand(streams cli.Streams) *cli.Command {
	var params postCreateParams
	return &cli.Command{
		Name:    "create",
		Summary: "Create a post",
		Usage:   "postadmin post create --title <title> [flags]",
		Examples: []cli.Example{
			{Description: "Publish release notes with a screenshot", Command: "postadmin post create --title 'Release 2.1' --content-file notes.md --image shot.png"},
		},
		Params: func() any { params = postCreateParams{}; return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := noArgs(args); err != nil {
				return err
			}
			content := params.Content
			if params.ContentFile != "" {
				if params.Content != "" {
					return cli.Validation("--content and --content-file are mutually exclusive")
				}
				data, err := readContent(streams, params.ContentFile)
				if err != nil {
					return err
				}
				content = data
			}
			form := validate.PostForm{Title: params.Title, Content: content, ImagePath: params.Image}
			if err := validate.Post(form); err != nil {
				return cli.Validation("%w", err)
			}

			env, err := params.Open(streams, logger)
			if err != nil {
				return err
			}
			draft := api.PostDraft{Title: form.Title, Content: form.Content}
			if form.ImagePath != "" {
				upload, file, err := api.OpenImage(form.ImagePath)
				if err != nil {
					if errors.Is(err, api.ErrNotImage) {
						return cli.Validation("%w", err)
					}
					return cli.Internal("%w", err)
				}
				defer file.Close()
				draft.Image = upload
			}

			result, err := env.Client.Posts().Create(ctx, draft)
			if err != nil {
				return env.Fail("creating post", err)
			}
			return reportMutation(streams.Out, result, "Post created")
		},
	}
}

func readContent(streams cli.Streams, path string) (string, error) {
	if path == "-" {
		if streams.In == nil {
			return "", cli.Validation("no stdin to read --content-file - from")
		}
		data, err := io.ReadAll(streams.In)
		if err != nil {
			return "", cli.Internal("reading post body from stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", cli.Validation("reading --content-file: %w", err)
	}
	return string(data), nil
}

func postDeleteCommand(streams cli.Streams) *cli.Command {
	var params cli.ClientParams
	return &cli.Command{
		Name:    "delete",
		Summary: "Delete a post",
		Usage:   "postadmin post delete <post-id> [flags]",
		Params:  func() any { params = cli.ClientParams{}; return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			id, err := oneArg(args, "post ID", "postadmin post delete <post-id> [flags]")
			if err != nil {
				return err
			}
			env, err := params.Open(streams, logger)
			if err != nil {
				return err
			}
			result, err := env.Client.Posts().Delete(ctx, id)
			if err != nil {
				return env.Fail("deleting post", err)
			}
			return reportMutation(streams.Out, result, "Post deleted")
		},
	}
}
