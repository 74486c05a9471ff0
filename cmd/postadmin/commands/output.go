// Copyright 2026 The Postapp Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/FahadRazzaq1121/postapp/cmd/postadmin/cli"
	"github.com/FahadRazzaq1121/postapp/lib/api"
	"github.com/FahadRazzaq1121/postapp/lib/listview"
)

// listParams are the flags shared by the list subcommands.
type listParams struct {
	cli.ClientParams
	cli.JSONOutput
	Page   int    `json:"page" flag:"page" desc:"page number, starting at 1" default:"1"`
	Search string `json:"search" flag:"search" desc:"filter text"`
}

func (p *listParams) query() (api.ListQuery, error) {
	if p.Page < 1 {
		return api.ListQuery{}, cli.Validation("--page must be at least 1, got %d", p.Page)
	}
	return api.ListQuery{Page: p.Page, Limit: listview.PageSize, Search: strings.TrimSpace(p.Search)}, nil
}

// listResult is the --json shape of a list subcommand.
type listResult[T any] struct {
	Page    int    `json:"page"`
	Total   int    `json:"total"`
	Label   string `json:"label"`
	Records []T    `json:"records"`
}

func newListResult[T any](query api.ListQuery, page api.Page[T], noun string) listResult[T] {
	records := page.Records
	if records == nil {
		records = []T{}
	}
	return listResult[T]{
		Page:    query.Page,
		Total:   page.TotalCount,
		Label:   listview.Paginate(query.Page, query.Limit, page.TotalCount).Label(noun),
		Records: records,
	}
}

// printTable writes tab-aligned rows under header.
func printTable(w io.Writer, header []string, rows [][]string) {
	tw := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	tw.Flush()
}

// reportMutation prints the server's acknowledgement, or fails when
// the server declined the change.
func reportMutation(w io.Writer, result api.MutationResult, fallback string) error {
	if !result.Success {
		message := result.Message
		if message == "" {
			message = "the server did not apply the change"
		}
		return cli.Validation("%s", message)
	}
	notice := result.Message
	if notice == "" {
		notice = fallback
	}
	fmt.Fprintln(w, notice)
	return nil
}

func oneArg(args []string, what, usage string) (string, error) {
	if len(args) == 0 {
		return "", cli.Validation("%s is required\n\nUsage: %s", what, usage)
	}
	if len(args) > 1 {
		return "", cli.Validation("unexpected argument: %s", args[1])
	}
	return args[0], nil
}

func noArgs(args []string) error {
	if len(args) > 0 {
		return cli.Validation("unexpected argument: %s", args[0])
	}
	return nil
}

func itoa(value int) string { return strconv.Itoa(value) }
