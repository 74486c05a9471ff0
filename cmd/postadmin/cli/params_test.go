// Copyright 2026 The Postapp Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func TestBindFlags_TypesAndDefaults(t *testing.T) {
	type params struct {
		Name    string        `flag:"name,n" default:"ada"`
		Force   bool          `flag:"force" default:"true"`
		Page    int           `flag:"page" default:"2"`
		Timeout time.Duration `flag:"timeout" default:"5s"`
		Roles   []string      `flag:"roles" default:"Admin,User"`
		Ignored string
	}
	var got params
	flagSet := FlagsFromParams("test", &got)
	if err := flagSet.Parse(nil); err != nil {
		t.Fatal(err)
	}
	if got.Name != "ada" || !got.Force || got.Page != 2 || got.Timeout != 5*time.Second ||
		strings.Join(got.Roles, ",") != "Admin,User" {
		t.Errorf("defaults = %+v", got)
	}
	if flagSet.Lookup("ignored") != nil {
		t.Error("untagged field was bound")
	}

	if err := flagSet.Parse([]string{"-n", "grace", "--force=false", "--page", "7"}); err != nil {
		t.Fatal(err)
	}
	if got.Name != "grace" || got.Force || got.Page != 7 {
		t.Errorf("parsed = %+v", got)
	}
}

func TestBindFlags_FlagBinder(t *testing.T) {
	type params struct {
		ClientParams
		JSONOutput
		Tab string `flag:"tab"`
	}
	var got params
	flagSet := FlagsFromParams("test", &got)
	for _, name := range []string{"config", "api-url", "json", "tab"} {
		if flagSet.Lookup(name) == nil {
			t.Errorf("flag --%s not bound", name)
		}
	}

	var bare ClientParams
	if FlagsFromParams("bare", &bare).Lookup("api-url") == nil {
		t.Error("ClientParams as the params struct should bind its own flags")
	}
}

func TestBindFlags_RejectsBadInput(t *testing.T) {
	if err := BindFlags(struct{}{}, pflag.NewFlagSet("x", pflag.ContinueOnError)); err == nil {
		t.Error("non-pointer params accepted")
	}
	type params struct {
		Ratio float32 `flag:"ratio"`
	}
	if err := BindFlags(&params{}, pflag.NewFlagSet("x", pflag.ContinueOnError)); err == nil {
		t.Error("unsupported type accepted")
	}
}
