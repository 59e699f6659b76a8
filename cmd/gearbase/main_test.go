// Copyright (c) 2026 First Light
// Gearbase - inventory & asset management for construction sites
// This source code is licensed under the MIT license found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/firstlight/gearbase/internal/backup"
	"github.com/firstlight/gearbase/internal/i18n"
)

func TestNewRootCmd_Wiring(t *testing.T) {
	cmd := newRootCmd()

	want := map[string]bool{
		"backup":   false,
		"restore":  false,
		"sections": false,
		"migrate":  false,
		"maintain": false,
		"user":     false,
		"config":   false,
	}
	for _, sub := range cmd.Commands() {
		if _, ok := want[sub.Name()]; ok {
			want[sub.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}

	for _, flag := range []string{"config", "db-type", "db-dsn", "lang", "debug"} {
		if cmd.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("persistent flag %q not defined", flag)
		}
	}
}

func TestLocalizedRestoreError(t *testing.T) {
	i18n.Init("en")

	got := localizedRestoreError(backup.ErrAlreadyInProgress)
	if got == nil || got.Error() != i18n.T("restore.in_progress") {
		t.Errorf("run-guard error not localized: %v", got)
	}
	wrapped := fmt.Errorf("execute: %w", backup.ErrAlreadyInProgress)
	if got := localizedRestoreError(wrapped); got.Error() != i18n.T("restore.in_progress") {
		t.Errorf("wrapped run-guard error not localized: %v", got)
	}

	other := errors.New("disk full")
	if got := localizedRestoreError(other); got != other {
		t.Errorf("unrelated error rewritten: %v", got)
	}
}

func TestUserCmd_HasAddSubcommand(t *testing.T) {
	found := false
	for _, sub := range userCmd.Commands() {
		if sub.Name() == "add" {
			found = true
		}
	}
	if !found {
		t.Error("user add subcommand not registered")
	}
}
