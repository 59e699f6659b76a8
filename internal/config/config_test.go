// Copyright (c) 2026 First Light
// Gearbase - inventory & asset management for construction sites
// This source code is licensed under the MIT license found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	t.Chdir(t.TempDir())

	c, err := LoadConfig(cmd, "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Database.Type != "sqlite" || c.Database.DSN != "gearbase.db" {
		t.Errorf("database defaults = %+v", c.Database)
	}
	if c.Language != "en" {
		t.Errorf("language = %q", c.Language)
	}
	if c.Backup.RetentionDays != 30 || c.Backup.DailyAt != "17:00" || c.Backup.Dir != "backups" {
		t.Errorf("backup defaults = %+v", c.Backup)
	}
}

func TestLoadConfig_ExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	content := `database:
  type: postgres
  dsn: "host=db user=gearbase dbname=gearbase"
language: de
backup:
  retention_days: 7
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cmd := &cobra.Command{Use: "test"}
	c, err := LoadConfig(cmd, path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Database.Type != "postgres" {
		t.Errorf("database.type = %q", c.Database.Type)
	}
	if c.Language != "de" {
		t.Errorf("language = %q", c.Language)
	}
	if c.Backup.RetentionDays != 7 {
		t.Errorf("retention = %d", c.Backup.RetentionDays)
	}
	// Unset keys fall back to defaults.
	if c.Backup.DailyAt != "17:00" {
		t.Errorf("daily_at = %q", c.Backup.DailyAt)
	}
}

func TestLoadConfig_FlagOverride(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("db-type", "sqlite", "")
	cmd.Flags().String("db-dsn", "gearbase.db", "")
	if err := cmd.Flags().Set("db-type", "mysql"); err != nil {
		t.Fatal(err)
	}
	t.Chdir(t.TempDir())

	c, err := LoadConfig(cmd, "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Database.Type != "mysql" {
		t.Errorf("flag override ignored, database.type = %q", c.Database.Type)
	}
	if c.Database.DSN != "gearbase.db" {
		t.Errorf("unchanged flag clobbered dsn = %q", c.Database.DSN)
	}
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	t.Chdir(t.TempDir())
	t.Setenv("GEARBASE_LANGUAGE", "de")

	c, err := LoadConfig(cmd, "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Language != "de" {
		t.Errorf("env override ignored, language = %q", c.Language)
	}
}
