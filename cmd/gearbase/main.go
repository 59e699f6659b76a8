// Copyright (c) 2026 First Light
// Gearbase - inventory & asset management for construction sites
// This source code is licensed under the MIT license found in the LICENSE file.

// main.go sets up the command-line interface for Gearbase using the Cobra
// library. It defines the root command, subcommands (backup, restore,
// sections, migrate, maintain, user), flags, and the entry point.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/firstlight/gearbase/internal/config"
	"github.com/firstlight/gearbase/internal/db"
	"github.com/firstlight/gearbase/internal/i18n"
	"github.com/firstlight/gearbase/internal/logging"
)

var version = "dev" // this will be set by the linker
var cfgFile string

// appConfig holds the merged configuration (defaults, file, env, flags).
// PersistentPreRunE fills it before any subcommand runs.
var appConfig config.Config

// main is the entry point of the application.
func main() {
	if err := rootCmd.Execute(); err != nil {
		// The error is already printed by Cobra on failure.
		os.Exit(1)
	}
}

var rootCmd *cobra.Command

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd = newRootCmd()
}

// newRootCmd creates and configures a new root cobra command. Tests create
// fresh instances through this function for isolation.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gearbase",
		Short: "Gearbase tracks tools, consumables and vehicles across construction sites.",
		Long: `Gearbase is the data backbone for site inventory: assets, waybills,
checkouts and stock movements live in one database. This tool manages
that database: it exports versioned backups, restores them record by
record, migrates between database engines and runs maintenance.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.LoadConfig(cmd, cfgFile)
			if err != nil {
				return fmt.Errorf("config load failed: %w", err)
			}
			appConfig = c
			i18n.Init(c.Language)
			logging.SetDebug(c.Debug)
			db.SetDebug(c.Debug)
			if err := db.InitDB(c.Database.Type, c.Database.DSN); err != nil {
				return fmt.Errorf("database init failed: %w", err)
			}
			return nil
		},
	}

	cmd.AddCommand(backupCmd)
	cmd.AddCommand(restoreCmd)
	cmd.AddCommand(sectionsCmd)
	cmd.AddCommand(migrateCmd)
	cmd.AddCommand(maintainCmd)
	cmd.AddCommand(userCmd)
	cmd.AddCommand(configCmd)

	cmd.Version = version

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is gearbase.yaml in the config dir or current dir)")
	cmd.PersistentFlags().String("db-type", "sqlite", `Database type ("sqlite", "postgres", "mysql")`)
	cmd.PersistentFlags().String("db-dsn", "gearbase.db", "Database connection string (DSN)")
	cmd.PersistentFlags().String("lang", "en", `Output language ("en", "de")`)
	cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")

	return cmd
}

// initConfig reads the configuration file and environment variables. When
// no config file exists, a commented default is written to the current
// directory so configuration is discoverable.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("gearbase")
	}

	viper.SetEnvPrefix("GEARBASE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && cfgFile == "" {
			const defaultConfigPath = "gearbase.yaml"
			defaultContent := `# Gearbase configuration file.
# This file is automatically generated with default values.

database:
  # The type of database to use. Supported values: "sqlite", "postgres", "mysql".
  type: sqlite

  # The Data Source Name (DSN) for the database connection.
  # For SQLite, this is the path to the database file.
  dsn: gearbase.db

# The output language. Supported: "en", "de".
language: en

backup:
  # Directory that scheduled and default backups are written to.
  dir: backups

  # Scheduled backups older than this many days are deleted. 0 disables pruning.
  retention_days: 30

  # Local wall-clock time for the daily scheduled backup (HH:MM).
  daily_at: "17:00"

# Example PostgreSQL configuration:
# database:
#   type: postgres
#   dsn: "host=localhost user=gearbase password=secret dbname=gearbase port=5432 sslmode=disable"

# Example MySQL configuration:
# database:
#   type: mysql
#   dsn: "gearbase:password@tcp(127.0.0.1:3306)/gearbase?parseTime=true"
`
			// A write failure here is not fatal; defaults still apply in memory.
			if err := os.WriteFile(defaultConfigPath, []byte(defaultContent), 0644); err == nil {
				fmt.Println("No config file found. Created a default 'gearbase.yaml' in the current directory.")
			}
		}
	}
}
