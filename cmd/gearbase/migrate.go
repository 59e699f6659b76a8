// Copyright (c) 2026 First Light
// Gearbase - inventory & asset management for construction sites
// This source code is licensed under the MIT license found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/firstlight/gearbase/internal/backup"
	"github.com/firstlight/gearbase/internal/db"
	"github.com/firstlight/gearbase/internal/i18n"
)

var (
	migrateToType string
	migrateToDSN  string
)

func init() {
	migrateCmd.Flags().StringVar(&migrateToType, "to-type", "", `Target database type ("sqlite", "postgres", "mysql")`)
	migrateCmd.Flags().StringVar(&migrateToDSN, "to-dsn", "", "Target database DSN")
	_ = migrateCmd.MarkFlagRequired("to-type")
	_ = migrateCmd.MarkFlagRequired("to-dsn")
}

// migrateCmd copies every section from the current database into a fresh
// target database, going through the same export/plan/execute path a
// snapshot restore uses.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy all data into another database",
	Long: `Exports every section from the configured database and restores it
into the target database. The target is migrated to the current schema
first; existing matching records in the target are updated, missing ones
created.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		source := backup.NewCoordinator(db.GetStore())
		snap, err := source.ExportSnapshot(cmd.Context(), nil)
		if err != nil {
			return fmt.Errorf("export from source: %w", err)
		}

		targetStore, err := db.NewStoreFromDSN(migrateToType, migrateToDSN)
		if err != nil {
			return fmt.Errorf("open target database: %w", err)
		}
		defer func() { _ = targetStore.Close() }()

		target := backup.NewCoordinator(targetStore)
		plan, err := target.PlanRestore(cmd.Context(), snap, nil)
		if err != nil {
			return err
		}
		result, err := target.Execute(cmd.Context(), plan, nil)
		if err != nil {
			return err
		}
		if result.Terminal != backup.Success {
			for _, itemErr := range result.Errors {
				fmt.Printf("  %s\n", itemErr.Error())
			}
			return fmt.Errorf("migration finished with state %s (%d failed)", result.Terminal, result.Failed)
		}

		fmt.Println(i18n.T("migrate.done", len(snap.Sections)))
		return nil
	},
}

// maintainCmd runs engine-specific database maintenance.
var maintainCmd = &cobra.Command{
	Use:   "maintain",
	Short: "Run database maintenance (vacuum, optimize)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := db.RunDBMaintenance(appConfig.Database.Type, appConfig.Database.DSN); err != nil {
			return err
		}
		fmt.Println(i18n.T("maintain.done"))
		return nil
	},
}
