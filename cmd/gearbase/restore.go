// Copyright (c) 2026 First Light
// Gearbase - inventory & asset management for construction sites
// This source code is licensed under the MIT license found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/firstlight/gearbase/internal/backup"
	"github.com/firstlight/gearbase/internal/db"
	"github.com/firstlight/gearbase/internal/i18n"
	"github.com/firstlight/gearbase/internal/logging"
)

var (
	restoreSections []string
	restoreDryRun   bool
	restoreDBFile   bool
)

func init() {
	restoreCmd.Flags().StringSliceVar(&restoreSections, "sections", nil, "Sections to restore (default: all present in the snapshot)")
	restoreCmd.Flags().BoolVar(&restoreDryRun, "dry-run", false, "Plan the restore but apply nothing")
	restoreCmd.Flags().BoolVar(&restoreDBFile, "db", false, "Treat the file as a raw SQLite database and swap it in whole")
}

// restoreCmd applies a snapshot file to the live database.
var restoreCmd = &cobra.Command{
	Use:   "restore <file>",
	Short: "Restore data from a snapshot file",
	Long: `Loads a snapshot file, diffs it against the live database and applies
the missing and changed records section by section. Records that fail to
apply are reported at the end; they never abort the rest of the run.

With --db the file is treated as a raw SQLite database and swapped in
whole; the application must be restarted afterwards.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read snapshot: %w", err)
		}

		coord := backup.NewCoordinator(db.GetStore())

		if restoreDBFile {
			return runDBFileRestore(coord, raw)
		}

		snap, available, err := coord.LoadSnapshot(raw)
		if err != nil {
			return err
		}
		fmt.Println(i18n.T("restore.loaded", snap.FormatVersion, len(available)))

		plan, err := coord.PlanRestore(cmd.Context(), snap, restoreSections)
		if err != nil {
			return err
		}
		fmt.Println(i18n.T("restore.planned", len(plan.Operations), plan.Skipped))

		if restoreDryRun {
			for _, op := range plan.Operations {
				fmt.Printf("  %s %s %s\n", op.Kind, op.Section, op.Identity)
			}
			fmt.Println(i18n.T("restore.dry_run"))
			return nil
		}

		// Ctrl-C stops the run after the current record instead of killing
		// the process mid-write.
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt)
		defer signal.Stop(sig)
		go func() {
			if _, ok := <-sig; ok {
				coord.Cancel()
			}
		}()

		result, err := coord.Execute(cmd.Context(), plan, restoreProgress)
		if err != nil {
			return localizedRestoreError(err)
		}

		fmt.Println(i18n.T("restore.done", result.Terminal, result.Completed, result.Failed, result.Skipped))
		if result.Cancelled {
			fmt.Println(i18n.T("restore.cancelled"))
		}
		for _, itemErr := range result.Errors {
			fmt.Printf("  %s\n", itemErr.Error())
		}
		if result.Terminal == backup.Failure {
			return fmt.Errorf("restore failed")
		}
		return nil
	},
}

// localizedRestoreError swaps the run-guard sentinel for its translated
// message; any other error passes through for Cobra to print.
func localizedRestoreError(err error) error {
	if errors.Is(err, backup.ErrAlreadyInProgress) {
		return errors.New(i18n.T("restore.in_progress"))
	}
	return err
}

func restoreProgress(ev backup.Event) {
	if ev.Kind != backup.EventOperationCompleted {
		return
	}
	if ev.Err != nil {
		logging.Warnf("%s %s %s failed: %v", ev.Operation, ev.Section, ev.Identity, ev.Err)
		return
	}
	logging.Debugf("%s %s %s (%d/%d)", ev.Operation, ev.Section, ev.Identity, ev.Completed+ev.Failed, ev.Total)
}

func runDBFileRestore(coord *backup.Coordinator, raw []byte) error {
	if appConfig.Database.Type != "sqlite" {
		return fmt.Errorf("--db restore is only supported for sqlite databases")
	}
	target := appConfig.Database.DSN
	// Release the open handle so the swapped file is picked up cleanly on
	// the next start.
	if err := db.CloseDB(); err != nil {
		logging.Warnf("closing database before swap: %v", err)
	}
	if _, err := coord.ReplaceDatabaseFile(target, raw); err != nil {
		return localizedRestoreError(err)
	}
	fmt.Println(i18n.T("restore.restart"))
	return nil
}

// sectionsCmd lists the known sections in restore order.
var sectionsCmd = &cobra.Command{
	Use:   "sections",
	Short: "List restorable data sections",
	Run: func(cmd *cobra.Command, args []string) {
		coord := backup.NewCoordinator(db.GetStore())
		fmt.Println(i18n.T("sections.header"))
		for _, info := range coord.ListSections() {
			line := "  " + string(info.Name)
			if len(info.DependsOn) > 0 {
				line += fmt.Sprintf("  (after %v)", info.DependsOn)
			}
			if info.Singleton {
				line += "  [singleton]"
			}
			fmt.Println(line)
		}
	},
}
