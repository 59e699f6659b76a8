// Copyright (c) 2026 First Light
// Gearbase - inventory & asset management for construction sites
// This source code is licensed under the MIT license found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/firstlight/gearbase/internal/backup"
	"github.com/firstlight/gearbase/internal/db"
	"github.com/firstlight/gearbase/internal/i18n"
	"github.com/firstlight/gearbase/internal/logging"
)

var (
	backupOut      string
	backupSections []string
	backupWatch    bool
)

func init() {
	backupCmd.Flags().StringVarP(&backupOut, "out", "o", "", "Output file (default: <backup.dir>/gearbase-<timestamp>.json.zst)")
	backupCmd.Flags().StringSliceVar(&backupSections, "sections", nil, "Sections to export (default: all)")
	backupCmd.Flags().BoolVar(&backupWatch, "watch", false, "Keep running and write a backup daily at the configured time")
}

// backupCmd exports the selected sections into a compressed snapshot file.
var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Export data into a snapshot file",
	Long: `Exports the selected sections (or all of them) into a versioned,
zstd-compressed snapshot file that 'gearbase restore' can apply to any
supported database.

With --watch the command keeps running and writes a full backup every day
at the configured time, pruning snapshots older than the retention window.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		coord := backup.NewCoordinator(db.GetStore())

		if backupWatch {
			return runWatch(cmd, coord)
		}

		snap, err := coord.ExportSnapshot(cmd.Context(), backupSections)
		if err != nil {
			return err
		}

		out := backupOut
		if out == "" {
			name := "gearbase-" + time.Now().Format("20060102-150405") + ".json.zst"
			out = filepath.Join(appConfig.Backup.Dir, name)
		}
		if err := backup.WriteSnapshotFile(out, snap); err != nil {
			return err
		}

		fmt.Println(i18n.T("backup.sections", len(snap.Sections)))
		fmt.Println(i18n.T("backup.written", out))
		return nil
	},
}

// runWatch blocks running the daily backup schedule until interrupted.
func runWatch(cmd *cobra.Command, coord *backup.Coordinator) error {
	dir := appConfig.Backup.Dir
	dailyAt := appConfig.Backup.DailyAt
	retention := appConfig.Backup.RetentionDays

	sched := backup.NewScheduler(coord, dir, dailyAt, retention)
	if err := sched.Start(cmd.Context()); err != nil {
		return err
	}
	fmt.Println(i18n.T("backup.watch.started", dailyAt, retention))

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	select {
	case <-sig:
	case <-cmd.Context().Done():
	}
	sched.Stop()
	logging.Infof("scheduler stopped")
	return nil
}
