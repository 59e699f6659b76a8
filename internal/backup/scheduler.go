// Copyright (c) 2026 First Light
// Gearbase - inventory & asset management for construction sites
// This source code is licensed under the MIT license found in the LICENSE file.

package backup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/firstlight/gearbase/internal/logging"
)

// snapshotFilePrefix and suffix shape the names the scheduler writes and
// the ones retention pruning is allowed to delete.
const (
	snapshotFilePrefix = "gearbase-"
	snapshotFileSuffix = ".json.zst"
)

// Scheduler writes a full snapshot once a day at a fixed local time and
// prunes old snapshot files past the retention window.
type Scheduler struct {
	coord         *Coordinator
	dir           string
	dailyAt       string
	retentionDays int

	stop chan struct{}
	done chan struct{}
}

func NewScheduler(coord *Coordinator, dir, dailyAt string, retentionDays int) *Scheduler {
	return &Scheduler{
		coord:         coord,
		dir:           dir,
		dailyAt:       dailyAt,
		retentionDays: retentionDays,
		stop:          make(chan struct{}),
		done:          make(chan struct{}),
	}
}

// Start runs the schedule loop until Stop is called or ctx is done.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := parseDailyAt(s.dailyAt); err != nil {
		return err
	}
	go s.loop(ctx)
	return nil
}

// Stop ends the schedule loop and waits for it to exit.
func (s *Scheduler) Stop() {
	close(s.stop)
	<-s.done
}

func (s *Scheduler) loop(ctx context.Context) {
	defer close(s.done)
	for {
		next := nextRunAfter(time.Now(), s.dailyAt)
		logging.Infof("next scheduled backup at %s", next.Format("2006-01-02 15:04"))
		timer := time.NewTimer(time.Until(next))
		select {
		case <-timer.C:
			s.runOnce(ctx)
		case <-s.stop:
			timer.Stop()
			return
		case <-ctx.Done():
			timer.Stop()
			return
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	name := snapshotFilePrefix + time.Now().Format("20060102-150405") + snapshotFileSuffix
	path := filepath.Join(s.dir, name)

	snap, err := s.coord.ExportSnapshot(ctx, nil)
	if err != nil {
		logging.Errorf("scheduled backup failed: %v", err)
		return
	}
	if err := WriteSnapshotFile(path, snap); err != nil {
		logging.Errorf("scheduled backup write failed: %v", err)
		return
	}
	logging.Infof("scheduled backup written to %s", path)

	if removed, err := PruneSnapshots(s.dir, s.retentionDays, time.Now()); err != nil {
		logging.Warnf("snapshot pruning failed: %v", err)
	} else if removed > 0 {
		logging.Infof("pruned %d snapshot(s) older than %d days", removed, s.retentionDays)
	}
}

// PruneSnapshots deletes scheduler-written snapshot files in dir whose
// modification time is older than retentionDays before now. Files that do
// not match the scheduler's naming pattern are never touched. A
// non-positive retention disables pruning.
func PruneSnapshots(dir string, retentionDays int, now time.Time) (int, error) {
	if retentionDays <= 0 {
		return 0, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("read backup dir: %w", err)
	}

	cutoff := now.AddDate(0, 0, -retentionDays)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, snapshotFilePrefix) || !strings.HasSuffix(name, snapshotFileSuffix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(dir, name)); err != nil {
				logging.Warnf("could not prune %s: %v", name, err)
				continue
			}
			removed++
		}
	}
	return removed, nil
}

// parseDailyAt validates an HH:MM wall-clock time.
func parseDailyAt(at string) (time.Time, error) {
	t, err := time.Parse("15:04", at)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid daily backup time %q, want HH:MM: %w", at, err)
	}
	return t, nil
}

// nextRunAfter returns the next wall-clock occurrence of at (HH:MM, local
// time) strictly after now.
func nextRunAfter(now time.Time, at string) time.Time {
	parsed, err := parseDailyAt(at)
	if err != nil {
		parsed, _ = time.Parse("15:04", "17:00")
	}
	next := time.Date(now.Year(), now.Month(), now.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
