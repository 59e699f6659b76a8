// Copyright (c) 2026 First Light
// Gearbase - inventory & asset management for construction sites
// This source code is licensed under the MIT license found in the LICENSE file.

package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/firstlight/gearbase/internal/logging"
)

// ReplaceDatabaseFile swaps the sqlite database file at targetPath with the
// supplied raw bytes. This is the whole-file restore path for snapshots
// taken with the full database option; the process must reopen the database
// afterwards, which the result's RequiresRestart flag signals.
//
// The replacement takes the restore run slot, writes next to the target and
// renames over it, so a crash mid-restore leaves the old file intact.
func (c *Coordinator) ReplaceDatabaseFile(targetPath string, raw []byte) (Result, error) {
	runID := uuid.NewString()
	if err := c.beginRestore(runID); err != nil {
		return Result{}, err
	}
	defer c.endRestore(runID)

	started := time.Now()
	result := Result{
		RunID:           runID,
		Started:         started,
		TotalPlanned:    1,
		RequiresRestart: true,
	}

	if err := replaceFile(targetPath, raw); err != nil {
		result.Failed = 1
		result.Errors = []ItemError{{Section: "database", Identity: targetPath, Message: err.Error()}}
		result.Terminal = Failure
		result.Elapsed = time.Since(started)
		return result, err
	}

	result.Completed = 1
	result.Terminal = Success
	result.Elapsed = time.Since(started)
	logging.Infof("database file %s replaced, restart required", targetPath)
	return result, nil
}

func replaceFile(targetPath string, raw []byte) error {
	dir := filepath.Dir(targetPath)
	tmp, err := os.CreateTemp(dir, ".gearbase-db-*")
	if err != nil {
		return fmt.Errorf("stage database file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write database file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close database file: %w", err)
	}
	if err := os.Rename(tmpName, targetPath); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("swap database file: %w", err)
	}
	return nil
}
