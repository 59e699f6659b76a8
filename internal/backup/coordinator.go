// Copyright (c) 2026 First Light
// Gearbase - inventory & asset management for construction sites
// This source code is licensed under the MIT license found in the LICENSE file.

// Package backup coordinates snapshot export and restore for the gearbase
// store. Exports serialize every section into a compressed snapshot file;
// a restore loads such a file, diffs it against the live store, and applies
// the resulting plan record by record. At most one restore runs at a time,
// and a restore never starts while an export is reading.
package backup

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/firstlight/gearbase/internal/logging"
	"github.com/firstlight/gearbase/internal/model"
)

// DefaultSoftCeiling is how long a restore may run before its result is
// flagged as overtime. The run is never aborted for exceeding it.
const DefaultSoftCeiling = 15 * time.Minute

// Coordinator owns the backup and restore lifecycle for one store.
type Coordinator struct {
	src     DataSource
	ceiling time.Duration

	mu         sync.Mutex
	restoreRun string
	exports    int
	cancelled  atomic.Bool
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithSoftCeiling overrides the overtime threshold. Zero disables it.
func WithSoftCeiling(d time.Duration) Option {
	return func(c *Coordinator) { c.ceiling = d }
}

func NewCoordinator(src DataSource, opts ...Option) *Coordinator {
	c := &Coordinator{src: src, ceiling: DefaultSoftCeiling}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SectionInfo describes one restorable section for listings and help text.
type SectionInfo struct {
	Name      model.Section
	DependsOn []model.Section
	Singleton bool
}

// ListSections reports every known section in restore order.
func (c *Coordinator) ListSections() []SectionInfo {
	infos := make([]SectionInfo, 0, len(registry))
	for _, entry := range registry {
		infos = append(infos, SectionInfo{
			Name:      entry.Name,
			DependsOn: entry.DependsOn,
			Singleton: entry.Singleton,
		})
	}
	return infos
}

// ExportSnapshot reads the selected sections into a snapshot. Exports may
// overlap each other but not a running restore.
func (c *Coordinator) ExportSnapshot(ctx context.Context, names []string) (*model.Snapshot, error) {
	if err := c.beginExport(); err != nil {
		return nil, err
	}
	defer c.endExport()
	return ExportSnapshot(ctx, c.src, names)
}

// LoadSnapshot parses raw snapshot bytes without touching the store.
func (c *Coordinator) LoadSnapshot(raw []byte) (*model.Snapshot, []model.Section, error) {
	return LoadSnapshot(raw)
}

// PlanRestore diffs a loaded snapshot against the store. Planning only
// reads, so it needs no run slot.
func (c *Coordinator) PlanRestore(ctx context.Context, snap *model.Snapshot, names []string) (*Plan, error) {
	return PlanRestore(ctx, c.src, snap, names)
}

// Execute applies a plan as a restore run. It fails with
// ErrAlreadyInProgress when another restore or any export is active.
// progress may be nil.
func (c *Coordinator) Execute(ctx context.Context, plan *Plan, progress ProgressFunc) (Result, error) {
	runID := uuid.NewString()
	if err := c.beginRestore(runID); err != nil {
		return Result{}, err
	}
	defer c.endRestore(runID)

	logging.Infof("restore %s started, %d operations planned, %d records already current",
		runID, len(plan.Operations), plan.Skipped)

	rep := newReporter(runID, plan, progress, c.ceiling)
	result := executeRun(ctx, c.src, plan, rep, &c.cancelled)

	logging.Infof("restore %s finished: %s, %d completed, %d failed, %d skipped in %s",
		runID, result.Terminal, result.Completed, result.Failed, result.Skipped,
		result.Elapsed.Round(time.Millisecond))
	if result.Overtime {
		logging.Warnf("restore %s ran %s, over the %s ceiling", runID, result.Elapsed.Round(time.Second), c.ceiling)
	}
	return result, nil
}

// Cancel requests that the active restore stop after its current operation.
// It reports whether a restore was running.
func (c *Coordinator) Cancel() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.restoreRun == "" {
		return false
	}
	c.cancelled.Store(true)
	return true
}

func (c *Coordinator) beginRestore(runID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.restoreRun != "" || c.exports > 0 {
		return ErrAlreadyInProgress
	}
	c.restoreRun = runID
	c.cancelled.Store(false)
	return nil
}

func (c *Coordinator) endRestore(runID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.restoreRun == runID {
		c.restoreRun = ""
	}
}

func (c *Coordinator) beginExport() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.restoreRun != "" {
		return ErrAlreadyInProgress
	}
	c.exports++
	return nil
}

func (c *Coordinator) endExport() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.exports > 0 {
		c.exports--
	}
}
