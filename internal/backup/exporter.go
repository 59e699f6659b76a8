// Copyright (c) 2026 First Light
// Gearbase - inventory & asset management for construction sites
// This source code is licensed under the MIT license found in the LICENSE file.

package backup

import (
	"context"
	"fmt"
	"time"

	"github.com/firstlight/gearbase/internal/logging"
	"github.com/firstlight/gearbase/internal/model"
)

// AppName tags exported snapshots so a restore can tell where a file
// came from.
const AppName = "gearbase"

// ExportSnapshot reads the requested sections out of src and assembles a
// snapshot. An empty names list exports everything. Unknown section names
// are logged and skipped rather than failing the whole export; a read error
// on a known section aborts the export.
func ExportSnapshot(ctx context.Context, src DataSource, names []string) (*model.Snapshot, error) {
	selected, err := resolveSections(names)
	if err != nil {
		return nil, err
	}

	snap := &model.Snapshot{
		FormatVersion: model.SnapshotFormatVersion,
		CreatedAt:     time.Now().UTC(),
		AppName:       AppName,
		Sections:      make(map[model.Section][]model.Record, len(selected)),
	}

	for _, entry := range registry {
		if !selected[entry.Name] {
			continue
		}
		records, err := src.ListAll(ctx, entry.Name)
		if err != nil {
			return nil, fmt.Errorf("export %s: %w", entry.Name, err)
		}
		if records == nil {
			records = []model.Record{}
		}
		snap.Sections[entry.Name] = records
	}

	return snap, nil
}

// resolveSections maps user-supplied section names onto the registry. A nil
// or empty list selects every section.
func resolveSections(names []string) (map[model.Section]bool, error) {
	selected := make(map[model.Section]bool, len(registry))
	if len(names) == 0 {
		for _, entry := range registry {
			selected[entry.Name] = true
		}
		return selected, nil
	}
	for _, name := range names {
		entry, ok := LookupSection(model.Section(name))
		if !ok {
			// Snapshots from older installs use snake_case names.
			entry, ok = LookupSection(model.Section(snakeToCamel(name)))
		}
		if !ok {
			logging.Warnf("ignoring unknown section %q", name)
			continue
		}
		selected[entry.Name] = true
	}
	if len(selected) == 0 {
		return nil, fmt.Errorf("no valid sections selected")
	}
	return selected, nil
}
