// Copyright (c) 2026 First Light
// Gearbase - inventory & asset management for construction sites
// This source code is licensed under the MIT license found in the LICENSE file.

package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/firstlight/gearbase/internal/logging"
	"github.com/firstlight/gearbase/internal/model"
)

// OpKind says whether an operation inserts a new record or overwrites an
// existing one.
type OpKind int

const (
	OpCreate OpKind = iota
	OpUpdate
)

func (k OpKind) String() string {
	switch k {
	case OpCreate:
		return "create"
	case OpUpdate:
		return "update"
	default:
		return "unknown"
	}
}

// Operation is one pending write against the live store.
type Operation struct {
	Section  model.Section
	Identity string
	Kind     OpKind
	Record   model.Record
}

// Plan is an ordered list of writes that would bring the store in line with
// a snapshot. Records already identical to the stored row are counted in
// Skipped and produce no operation, so restoring a fresh export yields an
// empty plan.
type Plan struct {
	Operations []Operation
	Sections   []model.Section
	Skipped    int
}

// PlanRestore diffs snap against the live store and produces the writes
// needed to restore the selected sections. Sections are ordered so that a
// record's dependencies are planned before the record itself. The store is
// only read here; nothing is written until Execute.
func PlanRestore(ctx context.Context, src DataSource, snap *model.Snapshot, names []string) (*Plan, error) {
	selected, err := selectFromSnapshot(snap, names)
	if err != nil {
		return nil, err
	}

	ordered, err := SectionsInDependencyOrder(selected)
	if err != nil {
		return nil, err
	}

	plan := &Plan{Sections: ordered}
	for _, section := range ordered {
		for _, rec := range snap.Sections[section] {
			op, skip := planRecord(ctx, src, section, rec)
			if skip {
				plan.Skipped++
				continue
			}
			plan.Operations = append(plan.Operations, op)
		}
	}
	return plan, nil
}

func planRecord(ctx context.Context, src DataSource, section model.Section, rec model.Record) (Operation, bool) {
	identity := rec.Identity()
	if identity == "" {
		// No stable identity to match on, so the record is always inserted.
		return Operation{Section: section, Kind: OpCreate, Record: rec}, false
	}

	existing, err := src.FindByIdentity(ctx, section, identity)
	if err != nil {
		// A failed lookup plans as a create rather than aborting the whole
		// restore; the duplicate surfaces as a per-record error on execute.
		logging.Warnf("lookup %s %q failed, planning create: %v", section, identity, err)
		return Operation{Section: section, Identity: identity, Kind: OpCreate, Record: rec}, false
	}
	if existing == nil {
		return Operation{Section: section, Identity: identity, Kind: OpCreate, Record: rec}, false
	}
	if recordsEqual(existing, rec) {
		return Operation{}, true
	}
	return Operation{Section: section, Identity: identity, Kind: OpUpdate, Record: rec}, false
}

// recordsEqual compares two records by their canonical JSON form. Both sides
// go through the same struct tags, so field order and zero values line up.
func recordsEqual(a, b model.Record) bool {
	ja, err := json.Marshal(a)
	if err != nil {
		return false
	}
	jb, err := json.Marshal(b)
	if err != nil {
		return false
	}
	return bytes.Equal(ja, jb)
}

// selectFromSnapshot resolves the requested names against the sections the
// snapshot actually carries. Empty names means everything present.
func selectFromSnapshot(snap *model.Snapshot, names []string) (map[model.Section]bool, error) {
	selected := make(map[model.Section]bool)
	if len(names) == 0 {
		for section := range snap.Sections {
			selected[section] = true
		}
		if len(selected) == 0 {
			return nil, fmt.Errorf("snapshot contains no known sections")
		}
		return selected, nil
	}
	requested, err := resolveSections(names)
	if err != nil {
		return nil, err
	}
	for section := range requested {
		if snap.Has(section) {
			selected[section] = true
		} else {
			logging.Warnf("section %s not present in snapshot, skipping", section)
		}
	}
	if len(selected) == 0 {
		return nil, fmt.Errorf("none of the requested sections are present in the snapshot")
	}
	return selected, nil
}
