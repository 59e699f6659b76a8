// Copyright (c) 2026 First Light
// Gearbase - inventory & asset management for construction sites
// This source code is licensed under the MIT license found in the LICENSE file.

// package backup implements the snapshot export, load and restore workflow:
// a section registry, a snapshot exporter and loader, a restore planner
// that diffs snapshot records against the live store, and an executor that
// applies the plan with per-item error accounting and live progress.
package backup

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/firstlight/gearbase/internal/model"
)

// Entry describes one section in the registry: its identity key, the
// sections it references by foreign key, the date fields its records carry,
// and how to decode its raw snapshot rows into typed records. The registry
// is the single generalization of what used to be a per-table restore
// branch for every section.
type Entry struct {
	Name       model.Section
	Identity   string
	DependsOn  []model.Section
	DateFields []string
	Singleton  bool

	decode func(raw json.RawMessage) ([]model.Record, error)
}

// decodeSlice decodes a JSON array of section rows into typed records.
// Numbers are kept as json.Number so large IDs survive the round trip.
func decodeSlice[T any, PT interface {
	*T
	model.Record
}](raw json.RawMessage) ([]model.Record, error) {
	var rows []T
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&rows); err != nil {
		return nil, err
	}
	out := make([]model.Record, 0, len(rows))
	for i := range rows {
		out = append(out, PT(&rows[i]))
	}
	return out, nil
}

// decodeSettings handles the companySettings singleton. Producers have
// written it both as a bare object and as a one-element array; either way
// the result is a single record decoded over the factory defaults, so
// fields missing from older snapshots keep their default values.
func decodeSettings(raw json.RawMessage) ([]model.Record, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var arr []json.RawMessage
		if err := json.Unmarshal(trimmed, &arr); err != nil {
			return nil, err
		}
		if len(arr) == 0 {
			return nil, nil
		}
		trimmed = arr[0]
	}
	settings := model.DefaultCompanySettings()
	if err := json.Unmarshal(trimmed, &settings); err != nil {
		return nil, err
	}
	if settings.CompanyName == "" {
		settings.CompanyName = model.DefaultCompanySettings().CompanyName
	}
	return []model.Record{&settings}, nil
}

// registry lists every section in declaration order. Declaration order is
// the tie-breaker for the topological sort, so dependencies are declared
// before their dependents to keep the sorted output stable and obvious.
// The dependency graph here is acyclic by construction.
var registry = []Entry{
	{Name: model.SectionUsers, Identity: "id",
		DateFields: []string{"createdAt", "updatedAt"},
		decode:     decodeSlice[model.User]},
	{Name: model.SectionSites, Identity: "id",
		DateFields: []string{"createdAt", "updatedAt"},
		decode:     decodeSlice[model.Site]},
	{Name: model.SectionEmployees, Identity: "id",
		DateFields: []string{"createdAt", "updatedAt"},
		decode:     decodeSlice[model.Employee]},
	{Name: model.SectionVehicles, Identity: "id",
		DateFields: []string{"createdAt", "updatedAt"},
		decode:     decodeSlice[model.Vehicle]},
	{Name: model.SectionAssets, Identity: "id",
		DependsOn:  []model.Section{model.SectionSites},
		DateFields: []string{"createdAt", "updatedAt"},
		decode:     decodeSlice[model.Asset]},
	{Name: model.SectionWaybills, Identity: "id",
		DependsOn:  []model.Section{model.SectionAssets, model.SectionSites, model.SectionEmployees, model.SectionVehicles},
		DateFields: []string{"issueDate", "expectedReturnDate", "createdAt", "updatedAt"},
		decode:     decodeSlice[model.Waybill]},
	{Name: model.SectionQuickCheckouts, Identity: "id",
		DependsOn:  []model.Section{model.SectionAssets, model.SectionEmployees},
		DateFields: []string{"checkoutDate"},
		decode:     decodeSlice[model.QuickCheckout]},
	{Name: model.SectionSiteTransactions, Identity: "id",
		DependsOn:  []model.Section{model.SectionSites, model.SectionAssets},
		DateFields: []string{"createdAt"},
		decode:     decodeSlice[model.SiteTransaction]},
	{Name: model.SectionEquipmentLogs, Identity: "id",
		DependsOn:  []model.Section{model.SectionAssets, model.SectionSites},
		DateFields: []string{"createdAt", "updatedAt"},
		decode:     decodeSlice[model.EquipmentLog]},
	{Name: model.SectionConsumableLogs, Identity: "id",
		DependsOn:  []model.Section{model.SectionAssets, model.SectionSites},
		DateFields: []string{"createdAt", "updatedAt"},
		decode:     decodeSlice[model.ConsumableLog]},
	{Name: model.SectionActivities, Identity: "id",
		DateFields: []string{"createdAt"},
		decode:     decodeSlice[model.Activity]},
	{Name: model.SectionCompanySettings, Identity: "", Singleton: true,
		DateFields: []string{"updatedAt"},
		decode:     decodeSettings},
}

// ListSections returns all section names in declaration order.
func ListSections() []model.Section {
	out := make([]model.Section, 0, len(registry))
	for _, e := range registry {
		out = append(out, e.Name)
	}
	return out
}

// LookupSection returns the registry entry for name.
func LookupSection(name model.Section) (Entry, bool) {
	for _, e := range registry {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// SectionsInDependencyOrder topologically sorts the selected sections so
// every section comes after its selected dependencies. Ties break by
// declaration order, which keeps the output deterministic. Unknown names
// are dropped by the caller before this runs. The cycle check is defensive
// only; the registry is kept acyclic by hand.
func SectionsInDependencyOrder(selected map[model.Section]bool) ([]model.Section, error) {
	pending := make(map[model.Section]bool, len(selected))
	for _, e := range registry {
		if selected[e.Name] {
			pending[e.Name] = true
		}
	}

	out := make([]model.Section, 0, len(pending))
	for len(pending) > 0 {
		placed := false
		for _, e := range registry {
			if !pending[e.Name] {
				continue
			}
			ready := true
			for _, dep := range e.DependsOn {
				if pending[dep] {
					ready = false
					break
				}
			}
			if ready {
				out = append(out, e.Name)
				delete(pending, e.Name)
				placed = true
			}
		}
		if !placed {
			return nil, fmt.Errorf("%w: unresolvable sections %v", ErrCyclicDependency, keys(pending))
		}
	}
	return out, nil
}

func keys(m map[model.Section]bool) []model.Section {
	out := make([]model.Section, 0, len(m))
	for _, e := range registry {
		if m[e.Name] {
			out = append(out, e.Name)
		}
	}
	return out
}
