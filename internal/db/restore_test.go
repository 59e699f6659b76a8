// Copyright (c) 2026 First Light
// Gearbase - inventory & asset management for construction sites
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"testing"

	"github.com/firstlight/gearbase/internal/backup"
	"github.com/firstlight/gearbase/internal/model"
)

// TestBackupRestore_AcrossStores exports from one sqlite database and
// restores into a second, empty one through the coordinator, exactly the
// path 'gearbase migrate' takes.
func TestBackupRestore_AcrossStores(t *testing.T) {
	ctx := context.Background()

	source, err := NewStoreFromDSN("sqlite", "file:"+t.Name()+"_src?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open source: %v", err)
	}
	defer func() { _ = source.Close() }()

	seed := []struct {
		section model.Section
		rec     model.Record
	}{
		{model.SectionSites, &model.Site{ID: "s1", Name: "Depot", Status: "active"}},
		{model.SectionSites, &model.Site{ID: "s2", Name: "North Yard"}},
		{model.SectionAssets, &model.Asset{ID: "a1", Name: "Generator", SiteID: "s1", Quantity: 2}},
		{model.SectionEmployees, &model.Employee{ID: "e1", Name: "Alex", Role: "foreman"}},
		{model.SectionWaybills, &model.Waybill{
			ID: "w1", WaybillNumber: "WB-1", SiteID: "s1", EmployeeID: "e1",
			Items: model.ItemList{{AssetID: "a1", AssetName: "Generator", Quantity: 1}},
		}},
	}
	for _, row := range seed {
		if err := source.Create(ctx, row.section, row.rec); err != nil {
			t.Fatalf("seed %s: %v", row.section, err)
		}
	}

	snap, err := backup.NewCoordinator(source).ExportSnapshot(ctx, nil)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	target, err := NewStoreFromDSN("sqlite", "file:"+t.Name()+"_dst?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open target: %v", err)
	}
	defer func() { _ = target.Close() }()

	coord := backup.NewCoordinator(target)
	plan, err := coord.PlanRestore(ctx, snap, nil)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if len(plan.Operations) != len(seed) {
		t.Fatalf("planned %d operations, want %d", len(plan.Operations), len(seed))
	}

	result, err := coord.Execute(ctx, plan, nil)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if result.Terminal != backup.Success || result.Failed != 0 {
		t.Fatalf("result = %+v, errors = %v", result, result.Errors)
	}

	rec, err := target.FindByIdentity(ctx, model.SectionWaybills, "w1")
	if err != nil || rec == nil {
		t.Fatalf("waybill not restored: %v", err)
	}
	wb := rec.(*model.Waybill)
	if len(wb.Items) != 1 || wb.Items[0].AssetName != "Generator" {
		t.Errorf("waybill items lost: %+v", wb.Items)
	}

	// Replanning against the fully restored target is a no-op.
	plan, err = coord.PlanRestore(ctx, snap, nil)
	if err != nil {
		t.Fatalf("replan: %v", err)
	}
	if len(plan.Operations) != 0 {
		t.Errorf("replan produced %d operations: %+v", len(plan.Operations), plan.Operations)
	}
}
