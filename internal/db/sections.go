// Copyright (c) 2026 First Light
// Gearbase - inventory & asset management for construction sites
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/firstlight/gearbase/internal/model"
)

// sectionOps bundles the four record operations for one section. Every
// table uses `id` as its identity column, so the operations are built once
// by opsFor and dispatched through sectionOpsTable.
type sectionOps struct {
	list   func(ctx context.Context, bdb bun.IDB) ([]model.Record, error)
	find   func(ctx context.Context, bdb bun.IDB, identity string) (model.Record, error)
	create func(ctx context.Context, bdb bun.IDB, rec model.Record) error
	update func(ctx context.Context, bdb bun.IDB, rec model.Record) error
}

// opsFor builds the section operations from a converter pair. M is the Bun
// table model, R the snapshot record type.
func opsFor[M any, R model.Record](toModel func(R) *M, toRecord func(*M) R) sectionOps {
	asRecord := func(rec model.Record) (R, error) {
		r, ok := rec.(R)
		if !ok {
			var zero R
			return zero, fmt.Errorf("unexpected record type %T", rec)
		}
		return r, nil
	}
	return sectionOps{
		list: func(ctx context.Context, bdb bun.IDB) ([]model.Record, error) {
			var rows []M
			if err := bdb.NewSelect().Model(&rows).Scan(ctx); err != nil {
				return nil, err
			}
			out := make([]model.Record, 0, len(rows))
			for i := range rows {
				out = append(out, toRecord(&rows[i]))
			}
			return out, nil
		},
		find: func(ctx context.Context, bdb bun.IDB, identity string) (model.Record, error) {
			var row M
			err := bdb.NewSelect().Model(&row).Where("id = ?", identity).Limit(1).Scan(ctx)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return nil, nil
				}
				return nil, err
			}
			return toRecord(&row), nil
		},
		create: func(ctx context.Context, bdb bun.IDB, rec model.Record) error {
			r, err := asRecord(rec)
			if err != nil {
				return err
			}
			_, err = bdb.NewInsert().Model(toModel(r)).Exec(ctx)
			return MapDBError(err)
		},
		update: func(ctx context.Context, bdb bun.IDB, rec model.Record) error {
			r, err := asRecord(rec)
			if err != nil {
				return err
			}
			res, err := bdb.NewUpdate().Model(toModel(r)).Where("id = ?", rec.Identity()).Exec(ctx)
			if err != nil {
				return MapDBError(err)
			}
			if n, err := res.RowsAffected(); err == nil && n == 0 {
				return fmt.Errorf("no row with id %q", rec.Identity())
			}
			return nil
		},
	}
}

var sectionOpsTable = map[model.Section]sectionOps{
	model.SectionUsers:            opsFor(userRecordToModel, userModelToRecord),
	model.SectionSites:            opsFor(siteRecordToModel, siteModelToRecord),
	model.SectionEmployees:        opsFor(employeeRecordToModel, employeeModelToRecord),
	model.SectionVehicles:         opsFor(vehicleRecordToModel, vehicleModelToRecord),
	model.SectionAssets:           opsFor(assetRecordToModel, assetModelToRecord),
	model.SectionWaybills:         opsFor(waybillRecordToModel, waybillModelToRecord),
	model.SectionQuickCheckouts:   opsFor(quickCheckoutRecordToModel, quickCheckoutModelToRecord),
	model.SectionSiteTransactions: opsFor(siteTransactionRecordToModel, siteTransactionModelToRecord),
	model.SectionEquipmentLogs:    opsFor(equipmentLogRecordToModel, equipmentLogModelToRecord),
	model.SectionConsumableLogs:   opsFor(consumableLogRecordToModel, consumableLogModelToRecord),
	model.SectionActivities:       opsFor(activityRecordToModel, activityModelToRecord),
	model.SectionCompanySettings:  opsFor(companySettingsRecordToModel, companySettingsModelToRecord),
}

func sectionOpsFor(section model.Section) (sectionOps, error) {
	ops, ok := sectionOpsTable[section]
	if !ok {
		return sectionOps{}, fmt.Errorf("unknown section: %s", section)
	}
	return ops, nil
}

func listAllBun(ctx context.Context, bdb bun.IDB, section model.Section) ([]model.Record, error) {
	ops, err := sectionOpsFor(section)
	if err != nil {
		return nil, err
	}
	return ops.list(ctx, bdb)
}

func findByIdentityBun(ctx context.Context, bdb bun.IDB, section model.Section, identity string) (model.Record, error) {
	ops, err := sectionOpsFor(section)
	if err != nil {
		return nil, err
	}
	return ops.find(ctx, bdb, identity)
}

func createBun(ctx context.Context, bdb bun.IDB, section model.Section, rec model.Record) error {
	ops, err := sectionOpsFor(section)
	if err != nil {
		return err
	}
	return ops.create(ctx, bdb, rec)
}

func updateBun(ctx context.Context, bdb bun.IDB, section model.Section, rec model.Record) error {
	ops, err := sectionOpsFor(section)
	if err != nil {
		return err
	}
	return ops.update(ctx, bdb, rec)
}
