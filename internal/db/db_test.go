// Copyright (c) 2026 First Light
// Gearbase - inventory & asset management for construction sites
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/firstlight/gearbase/internal/model"
)

// withTestStore initializes an in-memory sqlite Store for the duration of
// the provided function and restores the package-level store afterwards.
func withTestStore(t *testing.T, fn func(s *SqliteStore)) {
	t.Helper()

	prevStore := store

	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	if err := InitDB("sqlite", dsn); err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}
	s, ok := store.(*SqliteStore)
	if !ok {
		t.Fatalf("store is not *SqliteStore")
	}
	defer func() {
		_ = s.Close()
		store = prevStore
	}()

	fn(s)
}

func TestStore_SiteRoundTrip(t *testing.T) {
	withTestStore(t, func(s *SqliteStore) {
		ctx := context.Background()
		created := &model.Site{
			ID:        "s1",
			Name:      "Depot",
			Location:  "North Road 4",
			Status:    "active",
			CreatedAt: model.NewFlexTime(time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)),
		}
		if err := s.Create(ctx, model.SectionSites, created); err != nil {
			t.Fatalf("create: %v", err)
		}

		rec, err := s.FindByIdentity(ctx, model.SectionSites, "s1")
		if err != nil {
			t.Fatalf("find: %v", err)
		}
		got, ok := rec.(*model.Site)
		if !ok {
			t.Fatalf("wrong type %T", rec)
		}
		if got.Name != "Depot" || got.Location != "North Road 4" || got.Status != "active" {
			t.Errorf("round trip lost fields: %+v", got)
		}
		if !got.CreatedAt.Time.Equal(created.CreatedAt.Time) {
			t.Errorf("createdAt = %v, want %v", got.CreatedAt.Time, created.CreatedAt.Time)
		}

		// Absent identity reports (nil, nil), not an error.
		rec, err = s.FindByIdentity(ctx, model.SectionSites, "missing")
		if err != nil || rec != nil {
			t.Errorf("absent find = (%v, %v), want (nil, nil)", rec, err)
		}

		created.Name = "Main Depot"
		if err := s.Update(ctx, model.SectionSites, created); err != nil {
			t.Fatalf("update: %v", err)
		}
		rec, _ = s.FindByIdentity(ctx, model.SectionSites, "s1")
		if rec.(*model.Site).Name != "Main Depot" {
			t.Errorf("update not applied: %+v", rec)
		}

		all, err := s.ListAll(ctx, model.SectionSites)
		if err != nil || len(all) != 1 {
			t.Errorf("list = (%d, %v)", len(all), err)
		}
	})
}

func TestStore_DuplicateCreateMapsToErrDuplicate(t *testing.T) {
	withTestStore(t, func(s *SqliteStore) {
		ctx := context.Background()
		site := &model.Site{ID: "s1", Name: "Depot"}
		if err := s.Create(ctx, model.SectionSites, site); err != nil {
			t.Fatalf("create: %v", err)
		}
		if err := s.Create(ctx, model.SectionSites, site); !errors.Is(err, ErrDuplicate) {
			t.Errorf("duplicate create: got %v, want ErrDuplicate", err)
		}
	})
}

func TestStore_WaybillItemsSurviveStorage(t *testing.T) {
	withTestStore(t, func(s *SqliteStore) {
		ctx := context.Background()
		wb := &model.Waybill{
			ID:            "w1",
			WaybillNumber: "WB-0042",
			Type:          "delivery",
			Items: model.ItemList{
				{AssetID: "a1", AssetName: "Generator", Quantity: 1, Unit: "pcs"},
				{AssetID: "a2", AssetName: "Cable drum", Quantity: 3, Unit: "pcs"},
			},
			IssueDate: model.NewFlexTime(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)),
		}
		if err := s.Create(ctx, model.SectionWaybills, wb); err != nil {
			t.Fatalf("create: %v", err)
		}

		rec, err := s.FindByIdentity(ctx, model.SectionWaybills, "w1")
		if err != nil {
			t.Fatalf("find: %v", err)
		}
		got := rec.(*model.Waybill)
		if len(got.Items) != 2 || got.Items[1].AssetName != "Cable drum" || got.Items[1].Quantity != 3 {
			t.Errorf("items did not survive storage: %+v", got.Items)
		}
	})
}

func TestStore_CompanySettingsSingleRow(t *testing.T) {
	withTestStore(t, func(s *SqliteStore) {
		ctx := context.Background()
		settings := model.DefaultCompanySettings()
		settings.CompanyName = "First Light Construction"
		if err := s.Create(ctx, model.SectionCompanySettings, &settings); err != nil {
			t.Fatalf("create: %v", err)
		}

		rec, err := s.FindByIdentity(ctx, model.SectionCompanySettings, model.CompanySettingsIdentity)
		if err != nil {
			t.Fatalf("find: %v", err)
		}
		got := rec.(*model.CompanySettings)
		if got.CompanyName != "First Light Construction" {
			t.Errorf("settings = %+v", got)
		}

		settings.LowStockThreshold = 9
		if err := s.Update(ctx, model.SectionCompanySettings, &settings); err != nil {
			t.Fatalf("update: %v", err)
		}
		rec, _ = s.FindByIdentity(ctx, model.SectionCompanySettings, model.CompanySettingsIdentity)
		if rec.(*model.CompanySettings).LowStockThreshold != 9 {
			t.Errorf("update not applied: %+v", rec)
		}

		all, _ := s.ListAll(ctx, model.SectionCompanySettings)
		if len(all) != 1 {
			t.Errorf("settings rows = %d, want 1", len(all))
		}
	})
}

func TestStore_UnknownSection(t *testing.T) {
	withTestStore(t, func(s *SqliteStore) {
		if _, err := s.ListAll(context.Background(), "nonsense"); err == nil {
			t.Error("unknown section accepted")
		}
	})
}

func TestStore_UpdateMissingRowFails(t *testing.T) {
	withTestStore(t, func(s *SqliteStore) {
		site := &model.Site{ID: "ghost", Name: "Nowhere"}
		if err := s.Update(context.Background(), model.SectionSites, site); err == nil {
			t.Error("update of missing row succeeded")
		}
	})
}

func TestCreateUserWithPassword(t *testing.T) {
	withTestStore(t, func(s *SqliteStore) {
		ctx := context.Background()
		user, err := s.CreateUserWithPassword(ctx, "foreman", "Alex", "admin", "hunter2")
		if err != nil {
			t.Fatalf("create user: %v", err)
		}
		if user.ID == "" {
			t.Error("no id assigned")
		}
		if !user.CheckPassword("hunter2") {
			t.Error("password hash does not verify")
		}

		rec, err := s.FindByIdentity(ctx, model.SectionUsers, user.Identity())
		if err != nil || rec == nil {
			t.Fatalf("stored user not found: %v", err)
		}
		stored := rec.(*model.User)
		if stored.Username != "foreman" || stored.Role != "admin" {
			t.Errorf("stored user = %+v", stored)
		}
		if !stored.CheckPassword("hunter2") {
			t.Error("stored hash does not verify")
		}

		// Username is unique.
		if _, err := s.CreateUserWithPassword(ctx, "foreman", "", "user", "x"); !errors.Is(err, ErrDuplicate) {
			t.Errorf("duplicate username: got %v", err)
		}
	})
}

func TestMapDBError(t *testing.T) {
	if MapDBError(nil) != nil {
		t.Error("nil should stay nil")
	}
	for _, msg := range []string{
		"UNIQUE constraint failed: sites.id",
		"Error 1062: Duplicate entry 's1' for key 'PRIMARY'",
		"ERROR: duplicate key value violates unique constraint (SQLSTATE 23505)",
	} {
		if !errors.Is(MapDBError(errors.New(msg)), ErrDuplicate) {
			t.Errorf("%q not mapped to ErrDuplicate", msg)
		}
	}
	plain := errors.New("connection refused")
	if MapDBError(plain) != plain {
		t.Error("unrelated errors must pass through unchanged")
	}
}

func TestRunMigrations_Idempotent(t *testing.T) {
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	s1, err := NewStoreFromDSN("sqlite", dsn)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	defer func() { _ = s1.Close() }()

	// A second open against the same database must re-run cleanly.
	s2, err := NewStoreFromDSN("sqlite", dsn)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	_ = s2.Close()
}

func TestRunDBMaintenance_Sqlite(t *testing.T) {
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	s, err := NewStoreFromDSN("sqlite", dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = s.Close() }()

	if err := RunDBMaintenance("sqlite", dsn); err != nil {
		t.Fatalf("maintenance: %v", err)
	}
	if err := RunDBMaintenance("oracle", dsn); err == nil {
		t.Error("unsupported engine accepted")
	}
}
