// Copyright (c) 2026 First Light
// Gearbase - inventory & asset management for construction sites
// This source code is licensed under the MIT license found in the LICENSE file.

package backup

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/firstlight/gearbase/internal/model"
)

func TestLoadSnapshot_MalformedInput(t *testing.T) {
	for _, in := range []string{"", "not json", `[1,2,3]`, `{"sites": "nope"}`} {
		_, _, err := LoadSnapshot([]byte(in))
		if !errors.Is(err, ErrMalformed) {
			t.Errorf("input %q: got %v, want ErrMalformed", in, err)
		}
	}
}

func TestLoadSnapshot_UnsupportedVersion(t *testing.T) {
	raw := []byte(`{"formatVersion":"99.0","sites":[]}`)
	_, _, err := LoadSnapshot(raw)
	if !errors.Is(err, ErrUnsupportedVersion) {
		t.Fatalf("got %v, want ErrUnsupportedVersion", err)
	}
	// Minor version bumps within the same major must load.
	raw = []byte(`{"formatVersion":"1.7","sites":[]}`)
	if _, _, err := LoadSnapshot(raw); err != nil {
		t.Fatalf("minor bump rejected: %v", err)
	}
}

func TestLoadSnapshot_MissingVersionIsLegacy(t *testing.T) {
	snap, available, err := LoadSnapshot([]byte(`{"sites":[{"id":"s1","name":"Depot"}]}`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if snap.FormatVersion != model.SnapshotFormatVersion {
		t.Errorf("version = %q, want %q", snap.FormatVersion, model.SnapshotFormatVersion)
	}
	if len(available) != 1 || available[0] != model.SectionSites {
		t.Errorf("available = %v", available)
	}
}

func TestLoadSnapshot_LegacyEnvelopeAndSnakeCase(t *testing.T) {
	raw := []byte(`{
		"_metadata": {"version": "1.0", "timestamp": "2026-01-05T09:00:00Z", "appName": "gearbase"},
		"data": {
			"quick_checkouts": [
				{"id": 4, "asset_name": "Ladder", "expected_return_days": 3, "checkout_date": "2026-01-02 08:00:00"}
			],
			"sites": [{"id": "s1", "name": "North Yard"}]
		}
	}`)
	snap, available, err := LoadSnapshot(raw)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(available) != 2 {
		t.Fatalf("available = %v, want sites and quickCheckouts", available)
	}
	if snap.AppName != "gearbase" {
		t.Errorf("appName = %q", snap.AppName)
	}
	if snap.CreatedAt.IsZero() {
		t.Error("createdAt not taken from metadata timestamp")
	}

	recs := snap.Records(model.SectionQuickCheckouts)
	if len(recs) != 1 {
		t.Fatalf("quickCheckouts records = %d", len(recs))
	}
	qc, ok := recs[0].(*model.QuickCheckout)
	if !ok {
		t.Fatalf("wrong record type %T", recs[0])
	}
	if qc.Identity() != "4" {
		t.Errorf("numeric id decoded as %q", qc.Identity())
	}
	if qc.AssetName != "Ladder" || qc.ExpectedReturnDays != 3 {
		t.Errorf("snake_case fields not normalized: %+v", qc)
	}
	if qc.CheckoutDate.IsZero() {
		t.Error("checkout_date not parsed")
	}
}

func TestLoadSnapshot_SettingsObjectAndArrayForms(t *testing.T) {
	for _, in := range []string{
		`{"formatVersion":"1.0","companySettings":{"companyName":"First Light","currency":"EUR"}}`,
		`{"formatVersion":"1.0","companySettings":[{"companyName":"First Light","currency":"EUR"}]}`,
	} {
		snap, _, err := LoadSnapshot([]byte(in))
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		recs := snap.Records(model.SectionCompanySettings)
		if len(recs) != 1 {
			t.Fatalf("settings records = %d", len(recs))
		}
		cs := recs[0].(*model.CompanySettings)
		if cs.CompanyName != "First Light" || cs.Currency != "EUR" {
			t.Errorf("settings not decoded: %+v", cs)
		}
		// Fields absent from the snapshot keep factory defaults.
		if cs.LowStockThreshold != model.DefaultCompanySettings().LowStockThreshold {
			t.Errorf("default not preserved: %+v", cs)
		}
	}
}

func TestSnapshotFile_RoundTrip(t *testing.T) {
	src := newFakeSource()
	src.seed(t, model.SectionSites, site("s1", "Depot"), site("s2", "North Yard"))
	src.seed(t, model.SectionAssets, asset("a1", "Generator", "s1", 2))

	snap, err := ExportSnapshot(context.Background(), src, nil)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	path := filepath.Join(t.TempDir(), "backup.json.zst")
	if err := WriteSnapshotFile(path, snap); err != nil {
		t.Fatalf("write: %v", err)
	}

	loaded, available, err := ReadSnapshotFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if loaded.FormatVersion != model.SnapshotFormatVersion {
		t.Errorf("version = %q", loaded.FormatVersion)
	}
	if loaded.Checksum == "" {
		t.Error("checksum missing from written snapshot")
	}
	if len(available) != len(snap.Sections) {
		t.Errorf("available = %v", available)
	}
	if got := len(loaded.Records(model.SectionSites)); got != 2 {
		t.Errorf("sites after round trip = %d, want 2", got)
	}
	a, ok := loaded.Records(model.SectionAssets)[0].(*model.Asset)
	if !ok || a.Name != "Generator" || a.Quantity != 2 || a.SiteID.String() != "s1" {
		t.Errorf("asset did not survive round trip: %+v", a)
	}
}

func TestLoadSnapshot_TopLevelHeaderOverridesMetadataBlock(t *testing.T) {
	payload := []byte(`{
		"_metadata": {"version": "0.9", "timestamp": "2020-01-01T00:00:00Z", "appName": "legacy"},
		"formatVersion": "1.2",
		"createdAt": "2026-03-04T05:06:07Z",
		"sites": [{"id": "s1", "name": "Depot"}]
	}`)

	snap, available, err := LoadSnapshot(payload)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if snap.FormatVersion != "1.2" {
		t.Errorf("formatVersion = %q, want top-level value", snap.FormatVersion)
	}
	if want := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC); !snap.CreatedAt.Equal(want) {
		t.Errorf("createdAt = %v, want %v", snap.CreatedAt, want)
	}
	// Fields without a top-level counterpart keep the nested value.
	if snap.AppName != "legacy" {
		t.Errorf("appName = %q", snap.AppName)
	}
	if len(available) != 1 || available[0] != model.SectionSites {
		t.Errorf("available = %v", available)
	}
}

func TestVerifyChecksum(t *testing.T) {
	compact := map[string]json.RawMessage{"sites": json.RawMessage(`[{"id":"s1"}]`)}
	sum := sectionChecksum(compact)

	indented := map[string]json.RawMessage{
		"sites": json.RawMessage("[\n  {\n    \"id\": \"s1\"\n  }\n]"),
	}
	if !verifyChecksum(indented, sum) {
		t.Error("indented payload should match the compact digest")
	}
	changed := map[string]json.RawMessage{"sites": json.RawMessage(`[{"id":"s2"}]`)}
	if verifyChecksum(changed, sum) {
		t.Error("changed payload must not match")
	}
}

func TestExportSnapshot_SelectionAndUnknownNames(t *testing.T) {
	src := newFakeSource()
	src.seed(t, model.SectionSites, site("s1", "Depot"))
	src.seed(t, model.SectionVehicles, &model.Vehicle{ID: "v1", Name: "Truck"})

	snap, err := ExportSnapshot(context.Background(), src, []string{"sites", "not_a_section"})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !snap.Has(model.SectionSites) || snap.Has(model.SectionVehicles) {
		t.Errorf("selection not honored: %v", snap.Sections)
	}

	if _, err := ExportSnapshot(context.Background(), src, []string{"not_a_section"}); err == nil {
		t.Error("export with no valid sections should fail")
	}
}

func TestExportSnapshot_SnakeCaseSectionNames(t *testing.T) {
	src := newFakeSource()
	src.seed(t, model.SectionQuickCheckouts, &model.QuickCheckout{ID: "q1"})

	snap, err := ExportSnapshot(context.Background(), src, []string{"quick_checkouts"})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !snap.Has(model.SectionQuickCheckouts) {
		t.Error("snake_case section name not resolved")
	}
}
