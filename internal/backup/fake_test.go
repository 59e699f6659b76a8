// Copyright (c) 2026 First Light
// Gearbase - inventory & asset management for construction sites
// This source code is licensed under the MIT license found in the LICENSE file.

package backup

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/firstlight/gearbase/internal/model"
)

// fakeSource is an in-memory DataSource with per-call error injection.
// Records are kept in insertion order so exports are deterministic.
type fakeSource struct {
	mu    sync.Mutex
	data  map[model.Section]map[string]model.Record
	order map[model.Section][]string

	createErr map[string]error         // keyed "section/identity"
	updateErr map[string]error         // keyed "section/identity"
	findErr   map[model.Section]error
	listErr   map[model.Section]error

	// beforeWrite runs on the executing goroutine ahead of each write.
	beforeWrite func(section model.Section, identity string)
	writes      []string
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		data:      make(map[model.Section]map[string]model.Record),
		order:     make(map[model.Section][]string),
		createErr: make(map[string]error),
		updateErr: make(map[string]error),
		findErr:   make(map[model.Section]error),
		listErr:   make(map[model.Section]error),
	}
}

func opKey(section model.Section, identity string) string {
	return string(section) + "/" + identity
}

func (f *fakeSource) seed(t *testing.T, section model.Section, recs ...model.Record) {
	t.Helper()
	for _, rec := range recs {
		if err := f.Create(context.Background(), section, rec); err != nil {
			t.Fatalf("seed %s: %v", section, err)
		}
	}
}

func (f *fakeSource) ListAll(_ context.Context, section model.Section) ([]model.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.listErr[section]; err != nil {
		return nil, err
	}
	out := make([]model.Record, 0, len(f.order[section]))
	for _, id := range f.order[section] {
		out = append(out, f.data[section][id])
	}
	return out, nil
}

func (f *fakeSource) FindByIdentity(_ context.Context, section model.Section, identity string) (model.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.findErr[section]; err != nil {
		return nil, err
	}
	rec, ok := f.data[section][identity]
	if !ok {
		return nil, nil
	}
	return rec, nil
}

func (f *fakeSource) Create(_ context.Context, section model.Section, rec model.Record) error {
	identity := rec.Identity()
	if f.beforeWrite != nil {
		f.beforeWrite(section, identity)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes = append(f.writes, "create "+opKey(section, identity))
	if err := f.createErr[opKey(section, identity)]; err != nil {
		return err
	}
	if f.data[section] == nil {
		f.data[section] = make(map[string]model.Record)
	}
	if _, exists := f.data[section][identity]; exists && identity != "" {
		return fmt.Errorf("duplicate %s", opKey(section, identity))
	}
	if _, exists := f.data[section][identity]; !exists {
		f.order[section] = append(f.order[section], identity)
	}
	f.data[section][identity] = rec
	return nil
}

func (f *fakeSource) Update(_ context.Context, section model.Section, rec model.Record) error {
	identity := rec.Identity()
	if f.beforeWrite != nil {
		f.beforeWrite(section, identity)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes = append(f.writes, "update "+opKey(section, identity))
	if err := f.updateErr[opKey(section, identity)]; err != nil {
		return err
	}
	if f.data[section] == nil || f.data[section][identity] == nil {
		return fmt.Errorf("no such record %s", opKey(section, identity))
	}
	f.data[section][identity] = rec
	return nil
}

// site and asset are fixture shorthands used across the package tests.
func site(id, name string) *model.Site {
	return &model.Site{ID: model.FlexID(id), Name: name}
}

func asset(id, name, siteID string, qty int) *model.Asset {
	return &model.Asset{ID: model.FlexID(id), Name: name, SiteID: model.FlexID(siteID), Quantity: qty}
}
