// Copyright (c) 2026 First Light
// Gearbase - inventory & asset management for construction sites
// This source code is licensed under the MIT license found in the LICENSE file.

package backup

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/firstlight/gearbase/internal/model"
)

func selectAll() map[model.Section]bool {
	sel := make(map[model.Section]bool)
	for _, name := range ListSections() {
		sel[name] = true
	}
	return sel
}

func indexOf(t *testing.T, order []model.Section, name model.Section) int {
	t.Helper()
	for i, s := range order {
		if s == name {
			return i
		}
	}
	t.Fatalf("section %s not in order %v", name, order)
	return -1
}

func TestSectionsInDependencyOrder_AllSections(t *testing.T) {
	order, err := SectionsInDependencyOrder(selectAll())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(order) != len(ListSections()) {
		t.Fatalf("got %d sections, want %d", len(order), len(ListSections()))
	}

	// Every section must come after all of its dependencies.
	for _, entry := range registry {
		for _, dep := range entry.DependsOn {
			if indexOf(t, order, dep) > indexOf(t, order, entry.Name) {
				t.Errorf("%s ordered before its dependency %s: %v", entry.Name, dep, order)
			}
		}
	}
}

func TestSectionsInDependencyOrder_Deterministic(t *testing.T) {
	first, err := SectionsInDependencyOrder(selectAll())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := SectionsInDependencyOrder(selectAll())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for j := range first {
			if first[j] != again[j] {
				t.Fatalf("order not deterministic: %v vs %v", first, again)
			}
		}
	}
}

func TestSectionsInDependencyOrder_SubsetIgnoresAbsentDeps(t *testing.T) {
	// Waybills depend on assets, sites, employees and vehicles, but a
	// selection containing only some of them must still order fine: absent
	// dependencies are assumed already present in the store.
	order, err := SectionsInDependencyOrder(map[model.Section]bool{
		model.SectionWaybills: true,
		model.SectionAssets:   true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(order) != 2 || order[0] != model.SectionAssets || order[1] != model.SectionWaybills {
		t.Fatalf("got %v, want [assets waybills]", order)
	}
}

func TestSectionsInDependencyOrder_CycleDetected(t *testing.T) {
	// The shipped registry is acyclic; inject a cycle to hit the guard.
	saved := registry
	defer func() { registry = saved }()
	registry = []Entry{
		{Name: "a", DependsOn: []model.Section{"b"}},
		{Name: "b", DependsOn: []model.Section{"a"}},
	}

	_, err := SectionsInDependencyOrder(map[model.Section]bool{"a": true, "b": true})
	if !errors.Is(err, ErrCyclicDependency) {
		t.Fatalf("got %v, want ErrCyclicDependency", err)
	}
}

func TestLookupSection(t *testing.T) {
	entry, ok := LookupSection(model.SectionAssets)
	if !ok || entry.Name != model.SectionAssets {
		t.Fatalf("assets lookup failed")
	}
	if len(entry.DependsOn) != 1 || entry.DependsOn[0] != model.SectionSites {
		t.Errorf("assets deps = %v, want [sites]", entry.DependsOn)
	}
	if _, ok := LookupSection("nonsense"); ok {
		t.Error("lookup of unknown section succeeded")
	}
}

func TestRegistry_SettingsIsSingleton(t *testing.T) {
	entry, ok := LookupSection(model.SectionCompanySettings)
	if !ok {
		t.Fatal("companySettings not registered")
	}
	if !entry.Singleton {
		t.Error("companySettings must be a singleton section")
	}
}

func TestRegistry_DateFieldsAreParsed(t *testing.T) {
	for _, entry := range registry {
		if len(entry.DateFields) == 0 {
			continue
		}
		row := map[string]any{"id": "x", "name": "x"}
		for _, field := range entry.DateFields {
			row[field] = "2024-05-01 10:30:00"
		}
		var payload any = []any{row}
		if entry.Singleton {
			payload = row
		}
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatal(err)
		}
		records, err := entry.decode(raw)
		if err != nil {
			t.Fatalf("%s: decode: %v", entry.Name, err)
		}
		out, err := json.Marshal(records[0])
		if err != nil {
			t.Fatal(err)
		}
		for _, field := range entry.DateFields {
			want := `"` + field + `":"2024-05-01T10:30:00Z"`
			if !strings.Contains(string(out), want) {
				t.Errorf("%s.%s not parsed as a timestamp: %s", entry.Name, field, out)
			}
		}
	}
}
