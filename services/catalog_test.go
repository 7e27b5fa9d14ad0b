package services

import (
	"context"
	"testing"

	"swiftdine/db"
	"swiftdine/models"
)

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()
	restaurants := c.List()
	if len(restaurants) != 4 {
		t.Fatalf("catalog has %d restaurants, want 4", len(restaurants))
	}
	for _, r := range restaurants {
		if len(r.Menu) != 3 {
			t.Errorf("restaurant %d has %d menu items, want 3", r.ID, len(r.Menu))
		}
		if r.Rating < 0 || r.Rating > 5 {
			t.Errorf("restaurant %d rating %v out of range", r.ID, r.Rating)
		}
		for _, it := range r.Menu {
			if it.Price < 0 {
				t.Errorf("item %d has negative price %v", it.ID, it.Price)
			}
		}
	}
}

func TestCatalogGet(t *testing.T) {
	c := DefaultCatalog()

	r, ok := c.Get(2)
	if !ok {
		t.Fatal("restaurant 2 not found")
	}
	if r.Name != "Chicken Biryani Special" {
		t.Errorf("name = %q", r.Name)
	}
	if _, ok := r.FindItem(201); !ok {
		t.Error("item 201 not found on restaurant 2 menu")
	}
	if _, ok := r.FindItem(101); ok {
		t.Error("item 101 resolved against restaurant 2 menu")
	}

	if _, ok := c.Get(42); ok {
		t.Error("Get(42) found a restaurant")
	}
}

func TestCatalogFilterByType(t *testing.T) {
	c := DefaultCatalog()
	tests := []struct {
		filter models.DietaryType
		want   int
	}{
		{"", 4},
		{models.DietaryVeg, 2},
		{models.DietaryNonVeg, 2},
	}
	for _, tt := range tests {
		got := c.FilterByType(tt.filter)
		if len(got) != tt.want {
			t.Errorf("FilterByType(%q) returned %d restaurants, want %d", tt.filter, len(got), tt.want)
		}
		for _, r := range got {
			if tt.filter != "" && r.Type != tt.filter {
				t.Errorf("FilterByType(%q) returned restaurant of type %q", tt.filter, r.Type)
			}
		}
	}
}

func TestCatalogListIsACopy(t *testing.T) {
	c := DefaultCatalog()
	list := c.List()
	list[0].Name = "mutated"
	if fresh := c.List(); fresh[0].Name == "mutated" {
		t.Error("mutating List result leaked into the catalog")
	}
}

// Integration test for the Postgres catalog source (requires DB). Skip
// if db.Pool is nil or -short.
func TestLoadCatalog_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping catalog integration test in short mode")
	}
	if db.Pool == nil {
		t.Skip("skipping catalog integration test: no DB pool")
	}
	c, err := LoadCatalog(context.Background())
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if len(c.List()) == 0 {
		t.Error("loaded catalog is empty")
	}
	if r, ok := c.Get(1); !ok || len(r.Menu) == 0 {
		t.Errorf("restaurant 1 missing or without menu: ok=%v", ok)
	}
}
