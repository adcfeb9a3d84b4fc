package query_test

import (
	"testing"

	"github.com/JaimeStill/ecopoint/pkg/query"
)

func TestProjectionMap_Table(t *testing.T) {
	pm := query.NewProjectionMap("public", "items", "i")

	if pm.Alias() != "i" {
		t.Errorf("Alias() = %q, want %q", pm.Alias(), "i")
	}
	if pm.Table() != "public.items i" {
		t.Errorf("Table() = %q, want %q", pm.Table(), "public.items i")
	}
}

func TestProjectionMap_Column(t *testing.T) {
	pm := newTestProjection()

	tests := []struct {
		view string
		want string
	}{
		{"CreatedAt", "p.created_at"},
		{"createdat", "p.created_at"},
		{"created_at", "p.created_at"},
		{"City", "p.city"},
		{"Unknown", "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.view, func(t *testing.T) {
			if got := pm.Column(tt.view); got != tt.want {
				t.Errorf("Column(%q) = %q, want %q", tt.view, got, tt.want)
			}
		})
	}
}

func TestProjectionMap_Has(t *testing.T) {
	pm := newTestProjection()

	if !pm.Has("name") {
		t.Error("Has(name) = false, want true")
	}
	if pm.Has("email") {
		t.Error("Has(email) = true, want false")
	}
}

func TestProjectionMap_ColumnList_IsCopy(t *testing.T) {
	pm := newTestProjection()

	list := pm.ColumnList()
	list[0] = "mutated"

	if pm.ColumnList()[0] != "p.id" {
		t.Errorf("ColumnList()[0] = %q after caller mutation, want %q", pm.ColumnList()[0], "p.id")
	}
	if pm.Columns() != "p.id, p.name, p.city, p.created_at" {
		t.Errorf("Columns() = %q", pm.Columns())
	}
}
