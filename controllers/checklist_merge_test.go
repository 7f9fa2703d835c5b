package controllers

import (
	"testing"

	"smelab/backend/models"
)

func TestMergeChecklistScopedWins(t *testing.T) {
	bid := "b-1"
	items := []models.ChecklistItem{
		{ID: 1, StepKey: "profile", Status: "completed"},                  // legacy unscoped
		{ID: 2, StepKey: "registration", Status: "pending"},               // legacy, no scoped twin
		{ID: 3, BusinessID: &bid, StepKey: "profile", Status: "pending"},  // scoped twin wins
		{ID: 4, BusinessID: &bid, StepKey: "branding", Status: "pending"}, // scoped only
	}
	out := MergeChecklist(items)
	if len(out) != 3 {
		t.Fatalf("expected 3 items after merge, got %d", len(out))
	}
	for _, it := range out {
		if it.StepKey == "profile" && it.BusinessID == nil {
			t.Fatal("unscoped profile row should have been shadowed")
		}
	}
}

func TestMergeChecklistNoScopedRows(t *testing.T) {
	items := []models.ChecklistItem{
		{ID: 1, StepKey: "profile"},
		{ID: 2, StepKey: "registration"},
	}
	if out := MergeChecklist(items); len(out) != 2 {
		t.Fatalf("expected passthrough, got %d items", len(out))
	}
}
