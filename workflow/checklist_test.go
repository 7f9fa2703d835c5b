package workflow

import "testing"

func TestChecklistTemplates(t *testing.T) {
	newKeys := []string{"profile", "registration", "branding", "compliance"}
	steps := ChecklistTemplate("new")
	if len(steps) != len(newKeys) {
		t.Fatalf("new template: expected %d steps, got %d", len(newKeys), len(steps))
	}
	for i, k := range newKeys {
		if steps[i].StepKey != k {
			t.Errorf("new template step %d: expected %q, got %q", i, k, steps[i].StepKey)
		}
	}

	oldKeys := []string{"verification", "compliance", "digital", "growth"}
	steps = ChecklistTemplate("old")
	if len(steps) != len(oldKeys) {
		t.Fatalf("old template: expected %d steps, got %d", len(oldKeys), len(steps))
	}
	for i, k := range oldKeys {
		if steps[i].StepKey != k {
			t.Errorf("old template step %d: expected %q, got %q", i, k, steps[i].StepKey)
		}
	}

	// unknown types fall back to the new-business journey
	if got := ChecklistTemplate("")[0].StepKey; got != "profile" {
		t.Fatalf("fallback template: expected profile, got %q", got)
	}
}

func TestBrandingStepKey(t *testing.T) {
	if got := BrandingStepKey("new"); got != "branding" {
		t.Fatalf("new: expected branding, got %q", got)
	}
	if got := BrandingStepKey("old"); got != "digital" {
		t.Fatalf("old: expected digital, got %q", got)
	}
}

func TestProgress(t *testing.T) {
	cases := []struct {
		total, completed, want int
	}{
		{0, 0, 0},
		{-1, 3, 0},
		{4, 0, 0},
		{4, 1, 25},
		{4, 3, 75},
		{3, 1, 33},
		{3, 2, 67},
		{4, 4, 100},
	}
	for _, c := range cases {
		if got := Progress(c.total, c.completed); got != c.want {
			t.Errorf("Progress(%d,%d) = %d, want %d", c.total, c.completed, got, c.want)
		}
	}
}
