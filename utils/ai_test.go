package utils

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestParseSuggestionsStrictJSON(t *testing.T) {
	text := "```json\n[\"Alpha\", \"Beta\", \"Gamma\", \"Delta\", \"Epsilon\"]\n```"
	names, err := ParseSuggestions(text)
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 5 || names[0] != "Alpha" || names[4] != "Epsilon" {
		t.Fatalf("bad parse: %v", names)
	}
}

func TestParseSuggestionsFallback(t *testing.T) {
	text := "1. Alpha Foods\n2) Beta Traders\n3. Gamma Logistics"
	names, err := ParseSuggestions(text)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"Alpha Foods", "Beta Traders", "Gamma Logistics"}
	if len(names) != len(want) {
		t.Fatalf("expected %d names, got %v", len(want), names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("name %d: expected %q, got %q", i, want[i], names[i])
		}
	}
}

func TestParseSuggestionsCapsAtFive(t *testing.T) {
	names, err := ParseSuggestions(`["a","b","c","d","e","f","g"]`)
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 5 {
		t.Fatalf("expected cap at 5, got %d", len(names))
	}
}

func TestParseSuggestionsUnparsable(t *testing.T) {
	if _, err := ParseSuggestions("   \n  , ,\n"); !errors.Is(err, ErrUnparsable) {
		t.Fatalf("expected ErrUnparsable, got %v", err)
	}
}

func TestParseAnalysis(t *testing.T) {
	text := "```json\n{\"name\": \"EcoLogix\", \"slogan\": \"Greener shipping.\", \"score\": 88}\n```"
	a, err := ParseAnalysis(text)
	if err != nil {
		t.Fatal(err)
	}
	if a.Name != "EcoLogix" || a.Slogan != "Greener shipping." || a.Score != 88 {
		t.Fatalf("bad analysis: %+v", a)
	}

	// missing fields are a hard failure, not a partial result
	if _, err := ParseAnalysis(`{"name": "X"}`); !errors.Is(err, ErrUnparsable) {
		t.Fatalf("expected ErrUnparsable, got %v", err)
	}
	if _, err := ParseAnalysis("here are some thoughts"); !errors.Is(err, ErrUnparsable) {
		t.Fatalf("expected ErrUnparsable, got %v", err)
	}
}

func TestBuildDesignPrompts(t *testing.T) {
	prompts := BuildDesignPrompts("logo", "Acme", "new", "clean and bold")
	if len(prompts) != 3 {
		t.Fatalf("expected 3 prompts, got %d", len(prompts))
	}
	seen := map[string]bool{}
	for _, p := range prompts {
		if !strings.Contains(p, `"Acme"`) {
			t.Errorf("prompt missing business name: %s", p)
		}
		if seen[p] {
			t.Error("duplicate prompt variant")
		}
		seen[p] = true
	}

	flyer := BuildDesignPrompts("flyer", "Acme", "new", "")
	if flyer[0] == prompts[0] {
		t.Error("flyer prompts should differ from logo prompts")
	}
}

func TestAggregateVariantsPartialFailure(t *testing.T) {
	prompts := []string{"p0", "p1", "p2"}
	res := AggregateVariants(context.Background(), prompts, func(_ context.Context, prompt string) (GenerationItem, error) {
		if prompt == "p1" {
			return GenerationItem{}, errors.New("model overloaded")
		}
		return GenerationItem{Kind: "raster", Data: "xx", Mime: "image/png"}, nil
	})
	if !res.Success {
		t.Fatalf("expected success with 2 of 3 variants: %+v", res)
	}
	if len(res.Items) != 2 || len(res.Errors) != 1 {
		t.Fatalf("expected 2 items and 1 error, got %d/%d", len(res.Items), len(res.Errors))
	}
}

func TestAggregateVariantsTotalFailure(t *testing.T) {
	prompts := []string{"p0", "p1"}
	res := AggregateVariants(context.Background(), prompts, func(_ context.Context, prompt string) (GenerationItem, error) {
		return GenerationItem{}, fmt.Errorf("boom %s", prompt)
	})
	if res.Success {
		t.Fatal("expected failure when every variant fails")
	}
	if !strings.HasPrefix(res.Error, "Generation failed: ") {
		t.Fatalf("bad aggregate error: %q", res.Error)
	}
}
