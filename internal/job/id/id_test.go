package id

import (
	"regexp"
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	id := Generate("EcoGlow Smart Garden")

	matched, err := regexp.MatchString(`^ecoglow_smart_garden_\d+$`, id)
	if err != nil {
		t.Fatalf("regexp error: %v", err)
	}
	if !matched {
		t.Errorf("expected <slug>_<millis> format, got %s", id)
	}
}

func TestGenerate_EmptyName(t *testing.T) {
	id := Generate("")

	// Falls back to a random identifier
	if id == "" {
		t.Fatal("expected non-empty ID")
	}
	if strings.Contains(id, "_") {
		t.Errorf("expected random ID without slug, got %s", id)
	}

	id2 := Generate("")
	if id == id2 {
		t.Error("expected different IDs for consecutive calls")
	}
}

func TestGenerate_SymbolsOnlyName(t *testing.T) {
	id := Generate("!!! ---")
	if id == "" {
		t.Fatal("expected non-empty ID")
	}
	if strings.HasPrefix(id, "_") {
		t.Errorf("expected no leading underscore, got %s", id)
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "EcoGlow", "ecoglow"},
		{"spaces", "EcoGlow Smart Garden", "ecoglow_smart_garden"},
		{"punctuation", "Eco-Glow: Smart Garden!", "eco_glow_smart_garden"},
		{"digits", "Widget 3000", "widget_3000"},
		{"consecutive separators", "A  --  B", "a_b"},
		{"leading and trailing separators", "  hello  ", "hello"},
		{"empty", "", ""},
		{"symbols only", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slug(tt.input); got != tt.expected {
				t.Errorf("Slug(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
