package prompt

import (
	"strings"
	"testing"
)

func TestBuildInstruction(t *testing.T) {
	brief := ProductBrief{
		ProductName:        "EcoGlow Smart Garden",
		ProductDescription: "A self-watering indoor garden with adaptive grow lights.",
		AdBrief:            "Upbeat and modern, aimed at urban plant lovers.",
		DurationSeconds:    6,
		AspectRatio:        "9:16",
	}

	out, err := BuildInstruction(brief)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"EcoGlow Smart Garden",
		"A self-watering indoor garden with adaptive grow lights.",
		"Upbeat and modern, aimed at urban plant lovers.",
		"6-second advertisement",
		"Aspect ratio: 9:16",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected instruction to contain %q", want)
		}
	}
}

func TestBuildInstruction_Defaults(t *testing.T) {
	out, err := BuildInstruction(ProductBrief{
		ProductName:        "Widget",
		ProductDescription: "A widget.",
		AdBrief:            "Make it snappy.",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(out, "8-second advertisement") {
		t.Error("expected default duration of 8 seconds")
	}
	if !strings.Contains(out, "Aspect ratio: 16:9") {
		t.Error("expected default aspect ratio 16:9")
	}
}
