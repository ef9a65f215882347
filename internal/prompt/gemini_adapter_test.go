package prompt

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// stubGeminiClient implements gemini.Client for testing.
type stubGeminiClient struct {
	output      string
	err         error
	instruction string
}

func (s *stubGeminiClient) GenerateContent(_ context.Context, prompt string) (string, error) {
	s.instruction = prompt
	return s.output, s.err
}

func TestGeminiGenerator_Generate(t *testing.T) {
	client := &stubGeminiClient{output: "a cinematic ad prompt"}
	gen := NewGeminiGenerator(client)

	out, err := gen.Generate(context.Background(), ProductBrief{
		ProductName:        "EcoGlow Smart Garden",
		ProductDescription: "A self-watering indoor garden.",
		AdBrief:            "Upbeat and modern.",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "a cinematic ad prompt" {
		t.Errorf("expected model output, got %q", out)
	}

	// The rendered instruction carries the brief
	if !strings.Contains(client.instruction, "EcoGlow Smart Garden") {
		t.Error("expected instruction to contain the product name")
	}
}

func TestGeminiGenerator_Generate_ClientError(t *testing.T) {
	client := &stubGeminiClient{err: errors.New("model unavailable")}
	gen := NewGeminiGenerator(client)

	_, err := gen.Generate(context.Background(), ProductBrief{ProductName: "Widget"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "model unavailable") {
		t.Errorf("expected wrapped client error, got %v", err)
	}
}

func TestGeminiGenerator_Generate_EmptyOutput(t *testing.T) {
	client := &stubGeminiClient{output: "   \n  "}
	gen := NewGeminiGenerator(client)

	_, err := gen.Generate(context.Background(), ProductBrief{ProductName: "Widget"})
	if !errors.Is(err, ErrEmptyPrompt) {
		t.Errorf("expected ErrEmptyPrompt, got %v", err)
	}
}
