package prompt

import (
	"context"
	"fmt"
	"strings"

	"github.com/promovid/adgen-api/internal/gemini"
)

// GeminiGenerator adapts the Gemini client to the Generator interface.
type GeminiGenerator struct {
	client gemini.Client
}

// NewGeminiGenerator creates a new Gemini-backed prompt generator.
func NewGeminiGenerator(client gemini.Client) *GeminiGenerator {
	return &GeminiGenerator{client: client}
}

// Generate renders the instruction for the brief and asks Gemini for the
// video prompt.
func (g *GeminiGenerator) Generate(ctx context.Context, brief ProductBrief) (string, error) {
	instruction, err := BuildInstruction(brief)
	if err != nil {
		return "", fmt.Errorf("prompt: build instruction: %w", err)
	}

	out, err := g.client.GenerateContent(ctx, instruction)
	if err != nil {
		return "", fmt.Errorf("prompt: gemini generate: %w", err)
	}

	if strings.TrimSpace(out) == "" {
		return "", ErrEmptyPrompt
	}

	return out, nil
}

// Compile-time check that GeminiGenerator implements Generator.
var _ Generator = (*GeminiGenerator)(nil)
