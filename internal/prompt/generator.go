// Package prompt provides the port for advertisement prompt synthesis.
// A Generator turns a product brief into a text-to-video prompt; the Gemini
// adapter implements it against the Gemini API.
package prompt

import (
	"context"
	"errors"
	"strings"
	"text/template"
)

// ErrEmptyPrompt is returned when the generator produces no usable prompt text.
var ErrEmptyPrompt = errors.New("prompt: generated prompt is empty")

// ProductBrief describes the product and the desired advertisement.
type ProductBrief struct {
	// ProductName is the name of the product being advertised.
	ProductName string
	// ProductDescription details the product and its main benefits.
	ProductDescription string
	// AdBrief describes the tone and theme requested for the ad.
	AdBrief string
	// DurationSeconds is the target ad length in seconds.
	DurationSeconds int
	// AspectRatio is the target video aspect ratio.
	AspectRatio string
}

// Generator defines the interface for video prompt synthesis.
type Generator interface {
	// Generate produces a text-to-video prompt for the given brief.
	// An empty result is reported as an error, never returned silently.
	Generate(ctx context.Context, brief ProductBrief) (string, error)
}

// instructionTemplate is the meta-prompt sent to the LLM. It asks for a
// scene-by-scene ad prompt and nothing else, so the raw model output can be
// forwarded to the video backend untouched.
const instructionTemplate = `You are an expert video prompt engineer for a cutting-edge text-to-video AI model.
Create a highly detailed and visually rich prompt for a {{.DurationSeconds}}-second advertisement video.
The video must be concise, impactful, and clearly convey the product's essence within the {{.DurationSeconds}}-second limit.
Focus on dynamic visual animations, seamless transitions, and evocative imagery.

**Product Name:** {{.ProductName}}
**Product Description:** {{.ProductDescription}}
**Advertisement Brief:** {{.AdBrief}}

Guidelines:
1. Duration: strictly {{.DurationSeconds}} seconds, structured into logical segments (problem, solution, benefit, call to action).
2. Prioritize visual storytelling: vivid scene descriptions, animation styles, lighting and transitions.
3. Be precise; every word matters.
4. The output must ONLY be the video prompt text, with no conversational filler or explanations.
5. Clearly feature the product name "{{.ProductName}}" in the final shot.
6. Aspect ratio: {{.AspectRatio}}.
`

var instructionTmpl = template.Must(template.New("instruction").Parse(instructionTemplate))

// BuildInstruction renders the LLM instruction for a product brief.
func BuildInstruction(brief ProductBrief) (string, error) {
	if brief.DurationSeconds <= 0 {
		brief.DurationSeconds = 8
	}
	if brief.AspectRatio == "" {
		brief.AspectRatio = "16:9"
	}

	var sb strings.Builder
	if err := instructionTmpl.Execute(&sb, brief); err != nil {
		return "", err
	}
	return sb.String(), nil
}
