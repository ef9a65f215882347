// Package gemini provides an HTTP client for the Gemini generateContent API,
// used to synthesize text-to-video prompts from product briefs.
package gemini

// generateRequest represents the request body for the generateContent endpoint.
type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

// content holds a single turn of content parts.
type content struct {
	Parts []part `json:"parts"`
}

// part is a single text fragment.
type part struct {
	Text string `json:"text"`
}

// generationConfig tunes the model output.
type generationConfig struct {
	Temperature      float64 `json:"temperature,omitempty"`
	ResponseMimeType string  `json:"responseMimeType,omitempty"`
}

// generateResponse represents the response from the generateContent endpoint.
type generateResponse struct {
	Candidates []candidate `json:"candidates"`
	Error      *apiError   `json:"error,omitempty"`
}

// candidate is one generated completion.
type candidate struct {
	Content content `json:"content"`
}

// apiError is the error payload returned by the API.
type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}
