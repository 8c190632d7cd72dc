// Package provider abstracts the remote text-generation service. It defines a
// provider-agnostic interface with an OpenAI-compatible implementation (Groq by
// default) and a deterministic mock for testing.
package provider

import (
	"context"
	"errors"
)

var (
	ErrGenerateFailed = errors.New("generation request failed")
	ErrInvalidRequest = errors.New("invalid generation request")
)

// DefaultModel is the model used when nothing else is configured.
const DefaultModel = "llama-3.3-70b-versatile"

// KnownModels are the remote model identifiers offered by the front-ends.
// Membership is advisory; providers accept any identifier.
var KnownModels = []string{
	"llama-3.3-70b-versatile",
	"llama3-groq-8b-8192-tool-use-preview",
	"llama3-70b-8192",
	"llama3-8b-8192",
}

// IsKnownModel reports whether id is one of KnownModels.
func IsKnownModel(id string) bool {
	for _, m := range KnownModels {
		if m == id {
			return true
		}
	}
	return false
}

// GenerateRequest is a single generation call.
type GenerateRequest struct {
	Instruction string
	Model       string
	Temperature float64
	MaxTokens   int

	// APIKey authorizes this call. It must never be logged.
	APIKey string
}

// Provider generates text from an instruction.
// Implementations must be stateless and safe for concurrent use.
type Provider interface {
	// Generate issues one request and returns the raw model output.
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}
