package rephrase

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// ExportFormat represents supported export formats
type ExportFormat string

const (
	FormatJSON ExportFormat = "json"
)

// Result records one successful rephrasing for export. It never holds the credential.
type Result struct {
	Prompt      string    `json:"prompt"`
	Rephrased   string    `json:"rephrased"`
	Model       string    `json:"model"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
	Canvas      bool      `json:"canvas"`
	GeneratedAt time.Time `json:"generated_at"`
}

// NewResult builds a Result for req after it produced rephrased with params.
func NewResult(req Request, params Params, rephrased string) Result {
	return Result{
		Prompt:      req.Prompt,
		Rephrased:   rephrased,
		Model:       params.Model,
		Temperature: params.Temperature,
		MaxTokens:   params.MaxTokens,
		Canvas:      req.Canvas != nil,
		GeneratedAt: time.Now().UTC(),
	}
}

// Export writes results to writer in the given format.
func Export(results []Result, format string, writer io.Writer) error {
	if ExportFormat(strings.ToLower(format)) != FormatJSON {
		return fmt.Errorf("unsupported export format: %s (supported: json)", format)
	}

	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(results)
}
