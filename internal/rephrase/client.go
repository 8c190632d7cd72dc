// Package rephrase asks a generation provider to rewrite a user's prompt.
// Each call is one synchronous request with no retries and no caching; a
// failed attempt is final.
package rephrase

import (
	"context"
	"fmt"
	"strings"

	"github.com/Yates-Labs/grompt/internal/prompt"
	"github.com/Yates-Labs/grompt/internal/provider"
)

// Params are the generation parameters of a request.
type Params struct {
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
}

// Validate checks the ranges accepted by the front-ends. Rephrase itself does
// not call it; out-of-range values are left for the provider to reject.
func (p Params) Validate() error {
	if p.Model == "" {
		return fmt.Errorf("%w: model is required", ErrInvalidParams)
	}
	if p.Temperature < 0 || p.Temperature > 1 {
		return fmt.Errorf("%w: temperature %.2f outside [0.0, 1.0]", ErrInvalidParams, p.Temperature)
	}
	if p.MaxTokens <= 0 {
		return fmt.Errorf("%w: max tokens must be positive, got %d", ErrInvalidParams, p.MaxTokens)
	}
	return nil
}

// Config holds the defaults a Client falls back to.
type Config struct {
	// APIKey is the default credential. It must never be logged.
	APIKey string
	Params Params
}

// Request is a single rephrase call. Zero-valued Model and MaxTokens fall back
// to the client defaults. Temperature is taken as given.
type Request struct {
	Prompt string
	Params Params

	// APIKey overrides Config.APIKey when set.
	APIKey string

	// Canvas, when set, selects the structured canvas instruction.
	Canvas *prompt.Canvas
}

// Client rephrases prompts through a Provider. It holds no mutable state and
// is safe for concurrent use.
type Client struct {
	provider provider.Provider
	config   Config
}

// New creates a Client backed by p.
func New(p provider.Provider, cfg Config) *Client {
	return &Client{
		provider: p,
		config:   cfg,
	}
}

// Defaults returns the client's default generation parameters.
func (c *Client) Defaults() Params {
	return c.config.Params
}

// Rephrase returns the provider's rewrite of req.Prompt with surrounding
// whitespace removed. Errors match ErrCredentialMissing or ErrProviderCallFailed.
func (c *Client) Rephrase(ctx context.Context, req Request) (string, error) {
	apiKey := req.APIKey
	if apiKey == "" {
		apiKey = c.config.APIKey
	}
	if apiKey == "" {
		return "", ErrCredentialMissing
	}

	params := c.Resolve(req.Params)

	text, err := c.provider.Generate(ctx, provider.GenerateRequest{
		Instruction: prompt.Craft(req.Canvas, req.Prompt),
		Model:       params.Model,
		Temperature: params.Temperature,
		MaxTokens:   params.MaxTokens,
		APIKey:      apiKey,
	})
	if err != nil {
		return "", &ProviderCallError{Detail: err.Error(), Err: err}
	}

	return strings.TrimSpace(text), nil
}

// Resolve fills zero-valued Model and MaxTokens of p from the client defaults.
func (c *Client) Resolve(p Params) Params {
	if p.Model == "" {
		p.Model = c.config.Params.Model
	}
	if p.MaxTokens == 0 {
		p.MaxTokens = c.config.Params.MaxTokens
	}
	return p
}

// Outcome is the tagged result of Do.
type Outcome struct {
	Kind Kind
	// Text is the rephrased prompt when Kind is KindSuccess.
	Text string
	// Detail is the failure message otherwise.
	Detail string
}

// Do runs Rephrase and folds the result into an Outcome.
func (c *Client) Do(ctx context.Context, req Request) Outcome {
	text, err := c.Rephrase(ctx, req)
	if err != nil {
		return Outcome{Kind: KindOf(err), Detail: err.Error()}
	}
	return Outcome{Kind: KindSuccess, Text: text}
}
