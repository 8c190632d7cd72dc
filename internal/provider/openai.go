package provider

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

// GroqBaseURL is Groq's OpenAI-compatible API root.
const GroqBaseURL = "https://api.groq.com/openai/v1/"

// OpenAI implements Provider against any OpenAI-compatible chat completions API.
type OpenAI struct {
	client openai.Client
}

// NewOpenAI creates a provider for baseURL. An empty baseURL selects Groq.
// The credential is not bound here; each request carries its own.
func NewOpenAI(baseURL string, opts ...option.RequestOption) *OpenAI {
	if baseURL == "" {
		baseURL = GroqBaseURL
	}

	// A failed attempt is final: the SDK's automatic retries are turned off.
	clientOpts := []option.RequestOption{
		option.WithBaseURL(baseURL),
		option.WithMaxRetries(0),
	}
	clientOpts = append(clientOpts, opts...)

	return &OpenAI{
		client: openai.NewClient(clientOpts...),
	}
}

// Generate sends the instruction as a single user message and returns the reply.
func (o *OpenAI) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	if req.APIKey == "" {
		return "", fmt.Errorf("%w: missing API key", ErrInvalidRequest)
	}
	if req.Model == "" {
		return "", fmt.Errorf("%w: missing model name", ErrInvalidRequest)
	}

	params := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(req.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(req.Instruction),
		},
		Temperature: openai.Float(req.Temperature),
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}

	completion, err := o.client.Chat.Completions.New(ctx, params, option.WithAPIKey(req.APIKey))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrGenerateFailed, err)
	}

	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("%w: no response generated", ErrGenerateFailed)
	}

	return completion.Choices[0].Message.Content, nil
}
