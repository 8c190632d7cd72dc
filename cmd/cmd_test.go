package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yates-Labs/grompt/internal/config"
	"github.com/Yates-Labs/grompt/internal/prompt"
	"github.com/Yates-Labs/grompt/internal/provider"
	"github.com/Yates-Labs/grompt/internal/rephrase"
)

func testClient(p provider.Provider, apiKey string) *rephrase.Client {
	return rephrase.New(p, rephrase.Config{
		APIKey: apiKey,
		Params: rephrase.Params{Model: provider.DefaultModel, Temperature: 0.5, MaxTokens: 1024},
	})
}

// setup isolates the command tree from the host environment and routes
// provider construction to p.
func setup(t *testing.T, p provider.Provider) {
	t.Helper()
	for _, name := range []string{
		"GROQ_API_KEY", "GROMPT_API_KEY", "GROMPT_DEFAULT_MODEL", "GROMPT_DEFAULT_TEMPERATURE",
		"GROMPT_DEFAULT_MAX_TOKENS", "GROMPT_BASE_URL", "GROMPT_LOG_LEVEL", "GROMPT_SERVER_ADDR",
	} {
		t.Setenv(name, "")
	}
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	prev := newProvider
	newProvider = func(*config.Config) provider.Provider { return p }
	t.Cleanup(func() { newProvider = prev })

	configFile, logLevel = "", ""
	rephraseOpts = rephraseOptions{outputFormat: prompt.OutputNaturalText}
	rephraseCmd.Flags().Lookup("temperature").Changed = false
	rephraseCmd.Flags().Lookup("output-format").Changed = false
}

func TestRun_RephraseRaw(t *testing.T) {
	mock := provider.NewMock("  Write a short poem about the ocean.\n")
	setup(t, mock)
	t.Setenv("GROQ_API_KEY", "env-key")

	var stdout, stderr bytes.Buffer
	code := run([]string{"rephrase", "--raw", "write a poem"}, &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	assert.Equal(t, "Write a short poem about the ocean.\n", stdout.String())
	assert.Equal(t, "env-key", mock.LastRequest().APIKey)
	assert.Equal(t, prompt.Format("write a poem"), mock.LastRequest().Instruction)
}

func TestRun_RephraseFlagsOverrideConfig(t *testing.T) {
	mock := provider.NewMock("ok")
	setup(t, mock)
	t.Setenv("GROQ_API_KEY", "env-key")
	t.Setenv("GROMPT_DEFAULT_TEMPERATURE", "0.8")

	var stdout, stderr bytes.Buffer
	code := run([]string{"rephrase", "--model", "llama3-70b-8192", "--temperature", "0", "--max-tokens", "50", "p"}, &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stdout.String(), "Rephrased prompt:")
	assert.Contains(t, stdout.String(), "ok")

	last := mock.LastRequest()
	assert.Equal(t, "llama3-70b-8192", last.Model)
	assert.Equal(t, 0.0, last.Temperature)
	assert.Equal(t, 50, last.MaxTokens)
}

func TestRun_CredentialMissing(t *testing.T) {
	mock := provider.NewMock("unused")
	setup(t, mock)

	var stdout, stderr bytes.Buffer
	code := run([]string{"rephrase", "anything"}, &stdout, &stderr)

	assert.Equal(t, 0, code)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "API key not found")
	assert.NotContains(t, stderr.String(), "unexpected")
	assert.Zero(t, mock.Calls())
}

func TestRun_ProviderCallFailed(t *testing.T) {
	setup(t, provider.NewMockWithError(errors.New("rate limited")))
	t.Setenv("GROQ_API_KEY", "k")

	var stdout, stderr bytes.Buffer
	code := run([]string{"rephrase", "anything"}, &stdout, &stderr)

	assert.Equal(t, 0, code)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "prompt engineering error: rate limited")
	assert.NotContains(t, stderr.String(), "unexpected")
}

func TestRun_MalformedConfigIsReportedGenerically(t *testing.T) {
	setup(t, provider.NewMock("unused"))
	t.Setenv("GROMPT_DEFAULT_TEMPERATURE", "hot")

	var stdout, stderr bytes.Buffer
	code := run([]string{"rephrase", "anything"}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "an unexpected error occurred")
}

func TestRun_DryRunNeedsNoCredential(t *testing.T) {
	mock := provider.NewMock("unused")
	setup(t, mock)

	var stdout, stderr bytes.Buffer
	code := run([]string{"rephrase", "--dry-run", "write a poem"}, &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	assert.Equal(t, prompt.Format("write a poem")+"\n", stdout.String())
	assert.Zero(t, mock.Calls())
}

func TestRun_Models(t *testing.T) {
	setup(t, provider.NewMock("unused"))

	var stdout, stderr bytes.Buffer
	code := run([]string{"models"}, &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	for _, m := range provider.KnownModels {
		assert.Contains(t, stdout.String(), m)
	}
	assert.Contains(t, stdout.String(), "(default)")
}

func TestRephraseOptions_CanvasAndExport(t *testing.T) {
	mock := provider.NewMock(" structured ")
	exportPath := filepath.Join(t.TempDir(), "result.json")

	opts := rephraseOptions{
		persona:      "historian",
		audience:     "students",
		steps:        []string{"set the scene", "cite sources"},
		outputFormat: prompt.OutputMarkdown,
		exportFile:   exportPath,
	}

	var out bytes.Buffer
	err := opts.run(context.Background(), &out, testClient(mock, "k"), "tell me about Rome")
	require.NoError(t, err)

	instruction := mock.LastRequest().Instruction
	assert.Contains(t, instruction, "You are a historian focused on delivering results for students.")
	assert.Contains(t, instruction, "- set the scene\n- cite sources\n")
	assert.Contains(t, instruction, `"tell me about Rome"`)
	assert.Contains(t, out.String(), "Exported result to")

	data, err := os.ReadFile(exportPath)
	require.NoError(t, err)
	var results []rephrase.Result
	require.NoError(t, json.Unmarshal(data, &results))
	require.Len(t, results, 1)
	assert.Equal(t, "structured", results[0].Rephrased)
	assert.True(t, results[0].Canvas)
	assert.NotContains(t, string(data), `"k"`)
}

func TestRephraseOptions_InvalidParams(t *testing.T) {
	mock := provider.NewMock("unused")

	tests := []struct {
		name string
		opts rephraseOptions
	}{
		{name: "temperature too high", opts: rephraseOptions{temperature: 1.5, temperatureSet: true}},
		{name: "negative max tokens", opts: rephraseOptions{maxTokens: -5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.run(context.Background(), &bytes.Buffer{}, testClient(mock, "k"), "p")
			assert.True(t, errors.Is(err, rephrase.ErrInvalidParams), "got %v", err)
		})
	}
	assert.Zero(t, mock.Calls())
}

func TestRun_OutputFormatSelectsCanvas(t *testing.T) {
	mock := provider.NewMock("ok")
	setup(t, mock)
	t.Setenv("GROQ_API_KEY", "k")

	var stdout, stderr bytes.Buffer
	code := run([]string{"rephrase", "--output-format", prompt.OutputMarkdown, "p"}, &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	assert.Contains(t, mock.LastRequest().Instruction, "- Format: Markdown")
}

func TestRun_ExplicitDefaultOutputFormatSelectsCanvas(t *testing.T) {
	mock := provider.NewMock("ok")
	setup(t, mock)
	t.Setenv("GROQ_API_KEY", "k")

	var stdout, stderr bytes.Buffer
	code := run([]string{"rephrase", "--output-format", prompt.OutputNaturalText, "p"}, &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	assert.Contains(t, mock.LastRequest().Instruction, "- Format: Natural Text")
}

func TestRephraseOptions_OutputFormatOnly(t *testing.T) {
	mock := provider.NewMock("ok")
	opts := rephraseOptions{outputFormat: prompt.OutputMarkdown}

	err := opts.run(context.Background(), &bytes.Buffer{}, testClient(mock, "k"), "p")
	require.NoError(t, err)

	require.NotNil(t, opts.canvas())
	assert.Contains(t, mock.LastRequest().Instruction, "- Format: Markdown")
	assert.Contains(t, mock.LastRequest().Instruction, `Prompt: "p"`)
}

func TestRephraseOptions_MultiLineAnswerNotPadded(t *testing.T) {
	mock := provider.NewMock("a long first line\nb")
	opts := rephraseOptions{outputFormat: prompt.OutputNaturalText}

	var out bytes.Buffer
	err := opts.run(context.Background(), &out, testClient(mock, "k"), "p")
	require.NoError(t, err)

	assert.Contains(t, out.String(), "a long first line\nb\n")
	for _, line := range strings.Split(out.String(), "\n") {
		assert.Equal(t, strings.TrimRight(line, " "), line, "line has trailing padding: %q", line)
	}
}

func TestRephraseOptions_NoCanvasByDefault(t *testing.T) {
	opts := rephraseOptions{outputFormat: prompt.OutputNaturalText}
	assert.Nil(t, opts.canvas())
}

func TestRenderError(t *testing.T) {
	assert.Contains(t, renderError(rephrase.ErrCredentialMissing), "API key not found")
	assert.False(t, strings.Contains(renderError(rephrase.ErrCredentialMissing), "unexpected"))
	assert.Contains(t, renderError(errors.New("boom")), "an unexpected error occurred: boom")
}
