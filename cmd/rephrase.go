package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Yates-Labs/grompt/internal/prompt"
	"github.com/Yates-Labs/grompt/internal/provider"
	"github.com/Yates-Labs/grompt/internal/rephrase"
)

type rephraseOptions struct {
	model       string
	temperature float64
	maxTokens   int

	// temperatureSet distinguishes an explicit --temperature 0 from the default.
	temperatureSet bool
	// outputFormatSet marks an explicit --output-format, which selects the canvas.
	outputFormatSet bool

	persona      string
	audience     string
	task         string
	steps        []string
	context      string
	references   []string
	outputFormat string
	tone         string

	dryRun     bool
	raw        bool
	exportFile string
}

var rephraseOpts rephraseOptions

var rephraseCmd = &cobra.Command{
	Use:   "rephrase [prompt]",
	Short: "Rewrite a prompt to be clearer and more effective",
	Long: `Send a prompt to the configured LLM and print the optimized version.

Canvas flags (--persona, --audience, --task, --step, ...) switch to the
structured prompt canvas, describing who the model should be and how the
result should look.

Examples:
  grompt rephrase "write a poem"
  grompt rephrase "summarize this article" --model llama3-8b-8192 --temperature 0.2
  grompt rephrase "document my API" --persona "technical writer" --audience developers \
      --step "list endpoints" --step "describe payloads" --output-format Markdown
  grompt rephrase "write a poem" --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: runRephrase,
}

func init() {
	rootCmd.AddCommand(rephraseCmd)

	f := rephraseCmd.Flags()
	f.StringVar(&rephraseOpts.model, "model", "", "Model identifier (default from config)")
	f.Float64Var(&rephraseOpts.temperature, "temperature", 0, "Sampling temperature between 0.0 and 1.0 (default from config)")
	f.IntVar(&rephraseOpts.maxTokens, "max-tokens", 0, "Maximum tokens to generate (default from config)")

	f.StringVar(&rephraseOpts.persona, "persona", "", "Canvas: persona or role the model should adopt")
	f.StringVar(&rephraseOpts.audience, "audience", "", "Canvas: target audience")
	f.StringVar(&rephraseOpts.task, "task", "", "Canvas: task or intent")
	f.StringArrayVar(&rephraseOpts.steps, "step", nil, "Canvas: a step of the approach (repeatable)")
	f.StringVar(&rephraseOpts.context, "context", "", "Canvas: relevant background")
	f.StringArrayVar(&rephraseOpts.references, "reference", nil, "Canvas: a reference (repeatable)")
	f.StringVar(&rephraseOpts.outputFormat, "output-format", prompt.OutputNaturalText, "Canvas: output format")
	f.StringVar(&rephraseOpts.tone, "tone", "", "Canvas: tone of the result")

	f.BoolVar(&rephraseOpts.dryRun, "dry-run", false, "Print the instruction that would be sent and exit")
	f.BoolVar(&rephraseOpts.raw, "raw", false, "Print only the rephrased text")
	f.StringVar(&rephraseOpts.exportFile, "export", "", "Also write the result as JSON: --export <filename>")
}

func runRephrase(cmd *cobra.Command, args []string) error {
	opts := rephraseOpts
	opts.temperatureSet = cmd.Flags().Changed("temperature")
	opts.outputFormatSet = cmd.Flags().Changed("output-format")

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	return opts.run(ctx, cmd.OutOrStdout(), newClient(), args[0])
}

// canvas returns the prompt canvas, or nil when no canvas flag was given.
func (o *rephraseOptions) canvas() *prompt.Canvas {
	if o.persona == "" && o.audience == "" && o.task == "" && len(o.steps) == 0 &&
		o.context == "" && len(o.references) == 0 && o.tone == "" &&
		!o.outputFormatSet && (o.outputFormat == "" || o.outputFormat == prompt.OutputNaturalText) {
		return nil
	}
	return &prompt.Canvas{
		Persona:      o.persona,
		Audience:     o.audience,
		Task:         o.task,
		Steps:        o.steps,
		Context:      o.context,
		References:   o.references,
		OutputFormat: o.outputFormat,
		Tonality:     o.tone,
	}
}

// params applies the flag overrides over the client defaults and validates them.
func (o *rephraseOptions) params(client *rephrase.Client) (rephrase.Params, error) {
	params := client.Resolve(rephrase.Params{Model: o.model, MaxTokens: o.maxTokens})
	params.Temperature = client.Defaults().Temperature
	if o.temperatureSet {
		params.Temperature = o.temperature
	}
	return params, params.Validate()
}

func (o *rephraseOptions) run(ctx context.Context, w io.Writer, client *rephrase.Client, raw string) error {
	params, err := o.params(client)
	if err != nil {
		return err
	}

	req := rephrase.Request{
		Prompt: raw,
		Params: params,
		Canvas: o.canvas(),
	}

	if o.dryRun {
		fmt.Fprintln(w, prompt.Craft(req.Canvas, req.Prompt))
		return nil
	}

	if !provider.IsKnownModel(params.Model) {
		slog.Warn("model is not in the known model list", "model", params.Model)
	}
	slog.Debug("rephrasing prompt",
		"model", params.Model,
		"temperature", params.Temperature,
		"max_tokens", params.MaxTokens,
		"canvas", req.Canvas != nil,
	)

	text, err := client.Rephrase(ctx, req)
	if err != nil {
		return err
	}

	if o.exportFile != "" {
		if err := exportResult(rephrase.NewResult(req, params, text), o.exportFile); err != nil {
			return err
		}
	}

	if o.raw {
		fmt.Fprintln(w, text)
		return nil
	}

	fmt.Fprintln(w, headerStyle.Render("Rephrased prompt:"))
	// Styled line by line: rendering the block at once pads short lines.
	for _, line := range strings.Split(text, "\n") {
		fmt.Fprintln(w, answerStyle.Render(line))
	}
	if o.exportFile != "" {
		fmt.Fprintln(w, successStyle.Render(fmt.Sprintf("✓ Exported result to %s", o.exportFile)))
	}
	return nil
}

func exportResult(result rephrase.Result, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()

	if err := rephrase.Export([]rephrase.Result{result}, "json", file); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	return nil
}
