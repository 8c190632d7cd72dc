package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Yates-Labs/grompt/internal/config"
	"github.com/Yates-Labs/grompt/internal/provider"
	"github.com/Yates-Labs/grompt/internal/rephrase"
)

var (
	configFile string
	logLevel   string

	// cfg is loaded before any subcommand runs.
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "grompt",
	Short: "Grompt - LLM prompt optimizer",
	Long: `Grompt sends a prompt to a hosted LLM (Groq by default) and asks the model
to rewrite it so it is clearer, more concise, and more effective.

Configuration is read from grompt.yaml (current directory or
~/.config/grompt), a .env file, and the environment:
  GROQ_API_KEY                 - API key for the provider (required to rephrase)
  GROMPT_DEFAULT_MODEL         - default model identifier
  GROMPT_DEFAULT_TEMPERATURE   - default sampling temperature (0.0-1.0)
  GROMPT_DEFAULT_MAX_TOKENS    - default output token limit`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to a config file (default: grompt.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
}

// Execute runs the root command
func Execute() {
	// Load .env file if it exists
	_ = godotenv.Load()

	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command tree and reports any failure on stderr. It never
// panics. A missing credential or failed provider call is reported and exits
// 0; any other failure exits 1.
func run(args []string, stdout, stderr io.Writer) (code int) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(stderr, errorStyle.Render("Error:"), fmt.Sprintf("an unexpected error occurred: %v", r))
			code = 1
		}
	}()

	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(stderr, renderError(err))
		switch rephrase.KindOf(err) {
		case rephrase.KindCredentialMissing, rephrase.KindProviderCallFailed:
			return 0
		}
		return 1
	}
	return 0
}

// renderError turns a command error into the message shown to the operator.
func renderError(err error) string {
	switch rephrase.KindOf(err) {
	case rephrase.KindCredentialMissing, rephrase.KindProviderCallFailed:
		return errorStyle.Render("Error:") + " " + err.Error()
	default:
		return errorStyle.Render("Error:") + " an unexpected error occurred: " + err.Error()
	}
}

func loadConfig(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(configFile)
	if err != nil {
		return err
	}
	if logLevel != "" {
		loaded.LogLevel = logLevel
	}

	level, err := config.ParseLevel(loaded.LogLevel)
	if err != nil {
		return fmt.Errorf("%w: %w", config.ErrInvalidConfig, err)
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	slog.Debug("configuration loaded", "config", loaded)
	cfg = loaded
	return nil
}

// newProvider builds the generation provider for the loaded configuration.
var newProvider = func(c *config.Config) provider.Provider {
	return provider.NewOpenAI(c.BaseURL)
}

func newClient() *rephrase.Client {
	return rephrase.New(newProvider(cfg), cfg.Client())
}
