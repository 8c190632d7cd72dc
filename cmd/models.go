package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Yates-Labs/grompt/internal/provider"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the known model identifiers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		printModels(cmd.OutOrStdout(), cfg.Model)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}

func printModels(w io.Writer, defaultModel string) {
	fmt.Fprintln(w, headerStyle.Render("Models:"))
	for _, m := range provider.KnownModels {
		if m == defaultModel {
			fmt.Fprintln(w, "  "+promptStyle.Render(m)+" "+mutedStyle.Render("(default)"))
			continue
		}
		fmt.Fprintln(w, "  "+answerStyle.Render(m))
	}
	if !provider.IsKnownModel(defaultModel) {
		fmt.Fprintln(w, "  "+promptStyle.Render(defaultModel)+" "+mutedStyle.Render("(default, custom)"))
	}
}
