package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Yates-Labs/grompt/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the rephrase API over HTTP",
	Long: `Serve a JSON API for rephrasing prompts.

Endpoints:
  POST /api/v1/rephrase   {"prompt": "...", "model": "...", "temperature": 0.5, "max_tokens": 1024}
  GET  /api/v1/models
  GET  /api/v1/health

A per-request API key may be sent in the X-API-Key header; otherwise the
configured key is used. Keys are held in memory only.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config, :8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	addr := cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(addr, newClient(), nil).Run(ctx)
}
