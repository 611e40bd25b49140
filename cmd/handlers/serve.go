package handlers

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"voxnote/internal/config"
	"voxnote/internal/server"
	"voxnote/internal/store"
)

// NewServeCmd creates the serve command for starting the HTTP API
func NewServeCmd() *cobra.Command {
	var (
		port int
		host string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the voxnote HTTP API.

The server exposes session CRUD endpoints and the transcript analysis
pipeline. Analysis requests are proxied to the configured Ollama server.

Examples:
  # Start on the configured port (default 8080)
  voxnote serve

  # Start on a custom port
  voxnote serve --port 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), host, port)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "HTTP server port (default from config: 8080)")
	cmd.Flags().StringVar(&host, "host", "", "HTTP server host (default from config: 0.0.0.0)")

	return cmd
}

func runServe(ctx context.Context, host string, port int) error {
	cfg := config.Get()

	serverCfg := cfg.Server
	if host != "" {
		serverCfg.Host = host
	}
	if port != 0 {
		serverCfg.Port = port
	}

	st, err := store.NewStore(cfg.App.DataDir)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.New(st, newAnalyzer(), serverCfg)
	return srv.Start(ctx)
}
