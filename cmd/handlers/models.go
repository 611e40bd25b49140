package handlers

import (
	"fmt"

	"github.com/spf13/cobra"

	"voxnote/internal/config"
	"voxnote/internal/ollama"
)

// NewModelsCmd creates the models command group for Ollama management
func NewModelsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "models",
		Short: "Manage models on the configured Ollama server",
	}

	cmd.AddCommand(newModelsListCmd())
	cmd.AddCommand(newModelsPullCmd())

	return cmd
}

func newOllamaClient() *ollama.Client {
	cfg := config.Get()
	return ollama.NewClient(cfg.Ollama.Endpoint, cfg.Ollama.Model, cfg.Ollama.Timeout)
}

func newModelsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List models installed on the Ollama server",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newOllamaClient()

			available, err := client.IsAvailable(cmd.Context())
			if err != nil || !available {
				return fmt.Errorf("ollama server not available at %s", config.Get().Ollama.Endpoint)
			}

			models, err := client.ListModels(cmd.Context())
			if err != nil {
				return err
			}

			if len(models) == 0 {
				fmt.Println("No models installed.")
				return nil
			}
			for _, m := range models {
				fmt.Printf("%-40s %6.1f GB\n", m.Name, float64(m.Size)/1e9)
			}
			return nil
		},
	}
}

func newModelsPullCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pull <name>",
		Short: "Pull a model onto the Ollama server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newOllamaClient()
			fmt.Printf("Pulling %s (this can take a while)...\n", args[0])
			if err := client.PullModel(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println("Done.")
			return nil
		},
	}
}
