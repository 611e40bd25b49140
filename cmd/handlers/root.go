/*
Copyright © 2025 Your Name

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package handlers

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"voxnote/internal/analysis"
	"voxnote/internal/config"
	"voxnote/internal/ollama"
)

var cfgFile string

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "voxnote",
		Short: "voxnote records, transcribes and analyzes voice notes.",
		Long: `voxnote turns recorded voice sessions into structured notes.

It transcribes audio with whisper.cpp and sends the transcript to a local
Ollama model, recovering a structured analysis (title, summary, ideas,
tasks, typed notes) even when the model's output is malformed.`,
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.voxnote.yaml)")

	rootCmd.AddCommand(NewServeCmd())
	rootCmd.AddCommand(NewImportCmd())
	rootCmd.AddCommand(NewAnalyzeCmd())
	rootCmd.AddCommand(NewSessionsCmd())
	rootCmd.AddCommand(NewBackfillCmd())
	rootCmd.AddCommand(NewModelsCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if _, err := config.Load(cfgFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
}

// newAnalyzer builds the analysis pipeline from the loaded configuration.
func newAnalyzer() *analysis.Analyzer {
	cfg := config.Get()
	client := ollama.NewClient(cfg.Ollama.Endpoint, cfg.Ollama.Model, cfg.Ollama.Timeout)
	return analysis.NewAnalyzer(client, analysis.Options{
		Temperature:        cfg.Ollama.Temperature,
		NumPredict:         cfg.Ollama.NumPredict,
		MaxTranscriptRunes: cfg.Ollama.MaxTranscriptChars,
	})
}
