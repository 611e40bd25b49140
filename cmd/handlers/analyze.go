package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// NewAnalyzeCmd creates the analyze command for ad-hoc transcript analysis
func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Analyze a transcript file and print the structured result",
		Long: `Run the analysis pipeline over a transcript and print the result as JSON.

Reads the transcript from the given file, or from stdin when the argument
is "-" or omitted.

Examples:
  voxnote analyze transcript.txt
  cat transcript.txt | voxnote analyze -`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				transcript []byte
				err        error
			)

			if len(args) == 0 || args[0] == "-" {
				transcript, err = io.ReadAll(os.Stdin)
			} else {
				transcript, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("failed to read transcript: %w", err)
			}

			result, err := newAnalyzer().Analyze(cmd.Context(), string(transcript))
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}

	return cmd
}
