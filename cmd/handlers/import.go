package handlers

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"voxnote/internal/config"
	"voxnote/internal/core"
	"voxnote/internal/transcribe"
)

// NewImportCmd creates the import command: audio file in, analyzed session out
func NewImportCmd() *cobra.Command {
	var skipAnalysis bool

	cmd := &cobra.Command{
		Use:   "import <audio-file>",
		Short: "Transcribe an audio file and store it as an analyzed session",
		Long: `Create a session from a recorded audio file: transcribe it with
whisper.cpp, run the analysis pipeline over the transcript, and store the
result.

Examples:
  voxnote import recording.wav
  voxnote import recording.wav --skip-analysis`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Get()

			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			session := core.VoiceSession{
				ID:        uuid.NewString(),
				AudioPath: args[0],
				CreatedAt: time.Now().UTC(),
			}

			transcriber := transcribe.NewWhisperTranscriber(
				cfg.Whisper.ExecutablePath, cfg.Whisper.ModelPath)
			transcript, err := transcriber.Transcribe(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("transcription failed: %w", err)
			}
			session.Transcript = transcript

			if err := st.SaveSession(session); err != nil {
				return err
			}
			fmt.Printf("Created session %s\n", session.ID)

			if skipAnalysis {
				return nil
			}

			result, err := newAnalyzer().Analyze(cmd.Context(), transcript)
			if err != nil {
				return fmt.Errorf("analysis failed (transcript is saved, retry with 'voxnote backfill'): %w", err)
			}
			if err := st.SaveAnalysis(session.ID, result); err != nil {
				return err
			}

			fmt.Printf("Analyzed: %s\n", result.Title)
			return nil
		},
	}

	cmd.Flags().BoolVar(&skipAnalysis, "skip-analysis", false, "store the transcript without running analysis")

	return cmd
}
