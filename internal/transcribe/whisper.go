package transcribe

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"voxnote/internal/logger"
)

// Transcriber converts a recorded audio file into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// WhisperTranscriber shells out to a whisper.cpp binary. The binary writes
// the transcript next to the audio file as <audio>.txt; that file is read
// back and trimmed.
type WhisperTranscriber struct {
	executable string
	modelPath  string
}

// NewWhisperTranscriber creates a transcriber for the given whisper.cpp
// executable and model file.
func NewWhisperTranscriber(executable, modelPath string) *WhisperTranscriber {
	return &WhisperTranscriber{executable: executable, modelPath: modelPath}
}

// Transcribe runs whisper.cpp over the audio file with language
// auto-detection and plain-text output.
func (w *WhisperTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	absPath, err := filepath.Abs(audioPath)
	if err != nil {
		return "", fmt.Errorf("invalid audio file path: %w", err)
	}

	logger.Debug("Running whisper.cpp", "executable", w.executable, "audio", absPath)

	cmd := exec.CommandContext(ctx, w.executable,
		"-m", w.modelPath,
		"-f", absPath,
		"-l", "auto",
		"-otxt",
	)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("whisper.cpp execution failed: %w (output: %s)", err, strings.TrimSpace(string(output)))
	}

	// whisper.cpp -otxt appends .txt to the input path.
	transcriptPath := absPath + ".txt"
	content, err := os.ReadFile(transcriptPath)
	if err != nil {
		return "", fmt.Errorf("failed to read transcript file %s: %w", transcriptPath, err)
	}

	return strings.TrimSpace(string(content)), nil
}
