package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"voxnote/internal/core"
	"voxnote/internal/logger"
	"voxnote/internal/ollama"
)

// DefaultMaxTranscriptRunes is the preprocessing truncation threshold. Long
// transcripts are cut to half this from the head and half from the tail so
// the prompt stays inside the model's context window.
const DefaultMaxTranscriptRunes = 8000

// ModelClient is the transport the analyzer needs: one non-streaming chat
// call returning the raw response body.
type ModelClient interface {
	Chat(ctx context.Context, prompt string, opts ollama.ChatOptions) (string, error)
}

// Options parameterize one analyzer instance. The zero value is not useful;
// use DefaultOptions.
type Options struct {
	Temperature        float64 // Deterministic-leaning sampling temperature
	NumPredict         int     // Output token bound
	MaxTranscriptRunes int     // Preprocessing truncation threshold
}

// DefaultOptions returns the production generation settings: a low
// temperature for consistent structure, enough output budget for long
// analyses.
func DefaultOptions() Options {
	return Options{
		Temperature:        0.1,
		NumPredict:         4096,
		MaxTranscriptRunes: DefaultMaxTranscriptRunes,
	}
}

// Analyzer runs the transcript analysis pipeline against a model server.
// Instances hold no mutable state and are safe for concurrent use.
type Analyzer struct {
	client ModelClient
	opts   Options
}

// NewAnalyzer creates an analyzer over the given model client.
func NewAnalyzer(client ModelClient, opts Options) *Analyzer {
	if opts.Temperature == 0 && opts.NumPredict == 0 {
		opts = DefaultOptions()
	}
	if opts.MaxTranscriptRunes <= 0 {
		opts.MaxTranscriptRunes = DefaultMaxTranscriptRunes
	}
	return &Analyzer{client: client, opts: opts}
}

// Analyze sends a transcript to the model and recovers a structured analysis
// from whatever comes back. Only two failure classes surface as errors:
// transport failure (nothing was received, so there is nothing to recover)
// and an envelope whose shape holds no assistant content. Every other
// malformation degrades to a valid result, marked for review when the
// degradation was severe.
func (a *Analyzer) Analyze(ctx context.Context, transcript string) (core.AnalysisResult, error) {
	if strings.TrimSpace(transcript) == "" {
		logger.Debug("Transcript is empty, returning empty analysis result")
		return core.AnalysisResult{}, nil
	}

	lang := DetectLanguage(transcript)
	processed := PreprocessTranscript(transcript, a.opts.MaxTranscriptRunes)
	prompt := BuildPrompt(lang, processed)

	logger.Debug("Requesting transcript analysis", "language", string(lang), "transcript_runes", len([]rune(processed)))

	raw, err := a.client.Chat(ctx, prompt, ollama.ChatOptions{
		Temperature: a.opts.Temperature,
		NumPredict:  a.opts.NumPredict,
	})
	if err != nil {
		return core.AnalysisResult{}, fmt.Errorf("model request failed: %w", err)
	}

	text, object, err := UnwrapResponse(raw)
	if err != nil {
		return core.AnalysisResult{}, err
	}
	if object != nil {
		// The server skipped the envelope and returned the analysis
		// directly.
		return MapAnalysis(object), nil
	}

	cleaned := CleanResponse(text)

	var parsed any
	if err := json.Unmarshal([]byte(cleaned), &parsed); err == nil {
		return MapAnalysis(parsed), nil
	}

	repaired := RepairJSON(cleaned)
	if err := json.Unmarshal([]byte(repaired), &parsed); err == nil {
		logger.Debug("Parsed model output after JSON repair")
		return MapAnalysis(parsed), nil
	}

	logger.Warn("Model output unparseable after repair, synthesizing fallback result")
	return FallbackResult(transcript, cleaned), nil
}
