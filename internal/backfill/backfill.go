package backfill

import (
	"context"

	"voxnote/internal/core"
	"voxnote/internal/logger"
	"voxnote/internal/store"
)

// TranscriptAnalyzer runs the analysis pipeline over a transcript.
type TranscriptAnalyzer interface {
	Analyze(ctx context.Context, transcript string) (core.AnalysisResult, error)
}

// Runner re-analyzes sessions that have a transcript but no stored analysis,
// typically after the analysis pipeline or model was changed.
type Runner struct {
	store    *store.Store
	analyzer TranscriptAnalyzer
}

// NewRunner creates a backfill runner.
func NewRunner(st *store.Store, analyzer TranscriptAnalyzer) *Runner {
	return &Runner{store: st, analyzer: analyzer}
}

// Run analyzes every session missing an analysis and saves the results.
// Per-session failures are logged and skipped; a failing model server should
// not abort the remaining sessions. Returns the number of sessions analyzed.
func (r *Runner) Run(ctx context.Context) (int, error) {
	sessions, err := r.store.SessionsMissingAnalysis()
	if err != nil {
		return 0, err
	}

	logger.Info("Backfill starting", "sessions", len(sessions))

	analyzed := 0
	for _, session := range sessions {
		if err := ctx.Err(); err != nil {
			return analyzed, err
		}

		result, err := r.analyzer.Analyze(ctx, session.Transcript)
		if err != nil {
			logger.Error("Backfill analysis failed, skipping session", err, "id", session.ID)
			continue
		}

		if err := r.store.SaveAnalysis(session.ID, result); err != nil {
			logger.Error("Backfill failed to save analysis, skipping session", err, "id", session.ID)
			continue
		}

		analyzed++
		logger.Debug("Backfilled session analysis", "id", session.ID, "title", result.Title)
	}

	logger.Info("Backfill finished", "analyzed", analyzed, "total", len(sessions))
	return analyzed, nil
}
