package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"voxnote/internal/core"
)

// Store persists voice sessions and their derived transcripts and analyses
// in a SQLite database.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (or creates) the database under dataDir.
func NewStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "voxnote.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initialize(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return store, nil
}

func (s *Store) initialize() error {
	sessionsTable := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		title TEXT,
		audio_path TEXT,
		duration_ms INTEGER,
		transcript TEXT,
		analysis TEXT,
		created_at DATETIME
	);`

	if _, err := s.db.Exec(sessionsTable); err != nil {
		return fmt.Errorf("failed to create sessions table: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveSession inserts or replaces a session row. The analysis, when present,
// is stored as a JSON blob.
func (s *Store) SaveSession(session core.VoiceSession) error {
	var analysisJSON string
	if session.Analysis != nil {
		data, err := json.Marshal(session.Analysis)
		if err != nil {
			return fmt.Errorf("failed to marshal analysis: %w", err)
		}
		analysisJSON = string(data)
	}

	query := `
	INSERT OR REPLACE INTO sessions
	(id, title, audio_path, duration_ms, transcript, analysis, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.Exec(query,
		session.ID,
		session.Title,
		session.AudioPath,
		session.DurationMS,
		session.Transcript,
		analysisJSON,
		session.CreatedAt,
	)
	return err
}

// GetSession retrieves a session by ID. Returns nil without error on a miss.
func (s *Store) GetSession(id string) (*core.VoiceSession, error) {
	query := `
	SELECT id, title, audio_path, duration_ms, transcript, analysis, created_at
	FROM sessions WHERE id = ?`

	session, err := scanSession(s.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan session: %w", err)
	}
	return session, nil
}

// ListSessions returns all sessions, newest first.
func (s *Store) ListSessions() ([]core.VoiceSession, error) {
	query := `
	SELECT id, title, audio_path, duration_ms, transcript, analysis, created_at
	FROM sessions ORDER BY created_at DESC`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []core.VoiceSession
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, *session)
	}
	return sessions, rows.Err()
}

// SaveTranscript stores the transcribed text for a session.
func (s *Store) SaveTranscript(id, transcript string) error {
	res, err := s.db.Exec(`UPDATE sessions SET transcript = ? WHERE id = ?`, transcript, id)
	if err != nil {
		return err
	}
	return requireRow(res, id)
}

// SaveAnalysis stores the analysis result for a session and promotes its
// title to the session title, matching how completed analyses name sessions.
func (s *Store) SaveAnalysis(id string, analysis core.AnalysisResult) error {
	data, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis: %w", err)
	}

	res, err := s.db.Exec(`UPDATE sessions SET analysis = ?, title = ? WHERE id = ?`,
		string(data), analysis.Title, id)
	if err != nil {
		return err
	}
	return requireRow(res, id)
}

// SessionsMissingAnalysis returns sessions that have a transcript but no
// stored analysis yet. Used by the backfill job.
func (s *Store) SessionsMissingAnalysis() ([]core.VoiceSession, error) {
	query := `
	SELECT id, title, audio_path, duration_ms, transcript, analysis, created_at
	FROM sessions
	WHERE transcript != '' AND (analysis IS NULL OR analysis = '')
	ORDER BY created_at ASC`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []core.VoiceSession
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, *session)
	}
	return sessions, rows.Err()
}

// DeleteSession removes a session row.
func (s *Store) DeleteSession(id string) error {
	res, err := s.db.Exec(`DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res, id)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*core.VoiceSession, error) {
	var (
		session      core.VoiceSession
		analysisJSON string
		createdAt    time.Time
	)

	err := row.Scan(
		&session.ID,
		&session.Title,
		&session.AudioPath,
		&session.DurationMS,
		&session.Transcript,
		&analysisJSON,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	session.CreatedAt = createdAt
	if analysisJSON != "" {
		var analysis core.AnalysisResult
		if err := json.Unmarshal([]byte(analysisJSON), &analysis); err != nil {
			return nil, fmt.Errorf("failed to unmarshal analysis for session %s: %w", session.ID, err)
		}
		session.Analysis = &analysis
	}

	return &session, nil
}

func requireRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("session %s not found", id)
	}
	return nil
}
