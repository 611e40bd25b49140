package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"voxnote/internal/config"
	"voxnote/internal/core"
	"voxnote/internal/store"
)

type stubAnalyzer struct {
	result core.AnalysisResult
	err    error
	calls  int
}

func (a *stubAnalyzer) Analyze(_ context.Context, transcript string) (core.AnalysisResult, error) {
	a.calls++
	if a.err != nil {
		return core.AnalysisResult{}, a.err
	}
	return a.result, nil
}

func newTestServer(t *testing.T, analyzer TranscriptAnalyzer) (*Server, *store.Store) {
	t.Helper()
	st, err := store.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return New(st, analyzer, config.Server{Host: "127.0.0.1", Port: 0}), st
}

func doRequest(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	s, _ := newTestServer(t, &stubAnalyzer{})

	rec := doRequest(t, s, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("health response not JSON: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("got %v", body)
	}
}

func TestAnalyzeEndpoint(t *testing.T) {
	analyzer := &stubAnalyzer{result: core.AnalysisResult{Title: "T", Summary: "S"}}
	s, _ := newTestServer(t, analyzer)

	rec := doRequest(t, s, http.MethodPost, "/api/analyze", `{"transcript":"some words"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d: %s", rec.Code, rec.Body.String())
	}

	var result core.AnalysisResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("response not JSON: %v", err)
	}
	if result.Title != "T" || result.Summary != "S" {
		t.Errorf("unexpected result: %+v", result)
	}
	if analyzer.calls != 1 {
		t.Errorf("analyzer called %d times", analyzer.calls)
	}
}

func TestAnalyzeEndpointBadBody(t *testing.T) {
	s, _ := newTestServer(t, &stubAnalyzer{})

	rec := doRequest(t, s, http.MethodPost, "/api/analyze", "not json")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("got status %d", rec.Code)
	}
}

func TestAnalyzeEndpointModelFailure(t *testing.T) {
	s, _ := newTestServer(t, &stubAnalyzer{err: errors.New("connection refused")})

	rec := doRequest(t, s, http.MethodPost, "/api/analyze", `{"transcript":"x"}`)
	if rec.Code != http.StatusBadGateway {
		t.Errorf("transport failures should map to 502, got %d", rec.Code)
	}
}

func TestSessionLifecycle(t *testing.T) {
	analyzer := &stubAnalyzer{result: core.AnalysisResult{Title: "Analyzed title"}}
	s, st := newTestServer(t, analyzer)

	session := core.VoiceSession{
		ID:         "s1",
		Title:      "Untitled",
		Transcript: "the transcript",
		CreatedAt:  time.Now().UTC(),
	}
	if err := st.SaveSession(session); err != nil {
		t.Fatal(err)
	}

	// List shows the session.
	rec := doRequest(t, s, http.MethodGet, "/api/sessions/", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list failed: %d", rec.Code)
	}
	var sessions []core.VoiceSession
	if err := json.Unmarshal(rec.Body.Bytes(), &sessions); err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 1 || sessions[0].ID != "s1" {
		t.Errorf("unexpected list: %+v", sessions)
	}

	// Analyze persists the result and promotes the title.
	rec = doRequest(t, s, http.MethodPost, "/api/sessions/s1/analyze", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("analyze failed: %d: %s", rec.Code, rec.Body.String())
	}
	stored, err := st.GetSession("s1")
	if err != nil || stored == nil {
		t.Fatalf("session lost: %v", err)
	}
	if stored.Analysis == nil || stored.Title != "Analyzed title" {
		t.Errorf("analysis not persisted: %+v", stored)
	}

	// Get returns the analyzed session.
	rec = doRequest(t, s, http.MethodGet, "/api/sessions/s1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get failed: %d", rec.Code)
	}

	// Delete removes it.
	rec = doRequest(t, s, http.MethodDelete, "/api/sessions/s1", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete failed: %d", rec.Code)
	}
	rec = doRequest(t, s, http.MethodGet, "/api/sessions/s1", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestGetSessionNotFound(t *testing.T) {
	s, _ := newTestServer(t, &stubAnalyzer{})

	rec := doRequest(t, s, http.MethodGet, "/api/sessions/nope", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("got %d", rec.Code)
	}
}

func TestDeleteSessionNotFound(t *testing.T) {
	s, _ := newTestServer(t, &stubAnalyzer{})

	rec := doRequest(t, s, http.MethodDelete, "/api/sessions/nope", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("got %d", rec.Code)
	}
}

func TestAnalyzeSessionWithoutTranscript(t *testing.T) {
	s, st := newTestServer(t, &stubAnalyzer{})

	if err := st.SaveSession(core.VoiceSession{ID: "empty", CreatedAt: time.Now().UTC()}); err != nil {
		t.Fatal(err)
	}

	rec := doRequest(t, s, http.MethodPost, "/api/sessions/empty/analyze", "")
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409 for a transcript-less session, got %d", rec.Code)
	}
}

func TestAnalyzeSessionModelFailureDoesNotPersist(t *testing.T) {
	s, st := newTestServer(t, &stubAnalyzer{err: errors.New("no content")})

	session := core.VoiceSession{ID: "s1", Transcript: "words", CreatedAt: time.Now().UTC()}
	if err := st.SaveSession(session); err != nil {
		t.Fatal(err)
	}

	rec := doRequest(t, s, http.MethodPost, "/api/sessions/s1/analyze", "")
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("got %d", rec.Code)
	}

	stored, _ := st.GetSession("s1")
	if stored.Analysis != nil {
		t.Error("failed analysis must not be persisted")
	}
}
