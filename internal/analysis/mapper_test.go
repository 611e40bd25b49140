package analysis

import (
	"encoding/json"
	"testing"
	"time"

	"voxnote/internal/core"
)

func parseJSON(t *testing.T, s string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		t.Fatalf("test fixture is not valid JSON: %v", err)
	}
	return v
}

func TestMapAnalysisFullObject(t *testing.T) {
	v := parseJSON(t, `{
		"title": "Sprint planning",
		"summary": "Planned the next sprint.",
		"ideas": ["try pair programming"],
		"tasks": [
			{"title": "Update API docs", "description": "by Friday", "priority": "High"}
		],
		"structured_notes": [
			{"title": "Decision", "content": "Ship on Tuesday", "tags": ["release"], "type": "Decision"}
		]
	}`)

	result := MapAnalysis(v)

	if result.Title != "Sprint planning" || result.Summary != "Planned the next sprint." {
		t.Errorf("unexpected title/summary: %q / %q", result.Title, result.Summary)
	}
	if len(result.Ideas) != 1 || result.Ideas[0] != "try pair programming" {
		t.Errorf("unexpected ideas: %v", result.Ideas)
	}
	if len(result.Tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(result.Tasks))
	}
	task := result.Tasks[0]
	if task.Title != "Update API docs" || task.Description != "by Friday" || task.Priority != core.PriorityHigh {
		t.Errorf("unexpected task: %+v", task)
	}
	if task.DueDate != nil {
		t.Error("due date should never come from the model")
	}
	if len(result.StructuredNotes) != 1 {
		t.Fatalf("expected 1 note, got %d", len(result.StructuredNotes))
	}
	note := result.StructuredNotes[0]
	if note.NoteType != core.NoteTypeDecision || note.Content != "Ship on Tuesday" {
		t.Errorf("unexpected note: %+v", note)
	}
}

func TestMapAnalysisDefaultsMissingFields(t *testing.T) {
	result := MapAnalysis(parseJSON(t, `{}`))

	if result.Title != "" || result.Summary != "" {
		t.Errorf("absent fields should default to empty, got %+v", result)
	}
	if len(result.Ideas) != 0 || len(result.Tasks) != 0 || len(result.StructuredNotes) != 0 {
		t.Errorf("absent arrays should default to empty, got %+v", result)
	}
}

func TestMapAnalysisWrongTypesDefault(t *testing.T) {
	result := MapAnalysis(parseJSON(t, `{"title": 42, "summary": true, "ideas": "not an array"}`))

	if result.Title != "" || result.Summary != "" || result.Ideas != nil {
		t.Errorf("mistyped fields should default, got %+v", result)
	}
}

func TestMapAnalysisUnknownEnumsDefault(t *testing.T) {
	v := parseJSON(t, `{
		"tasks": [{"title": "t", "priority": "Unknown"}],
		"structured_notes": [{"title": "n", "content": "c", "tags": [], "type": "Unknown"}]
	}`)

	result := MapAnalysis(v)

	if len(result.Tasks) != 1 || result.Tasks[0].Priority != core.PriorityMedium {
		t.Errorf("unknown priority should map to Medium, got %+v", result.Tasks)
	}
	if len(result.StructuredNotes) != 1 || result.StructuredNotes[0].NoteType != core.NoteTypeReference {
		t.Errorf("unknown note type should map to Reference, got %+v", result.StructuredNotes)
	}
}

func TestMapAnalysisDropsMalformedItems(t *testing.T) {
	v := parseJSON(t, `{
		"ideas": ["keep", 7, null, "also keep"],
		"tasks": [
			{"title": "valid", "priority": "Low"},
			{"priority": "High"},
			{"title": "no priority"},
			"not an object"
		],
		"structured_notes": [
			{"title": "valid", "content": "c", "tags": ["a"], "type": "Meeting"},
			{"title": "no content", "tags": [], "type": "Meeting"},
			{"title": "no tags", "content": "c", "type": "Meeting"},
			{"title": "no type", "content": "c", "tags": []}
		]
	}`)

	result := MapAnalysis(v)

	if len(result.Ideas) != 2 {
		t.Errorf("non-string ideas should be dropped, got %v", result.Ideas)
	}
	if len(result.Tasks) != 1 || result.Tasks[0].Title != "valid" {
		t.Errorf("malformed tasks should be dropped, got %+v", result.Tasks)
	}
	if len(result.StructuredNotes) != 1 || result.StructuredNotes[0].Title != "valid" {
		t.Errorf("malformed notes should be dropped, got %+v", result.StructuredNotes)
	}
}

func TestMapAnalysisStampsNoteTimestamps(t *testing.T) {
	before := time.Now().UTC()
	result := MapAnalysis(parseJSON(t, `{
		"structured_notes": [{"title": "n", "content": "c", "tags": [], "type": "Action"}]
	}`))
	after := time.Now().UTC()

	note := result.StructuredNotes[0]
	if note.CreatedAt.Before(before) || note.CreatedAt.After(after) {
		t.Errorf("CreatedAt %v not stamped at mapping time", note.CreatedAt)
	}
	if !note.CreatedAt.Equal(note.UpdatedAt) {
		t.Error("CreatedAt and UpdatedAt should match at creation")
	}
}

func TestMapAnalysisNonObjectInput(t *testing.T) {
	for _, fixture := range []string{`[1,2,3]`, `"just a string"`, `42`, `null`} {
		result := MapAnalysis(parseJSON(t, fixture))
		if result.Title != "" || len(result.Tasks) != 0 {
			t.Errorf("non-object input %s should yield a zero result, got %+v", fixture, result)
		}
	}
}
