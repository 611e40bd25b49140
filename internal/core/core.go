package core

import (
	"encoding/json"
	"fmt"
	"time"
)

// VoiceSession represents one recorded voice note and everything derived from it.
type VoiceSession struct {
	ID         string          `json:"id"`                   // Unique identifier for the session
	Title      string          `json:"title"`                // Display title, usually taken from the analysis
	AudioPath  string          `json:"audio_path"`           // Path to the recorded audio file
	DurationMS int64           `json:"duration_ms"`          // Recording duration in milliseconds
	Transcript string          `json:"transcript,omitempty"` // Transcribed text (empty until transcription ran)
	Analysis   *AnalysisResult `json:"analysis,omitempty"`   // Structured analysis (nil until analysis ran)
	CreatedAt  time.Time       `json:"created_at"`           // Timestamp when the session was recorded
}

// AnalysisResult is the structured analysis extracted from a transcript.
// It is always constructible: when the model response is unusable the pipeline
// degrades to a result whose fields carry diagnostic placeholder content
// instead of failing.
type AnalysisResult struct {
	Title           string           `json:"title"`            // Concise title summarizing the note
	Summary         string           `json:"summary"`          // Overview of the main points
	Ideas           []string         `json:"ideas"`            // Ideas or suggestions raised in the note
	Tasks           []Task           `json:"tasks"`            // Actionable tasks identified
	StructuredNotes []StructuredNote `json:"structured_notes"` // Key discussion points as typed notes
}

// Task is a single actionable item extracted from a transcript.
type Task struct {
	Title       string     `json:"title"`                 // Short task title (required)
	Description string     `json:"description,omitempty"` // Optional longer description
	Priority    Priority   `json:"priority"`              // Low/Medium/High/Urgent, defaults to Medium
	DueDate     *time.Time `json:"due_date,omitempty"`    // Optional due date (not produced by the model today)
}

// StructuredNote is a typed note extracted from a transcript.
type StructuredNote struct {
	Title     string    `json:"title"`      // Note title
	Content   string    `json:"content"`    // Note body
	Tags      []string  `json:"tags"`       // Free-form tags
	NoteType  NoteType  `json:"note_type"`  // Meeting/Brainstorm/Decision/Action/Reference
	CreatedAt time.Time `json:"created_at"` // Stamped when the note was parsed, not by the model
	UpdatedAt time.Time `json:"updated_at"` // Stamped when the note was parsed, not by the model
}

// Priority is the urgency level of a Task.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
	PriorityUrgent
)

// ParsePriority maps a priority string from the model to a Priority.
// Unrecognized values fall back to PriorityMedium.
func ParsePriority(s string) Priority {
	switch s {
	case "Low":
		return PriorityLow
	case "Medium":
		return PriorityMedium
	case "High":
		return PriorityHigh
	case "Urgent":
		return PriorityUrgent
	default:
		return PriorityMedium
	}
}

func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityHigh:
		return "High"
	case PriorityUrgent:
		return "Urgent"
	default:
		return "Medium"
	}
}

// MarshalJSON encodes the priority as its string form.
func (p Priority) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON decodes a priority string, defaulting to Medium.
func (p *Priority) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("priority must be a string: %w", err)
	}
	*p = ParsePriority(s)
	return nil
}

// NoteType classifies a StructuredNote.
type NoteType int

const (
	NoteTypeMeeting NoteType = iota
	NoteTypeBrainstorm
	NoteTypeDecision
	NoteTypeAction
	NoteTypeReference
)

// ParseNoteType maps a note type string from the model to a NoteType.
// Unrecognized values fall back to NoteTypeReference.
func ParseNoteType(s string) NoteType {
	switch s {
	case "Meeting":
		return NoteTypeMeeting
	case "Brainstorm":
		return NoteTypeBrainstorm
	case "Decision":
		return NoteTypeDecision
	case "Action":
		return NoteTypeAction
	default:
		return NoteTypeReference
	}
}

func (n NoteType) String() string {
	switch n {
	case NoteTypeMeeting:
		return "Meeting"
	case NoteTypeBrainstorm:
		return "Brainstorm"
	case NoteTypeDecision:
		return "Decision"
	case NoteTypeAction:
		return "Action"
	default:
		return "Reference"
	}
}

// MarshalJSON encodes the note type as its string form.
func (n NoteType) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.String())
}

// UnmarshalJSON decodes a note type string, defaulting to Reference.
func (n *NoteType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("note type must be a string: %w", err)
	}
	*n = ParseNoteType(s)
	return nil
}
