package analysis

import (
	"time"

	"voxnote/internal/core"
)

// MapAnalysis converts a parsed JSON value into an AnalysisResult. Absent or
// mistyped fields default rather than fail, and malformed individual array
// elements are dropped rather than aborting the whole array: a partial but
// valid result beats rejecting a well-formed response over one off-schema
// item.
func MapAnalysis(v any) core.AnalysisResult {
	obj, ok := v.(map[string]any)
	if !ok {
		return core.AnalysisResult{}
	}

	return core.AnalysisResult{
		Title:           stringField(obj, "title"),
		Summary:         stringField(obj, "summary"),
		Ideas:           stringSlice(obj["ideas"]),
		Tasks:           mapTasks(obj["tasks"]),
		StructuredNotes: mapNotes(obj["structured_notes"]),
	}
}

func stringField(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return s
}

func stringSlice(v any) []string {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, item := range arr {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func mapTasks(v any) []core.Task {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}

	var tasks []core.Task
	for _, item := range arr {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		title, ok := obj["title"].(string)
		if !ok {
			continue
		}
		priority, ok := obj["priority"].(string)
		if !ok {
			continue
		}

		tasks = append(tasks, core.Task{
			Title:       title,
			Description: stringField(obj, "description"),
			Priority:    core.ParsePriority(priority),
		})
	}
	return tasks
}

func mapNotes(v any) []core.StructuredNote {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}

	now := time.Now().UTC()
	var notes []core.StructuredNote
	for _, item := range arr {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		title, ok := obj["title"].(string)
		if !ok {
			continue
		}
		content, ok := obj["content"].(string)
		if !ok {
			continue
		}
		rawTags, ok := obj["tags"].([]any)
		if !ok {
			continue
		}
		noteType, ok := obj["type"].(string)
		if !ok {
			continue
		}

		var tags []string
		for _, t := range rawTags {
			if s, ok := t.(string); ok {
				tags = append(tags, s)
			}
		}

		notes = append(notes, core.StructuredNote{
			Title:    title,
			Content:  content,
			Tags:     tags,
			NoteType: core.ParseNoteType(noteType),
			// Timestamps come from parse time, never from the model.
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	return notes
}
