package analysis

import (
	"regexp"
	"strings"
	"time"

	"voxnote/internal/core"
)

var (
	titleField   = regexp.MustCompile(`"title"\s*:\s*"([^"]+)"`)
	summaryField = regexp.MustCompile(`"summary"\s*:\s*"([^"]+)"`)
)

const fallbackSummaryPrefix = "[auto-generated summary]"

// FallbackResult synthesizes a best-effort AnalysisResult when every parse
// and repair attempt failed. Title and summary are pulled straight out of the
// corrupted text with regexes, which tolerate the surrounding invalid JSON,
// and anything still missing is derived from the transcript itself. The
// returned result always carries diagnostic entries flagging that the
// analysis degraded and needs manual review.
func FallbackResult(transcript, candidate string) core.AnalysisResult {
	var title, summary string

	if m := titleField.FindStringSubmatch(candidate); m != nil {
		title = m[1]
	}
	if m := summaryField.FindStringSubmatch(candidate); m != nil {
		summary = m[1]
	}

	if title == "" {
		words := strings.Fields(transcript)
		if len(words) > 5 {
			words = words[:5]
		}
		if len(words) > 0 {
			title = strings.Join(words, " ") + "..."
		} else {
			title = "Untitled Transcript"
		}
	}

	if summary == "" {
		preview := transcript
		if runes := []rune(transcript); len(runes) > 100 {
			preview = string(runes[:100]) + "..."
		}
		summary = fallbackSummaryPrefix + " " + preview
	}

	now := time.Now().UTC()
	return core.AnalysisResult{
		Title:   title,
		Summary: summary,
		Ideas:   []string{"[parse error] could not extract ideas"},
		Tasks: []core.Task{{
			Title:       "Review analysis result",
			Description: "The analysis may be incomplete due to a parse error; check the original transcript.",
			Priority:    core.PriorityMedium,
		}},
		StructuredNotes: []core.StructuredNote{{
			Title:     "Parse error notice",
			Content:   "A parse error occurred while processing the transcript. Review the original transcript text.",
			Tags:      []string{"error", "needs-review"},
			NoteType:  core.NoteTypeReference,
			CreatedAt: now,
			UpdatedAt: now,
		}},
	}
}
