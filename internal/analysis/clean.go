package analysis

import (
	"regexp"
	"strings"
)

var (
	thinkSpan  = regexp.MustCompile(`(?s)<think>.*?</think>`)
	fencedCode = regexp.MustCompile("```(?:json)?\\s*([\\s\\S]*?)\\s*```")
)

// CleanResponse strips non-JSON decoration from the assistant's raw text and
// extracts the first complete top-level JSON object it contains. Stages, in
// order: trim whitespace, drop <think> spans, unwrap a fenced code block,
// then a string-aware brace scan. If no complete object is found the result
// falls back to a naive first-{/last-} slice, and if even that fails the
// cleaned text is returned as-is so the caller's parse failure triggers
// repair or fallback.
func CleanResponse(response string) string {
	cleaned := strings.TrimSpace(response)

	// Chain-of-thought markup must never reach the JSON parser.
	cleaned = thinkSpan.ReplaceAllString(cleaned, "")

	// When the model wraps its answer in a markdown fence, only the fence
	// body matters; any prose around it is discarded.
	if m := fencedCode.FindStringSubmatch(cleaned); m != nil {
		cleaned = m[1]
	}

	if obj, ok := extractJSONObject(cleaned); ok {
		return obj
	}

	// Truncated output never closes its last brace; a naive slice at least
	// gives the repair stage something bracketed to work with.
	if start := strings.IndexByte(cleaned, '{'); start >= 0 {
		if end := strings.LastIndexByte(cleaned, '}'); end > start {
			return cleaned[start : end+1]
		}
	}

	return cleaned
}

// extractJSONObject scans for the first balanced top-level JSON object,
// tracking brace depth only outside string literals and honoring backslash
// escapes inside them. A regex cannot do this: string values may themselves
// contain { and } (a note describing code, for instance), and counting those
// would terminate the object early.
func extractJSONObject(s string) (string, bool) {
	var (
		depth      int
		inString   bool
		escapeNext bool
		start      = -1
	)

	// Structural characters are all ASCII, so byte indexing is safe even
	// with multi-byte content in between.
	for i := 0; i < len(s); i++ {
		if escapeNext {
			escapeNext = false
			continue
		}

		switch s[i] {
		case '\\':
			escapeNext = inString
		case '"':
			inString = !inString
		case '{':
			if !inString {
				if depth == 0 {
					start = i
				}
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 && start >= 0 {
					return s[start : i+1], true
				}
			}
		}
	}

	return "", false
}
