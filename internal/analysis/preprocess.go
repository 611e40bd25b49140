package analysis

import (
	"fmt"
	"regexp"
)

const elisionMarker = "[content too long, middle section omitted]"

var (
	repeatedNewlines = regexp.MustCompile(`\n{2,}`)
	// Control characters that confuse the model or break prompt rendering.
	// Tab, newline and carriage return are kept.
	controlChars = regexp.MustCompile("[\x00-\x08\x0B\x0C\x0E-\x1F\x7F]")
)

// PreprocessTranscript normalizes a raw transcript before it is embedded in a
// prompt: runs of blank lines collapse to a single newline, control characters
// are stripped, and transcripts longer than maxRunes are cut down to their
// first and last halves with an elision marker in between. Head and tail are
// kept because the opening and closing of a recording usually carry the most
// salient context.
func PreprocessTranscript(transcript string, maxRunes int) string {
	out := repeatedNewlines.ReplaceAllString(transcript, "\n")
	out = controlChars.ReplaceAllString(out, "")

	if maxRunes <= 0 {
		maxRunes = DefaultMaxTranscriptRunes
	}

	runes := []rune(out)
	if len(runes) <= maxRunes {
		return out
	}

	// Truncation works on codepoints, not bytes, so multi-byte characters
	// never get split.
	keep := maxRunes / 2
	head := string(runes[:keep])
	tail := string(runes[len(runes)-keep:])
	return fmt.Sprintf("%s ... %s ... %s", head, elisionMarker, tail)
}
