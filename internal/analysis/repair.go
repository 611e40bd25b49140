package analysis

import (
	"regexp"
	"strings"
)

var (
	missingComma = regexp.MustCompile(`\}\s*\{`)
	bareKey      = regexp.MustCompile(`\{\s*([a-zA-Z0-9_]+)\s*:`)
	missingColon = regexp.MustCompile(`"([^"]+)"\s+"([^"]+)"`)
)

// repairs is the ordered list of text transforms applied to unparseable
// model output. Each is best-effort and assumes nothing about how close the
// input is to valid JSON. New heuristics append to the list.
var repairs = []func(string) string{
	balanceBraces,
	insertMissingCommas,
	quoteBareKeys,
	insertMissingColons,
}

// RepairJSON applies the repair heuristics to text that failed to parse and
// returns a candidate for exactly one more parse attempt. There is no second
// repair round; if the candidate still fails the caller moves on to the
// fallback synthesizer.
func RepairJSON(s string) string {
	for _, fix := range repairs {
		s = fix(s)
	}
	return s
}

// balanceBraces appends missing closing braces or prepends missing opening
// ones based on a raw count. Truncated model output usually loses closers.
func balanceBraces(s string) string {
	opens := strings.Count(s, "{")
	closes := strings.Count(s, "}")

	switch {
	case opens > closes:
		return s + strings.Repeat("}", opens-closes)
	case closes > opens:
		return strings.Repeat("{", closes-opens) + s
	default:
		return s
	}
}

// insertMissingCommas fixes adjacent array elements emitted without a
// separator, a common model mistake: `}{` becomes `},{`.
func insertMissingCommas(s string) string {
	return missingComma.ReplaceAllString(s, "},{")
}

// quoteBareKeys wraps unquoted object keys in quotes: `{title:` becomes
// `{"title":`.
func quoteBareKeys(s string) string {
	return bareKey.ReplaceAllString(s, `{"$1":`)
}

// insertMissingColons restores the colon between two adjacent quoted strings
// that look like a key-value pair with the separator dropped.
func insertMissingColons(s string) string {
	return missingColon.ReplaceAllString(s, `"$1":"$2"`)
}
