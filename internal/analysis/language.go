package analysis

import "unicode"

// Language is the prompt language selected for a transcript.
type Language string

const (
	LangEnglish Language = "en"
	LangChinese Language = "zh"
)

// cjkRanges covers the CJK unified ideograph blocks, basic plane through
// extension G. Pure codepoint arithmetic, no locale dependency.
var cjkRanges = [][2]rune{
	{0x4E00, 0x9FFF},   // CJK Unified Ideographs
	{0x3400, 0x4DBF},   // Extension A
	{0x20000, 0x2A6DF}, // Extension B
	{0x2A700, 0x2B73F}, // Extension C
	{0x2B740, 0x2B81F}, // Extension D
	{0x2B820, 0x2CEAF}, // Extension E
	{0x2CEB0, 0x2EBEF}, // Extension F
	{0x30000, 0x3134F}, // Extension G
}

func isCJK(r rune) bool {
	for _, rng := range cjkRanges {
		if r >= rng[0] && r <= rng[1] {
			return true
		}
	}
	return false
}

// DetectLanguage classifies a transcript as Chinese or English based on the
// ratio of CJK codepoints to non-whitespace codepoints. A ratio above 0.3
// selects Chinese; everything else, including empty input, selects English.
func DetectLanguage(text string) Language {
	var cjk, total int
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		if isCJK(r) {
			cjk++
		}
	}

	if total == 0 {
		return LangEnglish
	}
	if float64(cjk)/float64(total) > 0.3 {
		return LangChinese
	}
	return LangEnglish
}
