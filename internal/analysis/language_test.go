package analysis

import "testing"

func TestDetectLanguageEnglish(t *testing.T) {
	texts := []string{
		"We should refactor the login flow before the next release.",
		"hello world",
		"1234 !@#$",
	}

	for _, text := range texts {
		if lang := DetectLanguage(text); lang != LangEnglish {
			t.Errorf("DetectLanguage(%q) = %q, want %q", text, lang, LangEnglish)
		}
	}
}

func TestDetectLanguageChinese(t *testing.T) {
	texts := []string{
		"今天的会议讨论了三个主要议题",
		"我们需要在周五之前更新API文档",
	}

	for _, text := range texts {
		if lang := DetectLanguage(text); lang != LangChinese {
			t.Errorf("DetectLanguage(%q) = %q, want %q", text, lang, LangChinese)
		}
	}
}

func TestDetectLanguageEmptyInput(t *testing.T) {
	// Empty and whitespace-only input must not divide by zero and must
	// return the default language.
	for _, text := range []string{"", "   ", "\n\t\n"} {
		if lang := DetectLanguage(text); lang != LangEnglish {
			t.Errorf("DetectLanguage(%q) = %q, want %q", text, lang, LangEnglish)
		}
	}
}

func TestDetectLanguageRatioBoundary(t *testing.T) {
	// 3 CJK out of 10 non-whitespace codepoints is exactly 0.3. The
	// threshold is a strict greater-than, so this stays English.
	atBoundary := "你好吗abcdefg"
	if lang := DetectLanguage(atBoundary); lang != LangEnglish {
		t.Errorf("ratio of exactly 0.3 should select English, got %q", lang)
	}

	// 4 out of 10 crosses the threshold.
	aboveBoundary := "你好吗呢abcdef"
	if lang := DetectLanguage(aboveBoundary); lang != LangChinese {
		t.Errorf("ratio of 0.4 should select Chinese, got %q", lang)
	}
}

func TestDetectLanguageIgnoresWhitespace(t *testing.T) {
	// Whitespace is excluded from the total, so padding must not dilute
	// the CJK ratio.
	text := "你 好 吗 呢    \n\n  ab"
	if lang := DetectLanguage(text); lang != LangChinese {
		t.Errorf("whitespace should not count toward the total, got %q", lang)
	}
}

func TestDetectLanguageExtensionRanges(t *testing.T) {
	// Codepoints from CJK extension B (supplementary plane) count too.
	text := string(rune(0x20010)) + string(rune(0x20011))
	if lang := DetectLanguage(text); lang != LangChinese {
		t.Errorf("extension-plane ideographs should count as CJK, got %q", lang)
	}
}
