package analysis

import (
	"strings"
	"testing"
)

func TestBuildPromptSelectsEnglishTemplate(t *testing.T) {
	prompt := BuildPrompt(LangEnglish, "discussed the roadmap")

	if !strings.Contains(prompt, "analyzing meeting transcripts") {
		t.Error("expected the English instruction template")
	}
	if !strings.Contains(prompt, "Transcript: discussed the roadmap") {
		t.Error("transcript not interpolated into the prompt")
	}
	if !strings.HasSuffix(prompt, "JSON Output:") {
		t.Error("prompt should end with the output cue")
	}
}

func TestBuildPromptSelectsChineseTemplate(t *testing.T) {
	prompt := BuildPrompt(LangChinese, "讨论了产品路线图")

	if !strings.Contains(prompt, "文本分析助手") {
		t.Error("expected the Chinese instruction template")
	}
	if !strings.Contains(prompt, "Transcript: 讨论了产品路线图") {
		t.Error("transcript not interpolated into the prompt")
	}
}

func TestBuildPromptUnknownLanguageDefaultsToEnglish(t *testing.T) {
	prompt := BuildPrompt(Language("klingon"), "x")
	if !strings.Contains(prompt, "analyzing meeting transcripts") {
		t.Error("unknown languages should fall back to the English template")
	}
}
