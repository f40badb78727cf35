package quiz

import (
	"strings"
	"testing"
)

func TestBuildPrompt_Distribution(t *testing.T) {
	prompt := BuildPrompt("IPsec provides confidentiality.", "", Counts{MCQ: 2, TF: 2, Open: 1})

	for _, want := range []string{
		"You are a helpful network security tutor.",
		`"""IPsec provides confidentiality."""`,
		"generate exactly 5 quiz questions",
		"- 2 multiple-choice (mcq)",
		"- 2 true/false (tf)",
		"- 1 open-ended (open)",
		`{
  "questions": [`,
		"Return ONLY valid JSON",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	if strings.Contains(prompt, "Focus on the topic") {
		t.Error("random prompt should not name a topic")
	}
}

func TestBuildPrompt_Topic(t *testing.T) {
	prompt := BuildPrompt("ctx", "TLS", DefaultCounts())
	if !strings.Contains(prompt, "Focus on the topic: TLS.") {
		t.Errorf("prompt missing topic line:\n%s", prompt)
	}
	if !strings.Contains(prompt, "generate exactly 8 quiz questions") {
		t.Error("prompt missing total count")
	}
}

func TestBuildPrompt_Deterministic(t *testing.T) {
	a := BuildPrompt("ctx", "VPN", DefaultCounts())
	b := BuildPrompt("ctx", "VPN", DefaultCounts())
	if a != b {
		t.Error("prompt is not deterministic")
	}
}

func TestBuildPrompt_ContractFields(t *testing.T) {
	prompt := BuildPrompt("", "", DefaultCounts())
	for _, field := range []string{"- id:", "- qtype:", "- question:", "- options:", "- answer:", "- explanation:"} {
		if !strings.Contains(prompt, field) {
			t.Errorf("prompt missing field %q", field)
		}
	}
}
