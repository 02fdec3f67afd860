package service

import (
	"testing"

	"notedu_backend/internal/model"
)

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain json", `[{"a":1}]`, `[{"a":1}]`},
		{"json fence", "```json\n[{\"a\":1}]\n```", `[{"a":1}]`},
		{"bare fence", "```\n[1,2]\n```", "[1,2]"},
		{"surrounding whitespace", "  \n```json\n{}\n```\n ", "{}"},
		{"unterminated fence", "```json\n[1]", "[1]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripCodeFence(tt.input); got != tt.want {
				t.Errorf("stripCodeFence(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestConvertMultipleChoice(t *testing.T) {
	gq := generatedQuestion{
		Type:          "multiple_choice",
		Question:      "Hücrenin enerji santrali hangisidir?",
		Choices:       map[string]string{"A": "Mitokondri", "B": "Ribozom", "C": "Golgi", "D": "Lizozom"},
		CorrectAnswer: "A",
		Topics:        []string{"hucre"},
	}

	got, ok := convert(gq)
	if !ok {
		t.Fatal("expected conversion to succeed")
	}
	if got.Type != model.QuestionMCQ {
		t.Errorf("type = %s, want mcq", got.Type)
	}
	if got.CorrectAnswer != "A" || len(got.Choices) != 4 || got.Points != 1 {
		t.Errorf("unexpected conversion: %+v", got)
	}
}

func TestConvertTrueFalseUsesStatement(t *testing.T) {
	gq := generatedQuestion{
		Type:          "true_false",
		Statement:     "Mitokondri enerji üretir.",
		CorrectAnswer: "Doğru",
	}

	got, ok := convert(gq)
	if !ok {
		t.Fatal("expected conversion to succeed")
	}
	if got.Type != model.QuestionTrueFalse || got.Text != "Mitokondri enerji üretir." {
		t.Errorf("unexpected conversion: %+v", got)
	}
}

func TestConvertShortAnswer(t *testing.T) {
	gq := generatedQuestion{
		Type:         "short_answer",
		Question:     "Fotosentez nedir?",
		SampleAnswer: "Bitkilerin ışık enerjisiyle besin üretmesi",
		Keywords:     []string{"ışık", "besin", "bitki"},
	}

	got, ok := convert(gq)
	if !ok {
		t.Fatal("expected conversion to succeed")
	}
	if got.CorrectAnswer != gq.SampleAnswer {
		t.Errorf("sample answer must become the answer key, got %q", got.CorrectAnswer)
	}
	if len(got.Keywords) != 3 {
		t.Errorf("keywords = %v, want 3 entries", got.Keywords)
	}
	// 没有显式主题时关键词兼作主题标签
	if len(got.Topics) != 3 || got.Topics[0] != "ışık" {
		t.Errorf("topics = %v, want keywords reused as topics", got.Topics)
	}
}

func TestConvertAltFieldNames(t *testing.T) {
	gq := generatedQuestion{
		QuestionType:  "mcq",
		Question:      "Soru?",
		CorrectAnswer: "B",
	}
	if got, ok := convert(gq); !ok || got.Type != model.QuestionMCQ {
		t.Errorf("question_type/mcq aliases must convert, got %+v ok=%v", got, ok)
	}
}

func TestConvertRejectsIncomplete(t *testing.T) {
	tests := []struct {
		name string
		gq   generatedQuestion
	}{
		{"unknown type", generatedQuestion{Type: "essay", Question: "?"}},
		{"mcq without answer", generatedQuestion{Type: "multiple_choice", Question: "?"}},
		{"fill blank without sentence", generatedQuestion{Type: "fill_blank", CorrectAnswer: "x"}},
		{"short answer without any answer", generatedQuestion{Type: "short_answer", Question: "?"}},
		{"empty", generatedQuestion{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := convert(tt.gq); ok {
				t.Error("expected conversion to be rejected")
			}
		})
	}
}
