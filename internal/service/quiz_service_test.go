package service

import (
	"testing"

	"notedu_backend/internal/model"
)

func TestQuizVisible(t *testing.T) {
	const author, student = uint(1), uint(2)
	tests := []struct {
		name      string
		published bool
		userID    uint
		want      bool
	}{
		{"published quiz visible to anyone", true, student, true},
		{"unpublished quiz hidden from others", false, student, false},
		{"unpublished quiz visible to its author", false, author, true},
		{"published quiz visible to its author", true, author, true},
	}
	for _, tt := range tests {
		q := &model.Quiz{AuthorID: author, Published: tt.published}
		if got := quizVisible(q, tt.userID); got != tt.want {
			t.Errorf("%s: quizVisible = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestBuildQuestionDefaults(t *testing.T) {
	q, err := buildQuestion(QuestionInput{Type: model.QuestionMCQ, Text: "Soru", CorrectAnswer: "A"})
	if err != nil {
		t.Fatalf("buildQuestion: %v", err)
	}
	if q.Points != 1 {
		t.Errorf("default points = %v, want 1", q.Points)
	}
	key := q.Key()
	if key.Kind != model.KeyValue || key.Value != "A" {
		t.Errorf("key = %+v, want value A", key)
	}
}

func TestBuildQuestionShortAnswerKeywords(t *testing.T) {
	q, err := buildQuestion(QuestionInput{
		Type:     model.QuestionShortAnswer,
		Text:     "Fotosentez nedir?",
		Keywords: []string{"ışık", "klorofil"},
	})
	if err != nil {
		t.Fatalf("buildQuestion: %v", err)
	}
	key := q.Key()
	if key.Kind != model.KeyKeywords || len(key.Keywords) != 2 {
		t.Errorf("key = %+v, want 2 keywords", key)
	}
}
