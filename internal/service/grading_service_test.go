package service

import (
	"testing"

	"notedu_backend/internal/model"
)

func mcqQuestion(id uint, answer string, points float64) model.Question {
	q := model.Question{
		Type:          model.QuestionMCQ,
		CorrectAnswer: model.EncodeAnswerValue(answer),
		Points:        points,
	}
	q.ID = id
	return q
}

func TestGradeQuestionMCQ(t *testing.T) {
	q := mcqQuestion(1, "B", 1)
	tests := []struct {
		answer string
		want   bool
	}{
		{"B", true},
		{"b", true},
		{" B ", true},
		{"A", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := gradeQuestion(&q, tt.answer); got != tt.want {
			t.Errorf("mcq answer %q: got %v, want %v", tt.answer, got, tt.want)
		}
	}
}

func TestGradeQuestionTrueFalse(t *testing.T) {
	q := model.Question{
		Type:          model.QuestionTrueFalse,
		CorrectAnswer: model.EncodeAnswerValue("Doğru"),
	}
	tests := []struct {
		answer string
		want   bool
	}{
		{"Doğru", true},
		{"dogru", true},
		{"true", true},
		{"1", true},
		{"Yanlış", false},
		{"false", false},
		{"bilmiyorum", false},
	}
	for _, tt := range tests {
		if got := gradeQuestion(&q, tt.answer); got != tt.want {
			t.Errorf("true_false answer %q: got %v, want %v", tt.answer, got, tt.want)
		}
	}
}

func TestGradeQuestionFillBlank(t *testing.T) {
	q := model.Question{
		Type:          model.QuestionFillBlank,
		CorrectAnswer: model.EncodeAnswerValue("Fotosentez"),
	}
	tests := []struct {
		answer string
		want   bool
	}{
		{"fotosentez", true},
		{"  FOTOSENTEZ  ", true},
		{"fotosentez!", true},
		{"solunum", false},
	}
	for _, tt := range tests {
		if got := gradeQuestion(&q, tt.answer); got != tt.want {
			t.Errorf("fill_blank answer %q: got %v, want %v", tt.answer, got, tt.want)
		}
	}
}

func TestGradeQuestionShortAnswerKeywords(t *testing.T) {
	q := model.Question{
		Type:          model.QuestionShortAnswer,
		CorrectAnswer: model.EncodeAnswerKeywords([]string{"ışık", "klorofil", "glikoz", "oksijen"}),
	}
	tests := []struct {
		name   string
		answer string
		want   bool
	}{
		// 4个关键词命中2个正好到50%边界，应判对
		{"exactly half", "Bitkiler ışık ve klorofil kullanır", true},
		{"all keywords", "Işık ve klorofil ile glikoz ve oksijen üretilir", true},
		{"one of four", "Sadece oksijen çıkar", false},
		{"none", "Hiçbir fikrim yok", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := gradeQuestion(&q, tt.answer); got != tt.want {
				t.Errorf("short_answer %q: got %v, want %v", tt.answer, got, tt.want)
			}
		})
	}
}

func TestGradeQuestionShortAnswerValueKey(t *testing.T) {
	// 没有关键词时退化为示例答案的包含匹配
	q := model.Question{
		Type:          model.QuestionShortAnswer,
		CorrectAnswer: model.EncodeAnswerValue("hücre zarı"),
	}
	if !gradeQuestion(&q, "Cevap hücre zarı olmalı") {
		t.Error("expected substring match on sample answer to pass")
	}
	if gradeQuestion(&q, "çekirdek") {
		t.Error("expected unrelated answer to fail")
	}
}

func TestGradeQuestionMissingKey(t *testing.T) {
	q := model.Question{Type: model.QuestionMCQ}
	if gradeQuestion(&q, "A") {
		t.Error("question without an answer key must never grade correct")
	}
}

func TestScoreSubmission(t *testing.T) {
	questions := []model.Question{
		mcqQuestion(1, "A", 2),
		mcqQuestion(2, "B", 3),
		mcqQuestion(3, "C", 5),
	}
	answers := map[uint]string{
		1: "A", // 对
		2: "C", // 错
		// 第3题未作答，不计满分
	}

	score, maxScore, results := scoreSubmission(questions, answers)

	if maxScore != 5 {
		t.Errorf("maxScore = %v, want 5 (unanswered questions excluded)", maxScore)
	}
	if score != 2 {
		t.Errorf("score = %v, want 2", score)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 graded results, got %d", len(results))
	}
	if !results[0].Correct || results[0].Points != 2 {
		t.Errorf("question 1: got %+v, want correct with 2 points", results[0])
	}
	// 答错的题Points仍记录题目分值，对错只看Correct
	if results[1].Correct || results[1].Points != 3 {
		t.Errorf("question 2: got %+v, want incorrect with 3 points recorded", results[1])
	}
}

func TestScoreSubmissionIgnoresUnknownQuestions(t *testing.T) {
	questions := []model.Question{mcqQuestion(1, "A", 1)}
	answers := map[uint]string{1: "A", 99: "B"}

	score, maxScore, results := scoreSubmission(questions, answers)

	if score != 1 || maxScore != 1 {
		t.Errorf("score/maxScore = %v/%v, want 1/1", score, maxScore)
	}
	if len(results) != 1 {
		t.Errorf("answers to unknown question ids must not produce results, got %d", len(results))
	}
}

func TestScoreSubmissionEmpty(t *testing.T) {
	score, maxScore, results := scoreSubmission([]model.Question{mcqQuestion(1, "A", 1)}, nil)
	if score != 0 || maxScore != 0 || len(results) != 0 {
		t.Errorf("empty submission: got %v/%v with %d results, want zeroes", score, maxScore, len(results))
	}
}
