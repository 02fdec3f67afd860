package service

import (
	"encoding/json"
	"testing"

	"notedu_backend/internal/model"
)

func topicQuestion(id uint, topics ...string) model.Question {
	raw, _ := json.Marshal(topics)
	q := model.Question{
		Type:   model.QuestionMCQ,
		Topics: raw,
	}
	q.ID = id
	return q
}

func gradedAttempt(userID uint, results []model.QuestionResult) model.Attempt {
	raw, _ := json.Marshal(results)
	return model.Attempt{UserID: userID, PerQuestion: raw}
}

func TestAggregateMastery(t *testing.T) {
	questions := []model.Question{
		topicQuestion(1, "hucre"),
		topicQuestion(2, "hucre", "enerji"),
	}
	attempts := []model.Attempt{
		// 学生A两题全对
		gradedAttempt(10, []model.QuestionResult{
			{QuestionID: 1, Correct: true},
			{QuestionID: 2, Correct: true},
		}),
		// 学生B两题全错
		gradedAttempt(11, []model.QuestionResult{
			{QuestionID: 1, Correct: false},
			{QuestionID: 2, Correct: false},
		}),
	}

	got := aggregateMastery(questions, attempts)

	if len(got) != 2 {
		t.Fatalf("expected 2 topics, got %d", len(got))
	}
	// 按主题名排序：enerji在hucre之前
	if got[0].Topic != "enerji" || got[0].Attempts != 2 || got[0].Correct != 1 || got[0].Mastery != 0.5 {
		t.Errorf("enerji: got %+v, want 1/2 = 0.5", got[0])
	}
	if got[1].Topic != "hucre" || got[1].Attempts != 4 || got[1].Correct != 2 || got[1].Mastery != 0.5 {
		t.Errorf("hucre: got %+v, want 2/4 = 0.5", got[1])
	}
}

func TestAggregateMasteryFilteredSubset(t *testing.T) {
	questions := []model.Question{topicQuestion(1, "hucre")}
	attempts := []model.Attempt{
		gradedAttempt(10, []model.QuestionResult{{QuestionID: 1, Correct: true}}),
	}

	got := aggregateMastery(questions, attempts)

	if len(got) != 1 || got[0].Mastery != 1 {
		t.Fatalf("single correct observation must yield mastery 1.0, got %+v", got)
	}
}

func TestAggregateMasteryIgnoresUntaggedQuestions(t *testing.T) {
	questions := []model.Question{topicQuestion(1)}
	attempts := []model.Attempt{
		gradedAttempt(10, []model.QuestionResult{{QuestionID: 1, Correct: true}}),
	}

	if got := aggregateMastery(questions, attempts); len(got) != 0 {
		t.Errorf("questions without topics must not contribute, got %+v", got)
	}
}

func TestWeakTopics(t *testing.T) {
	// hucre观测不足，genetik掌握度达标，都不算薄弱
	mastery := []TopicMastery{
		{Topic: "enerji", Attempts: 5, Correct: 1, Mastery: 0.2},
		{Topic: "hucre", Attempts: 2, Correct: 0, Mastery: 0},
		{Topic: "genetik", Attempts: 4, Correct: 3, Mastery: 0.75},
		{Topic: "solunum", Attempts: 3, Correct: 1, Mastery: 1.0 / 3.0},
	}

	got := weakTopics(mastery)

	if len(got) != 2 {
		t.Fatalf("expected 2 weak topics, got %d: %+v", len(got), got)
	}
	// 按掌握度升序
	if got[0].Topic != "enerji" || got[1].Topic != "solunum" {
		t.Errorf("want [enerji solunum], got [%s %s]", got[0].Topic, got[1].Topic)
	}
}

func TestWeakTopicsThresholdBoundary(t *testing.T) {
	mastery := []TopicMastery{
		{Topic: "tam sinirda", Attempts: 3, Correct: 0, Mastery: 0.6},
	}
	if got := weakTopics(mastery); len(got) != 0 {
		t.Errorf("mastery exactly at threshold is not weak, got %+v", got)
	}
}
