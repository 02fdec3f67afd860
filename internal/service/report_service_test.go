package service

import (
	"testing"
	"time"

	"notedu_backend/internal/model"
)

func TestParseWhen(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *time.Time
	}{
		{"empty", "", nil},
		{"rfc3339", "2026-03-15T10:30:00Z", timePtr(2026, 3, 15, 10, 30, 0)},
		{"datetime", "2026-03-15 10:30:00", timePtr(2026, 3, 15, 10, 30, 0)},
		{"date only", "2026-03-15", timePtr(2026, 3, 15, 0, 0, 0)},
		// 解析失败时条件不生效而不是报错
		{"garbage", "gecen hafta", nil},
		{"partial", "2026-03", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseWhen(tt.input)
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("parseWhen(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if got != nil && !got.Equal(*tt.want) {
				t.Errorf("parseWhen(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func timePtr(year int, month time.Month, day, hour, min, sec int) *time.Time {
	t := time.Date(year, month, day, hour, min, sec, 0, time.UTC)
	return &t
}

func TestScoreRatio(t *testing.T) {
	tests := []struct {
		name     string
		score    float64
		maxScore float64
		want     float64
	}{
		{"half", 5, 10, 0.5},
		{"perfect", 10, 10, 1},
		{"zero max", 3, 0, 0},
		{"negative max", 3, -1, 0},
	}
	for _, tt := range tests {
		a := model.Attempt{Score: tt.score, MaxScore: tt.maxScore}
		if got := scoreRatio(&a); got != tt.want {
			t.Errorf("%s: scoreRatio = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func makeAttempt(id, userID uint, score, maxScore float64, finished time.Time) model.Attempt {
	a := model.Attempt{
		UserID:     userID,
		Score:      score,
		MaxScore:   maxScore,
		FinishedAt: &finished,
	}
	a.ID = id
	return a
}

func TestBestAttemptsPicksHighestRatio(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	attempts := []model.Attempt{
		makeAttempt(1, 7, 4, 10, base),
		makeAttempt(2, 7, 9, 10, base.Add(time.Hour)),
		makeAttempt(3, 8, 5, 5, base),
		makeAttempt(4, 7, 6, 10, base.Add(2*time.Hour)),
	}

	got := bestAttempts(attempts)

	if len(got) != 2 {
		t.Fatalf("expected one attempt per student, got %d", len(got))
	}
	// 首次出现顺序保持：用户7在用户8之前
	if got[0].UserID != 7 || got[0].ID != 2 {
		t.Errorf("user 7: got attempt %d, want 2 (9/10 beats 6/10 and 4/10)", got[0].ID)
	}
	if got[1].UserID != 8 || got[1].ID != 3 {
		t.Errorf("user 8: got attempt %d, want 3", got[1].ID)
	}
}

func TestBestAttemptsTieKeepsNewest(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	attempts := []model.Attempt{
		makeAttempt(1, 7, 8, 10, base),
		makeAttempt(2, 7, 4, 5, base.Add(time.Hour)), // 同为0.8，更新
	}

	got := bestAttempts(attempts)

	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("ratio tie must keep the most recent attempt, got %+v", got)
	}
}

func TestBestAttemptsZeroMaxScore(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	attempts := []model.Attempt{
		makeAttempt(1, 7, 0, 0, base),
		makeAttempt(2, 7, 1, 10, base.Add(time.Hour)),
	}

	got := bestAttempts(attempts)

	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("any positive ratio must beat a zero-max attempt, got %+v", got)
	}
}

func TestBestAttemptsEmpty(t *testing.T) {
	if got := bestAttempts(nil); len(got) != 0 {
		t.Errorf("expected empty result, got %d", len(got))
	}
}
