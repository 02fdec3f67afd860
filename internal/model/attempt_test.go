package model

import (
	"encoding/json"
	"testing"
)

func TestAnswerValueUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want AnswerValue
	}{
		{"string", `"Doğru"`, "Doğru"},
		{"bool true", `true`, "true"},
		{"bool false", `false`, "false"},
		{"integer", `42`, "42"},
		{"float", `3.5`, "3.5"},
		{"null", `null`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v AnswerValue
			if err := json.Unmarshal([]byte(tt.raw), &v); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if v != tt.want {
				t.Errorf("got %q, want %q", v, tt.want)
			}
		})
	}
}

func TestSubmittedAnswerDecoding(t *testing.T) {
	payload := `[{"questionId":1,"answer":"B"},{"questionId":2,"answer":true},{"questionId":3,"answer":7}]`
	var answers []SubmittedAnswer
	if err := json.Unmarshal([]byte(payload), &answers); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(answers) != 3 {
		t.Fatalf("expected 3 answers, got %d", len(answers))
	}
	if answers[1].Answer != "true" || answers[2].Answer != "7" {
		t.Errorf("non-string answers must coerce to strings: %+v", answers)
	}
}

func TestAttemptResults(t *testing.T) {
	a := Attempt{PerQuestion: json.RawMessage(`[{"questionId":1,"correct":true,"points":2}]`)}
	rs := a.Results()
	if len(rs) != 1 || !rs[0].Correct || rs[0].Points != 2 {
		t.Errorf("Results() = %+v", rs)
	}

	a = Attempt{}
	if rs := a.Results(); rs != nil {
		t.Errorf("empty column: got %v, want nil", rs)
	}

	a = Attempt{PerQuestion: json.RawMessage(`broken`)}
	if rs := a.Results(); rs != nil {
		t.Errorf("invalid column: got %v, want nil", rs)
	}
}
