package model

import (
	"encoding/json"
	"testing"
)

func TestQuestionKey(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want AnswerKey
	}{
		{"empty", "", AnswerKey{Kind: KeyNone}},
		{"string value", `"B"`, AnswerKey{Kind: KeyValue, Value: "B"}},
		{"keyword list", `["ısı","enerji"]`, AnswerKey{Kind: KeyKeywords, Keywords: []string{"ısı", "enerji"}}},
		// 历史数据可能不是合法JSON，按原始文本处理
		{"legacy plain text", `Dogru`, AnswerKey{Kind: KeyValue, Value: "Dogru"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := Question{CorrectAnswer: json.RawMessage(tt.raw)}
			got := q.Key()
			if got.Kind != tt.want.Kind || got.Value != tt.want.Value {
				t.Fatalf("Key() = %+v, want %+v", got, tt.want)
			}
			if len(got.Keywords) != len(tt.want.Keywords) {
				t.Fatalf("keywords = %v, want %v", got.Keywords, tt.want.Keywords)
			}
			for i := range got.Keywords {
				if got.Keywords[i] != tt.want.Keywords[i] {
					t.Errorf("keyword %d = %q, want %q", i, got.Keywords[i], tt.want.Keywords[i])
				}
			}
		})
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	q := Question{CorrectAnswer: EncodeAnswerValue("Doğru")}
	if key := q.Key(); key.Kind != KeyValue || key.Value != "Doğru" {
		t.Errorf("value round trip failed: %+v", key)
	}

	q = Question{CorrectAnswer: EncodeAnswerKeywords([]string{"a", "b"})}
	if key := q.Key(); key.Kind != KeyKeywords || len(key.Keywords) != 2 {
		t.Errorf("keywords round trip failed: %+v", key)
	}
}

func TestTopicList(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"empty", "", nil},
		{"json array", `["hucre","enerji"]`, []string{"hucre", "enerji"}},
		{"empty array", `[]`, nil},
		// 旧数据是逗号分隔文本
		{"comma fallback", `hucre, enerji , `, []string{"hucre", "enerji"}},
		{"single plain", `hucre`, []string{"hucre"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := Question{Topics: json.RawMessage(tt.raw)}
			got := q.TopicList()
			if len(got) != len(tt.want) {
				t.Fatalf("TopicList() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("topic %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestChoiceMap(t *testing.T) {
	q := Question{Choices: json.RawMessage(`{"A":"Mitokondri","B":"Ribozom"}`)}
	m := q.ChoiceMap()
	if len(m) != 2 || m["A"] != "Mitokondri" {
		t.Errorf("ChoiceMap() = %v", m)
	}

	q = Question{}
	if m := q.ChoiceMap(); m != nil {
		t.Errorf("empty choices: got %v, want nil", m)
	}

	q = Question{Choices: json.RawMessage(`not json`)}
	if m := q.ChoiceMap(); m != nil {
		t.Errorf("invalid choices: got %v, want nil", m)
	}
}
