package model

import (
	"encoding/json"
	"strings"
)

type QuestionType string

const (
	QuestionMCQ         QuestionType = "mcq"
	QuestionTrueFalse   QuestionType = "true_false"
	QuestionFillBlank   QuestionType = "fill_blank"
	QuestionShortAnswer QuestionType = "short_answer"
)

// swagger:model Quiz
type Quiz struct {
	BaseModel
	ClassID   uint   `gorm:"index;type:bigint unsigned" json:"classId"`
	Title     string `gorm:"size:255;not null" json:"title"`
	AuthorID  uint   `gorm:"index;type:bigint unsigned" json:"authorId"`
	Published bool   `gorm:"default:false" json:"published"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// Question 所属Quiz创建时一次性写入，之后不可修改
// swagger:model Question
type Question struct {
	BaseModel
	QuizID        uint            `gorm:"index;type:bigint unsigned" json:"quizId"`
	Type          QuestionType    `gorm:"size:20;not null" json:"type"`
	Text          string          `gorm:"type:text;not null" json:"text"`
	Choices       json.RawMessage `gorm:"type:json" json:"choices,omitempty"`      // 仅mcq：{"A":"...","B":"..."}
	CorrectAnswer json.RawMessage `gorm:"type:json" json:"-"`                      // 按题型编码，见AnswerKey
	Topics        json.RawMessage `gorm:"type:json" json:"topics,omitempty"`       // ["t1","t2"]
	Points        float64         `gorm:"type:double;default:1" json:"points"`
}

func (Question) TableName() string {
	return "questions"
}

type AnswerKind int

const (
	KeyNone     AnswerKind = iota // 未设置标准答案
	KeyValue                      // 单一标签或文本
	KeyKeywords                   // 关键字列表（short_answer）
)

// AnswerKey 标准答案的解码结果。存储形态是JSON（字符串或字符串列表），
// 判分按Kind分派，避免对列进行无类型比较。
type AnswerKey struct {
	Kind     AnswerKind
	Value    string
	Keywords []string
}

// Key 解码CorrectAnswer列。无法按JSON解析的历史数据按原始文本处理。
func (q *Question) Key() AnswerKey {
	raw := q.CorrectAnswer
	if len(raw) == 0 {
		return AnswerKey{Kind: KeyNone}
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return AnswerKey{Kind: KeyValue, Value: s}
	}
	var ks []string
	if err := json.Unmarshal(raw, &ks); err == nil {
		return AnswerKey{Kind: KeyKeywords, Keywords: ks}
	}
	return AnswerKey{Kind: KeyValue, Value: string(raw)}
}

// TopicList 解码Topics列。历史数据可能是逗号分隔的纯文本。
func (q *Question) TopicList() []string {
	if len(q.Topics) == 0 {
		return nil
	}
	var topics []string
	if err := json.Unmarshal(q.Topics, &topics); err == nil {
		return topics
	}
	var out []string
	for _, t := range strings.Split(string(q.Topics), ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// ChoiceMap 解码Choices列（标签→选项文本）。
func (q *Question) ChoiceMap() map[string]string {
	if len(q.Choices) == 0 {
		return nil
	}
	var m map[string]string
	if err := json.Unmarshal(q.Choices, &m); err != nil {
		return nil
	}
	return m
}

func EncodeAnswerValue(s string) json.RawMessage {
	b, _ := json.Marshal(s)
	return b
}

func EncodeAnswerKeywords(ks []string) json.RawMessage {
	b, _ := json.Marshal(ks)
	return b
}
