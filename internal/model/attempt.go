package model

import (
	"encoding/json"
	"strconv"
	"time"
)

// Attempt 一次判分完成的答题记录。finished_at写入后不再更新，
// 重做产生新记录。
// swagger:model Attempt
type Attempt struct {
	BaseModel
	QuizID      uint            `gorm:"index;type:bigint unsigned" json:"quizId"`
	UserID      uint            `gorm:"index;type:bigint unsigned" json:"userId"`
	Answers     json.RawMessage `gorm:"type:json" json:"answers,omitempty"`     // 原始提交
	PerQuestion json.RawMessage `gorm:"type:json" json:"perQuestion,omitempty"` // []QuestionResult
	Score       float64         `gorm:"type:double" json:"score"`
	MaxScore    float64         `gorm:"type:double" json:"maxScore"`
	StartedAt   time.Time       `gorm:"default:CURRENT_TIMESTAMP(3)" json:"startedAt"`
	FinishedAt  *time.Time      `gorm:"index" json:"finishedAt"`
}

func (Attempt) TableName() string {
	return "attempts"
}

// QuestionResult 单题判分结果，序列化后存入Attempt.PerQuestion
type QuestionResult struct {
	QuestionID uint    `json:"questionId"`
	Correct    bool    `json:"correct"`
	Points     float64 `json:"points"`
}

// Results 解码PerQuestion列。
func (a *Attempt) Results() []QuestionResult {
	if len(a.PerQuestion) == 0 {
		return nil
	}
	var rs []QuestionResult
	if err := json.Unmarshal(a.PerQuestion, &rs); err != nil {
		return nil
	}
	return rs
}

// AnswerValue 提交答案的宽松承载：前端可能传字符串、布尔或数字，
// 统一折算成字符串参与判分；null视为空串。
type AnswerValue string

func (v *AnswerValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = AnswerValue(s)
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*v = AnswerValue(strconv.FormatBool(b))
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*v = AnswerValue(strconv.FormatFloat(f, 'f', -1, 64))
		return nil
	}
	if string(data) == "null" {
		*v = ""
		return nil
	}
	*v = AnswerValue(data)
	return nil
}

// SubmittedAnswer 提交中的单题作答
type SubmittedAnswer struct {
	QuestionID uint        `json:"questionId"`
	Answer     AnswerValue `json:"answer"`
}
