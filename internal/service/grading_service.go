package service

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"notedu_backend/internal/model"
	"notedu_backend/internal/repository"
	"notedu_backend/internal/util"
	"notedu_backend/pkg/monitoring"

	"gorm.io/gorm"
)

type GradingService struct {
	quizRepo    *repository.QuizRepository
	attemptRepo *repository.AttemptRepository
}

func NewGradingService(quizRepo *repository.QuizRepository, attemptRepo *repository.AttemptRepository) *GradingService {
	return &GradingService{quizRepo: quizRepo, attemptRepo: attemptRepo}
}

// gradeQuestion 按题型判定单题对错。
func gradeQuestion(q *model.Question, answer string) bool {
	key := q.Key()
	switch q.Type {
	case model.QuestionMCQ:
		if key.Kind != model.KeyValue {
			return false
		}
		return strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(key.Value))
	case model.QuestionTrueFalse:
		if key.Kind != model.KeyValue {
			return false
		}
		return NormalizeBoolean(answer) == NormalizeBoolean(key.Value)
	case model.QuestionFillBlank:
		if key.Kind != model.KeyValue {
			return false
		}
		return NormalizeText(answer) == NormalizeText(key.Value)
	case model.QuestionShortAnswer:
		normalized := NormalizeText(answer)
		switch key.Kind {
		case model.KeyKeywords:
			if len(key.Keywords) == 0 {
				return false
			}
			hits := 0
			for _, kw := range key.Keywords {
				if strings.Contains(normalized, NormalizeText(kw)) {
					hits++
				}
			}
			// 命中一半及以上关键词即判对
			return float64(hits)/float64(len(key.Keywords)) >= 0.5
		case model.KeyValue:
			return strings.Contains(normalized, NormalizeText(key.Value))
		}
	}
	return false
}

// scoreSubmission 对整份提交计分。只有作答过且题目存在的题计入满分，
// 未作答的题既不得分也不占满分。
func scoreSubmission(questions []model.Question, answers map[uint]string) (score, maxScore float64, results []model.QuestionResult) {
	for i := range questions {
		q := &questions[i]
		answer, answered := answers[q.ID]
		if !answered {
			continue
		}
		maxScore += q.Points
		correct := gradeQuestion(q, answer)
		if correct {
			score += q.Points
		}
		// Points记录题目分值，得分与否看Correct
		results = append(results, model.QuestionResult{
			QuestionID: q.ID,
			Correct:    correct,
			Points:     q.Points,
		})
	}
	return score, maxScore, results
}

// AttemptCount 某Quiz累计的答题次数。
func (s *GradingService) AttemptCount(quizID uint) (int64, error) {
	return s.attemptRepo.CountForQuiz(quizID)
}

// GradeAttempt 对一次提交判分并落库。答题记录只增不改，重复提交产生新记录。
func (s *GradingService) GradeAttempt(userID, quizID uint, submitted []model.SubmittedAnswer) (*model.Attempt, error) {
	quiz, err := s.quizRepo.FindByID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	// 未发布的Quiz不接受非作者的提交
	if !quizVisible(quiz, userID) {
		return nil, util.ErrQuizNotFound
	}

	questions, err := s.quizRepo.ListQuestions(quizID)
	if err != nil {
		return nil, err
	}

	answers := make(map[uint]string, len(submitted))
	for _, a := range submitted {
		answers[a.QuestionID] = string(a.Answer)
	}

	score, maxScore, results := scoreSubmission(questions, answers)

	answersJSON, err := json.Marshal(answers)
	if err != nil {
		return nil, err
	}
	resultsJSON, err := json.Marshal(results)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	attempt := &model.Attempt{
		QuizID:      quizID,
		UserID:      userID,
		Answers:     answersJSON,
		PerQuestion: resultsJSON,
		Score:       score,
		MaxScore:    maxScore,
		StartedAt:   now,
		FinishedAt:  &now,
	}
	if err := s.attemptRepo.Create(attempt); err != nil {
		return nil, err
	}
	monitoring.GradedAttempts.Inc()
	return attempt, nil
}
