package service

import (
	"encoding/json"
	"errors"
	"strings"

	"notedu_backend/internal/model"
	"notedu_backend/internal/repository"
	"notedu_backend/internal/util"

	"gorm.io/gorm"
)

// QuestionInput 创建Quiz时的单题定义。
type QuestionInput struct {
	Type          model.QuestionType `json:"type" binding:"required"`
	Text          string             `json:"text" binding:"required"`
	Choices       map[string]string  `json:"choices,omitempty"`
	CorrectAnswer string             `json:"correct_answer,omitempty"`
	Keywords      []string           `json:"keywords,omitempty"`
	Topics        []string           `json:"topics,omitempty"`
	Points        float64            `json:"points,omitempty"`
}

type QuizService struct {
	quizRepo  *repository.QuizRepository
	classRepo *repository.ClassRepository
}

func NewQuizService(quizRepo *repository.QuizRepository, classRepo *repository.ClassRepository) *QuizService {
	return &QuizService{quizRepo: quizRepo, classRepo: classRepo}
}

// buildQuestion 输入定义转存储模型。简答题优先使用关键词列表作为答案键。
func buildQuestion(in QuestionInput) (model.Question, error) {
	q := model.Question{
		Type:   in.Type,
		Text:   in.Text,
		Points: in.Points,
	}
	if q.Points <= 0 {
		q.Points = 1
	}
	if len(in.Choices) > 0 {
		raw, err := json.Marshal(in.Choices)
		if err != nil {
			return q, err
		}
		q.Choices = raw
	}
	if len(in.Topics) > 0 {
		raw, err := json.Marshal(in.Topics)
		if err != nil {
			return q, err
		}
		q.Topics = raw
	}
	if in.Type == model.QuestionShortAnswer && len(in.Keywords) > 0 {
		q.CorrectAnswer = model.EncodeAnswerKeywords(in.Keywords)
		return q, nil
	}
	q.CorrectAnswer = model.EncodeAnswerValue(in.CorrectAnswer)
	return q, nil
}

// CreateQuiz 只有班级所有者可以创建，Quiz与题目在同一事务写入。
func (s *QuizService) CreateQuiz(authorID, classID uint, title string, published bool, inputs []QuestionInput) (*model.Quiz, error) {
	if strings.TrimSpace(title) == "" {
		return nil, util.ErrEmptyTitle
	}
	if len(inputs) == 0 {
		return nil, util.ErrNoQuestions
	}
	class, err := s.classRepo.FindByID(classID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrClassNotFound
		}
		return nil, err
	}
	if class.OwnerID != authorID {
		return nil, util.ErrPermissionDenied
	}

	questions := make([]model.Question, 0, len(inputs))
	for _, in := range inputs {
		q, err := buildQuestion(in)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}

	quiz := &model.Quiz{
		ClassID:   classID,
		Title:     strings.TrimSpace(title),
		AuthorID:  authorID,
		Published: published,
	}
	if err := s.quizRepo.CreateWithQuestions(quiz, questions); err != nil {
		return nil, err
	}
	return quiz, nil
}

// quizVisible 未发布的Quiz只有作者本人可见可答。
func quizVisible(q *model.Quiz, userID uint) bool {
	return q.Published || q.AuthorID == userID
}

func (s *QuizService) GetQuiz(quizID uint) (*model.Quiz, error) {
	quiz, err := s.quizRepo.FindByID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	return quiz, nil
}

// ListForClass 学生只看到已发布的Quiz，班级所有者看到全部。
func (s *QuizService) ListForClass(classID, userID uint) ([]model.Quiz, error) {
	class, err := s.classRepo.FindByID(classID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrClassNotFound
		}
		return nil, err
	}
	quizzes, err := s.quizRepo.ListForClass(classID)
	if err != nil {
		return nil, err
	}
	if class.OwnerID == userID {
		return quizzes, nil
	}
	published := make([]model.Quiz, 0, len(quizzes))
	for _, q := range quizzes {
		if q.Published {
			published = append(published, q)
		}
	}
	return published, nil
}

// GetVisible 按可见性取Quiz，对非作者隐藏未发布的存在性。
func (s *QuizService) GetVisible(userID, quizID uint) (*model.Quiz, error) {
	quiz, err := s.GetQuiz(quizID)
	if err != nil {
		return nil, err
	}
	if !quizVisible(quiz, userID) {
		return nil, util.ErrQuizNotFound
	}
	return quiz, nil
}

// Questions 返回Quiz全部题目。答案键通过序列化标签对外隐藏。
func (s *QuizService) Questions(userID, quizID uint) ([]model.Question, error) {
	if _, err := s.GetVisible(userID, quizID); err != nil {
		return nil, err
	}
	return s.quizRepo.ListQuestions(quizID)
}

// SetPublished 发布或下线Quiz，仅限作者本人。
func (s *QuizService) SetPublished(userID, quizID uint, published bool) (*model.Quiz, error) {
	quiz, err := s.GetQuiz(quizID)
	if err != nil {
		return nil, err
	}
	if quiz.AuthorID != userID {
		return nil, util.ErrPermissionDenied
	}
	quiz.Published = published
	if err := s.quizRepo.Update(quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

// DeleteQuiz 仅限作者本人，级联删除题目与答题记录。
func (s *QuizService) DeleteQuiz(userID, quizID uint) error {
	quiz, err := s.GetQuiz(quizID)
	if err != nil {
		return err
	}
	if quiz.AuthorID != userID {
		return util.ErrPermissionDenied
	}
	return s.quizRepo.DeleteCascade(quizID)
}
