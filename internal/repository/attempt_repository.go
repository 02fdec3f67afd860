package repository

import (
	"time"

	"notedu_backend/internal/model"

	"gorm.io/gorm"
)

// AttemptFilter 答题记录列表的可选过滤条件，零值表示不过滤。
type AttemptFilter struct {
	QuizID uint
	UserID uint
	Since  *time.Time
	Until  *time.Time
}

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

func (r *AttemptRepository) Create(attempt *model.Attempt) error {
	return r.DB.Create(attempt).Error
}

func (r *AttemptRepository) FindByID(id uint) (*model.Attempt, error) {
	var attempt model.Attempt
	err := r.DB.First(&attempt, id).Error
	return &attempt, err
}

// ListForQuizzes 按Quiz集合查询答题记录并套用过滤条件，按完成时间倒序。
func (r *AttemptRepository) ListForQuizzes(quizIDs []uint, filter AttemptFilter) ([]model.Attempt, error) {
	var attempts []model.Attempt
	if len(quizIDs) == 0 {
		return attempts, nil
	}
	q := r.DB.Where("quiz_id IN ?", quizIDs)
	if filter.QuizID != 0 {
		q = q.Where("quiz_id = ?", filter.QuizID)
	}
	if filter.UserID != 0 {
		q = q.Where("user_id = ?", filter.UserID)
	}
	if filter.Since != nil {
		q = q.Where("finished_at >= ?", *filter.Since)
	}
	if filter.Until != nil {
		q = q.Where("finished_at <= ?", *filter.Until)
	}
	err := q.Order("finished_at desc").Find(&attempts).Error
	return attempts, err
}

func (r *AttemptRepository) ListForUser(userID uint) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.DB.Where("user_id = ?", userID).Order("finished_at desc").Find(&attempts).Error
	return attempts, err
}

// CountForQuiz 统计某Quiz的答题次数。
func (r *AttemptRepository) CountForQuiz(quizID uint) (int64, error) {
	var n int64
	err := r.DB.Model(&model.Attempt{}).Where("quiz_id = ?", quizID).Count(&n).Error
	return n, err
}
