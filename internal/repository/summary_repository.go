package repository

import (
	"notedu_backend/internal/model"

	"gorm.io/gorm"
)

type SummaryRepository struct {
	DB *gorm.DB
}

func NewSummaryRepository(db *gorm.DB) *SummaryRepository {
	return &SummaryRepository{DB: db}
}

func (r *SummaryRepository) Create(summary *model.Summary) error {
	return r.DB.Create(summary).Error
}

func (r *SummaryRepository) FindByID(id uint) (*model.Summary, error) {
	var summary model.Summary
	err := r.DB.First(&summary, id).Error
	return &summary, err
}

func (r *SummaryRepository) ListForUser(userID uint) ([]model.Summary, error) {
	var summaries []model.Summary
	err := r.DB.Where("user_id = ?", userID).Order("created_at desc").Find(&summaries).Error
	return summaries, err
}

func (r *SummaryRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Summary{}, id).Error
}
