package repository

import (
	"notedu_backend/internal/model"

	"gorm.io/gorm"
)

type DocumentRepository struct {
	DB *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{DB: db}
}

func (r *DocumentRepository) Create(doc *model.Document) error {
	return r.DB.Create(doc).Error
}

func (r *DocumentRepository) FindByID(id uint) (*model.Document, error) {
	var doc model.Document
	err := r.DB.First(&doc, id).Error
	return &doc, err
}

func (r *DocumentRepository) ListForUser(userID uint) ([]model.Document, error) {
	var docs []model.Document
	err := r.DB.Where("user_id = ?", userID).Order("created_at desc").Find(&docs).Error
	return docs, err
}

func (r *DocumentRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Document{}, id).Error
}
