package service

import (
	"errors"
	"strings"

	"notedu_backend/internal/model"
	"notedu_backend/internal/repository"
	"notedu_backend/internal/util"

	"gorm.io/gorm"
)

type SummaryService struct {
	summaryRepo *repository.SummaryRepository
	rag         *RAGService
	ai          *AIService
}

func NewSummaryService(summaryRepo *repository.SummaryRepository, rag *RAGService, ai *AIService) *SummaryService {
	return &SummaryService{summaryRepo: summaryRepo, rag: rag, ai: ai}
}

// Generate 对某份笔记生成摘要并保存。detailLevel缺省为orta档。
func (s *SummaryService) Generate(userID uint, source, detailLevel string) (*model.Summary, error) {
	chunks, err := s.rag.SourceChunks(userID, source)
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 {
		return nil, util.ErrDocumentNotFound
	}

	content, err := s.ai.Summarize(strings.Join(chunks, "\n\n"), detailLevel)
	if err != nil {
		return nil, err
	}

	summary := &model.Summary{
		UserID:  userID,
		Title:   source + " - " + NormalizeDetailLevel(detailLevel),
		Content: content,
	}
	if err := s.summaryRepo.Create(summary); err != nil {
		return nil, err
	}
	return summary, nil
}

func (s *SummaryService) ListForUser(userID uint) ([]model.Summary, error) {
	return s.summaryRepo.ListForUser(userID)
}

func (s *SummaryService) Get(userID, summaryID uint) (*model.Summary, error) {
	summary, err := s.summaryRepo.FindByID(summaryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSummaryNotFound
		}
		return nil, err
	}
	if summary.UserID != userID {
		return nil, util.ErrPermissionDenied
	}
	return summary, nil
}

func (s *SummaryService) Delete(userID, summaryID uint) error {
	summary, err := s.Get(userID, summaryID)
	if err != nil {
		return err
	}
	return s.summaryRepo.Delete(summary.ID)
}
