package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"notedu_backend/internal/model"
	"notedu_backend/internal/repository"
	"notedu_backend/internal/util"
	"notedu_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	chunkSize    = 1000
	chunkOverlap = 200

	sourcesCacheTTL = 5 * time.Minute
)

// 允许入库的纯文本类型，其他类型只存文件不进向量库
var textExtensions = map[string]bool{
	".txt": true,
	".md":  true,
}

type DocumentService struct {
	docRepo *repository.DocumentRepository
	storage *StorageService
	rag     *RAGService
	redis   *redis.Client
}

func NewDocumentService(docRepo *repository.DocumentRepository, storage *StorageService, rag *RAGService, rdb *redis.Client) *DocumentService {
	return &DocumentService{docRepo: docRepo, storage: storage, rag: rag, redis: rdb}
}

// chunkText 按段落切分正文，单块超长时按固定窗口加重叠滑动切分。
func chunkText(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var chunks []string
	var current strings.Builder
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		if current.Len() > 0 && current.Len()+len(para) > chunkSize {
			chunks = append(chunks, current.String())
			current.Reset()
		}
		if len(para) > chunkSize {
			runes := []rune(para)
			for start := 0; start < len(runes); start += chunkSize - chunkOverlap {
				end := start + chunkSize
				if end > len(runes) {
					end = len(runes)
				}
				chunks = append(chunks, string(runes[start:end]))
				if end == len(runes) {
					break
				}
			}
			continue
		}
		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(para)
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}

// Upload 保存原文件到对象存储。纯文本类型同时切块写入检索库，
// 其他类型由调用方单独提供抽取后的正文。
func (s *DocumentService) Upload(ctx context.Context, userID uint, filename string, reader io.Reader, size int64, contentType string) (*model.Document, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	objectKey := fmt.Sprintf("documents/%d/%s%s", userID, uuid.NewString(), ext)

	var body []byte
	var err error
	ingestable := textExtensions[ext]
	if ingestable {
		body, err = io.ReadAll(reader)
		if err != nil {
			return nil, err
		}
		reader = strings.NewReader(string(body))
		size = int64(len(body))
	}

	url, err := s.storage.Upload(ctx, objectKey, reader, size, contentType)
	if err != nil {
		return nil, err
	}

	doc := &model.Document{
		UserID:      userID,
		Filename:    filename,
		ObjectKey:   objectKey,
		ContentType: contentType,
		Size:        size,
		URL:         url,
	}

	if ingestable {
		chunks := chunkText(string(body))
		if err := s.rag.Ingest(userID, filename, chunks); err != nil {
			// 文件已落盘，入库失败不回滚，只记日志
			logger.Log.Warn("文档入检索库失败", zap.String("filename", filename), zap.Error(err))
		} else {
			doc.Chunks = len(chunks)
			s.invalidateSources(ctx, userID)
		}
	}

	if err := s.docRepo.Create(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// IngestText 对已抽取的正文单独入库，用于PDF等前端抽取的格式。
func (s *DocumentService) IngestText(ctx context.Context, userID uint, docID uint, text string) (*model.Document, error) {
	doc, err := s.getOwned(userID, docID)
	if err != nil {
		return nil, err
	}
	chunks := chunkText(text)
	if err := s.rag.Ingest(userID, doc.Filename, chunks); err != nil {
		return nil, err
	}
	doc.Chunks = len(chunks)
	if err := s.docRepo.DB.Save(doc).Error; err != nil {
		return nil, err
	}
	s.invalidateSources(ctx, userID)
	return doc, nil
}

func (s *DocumentService) ListForUser(userID uint) ([]model.Document, error) {
	return s.docRepo.ListForUser(userID)
}

func sourcesCacheKey(userID uint) string {
	return fmt.Sprintf("sources:%d", userID)
}

// Sources 已入库的来源列表，短时缓存减少对检索服务的穿透。
func (s *DocumentService) Sources(ctx context.Context, userID uint) ([]string, error) {
	key := sourcesCacheKey(userID)
	if s.redis != nil {
		if raw, err := s.redis.Get(ctx, key).Result(); err == nil {
			var sources []string
			if json.Unmarshal([]byte(raw), &sources) == nil {
				return sources, nil
			}
		}
	}

	sources, err := s.rag.Sources(userID)
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		if raw, err := json.Marshal(sources); err == nil {
			if err := s.redis.Set(ctx, key, raw, sourcesCacheTTL).Err(); err != nil {
				logger.Log.Debug("来源列表缓存写入失败", zap.Error(err))
			}
		}
	}
	return sources, nil
}

// invalidateSources 入库和删除之后清掉来源列表缓存。
func (s *DocumentService) invalidateSources(ctx context.Context, userID uint) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, sourcesCacheKey(userID)).Err(); err != nil {
		logger.Log.Debug("来源列表缓存清理失败", zap.Error(err))
	}
}

func (s *DocumentService) getOwned(userID, docID uint) (*model.Document, error) {
	doc, err := s.docRepo.FindByID(docID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrDocumentNotFound
		}
		return nil, err
	}
	if doc.UserID != userID {
		return nil, util.ErrPermissionDenied
	}
	return doc, nil
}

// Delete 同时清理对象存储和检索库里的分片。
func (s *DocumentService) Delete(ctx context.Context, userID, docID uint) error {
	doc, err := s.getOwned(userID, docID)
	if err != nil {
		return err
	}
	if err := s.storage.Delete(ctx, doc.ObjectKey); err != nil {
		logger.Log.Warn("对象存储删除失败", zap.String("objectKey", doc.ObjectKey), zap.Error(err))
	}
	if err := s.rag.DeleteSource(userID, doc.Filename); err != nil {
		logger.Log.Warn("检索库分片删除失败", zap.String("filename", doc.Filename), zap.Error(err))
	}
	s.invalidateSources(ctx, userID)
	return s.docRepo.Delete(doc.ID)
}
