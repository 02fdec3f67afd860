package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"notedu_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const qaCacheTTL = 30 * time.Minute

type QAService struct {
	rag   *RAGService
	ai    *AIService
	redis *redis.Client
}

func NewQAService(rag *RAGService, ai *AIService, rdb *redis.Client) *QAService {
	return &QAService{rag: rag, ai: ai, redis: rdb}
}

type AskResponse struct {
	Answer  string   `json:"answer"`
	Source  string   `json:"source"` // knowledge_base或者llm
	Sources []string `json:"sources,omitempty"`
	Cached  bool     `json:"cached,omitempty"`
}

func qaCacheKey(userID uint, question, source string) string {
	sum := sha256.Sum256([]byte(question + "|" + source))
	return "qa:" + strconv.FormatUint(uint64(userID), 10) + ":" + hex.EncodeToString(sum[:8])
}

// Ask 先查缓存，未命中时检索用户笔记并调用AI作答。
// source限定检索范围，可为空。Redis不可用时直接走检索加AI。
func (s *QAService) Ask(ctx context.Context, userID uint, question, source string) (*AskResponse, error) {
	key := qaCacheKey(userID, question, source)
	if s.redis != nil {
		if raw, err := s.redis.Get(ctx, key).Result(); err == nil {
			var cached AskResponse
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				cached.Cached = true
				return &cached, nil
			}
		}
	}

	docs, err := s.rag.Search(userID, question, source)
	if err != nil {
		logger.Log.Warn("检索服务不可用，降级为纯LLM回答", zap.Error(err))
		docs = nil
	}

	answerSource := "llm"
	var contextText string
	var sources []string
	if len(docs) > 0 {
		answerSource = "knowledge_base"
		parts := make([]string, 0, len(docs))
		seen := make(map[string]bool)
		for _, d := range docs {
			parts = append(parts, d.Text)
			if d.Source != "" && !seen[d.Source] {
				seen[d.Source] = true
				sources = append(sources, d.Source)
			}
		}
		contextText = strings.Join(parts, "\n\n")
	}

	answer, err := s.ai.AnswerQuestion(question, contextText)
	if err != nil {
		return nil, err
	}

	resp := &AskResponse{Answer: answer, Source: answerSource, Sources: sources}
	if s.redis != nil {
		if raw, err := json.Marshal(resp); err == nil {
			if err := s.redis.Set(ctx, key, raw, qaCacheTTL).Err(); err != nil {
				logger.Log.Debug("QA缓存写入失败", zap.Error(err))
			}
		}
	}
	return resp, nil
}
