package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"notedu_backend/internal/config"
)

// RetrievedDoc 检索服务返回的文档分片。
type RetrievedDoc struct {
	Text   string  `json:"text"`
	Source string  `json:"source"`
	Score  float64 `json:"score,omitempty"`
}

// RAGService 外部向量检索服务的HTTP客户端。
// 每个用户一个独立collection，互相看不到对方的笔记。
type RAGService struct {
	config config.RetrievalConfig
	client *http.Client
}

func NewRAGService(cfg config.RetrievalConfig) *RAGService {
	return &RAGService{
		config: cfg,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

func (s *RAGService) collectionFor(userID uint) string {
	return fmt.Sprintf("%s_u%d", s.config.CollectionPrefix, userID)
}

// DynamicK 短查询召回放宽，长查询用默认档。
func (s *RAGService) DynamicK(query string) int {
	k := s.config.DefaultK
	if k <= 0 {
		k = 4
	}
	if len(strings.Fields(query)) <= 3 {
		k += 2
	}
	return k
}

func (s *RAGService) do(method, path string, payload, result interface{}) error {
	var body io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewBuffer(jsonData)
	}
	req, err := http.NewRequest(method, s.config.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("retrieval API error (status %d): %s", resp.StatusCode, string(raw))
	}
	if result == nil {
		return nil
	}
	return json.Unmarshal(raw, result)
}

type ingestRequest struct {
	Source string   `json:"source"`
	Chunks []string `json:"chunks"`
}

// Ingest 把一份文档的分片写入用户collection，source用于后续按来源过滤和删除。
func (s *RAGService) Ingest(userID uint, source string, chunks []string) error {
	if len(chunks) == 0 {
		return nil
	}
	path := fmt.Sprintf("/collections/%s/upsert", s.collectionFor(userID))
	return s.do(http.MethodPost, path, ingestRequest{Source: source, Chunks: chunks}, nil)
}

type queryRequest struct {
	Query  string `json:"query"`
	K      int    `json:"k"`
	Source string `json:"source,omitempty"`
}

type queryResponse struct {
	Documents []RetrievedDoc `json:"documents"`
}

// Search 语义检索。source非空时只在该来源内检索。
// collection不存在视为没有笔记，返回空结果而不是错误。
func (s *RAGService) Search(userID uint, query, source string) ([]RetrievedDoc, error) {
	path := fmt.Sprintf("/collections/%s/query", s.collectionFor(userID))
	var result queryResponse
	err := s.do(http.MethodPost, path, queryRequest{
		Query:  query,
		K:      s.DynamicK(query),
		Source: source,
	}, &result)
	if err != nil {
		if strings.Contains(err.Error(), "status 404") {
			return nil, nil
		}
		return nil, err
	}
	return result.Documents, nil
}

type sourcesResponse struct {
	Sources []string `json:"sources"`
}

// Sources 用户已入库的文档来源列表。
func (s *RAGService) Sources(userID uint) ([]string, error) {
	path := fmt.Sprintf("/collections/%s/sources", s.collectionFor(userID))
	var result sourcesResponse
	if err := s.do(http.MethodGet, path, nil, &result); err != nil {
		if strings.Contains(err.Error(), "status 404") {
			return nil, nil
		}
		return nil, err
	}
	return result.Sources, nil
}

type chunksResponse struct {
	Chunks []string `json:"chunks"`
}

// SourceChunks 取某来源的全部分片原文，摘要生成用。
func (s *RAGService) SourceChunks(userID uint, source string) ([]string, error) {
	// source是文件名，可能带空格和非ASCII字符
	path := fmt.Sprintf("/collections/%s/sources/%s/chunks", s.collectionFor(userID), url.PathEscape(source))
	var result chunksResponse
	if err := s.do(http.MethodGet, path, nil, &result); err != nil {
		if strings.Contains(err.Error(), "status 404") {
			return nil, nil
		}
		return nil, err
	}
	return result.Chunks, nil
}

// DeleteSource 删除某来源的全部分片。
func (s *RAGService) DeleteSource(userID uint, source string) error {
	path := fmt.Sprintf("/collections/%s/sources/%s", s.collectionFor(userID), url.PathEscape(source))
	return s.do(http.MethodDelete, path, nil, nil)
}
