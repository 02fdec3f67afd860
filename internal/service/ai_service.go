package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"notedu_backend/internal/config"
)

// AIService OpenAI兼容接口的客户端，平台所有生成任务都走这里。
type AIService struct {
	config config.AIConfig
	client *http.Client
}

func NewAIService(cfg config.AIConfig) *AIService {
	return &AIService{
		config: cfg,
		client: &http.Client{Timeout: 120 * time.Second},
	}
}

type AIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletionRequest struct {
	Model       string          `json:"model"`
	Messages    []AIChatMessage `json:"messages"`
	Temperature float64         `json:"temperature,omitempty"`
	MaxTokens   int             `json:"max_tokens,omitempty"`
}

type ChatCompletionResponse struct {
	Choices []struct {
		Message AIChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// 摘要详细程度的提示词，土耳其语界面约定的四个档位
var detailInstructions = map[string]string{
	"kisa":        "Cok kisa ve oz bir ozet yap (3-5 madde)",
	"orta":        "Orta uzunlukta, ana noktalari kapsayan bir ozet yap",
	"detayli":     "Detayli ve kapsamli bir ozet yap, onemli tum noktalari dahil et",
	"cok_detayli": "Cok detayli bir ozet yaz. Metin uzunsa 2-3 sayfa uzunlugunda (yaklasik 1200-1800 kelime) olmasini hedefle.",
}

// NormalizeDetailLevel 档位名归一化，容忍土耳其语变音和大小写写法。
func NormalizeDetailLevel(level string) string {
	folded := NormalizeText(level)
	switch {
	case strings.Contains(folded, "cok") && strings.Contains(folded, "detay"):
		return "cok_detayli"
	case strings.Contains(folded, "detay"):
		return "detayli"
	case strings.Contains(folded, "kisa"):
		return "kisa"
	default:
		return "orta"
	}
}

// Chat 单轮调用，system提示可为空。
func (s *AIService) Chat(system, prompt string) (string, error) {
	messages := []AIChatMessage{}
	if system != "" {
		messages = append(messages, AIChatMessage{Role: "system", Content: system})
	}
	messages = append(messages, AIChatMessage{Role: "user", Content: prompt})

	reqBody := ChatCompletionRequest{
		Model:       s.config.Model,
		Messages:    messages,
		Temperature: 0.7,
		MaxTokens:   4096,
	}
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest("POST", s.config.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("AI API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result ChatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", err
	}
	if result.Error != nil {
		return "", fmt.Errorf("AI API error: %s", result.Error.Message)
	}
	if len(result.Choices) > 0 {
		return strings.TrimSpace(result.Choices[0].Message.Content), nil
	}
	return "", fmt.Errorf("AI returned no choices")
}

// Summarize 对课程笔记生成土耳其语摘要。
func (s *AIService) Summarize(context, detailLevel string) (string, error) {
	instruction := detailInstructions[NormalizeDetailLevel(detailLevel)]

	prompt := fmt.Sprintf(`Asagidaki ders notlarini Turkce olarak ozetle.

%s

Yanit yalnizca Turkce olmali, Turkce karakterleri (c/ç, g/ğ, i/ı, o/ö, s/ş, u/ü) dogru kullanmali ve ogretici, net bir dil kullanmali.

Ders Notlari:
%s

OZET:`, instruction, context)

	return s.Chat("", prompt)
}

// AnswerQuestion 结合检索到的课程笔记回答学生提问。
func (s *AIService) AnswerQuestion(question, context string) (string, error) {
	prompt := fmt.Sprintf(`Asagidaki ders notlarini kullanarak soruya Turkce cevap ver.

Yanit dogal ve anlasilir olsun.
Soru bir selamlama veya kisa sohbet ise kisa ve samimi cevap ver, ders notlarina zorla baglama.
Gerektiginde madde listesi kullan, sabit numarali bir format uygulama.
Yabanci dilde kelime veya ifade kullanma.

Ders Notlari:
%s

Soru: %s

Cevap:`, context, question)

	return s.Chat("", prompt)
}
