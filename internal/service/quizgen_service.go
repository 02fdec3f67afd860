package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"notedu_backend/internal/model"
	"notedu_backend/internal/util"
)

// 出题难度的提示词，土耳其语三档
var difficultyInstructions = map[string]string{
	"kolay": "Temel kavramlari test eden basit sorular olustur.",
	"orta":  "Orta seviye, kavramlari anlama ve uygulama gerektiren sorular olustur.",
	"zor":   "Ileri seviye, analiz ve sentez gerektiren zorlayici sorular olustur.",
}

// generatedQuestion AI出题结果的宽松结构，兼容不同字段命名。
type generatedQuestion struct {
	Type          string            `json:"type"`
	QuestionType  string            `json:"question_type"`
	Question      string            `json:"question"`
	Statement     string            `json:"statement"`
	Sentence      string            `json:"sentence"`
	Choices       map[string]string `json:"choices"`
	CorrectAnswer string            `json:"correct_answer"`
	SampleAnswer  string            `json:"sample_answer"`
	Keywords      []string          `json:"keywords"`
	Topics        []string          `json:"topics"`
}

type QuizGenService struct {
	rag *RAGService
	ai  *AIService
}

func NewQuizGenService(rag *RAGService, ai *AIService) *QuizGenService {
	return &QuizGenService{rag: rag, ai: ai}
}

func quizTypePrompt(quizType string) string {
	switch quizType {
	case string(model.QuestionTrueFalse):
		return `Her soru icin JSON alanlari: "type": "true_false", "statement" (Turkce ifade), "correct_answer" ("Dogru" veya "Yanlis").`
	case string(model.QuestionFillBlank):
		return `Her soru icin JSON alanlari: "type": "fill_blank", "sentence" (bosluk ____ ile isaretli Turkce cumle), "correct_answer" (boslugu dolduran kelime).`
	case string(model.QuestionShortAnswer):
		return `Her soru icin JSON alanlari: "type": "short_answer", "question" (Turkce soru), "sample_answer" (ornek cevap), "keywords" (cevaptaki anahtar kelimeler listesi).`
	default:
		return `Her soru icin JSON alanlari: "type": "multiple_choice", "question" (Turkce soru), "choices" ({"A": ..., "B": ..., "C": ..., "D": ...}), "correct_answer" ("A"/"B"/"C"/"D"), "topics" (ilgili konu adlari listesi).`
	}
}

// stripCodeFence 模型经常把JSON包进markdown代码块，先剥掉。
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if i := strings.LastIndex(s, "```"); i >= 0 {
			s = s[:i]
		}
	}
	return strings.TrimSpace(s)
}

// convert 生成结果转建题输入。简答题的示例答案作为答案键，
// 关键词同时充当主题标签。
func convert(gq generatedQuestion) (QuestionInput, bool) {
	qtype := gq.Type
	if qtype == "" {
		qtype = gq.QuestionType
	}
	switch qtype {
	case "multiple_choice", "mcq":
		if gq.Question == "" || gq.CorrectAnswer == "" {
			return QuestionInput{}, false
		}
		return QuestionInput{
			Type:          model.QuestionMCQ,
			Text:          gq.Question,
			Choices:       gq.Choices,
			CorrectAnswer: gq.CorrectAnswer,
			Topics:        gq.Topics,
			Points:        1,
		}, true
	case "true_false":
		text := gq.Statement
		if text == "" {
			text = gq.Question
		}
		if text == "" || gq.CorrectAnswer == "" {
			return QuestionInput{}, false
		}
		return QuestionInput{
			Type:          model.QuestionTrueFalse,
			Text:          text,
			CorrectAnswer: gq.CorrectAnswer,
			Topics:        gq.Topics,
			Points:        1,
		}, true
	case "fill_blank":
		if gq.Sentence == "" || gq.CorrectAnswer == "" {
			return QuestionInput{}, false
		}
		return QuestionInput{
			Type:          model.QuestionFillBlank,
			Text:          gq.Sentence,
			CorrectAnswer: gq.CorrectAnswer,
			Topics:        gq.Topics,
			Points:        1,
		}, true
	case "short_answer":
		answer := gq.SampleAnswer
		if answer == "" {
			answer = gq.CorrectAnswer
		}
		if gq.Question == "" || answer == "" {
			return QuestionInput{}, false
		}
		topics := gq.Topics
		if len(topics) == 0 {
			topics = gq.Keywords
		}
		return QuestionInput{
			Type:          model.QuestionShortAnswer,
			Text:          gq.Question,
			CorrectAnswer: answer,
			Keywords:      gq.Keywords,
			Topics:        topics,
			Points:        1,
		}, true
	}
	return QuestionInput{}, false
}

// Generate 用某份笔记的内容出题。quizType取题型枚举值，difficulty取kolay/orta/zor。
func (s *QuizGenService) Generate(userID uint, source, quizType, difficulty string, numQuestions int) ([]QuestionInput, error) {
	chunks, err := s.rag.SourceChunks(userID, source)
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 {
		return nil, util.ErrDocumentNotFound
	}
	if numQuestions <= 0 {
		numQuestions = 5
	}
	instruction, ok := difficultyInstructions[NormalizeText(difficulty)]
	if !ok {
		instruction = difficultyInstructions["orta"]
	}

	prompt := fmt.Sprintf(`Asagidaki ders notlarindan %d adet soru olustur.

Yanit yalnizca Turkce olmali. Dogru cevap aciklama ile uyumlu olmali.

%s

%s

Yaniti yalnizca bir JSON dizisi olarak ver, baska metin ekleme.

Ders Notlari:
%s`, numQuestions, instruction, quizTypePrompt(quizType), strings.Join(chunks, "\n\n"))

	raw, err := s.ai.Chat("", prompt)
	if err != nil {
		return nil, err
	}

	var generated []generatedQuestion
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &generated); err != nil {
		return nil, fmt.Errorf("quiz generation returned unparseable output: %w", err)
	}

	inputs := make([]QuestionInput, 0, len(generated))
	for _, gq := range generated {
		if in, ok := convert(gq); ok {
			inputs = append(inputs, in)
		}
	}
	if len(inputs) == 0 {
		return nil, util.ErrNoQuestions
	}
	return inputs, nil
}
