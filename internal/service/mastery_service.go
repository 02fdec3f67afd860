package service

import (
	"sort"

	"notedu_backend/internal/model"
	"notedu_backend/internal/repository"
)

// TopicMastery 单个主题的掌握度统计。
type TopicMastery struct {
	Topic    string  `json:"topic"`
	Attempts int     `json:"attempts"`
	Correct  int     `json:"correct"`
	Mastery  float64 `json:"mastery"`
}

const (
	weakTopicMinAttempts = 3
	weakTopicThreshold   = 0.6
)

type MasteryService struct {
	quizRepo *repository.QuizRepository
	reports  *ReportService
}

func NewMasteryService(quizRepo *repository.QuizRepository, reports *ReportService) *MasteryService {
	return &MasteryService{quizRepo: quizRepo, reports: reports}
}

// aggregateMastery 汇总每个主题的作答次数与正确数。一道题打了多个主题标签时，
// 每个主题都记一次观测。没有主题信息的判分记录不计入。
func aggregateMastery(questions []model.Question, attempts []model.Attempt) []TopicMastery {
	topics := make(map[uint][]string, len(questions))
	for i := range questions {
		topics[questions[i].ID] = questions[i].TopicList()
	}

	stats := make(map[string]*TopicMastery)
	for _, a := range attempts {
		for _, r := range a.Results() {
			for _, topic := range topics[r.QuestionID] {
				m, ok := stats[topic]
				if !ok {
					m = &TopicMastery{Topic: topic}
					stats[topic] = m
				}
				m.Attempts++
				if r.Correct {
					m.Correct++
				}
			}
		}
	}

	out := make([]TopicMastery, 0, len(stats))
	for _, m := range stats {
		m.Mastery = float64(m.Correct) / float64(m.Attempts)
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Topic < out[j].Topic })
	return out
}

// weakTopics 筛出观测量足够且掌握度偏低的主题，按掌握度升序。
func weakTopics(mastery []TopicMastery) []TopicMastery {
	weak := make([]TopicMastery, 0)
	for _, m := range mastery {
		if m.Attempts >= weakTopicMinAttempts && m.Mastery < weakTopicThreshold {
			weak = append(weak, m)
		}
	}
	sort.Slice(weak, func(i, j int) bool { return weak[i].Mastery < weak[j].Mastery })
	return weak
}

// ClassMastery 班级主题掌握度，查询条件用于限定参与统计的答题子集。
func (s *MasteryService) ClassMastery(ownerID, classID uint, query AttemptQuery) ([]TopicMastery, error) {
	if err := s.reports.requireOwner(ownerID, classID); err != nil {
		return nil, err
	}
	attempts, err := s.reports.filteredAttempts(classID, query)
	if err != nil {
		return nil, err
	}
	questions, err := s.quizRepo.ListQuestionsForClass(classID)
	if err != nil {
		return nil, err
	}
	return aggregateMastery(questions, attempts), nil
}

// WeakTopics 班级薄弱主题列表。
func (s *MasteryService) WeakTopics(ownerID, classID uint, query AttemptQuery) ([]TopicMastery, error) {
	mastery, err := s.ClassMastery(ownerID, classID, query)
	if err != nil {
		return nil, err
	}
	return weakTopics(mastery), nil
}
