package service

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"notedu_backend/internal/model"
	"notedu_backend/internal/repository"
	"notedu_backend/internal/util"

	"gorm.io/gorm"
)

// AttemptQuery 班级答题报表的查询条件，全部可选。
type AttemptQuery struct {
	QuizID       uint
	StudentEmail string
	Since        string
	Until        string
	BestOnly     bool
}

// AttemptSummary 报表行，冗余Quiz标题与学生信息便于展示。
type AttemptSummary struct {
	AttemptID  uint       `json:"attempt_id"`
	QuizID     uint       `json:"quiz_id"`
	QuizTitle  string     `json:"quiz_title"`
	UserID     uint       `json:"user_id"`
	UserEmail  string     `json:"user_email"`
	UserName   string     `json:"user_name"`
	Score      float64    `json:"score"`
	MaxScore   float64    `json:"max_score"`
	FinishedAt *time.Time `json:"finished_at"`
}

// QuestionDetail 单题作答明细。题目可能在作答后被删除，此时降级展示。
type QuestionDetail struct {
	QuestionID uint    `json:"question_id"`
	Text       string  `json:"text"`
	Answer     string  `json:"answer"`
	Correct    bool    `json:"correct"`
	Points     float64 `json:"points"`
	Missing    bool    `json:"missing,omitempty"`
}

// AttemptDetail 单次答题的完整明细。
type AttemptDetail struct {
	Summary   AttemptSummary   `json:"summary"`
	Questions []QuestionDetail `json:"questions"`
}

// StudentRow 学生成绩汇总行。
type StudentRow struct {
	UserID    uint    `json:"user_id"`
	UserEmail string  `json:"user_email"`
	UserName  string  `json:"user_name"`
	Attempts  int     `json:"attempts"`
	Score     float64 `json:"score"`
	MaxScore  float64 `json:"max_score"`
}

type ReportService struct {
	classRepo   *repository.ClassRepository
	quizRepo    *repository.QuizRepository
	attemptRepo *repository.AttemptRepository
	userRepo    *repository.UserRepository
}

func NewReportService(classRepo *repository.ClassRepository, quizRepo *repository.QuizRepository, attemptRepo *repository.AttemptRepository, userRepo *repository.UserRepository) *ReportService {
	return &ReportService{classRepo: classRepo, quizRepo: quizRepo, attemptRepo: attemptRepo, userRepo: userRepo}
}

// parseWhen 宽松解析时间条件，解析失败返回nil表示该条件不生效。
func parseWhen(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// scoreRatio 满分为零时按零处理，避免除零。
func scoreRatio(a *model.Attempt) float64 {
	if a.MaxScore <= 0 {
		return 0
	}
	return a.Score / a.MaxScore
}

// bestAttempts 按学生分组，每人只保留得分率最高的一条，
// 得分率相同时保留完成时间最新的。必须在其他过滤之后执行。
func bestAttempts(attempts []model.Attempt) []model.Attempt {
	best := make(map[uint]model.Attempt)
	order := make([]uint, 0)
	for _, a := range attempts {
		prev, ok := best[a.UserID]
		if !ok {
			best[a.UserID] = a
			order = append(order, a.UserID)
			continue
		}
		ra, rp := scoreRatio(&a), scoreRatio(&prev)
		if ra > rp {
			best[a.UserID] = a
			continue
		}
		if ra == rp && a.FinishedAt != nil && (prev.FinishedAt == nil || a.FinishedAt.After(*prev.FinishedAt)) {
			best[a.UserID] = a
		}
	}
	out := make([]model.Attempt, 0, len(best))
	for _, uid := range order {
		out = append(out, best[uid])
	}
	return out
}

// filteredAttempts 加载班级答题记录并套用全部查询条件。
func (s *ReportService) filteredAttempts(classID uint, query AttemptQuery) ([]model.Attempt, error) {
	quizzes, err := s.quizRepo.ListForClass(classID)
	if err != nil {
		return nil, err
	}
	quizIDs := make([]uint, 0, len(quizzes))
	for _, q := range quizzes {
		quizIDs = append(quizIDs, q.ID)
	}

	filter := repository.AttemptFilter{
		QuizID: query.QuizID,
		Since:  parseWhen(query.Since),
		Until:  parseWhen(query.Until),
	}
	if query.StudentEmail != "" {
		user, err := s.userRepo.FindByEmail(query.StudentEmail)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// 邮箱不存在时返回空结果而非报错
				return nil, nil
			}
			return nil, err
		}
		filter.UserID = user.ID
	}

	attempts, err := s.attemptRepo.ListForQuizzes(quizIDs, filter)
	if err != nil {
		return nil, err
	}
	if query.BestOnly {
		attempts = bestAttempts(attempts)
	}
	return attempts, nil
}

// summarize 补齐Quiz标题与学生信息。
func (s *ReportService) summarize(classID uint, attempts []model.Attempt) ([]AttemptSummary, error) {
	quizzes, err := s.quizRepo.ListForClass(classID)
	if err != nil {
		return nil, err
	}
	titles := make(map[uint]string, len(quizzes))
	for _, q := range quizzes {
		titles[q.ID] = q.Title
	}

	userIDs := make([]uint, 0, len(attempts))
	seen := make(map[uint]bool)
	for _, a := range attempts {
		if !seen[a.UserID] {
			seen[a.UserID] = true
			userIDs = append(userIDs, a.UserID)
		}
	}
	users, err := s.userRepo.FindByIDs(userIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]model.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	summaries := make([]AttemptSummary, 0, len(attempts))
	for _, a := range attempts {
		u := byID[a.UserID]
		summaries = append(summaries, AttemptSummary{
			AttemptID:  a.ID,
			QuizID:     a.QuizID,
			QuizTitle:  titles[a.QuizID],
			UserID:     a.UserID,
			UserEmail:  u.Email,
			UserName:   u.FullName,
			Score:      a.Score,
			MaxScore:   a.MaxScore,
			FinishedAt: a.FinishedAt,
		})
	}
	return summaries, nil
}

// requireOwner 报表仅对班级所有者开放。
func (s *ReportService) requireOwner(ownerID, classID uint) error {
	class, err := s.classRepo.FindByID(classID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrClassNotFound
		}
		return err
	}
	if class.OwnerID != ownerID {
		return util.ErrPermissionDenied
	}
	return nil
}

// AttemptsForClass 班级答题报表。
func (s *ReportService) AttemptsForClass(ownerID, classID uint, query AttemptQuery) ([]AttemptSummary, error) {
	if err := s.requireOwner(ownerID, classID); err != nil {
		return nil, err
	}
	attempts, err := s.filteredAttempts(classID, query)
	if err != nil {
		return nil, err
	}
	return s.summarize(classID, attempts)
}

// AttemptDetail 单次答题的逐题明细。学生本人或Quiz所在班级所有者可看。
func (s *ReportService) AttemptDetail(viewerID, attemptID uint) (*AttemptDetail, error) {
	attempt, err := s.attemptRepo.FindByID(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAttemptNotFound
		}
		return nil, err
	}
	quiz, err := s.quizRepo.FindByID(attempt.QuizID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if attempt.UserID != viewerID {
		if quiz == nil || quiz.ID == 0 {
			return nil, util.ErrPermissionDenied
		}
		if err := s.requireOwner(viewerID, quiz.ClassID); err != nil {
			return nil, err
		}
	}

	results := attempt.Results()
	qIDs := make([]uint, 0, len(results))
	for _, r := range results {
		qIDs = append(qIDs, r.QuestionID)
	}
	questions, err := s.quizRepo.ListQuestionsByIDs(qIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]model.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	var answers map[uint]string
	if len(attempt.Answers) > 0 {
		if err := json.Unmarshal(attempt.Answers, &answers); err != nil {
			answers = nil
		}
	}

	details := make([]QuestionDetail, 0, len(results))
	for _, r := range results {
		d := QuestionDetail{
			QuestionID: r.QuestionID,
			Answer:     answers[r.QuestionID],
			Correct:    r.Correct,
			Points:     r.Points,
		}
		if q, ok := byID[r.QuestionID]; ok {
			d.Text = q.Text
		} else {
			// 题目已被删除，明细降级只展示判分结果
			d.Missing = true
		}
		details = append(details, d)
	}

	summaries, err := s.summarize(quizClassID(quiz), []model.Attempt{*attempt})
	if err != nil {
		return nil, err
	}
	detail := &AttemptDetail{Questions: details}
	if len(summaries) > 0 {
		detail.Summary = summaries[0]
	}
	return detail, nil
}

func quizClassID(quiz *model.Quiz) uint {
	if quiz == nil {
		return 0
	}
	return quiz.ClassID
}

// MyAttempts 学生查看自己的全部答题记录。
func (s *ReportService) MyAttempts(userID uint) ([]AttemptSummary, error) {
	attempts, err := s.attemptRepo.ListForUser(userID)
	if err != nil {
		return nil, err
	}
	quizIDs := make([]uint, 0, len(attempts))
	seen := make(map[uint]bool)
	for _, a := range attempts {
		if !seen[a.QuizID] {
			seen[a.QuizID] = true
			quizIDs = append(quizIDs, a.QuizID)
		}
	}
	quizzes, err := s.quizRepo.ListByIDs(quizIDs)
	if err != nil {
		return nil, err
	}
	titles := make(map[uint]string, len(quizzes))
	for _, q := range quizzes {
		titles[q.ID] = q.Title
	}
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]AttemptSummary, 0, len(attempts))
	for _, a := range attempts {
		summaries = append(summaries, AttemptSummary{
			AttemptID:  a.ID,
			QuizID:     a.QuizID,
			QuizTitle:  titles[a.QuizID],
			UserID:     a.UserID,
			UserEmail:  user.Email,
			UserName:   user.FullName,
			Score:      a.Score,
			MaxScore:   a.MaxScore,
			FinishedAt: a.FinishedAt,
		})
	}
	return summaries, nil
}

// ExportCSV 报表导出为CSV，列顺序固定。
func (s *ReportService) ExportCSV(ownerID, classID uint, query AttemptQuery) ([]byte, error) {
	summaries, err := s.AttemptsForClass(ownerID, classID, query)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"attempt_id", "quiz_title", "user_email", "score", "max_score", "finished_at"}); err != nil {
		return nil, err
	}
	for _, row := range summaries {
		finished := ""
		if row.FinishedAt != nil {
			finished = row.FinishedAt.Format(time.RFC3339)
		}
		record := []string{
			strconv.FormatUint(uint64(row.AttemptID), 10),
			row.QuizTitle,
			row.UserEmail,
			strconv.FormatFloat(row.Score, 'f', -1, 64),
			strconv.FormatFloat(row.MaxScore, 'f', -1, 64),
			finished,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// StudentTable 按学生聚合的成绩汇总。
func (s *ReportService) StudentTable(ownerID, classID uint, query AttemptQuery) ([]StudentRow, error) {
	summaries, err := s.AttemptsForClass(ownerID, classID, query)
	if err != nil {
		return nil, err
	}
	rows := make(map[uint]*StudentRow)
	order := make([]uint, 0)
	for _, sum := range summaries {
		row, ok := rows[sum.UserID]
		if !ok {
			row = &StudentRow{UserID: sum.UserID, UserEmail: sum.UserEmail, UserName: sum.UserName}
			rows[sum.UserID] = row
			order = append(order, sum.UserID)
		}
		row.Attempts++
		row.Score += sum.Score
		row.MaxScore += sum.MaxScore
	}
	out := make([]StudentRow, 0, len(rows))
	for _, uid := range order {
		out = append(out, *rows[uid])
	}
	return out, nil
}
