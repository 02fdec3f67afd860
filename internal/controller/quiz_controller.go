package controller

import (
	"notedu_backend/internal/model"
	"notedu_backend/internal/service"
	"notedu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService    *service.QuizService
	GradingService *service.GradingService
	QuizGenService *service.QuizGenService
}

func NewQuizController(quizService *service.QuizService, gradingService *service.GradingService, quizGenService *service.QuizGenService) *QuizController {
	return &QuizController{
		QuizService:    quizService,
		GradingService: gradingService,
		QuizGenService: quizGenService,
	}
}

type CreateQuizRequest struct {
	ClassID   uint                    `json:"class_id" binding:"required"`
	Title     string                  `json:"title" binding:"required"`
	Published bool                    `json:"published"`
	Questions []service.QuestionInput `json:"questions" binding:"required,min=1"`
}

// Create godoc
// @Summary 创建Quiz
// @Description 班级所有者创建Quiz，题目一并提交
// @Tags Quiz
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body CreateQuizRequest true "Quiz与题目"
// @Success 201 {object} util.Response{data=model.Quiz}
// @Failure 403 {object} util.Response "非班级所有者"
// @Router /api/quizzes [post]
func (c *QuizController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req CreateQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.QuizService.CreateQuiz(claims.UserID, req.ClassID, req.Title, req.Published, req.Questions)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Created(ctx, quiz)
}

// ListForClass godoc
// @Summary 班级Quiz列表
// @Description 学生只看到已发布的
// @Tags Quiz
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "班级ID"
// @Success 200 {object} util.Response{data=[]model.Quiz}
// @Router /api/classes/{id}/quizzes [get]
func (c *QuizController) ListForClass(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	classID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	quizzes, err := c.QuizService.ListForClass(classID, claims.UserID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, quizzes)
}

// Get godoc
// @Summary Quiz详情含题目
// @Description 答案键不随响应下发
// @Tags Quiz
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "Quiz ID"
// @Success 200 {object} util.Response{data=object}
// @Failure 404 {object} util.Response "Quiz不存在或未发布"
// @Router /api/quizzes/{id} [get]
func (c *QuizController) Get(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	quizID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	quiz, err := c.QuizService.GetVisible(claims.UserID, quizID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	questions, err := c.QuizService.Questions(claims.UserID, quizID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	attemptCount, err := c.GradingService.AttemptCount(quizID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{
		"quiz":         quiz,
		"questions":    questions,
		"attemptCount": attemptCount,
	})
}

type PublishRequest struct {
	Published *bool `json:"published" binding:"required"`
}

// Publish godoc
// @Summary 发布或下线Quiz
// @Tags Quiz
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "Quiz ID"
// @Param   body body PublishRequest true "发布状态"
// @Success 200 {object} util.Response{data=model.Quiz}
// @Failure 403 {object} util.Response "非作者"
// @Router /api/quizzes/{id}/publish [put]
func (c *QuizController) Publish(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	quizID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req PublishRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	quiz, err := c.QuizService.SetPublished(claims.UserID, quizID, *req.Published)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, quiz)
}

// Delete godoc
// @Summary 删除Quiz
// @Description 级联删除题目与答题记录
// @Tags Quiz
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "Quiz ID"
// @Success 200 {object} util.Response
// @Router /api/quizzes/{id} [delete]
func (c *QuizController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	quizID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.QuizService.DeleteQuiz(claims.UserID, quizID); err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": quizID})
}

type SubmitRequest struct {
	Answers []model.SubmittedAnswer `json:"answers" binding:"required"`
}

// Submit godoc
// @Summary 提交答卷并判分
// @Description 即时判分返回得分与逐题结果，重复提交生成新的答题记录
// @Tags Quiz
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "Quiz ID"
// @Param   body body SubmitRequest true "答案集合"
// @Success 201 {object} util.Response{data=model.Attempt}
// @Failure 404 {object} util.Response "Quiz不存在"
// @Router /api/quizzes/{id}/submit [post]
func (c *QuizController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	quizID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	attempt, err := c.GradingService.GradeAttempt(claims.UserID, quizID, req.Answers)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Created(ctx, attempt)
}

type GenerateQuizRequest struct {
	Source       string `json:"source" binding:"required"`
	QuizType     string `json:"quiz_type" binding:"omitempty,oneof=mcq true_false fill_blank short_answer"`
	Difficulty   string `json:"difficulty"`
	NumQuestions int    `json:"num_questions"`
}

// Generate godoc
// @Summary 从课程笔记AI出题
// @Description 返回题目草稿，教师确认后再调用创建接口保存
// @Tags Quiz
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body GenerateQuizRequest true "出题参数"
// @Success 200 {object} util.Response{data=[]service.QuestionInput}
// @Failure 404 {object} util.Response "笔记不存在"
// @Router /api/quizzes/generate [post]
func (c *QuizController) Generate(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req GenerateQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	questions, err := c.QuizGenService.Generate(claims.UserID, req.Source, req.QuizType, req.Difficulty, req.NumQuestions)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, questions)
}
