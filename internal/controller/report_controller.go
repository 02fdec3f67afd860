package controller

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"notedu_backend/internal/service"
	"notedu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	ReportService  *service.ReportService
	MasteryService *service.MasteryService
}

func NewReportController(reportService *service.ReportService, masteryService *service.MasteryService) *ReportController {
	return &ReportController{ReportService: reportService, MasteryService: masteryService}
}

// queryFromContext 从查询串组装过滤条件。时间格式错误不报错，条件不生效。
func queryFromContext(ctx *gin.Context) service.AttemptQuery {
	var q service.AttemptQuery
	if raw := ctx.Query("quiz_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			q.QuizID = uint(id)
		}
	}
	q.StudentEmail = ctx.Query("student_email")
	q.Since = ctx.Query("since")
	q.Until = ctx.Query("until")
	q.BestOnly = ctx.Query("best_only") == "true"
	return q
}

// Attempts godoc
// @Summary 班级答题报表
// @Description 支持按Quiz、学生邮箱、时间范围过滤，best_only只保留每名学生得分率最高的一次
// @Tags 报表
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "班级ID"
// @Param   quiz_id query int false "按Quiz过滤"
// @Param   student_email query string false "按学生邮箱过滤"
// @Param   since query string false "完成时间下界"
// @Param   until query string false "完成时间上界"
// @Param   best_only query bool false "每人只保留最佳"
// @Success 200 {object} util.Response{data=[]service.AttemptSummary}
// @Failure 403 {object} util.Response "非班级所有者"
// @Router /api/classes/{id}/attempts [get]
func (c *ReportController) Attempts(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	classID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	summaries, err := c.ReportService.AttemptsForClass(claims.UserID, classID, queryFromContext(ctx))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, summaries)
}

// ExportCSV godoc
// @Summary 答题报表导出CSV
// @Tags 报表
// @Produce  text/csv
// @Security BearerAuth
// @Param   id path int true "班级ID"
// @Success 200 {string} string "CSV内容"
// @Router /api/classes/{id}/attempts/export [get]
func (c *ReportController) ExportCSV(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	classID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	data, err := c.ReportService.ExportCSV(claims.UserID, classID, queryFromContext(ctx))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	filename := fmt.Sprintf("attempts_%d_%s.csv", classID, time.Now().Format("20060102"))
	ctx.Header("Content-Disposition", "attachment; filename="+filename)
	ctx.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

// Students godoc
// @Summary 学生成绩汇总
// @Tags 报表
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "班级ID"
// @Success 200 {object} util.Response{data=[]service.StudentRow}
// @Router /api/classes/{id}/students [get]
func (c *ReportController) Students(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	classID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	rows, err := c.ReportService.StudentTable(claims.UserID, classID, queryFromContext(ctx))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, rows)
}

// Mastery godoc
// @Summary 班级主题掌握度
// @Description 一道题多个主题时每个主题各记一次观测
// @Tags 报表
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "班级ID"
// @Success 200 {object} util.Response{data=[]service.TopicMastery}
// @Router /api/classes/{id}/mastery [get]
func (c *ReportController) Mastery(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	classID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	mastery, err := c.MasteryService.ClassMastery(claims.UserID, classID, queryFromContext(ctx))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, mastery)
}

// WeakTopics godoc
// @Summary 班级薄弱主题
// @Description 观测量达到门槛且掌握度偏低的主题，按掌握度升序
// @Tags 报表
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "班级ID"
// @Success 200 {object} util.Response{data=[]service.TopicMastery}
// @Router /api/classes/{id}/weak-topics [get]
func (c *ReportController) WeakTopics(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	classID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	weak, err := c.MasteryService.WeakTopics(claims.UserID, classID, queryFromContext(ctx))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, weak)
}

// AttemptDetail godoc
// @Summary 答题明细
// @Description 学生本人或班级所有者可查看逐题结果
// @Tags 报表
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "答题记录ID"
// @Success 200 {object} util.Response{data=service.AttemptDetail}
// @Failure 404 {object} util.Response "记录不存在"
// @Router /api/attempts/{id} [get]
func (c *ReportController) AttemptDetail(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	attemptID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	detail, err := c.ReportService.AttemptDetail(claims.UserID, attemptID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, detail)
}

// MyAttempts godoc
// @Summary 我的答题记录
// @Tags 报表
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]service.AttemptSummary}
// @Router /api/my/attempts [get]
func (c *ReportController) MyAttempts(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	summaries, err := c.ReportService.MyAttempts(claims.UserID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, summaries)
}
