package controller

import (
	"notedu_backend/internal/service"
	"notedu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SummaryController struct {
	SummaryService *service.SummaryService
}

func NewSummaryController(summaryService *service.SummaryService) *SummaryController {
	return &SummaryController{SummaryService: summaryService}
}

type GenerateSummaryRequest struct {
	Source      string `json:"source" binding:"required"`
	DetailLevel string `json:"detail_level"`
}

// Generate godoc
// @Summary 生成课程笔记摘要
// @Description detail_level取kisa/orta/detayli/cok_detayli，缺省orta
// @Tags 摘要
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body GenerateSummaryRequest true "摘要参数"
// @Success 201 {object} util.Response{data=model.Summary}
// @Failure 404 {object} util.Response "笔记不存在"
// @Router /api/summaries [post]
func (c *SummaryController) Generate(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req GenerateSummaryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	summary, err := c.SummaryService.Generate(claims.UserID, req.Source, req.DetailLevel)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Created(ctx, summary)
}

// List godoc
// @Summary 我的摘要列表
// @Tags 摘要
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Summary}
// @Router /api/summaries [get]
func (c *SummaryController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	summaries, err := c.SummaryService.ListForUser(claims.UserID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, summaries)
}

// Get godoc
// @Summary 摘要详情
// @Tags 摘要
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "摘要ID"
// @Success 200 {object} util.Response{data=model.Summary}
// @Failure 404 {object} util.Response "摘要不存在"
// @Router /api/summaries/{id} [get]
func (c *SummaryController) Get(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	summaryID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	summary, err := c.SummaryService.Get(claims.UserID, summaryID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, summary)
}

// Delete godoc
// @Summary 删除摘要
// @Tags 摘要
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "摘要ID"
// @Success 200 {object} util.Response
// @Router /api/summaries/{id} [delete]
func (c *SummaryController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	summaryID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.SummaryService.Delete(claims.UserID, summaryID); err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": summaryID})
}
