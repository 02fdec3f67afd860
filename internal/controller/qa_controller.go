package controller

import (
	"notedu_backend/internal/service"
	"notedu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QAController struct {
	QAService *service.QAService
}

func NewQAController(qaService *service.QAService) *QAController {
	return &QAController{QAService: qaService}
}

type AskRequest struct {
	Question string `json:"question" binding:"required"`
	Source   string `json:"source"`
}

// Ask godoc
// @Summary 基于课程笔记问答
// @Description 检索当前用户的笔记后由AI作答，source限定检索范围
// @Tags 问答
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body AskRequest true "问题"
// @Success 200 {object} util.Response{data=service.AskResponse}
// @Router /api/qa/ask [post]
func (c *QAController) Ask(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req AskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.QAService.Ask(ctx.Request.Context(), claims.UserID, req.Question, req.Source)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, resp)
}
