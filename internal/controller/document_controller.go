package controller

import (
	"notedu_backend/internal/service"
	"notedu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// 单个文件上限，课程笔记够用
const maxUploadSize = 32 << 20

type DocumentController struct {
	DocumentService *service.DocumentService
}

func NewDocumentController(documentService *service.DocumentService) *DocumentController {
	return &DocumentController{DocumentService: documentService}
}

// Upload godoc
// @Summary 上传课程笔记
// @Description txt/md直接入检索库，其他格式先存文件再单独提交抽取后的正文
// @Tags 文档
// @Accept  multipart/form-data
// @Produce  json
// @Security BearerAuth
// @Param   file formData file true "笔记文件"
// @Success 201 {object} util.Response{data=model.Document}
// @Failure 400 {object} util.Response "文件缺失或过大"
// @Router /api/documents [post]
func (c *DocumentController) Upload(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "缺少上传文件")
		return
	}
	if file.Size > maxUploadSize {
		util.BadRequest(ctx, "文件过大")
		return
	}

	src, err := file.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer src.Close()

	doc, err := c.DocumentService.Upload(
		ctx.Request.Context(),
		claims.UserID,
		file.Filename,
		src,
		file.Size,
		file.Header.Get("Content-Type"),
	)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Created(ctx, doc)
}

// List godoc
// @Summary 我的文档列表
// @Tags 文档
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Document}
// @Router /api/documents [get]
func (c *DocumentController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	docs, err := c.DocumentService.ListForUser(claims.UserID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, docs)
}

type IngestTextRequest struct {
	Text string `json:"text" binding:"required"`
}

// IngestText godoc
// @Summary 提交抽取后的正文入检索库
// @Description PDF等格式前端抽取正文后调用
// @Tags 文档
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "文档ID"
// @Param   body body IngestTextRequest true "抽取后的正文"
// @Success 200 {object} util.Response{data=model.Document}
// @Router /api/documents/{id}/ingest [post]
func (c *DocumentController) IngestText(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	docID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req IngestTextRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	doc, err := c.DocumentService.IngestText(ctx.Request.Context(), claims.UserID, docID, req.Text)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, doc)
}

// Sources godoc
// @Summary 已入库的笔记来源列表
// @Description 问答、摘要和出题接口的source参数取自这里
// @Tags 文档
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]string}
// @Router /api/documents/sources [get]
func (c *DocumentController) Sources(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	sources, err := c.DocumentService.Sources(ctx.Request.Context(), claims.UserID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, sources)
}

// Delete godoc
// @Summary 删除文档
// @Description 同时清理对象存储和检索库
// @Tags 文档
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "文档ID"
// @Success 200 {object} util.Response
// @Router /api/documents/{id} [delete]
func (c *DocumentController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	docID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.DocumentService.Delete(ctx.Request.Context(), claims.UserID, docID); err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": docID})
}
