package controller

import (
	"notedu_backend/internal/service"
	"notedu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ClassController struct {
	ClassService *service.ClassService
}

func NewClassController(classService *service.ClassService) *ClassController {
	return &ClassController{ClassService: classService}
}

type CreateClassRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

// Create godoc
// @Summary 创建班级
// @Description 教师创建班级，自动生成邀请码
// @Tags 班级
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body CreateClassRequest true "班级信息"
// @Success 201 {object} util.Response{data=model.Class}
// @Failure 400 {object} util.Response "标题为空"
// @Router /api/classes [post]
func (c *ClassController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req CreateClassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	class, err := c.ClassService.CreateClass(claims.UserID, req.Title, req.Description)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Created(ctx, class)
}

// List godoc
// @Summary 我的班级列表
// @Description 返回当前用户创建或加入的全部班级
// @Tags 班级
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Class}
// @Router /api/classes [get]
func (c *ClassController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	classes, err := c.ClassService.ListForUser(claims.UserID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, classes)
}

// Get godoc
// @Summary 班级详情
// @Tags 班级
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "班级ID"
// @Success 200 {object} util.Response{data=model.Class}
// @Failure 404 {object} util.Response "班级不存在"
// @Router /api/classes/{id} [get]
func (c *ClassController) Get(ctx *gin.Context) {
	classID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	class, err := c.ClassService.GetClass(classID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, class)
}

type JoinClassRequest struct {
	Code string `json:"code" binding:"required"`
}

// Join godoc
// @Summary 凭邀请码加入班级
// @Description 重复加入不报错
// @Tags 班级
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body JoinClassRequest true "邀请码"
// @Success 200 {object} util.Response{data=model.Class}
// @Failure 404 {object} util.Response "邀请码无效"
// @Router /api/classes/join [post]
func (c *ClassController) Join(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req JoinClassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	class, err := c.ClassService.JoinByCode(claims.UserID, req.Code)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, class)
}

// Members godoc
// @Summary 班级成员列表
// @Description 仅班级所有者可查看
// @Tags 班级
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "班级ID"
// @Success 200 {object} util.Response{data=[]service.ClassMember}
// @Failure 403 {object} util.Response "无权限"
// @Router /api/classes/{id}/members [get]
func (c *ClassController) Members(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	classID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	members, err := c.ClassService.Members(claims.UserID, classID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, members)
}

// Delete godoc
// @Summary 删除班级
// @Description 仅班级所有者，级联删除Quiz、题目与答题记录
// @Tags 班级
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "班级ID"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response "无权限"
// @Router /api/classes/{id} [delete]
func (c *ClassController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	classID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.ClassService.DeleteClass(claims.UserID, classID); err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": classID})
}
