package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Riya-jhankda/FitDotDodge/internal/dto"
	"github.com/Riya-jhankda/FitDotDodge/internal/service"
	"github.com/Riya-jhankda/FitDotDodge/pkg/response"
)

// ClassHandler 课程模块 HTTP 处理器
type ClassHandler struct {
	classSvc service.ClassService
}

// NewClassHandler 创建 ClassHandler
func NewClassHandler(classSvc service.ClassService) *ClassHandler {
	return &ClassHandler{classSvc: classSvc}
}

// CreateClass 创建课程
// POST /api/v1/classes
func (h *ClassHandler) CreateClass(c *gin.Context) {
	coachID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	schoolID, ok := MustGetSchoolID(c)
	if !ok {
		return
	}

	var req dto.CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	class, err := h.classSvc.Create(c.Request.Context(), coachID, schoolID, &req)
	if err != nil {
		h.handleClassError(c, err)
		return
	}

	response.Created(c, class)
}

// UpdateClass 更新课程
// PUT /api/v1/classes/:id
func (h *ClassHandler) UpdateClass(c *gin.Context) {
	coachID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	class, err := h.classSvc.Update(c.Request.Context(), coachID, c.Param("id"), &req)
	if err != nil {
		h.handleClassError(c, err)
		return
	}

	response.OK(c, class)
}

// UpdateNote 写入或清除教练备注
// PUT /api/v1/classes/:id/note
func (h *ClassHandler) UpdateNote(c *gin.Context) {
	coachID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateClassNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	class, err := h.classSvc.UpdateNote(c.Request.Context(), coachID, c.Param("id"), req.Note)
	if err != nil {
		h.handleClassError(c, err)
		return
	}

	response.OK(c, class)
}

// ListMyClasses 学员视角的课程列表
// GET /api/v1/classes/mine
func (h *ClassHandler) ListMyClasses(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	list, err := h.classSvc.ListForMember(c.Request.Context(), userID)
	if err != nil {
		h.handleClassError(c, err)
		return
	}

	response.OK(c, list)
}

// ListCoachClasses 教练视角的课程列表
// GET /api/v1/coach/classes
func (h *ClassHandler) ListCoachClasses(c *gin.Context) {
	coachID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	list, err := h.classSvc.ListForCoach(c.Request.Context(), coachID)
	if err != nil {
		h.handleClassError(c, err)
		return
	}

	response.OK(c, list)
}

// handleClassError 统一处理课程模块业务错误
func (h *ClassHandler) handleClassError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrClassNotOwned):
		response.NotFound(c, 22001, "课程不存在或不属于当前教练")
	case errors.Is(err, service.ErrClassTypeInvalid):
		response.BadRequest(c, 22002, "课程类型不合法")
	case errors.Is(err, service.ErrClassTimeInvalid):
		response.BadRequest(c, 22003, "课程时间不合法")
	case errors.Is(err, service.ErrClassNameTaken):
		response.BadRequest(c, 22004, "同名课程已存在")
	case errors.Is(err, service.ErrScopeUnresolved), errors.Is(err, service.ErrMemberInactive):
		response.Unauthorized(c, 10002, "未认证")
	default:
		response.InternalError(c)
	}
}
