package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Riya-jhankda/FitDotDodge/internal/dto"
	"github.com/Riya-jhankda/FitDotDodge/internal/model"
	"github.com/Riya-jhankda/FitDotDodge/internal/service"
	"github.com/Riya-jhankda/FitDotDodge/pkg/response"
)

// CoachHandler 教练模块 HTTP 处理器
type CoachHandler struct {
	attendanceSvc service.AttendanceService
	classSvc      service.ClassService
}

// NewCoachHandler 创建 CoachHandler
func NewCoachHandler(attendanceSvc service.AttendanceService, classSvc service.ClassService) *CoachHandler {
	return &CoachHandler{attendanceSvc: attendanceSvc, classSvc: classSvc}
}

// ManualAttendance 手动点名
// POST /api/v1/coach/attendance
func (h *CoachHandler) ManualAttendance(c *gin.Context) {
	coachID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	schoolID, ok := MustGetSchoolID(c)
	if !ok {
		return
	}

	var req dto.ManualAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	// 出勤落账只需要学校边界，中间件已保证教练归属
	result, err := h.attendanceSvc.SetManual(c.Request.Context(), coachID, &model.School{SchoolID: schoolID}, &req)
	if err != nil {
		h.handleCoachError(c, err)
		return
	}

	response.OK(c, result)
}

// PresentRoster 某课程某日出勤名单
// GET /api/v1/coach/classes/:id/attendance/present?date=2026-03-02
func (h *CoachHandler) PresentRoster(c *gin.Context) {
	coachID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	roster, err := h.attendanceSvc.PresentRoster(c.Request.Context(), coachID, c.Param("id"), c.Query("date"))
	if err != nil {
		h.handleCoachError(c, err)
		return
	}

	response.OK(c, gin.H{"list": roster})
}

// AbsentRoster 某课程某日缺勤名单
// GET /api/v1/coach/classes/:id/attendance/absent?date=2026-03-02
func (h *CoachHandler) AbsentRoster(c *gin.Context) {
	coachID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	roster, err := h.attendanceSvc.AbsentRoster(c.Request.Context(), coachID, c.Param("id"), c.Query("date"))
	if err != nil {
		h.handleCoachError(c, err)
		return
	}

	response.OK(c, gin.H{"list": roster})
}

// AddMember 将学员加入课程
// POST /api/v1/coach/classes/members
func (h *CoachHandler) AddMember(c *gin.Context) {
	coachID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	schoolID, ok := MustGetSchoolID(c)
	if !ok {
		return
	}

	var req dto.AddMemberToClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.classSvc.AddMember(c.Request.Context(), coachID, schoolID, &req)
	if err != nil {
		h.handleCoachError(c, err)
		return
	}

	response.OK(c, result)
}

// Profile 教练主页概览
// GET /api/v1/coach/profile
func (h *CoachHandler) Profile(c *gin.Context) {
	coachID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	profile, err := h.classSvc.CoachProfile(c.Request.Context(), coachID)
	if err != nil {
		h.handleCoachError(c, err)
		return
	}

	response.OK(c, profile)
}

// EnrolledUsers 本班学员名单
// GET /api/v1/coach/classes/:id/members
func (h *CoachHandler) EnrolledUsers(c *gin.Context) {
	coachID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	roster, err := h.classSvc.EnrolledUsers(c.Request.Context(), coachID, c.Param("id"))
	if err != nil {
		h.handleCoachError(c, err)
		return
	}

	response.OK(c, gin.H{"list": roster})
}

// handleCoachError 统一处理教练模块业务错误
func (h *CoachHandler) handleCoachError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrClassNotOwned):
		response.NotFound(c, 21001, "课程不存在或不属于当前教练")
	case errors.Is(err, service.ErrClassNotFound):
		response.NotFound(c, 21002, "课程不存在")
	case errors.Is(err, service.ErrDateInvalid):
		response.BadRequest(c, 21003, "日期格式不正确")
	case errors.Is(err, service.ErrEntriesEmpty):
		response.BadRequest(c, 21004, "点名记录不能为空")
	case errors.Is(err, service.ErrEmailConflict):
		response.BadRequest(c, 21005, "邮箱已被其他学校的用户使用")
	case errors.Is(err, service.ErrScopeUnresolved), errors.Is(err, service.ErrMemberInactive):
		response.Unauthorized(c, 10002, "未认证")
	default:
		response.InternalError(c)
	}
}
