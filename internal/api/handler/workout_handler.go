package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Riya-jhankda/FitDotDodge/internal/dto"
	"github.com/Riya-jhankda/FitDotDodge/internal/service"
	"github.com/Riya-jhankda/FitDotDodge/pkg/response"
)

// WorkoutHandler 训练日志模块 HTTP 处理器
type WorkoutHandler struct {
	workoutSvc service.WorkoutService
}

// NewWorkoutHandler 创建 WorkoutHandler
func NewWorkoutHandler(workoutSvc service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutSvc: workoutSvc}
}

// CreateLog 新增训练日志
// POST /api/v1/workouts
func (h *WorkoutHandler) CreateLog(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateWorkoutLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	log, err := h.workoutSvc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleWorkoutError(c, err)
		return
	}

	response.Created(c, log)
}

// ListLogs 查询训练日志
// GET /api/v1/workouts?start_date=2026-03-02&end_date=2026-03-08
func (h *WorkoutHandler) ListLogs(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ListWorkoutLogsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	logs, err := h.workoutSvc.List(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleWorkoutError(c, err)
		return
	}

	response.OK(c, gin.H{"list": logs})
}

// handleWorkoutError 统一处理训练日志模块业务错误
func (h *WorkoutHandler) handleWorkoutError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDateRangeInvalid):
		response.BadRequest(c, 25001, "日期区间不合法")
	case errors.Is(err, service.ErrScopeUnresolved), errors.Is(err, service.ErrMemberInactive):
		response.Unauthorized(c, 10002, "未认证")
	default:
		response.InternalError(c)
	}
}
