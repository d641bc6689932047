package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Riya-jhankda/FitDotDodge/internal/dto"
	"github.com/Riya-jhankda/FitDotDodge/internal/service"
	"github.com/Riya-jhankda/FitDotDodge/pkg/response"
)

// SummaryHandler 统计模块 HTTP 处理器
type SummaryHandler struct {
	summarySvc service.SummaryService
}

// NewSummaryHandler 创建 SummaryHandler
func NewSummaryHandler(summarySvc service.SummaryService) *SummaryHandler {
	return &SummaryHandler{summarySvc: summarySvc}
}

// WeeklySummary 本周训练汇总
// GET /api/v1/users/summary/weekly
func (h *SummaryHandler) WeeklySummary(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	summary, err := h.summarySvc.WeeklySummary(c.Request.Context(), userID)
	if err != nil {
		h.handleSummaryError(c, err)
		return
	}

	response.OK(c, summary)
}

// RangeSummary 区间训练统计
// GET /api/v1/users/summary/range?start_date=2026-03-02&end_date=2026-03-08
func (h *SummaryHandler) RangeSummary(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.RangeSummaryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	summary, err := h.summarySvc.RangeSummary(c.Request.Context(), userID, req.StartDate, req.EndDate)
	if err != nil {
		h.handleSummaryError(c, err)
		return
	}

	response.OK(c, summary)
}

// handleSummaryError 统一处理统计模块业务错误
func (h *SummaryHandler) handleSummaryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDateRangeInvalid):
		response.BadRequest(c, 24001, "日期区间不合法")
	case errors.Is(err, service.ErrScopeUnresolved), errors.Is(err, service.ErrMemberInactive):
		response.Unauthorized(c, 10002, "未认证")
	default:
		response.InternalError(c)
	}
}
