package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Riya-jhankda/FitDotDodge/internal/dto"
	"github.com/Riya-jhankda/FitDotDodge/internal/service"
	"github.com/Riya-jhankda/FitDotDodge/pkg/response"
)

// ScannerHandler 扫码设备模块 HTTP 处理器
type ScannerHandler struct {
	attendanceSvc service.AttendanceService
	classSvc      service.ClassService
}

// NewScannerHandler 创建 ScannerHandler
func NewScannerHandler(attendanceSvc service.AttendanceService, classSvc service.ClassService) *ScannerHandler {
	return &ScannerHandler{attendanceSvc: attendanceSvc, classSvc: classSvc}
}

// ScanAttendance 扫码打卡
// POST /api/v1/scanner/mark-attendance
func (h *ScannerHandler) ScanAttendance(c *gin.Context) {
	device, school, ok := MustGetScannerScope(c)
	if !ok {
		return
	}

	var req dto.ScanAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.attendanceSvc.MarkByQR(c.Request.Context(), device, school, &req)
	if err != nil {
		h.handleScanError(c, err)
		return
	}

	// 重复打卡也是 200：设备端只需要把状态展示给学员
	response.OK(c, result)
}

// TodayClasses 本校今日课程（设备端展示供学员选择）
// GET /api/v1/scanner/today-classes
func (h *ScannerHandler) TodayClasses(c *gin.Context) {
	_, school, ok := MustGetScannerScope(c)
	if !ok {
		return
	}

	classes, err := h.classSvc.ListTodayForSchool(c.Request.Context(), school)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": classes})
}

// handleScanError 统一处理扫码打卡业务错误
func (h *ScannerHandler) handleScanError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrClassNotFound):
		response.NotFound(c, 20001, "课程不存在")
	case errors.Is(err, service.ErrQRNotRecognized):
		response.NotFound(c, 20002, "二维码无法识别")
	case errors.Is(err, service.ErrMemberInactive):
		response.Forbidden(c, 20003, "学员已停用")
	case errors.Is(err, service.ErrNotEnrolled):
		response.Forbidden(c, 20004, "学员未加入该课程")
	default:
		response.InternalError(c)
	}
}
