package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Riya-jhankda/FitDotDodge/internal/dto"
	"github.com/Riya-jhankda/FitDotDodge/internal/service"
	"github.com/Riya-jhankda/FitDotDodge/pkg/response"
)

// AdminHandler 学校管理与平台运营 HTTP 处理器
type AdminHandler struct {
	adminSvc service.AdminService
}

// NewAdminHandler 创建 AdminHandler
func NewAdminHandler(adminSvc service.AdminService) *AdminHandler {
	return &AdminHandler{adminSvc: adminSvc}
}

// ListUsers 按角色分页查询本校用户
// GET /api/v1/admin/users?role=member&search=&page=1&page_size=20
func (h *AdminHandler) ListUsers(c *gin.Context) {
	schoolID, ok := MustGetSchoolID(c)
	if !ok {
		return
	}

	var req dto.ListUsersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	users, total, err := h.adminSvc.ListUsers(c.Request.Context(), schoolID, &req)
	if err != nil {
		h.handleAdminError(c, err)
		return
	}

	response.OKPage(c, users, total, req.GetPage(), req.GetPageSize())
}

// SchoolStats 本校规模概览
// GET /api/v1/admin/stats
func (h *AdminHandler) SchoolStats(c *gin.Context) {
	schoolID, ok := MustGetSchoolID(c)
	if !ok {
		return
	}

	stats, err := h.adminSvc.SchoolStats(c.Request.Context(), schoolID)
	if err != nil {
		h.handleAdminError(c, err)
		return
	}

	response.OK(c, stats)
}

// ListClasses 本校全部课程
// GET /api/v1/admin/classes
func (h *AdminHandler) ListClasses(c *gin.Context) {
	schoolID, ok := MustGetSchoolID(c)
	if !ok {
		return
	}

	classes, err := h.adminSvc.ListClasses(c.Request.Context(), schoolID)
	if err != nil {
		h.handleAdminError(c, err)
		return
	}

	response.OK(c, gin.H{"list": classes})
}

// ListScanners 本校扫码设备清单
// GET /api/v1/admin/scanners
func (h *AdminHandler) ListScanners(c *gin.Context) {
	schoolID, ok := MustGetSchoolID(c)
	if !ok {
		return
	}

	devices, err := h.adminSvc.ListScanners(c.Request.Context(), schoolID)
	if err != nil {
		h.handleAdminError(c, err)
		return
	}

	response.OK(c, gin.H{"list": devices})
}

// RegisterScanner 登记扫码设备
// POST /api/v1/admin/scanners
func (h *AdminHandler) RegisterScanner(c *gin.Context) {
	schoolID, ok := MustGetSchoolID(c)
	if !ok {
		return
	}

	var req dto.RegisterScannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	device, err := h.adminSvc.RegisterScanner(c.Request.Context(), schoolID, &req)
	if err != nil {
		h.handleAdminError(c, err)
		return
	}

	response.Created(c, device)
}

// CreateSchool 开通学校
// POST /api/v1/owner/schools
func (h *AdminHandler) CreateSchool(c *gin.Context) {
	var req dto.CreateSchoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	school, err := h.adminSvc.CreateSchool(c.Request.Context(), &req)
	if err != nil {
		h.handleAdminError(c, err)
		return
	}

	response.Created(c, school)
}

// ListSchools 全部学校
// GET /api/v1/owner/schools
func (h *AdminHandler) ListSchools(c *gin.Context) {
	schools, err := h.adminSvc.ListSchools(c.Request.Context())
	if err != nil {
		h.handleAdminError(c, err)
		return
	}

	response.OK(c, gin.H{"list": schools})
}

// handleAdminError 统一处理管理模块业务错误
func (h *AdminHandler) handleAdminError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSchoolNameTaken):
		response.BadRequest(c, 26001, "学校名称已存在")
	default:
		response.InternalError(c)
	}
}
