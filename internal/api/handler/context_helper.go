package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Riya-jhankda/FitDotDodge/internal/model"
	"github.com/Riya-jhankda/FitDotDodge/pkg/response"
)

// MustGetUserID 从 Gin 上下文中安全提取 user_id。
// 如果 JWT 中间件未正确注入 user_id，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	return s, true
}

// MustGetSchoolID 从 Gin 上下文中安全提取 school_id。
func MustGetSchoolID(c *gin.Context) (string, bool) {
	v, exists := c.Get("school_id")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	return s, true
}

// MustGetScannerScope 从 Gin 上下文中提取扫码设备与其所属学校。
// 仅在 ScannerAuth 中间件之后可用。
func MustGetScannerScope(c *gin.Context) (*model.ScannerDevice, *model.School, bool) {
	dv, exists := c.Get("scanner_device")
	if !exists {
		response.Unauthorized(c, 10002, "设备未认证")
		return nil, nil, false
	}
	sv, exists := c.Get("scanner_school")
	if !exists {
		response.Unauthorized(c, 10002, "设备未认证")
		return nil, nil, false
	}

	device, ok1 := dv.(*model.ScannerDevice)
	school, ok2 := sv.(*model.School)
	if !ok1 || !ok2 {
		response.Unauthorized(c, 10002, "设备未认证")
		return nil, nil, false
	}
	return device, school, true
}
