package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Riya-jhankda/FitDotDodge/internal/service"
	"github.com/Riya-jhankda/FitDotDodge/pkg/response"
)

// ScannerAuth 扫码设备认证中间件
// 设备不走 JWT，通过 Scanner-Key 请求头认证；解析出的设备与学校
// 注入上下文，后续处理一律限定在该学校边界内
func ScannerAuth(scope service.ScopeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := c.GetHeader("Scanner-Key")
		if apiKey == "" {
			response.Unauthorized(c, 10002, "缺少设备密钥")
			c.Abort()
			return
		}

		device, school, err := scope.ResolveScannerScope(c.Request.Context(), apiKey)
		if err != nil {
			if errors.Is(err, service.ErrScopeUnresolved) {
				response.Unauthorized(c, 10002, "设备密钥无效")
			} else {
				response.InternalError(c)
			}
			c.Abort()
			return
		}

		c.Set("scanner_device", device)
		c.Set("scanner_school", school)

		c.Next()
	}
}
