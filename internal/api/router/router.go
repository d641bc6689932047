package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Riya-jhankda/FitDotDodge/config"
	"github.com/Riya-jhankda/FitDotDodge/internal/api/handler"
	"github.com/Riya-jhankda/FitDotDodge/internal/api/middleware"
	"github.com/Riya-jhankda/FitDotDodge/internal/service"
	"github.com/Riya-jhankda/FitDotDodge/pkg/jwt"
	"github.com/Riya-jhankda/FitDotDodge/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, svc *service.Service, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.User.Login)
		}

		// 扫码设备模块（设备密钥认证 + 限流）
		scanner := v1.Group("/scanner")
		scanner.Use(middleware.RateLimit(rdb, 60, time.Minute))
		scanner.Use(middleware.ScannerAuth(svc.Scope))
		{
			scanner.POST("/mark-attendance", h.Scanner.ScanAttendance)
			scanner.GET("/today-classes", h.Scanner.TodayClasses)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr))
		{
			// 用户模块
			users := authorized.Group("/users")
			{
				users.GET("/profile", h.User.GetProfile)
				users.PUT("/profile", h.User.UpdateProfile)
				users.POST("/qr", h.User.GetQRToken)
				users.GET("/summary/weekly", h.Summary.WeeklySummary)
				users.GET("/summary/range", h.Summary.RangeSummary)
			}

			// 训练日志模块
			workouts := authorized.Group("/workouts")
			{
				workouts.POST("", h.Workout.CreateLog)
				workouts.GET("", h.Workout.ListLogs)
			}

			// 课程模块
			classes := authorized.Group("/classes")
			{
				classes.GET("/mine", h.Class.ListMyClasses)
				classes.POST("", middleware.RoleAuth("coach", "admin"), h.Class.CreateClass)
				classes.PUT("/:id", middleware.RoleAuth("coach", "admin"), h.Class.UpdateClass)
				classes.PUT("/:id/note", middleware.RoleAuth("coach"), h.Class.UpdateNote)
			}

			// 教练模块
			coach := authorized.Group("/coach")
			coach.Use(middleware.RoleAuth("coach", "admin"))
			{
				coach.GET("/profile", h.Coach.Profile)
				coach.GET("/classes", h.Class.ListCoachClasses)
				coach.GET("/classes/:id/members", h.Coach.EnrolledUsers)
				coach.POST("/classes/members", h.Coach.AddMember)
				coach.POST("/attendance", h.Coach.ManualAttendance)
				coach.GET("/classes/:id/attendance/present", h.Coach.PresentRoster)
				coach.GET("/classes/:id/attendance/absent", h.Coach.AbsentRoster)
			}

			// 学校管理模块
			admin := authorized.Group("/admin")
			admin.Use(middleware.RoleAuth("admin", "owner"))
			{
				admin.GET("/users", h.Admin.ListUsers)
				admin.GET("/stats", h.Admin.SchoolStats)
				admin.GET("/classes", h.Admin.ListClasses)
				admin.GET("/scanners", h.Admin.ListScanners)
				admin.POST("/scanners", h.Admin.RegisterScanner)
			}

			// 平台运营模块
			owner := authorized.Group("/owner")
			owner.Use(middleware.RoleAuth("owner"))
			{
				owner.POST("/schools", h.Admin.CreateSchool)
				owner.GET("/schools", h.Admin.ListSchools)
			}
		}
	}

	return r
}
