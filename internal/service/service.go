package service

import (
	"go.uber.org/zap"

	"github.com/Riya-jhankda/FitDotDodge/internal/repository"
	"github.com/Riya-jhankda/FitDotDodge/pkg/jwt"
	"github.com/Riya-jhankda/FitDotDodge/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Scope      ScopeService
	QR         QRService
	Enrollment EnrollmentService
	Attendance AttendanceService
	Summary    SummaryService
	Class      ClassService
	Workout    WorkoutService
	User       UserService
	Admin      AdminService
}

// NewService 创建 Service 聚合。cache 允许为 nil（Redis 不可用时降级运行）
func NewService(
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	cache *redis.Client,
	logger *zap.Logger,
) *Service {
	scope := NewScopeService(repo, logger)
	qr := NewQRService(repo, cache, logger)
	enrollment := NewEnrollmentService(repo, logger)

	return &Service{
		Scope:      scope,
		QR:         qr,
		Enrollment: enrollment,
		Attendance: NewAttendanceService(repo, qr, logger),
		Summary:    NewSummaryService(repo, scope, logger),
		Class:      NewClassService(repo, scope, enrollment, logger),
		Workout:    NewWorkoutService(repo, scope, logger),
		User:       NewUserService(repo, jwtMgr, logger),
		Admin:      NewAdminService(repo, logger),
	}
}
