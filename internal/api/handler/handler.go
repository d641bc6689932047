package handler

import "github.com/Riya-jhankda/FitDotDodge/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	User    *UserHandler
	Scanner *ScannerHandler
	Coach   *CoachHandler
	Class   *ClassHandler
	Summary *SummaryHandler
	Workout *WorkoutHandler
	Admin   *AdminHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		User:    NewUserHandler(svc.User, svc.QR),
		Scanner: NewScannerHandler(svc.Attendance, svc.Class),
		Coach:   NewCoachHandler(svc.Attendance, svc.Class),
		Class:   NewClassHandler(svc.Class),
		Summary: NewSummaryHandler(svc.Summary),
		Workout: NewWorkoutHandler(svc.Workout),
		Admin:   NewAdminHandler(svc.Admin),
	}
}
