package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Riya-jhankda/FitDotDodge/internal/dto"
	"github.com/Riya-jhankda/FitDotDodge/internal/model"
	"github.com/Riya-jhankda/FitDotDodge/internal/repository"
)

// ── 测试辅助 ──

func setupWorkoutService(t *testing.T) (*workoutService, *model.User) {
	t.Helper()
	ctx := context.Background()

	schools := newMockSchoolRepo()
	users := newMockUserRepo()
	classes := newMockClassRepo()
	repo := &repository.Repository{
		School:     schools,
		User:       users,
		Scanner:    newMockScannerRepo(),
		Class:      classes,
		Enrollment: newMockEnrollmentRepo(classes),
		Attendance: newMockAttendanceRepo(classes),
		WorkoutLog: newMockWorkoutLogRepo(),
	}

	school := &model.School{Name: "测试武校", UTCOffsetMinutes: 330}
	if err := schools.Create(ctx, school); err != nil {
		t.Fatalf("创建学校失败: %v", err)
	}
	member := &model.User{Name: "小李", Email: "li@test.cn", Role: model.RoleMember, Status: model.StatusActive, SchoolID: school.SchoolID}
	if err := users.Create(ctx, member); err != nil {
		t.Fatalf("创建学员失败: %v", err)
	}

	logger := zap.NewNop()
	scope := NewScopeService(repo, logger)
	svc := NewWorkoutService(repo, scope, logger).(*workoutService)
	svc.nowFn = func() time.Time { return time.Date(2026, 3, 2, 6, 0, 0, 0, time.UTC) }

	return svc, member
}

// ── Create / List 测试 ──

func TestWorkoutService_CreateAndList(t *testing.T) {
	svc, member := setupWorkoutService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, member.UserID, &dto.CreateWorkoutLogRequest{
		Category:     "胸",
		ExerciseName: "卧推",
		Sets:         3,
		Reps:         10,
	})
	if err != nil {
		t.Fatalf("写训练日志应成功: %v", err)
	}
	if created.Category != "胸" || created.Sets != 3 || created.Reps != 10 {
		t.Errorf("日志字段不符: %+v", created)
	}

	logs, err := svc.List(ctx, member.UserID, &dto.ListWorkoutLogsRequest{})
	if err != nil {
		t.Fatalf("查询日志应成功: %v", err)
	}
	if len(logs) != 1 {
		t.Errorf("期望 1 条日志，实际 %d 条", len(logs))
	}
}

func TestWorkoutService_List_DateRangeFilters(t *testing.T) {
	svc, member := setupWorkoutService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, member.UserID, &dto.CreateWorkoutLogRequest{
		Category: "腿", ExerciseName: "深蹲", Sets: 5, Reps: 5,
	}); err != nil {
		t.Fatalf("写训练日志失败: %v", err)
	}

	// 日志记在 IST 2026-03-02，查询前一天应为空
	before := "2026-03-01"
	logs, err := svc.List(ctx, member.UserID, &dto.ListWorkoutLogsRequest{StartDate: &before, EndDate: &before})
	if err != nil {
		t.Fatalf("查询日志应成功: %v", err)
	}
	if len(logs) != 0 {
		t.Errorf("区间外日志不应返回，实际 %d 条", len(logs))
	}

	day := "2026-03-02"
	logs, err = svc.List(ctx, member.UserID, &dto.ListWorkoutLogsRequest{StartDate: &day, EndDate: &day})
	if err != nil {
		t.Fatalf("查询日志应成功: %v", err)
	}
	if len(logs) != 1 {
		t.Errorf("当日日志应返回 1 条，实际 %d 条", len(logs))
	}
}

func TestWorkoutService_Create_UnknownUser(t *testing.T) {
	svc, _ := setupWorkoutService(t)

	_, err := svc.Create(context.Background(), "user-不存在", &dto.CreateWorkoutLogRequest{
		Category: "胸", ExerciseName: "卧推", Sets: 3, Reps: 10,
	})
	if !errors.Is(err, ErrScopeUnresolved) {
		t.Errorf("期望 ErrScopeUnresolved，实际: %v", err)
	}
}
