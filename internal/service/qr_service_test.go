package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/Riya-jhankda/FitDotDodge/internal/model"
	"github.com/Riya-jhankda/FitDotDodge/internal/repository"
)

// ── 测试辅助 ──

func setupQRService(t *testing.T) (QRService, *mockUserRepo, *model.School) {
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

	return NewQRService(repo, nil, zap.NewNop()), users, school
}

// ── GenerateToken 测试 ──

func TestQRService_GenerateToken_OnceAndImmutable(t *testing.T) {
	svc, users, school := setupQRService(t)
	ctx := context.Background()

	user := &model.User{Name: "小李", Email: "li@test.cn", Role: model.RoleMember, Status: model.StatusActive, SchoolID: school.SchoolID}
	if err := users.Create(ctx, user); err != nil {
		t.Fatalf("创建用户失败: %v", err)
	}

	first, err := svc.GenerateToken(ctx, user.UserID)
	if err != nil {
		t.Fatalf("首次生成应成功: %v", err)
	}
	if !strings.HasPrefix(first, "QR-") {
		t.Errorf("令牌应以 QR- 开头，实际 %s", first)
	}

	second, err := svc.GenerateToken(ctx, user.UserID)
	if err != nil {
		t.Fatalf("重复生成不应报错: %v", err)
	}
	if second != first {
		t.Errorf("令牌一经生成不可变: 期望 %s，实际 %s", first, second)
	}
}

func TestQRService_GenerateToken_UserNotFound(t *testing.T) {
	svc, _, _ := setupQRService(t)

	_, err := svc.GenerateToken(context.Background(), "user-不存在")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound，实际: %v", err)
	}
}

// ── Resolve 测试 ──

func TestQRService_Resolve_ScopedToSchool(t *testing.T) {
	svc, users, school := setupQRService(t)
	ctx := context.Background()

	token := "QR-abc"
	user := &model.User{Name: "小李", Email: "li@test.cn", Role: model.RoleMember, Status: model.StatusActive, SchoolID: school.SchoolID, QRToken: &token}
	if err := users.Create(ctx, user); err != nil {
		t.Fatalf("创建用户失败: %v", err)
	}

	resolved, err := svc.Resolve(ctx, school.SchoolID, token)
	if err != nil {
		t.Fatalf("同校解析应成功: %v", err)
	}
	if resolved.UserID != user.UserID {
		t.Errorf("期望解析出 %s，实际 %s", user.UserID, resolved.UserID)
	}

	// 同一令牌在其他学校范围内不可识别
	if _, err := svc.Resolve(ctx, "school-其他", token); !errors.Is(err, ErrQRNotRecognized) {
		t.Errorf("跨校解析期望 ErrQRNotRecognized，实际: %v", err)
	}
}

func TestQRService_Resolve_InactiveUser(t *testing.T) {
	svc, users, school := setupQRService(t)
	ctx := context.Background()

	token := "QR-suspended"
	user := &model.User{Name: "被停用", Email: "sus@test.cn", Role: model.RoleMember, Status: model.StatusSuspended, SchoolID: school.SchoolID, QRToken: &token}
	if err := users.Create(ctx, user); err != nil {
		t.Fatalf("创建用户失败: %v", err)
	}

	if _, err := svc.Resolve(ctx, school.SchoolID, token); !errors.Is(err, ErrMemberInactive) {
		t.Errorf("停用用户期望 ErrMemberInactive，实际: %v", err)
	}
}

func TestQRService_Resolve_EmptyToken(t *testing.T) {
	svc, _, school := setupQRService(t)

	if _, err := svc.Resolve(context.Background(), school.SchoolID, ""); !errors.Is(err, ErrQRNotRecognized) {
		t.Errorf("空令牌期望 ErrQRNotRecognized，实际: %v", err)
	}
}
