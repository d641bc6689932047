//go:build integration

package repository_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Riya-jhankda/FitDotDodge/internal/model"
	"github.com/Riya-jhankda/FitDotDodge/internal/repository"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=fitdotdodge password=fitdotdodge_password dbname=fitdotdodge_test sslmode=disable TimeZone=UTC"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法连接测试数据库: %v\n", err)
		os.Exit(1)
	}

	// 自动迁移测试表结构
	err = testDB.AutoMigrate(
		&model.School{},
		&model.User{},
		&model.ScannerDevice{},
		&model.Class{},
		&model.ClassEnrollment{},
		&model.Attendance{},
		&model.WorkoutLog{},
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "AutoMigrate 失败: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()
	os.Exit(code)
}

// setupTestData 创建一所学校、一名学员、一名教练及一门课，并返回清理函数
func setupTestData(t *testing.T) (school *model.School, member *model.User, class *model.Class, cleanup func()) {
	t.Helper()
	ctx := context.Background()

	school = &model.School{
		Name:             fmt.Sprintf("测试学校-%d", time.Now().UnixNano()),
		UTCOffsetMinutes: 330,
	}
	if err := testDB.WithContext(ctx).Create(school).Error; err != nil {
		t.Fatalf("创建学校失败: %v", err)
	}

	member = &model.User{
		Name:         "测试学员",
		Email:        fmt.Sprintf("member%d@test.cn", time.Now().UnixNano()),
		PasswordHash: "$2a$10$placeholder",
		Role:         model.RoleMember,
		Status:       model.StatusActive,
		SchoolID:     school.SchoolID,
	}
	if err := testDB.WithContext(ctx).Create(member).Error; err != nil {
		t.Fatalf("创建学员失败: %v", err)
	}

	coach := &model.User{
		Name:         "测试教练",
		Email:        fmt.Sprintf("coach%d@test.cn", time.Now().UnixNano()),
		PasswordHash: "$2a$10$placeholder",
		Role:         model.RoleCoach,
		Status:       model.StatusActive,
		SchoolID:     school.SchoolID,
	}
	if err := testDB.WithContext(ctx).Create(coach).Error; err != nil {
		t.Fatalf("创建教练失败: %v", err)
	}

	class = &model.Class{
		SchoolID:  school.SchoolID,
		CoachID:   coach.UserID,
		Name:      "晨练拳击",
		ClassType: model.ClassTypeBoxing,
		StartTime: time.Date(2026, 3, 2, 3, 30, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 3, 2, 4, 30, 0, 0, time.UTC),
	}
	if err := testDB.WithContext(ctx).Create(class).Error; err != nil {
		t.Fatalf("创建课程失败: %v", err)
	}

	cleanup = func() {
		testDB.Where("class_id = ?", class.ClassID).Delete(&model.Attendance{})
		testDB.Where("class_id = ?", class.ClassID).Delete(&model.ClassEnrollment{})
		testDB.Where("class_id = ?", class.ClassID).Delete(&model.Class{})
		testDB.Where("user_id = ?", member.UserID).Delete(&model.User{})
		testDB.Where("user_id = ?", coach.UserID).Delete(&model.User{})
		testDB.Where("school_id = ?", school.SchoolID).Delete(&model.School{})
	}
	return
}

// ═══════════════════════════════════════════════════════════
// Test: Attendance Unique Key
// ═══════════════════════════════════════════════════════════

func TestAttendance_DuplicateKey(t *testing.T) {
	_, member, class, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	first := &model.Attendance{
		UserID:    member.UserID,
		ClassID:   class.ClassID,
		Date:      date,
		IsPresent: true,
	}
	if err := repo.Attendance.Create(ctx, first); err != nil {
		t.Fatalf("首次创建考勤失败: %v", err)
	}

	// 同一 (user, class, date) 的第二次插入必须命中唯一索引
	second := &model.Attendance{
		UserID:    member.UserID,
		ClassID:   class.ClassID,
		Date:      date,
		IsPresent: true,
	}
	err := repo.Attendance.Create(ctx, second)
	if err == nil {
		t.Fatal("期望唯一索引冲突，但第二次插入成功了")
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Errorf("期望 gorm.ErrDuplicatedKey，得到: %v", err)
	}

	// 账本里仍然只有一条记录
	found, err := repo.Attendance.GetByKey(ctx, member.UserID, class.ClassID, date)
	if err != nil {
		t.Fatalf("查询考勤失败: %v", err)
	}
	if found.AttendanceID != first.AttendanceID {
		t.Errorf("ID 不匹配: expected %s, got %s", first.AttendanceID, found.AttendanceID)
	}
}

// ═══════════════════════════════════════════════════════════
// Test: Enrollment Unique Key
// ═══════════════════════════════════════════════════════════

func TestEnrollment_DuplicateKey(t *testing.T) {
	_, member, class, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	first := &model.ClassEnrollment{
		UserID:  member.UserID,
		ClassID: class.ClassID,
		Status:  model.StatusActive,
	}
	if err := repo.Enrollment.Create(ctx, first); err != nil {
		t.Fatalf("首次选课失败: %v", err)
	}

	second := &model.ClassEnrollment{
		UserID:  member.UserID,
		ClassID: class.ClassID,
		Status:  model.StatusActive,
	}
	if err := repo.Enrollment.Create(ctx, second); !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Errorf("期望 gorm.ErrDuplicatedKey，得到: %v", err)
	}
}

// ═══════════════════════════════════════════════════════════
// Test: QR Token Conditional Write
// ═══════════════════════════════════════════════════════════

func TestUser_SetQRTokenIfEmpty(t *testing.T) {
	school, member, _, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	// 首次写入成功
	ok, err := repo.User.SetQRTokenIfEmpty(ctx, member.UserID, "QR-first-token")
	if err != nil {
		t.Fatalf("写入二维码令牌失败: %v", err)
	}
	if !ok {
		t.Fatal("期望首次写入成功")
	}

	// 已有令牌时不覆盖
	ok, err = repo.User.SetQRTokenIfEmpty(ctx, member.UserID, "QR-second-token")
	if err != nil {
		t.Fatalf("第二次条件写入失败: %v", err)
	}
	if ok {
		t.Error("令牌已存在，期望条件写入不生效")
	}

	found, err := repo.User.GetByQRToken(ctx, school.SchoolID, "QR-first-token")
	if err != nil {
		t.Fatalf("按令牌查询失败: %v", err)
	}
	if found.UserID != member.UserID {
		t.Errorf("用户不匹配: expected %s, got %s", member.UserID, found.UserID)
	}

	// 令牌查询受学校边界约束
	if _, err := repo.User.GetByQRToken(ctx, "00000000-0000-0000-0000-000000000000", "QR-first-token"); err == nil {
		t.Error("期望跨学校按令牌查询不命中")
	}
}

// ═══════════════════════════════════════════════════════════
// Test: Transaction
// ═══════════════════════════════════════════════════════════

func TestTransaction_Rollback(t *testing.T) {
	_, member, class, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()
	date := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)

	rollbackErr := errors.New("触发回滚")
	err := repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		att := &model.Attendance{
			UserID:    member.UserID,
			ClassID:   class.ClassID,
			Date:      date,
			IsPresent: true,
		}
		if err := txRepo.Attendance.Create(ctx, att); err != nil {
			return err
		}
		return rollbackErr
	})
	if !errors.Is(err, rollbackErr) {
		t.Fatalf("期望事务返回触发错误，得到: %v", err)
	}

	// 验证数据未持久化
	if _, err := repo.Attendance.GetByKey(ctx, member.UserID, class.ClassID, date); err == nil {
		t.Fatal("期望回滚后查不到考勤记录，但实际查到了")
	}
}

func TestTransaction_Commit(t *testing.T) {
	_, member, class, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()
	date := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)

	err := repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		return txRepo.Attendance.Create(ctx, &model.Attendance{
			UserID:    member.UserID,
			ClassID:   class.ClassID,
			Date:      date,
			IsPresent: true,
		})
	})
	if err != nil {
		t.Fatalf("事务提交失败: %v", err)
	}

	found, err := repo.Attendance.GetByKey(ctx, member.UserID, class.ClassID, date)
	if err != nil {
		t.Fatalf("提交后查询考勤失败: %v", err)
	}
	if !found.IsPresent {
		t.Error("期望出勤状态为 true")
	}
}
