package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Riya-jhankda/FitDotDodge/internal/model"
	"github.com/Riya-jhankda/FitDotDodge/internal/repository"
)

// ── 选课模块业务错误 ──

var (
	ErrClassNotFound  = errors.New("课程不存在")
	ErrMemberNotFound = errors.New("学员不存在")
)

// EnrollmentService 选课关系接口
// 选课是幂等操作：重复加入同一课程不报错也不产生第二行
type EnrollmentService interface {
	// Enroll 将学员加入课程，返回是否此前已在班
	Enroll(ctx context.Context, schoolID, userID, classID string) (alreadyEnrolled bool, err error)
	// IsEnrolled 学员是否在班（仅 Active 状态算在班）
	IsEnrolled(ctx context.Context, userID, classID string) (bool, error)
}

type enrollmentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewEnrollmentService 创建 EnrollmentService 实例
func NewEnrollmentService(repo *repository.Repository, logger *zap.Logger) EnrollmentService {
	return &enrollmentService{repo: repo, logger: logger}
}

// ────────────────────── Enroll ──────────────────────

func (s *enrollmentService) Enroll(ctx context.Context, schoolID, userID, classID string) (bool, error) {
	// 学员和课程都必须属于同一所学校
	if _, err := s.repo.User.GetByIDInSchool(ctx, userID, schoolID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrMemberNotFound
		}
		return false, err
	}
	if _, err := s.repo.Class.GetInSchool(ctx, classID, schoolID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrClassNotFound
		}
		return false, err
	}

	existing, err := s.repo.Enrollment.GetByUserAndClass(ctx, userID, classID)
	if err == nil {
		if existing.Status == model.StatusActive {
			return true, nil
		}
		// 曾退课的学员重新加入：复用原行，置回 Active
		existing.Status = model.StatusActive
		if err := s.repo.Enrollment.Update(ctx, existing); err != nil {
			return false, err
		}
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	enrollment := &model.ClassEnrollment{
		UserID:     userID,
		ClassID:    classID,
		Status:     model.StatusActive,
		EnrolledOn: time.Now().UTC(),
	}
	if err := s.repo.Enrollment.Create(ctx, enrollment); err != nil {
		// 并发加入命中唯一约束：对方已写入，本次按已在班返回
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return true, nil
		}
		s.logger.Error("选课写入失败",
			zap.String("user_id", userID), zap.String("class_id", classID), zap.Error(err))
		return false, err
	}

	return false, nil
}

// ────────────────────── IsEnrolled ──────────────────────

func (s *enrollmentService) IsEnrolled(ctx context.Context, userID, classID string) (bool, error) {
	return s.repo.Enrollment.IsActivelyEnrolled(ctx, userID, classID)
}
