package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Riya-jhankda/FitDotDodge/internal/model"
)

// EnrollmentRepository 选课关系数据访问接口
type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *model.ClassEnrollment) error
	GetByUserAndClass(ctx context.Context, userID, classID string) (*model.ClassEnrollment, error)
	// IsActivelyEnrolled 仅当存在 status=Active 的行时返回 true
	IsActivelyEnrolled(ctx context.Context, userID, classID string) (bool, error)
	ListActiveByClass(ctx context.Context, classID string) ([]model.ClassEnrollment, error)
	ListByUser(ctx context.Context, userID string) ([]model.ClassEnrollment, error)
	// CountByUser 统计用户当前在读的选课数（仅 Active）
	CountByUser(ctx context.Context, userID string) (int64, error)
	// CountDistinctUsersByCoach 统计教练所有课程下去重后的在读学员数
	CountDistinctUsersByCoach(ctx context.Context, coachID string) (int64, error)
	Update(ctx context.Context, enrollment *model.ClassEnrollment) error
}

// enrollmentRepo EnrollmentRepository 的 GORM 实现
type enrollmentRepo struct {
	db *gorm.DB
}

// NewEnrollmentRepo 创建 EnrollmentRepository 实例
func NewEnrollmentRepo(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepo{db: db}
}

func (r *enrollmentRepo) Create(ctx context.Context, enrollment *model.ClassEnrollment) error {
	return r.db.WithContext(ctx).Create(enrollment).Error
}

func (r *enrollmentRepo) GetByUserAndClass(ctx context.Context, userID, classID string) (*model.ClassEnrollment, error) {
	var enrollment model.ClassEnrollment
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND class_id = ?", userID, classID).
		First(&enrollment).Error
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *enrollmentRepo) IsActivelyEnrolled(ctx context.Context, userID, classID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.ClassEnrollment{}).
		Where("user_id = ? AND class_id = ? AND status = ?", userID, classID, model.StatusActive).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *enrollmentRepo) ListActiveByClass(ctx context.Context, classID string) ([]model.ClassEnrollment, error) {
	var enrollments []model.ClassEnrollment
	err := r.db.WithContext(ctx).
		Where("class_id = ? AND status = ?", classID, model.StatusActive).
		Order("enrolled_on ASC").
		Find(&enrollments).Error
	if err != nil {
		return nil, err
	}
	return enrollments, nil
}

func (r *enrollmentRepo) ListByUser(ctx context.Context, userID string) ([]model.ClassEnrollment, error) {
	var enrollments []model.ClassEnrollment
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&enrollments).Error
	if err != nil {
		return nil, err
	}
	return enrollments, nil
}

func (r *enrollmentRepo) CountByUser(ctx context.Context, userID string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&model.ClassEnrollment{}).
		Where("user_id = ? AND status = ?", userID, model.StatusActive).
		Count(&total).Error
	return total, err
}

func (r *enrollmentRepo) CountDistinctUsersByCoach(ctx context.Context, coachID string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&model.ClassEnrollment{}).
		Joins("JOIN classes ON classes.class_id = class_enrollments.class_id").
		Where("classes.coach_id = ? AND class_enrollments.status = ?", coachID, model.StatusActive).
		Distinct("class_enrollments.user_id").
		Count(&total).Error
	return total, err
}

func (r *enrollmentRepo) Update(ctx context.Context, enrollment *model.ClassEnrollment) error {
	return r.db.WithContext(ctx).Save(enrollment).Error
}
