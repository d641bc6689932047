package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Riya-jhankda/FitDotDodge/internal/model"
)

// ClassRepository 课程数据访问接口
// 所有查询都带租户（学校）或归属（教练）过滤；自然日归属的判断
// 留给 Service 层按学校时区换算，存储层不感知时区
type ClassRepository interface {
	Create(ctx context.Context, class *model.Class) error
	GetByID(ctx context.Context, id string) (*model.Class, error)
	GetInSchool(ctx context.Context, id, schoolID string) (*model.Class, error)
	GetByCoach(ctx context.Context, id, coachID string) (*model.Class, error)
	ExistsByCoachAndName(ctx context.Context, coachID, name string) (bool, error)
	ListBySchool(ctx context.Context, schoolID string) ([]model.Class, error)
	ListByCoach(ctx context.Context, coachID string) ([]model.Class, error)
	ListByIDs(ctx context.Context, ids []string) ([]model.Class, error)
	CountByCoach(ctx context.Context, coachID string) (int64, error)
	Update(ctx context.Context, class *model.Class) error
}

// classRepo ClassRepository 的 GORM 实现
type classRepo struct {
	db *gorm.DB
}

// NewClassRepo 创建 ClassRepository 实例
func NewClassRepo(db *gorm.DB) ClassRepository {
	return &classRepo{db: db}
}

func (r *classRepo) Create(ctx context.Context, class *model.Class) error {
	return r.db.WithContext(ctx).Create(class).Error
}

func (r *classRepo) GetByID(ctx context.Context, id string) (*model.Class, error) {
	var class model.Class
	err := r.db.WithContext(ctx).
		Where("class_id = ?", id).
		First(&class).Error
	if err != nil {
		return nil, err
	}
	return &class, nil
}

func (r *classRepo) GetInSchool(ctx context.Context, id, schoolID string) (*model.Class, error) {
	var class model.Class
	err := r.db.WithContext(ctx).
		Where("class_id = ? AND school_id = ?", id, schoolID).
		First(&class).Error
	if err != nil {
		return nil, err
	}
	return &class, nil
}

func (r *classRepo) GetByCoach(ctx context.Context, id, coachID string) (*model.Class, error) {
	var class model.Class
	err := r.db.WithContext(ctx).
		Where("class_id = ? AND coach_id = ?", id, coachID).
		First(&class).Error
	if err != nil {
		return nil, err
	}
	return &class, nil
}

func (r *classRepo) ExistsByCoachAndName(ctx context.Context, coachID, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Class{}).
		Where("coach_id = ? AND name = ?", coachID, name).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *classRepo) ListBySchool(ctx context.Context, schoolID string) ([]model.Class, error) {
	var classes []model.Class
	err := r.db.WithContext(ctx).
		Where("school_id = ?", schoolID).
		Order("start_time ASC").
		Find(&classes).Error
	if err != nil {
		return nil, err
	}
	return classes, nil
}

func (r *classRepo) ListByCoach(ctx context.Context, coachID string) ([]model.Class, error) {
	var classes []model.Class
	err := r.db.WithContext(ctx).
		Where("coach_id = ?", coachID).
		Order("start_time ASC").
		Find(&classes).Error
	if err != nil {
		return nil, err
	}
	return classes, nil
}

func (r *classRepo) ListByIDs(ctx context.Context, ids []string) ([]model.Class, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var classes []model.Class
	err := r.db.WithContext(ctx).
		Where("class_id IN ?", ids).
		Find(&classes).Error
	if err != nil {
		return nil, err
	}
	return classes, nil
}

func (r *classRepo) CountByCoach(ctx context.Context, coachID string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&model.Class{}).
		Where("coach_id = ?", coachID).
		Count(&total).Error
	return total, err
}

func (r *classRepo) Update(ctx context.Context, class *model.Class) error {
	return r.db.WithContext(ctx).Save(class).Error
}
