package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Riya-jhankda/FitDotDodge/internal/model"
)

// WorkoutLogRepository 训练日志数据访问接口
// 仅追加；时间过滤按绝对时刻的半开区间 [start, end)，UTC 区间由 Service 层换算
type WorkoutLogRepository interface {
	Create(ctx context.Context, log *model.WorkoutLog) error
	ListByUser(ctx context.Context, userID string, start, end *time.Time) ([]model.WorkoutLog, error)
}

// workoutLogRepo WorkoutLogRepository 的 GORM 实现
type workoutLogRepo struct {
	db *gorm.DB
}

// NewWorkoutLogRepo 创建 WorkoutLogRepository 实例
func NewWorkoutLogRepo(db *gorm.DB) WorkoutLogRepository {
	return &workoutLogRepo{db: db}
}

func (r *workoutLogRepo) Create(ctx context.Context, log *model.WorkoutLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *workoutLogRepo) ListByUser(ctx context.Context, userID string, start, end *time.Time) ([]model.WorkoutLog, error) {
	db := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if start != nil {
		db = db.Where("logged_at >= ?", *start)
	}
	if end != nil {
		db = db.Where("logged_at < ?", *end)
	}

	var logs []model.WorkoutLog
	if err := db.Order("logged_at DESC").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
