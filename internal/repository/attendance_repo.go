package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Riya-jhankda/FitDotDodge/internal/model"
)

// AttendanceRepository 考勤账本数据访问接口
// Date 一律为纯自然日（零点的 time.Time），时区换算在 Service 层完成。
// Create 依赖 (user_id, class_id, date) 唯一索引：并发竞争下落败方
// 会得到 gorm.ErrDuplicatedKey，由调用方按"已打卡"恢复。
type AttendanceRepository interface {
	Create(ctx context.Context, attendance *model.Attendance) error
	GetByKey(ctx context.Context, userID, classID string, date time.Time) (*model.Attendance, error)
	Update(ctx context.Context, attendance *model.Attendance) error
	ListByUserDateRange(ctx context.Context, userID string, start, end time.Time, onlyPresent bool) ([]model.Attendance, error)
	ListPresentByClassDate(ctx context.Context, classID string, date time.Time) ([]model.Attendance, error)
	ListByCoach(ctx context.Context, coachID string) ([]model.Attendance, error)
	CountPresentByUser(ctx context.Context, userID string) (int64, error)
}

// attendanceRepo AttendanceRepository 的 GORM 实现
type attendanceRepo struct {
	db *gorm.DB
}

// NewAttendanceRepo 创建 AttendanceRepository 实例
func NewAttendanceRepo(db *gorm.DB) AttendanceRepository {
	return &attendanceRepo{db: db}
}

func (r *attendanceRepo) Create(ctx context.Context, attendance *model.Attendance) error {
	return r.db.WithContext(ctx).Create(attendance).Error
}

func (r *attendanceRepo) GetByKey(ctx context.Context, userID, classID string, date time.Time) (*model.Attendance, error) {
	var attendance model.Attendance
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND class_id = ? AND date = ?", userID, classID, date).
		First(&attendance).Error
	if err != nil {
		return nil, err
	}
	return &attendance, nil
}

func (r *attendanceRepo) Update(ctx context.Context, attendance *model.Attendance) error {
	return r.db.WithContext(ctx).Save(attendance).Error
}

func (r *attendanceRepo) ListByUserDateRange(ctx context.Context, userID string, start, end time.Time, onlyPresent bool) ([]model.Attendance, error) {
	db := r.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end)
	if onlyPresent {
		db = db.Where("is_present = ?", true)
	}

	var attendances []model.Attendance
	if err := db.Order("date ASC").Find(&attendances).Error; err != nil {
		return nil, err
	}
	return attendances, nil
}

func (r *attendanceRepo) ListPresentByClassDate(ctx context.Context, classID string, date time.Time) ([]model.Attendance, error) {
	var attendances []model.Attendance
	err := r.db.WithContext(ctx).
		Where("class_id = ? AND date = ? AND is_present = ?", classID, date, true).
		Find(&attendances).Error
	if err != nil {
		return nil, err
	}
	return attendances, nil
}

func (r *attendanceRepo) ListByCoach(ctx context.Context, coachID string) ([]model.Attendance, error) {
	var attendances []model.Attendance
	err := r.db.WithContext(ctx).
		Joins("JOIN classes ON classes.class_id = attendances.class_id").
		Where("classes.coach_id = ?", coachID).
		Find(&attendances).Error
	if err != nil {
		return nil, err
	}
	return attendances, nil
}

func (r *attendanceRepo) CountPresentByUser(ctx context.Context, userID string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&model.Attendance{}).
		Where("user_id = ? AND is_present = ?", userID, true).
		Count(&total).Error
	return total, err
}
