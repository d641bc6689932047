package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	School     SchoolRepository
	User       UserRepository
	Scanner    ScannerDeviceRepository
	Class      ClassRepository
	Enrollment EnrollmentRepository
	Attendance AttendanceRepository
	WorkoutLog WorkoutLogRepository

	db *gorm.DB
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		School:     NewSchoolRepo(db),
		User:       NewUserRepo(db),
		Scanner:    NewScannerDeviceRepo(db),
		Class:      NewClassRepo(db),
		Enrollment: NewEnrollmentRepo(db),
		Attendance: NewAttendanceRepo(db),
		WorkoutLog: NewWorkoutLogRepo(db),
		db:         db,
	}
}

// Transaction 在数据库事务中执行 fn，fn 内的数据访问走事务版聚合。
// 聚合不持有底层连接时（内存实现）退化为直接执行。
func (r *Repository) Transaction(ctx context.Context, fn func(txRepo *Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}
