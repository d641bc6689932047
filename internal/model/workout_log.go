package model

import "time"

// WorkoutLog 训练日志表 — 对应 workout_logs
// 仅追加，无唯一性约束；LoggedAt 存绝对时刻，分桶时再换算自然日
type WorkoutLog struct {
	WorkoutLogID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"workout_log_id"`
	UserID       string    `gorm:"type:uuid;not null;index:idx_workout_logs_user_logged" json:"user_id"`
	Category     string    `gorm:"type:varchar(50);not null"                      json:"category"`
	ExerciseName string    `gorm:"type:varchar(150);not null"                     json:"exercise_name"`
	Sets         int       `gorm:"not null;default:0"                             json:"sets"`
	Reps         int       `gorm:"not null;default:0"                             json:"reps"`
	WeightKg     *float64  `gorm:"column:weight_kg"                               json:"weight_kg,omitempty"`
	LoggedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;index:idx_workout_logs_user_logged" json:"logged_at"`
}

// TableName 指定表名
func (WorkoutLog) TableName() string { return "workout_logs" }
