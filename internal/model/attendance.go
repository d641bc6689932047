package model

import "time"

// Attendance 考勤账本 — 对应 attendances
// 核心唯一性约束：每 (user, class, date) 恰好一条记录；
// 重复打卡只会命中已有行，绝不产生第二条
type Attendance struct {
	AttendanceID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"attendance_id"`
	UserID       string    `gorm:"type:uuid;not null;uniqueIndex:uq_attendances_user_class_date" json:"user_id"`
	ClassID      string    `gorm:"type:uuid;not null;uniqueIndex:uq_attendances_user_class_date" json:"class_id"`
	Date         time.Time `gorm:"type:date;not null;uniqueIndex:uq_attendances_user_class_date" json:"date"`
	IsPresent    bool      `gorm:"not null;default:false"                         json:"is_present"`
	BaseModel
}

// TableName 指定表名
func (Attendance) TableName() string { return "attendances" }
