package model

import "time"

// ClassEnrollment 选课关系表 — 对应 class_enrollments
// 每个 (user, class) 至多一行；退课通过状态软禁用，不做物理删除
type ClassEnrollment struct {
	EnrollmentID string       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"enrollment_id"`
	UserID       string       `gorm:"type:uuid;not null;uniqueIndex:uq_enrollments_user_class" json:"user_id"`
	ClassID      string       `gorm:"type:uuid;not null;uniqueIndex:uq_enrollments_user_class" json:"class_id"`
	Status       MemberStatus `gorm:"type:varchar(20);not null;default:'Active'"     json:"status"`
	EnrolledOn   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"enrolled_on"`
}

// TableName 指定表名
func (ClassEnrollment) TableName() string { return "class_enrollments" }
