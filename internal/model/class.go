package model

import "time"

// Class 课程表 — 对应 classes
// StartTime/EndTime 为绝对时刻；属于哪一天由学校时区偏移换算
type Class struct {
	ClassID   string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"class_id"`
	SchoolID  string    `gorm:"type:uuid;not null;index"                       json:"school_id"`
	CoachID   string    `gorm:"type:uuid;not null"                             json:"coach_id"`
	Name      string    `gorm:"type:varchar(150);not null"                     json:"name"`
	ClassType ClassType `gorm:"type:varchar(20);not null"                      json:"class_type"`
	StartTime time.Time `gorm:"not null"                                       json:"start_time"`
	EndTime   time.Time `gorm:"not null"                                       json:"end_time"`

	// 教练留言（整体覆盖更新）
	CoachNote     *string    `gorm:"type:text"             json:"coach_note,omitempty"`
	Info          *string    `gorm:"type:text"             json:"info,omitempty"`
	NoteUpdatedAt *time.Time `gorm:"column:note_updated_at" json:"note_updated_at,omitempty"`

	BaseModel
}

// TableName 指定表名
func (Class) TableName() string { return "classes" }
