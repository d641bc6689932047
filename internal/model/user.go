package model

import "time"

// User 用户表 — 对应 users
// 学员、教练、管理员共用一张表，按 Role 区分
type User struct {
	UserID       string       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Name         string       `gorm:"type:varchar(100);not null"                     json:"name"`
	Email        string       `gorm:"type:varchar(255);not null"                     json:"email"`
	PasswordHash string       `gorm:"type:varchar(255);not null"                     json:"-"`
	Role         Role         `gorm:"type:varchar(20);not null;default:'member'"     json:"role"`
	Status       MemberStatus `gorm:"type:varchar(20);not null;default:'Active'"     json:"status"`
	SchoolID     string       `gorm:"type:uuid;not null"                             json:"school_id"`

	// 体测信息（可选）
	Gender    *string    `gorm:"type:varchar(20)"       json:"gender,omitempty"`
	HeightCm  *float64   `gorm:"column:height_cm"       json:"height_cm,omitempty"`
	WeightKg  *float64   `gorm:"column:weight_kg"       json:"weight_kg,omitempty"`
	WaistCm   *float64   `gorm:"column:waist_cm"        json:"waist_cm,omitempty"`
	HipCm     *float64   `gorm:"column:hip_cm"          json:"hip_cm,omitempty"`
	BirthDate *time.Time `gorm:"column:birth_date;type:date" json:"birth_date,omitempty"`

	// QRToken 首次申请时生成一次，此后不可变；为空表示尚未生成
	QRToken *string `gorm:"column:qr_token;type:varchar(100)" json:"qr_token,omitempty"`

	BaseModel
}

// TableName 指定表名
func (User) TableName() string { return "users" }
