package model

import "time"

// ScannerDevice 扫码设备表 — 对应 scanner_devices
// 设备通过 API Key 认证，绑定到唯一一所学校
type ScannerDevice struct {
	ScannerID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"scanner_id"`
	Name      string    `gorm:"type:varchar(150)"                              json:"name"`
	APIKey    string    `gorm:"column:api_key;type:varchar(100);not null;uniqueIndex" json:"-"`
	SchoolID  string    `gorm:"type:uuid;not null"                             json:"school_id"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (ScannerDevice) TableName() string { return "scanner_devices" }
