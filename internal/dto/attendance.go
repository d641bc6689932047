package dto

// ── 考勤模块 DTO ──

// 打卡结果状态：重复打卡是定义内的幂等结果，不是错误
const (
	MarkStatusCreated       = "created"
	MarkStatusAlreadyMarked = "already_marked"
)

// ScanAttendanceRequest 扫码打卡请求（扫码设备路径）
type ScanAttendanceRequest struct {
	QRToken string `json:"qr_token" binding:"required"`
	ClassID string `json:"class_id" binding:"required,uuid"`
}

// MarkAttendanceResponse 打卡响应
type MarkAttendanceResponse struct {
	Status    string `json:"status"` // created | already_marked
	UserName  string `json:"user_name"`
	ClassName string `json:"class_name"`
	Date      string `json:"date"` // "2026-09-01"
}

// ManualAttendanceEntry 手动点名单条记录
type ManualAttendanceEntry struct {
	UserID    string `json:"user_id" binding:"required,uuid"`
	IsPresent bool   `json:"is_present"`
}

// ManualAttendanceRequest 教练手动点名请求
// 与扫码路径不同，此路径允许显式把出勤置为 false
type ManualAttendanceRequest struct {
	ClassID string                  `json:"class_id" binding:"required,uuid"`
	Date    string                  `json:"date"     binding:"required"` // "2026-09-01"
	Entries []ManualAttendanceEntry `json:"entries"  binding:"required,min=1,dive"`
}

// ManualAttendanceResponse 手动点名响应
type ManualAttendanceResponse struct {
	UpdatedCount int `json:"updated_count"`
}

// RosterUserResponse 点名册中的学员条目
type RosterUserResponse struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}
