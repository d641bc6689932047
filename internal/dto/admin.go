package dto

// ── 管理模块 DTO ──

// PaginationRequest 通用分页参数
type PaginationRequest struct {
	Page     int `form:"page"      binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// GetPage 获取页码（含默认值）
func (p *PaginationRequest) GetPage() int {
	if p.Page <= 0 {
		return 1
	}
	return p.Page
}

// GetPageSize 获取每页数量（含默认值）
func (p *PaginationRequest) GetPageSize() int {
	if p.PageSize <= 0 {
		return 20
	}
	return p.PageSize
}

// GetOffset 计算偏移量
func (p *PaginationRequest) GetOffset() int {
	return (p.GetPage() - 1) * p.GetPageSize()
}

// ListUsersRequest 按角色查询本校用户
type ListUsersRequest struct {
	PaginationRequest
	Role   string `form:"role"   binding:"required,oneof=member coach admin owner"`
	Search string `form:"search" binding:"omitempty,max=100"`
}

// SchoolStatsResponse 本校规模统计
type SchoolStatsResponse struct {
	MemberCount  int64 `json:"member_count"`
	CoachCount   int64 `json:"coach_count"`
	ClassCount   int64 `json:"class_count"`
	ScannerCount int64 `json:"scanner_count"`
}

// ScannerDeviceResponse 扫码设备信息（不回传 API Key）
type ScannerDeviceResponse struct {
	ScannerID string `json:"scanner_id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

// RegisterScannerRequest 登记扫码设备
type RegisterScannerRequest struct {
	Name string `json:"name" binding:"required,max=150"`
}

// RegisterScannerResponse API Key 仅在登记时返回一次
type RegisterScannerResponse struct {
	ScannerID string `json:"scanner_id"`
	Name      string `json:"name"`
	APIKey    string `json:"api_key"`
}

// CreateSchoolRequest 开通学校
type CreateSchoolRequest struct {
	Name string `json:"name" binding:"required,max=150"`
	// UTCOffsetMinutes 本地时区相对 UTC 的偏移（分钟），不传时采用默认值 330
	UTCOffsetMinutes int `json:"utc_offset_minutes" binding:"min=-720,max=840"`
}

// SchoolResponse 学校信息
type SchoolResponse struct {
	SchoolID         string `json:"school_id"`
	Name             string `json:"name"`
	UTCOffsetMinutes int    `json:"utc_offset_minutes"`
}
