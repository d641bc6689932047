package dto

// ── 用户模块 DTO ──

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}

// UpdateProfileRequest 更新个人资料，指针字段表示可选更新
type UpdateProfileRequest struct {
	Gender    *string  `json:"gender"     binding:"omitempty,oneof=male female other"`
	HeightCm  *float64 `json:"height_cm"  binding:"omitempty,gt=0"`
	WeightKg  *float64 `json:"weight_kg"  binding:"omitempty,gt=0"`
	WaistCm   *float64 `json:"waist_cm"   binding:"omitempty,gt=0"`
	HipCm     *float64 `json:"hip_cm"     binding:"omitempty,gt=0"`
	BirthDate *string  `json:"birth_date"` // "2006-01-02"
}

// UserResponse 用户基础信息
type UserResponse struct {
	UserID   string `json:"user_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Status   string `json:"status"`
	SchoolID string `json:"school_id"`
}

// ProfileResponse 个人资料，派生指标按需计算
type ProfileResponse struct {
	UserResponse
	Gender        *string  `json:"gender,omitempty"`
	HeightCm      *float64 `json:"height_cm,omitempty"`
	WeightKg      *float64 `json:"weight_kg,omitempty"`
	WaistCm       *float64 `json:"waist_cm,omitempty"`
	HipCm         *float64 `json:"hip_cm,omitempty"`
	BirthDate     *string  `json:"birth_date,omitempty"`
	BMI           *float64 `json:"bmi,omitempty"`             // 身高体重齐全时计算，两位小数
	WaistHipRatio *float64 `json:"waist_hip_ratio,omitempty"` // 腰臀齐全时计算，两位小数

	// 参与统计
	EnrolledClassCount   int64 `json:"enrolled_class_count"`
	ClassesAttendedTotal int64 `json:"classes_attended_total"`
}

// QRTokenResponse 二维码令牌（首次生成后不可变）
type QRTokenResponse struct {
	QRToken string `json:"qr_token"`
}
