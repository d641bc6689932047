package dto

// ── 课程模块 DTO ──

// CreateClassRequest 创建课程请求
type CreateClassRequest struct {
	Name      string `json:"name"       binding:"required,min=1,max=100"`
	ClassType string `json:"class_type" binding:"required,oneof=boxing zumba football muscle yoga cricket other"`
	StartTime string `json:"start_time" binding:"required"` // RFC3339
	EndTime   string `json:"end_time"   binding:"required"`
	Info      *string `json:"info"`
}

// UpdateClassRequest 更新课程请求，指针字段表示可选更新
type UpdateClassRequest struct {
	Name      *string `json:"name"       binding:"omitempty,min=1,max=100"`
	ClassType *string `json:"class_type" binding:"omitempty,oneof=boxing zumba football muscle yoga cricket other"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
	Info      *string `json:"info"`
}

// UpdateClassNoteRequest 教练课堂备注，传空串表示清除备注
type UpdateClassNoteRequest struct {
	Note string `json:"note"`
}

// ClassResponse 课程响应
type ClassResponse struct {
	ClassID       string  `json:"class_id"`
	Name          string  `json:"name"`
	ClassType     string  `json:"class_type"`
	CoachID       string  `json:"coach_id"`
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time"`
	Info          *string `json:"info,omitempty"`
	CoachNote     *string `json:"coach_note,omitempty"`
	NoteUpdatedAt *string `json:"note_updated_at,omitempty"`
}

// ClassListResponse 课程列表按时段分组：今日、将来、已结束
type ClassListResponse struct {
	Today    []ClassResponse `json:"today"`
	Upcoming []ClassResponse `json:"upcoming"`
	Past     []ClassResponse `json:"past"`
}

// AddMemberToClassRequest 将学员加入课程（幂等）
type AddMemberToClassRequest struct {
	Name     string `json:"name"     binding:"required,min=1,max=100"`
	Email    string `json:"email"    binding:"required,email"`
	ClassID  string `json:"class_id" binding:"required,uuid"`
}

// AddMemberToClassResponse 加入课程响应
type AddMemberToClassResponse struct {
	UserID       string `json:"user_id"`
	AlreadyExist bool   `json:"already_exist"` // 学员已存在（按姓名在校内去重）
	Enrolled     bool   `json:"enrolled"`      // false 表示此前已在班
}

// CoachProfileResponse 教练主页概览
type CoachProfileResponse struct {
	CoachID        string  `json:"coach_id"`
	Name           string  `json:"name"`
	ClassCount     int64   `json:"class_count"`
	StudentCount   int64   `json:"student_count"`   // 去重后的学员数
	AttendanceRate float64 `json:"attendance_rate"` // 名下课程实到占比（%），一位小数
}
