package dto

// ── 统计汇总模块 DTO ──

// WeeklySummaryResponse 近 7 天训练汇总
// 周一为一周起点：consistency 向量固定 7 个元素，索引 0 为周一
type WeeklySummaryResponse struct {
	TotalHours      float64 `json:"total_hours"`
	ClassesAttended int     `json:"classes_attended"`
	DaysAttended    int     `json:"days_attended"`      // 去重后的出勤天数
	WorkoutsLogged  int     `json:"workouts_logged"`    // 本周训练日志条数
	Consistency     []int   `json:"weekly_consistency"` // 长度 7，元素为 0/1
}

// RangeSummaryRequest 区间统计查询参数
type RangeSummaryRequest struct {
	StartDate string `form:"start_date" binding:"required"` // "2026-09-01"
	EndDate   string `form:"end_date"   binding:"required"`
}

// DailyHoursResponse 单日训练时长（区间内每天一条，无训练则为 0）
type DailyHoursResponse struct {
	Date  string  `json:"date"`
	Hours float64 `json:"hours"`
}

// DailyCountResponse 单日训练日志条数（区间内每天一条，无日志则为 0）
type DailyCountResponse struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// RecentWorkoutDayResponse 最近训练日：按学校本地日期分组的动作清单
type RecentWorkoutDayResponse struct {
	Date      string   `json:"date"`      // "02 Mar 2026"
	Exercises []string `json:"exercises"` // "卧推 - 3×10 @ 60kg"
}

// CategoryVolumeResponse 按课程类别的训练量占比
type CategoryVolumeResponse struct {
	Category   string  `json:"category"`
	Volume     int64   `json:"volume"`     // Σ(组数×次数)
	Percentage float64 `json:"percentage"` // 一位小数，总量为 0 时恒为 0
}

// RangeSummaryResponse 区间统计响应
type RangeSummaryResponse struct {
	TotalHours     float64                    `json:"total_hours"`
	DailyHours     []DailyHoursResponse       `json:"daily_hours"`
	DailyCounts    []DailyCountResponse       `json:"daily_counts"` // 逐日日志条数，补零
	Categories     []CategoryVolumeResponse   `json:"categories"`
	TotalClasses   int                        `json:"total_classes"`
	RecentWorkouts []RecentWorkoutDayResponse `json:"recent_workouts"` // 最近 5 个训练日
	Workouts       []WorkoutLogResponse       `json:"workouts"`        // 区间内原始日志，时间按学校本地时区
}
