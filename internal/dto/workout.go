package dto

// ── 训练记录模块 DTO ──

// CreateWorkoutLogRequest 新增训练记录（只追加，不修改）
type CreateWorkoutLogRequest struct {
	Category     string   `json:"category"      binding:"required,min=1,max=50"`
	ExerciseName string   `json:"exercise_name" binding:"required,min=1,max=150"`
	Sets         int      `json:"sets"          binding:"required,gt=0"`
	Reps         int      `json:"reps"          binding:"required,gt=0"`
	WeightKg     *float64 `json:"weight_kg"     binding:"omitempty,gte=0"`
}

// WorkoutLogResponse 训练记录响应
type WorkoutLogResponse struct {
	WorkoutLogID string   `json:"workout_log_id"`
	Category     string   `json:"category"`
	ExerciseName string   `json:"exercise_name"`
	Sets         int      `json:"sets"`
	Reps         int      `json:"reps"`
	WeightKg     *float64 `json:"weight_kg,omitempty"`
	LoggedAt     string   `json:"logged_at"`
}

// ListWorkoutLogsRequest 训练记录查询参数
type ListWorkoutLogsRequest struct {
	StartDate *string `form:"start_date"`
	EndDate   *string `form:"end_date"`
}
