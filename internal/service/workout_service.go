package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Riya-jhankda/FitDotDodge/internal/dto"
	"github.com/Riya-jhankda/FitDotDodge/internal/model"
	"github.com/Riya-jhankda/FitDotDodge/internal/repository"
)

// WorkoutService 训练日志接口
// 日志只追加；类别分桶统计由 SummaryService 负责
type WorkoutService interface {
	Create(ctx context.Context, userID string, req *dto.CreateWorkoutLogRequest) (*dto.WorkoutLogResponse, error)
	List(ctx context.Context, userID string, req *dto.ListWorkoutLogsRequest) ([]dto.WorkoutLogResponse, error)
}

type workoutService struct {
	repo   *repository.Repository
	scope  ScopeService
	logger *zap.Logger
	nowFn  func() time.Time
}

// NewWorkoutService 创建 WorkoutService 实例
func NewWorkoutService(repo *repository.Repository, scope ScopeService, logger *zap.Logger) WorkoutService {
	return &workoutService{repo: repo, scope: scope, logger: logger, nowFn: time.Now}
}

// ────────────────────── Create ──────────────────────

func (s *workoutService) Create(ctx context.Context, userID string, req *dto.CreateWorkoutLogRequest) (*dto.WorkoutLogResponse, error) {
	if _, _, err := s.scope.ResolveMemberScope(ctx, userID); err != nil {
		return nil, err
	}

	log := &model.WorkoutLog{
		UserID:       userID,
		Category:     req.Category,
		ExerciseName: req.ExerciseName,
		Sets:         req.Sets,
		Reps:         req.Reps,
		WeightKg:     req.WeightKg,
		LoggedAt:     s.nowFn().UTC(),
	}
	if err := s.repo.WorkoutLog.Create(ctx, log); err != nil {
		s.logger.Error("写入训练日志失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	return toWorkoutLogResponse(log), nil
}

// ────────────────────── List ──────────────────────

func (s *workoutService) List(ctx context.Context, userID string, req *dto.ListWorkoutLogsRequest) ([]dto.WorkoutLogResponse, error) {
	_, school, err := s.scope.ResolveMemberScope(ctx, userID)
	if err != nil {
		return nil, err
	}

	var start, end *time.Time
	if req.StartDate != nil {
		d, err := time.Parse("2006-01-02", *req.StartDate)
		if err != nil {
			return nil, ErrDateRangeInvalid
		}
		s0, _ := dayBoundsUTC(d, school.UTCOffsetMinutes)
		start = &s0
	}
	if req.EndDate != nil {
		d, err := time.Parse("2006-01-02", *req.EndDate)
		if err != nil {
			return nil, ErrDateRangeInvalid
		}
		_, e0 := dayBoundsUTC(d, school.UTCOffsetMinutes)
		end = &e0
	}

	logs, err := s.repo.WorkoutLog.ListByUser(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	out := make([]dto.WorkoutLogResponse, 0, len(logs))
	for i := range logs {
		out = append(out, *toWorkoutLogResponse(&logs[i]))
	}
	return out, nil
}

// ── 映射 ──

func toWorkoutLogResponse(log *model.WorkoutLog) *dto.WorkoutLogResponse {
	return &dto.WorkoutLogResponse{
		WorkoutLogID: log.WorkoutLogID,
		Category:     log.Category,
		ExerciseName: log.ExerciseName,
		Sets:         log.Sets,
		Reps:         log.Reps,
		WeightKg:     log.WeightKg,
		LoggedAt:     log.LoggedAt.Format(time.RFC3339),
	}
}
