package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/Riya-jhankda/FitDotDodge/internal/dto"
	"github.com/Riya-jhankda/FitDotDodge/internal/model"
	"github.com/Riya-jhankda/FitDotDodge/internal/repository"
)

// ── 统计模块业务错误 ──

var ErrDateRangeInvalid = errors.New("日期区间不合法")

// SummaryService 训练统计接口
//
// 所有时长统计先做区间合并再求和，时间上重叠或相接的课程不会被
// 重复计入；自然日分桶只依赖学校时区偏移，与主机时区无关。
type SummaryService interface {
	// WeeklySummary 本周（周一起）至今的训练汇总
	WeeklySummary(ctx context.Context, userID string) (*dto.WeeklySummaryResponse, error)
	// RangeSummary 指定闭区间 [start, end] 的训练统计，逐日补零
	RangeSummary(ctx context.Context, userID, startStr, endStr string) (*dto.RangeSummaryResponse, error)
}

type summaryService struct {
	repo   *repository.Repository
	scope  ScopeService
	logger *zap.Logger
	nowFn  func() time.Time
}

// NewSummaryService 创建 SummaryService 实例
func NewSummaryService(repo *repository.Repository, scope ScopeService, logger *zap.Logger) SummaryService {
	return &summaryService{repo: repo, scope: scope, logger: logger, nowFn: time.Now}
}

// ────────────────────── WeeklySummary ──────────────────────

func (s *summaryService) WeeklySummary(ctx context.Context, userID string) (*dto.WeeklySummaryResponse, error) {
	_, school, err := s.scope.ResolveMemberScope(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := civilDate(s.nowFn(), school.UTCOffsetMinutes)
	monday := weekStart(today)
	sunday := monday.AddDate(0, 0, 6)

	// 整周查询：教练可能已为本周靠后的日期点名
	records, err := s.repo.Attendance.ListByUserDateRange(ctx, userID, monday, sunday, true)
	if err != nil {
		return nil, err
	}

	intervals, err := s.classIntervals(ctx, records)
	if err != nil {
		return nil, err
	}

	// consistency 固定 7 格，索引 0 为周一；无出勤的天保持 0
	consistency := make([]int, 7)
	for _, rec := range records {
		idx := int(rec.Date.Sub(monday).Hours() / 24)
		if idx >= 0 && idx < 7 {
			consistency[idx] = 1
		}
	}
	daysAttended := 0
	for _, v := range consistency {
		daysAttended += v
	}

	// 本周训练日志条数：周一零点到周日结束的本地区间
	weekStartUTC, _ := dayBoundsUTC(monday, school.UTCOffsetMinutes)
	_, weekEndUTC := dayBoundsUTC(sunday, school.UTCOffsetMinutes)
	logs, err := s.repo.WorkoutLog.ListByUser(ctx, userID, &weekStartUTC, &weekEndUTC)
	if err != nil {
		return nil, err
	}

	return &dto.WeeklySummaryResponse{
		TotalHours:      totalHours(mergeIntervals(intervals)),
		ClassesAttended: len(records),
		DaysAttended:    daysAttended,
		WorkoutsLogged:  len(logs),
		Consistency:     consistency,
	}, nil
}

// ────────────────────── RangeSummary ──────────────────────

func (s *summaryService) RangeSummary(ctx context.Context, userID, startStr, endStr string) (*dto.RangeSummaryResponse, error) {
	_, school, err := s.scope.ResolveMemberScope(ctx, userID)
	if err != nil {
		return nil, err
	}

	start, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		return nil, ErrDateRangeInvalid
	}
	end, err := time.Parse("2006-01-02", endStr)
	if err != nil {
		return nil, ErrDateRangeInvalid
	}
	if end.Before(start) {
		return nil, ErrDateRangeInvalid
	}

	records, err := s.repo.Attendance.ListByUserDateRange(ctx, userID, start, end, true)
	if err != nil {
		return nil, err
	}

	// 课程时段按出勤日期分桶，再逐日合并
	dayIntervals := make(map[time.Time][]Interval)
	for _, rec := range records {
		class, err := s.repo.Class.GetByID(ctx, rec.ClassID)
		if err != nil {
			s.logger.Warn("出勤记录指向的课程不存在",
				zap.String("class_id", rec.ClassID))
			continue
		}
		day := rec.Date
		dayIntervals[day] = append(dayIntervals[day], Interval{Start: class.StartTime, End: class.EndTime})
	}

	daily := make([]dto.DailyHoursResponse, 0)
	var total float64
	for _, day := range datesInRange(start, end) {
		hours := totalHours(mergeIntervals(dayIntervals[day]))
		total += hours
		daily = append(daily, dto.DailyHoursResponse{
			Date:  day.Format("2006-01-02"),
			Hours: hours,
		})
	}

	rangeStart, _ := dayBoundsUTC(start, school.UTCOffsetMinutes)
	_, rangeEnd := dayBoundsUTC(end, school.UTCOffsetMinutes)
	logs, err := s.repo.WorkoutLog.ListByUser(ctx, userID, &rangeStart, &rangeEnd)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(logs, func(i, j int) bool { return logs[i].LoggedAt.After(logs[j].LoggedAt) })

	// 逐日日志条数：按学校本地自然日分桶，无日志的天补零
	countsByDay := make(map[time.Time]int)
	for i := range logs {
		countsByDay[civilDate(logs[i].LoggedAt, school.UTCOffsetMinutes)]++
	}
	dailyCounts := make([]dto.DailyCountResponse, 0)
	for _, day := range datesInRange(start, end) {
		dailyCounts = append(dailyCounts, dto.DailyCountResponse{
			Date:  day.Format("2006-01-02"),
			Count: countsByDay[day],
		})
	}

	localZone := time.FixedZone("", school.UTCOffsetMinutes*60)
	workouts := make([]dto.WorkoutLogResponse, 0, len(logs))
	for i := range logs {
		w := *toWorkoutLogResponse(&logs[i])
		w.LoggedAt = logs[i].LoggedAt.In(localZone).Format(time.RFC3339)
		workouts = append(workouts, w)
	}

	return &dto.RangeSummaryResponse{
		TotalHours:     round2(total),
		DailyHours:     daily,
		DailyCounts:    dailyCounts,
		Categories:     categoryVolumes(logs),
		TotalClasses:   len(records),
		RecentWorkouts: recentWorkoutDays(logs, school.UTCOffsetMinutes),
		Workouts:       workouts,
	}, nil
}

// recentWorkoutDays 最近 5 个训练日，按学校本地日期分组，组内为展示行。
// 入参须已按 logged_at 倒序。
func recentWorkoutDays(logs []model.WorkoutLog, utcOffsetMinutes int) []dto.RecentWorkoutDayResponse {
	recent := make([]dto.RecentWorkoutDayResponse, 0, 5)
	dayIdx := make(map[time.Time]int)
	for i := range logs {
		day := civilDate(logs[i].LoggedAt, utcOffsetMinutes)
		idx, seen := dayIdx[day]
		if !seen {
			if len(recent) == 5 {
				break
			}
			idx = len(recent)
			dayIdx[day] = idx
			recent = append(recent, dto.RecentWorkoutDayResponse{Date: day.Format("02 Jan 2006")})
		}
		recent[idx].Exercises = append(recent[idx].Exercises, exerciseLine(&logs[i]))
	}
	return recent
}

// exerciseLine 训练日志的展示行，如 "卧推 - 3×10 @ 60kg"
func exerciseLine(log *model.WorkoutLog) string {
	line := fmt.Sprintf("%s - %d×%d", log.ExerciseName, log.Sets, log.Reps)
	if log.WeightKg != nil && *log.WeightKg > 0 {
		line += " @ " + strconv.FormatFloat(*log.WeightKg, 'f', -1, 64) + "kg"
	}
	return line
}

// categoryVolumes 训练日志按类别聚合训练量（Σ 组数×次数）并计算占比。
// 总量为 0 时所有占比恒为 0，绝不除零。
func categoryVolumes(logs []model.WorkoutLog) []dto.CategoryVolumeResponse {
	volumes := make(map[string]int64)
	order := make([]string, 0)
	var total int64
	for _, log := range logs {
		if _, seen := volumes[log.Category]; !seen {
			order = append(order, log.Category)
		}
		v := int64(log.Sets) * int64(log.Reps)
		volumes[log.Category] += v
		total += v
	}

	out := make([]dto.CategoryVolumeResponse, 0, len(order))
	for _, cat := range order {
		pct := 0.0
		if total > 0 {
			pct = round1(float64(volumes[cat]) * 100 / float64(total))
		}
		out = append(out, dto.CategoryVolumeResponse{
			Category:   cat,
			Volume:     volumes[cat],
			Percentage: pct,
		})
	}
	return out
}

// classIntervals 把出勤记录展开为对应课程的起止时段
func (s *summaryService) classIntervals(ctx context.Context, records []model.Attendance) ([]Interval, error) {
	intervals := make([]Interval, 0, len(records))
	for _, rec := range records {
		class, err := s.repo.Class.GetByID(ctx, rec.ClassID)
		if err != nil {
			s.logger.Warn("出勤记录指向的课程不存在",
				zap.String("class_id", rec.ClassID))
			continue
		}
		intervals = append(intervals, Interval{Start: class.StartTime, End: class.EndTime})
	}
	return intervals, nil
}
