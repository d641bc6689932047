package service

import (
	"math"
	"sort"
	"time"
)

// 聚合用的纯函数集合：区间合并、自然日换算、周起点、舍入。
// 自然日一律表示为 UTC 零点的 time.Time（只含年月日），
// 绝对时刻 → 自然日的换算只依赖显式传入的学校时区偏移。

// Interval 一段课程的起止时刻（绝对时刻）
type Interval struct {
	Start time.Time
	End   time.Time
}

// mergeIntervals 合并重叠或相接的区间
// 先按起点排序；next.Start <= cur.End 时并入当前区间（相接也算重叠），
// 否则封闭当前区间另起一段。并发上多节课的时长不会被重复计入。
func mergeIntervals(intervals []Interval) []Interval {
	if len(intervals) == 0 {
		return nil
	}

	sorted := make([]Interval, len(intervals))
	copy(sorted, intervals)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	merged := make([]Interval, 0, len(sorted))
	cur := sorted[0]

	for _, next := range sorted[1:] {
		if !next.Start.After(cur.End) {
			if next.End.After(cur.End) {
				cur.End = next.End
			}
			continue
		}
		merged = append(merged, cur)
		cur = next
	}
	merged = append(merged, cur)

	return merged
}

// totalHours 合并后区间的总时长（小时，保留两位小数）
func totalHours(merged []Interval) float64 {
	var hours float64
	for _, iv := range merged {
		hours += iv.End.Sub(iv.Start).Hours()
	}
	return round2(hours)
}

// civilDate 将绝对时刻换算为指定偏移下的自然日（UTC 零点表示）
func civilDate(t time.Time, utcOffsetMinutes int) time.Time {
	loc := time.FixedZone("", utcOffsetMinutes*60)
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// dayBoundsUTC 自然日在指定偏移下对应的 UTC 半开区间 [local 00:00, local 24:00)
func dayBoundsUTC(date time.Time, utcOffsetMinutes int) (time.Time, time.Time) {
	loc := time.FixedZone("", utcOffsetMinutes*60)
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	return start.UTC(), start.AddDate(0, 0, 1).UTC()
}

// weekStart 自然日所在周的周一
func weekStart(date time.Time) time.Time {
	diff := (int(date.Weekday()) + 6) % 7
	return date.AddDate(0, 0, -diff)
}

// datesInRange 闭区间 [start, end] 内的全部自然日，升序、无缺口
func datesInRange(start, end time.Time) []time.Time {
	if end.Before(start) {
		return nil
	}
	var dates []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

// round2 四舍五入到两位小数（远离零方向取半）
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// round1 四舍五入到一位小数（远离零方向取半）
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
