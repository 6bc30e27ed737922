package scheduler

import (
	"time"

	"github.com/brightline5/shift-planner/backend/internal/domain"
)

const clockLayout = "15:04"

// 计算时长时使用的参考日期
var referenceDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// ShiftHours 计算两个 HH:MM 之间的小时数，结束时间早于开始时间时视为跨夜
// 时间格式不合法时返回 0
func ShiftHours(start, end string) float64 {
	startClock, err := time.Parse(clockLayout, start)
	if err != nil {
		return 0
	}
	endClock, err := time.Parse(clockLayout, end)
	if err != nil {
		return 0
	}

	startTime := referenceDate.Add(time.Duration(startClock.Hour())*time.Hour + time.Duration(startClock.Minute())*time.Minute)
	endTime := referenceDate.Add(time.Duration(endClock.Hour())*time.Hour + time.Duration(endClock.Minute())*time.Minute)

	if endTime.Before(startTime) {
		endTime = endTime.AddDate(0, 0, 1)
	}

	return endTime.Sub(startTime).Hours()
}

// IsAvailable 检查员工在某天的 [start, end] 时间段内是否有空
// 没有填写空闲时间（Availability 为 nil）的员工视为随时有空
// HH:MM 的字符串比较与时间比较等价，因为所有时间都是相同的位数
func IsAvailable(s *domain.Staff, date, start, end string) bool {
	if s.Availability == nil {
		return true
	}

	day, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		return false
	}

	windows := s.Availability.WindowsOn(day)
	if len(windows) == 0 {
		return false
	}

	for _, w := range windows {
		if w.Available && w.Start <= start && w.End >= end {
			return true
		}
	}
	return false
}

// 按日期的首次出现顺序对预测分组，同一 (date, timeSlot) 后出现的预测覆盖先出现的
func groupForecastsByDate(forecasts []*domain.DemandForecast) ([]string, map[string]map[domain.Timeslot]*domain.DemandForecast) {
	dates := make([]string, 0)
	byDate := make(map[string]map[domain.Timeslot]*domain.DemandForecast)

	for _, f := range forecasts {
		if _, exists := byDate[f.Date]; !exists {
			byDate[f.Date] = make(map[domain.Timeslot]*domain.DemandForecast)
			dates = append(dates, f.Date)
		}
		byDate[f.Date][f.TimeSlot] = f
	}

	return dates, byDate
}
