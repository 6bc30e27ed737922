package scheduler

import (
	"fmt"
	"slices"
	"time"

	"github.com/brightline5/shift-planner/backend/internal/domain"
	"github.com/brightline5/shift-planner/backend/internal/metrics"
)

type Scheduler struct {
	constraints          Constraints
	optimizationDiscount float64
}

type Option func(*Scheduler)

// WithOptimizationDiscount 设置估算“优化后成本”时使用的折扣
func WithOptimizationDiscount(discount float64) Option {
	return func(s *Scheduler) {
		s.optimizationDiscount = discount
	}
}

func New(constraints Constraints, opts ...Option) *Scheduler {
	s := &Scheduler{
		constraints:          constraints,
		optimizationDiscount: DefaultOptimizationDiscount,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Scheduler) Constraints() Constraints {
	return s.constraints
}

// Generate 根据需求预测和员工名单生成排班
// 人手不足只会记录在 Violations 中，总是返回尽力而为的排班结果
func (s *Scheduler) Generate(staff []*domain.Staff, forecasts []*domain.DemandForecast) *Result {
	start := time.Now()
	defer func() {
		metrics.ScheduleDurationSeconds.Observe(time.Since(start).Seconds())
	}()

	result := &Result{
		Shifts:          make([]*domain.Shift, 0),
		Violations:      make([]string, 0),
		Recommendations: make([]string, 0),
	}

	dates, byDate := groupForecastsByDate(forecasts)
	for _, date := range dates {
		day := s.generateDay(date, byDate[date], staff)

		result.Shifts = append(result.Shifts, day.shifts...)
		result.Violations = append(result.Violations, day.violations...)
		result.Recommendations = append(result.Recommendations, day.recommendations...)
		result.TotalCost += day.totalCost
		result.OptimizedCost += day.optimizedCost
	}

	result.Efficiency = s.efficiency(result.Shifts, staff)
	result.CostSavings = result.TotalCost - result.OptimizedCost

	metrics.ShiftsGeneratedTotal.Add(float64(len(result.Shifts)))
	metrics.LastEfficiency.Set(result.Efficiency)

	return result
}

// 生成某一天的排班，时段按早、午、晚的顺序处理，岗位按比例表的顺序处理
func (s *Scheduler) generateDay(date string, forecasts map[domain.Timeslot]*domain.DemandForecast, staff []*domain.Staff) *dayResult {
	day := &dayResult{
		shifts:          make([]*domain.Shift, 0),
		violations:      make([]string, 0),
		recommendations: make([]string, 0),
	}

	for _, window := range slotWindows {
		forecast, exists := forecasts[window.slot]
		if !exists {
			continue
		}

		for _, need := range StaffingNeeds(forecast.PredictedDemand, window.slot) {
			// 按名单顺序取前 need.Count 个符合条件的员工
			assigned := make([]*domain.Staff, 0, need.Count)
			for _, member := range staff {
				if len(assigned) == need.Count {
					break
				}
				if member.Position == need.Position && member.IsActive && IsAvailable(member, date, window.start, window.end) {
					assigned = append(assigned, member)
				}
			}

			if len(assigned) < need.Count {
				day.violations = append(day.violations, fmt.Sprintf(
					"Insufficient %s staff for %s on %s: need %d, have %d",
					need.Position, window.slot, date, need.Count, len(assigned),
				))
				metrics.ViolationsTotal.WithLabelValues(need.Position, string(window.slot)).Inc()
			}

			hours := ShiftHours(window.start, window.end)
			for _, member := range assigned {
				day.shifts = append(day.shifts, &domain.Shift{
					StaffID:   member.ID,
					Date:      date,
					StartTime: window.start,
					EndTime:   window.end,
					Position:  member.Position,
					Status:    domain.ShiftStatusScheduled,
					Notes:     fmt.Sprintf("Auto-generated for %d predicted demand", forecast.PredictedDemand),
				})

				cost := hours * member.HourlyRate
				day.totalCost += cost
				day.optimizedCost += cost * (1 - s.optimizationDiscount)
			}
		}
	}

	return day
}

// Efficiency 计算一组班次的效率评分
func (s *Scheduler) Efficiency(shifts []*domain.Shift, staff []*domain.Staff) float64 {
	return s.efficiency(shifts, staff)
}

// Optimize 重新生成排班，并与现有排班的效率进行比较
func (s *Scheduler) Optimize(existing []*domain.Shift, staff []*domain.Staff, forecasts []*domain.DemandForecast) *Result {
	optimal := s.Generate(staff, forecasts)

	existingEfficiency := s.efficiency(existing, staff)
	improvement := optimal.Efficiency - existingEfficiency

	if improvement > 5 {
		optimal.Recommendations = append(optimal.Recommendations,
			fmt.Sprintf("Schedule can be improved by %.1f%% efficiency", improvement))
	}

	return optimal
}

// FindCoverage 找出能够顶替空缺班次的员工，时薪低的排在前面，时薪相同则保持名单顺序
func FindCoverage(missing domain.MissingShift, staff []*domain.Staff) []*domain.Staff {
	candidates := make([]*domain.Staff, 0)
	for _, member := range staff {
		if member.Position == missing.Position && member.IsActive && IsAvailable(member, missing.Date, missing.StartTime, missing.EndTime) {
			candidates = append(candidates, member)
		}
	}

	slices.SortStableFunc(candidates, func(a, b *domain.Staff) int {
		switch {
		case a.HourlyRate < b.HourlyRate:
			return -1
		case a.HourlyRate > b.HourlyRate:
			return 1
		}
		return 0
	})

	return candidates
}
