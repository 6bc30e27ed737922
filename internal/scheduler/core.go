package scheduler

import (
	"math"

	"github.com/brightline5/shift-planner/backend/internal/domain"
)

type positionRatio struct {
	position string
	ratio    float64
}

// 每位顾客所需各岗位人数的比例
var staffingRatios = map[domain.Timeslot][]positionRatio{
	domain.TimeslotMorning: {
		{position: "Server", ratio: 0.15},
		{position: "Line Cook", ratio: 0.08},
		{position: "Host", ratio: 0.05},
	},
	domain.TimeslotAfternoon: {
		{position: "Server", ratio: 0.18},
		{position: "Line Cook", ratio: 0.10},
		{position: "Host", ratio: 0.06},
	},
	domain.TimeslotEvening: {
		{position: "Server", ratio: 0.22},
		{position: "Line Cook", ratio: 0.12},
		{position: "Host", ratio: 0.08},
	},
}

// StaffingNeeds 根据预测顾客数计算某个时段各岗位需要的人数
// 每个岗位至少 1 人，晚班无论需求多少都额外需要 1 名经理
func StaffingNeeds(demand int, slot domain.Timeslot) Needs {
	ratios := staffingRatios[slot]
	needs := make(Needs, 0, len(ratios)+1)

	for _, r := range ratios {
		count := int(math.Ceil(float64(demand) * r.ratio))
		needs = append(needs, PositionNeed{
			Position: r.position,
			Count:    max(1, count),
		})
	}

	if slot == domain.TimeslotEvening {
		needs = append(needs, PositionNeed{Position: "Manager", Count: 1})
	}

	return needs
}

/**
 * 效率评分 = 100 - 利用率惩罚 - 加班惩罚 - 人手不足惩罚，结果限制在 [0, 100]
 * 其中:
 * 		1. 利用率 = 排班总时长 / (员工数 * 40)，低于 0.7 时扣 (0.7 - 利用率) * 50
 * 		2. 每个总时长超过加班阈值的员工扣 5 分
 * 		3. 每个 (date, startTime) 分组的人数低于最低人数时扣 10 分
 */
func (s *Scheduler) efficiency(shifts []*domain.Shift, staff []*domain.Staff) float64 {
	if len(shifts) == 0 {
		return 0
	}

	score := 100.0

	utilization := staffUtilization(shifts, staff)
	if utilization < 0.7 {
		score -= (0.7 - utilization) * 50
	}

	score -= float64(s.countOvertimeStaff(shifts)) * 5
	score -= float64(s.countUnderstaffedShifts(shifts)) * 10

	return math.Max(0, math.Min(100, score))
}

// 员工数为 0 时利用率视为 0
func staffUtilization(shifts []*domain.Shift, staff []*domain.Staff) float64 {
	if len(staff) == 0 {
		return 0
	}

	totalAvailableHours := float64(len(staff)) * 40
	totalScheduledHours := 0.0
	for _, shift := range shifts {
		totalScheduledHours += ShiftHours(shift.StartTime, shift.EndTime)
	}

	return totalScheduledHours / totalAvailableHours
}

func (s *Scheduler) countOvertimeStaff(shifts []*domain.Shift) int {
	staffHours := make(map[string]float64)
	for _, shift := range shifts {
		staffHours[shift.StaffID] += ShiftHours(shift.StartTime, shift.EndTime)
	}

	cnt := 0
	for _, hours := range staffHours {
		if hours > float64(s.constraints.OvertimeThreshold) {
			cnt++
		}
	}
	return cnt
}

func (s *Scheduler) countUnderstaffedShifts(shifts []*domain.Shift) int {
	headcount := make(map[string]int) // "date-startTime" -> 人数
	for _, shift := range shifts {
		headcount[shift.Date+"-"+shift.StartTime]++
	}

	cnt := 0
	for _, n := range headcount {
		if n < s.constraints.MinStaffPerShift {
			cnt++
		}
	}
	return cnt
}
