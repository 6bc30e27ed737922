package handler

import (
	"math"
	"net/http"

	"github.com/brightline5/shift-planner/backend/internal/domain"
	"github.com/brightline5/shift-planner/backend/internal/repository"
	"github.com/brightline5/shift-planner/backend/internal/scheduler"
)

// 估算人工成本节省时使用的效率提升比例
const laborSavingsRate = 0.12

type AnalyticsMetrics struct {
	ActiveStaff        int     `json:"activeStaff"`
	ScheduleEfficiency float64 `json:"scheduleEfficiency"`
	AvgShiftLength     float64 `json:"avgShiftLength"`
	LaborCostSavings   int     `json:"laborCostSavings"`
}

// GetAnalyticsMetrics 统计当天的排班概况
func (h *Handler) GetAnalyticsMetrics(w http.ResponseWriter, r *http.Request) {
	staff, err := h.repository.GetAllStaff(false)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	today := h.now().Format(domain.DateLayout)
	shifts, err := h.repository.GetShifts(repository.ShiftFilter{Date: today})
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取统计数据成功", h.analyticsMetrics(staff, shifts))
}

func (h *Handler) analyticsMetrics(staff []*domain.Staff, shifts []*domain.Shift) AnalyticsMetrics {
	totalHours := 0.0
	for _, shift := range shifts {
		totalHours += scheduler.ShiftHours(shift.StartTime, shift.EndTime)
	}

	avgShiftLength := 0.0
	if len(shifts) > 0 {
		avgShiftLength = math.Round(totalHours/float64(len(shifts))*10) / 10
	}

	// 没有员工时平均时薪为 0
	avgHourlyRate := 0.0
	if len(staff) > 0 {
		for _, s := range staff {
			avgHourlyRate += s.HourlyRate
		}
		avgHourlyRate /= float64(len(staff))
	}

	return AnalyticsMetrics{
		ActiveStaff:        len(staff),
		ScheduleEfficiency: h.scheduler.Efficiency(shifts, staff),
		AvgShiftLength:     avgShiftLength,
		LaborCostSavings:   int(math.Floor(totalHours * avgHourlyRate * laborSavingsRate)),
	}
}
