package scheduler_test

import (
	"testing"

	"github.com/brightline5/shift-planner/backend/internal/domain"
	"github.com/brightline5/shift-planner/backend/internal/scheduler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2024-01-01 是星期一
const monday = "2024-01-01"

func forecast(date string, slot domain.Timeslot, demand int) *domain.DemandForecast {
	return &domain.DemandForecast{
		Date:                   date,
		TimeSlot:               slot,
		PredictedDemand:        demand,
		StaffingRecommendation: domain.StaffingFor(demand),
		Confidence:             85,
	}
}

func TestStaffingNeeds(t *testing.T) {
	for _, slot := range domain.Timeslots {
		for _, demand := range []int{1, 7, 15, 65, 150, 400} {
			needs := scheduler.StaffingNeeds(demand, slot)

			for _, need := range needs {
				assert.GreaterOrEqual(t, need.Count, 1, "slot=%s demand=%d position=%s", slot, demand, need.Position)
			}

			if slot == domain.TimeslotEvening {
				assert.Equal(t, 1, needs.Count("Manager"))
			} else {
				assert.NotContains(t, needs.Map(), "Manager")
			}
		}
	}

	tests := map[string]struct {
		demand   int
		slot     domain.Timeslot
		expected scheduler.Needs
	}{
		"Morning_65": {
			demand: 65,
			slot:   domain.TimeslotMorning,
			// 65*0.15=9.75, 65*0.08=5.2, 65*0.05=3.25
			expected: scheduler.Needs{{"Server", 10}, {"Line Cook", 6}, {"Host", 4}},
		},
		"Afternoon_100": {
			demand:   100,
			slot:     domain.TimeslotAfternoon,
			expected: scheduler.Needs{{"Server", 18}, {"Line Cook", 10}, {"Host", 6}},
		},
		"Evening_50": {
			demand: 50,
			slot:   domain.TimeslotEvening,
			// 50*0.22=11, 50*0.12=6, 50*0.08=4
			expected: scheduler.Needs{{"Server", 11}, {"Line Cook", 6}, {"Host", 4}, {"Manager", 1}},
		},
		"ZeroDemand_FloorsAtOne": {
			demand:   0,
			slot:     domain.TimeslotMorning,
			expected: scheduler.Needs{{"Server", 1}, {"Line Cook", 1}, {"Host", 1}},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.expected, scheduler.StaffingNeeds(tc.demand, tc.slot))
		})
	}
}

func TestShiftHours(t *testing.T) {
	tests := map[string]struct {
		start, end string
		expected   float64
	}{
		"DayShift":       {"09:00", "17:00", 8},
		"Overnight":      {"22:00", "02:00", 4},
		"EveningSlot":    {"21:00", "02:00", 5},
		"HalfHour":       {"09:30", "12:00", 2.5},
		"SameTime":       {"10:00", "10:00", 0},
		"InvalidStart":   {"9am", "17:00", 0},
		"InvalidEnd":     {"09:00", "25:00", 0},
		"MidnightToNoon": {"00:00", "12:00", 12},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, scheduler.ShiftHours(tc.start, tc.end), 1e-9)
		})
	}
}

func TestIsAvailable(t *testing.T) {
	tests := map[string]struct {
		availability domain.Availability
		date         string
		expected     bool
	}{
		"NoAvailabilityMap": {
			availability: nil,
			date:         monday,
			expected:     true,
		},
		"EmptyListForWeekday": {
			availability: domain.Availability{"monday": {}},
			date:         monday,
			expected:     false,
		},
		"WeekdayMissing": {
			availability: domain.Availability{"tuesday": {{Start: "08:00", End: "16:00", Available: true}}},
			date:         monday,
			expected:     false,
		},
		"WindowContainsShift": {
			availability: domain.Availability{"monday": {{Start: "08:00", End: "16:00", Available: true}}},
			date:         monday,
			expected:     true,
		},
		"WindowExactBounds": {
			availability: domain.Availability{"monday": {{Start: "09:00", End: "15:00", Available: true}}},
			date:         monday,
			expected:     true,
		},
		"WindowTooShort": {
			availability: domain.Availability{"monday": {{Start: "10:00", End: "15:00", Available: true}}},
			date:         monday,
			expected:     false,
		},
		"WindowMarkedUnavailable": {
			availability: domain.Availability{"monday": {{Start: "08:00", End: "16:00", Available: false}}},
			date:         monday,
			expected:     false,
		},
		"SecondWindowMatches": {
			availability: domain.Availability{"monday": {
				{Start: "06:00", End: "08:00", Available: true},
				{Start: "09:00", End: "18:00", Available: true},
			}},
			date:     monday,
			expected: true,
		},
		"InvalidDate": {
			availability: domain.Availability{"monday": {{Start: "08:00", End: "16:00", Available: true}}},
			date:         "not-a-date",
			expected:     false,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			s := &domain.Staff{Availability: tc.availability, IsActive: true}
			assert.Equal(t, tc.expected, scheduler.IsAvailable(s, tc.date, "09:00", "15:00"))
		})
	}
}

func TestGenerate_SingleServer(t *testing.T) {
	s := scheduler.New(scheduler.DefaultConstraints())
	staff := []*domain.Staff{
		{ID: "s1", Name: "Emma", Position: "Server", HourlyRate: 15, IsActive: true},
	}

	result := s.Generate(staff, []*domain.DemandForecast{forecast(monday, domain.TimeslotMorning, 65)})

	require.Len(t, result.Shifts, 1)
	shift := result.Shifts[0]
	assert.Equal(t, "s1", shift.StaffID)
	assert.Equal(t, monday, shift.Date)
	assert.Equal(t, "09:00", shift.StartTime)
	assert.Equal(t, "15:00", shift.EndTime)
	assert.Equal(t, "Server", shift.Position)
	assert.Equal(t, domain.ShiftStatusScheduled, shift.Status)
	assert.Equal(t, "Auto-generated for 65 predicted demand", shift.Notes)

	assert.InDelta(t, 90, result.TotalCost, 1e-9)
	assert.InDelta(t, 85.5, result.OptimizedCost, 1e-9)
	assert.InDelta(t, 4.5, result.CostSavings, 1e-9)

	assert.Equal(t, []string{
		"Insufficient Server staff for morning on 2024-01-01: need 10, have 1",
		"Insufficient Line Cook staff for morning on 2024-01-01: need 6, have 0",
		"Insufficient Host staff for morning on 2024-01-01: need 4, have 0",
	}, result.Violations)

	// 利用率 6/40 = 0.15 扣 27.5 分，09:00 分组只有 1 人扣 10 分
	assert.InDelta(t, 62.5, result.Efficiency, 1e-9)
}

func TestGenerate_SkipsInactiveAndUnavailableStaff(t *testing.T) {
	s := scheduler.New(scheduler.DefaultConstraints())
	staff := []*domain.Staff{
		{ID: "inactive", Position: "Server", HourlyRate: 10, IsActive: false},
		{ID: "busy", Position: "Server", HourlyRate: 10, IsActive: true, Availability: domain.Availability{
			"monday": {{Start: "09:00", End: "12:00", Available: true}},
		}},
		{ID: "off", Position: "Server", HourlyRate: 10, IsActive: true, Availability: domain.Availability{}},
		{ID: "ok", Position: "Server", HourlyRate: 10, IsActive: true, Availability: domain.Availability{
			"monday": {{Start: "08:00", End: "16:00", Available: true}},
		}},
	}

	result := s.Generate(staff, []*domain.DemandForecast{forecast(monday, domain.TimeslotMorning, 100)})

	require.Len(t, result.Shifts, 1)
	assert.Equal(t, "ok", result.Shifts[0].StaffID)
}

func TestGenerate_RosterOrderAndLimit(t *testing.T) {
	s := scheduler.New(scheduler.DefaultConstraints())
	staff := []*domain.Staff{
		{ID: "h1", Position: "Host", HourlyRate: 12, IsActive: true},
		{ID: "h2", Position: "Host", HourlyRate: 11, IsActive: true},
		{ID: "h3", Position: "Host", HourlyRate: 10, IsActive: true},
	}

	// 早班 10 位顾客只需要 1 名 Host
	result := s.Generate(staff, []*domain.DemandForecast{forecast(monday, domain.TimeslotMorning, 10)})

	hosts := make([]string, 0)
	for _, shift := range result.Shifts {
		if shift.Position == "Host" {
			hosts = append(hosts, shift.StaffID)
		}
	}
	assert.Equal(t, []string{"h1"}, hosts)
}

func TestGenerate_DayOrderAndSlotOrder(t *testing.T) {
	s := scheduler.New(scheduler.DefaultConstraints())
	staff := []*domain.Staff{
		{ID: "m", Position: "Manager", HourlyRate: 25, IsActive: true},
		{ID: "h", Position: "Host", HourlyRate: 12, IsActive: true},
	}

	forecasts := []*domain.DemandForecast{
		forecast("2024-01-03", domain.TimeslotEvening, 10),
		forecast("2024-01-02", domain.TimeslotEvening, 10),
		forecast("2024-01-03", domain.TimeslotMorning, 10),
		// 同一 (date, timeSlot) 后出现的覆盖先出现的
		forecast("2024-01-03", domain.TimeslotMorning, 12),
	}

	result := s.Generate(staff, forecasts)

	type key struct{ date, start, staffID, notes string }
	got := make([]key, 0, len(result.Shifts))
	for _, shift := range result.Shifts {
		got = append(got, key{shift.Date, shift.StartTime, shift.StaffID, shift.Notes})
	}

	assert.Equal(t, []key{
		{"2024-01-03", "09:00", "h", "Auto-generated for 12 predicted demand"},
		{"2024-01-03", "21:00", "h", "Auto-generated for 10 predicted demand"},
		{"2024-01-03", "21:00", "m", "Auto-generated for 10 predicted demand"},
		{"2024-01-02", "21:00", "h", "Auto-generated for 10 predicted demand"},
		{"2024-01-02", "21:00", "m", "Auto-generated for 10 predicted demand"},
	}, got)
}

func TestGenerate_EveningCostUsesOvernightHours(t *testing.T) {
	s := scheduler.New(scheduler.DefaultConstraints(), scheduler.WithOptimizationDiscount(0.1))
	staff := []*domain.Staff{
		{ID: "m", Position: "Manager", HourlyRate: 20, IsActive: true},
	}

	result := s.Generate(staff, []*domain.DemandForecast{forecast(monday, domain.TimeslotEvening, 30)})

	require.Len(t, result.Shifts, 1)
	assert.InDelta(t, 100, result.TotalCost, 1e-9)
	assert.InDelta(t, 90, result.OptimizedCost, 1e-9)
	assert.InDelta(t, 10, result.CostSavings, 1e-9)
}

func TestGenerate_EmptyInput(t *testing.T) {
	s := scheduler.New(scheduler.DefaultConstraints())

	result := s.Generate(nil, nil)

	assert.Empty(t, result.Shifts)
	assert.Empty(t, result.Violations)
	assert.Zero(t, result.Efficiency)
	assert.Zero(t, result.CostSavings)
}

func TestEfficiency_ClampedToRange(t *testing.T) {
	constraints := scheduler.DefaultConstraints()
	constraints.OvertimeThreshold = 1
	constraints.MinStaffPerShift = 100
	s := scheduler.New(constraints)

	staff := make([]*domain.Staff, 0)
	shifts := make([]*domain.Shift, 0)
	for i := 0; i < 20; i++ {
		id := string(rune('a' + i))
		staff = append(staff, &domain.Staff{ID: id})
		shifts = append(shifts, &domain.Shift{StaffID: id, Date: monday, StartTime: "09:00", EndTime: "10:00"})
		shifts = append(shifts, &domain.Shift{StaffID: id, Date: "2024-01-02", StartTime: "09:00", EndTime: "10:00"})
	}
	assert.Equal(t, 0.0, s.Efficiency(shifts, staff))

	// 利用率超过 1 也不会超过 100 分
	relaxed := scheduler.New(scheduler.Constraints{MinStaffPerShift: 1, OvertimeThreshold: 1000})
	busy := []*domain.Shift{
		{StaffID: "a", Date: monday, StartTime: "00:00", EndTime: "23:00"},
		{StaffID: "a", Date: "2024-01-02", StartTime: "00:00", EndTime: "23:00"},
	}
	assert.Equal(t, 100.0, relaxed.Efficiency(busy, []*domain.Staff{{ID: "a"}}))

	// 没有员工时利用率按 0 计算
	assert.InDelta(t, 65, relaxed.Efficiency(busy, nil), 1e-9)
}

func TestEfficiency_OvertimePenalty(t *testing.T) {
	s := scheduler.New(scheduler.Constraints{MinStaffPerShift: 1, OvertimeThreshold: 10})
	staff := []*domain.Staff{{ID: "a"}}
	shifts := []*domain.Shift{
		{StaffID: "a", Date: monday, StartTime: "09:00", EndTime: "15:00"},
		{StaffID: "a", Date: "2024-01-02", StartTime: "09:00", EndTime: "15:00"},
		{StaffID: "a", Date: "2024-01-03", StartTime: "09:00", EndTime: "15:00"},
		{StaffID: "a", Date: "2024-01-04", StartTime: "09:00", EndTime: "15:00"},
		{StaffID: "a", Date: "2024-01-05", StartTime: "09:00", EndTime: "15:00"},
	}

	// 30 小时 / 40 = 0.75 不扣利用率分，超过 10 小时扣 5 分
	assert.InDelta(t, 95, s.Efficiency(shifts, staff), 1e-9)
}

func TestOptimize(t *testing.T) {
	s := scheduler.New(scheduler.DefaultConstraints())
	staff := []*domain.Staff{
		{ID: "s1", Position: "Server", HourlyRate: 15, IsActive: true},
	}
	forecasts := []*domain.DemandForecast{forecast(monday, domain.TimeslotMorning, 65)}

	t.Run("ImprovementNoted", func(t *testing.T) {
		result := s.Optimize(nil, staff, forecasts)
		assert.Equal(t, []string{"Schedule can be improved by 62.5% efficiency"}, result.Recommendations)
	})

	t.Run("NoNoteWhenExistingIsAsGood", func(t *testing.T) {
		existing := []*domain.Shift{
			{StaffID: "s1", Date: monday, StartTime: "09:00", EndTime: "15:00"},
		}
		result := s.Optimize(existing, staff, forecasts)
		assert.Empty(t, result.Recommendations)
		assert.Len(t, result.Shifts, 1)
	})
}

func TestFindCoverage(t *testing.T) {
	staff := []*domain.Staff{
		{ID: "a", Position: "Server", HourlyRate: 18, IsActive: true},
		{ID: "b", Position: "Server", HourlyRate: 15, IsActive: true},
		{ID: "c", Position: "Line Cook", HourlyRate: 10, IsActive: true},
		{ID: "d", Position: "Server", HourlyRate: 15, IsActive: true},
		{ID: "e", Position: "Server", HourlyRate: 12, IsActive: false},
		{ID: "f", Position: "Server", HourlyRate: 11, IsActive: true, Availability: domain.Availability{}},
		{ID: "g", Position: "Server", HourlyRate: 16, IsActive: true},
	}

	result := scheduler.FindCoverage(domain.MissingShift{
		Date:      monday,
		StartTime: "15:00",
		EndTime:   "21:00",
		Position:  "Server",
	}, staff)

	ids := make([]string, 0, len(result))
	for _, s := range result {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"b", "d", "g", "a"}, ids)
}
