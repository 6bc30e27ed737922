// Package seed 向数据库中插入演示用的员工、需求预测和默认排班模板
package seed

import (
	"log/slog"
	"time"

	"github.com/brightline5/shift-planner/backend/internal/domain"
	"github.com/brightline5/shift-planner/backend/internal/scheduler"
	"github.com/brightline5/shift-planner/backend/internal/utils"
)

type Store interface {
	CreateStaff(s *domain.Staff) error
	CreateDemandForecast(f *domain.DemandForecast) error
	CreateScheduleTemplate(st *domain.ScheduleTemplate) error
}

// 生成默认模板时每个时段使用的典型顾客数，周五和周六乘以 weekendFactor
var templateDemand = map[domain.Timeslot]int{
	domain.TimeslotMorning:   40,
	domain.TimeslotAfternoon: 55,
	domain.TimeslotEvening:   80,
}

const weekendFactor = 1.4

// SeedStaff 插入 n 名随机员工，返回成功插入的数量
// 邮箱冲突等单条失败只记录日志
func SeedStaff(s Store, n int, emailDomain string) int {
	cnt := 0
	for i := 0; i < n; i++ {
		member := utils.GenerateRandomStaff(emailDomain)
		if err := s.CreateStaff(member); err != nil {
			slog.Error("无法插入员工", slog.String("email", member.Email), slog.String("error", err.Error()))
			continue
		}
		cnt++
	}
	return cnt
}

// SeedDemandForecasts 插入从 start 开始 days 天的随机需求预测
func SeedDemandForecasts(s Store, start time.Time, days int, withActual bool) int {
	cnt := 0
	for _, f := range utils.GenerateRandomDemandForecasts(start, days, withActual) {
		if err := s.CreateDemandForecast(f); err != nil {
			slog.Error("无法插入需求预测", slog.String("date", f.Date), slog.String("error", err.Error()))
			continue
		}
		cnt++
	}
	return cnt
}

// DefaultTemplate 按典型客流和人手比例生成一周的排班模板
func DefaultTemplate() map[string]domain.DayTemplate {
	template := make(map[string]domain.DayTemplate, 7)

	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		factor := 1.0
		if wd == time.Friday || wd == time.Saturday {
			factor = weekendFactor
		}

		slot := func(ts domain.Timeslot) []domain.SlotStaffing {
			needs := scheduler.StaffingNeeds(int(float64(templateDemand[ts])*factor), ts)
			staffing := make([]domain.SlotStaffing, 0, len(needs))
			for _, need := range needs {
				staffing = append(staffing, domain.SlotStaffing{Position: need.Position, Count: int32(need.Count)})
			}
			return staffing
		}

		template[weekdayKey(wd)] = domain.DayTemplate{
			Morning:   slot(domain.TimeslotMorning),
			Afternoon: slot(domain.TimeslotAfternoon),
			Evening:   slot(domain.TimeslotEvening),
		}
	}

	return template
}

func SeedDefaultTemplate(s Store) (*domain.ScheduleTemplate, error) {
	st := &domain.ScheduleTemplate{
		Name:        "Standard week",
		Description: "Generated from typical demand and staffing ratios",
		Template:    DefaultTemplate(),
		IsDefault:   true,
	}
	if err := s.CreateScheduleTemplate(st); err != nil {
		return nil, err
	}
	return st, nil
}

func weekdayKey(wd time.Weekday) string {
	switch wd {
	case time.Monday:
		return "monday"
	case time.Tuesday:
		return "tuesday"
	case time.Wednesday:
		return "wednesday"
	case time.Thursday:
		return "thursday"
	case time.Friday:
		return "friday"
	case time.Saturday:
		return "saturday"
	}
	return "sunday"
}
