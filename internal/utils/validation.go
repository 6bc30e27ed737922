package utils

import (
	"fmt"
	"slices"
	"time"

	"github.com/brightline5/shift-planner/backend/internal/domain"
)

const clockLayout = "15:04"

var weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

func validateClock(value string) error {
	if len(value) != len(clockLayout) {
		return fmt.Errorf("时间 %q 必须为 HH:MM 格式", value)
	}
	if _, err := time.Parse(clockLayout, value); err != nil {
		return fmt.Errorf("时间 %q 必须为 HH:MM 格式", value)
	}
	return nil
}

// ValidateAvailability 检查空闲时间的 key 是否为星期名，时间是否为 HH:MM
// 结束时间早于开始时间表示跨夜，不视为错误
func ValidateAvailability(a domain.Availability) error {
	for day, windows := range a {
		if !slices.Contains(weekdays, day) {
			return fmt.Errorf("无效的星期 %q", day)
		}
		for i, w := range windows {
			if err := validateClock(w.Start); err != nil {
				return fmt.Errorf("%s 第 %d 个时间段：%w", day, i+1, err)
			}
			if err := validateClock(w.End); err != nil {
				return fmt.Errorf("%s 第 %d 个时间段：%w", day, i+1, err)
			}
		}
	}
	return nil
}

// ValidateScheduleTemplate 检查模板的 key 是否为星期名，每个岗位的人数是否为正数
func ValidateScheduleTemplate(template map[string]domain.DayTemplate) error {
	if len(template) == 0 {
		return fmt.Errorf("模板不能为空")
	}

	for day, dt := range template {
		if !slices.Contains(weekdays, day) {
			return fmt.Errorf("无效的星期 %q", day)
		}

		slots := map[domain.Timeslot][]domain.SlotStaffing{
			domain.TimeslotMorning:   dt.Morning,
			domain.TimeslotAfternoon: dt.Afternoon,
			domain.TimeslotEvening:   dt.Evening,
		}
		for slot, staffing := range slots {
			for _, s := range staffing {
				if s.Position == "" {
					return fmt.Errorf("%s %s 的岗位不能为空", day, slot)
				}
				if s.Count <= 0 {
					return fmt.Errorf("%s %s 的 %s 人数必须大于 0", day, slot, s.Position)
				}
			}
		}
	}
	return nil
}

// ValidateDateRange 检查 start 和 end 是否为 YYYY-MM-DD 格式，且 start 不晚于 end
func ValidateDateRange(start, end string) error {
	startDate, err := time.Parse(domain.DateLayout, start)
	if err != nil {
		return fmt.Errorf("开始日期必须为 YYYY-MM-DD 格式")
	}
	endDate, err := time.Parse(domain.DateLayout, end)
	if err != nil {
		return fmt.Errorf("结束日期必须为 YYYY-MM-DD 格式")
	}
	if startDate.After(endDate) {
		return fmt.Errorf("开始日期不能晚于结束日期")
	}
	return nil
}
