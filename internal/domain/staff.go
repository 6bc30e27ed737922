package domain

import (
	"strings"
	"time"
)

type AvailabilityWindow struct {
	Start     string `json:"start"`
	End       string `json:"end"`
	Available bool   `json:"available"`
}

// Availability 的 key 为小写的英文星期名（monday ... sunday）
// 为 nil 时表示员工没有填写空闲时间，排班时视为任何时间都有空
type Availability map[string][]AvailabilityWindow

// WindowsOn 返回某一天（按星期）的空闲时间段
func (a Availability) WindowsOn(date time.Time) []AvailabilityWindow {
	return a[strings.ToLower(date.Weekday().String())]
}

type Staff struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Position     string       `json:"position"`
	HourlyRate   float64      `json:"hourlyRate"`
	Email        string       `json:"email"`
	Phone        string       `json:"phone"`
	Availability Availability `json:"availability"`
	Skills       []string     `json:"skills"`
	IsActive     bool         `json:"isActive"`
	CreatedAt    time.Time    `json:"createdAt"`
	Version      int32        `json:"-"`
}

// Deactivate 将员工标记为离职，员工记录永远不会被物理删除，已有班次仍然引用它
// 如果员工已经是离职状态则返回 false
func (s *Staff) Deactivate() bool {
	if !s.IsActive {
		return false
	}
	s.IsActive = false
	return true
}
