package scheduler

import "github.com/brightline5/shift-planner/backend/internal/domain"

// 排班约束
type Constraints struct {
	MinStaffPerShift          int            `json:"minStaffPerShift"`
	MaxHoursPerWeek           int            `json:"maxHoursPerWeek"`           // 目前评分时不使用
	OvertimeThreshold         int            `json:"overtimeThreshold"`         // 每周小时数
	PreferredStaffPerPosition map[string]int `json:"preferredStaffPerPosition"` // 仅供参考，生成时不读取
}

func DefaultConstraints() Constraints {
	return Constraints{
		MinStaffPerShift:  3,
		MaxHoursPerWeek:   40,
		OvertimeThreshold: 40,
		PreferredStaffPerPosition: map[string]int{
			"Server":      4,
			"Line Cook":   2,
			"Head Server": 1,
			"Host":        1,
			"Manager":     1,
		},
	}
}

// DefaultOptimizationDiscount 是“优化后成本”使用的折扣，只是一个估算节省的占位值
const DefaultOptimizationDiscount = 0.05

type PositionNeed struct {
	Position string `json:"position"`
	Count    int    `json:"count"`
}

// Needs 按比例表的固定顺序排列
type Needs []PositionNeed

func (n Needs) Count(position string) int {
	for _, need := range n {
		if need.Position == position {
			return need.Count
		}
	}
	return 0
}

func (n Needs) Map() map[string]int {
	m := make(map[string]int, len(n))
	for _, need := range n {
		m[need.Position] = need.Count
	}
	return m
}

type Result struct {
	Shifts          []*domain.Shift `json:"shifts"`
	Efficiency      float64         `json:"efficiency"`
	TotalCost       float64         `json:"totalCost"`
	OptimizedCost   float64         `json:"optimizedCost"`
	CostSavings     float64         `json:"costSavings"`
	Violations      []string        `json:"violations"`
	Recommendations []string        `json:"recommendations"`
}

// 单日排班结果
type dayResult struct {
	shifts          []*domain.Shift
	violations      []string
	recommendations []string
	totalCost       float64
	optimizedCost   float64
}

type slotWindow struct {
	slot  domain.Timeslot
	start string
	end   string
}

// 每个时段固定的时间窗口，晚班跨夜到次日 02:00
var slotWindows = []slotWindow{
	{slot: domain.TimeslotMorning, start: "09:00", end: "15:00"},
	{slot: domain.TimeslotAfternoon, start: "15:00", end: "21:00"},
	{slot: domain.TimeslotEvening, start: "21:00", end: "02:00"},
}

// SlotWindow 返回某个时段的起止时间
func SlotWindow(slot domain.Timeslot) (string, string, bool) {
	for _, w := range slotWindows {
		if w.slot == slot {
			return w.start, w.end, true
		}
	}
	return "", "", false
}
