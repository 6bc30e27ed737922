package domain

import (
	"time"
)

type SlotStaffing struct {
	Position string `json:"position"`
	Count    int32  `json:"count"`
}

type DayTemplate struct {
	Morning   []SlotStaffing `json:"morning"`
	Afternoon []SlotStaffing `json:"afternoon"`
	Evening   []SlotStaffing `json:"evening"`
}

// ScheduleTemplate 的 Template 以小写星期名为 key
type ScheduleTemplate struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Template    map[string]DayTemplate `json:"template"`
	IsDefault   bool                   `json:"isDefault"`
	CreatedAt   time.Time              `json:"createdAt"`
}
