package domain

import "time"

type ShiftStatus string

const (
	ShiftStatusScheduled ShiftStatus = "scheduled"
	ShiftStatusConfirmed ShiftStatus = "confirmed"
	ShiftStatusCompleted ShiftStatus = "completed"
	ShiftStatusCancelled ShiftStatus = "cancelled"
)

// Shift 的 Date 为 YYYY-MM-DD，StartTime 和 EndTime 为 HH:MM
// EndTime 早于 StartTime 表示跨夜班次，日期本身不会顺延
type Shift struct {
	ID        string      `json:"id"`
	StaffID   string      `json:"staffId"`
	Date      string      `json:"date"`
	StartTime string      `json:"startTime"`
	EndTime   string      `json:"endTime"`
	Position  string      `json:"position"`
	Status    ShiftStatus `json:"status"`
	Notes     string      `json:"notes"`
	CreatedAt time.Time   `json:"createdAt"`
	Version   int32       `json:"-"`
}
