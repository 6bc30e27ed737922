package domain

import (
	"math"
	"time"
)

// CustomersPerStaff 每名员工能够服务的顾客数
const CustomersPerStaff = 15

const DateLayout = "2006-01-02"

type DemandForecast struct {
	ID                     string    `json:"id"`
	Date                   string    `json:"date"`
	TimeSlot               Timeslot  `json:"timeSlot"`
	PredictedDemand        int       `json:"predictedDemand"`
	ActualDemand           *int      `json:"actualDemand"`
	StaffingRecommendation int       `json:"staffingRecommendation"`
	Confidence             float64   `json:"confidence"`
	CreatedAt              time.Time `json:"createdAt"`
}

// StaffingFor 根据顾客数计算建议的员工数
func StaffingFor(demand int) int {
	return int(math.Ceil(float64(demand) / CustomersPerStaff))
}
