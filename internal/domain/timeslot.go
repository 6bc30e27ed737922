package domain

// Timeslot 需求预测与班次的时段划分
type Timeslot string

const (
	TimeslotMorning   Timeslot = "morning"
	TimeslotAfternoon Timeslot = "afternoon"
	TimeslotEvening   Timeslot = "evening"
)

// Timeslots 按一天内的先后顺序排列
var Timeslots = []Timeslot{TimeslotMorning, TimeslotAfternoon, TimeslotEvening}

func (t Timeslot) Valid() bool {
	switch t {
	case TimeslotMorning, TimeslotAfternoon, TimeslotEvening:
		return true
	}
	return false
}
