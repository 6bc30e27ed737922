package utils

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/brightline5/shift-planner/backend/internal/domain"
	"github.com/mozillazg/go-pinyin"
)

var commonSurnames = []string{
	"王", "李", "张", "刘", "陈", "杨", "赵", "黄", "周", "吴",
	"徐", "孙", "胡", "朱", "高", "林", "何", "郭", "马", "罗",
}
var commonNameCharacters = []string{
	"伟", "强", "芳", "敏", "静", "丽", "刚", "杰", "娟", "勇",
	"艳", "涛", "明", "军", "磊", "洋", "霞", "飞", "玲", "超",
	"华", "平", "辉", "梅", "鑫", "龙", "鹏", "玉", "斌", "欣",
}

func GenerateRandomChineseName() string {
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	nameLength := rand.Intn(2) + 1
	name := ""

	for i := 0; i < nameLength; i++ {
		name += commonNameCharacters[rand.Intn(len(commonNameCharacters))]
	}
	return surname + name
}

var digits = "0123456789"

// GenerateEmailFromChineseName 使用姓名的拼音加上随机数字作为邮箱的用户名
func GenerateEmailFromChineseName(chineseName string, emailDomain string) string {
	username := strings.Join(pinyin.LazyConvert(chineseName, nil), ".")

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username + "@" + emailDomain
}

type positionProfile struct {
	position string
	minRate  float64
	maxRate  float64
	skills   []string
	weight   int
}

// 演示数据中各岗位的时薪范围，weight 决定随机生成时各岗位的比例
var positionProfiles = []positionProfile{
	{position: "Server", minRate: 15, maxRate: 20, skills: []string{"customer service", "pos"}, weight: 5},
	{position: "Line Cook", minRate: 17, maxRate: 23, skills: []string{"grill", "prep"}, weight: 3},
	{position: "Host", minRate: 14, maxRate: 17, skills: []string{"reservations"}, weight: 2},
	{position: "Manager", minRate: 25, maxRate: 32, skills: []string{"leadership", "inventory"}, weight: 1},
}

func randomPositionProfile() positionProfile {
	total := 0
	for _, p := range positionProfiles {
		total += p.weight
	}

	n := rand.Intn(total)
	for _, p := range positionProfiles {
		if n < p.weight {
			return p
		}
		n -= p.weight
	}
	return positionProfiles[0]
}

// 随机生成一周的空闲时间，有约 1/5 的员工不填写空闲时间（视为随时有空）
func generateRandomAvailability() domain.Availability {
	if rand.Intn(5) == 0 {
		return nil
	}

	availability := make(domain.Availability)
	for _, day := range weekdays {
		if rand.Intn(7) == 0 {
			availability[day] = []domain.AvailabilityWindow{}
			continue
		}

		switch rand.Intn(3) {
		case 0:
			availability[day] = []domain.AvailabilityWindow{{Start: "09:00", End: "15:00", Available: true}}
		case 1:
			availability[day] = []domain.AvailabilityWindow{{Start: "15:00", End: "23:59", Available: true}}
		default:
			availability[day] = []domain.AvailabilityWindow{{Start: "00:00", End: "23:59", Available: true}}
		}
	}
	return availability
}

func GenerateRandomStaff(emailDomain string) *domain.Staff {
	name := GenerateRandomChineseName()
	profile := randomPositionProfile()

	rate := profile.minRate + rand.Float64()*(profile.maxRate-profile.minRate)

	return &domain.Staff{
		Name:         name,
		Position:     profile.position,
		HourlyRate:   float64(int(rate*100)) / 100,
		Email:        GenerateEmailFromChineseName(name, emailDomain),
		Phone:        fmt.Sprintf("1%02d%08d", rand.Intn(100), rand.Intn(100000000)),
		Availability: generateRandomAvailability(),
		Skills:       append([]string{}, profile.skills...),
		IsActive:     true,
	}
}

// 周末客流更高，晚市最高
var slotBaseDemand = map[domain.Timeslot]int{
	domain.TimeslotMorning:   30,
	domain.TimeslotAfternoon: 45,
	domain.TimeslotEvening:   70,
}

// GenerateRandomDemandForecasts 生成从 start 开始连续 days 天、每天三个时段的需求预测
// withActual 为 true 时同时生成实际顾客数，用于计算预测准确率
func GenerateRandomDemandForecasts(start time.Time, days int, withActual bool) []*domain.DemandForecast {
	forecasts := make([]*domain.DemandForecast, 0, days*len(domain.Timeslots))

	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i)
		factor := 1.0
		if date.Weekday() == time.Friday || date.Weekday() == time.Saturday {
			factor = 1.4
		}

		for _, slot := range domain.Timeslots {
			demand := int(float64(slotBaseDemand[slot])*factor) + rand.Intn(20)

			f := &domain.DemandForecast{
				Date:                   date.Format(domain.DateLayout),
				TimeSlot:               slot,
				PredictedDemand:        demand,
				StaffingRecommendation: domain.StaffingFor(demand),
				Confidence:             float64(70 + rand.Intn(25)),
			}
			if withActual {
				actual := demand + rand.Intn(21) - 10
				f.ActualDemand = &actual
			}

			forecasts = append(forecasts, f)
		}
	}

	return forecasts
}
