package forecast

import "github.com/brightline5/shift-planner/backend/internal/domain"

type Horizon string

const (
	Horizon7Days  Horizon = "7days"
	Horizon14Days Horizon = "14days"
	Horizon30Days Horizon = "30days"
)

// Days 返回预测的天数，无法识别的 horizon 按 30 天处理
func (h Horizon) Days() int {
	switch h {
	case Horizon7Days:
		return 7
	case Horizon14Days:
		return 14
	}
	return 30
}

type Prediction struct {
	Day              string `json:"day"`     // Mon, Tue ...
	Date             string `json:"date"`    // Jan 2
	ISODate          string `json:"isoDate"` // 2006-01-02
	PredictedDemand  int    `json:"predictedDemand"`
	Confidence       int    `json:"confidence"`
	RecommendedStaff int    `json:"recommendedStaff"`
}

type Accuracy struct {
	Overall    int `json:"overall"`
	Demand     int `json:"demand"`
	Staffing   int `json:"staffing"`
	Cost       int `json:"cost"`
	Confidence int `json:"confidence"`
}

// 没有实际需求数据时返回的默认准确率
var DefaultAccuracy = Accuracy{
	Overall:    85,
	Demand:     87,
	Staffing:   83,
	Cost:       89,
	Confidence: 82,
}

type Category string

const (
	CategoryOptimization Category = "optimization"
	CategoryCost         Category = "cost"
	CategoryStaffing     Category = "staffing"
	CategoryTraining     Category = "training"
)

// RecommendationType 将建议分类映射为持久化的建议类型
func (c Category) RecommendationType() domain.RecommendationType {
	switch c {
	case CategoryOptimization:
		return domain.RecommendationTypeOptimization
	case CategoryCost:
		return domain.RecommendationTypeCostReduction
	case CategoryTraining:
		return domain.RecommendationTypeTraining
	}
	return domain.RecommendationTypeAlert
}

type Recommendation struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Priority    domain.Priority `json:"priority"`
	Impact      float64         `json:"impact"`
	Category    Category        `json:"category"`
	Days        []string        `json:"days,omitempty"`
}

type pattern struct {
	averageDemand float64
	variance      float64 // 相对方差，即方差除以均值
}
