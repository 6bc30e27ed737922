package domain

import "time"

type RecommendationType string

const (
	RecommendationTypeOptimization  RecommendationType = "optimization"
	RecommendationTypeCostReduction RecommendationType = "cost_reduction"
	RecommendationTypeTraining      RecommendationType = "training"
	RecommendationTypeAlert         RecommendationType = "alert"
)

type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// RecommendationData 是建议附带的结构化数据
type RecommendationData struct {
	Category string   `json:"category,omitempty"`
	Impact   float64  `json:"impact,omitempty"`
	Days     []string `json:"days,omitempty"`
	Horizon  string   `json:"horizon,omitempty"`
}

type AiRecommendation struct {
	ID          string             `json:"id"`
	Type        RecommendationType `json:"type"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Priority    Priority           `json:"priority"`
	IsRead      bool               `json:"isRead"`
	Data        RecommendationData `json:"data"`
	CreatedAt   time.Time          `json:"createdAt"`
}
