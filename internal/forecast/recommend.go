package forecast

import (
	"fmt"
	"slices"
	"strings"

	"github.com/brightline5/shift-planner/backend/internal/domain"
	"github.com/brightline5/shift-planner/backend/internal/metrics"
)

const maxRecommendations = 5

// Recommend 根据每日预测中越过阈值的情况生成建议，最多返回 5 条
func Recommend(predictions []Prediction) []Recommendation {
	recommendations := make([]Recommendation, 0)

	var peakDays, lowDays, highConfidenceDays, lowConfidenceDays, weekend []Prediction
	for _, p := range predictions {
		if p.PredictedDemand > 100 {
			peakDays = append(peakDays, p)
		}
		if p.PredictedDemand < 50 {
			lowDays = append(lowDays, p)
		}
		if p.Confidence > 90 {
			highConfidenceDays = append(highConfidenceDays, p)
		}
		if p.Confidence < 75 {
			lowConfidenceDays = append(lowConfidenceDays, p)
		}
		if p.Day == "Sat" || p.Day == "Sun" {
			weekend = append(weekend, p)
		}
	}

	// 高峰需求
	if len(peakDays) > 0 {
		recommendations = append(recommendations, Recommendation{
			Title:       "Peak Demand Alert",
			Description: fmt.Sprintf("High demand expected on %s. Consider increasing staff by 20%%.", joinDays(peakDays)),
			Priority:    domain.PriorityHigh,
			Impact:      15,
			Category:    CategoryStaffing,
			Days:        dayNames(peakDays),
		})
	}

	// 低需求时减少人手
	if len(lowDays) > 0 {
		recommendations = append(recommendations, Recommendation{
			Title:       "Cost Optimization Opportunity",
			Description: fmt.Sprintf("Low demand predicted for %s. Reduce staff to minimize labor costs.", joinDays(lowDays)),
			Priority:    domain.PriorityMedium,
			Impact:      8,
			Category:    CategoryCost,
			Days:        dayNames(lowDays),
		})
	}

	if len(highConfidenceDays) > 3 {
		recommendations = append(recommendations, Recommendation{
			Title:       "Schedule Optimization",
			Description: "High prediction confidence for multiple days. Implement automated scheduling for maximum efficiency.",
			Priority:    domain.PriorityLow,
			Impact:      12,
			Category:    CategoryOptimization,
			Days:        dayNames(highConfidenceDays),
		})
	}

	if len(lowConfidenceDays) > 2 {
		recommendations = append(recommendations, Recommendation{
			Title:       "Prediction Uncertainty",
			Description: fmt.Sprintf("Lower confidence predictions detected. Consider manual review for %s.", joinDays(lowConfidenceDays)),
			Priority:    domain.PriorityMedium,
			Impact:      5,
			Category:    CategoryTraining,
			Days:        dayNames(lowConfidenceDays),
		})
	}

	// 周末需求持续偏高
	if len(weekend) > 0 && !slices.ContainsFunc(weekend, func(p Prediction) bool { return p.PredictedDemand <= 80 }) {
		recommendations = append(recommendations, Recommendation{
			Title:       "Weekend Staffing Strategy",
			Description: "Consistent high weekend demand. Consider dedicated weekend staff scheduling.",
			Priority:    domain.PriorityMedium,
			Impact:      10,
			Category:    CategoryStaffing,
			Days:        dayNames(weekend),
		})
	}

	if len(recommendations) > maxRecommendations {
		recommendations = recommendations[:maxRecommendations]
	}

	for _, r := range recommendations {
		metrics.RecommendationsTotal.WithLabelValues(string(r.Priority)).Inc()
	}

	return recommendations
}

func dayNames(predictions []Prediction) []string {
	names := make([]string, 0, len(predictions))
	for _, p := range predictions {
		names = append(names, p.Day)
	}
	return names
}

func joinDays(predictions []Prediction) string {
	return strings.Join(dayNames(predictions), ", ")
}
