package forecast

import (
	"math"

	"github.com/brightline5/shift-planner/backend/internal/domain"
)

// Accuracy 使用已经填写了实际顾客数的预测记录计算预测准确率
// 没有任何实际数据时返回 DefaultAccuracy
func (e *Engine) Accuracy(forecasts []*domain.DemandForecast) Accuracy {
	withActual := make([]*domain.DemandForecast, 0)
	for _, f := range forecasts {
		if f.ActualDemand != nil {
			withActual = append(withActual, f)
		}
	}

	if len(withActual) == 0 {
		return DefaultAccuracy
	}

	demandAccuracy := demandAccuracy(withActual)
	staffingAccuracy := staffingAccuracy(withActual)
	costAccuracy := staffingAccuracy * e.costAccuracyFactor

	overall := (demandAccuracy + staffingAccuracy + costAccuracy) / 3

	confidences := make([]float64, 0, len(withActual))
	for _, f := range withActual {
		confidences = append(confidences, f.Confidence)
	}

	return Accuracy{
		Overall:    int(roundHalfUp(overall)),
		Demand:     int(roundHalfUp(demandAccuracy)),
		Staffing:   int(roundHalfUp(staffingAccuracy)),
		Cost:       int(roundHalfUp(costAccuracy)),
		Confidence: int(roundHalfUp(mean(confidences))),
	}
}

func demandAccuracy(forecasts []*domain.DemandForecast) float64 {
	accuracies := make([]float64, 0, len(forecasts))
	for _, f := range forecasts {
		accuracies = append(accuracies, relativeAccuracy(f.PredictedDemand, *f.ActualDemand))
	}
	return mean(accuracies) * 100
}

// 将建议人数与按实际顾客数计算出的最佳人数比较
func staffingAccuracy(forecasts []*domain.DemandForecast) float64 {
	accuracies := make([]float64, 0, len(forecasts))
	for _, f := range forecasts {
		optimal := domain.StaffingFor(*f.ActualDemand)
		accuracies = append(accuracies, relativeAccuracy(f.StaffingRecommendation, optimal))
	}
	return mean(accuracies) * 100
}

// 1 - 相对误差，最低为 0
// 实际值为 0 时，预测值也为 0 则记为完全准确，否则记为 0
func relativeAccuracy(predicted, actual int) float64 {
	if actual == 0 {
		if predicted == 0 {
			return 1
		}
		return 0
	}

	relErr := math.Abs(float64(predicted-actual)) / float64(actual)
	return math.Max(0, 1-relErr)
}
