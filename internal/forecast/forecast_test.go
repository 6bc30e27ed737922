package forecast_test

import (
	"testing"
	"time"

	"github.com/brightline5/shift-planner/backend/internal/domain"
	"github.com/brightline5/shift-planner/backend/internal/forecast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 10, 30, 0, 0, time.UTC)
}

func record(date string, demand int) *domain.DemandForecast {
	return &domain.DemandForecast{
		Date:                   date,
		TimeSlot:               domain.TimeslotMorning,
		PredictedDemand:        demand,
		StaffingRecommendation: domain.StaffingFor(demand),
		Confidence:             80,
	}
}

func intPtr(v int) *int {
	return &v
}

func TestHorizonDays(t *testing.T) {
	assert.Equal(t, 7, forecast.Horizon7Days.Days())
	assert.Equal(t, 14, forecast.Horizon14Days.Days())
	assert.Equal(t, 30, forecast.Horizon30Days.Days())
	assert.Equal(t, 30, forecast.Horizon("90days").Days())
}

func TestPredict_WithoutHistory(t *testing.T) {
	engine := forecast.NewEngine(forecast.DefaultCostAccuracyFactor)

	// 2024-03-11 是星期一
	predictions := engine.Predict(nil, forecast.Horizon7Days, day(2024, time.March, 11))
	require.Len(t, predictions, 7)

	expected := []struct {
		day, date, iso string
		demand, conf   int
		staff          int
	}{
		{"Mon", "Mar 11", "2024-03-11", 38, 72, 3},
		{"Tue", "Mar 12", "2024-03-12", 43, 71, 3},
		{"Wed", "Mar 13", "2024-03-13", 62, 69, 5},
		{"Thu", "Mar 14", "2024-03-14", 81, 68, 6},
		{"Fri", "Mar 15", "2024-03-15", 137, 66, 10},
		{"Sat", "Mar 16", "2024-03-16", 125, 65, 9},
		{"Sun", "Mar 17", "2024-03-17", 63, 63, 5},
	}

	for i, e := range expected {
		p := predictions[i]
		assert.Equal(t, e.day, p.Day, "day %d", i)
		assert.Equal(t, e.date, p.Date, "day %d", i)
		assert.Equal(t, e.iso, p.ISODate, "day %d", i)
		assert.Equal(t, e.demand, p.PredictedDemand, "day %d", i)
		assert.Equal(t, e.conf, p.Confidence, "day %d", i)
		assert.Equal(t, e.staff, p.RecommendedStaff, "day %d", i)
	}
}

func TestPredict_ConfidenceAlwaysInRange(t *testing.T) {
	engine := forecast.NewEngine(forecast.DefaultCostAccuracyFactor)

	volatile := []*domain.DemandForecast{
		record("2024-03-04", 5),
		record("2024-03-11", 400),
		record("2024-03-05", 1),
		record("2024-03-12", 300),
	}

	for _, forecasts := range [][]*domain.DemandForecast{nil, volatile} {
		predictions := engine.Predict(forecasts, forecast.Horizon30Days, day(2024, time.April, 1))
		require.Len(t, predictions, 30)
		for _, p := range predictions {
			assert.GreaterOrEqual(t, p.Confidence, 60)
			assert.LessOrEqual(t, p.Confidence, 95)
		}
	}
}

func TestPredict_ConsecutiveDaysFromToday(t *testing.T) {
	engine := forecast.NewEngine(forecast.DefaultCostAccuracyFactor)
	now := day(2024, time.February, 27)

	predictions := engine.Predict(nil, forecast.Horizon14Days, now)
	require.Len(t, predictions, 14)

	for i, p := range predictions {
		assert.Equal(t, now.AddDate(0, 0, i).Format(domain.DateLayout), p.ISODate)
	}
}

func TestPredict_HolidayBoost(t *testing.T) {
	engine := forecast.NewEngine(forecast.DefaultCostAccuracyFactor)

	// 2024-12-23 是星期一，距离圣诞节 2 天
	predictions := engine.Predict(nil, forecast.Horizon7Days, day(2024, time.December, 23))

	// 45 * 0.90 * 0.9 * 1.3
	assert.Equal(t, 47, predictions[0].PredictedDemand)
	// 周六 12-28 距离圣诞节 3 天：110 * 0.90 * 1.2 * 1.3
	assert.Equal(t, 154, predictions[5].PredictedDemand)
	// 周日 12-29 已经超过 3 天：60 * 0.90 * 1.1
	assert.Equal(t, 59, predictions[6].PredictedDemand)
}

func TestPredict_HistoricalPattern(t *testing.T) {
	engine := forecast.NewEngine(forecast.DefaultCostAccuracyFactor)

	forecasts := []*domain.DemandForecast{
		record("2024-03-04", 100), // 星期一
		record("2024-03-18", 100), // 星期一
	}

	// 2024-04-01 是星期一，四月系数 1.00，周一系数 0.9
	predictions := engine.Predict(forecasts, forecast.Horizon7Days, day(2024, time.April, 1))

	assert.Equal(t, 90, predictions[0].PredictedDemand)
	// 方差为 0，数据点 2 个扣 14 分
	assert.Equal(t, 76, predictions[0].Confidence)
}

func TestPredict_TrendAdjustment(t *testing.T) {
	engine := forecast.NewEngine(forecast.DefaultCostAccuracyFactor)

	// 需求逐日上升，按日期倒序排列后斜率为 -10，均值为 100
	forecasts := []*domain.DemandForecast{
		record("2024-03-04", 100), // 星期一
		record("2024-03-01", 70),
		record("2024-03-07", 130),
		record("2024-03-02", 80),
		record("2024-03-06", 120),
		record("2024-03-03", 90),
		record("2024-03-05", 110),
	}

	predictions := engine.Predict(forecasts, forecast.Horizon7Days, day(2024, time.April, 1))

	// 100 * 0.9（周一） * 0.9（趋势）
	assert.Equal(t, 81, predictions[0].PredictedDemand)
	// 90 - 0.5 * 23 = 78.5
	assert.Equal(t, 79, predictions[0].Confidence)

	// 调用方传入的切片不会被重新排序
	assert.Equal(t, "2024-03-04", forecasts[0].Date)
}

func TestAccuracy(t *testing.T) {
	engine := forecast.NewEngine(forecast.DefaultCostAccuracyFactor)

	t.Run("DefaultsWithoutActualDemand", func(t *testing.T) {
		assert.Equal(t, forecast.Accuracy{Overall: 85, Demand: 87, Staffing: 83, Cost: 89, Confidence: 82}, engine.Accuracy(nil))
		assert.Equal(t, forecast.DefaultAccuracy, engine.Accuracy([]*domain.DemandForecast{record("2024-03-04", 100)}))
	})

	t.Run("WithActualDemand", func(t *testing.T) {
		f := &domain.DemandForecast{
			Date:                   "2024-03-04",
			PredictedDemand:        90,
			ActualDemand:           intPtr(100),
			StaffingRecommendation: 6, // 最佳人数为 ceil(100/15) = 7
			Confidence:             80,
		}
		ignored := record("2024-03-05", 10)

		acc := engine.Accuracy([]*domain.DemandForecast{f, ignored})

		assert.Equal(t, 90, acc.Demand)
		assert.Equal(t, 86, acc.Staffing)
		assert.Equal(t, 90, acc.Cost)
		assert.Equal(t, 89, acc.Overall)
		assert.Equal(t, 80, acc.Confidence)
	})

	t.Run("ClampedAtZero", func(t *testing.T) {
		f := &domain.DemandForecast{
			PredictedDemand:        500,
			ActualDemand:           intPtr(100),
			StaffingRecommendation: 40,
			Confidence:             70,
		}

		acc := engine.Accuracy([]*domain.DemandForecast{f})

		assert.Equal(t, 0, acc.Demand)
		assert.Equal(t, 0, acc.Staffing)
		assert.Equal(t, 0, acc.Cost)
		assert.Equal(t, 0, acc.Overall)
	})

	t.Run("ZeroActualDemand", func(t *testing.T) {
		exact := &domain.DemandForecast{PredictedDemand: 0, ActualDemand: intPtr(0), StaffingRecommendation: 0, Confidence: 90}
		wrong := &domain.DemandForecast{PredictedDemand: 10, ActualDemand: intPtr(0), StaffingRecommendation: 1, Confidence: 70}

		acc := engine.Accuracy([]*domain.DemandForecast{exact, wrong})

		assert.Equal(t, 50, acc.Demand)
		assert.Equal(t, 50, acc.Staffing)
		assert.Equal(t, 80, acc.Confidence)
	})

	t.Run("ConfigurableCostFactor", func(t *testing.T) {
		f := &domain.DemandForecast{PredictedDemand: 100, ActualDemand: intPtr(100), StaffingRecommendation: 7, Confidence: 90}

		acc := forecast.NewEngine(0.5).Accuracy([]*domain.DemandForecast{f})

		assert.Equal(t, 100, acc.Staffing)
		assert.Equal(t, 50, acc.Cost)
	})
}

func TestRecommend(t *testing.T) {
	tests := map[string]struct {
		predictions []forecast.Prediction
		titles      []string
	}{
		"NoSignals": {
			predictions: []forecast.Prediction{
				{Day: "Mon", PredictedDemand: 70, Confidence: 80},
				{Day: "Tue", PredictedDemand: 60, Confidence: 85},
			},
			titles: []string{},
		},
		"PeakAndLow": {
			predictions: []forecast.Prediction{
				{Day: "Mon", PredictedDemand: 40, Confidence: 80},
				{Day: "Fri", PredictedDemand: 130, Confidence: 80},
			},
			titles: []string{"Peak Demand Alert", "Cost Optimization Opportunity"},
		},
		"ConfidenceRules": {
			predictions: []forecast.Prediction{
				{Day: "Mon", PredictedDemand: 70, Confidence: 92},
				{Day: "Tue", PredictedDemand: 70, Confidence: 92},
				{Day: "Wed", PredictedDemand: 70, Confidence: 92},
				{Day: "Thu", PredictedDemand: 70, Confidence: 92},
				{Day: "Mon", PredictedDemand: 70, Confidence: 70},
				{Day: "Tue", PredictedDemand: 70, Confidence: 70},
				{Day: "Wed", PredictedDemand: 70, Confidence: 70},
			},
			titles: []string{"Schedule Optimization", "Prediction Uncertainty"},
		},
		"WeekendAllHigh": {
			predictions: []forecast.Prediction{
				{Day: "Sat", PredictedDemand: 90, Confidence: 80},
				{Day: "Sun", PredictedDemand: 85, Confidence: 80},
			},
			titles: []string{"Weekend Staffing Strategy"},
		},
		"WeekendNotAllHigh": {
			predictions: []forecast.Prediction{
				{Day: "Sat", PredictedDemand: 90, Confidence: 80},
				{Day: "Sun", PredictedDemand: 80, Confidence: 80},
			},
			titles: []string{},
		},
		"AllRulesCappedAtFive": {
			predictions: []forecast.Prediction{
				{Day: "Sat", PredictedDemand: 120, Confidence: 92},
				{Day: "Sun", PredictedDemand: 110, Confidence: 92},
				{Day: "Mon", PredictedDemand: 40, Confidence: 92},
				{Day: "Tue", PredictedDemand: 40, Confidence: 92},
				{Day: "Wed", PredictedDemand: 60, Confidence: 70},
				{Day: "Thu", PredictedDemand: 60, Confidence: 70},
				{Day: "Fri", PredictedDemand: 60, Confidence: 70},
			},
			titles: []string{
				"Peak Demand Alert",
				"Cost Optimization Opportunity",
				"Schedule Optimization",
				"Prediction Uncertainty",
				"Weekend Staffing Strategy",
			},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			recs := forecast.Recommend(tc.predictions)

			titles := make([]string, 0, len(recs))
			for _, r := range recs {
				titles = append(titles, r.Title)
			}
			assert.Equal(t, tc.titles, titles)
			assert.LessOrEqual(t, len(recs), 5)
		})
	}
}

func TestRecommend_Details(t *testing.T) {
	recs := forecast.Recommend([]forecast.Prediction{
		{Day: "Fri", PredictedDemand: 130, Confidence: 80},
		{Day: "Sat", PredictedDemand: 150, Confidence: 80},
	})

	require.Len(t, recs, 2)

	peak := recs[0]
	assert.Equal(t, "High demand expected on Fri, Sat. Consider increasing staff by 20%.", peak.Description)
	assert.Equal(t, domain.PriorityHigh, peak.Priority)
	assert.Equal(t, 15.0, peak.Impact)
	assert.Equal(t, forecast.CategoryStaffing, peak.Category)
	assert.Equal(t, []string{"Fri", "Sat"}, peak.Days)

	assert.Equal(t, "Weekend Staffing Strategy", recs[1].Title)
	assert.Equal(t, domain.RecommendationTypeAlert, recs[1].Category.RecommendationType())
}

func TestCategoryRecommendationType(t *testing.T) {
	assert.Equal(t, domain.RecommendationTypeOptimization, forecast.CategoryOptimization.RecommendationType())
	assert.Equal(t, domain.RecommendationTypeCostReduction, forecast.CategoryCost.RecommendationType())
	assert.Equal(t, domain.RecommendationTypeTraining, forecast.CategoryTraining.RecommendationType())
	assert.Equal(t, domain.RecommendationTypeAlert, forecast.CategoryStaffing.RecommendationType())
}
