package forecast

import (
	"math"
	"slices"
	"time"

	"github.com/brightline5/shift-planner/backend/internal/domain"
	"github.com/brightline5/shift-planner/backend/internal/metrics"
)

// DefaultCostAccuracyFactor 成本准确率由人员准确率乘以该系数近似得到
const DefaultCostAccuracyFactor = 1.05

// 没有历史数据时按星期使用的默认顾客数（周日到周六）
var defaultDemands = [7]float64{60, 45, 50, 65, 85, 120, 110}

const defaultVariance = 0.15

// 餐厅的季节系数（一月到十二月），夏季高冬季低
var seasonalFactors = [12]float64{
	0.85, 0.90, 0.95, 1.00, 1.05, 1.10,
	1.15, 1.10, 1.05, 1.00, 0.95, 0.90,
}

type Engine struct {
	costAccuracyFactor float64
}

func NewEngine(costAccuracyFactor float64) *Engine {
	return &Engine{costAccuracyFactor: costAccuracyFactor}
}

// Predict 从 now 当天开始，预测之后 horizon 天每天的顾客数
func (e *Engine) Predict(forecasts []*domain.DemandForecast, horizon Horizon, now time.Time) []Prediction {
	days := horizon.Days()
	predictions := make([]Prediction, 0, days)

	for i := 0; i < days; i++ {
		date := now.AddDate(0, 0, i)

		p := historicalPattern(forecasts, date.Weekday())
		seasonal := seasonalAdjustment(date)
		trend := trendAdjustment(forecasts, i)

		demand := int(roundHalfUp(p.averageDemand * seasonal * trend))

		predictions = append(predictions, Prediction{
			Day:              date.Format("Mon"),
			Date:             date.Format("Jan 2"),
			ISODate:          date.Format(domain.DateLayout),
			PredictedDemand:  demand,
			Confidence:       predictionConfidence(p.variance, len(forecasts), i),
			RecommendedStaff: domain.StaffingFor(demand),
		})
	}

	metrics.PredictionsTotal.WithLabelValues(string(horizon)).Add(float64(len(predictions)))

	return predictions
}

// 计算历史上同一星期几的平均顾客数和相对方差
func historicalPattern(forecasts []*domain.DemandForecast, weekday time.Weekday) pattern {
	demands := make([]float64, 0)
	for _, f := range forecasts {
		date, err := time.Parse(domain.DateLayout, f.Date)
		if err != nil {
			continue
		}
		if date.Weekday() == weekday {
			demands = append(demands, float64(f.PredictedDemand))
		}
	}

	if len(demands) == 0 {
		return pattern{averageDemand: defaultDemands[weekday], variance: defaultVariance}
	}

	avg := mean(demands)
	if avg == 0 {
		return pattern{averageDemand: 0, variance: 0}
	}

	variance := 0.0
	for _, d := range demands {
		variance += math.Pow(d-avg, 2)
	}
	variance /= float64(len(demands))

	return pattern{averageDemand: avg, variance: variance / avg}
}

func seasonalAdjustment(date time.Time) float64 {
	factor := seasonalFactors[date.Month()-1]

	switch date.Weekday() {
	case time.Friday, time.Saturday:
		factor *= 1.2
	case time.Sunday:
		factor *= 1.1
	case time.Monday, time.Tuesday:
		factor *= 0.9
	}

	if isNearHoliday(date) {
		factor *= 1.3
	}

	return factor
}

// 取最近 7 条记录（按日期倒序）计算线性趋势，越往后的预测受趋势的影响越小
func trendAdjustment(forecasts []*domain.DemandForecast, daysAhead int) float64 {
	if len(forecasts) < 7 {
		return 1.0
	}

	type dated struct {
		date   time.Time
		demand float64
	}
	records := make([]dated, 0, len(forecasts))
	for _, f := range forecasts {
		// 日期无法解析的记录按零值时间处理，排在最后
		date, _ := time.Parse(domain.DateLayout, f.Date)
		records = append(records, dated{date: date, demand: float64(f.PredictedDemand)})
	}

	slices.SortStableFunc(records, func(a, b dated) int {
		return b.date.Compare(a.date)
	})

	demands := make([]float64, 0, 7)
	for _, r := range records[:7] {
		demands = append(demands, r.demand)
	}

	trend := linearTrend(demands)
	effect := trend * (1 - float64(daysAhead)*0.05)

	return math.Max(0.7, math.Min(1.3, 1+effect))
}

func predictionConfidence(variance float64, dataPoints int, daysAhead int) int {
	confidence := 90.0

	confidence -= variance * 20

	if dataPoints < 30 {
		confidence -= float64(30-dataPoints) * 0.5
	}

	confidence -= float64(daysAhead) * 1.5

	return int(math.Max(60, math.Min(95, roundHalfUp(confidence))))
}

// 最小二乘斜率除以均值，得到归一化的趋势
func linearTrend(values []float64) float64 {
	n := float64(len(values))
	if n < 2 {
		return 0
	}

	sumX := n * (n - 1) / 2
	sumXX := n * (n - 1) * (2*n - 1) / 6
	sumY := 0.0
	sumXY := 0.0
	for i, v := range values {
		sumY += v
		sumXY += float64(i) * v
	}

	avgY := sumY / n
	if avgY == 0 {
		return 0
	}

	slope := (n*sumXY - sumX*sumY) / (n*sumXX - sumX*sumX)
	return slope / avgY
}

// 节日（按当年日期计算，母亲节和感恩节取近似日期）前后 3 天内视为节日
func isNearHoliday(date time.Time) bool {
	year := date.Year()
	day := time.Date(year, date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	holidays := []time.Time{
		time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(year, time.February, 14, 0, 0, 0, 0, time.UTC),
		time.Date(year, time.May, 9, 0, 0, 0, 0, time.UTC),
		time.Date(year, time.July, 4, 0, 0, 0, 0, time.UTC),
		time.Date(year, time.November, 24, 0, 0, 0, 0, time.UTC),
		time.Date(year, time.December, 25, 0, 0, 0, 0, time.UTC),
	}

	for _, holiday := range holidays {
		diff := day.Sub(holiday)
		if diff < 0 {
			diff = -diff
		}
		if diff <= 3*24*time.Hour {
			return true
		}
	}
	return false
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// 四舍五入，.5 向正无穷方向取整
func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}
