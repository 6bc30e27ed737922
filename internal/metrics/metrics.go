// Package metrics 定义排班与预测相关的 Prometheus 指标
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry 为本服务专用的 registry，/metrics 只暴露这里注册的指标
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

/**********************************************
 * 排班
 **********************************************/

var ScheduleDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "scheduler",
	Name:      "duration_seconds",
	Help:      "生成一次排班所用的时间",
	Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
})

var ShiftsGeneratedTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "scheduler",
	Name:      "shifts_generated_total",
	Help:      "自动生成的班次总数",
})

var ViolationsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "scheduler",
	Name:      "violations_total",
	Help:      "人手不足的约束违反次数，按岗位和时段划分",
}, []string{"position", "slot"})

var LastEfficiency = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "scheduler",
	Name:      "last_efficiency",
	Help:      "最近一次生成排班的效率评分",
})

/**********************************************
 * 预测
 **********************************************/

var PredictionsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "forecast",
	Name:      "predictions_total",
	Help:      "生成的每日需求预测数量",
}, []string{"horizon"})

var PredictionCacheTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "forecast",
	Name:      "cache_total",
	Help:      "预测缓存的命中情况",
}, []string{"result"})

var RecommendationsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "forecast",
	Name:      "recommendations_total",
	Help:      "生成的建议数量，按优先级划分",
}, []string{"priority"})

/**********************************************
 * HTTP
 **********************************************/

var HTTPRequestsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "http",
	Name:      "requests_total",
	Help:      "已处理的请求数量，按方法、路由和状态码划分",
}, []string{"method", "route", "status"})

var HTTPRequestDurationSeconds = factory.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "http",
	Name:      "request_duration_seconds",
	Help:      "请求的处理时间",
	Buckets:   prometheus.DefBuckets,
}, []string{"method", "route"})
