package handler

import (
	"log/slog"
	"net/http"

	"github.com/brightline5/shift-planner/backend/internal/cache"
	"github.com/brightline5/shift-planner/backend/internal/domain"
	"github.com/brightline5/shift-planner/backend/internal/forecast"
)

// GetPredictions 返回之后 horizon 天的需求预测和建议
// 结果按 (horizon, 当天日期, 历史数据指纹) 缓存在 redis 中，缓存不可用时直接计算
func (h *Handler) GetPredictions(w http.ResponseWriter, r *http.Request) {
	horizon := forecast.Horizon(r.URL.Query().Get("horizon"))
	switch horizon {
	case "":
		horizon = forecast.Horizon7Days
	case forecast.Horizon7Days, forecast.Horizon14Days, forecast.Horizon30Days:
	default:
		h.errorResponse(w, r, "horizon 必须为 7days、14days 或 30days")
		return
	}

	forecasts, err := h.repository.GetDemandForecasts("", "")
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	now := h.now()
	key := cache.Key(horizon, now.Format(domain.DateLayout), forecasts)

	if h.predictionCache != nil {
		cached, hit, err := h.predictionCache.Get(r.Context(), key)
		if err != nil {
			slog.Warn("无法读取预测缓存", "key", key, "error", err)
		}
		if hit {
			h.successResponse(w, r, "获取需求预测成功", cached)
			return
		}
	}

	predictions := h.engine.Predict(forecasts, horizon, now)
	result := &cache.Predictions{
		Horizon:         horizon,
		Predictions:     predictions,
		Recommendations: forecast.Recommend(predictions),
	}

	if h.predictionCache != nil {
		if err := h.predictionCache.Set(r.Context(), key, result); err != nil {
			slog.Warn("无法写入预测缓存", "key", key, "error", err)
		}
	}

	h.successResponse(w, r, "获取需求预测成功", result)
}

func (h *Handler) GetPredictionAccuracy(w http.ResponseWriter, r *http.Request) {
	forecasts, err := h.repository.GetDemandForecasts("", "")
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取预测准确率成功", h.engine.Accuracy(forecasts))
}
