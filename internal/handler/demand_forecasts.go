package handler

import (
	"net/http"

	"github.com/brightline5/shift-planner/backend/internal/domain"
	"github.com/brightline5/shift-planner/backend/internal/utils"
)

// GetDemandForecasts start 和 end 需要同时提供，否则返回全部预测
func (h *Handler) GetDemandForecasts(w http.ResponseWriter, r *http.Request) {
	start := r.URL.Query().Get("start")
	end := r.URL.Query().Get("end")

	if start != "" && end != "" {
		if err := utils.ValidateDateRange(start, end); err != nil {
			h.badRequest(w, r, err)
			return
		}
	} else {
		start, end = "", ""
	}

	forecasts, err := h.repository.GetDemandForecasts(start, end)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取需求预测成功", forecasts)
}

func (h *Handler) CreateDemandForecast(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date                   string  `json:"date" validate:"required,datetime=2006-01-02"`
		TimeSlot               string  `json:"timeSlot" validate:"required,oneof=morning afternoon evening"`
		PredictedDemand        int     `json:"predictedDemand" validate:"gte=0"`
		ActualDemand           *int    `json:"actualDemand" validate:"omitempty,gte=0"`
		StaffingRecommendation *int    `json:"staffingRecommendation" validate:"omitempty,gte=0"`
		Confidence             float64 `json:"confidence" validate:"gte=0,lte=100"`
	}

	if !h.readAndValidate(w, r, &req) {
		return
	}

	f := &domain.DemandForecast{
		Date:            req.Date,
		TimeSlot:        domain.Timeslot(req.TimeSlot),
		PredictedDemand: req.PredictedDemand,
		ActualDemand:    req.ActualDemand,
		Confidence:      req.Confidence,
	}

	// 没有提供建议人数时按每名员工服务 15 位顾客计算
	if req.StaffingRecommendation != nil {
		f.StaffingRecommendation = *req.StaffingRecommendation
	} else {
		f.StaffingRecommendation = domain.StaffingFor(req.PredictedDemand)
	}

	if err := h.repository.CreateDemandForecast(f); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "创建需求预测成功", f)
}

// UpdateActualDemand 记录实际顾客数，用于计算预测准确率
func (h *Handler) UpdateActualDemand(w http.ResponseWriter, r *http.Request) {
	f := r.Context().Value(DemandForecastCtx).(*domain.DemandForecast)

	var req struct {
		ActualDemand *int `json:"actualDemand" validate:"required,gte=0"`
	}

	if !h.readAndValidate(w, r, &req) {
		return
	}

	f.ActualDemand = req.ActualDemand

	if err := h.repository.UpdateActualDemand(f); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "记录实际顾客数成功", f)
}
