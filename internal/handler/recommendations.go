package handler

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/brightline5/shift-planner/backend/internal/domain"
	"github.com/brightline5/shift-planner/backend/internal/forecast"
)

func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	var isRead *bool
	if v := r.URL.Query().Get("isRead"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			h.errorResponse(w, r, "isRead 必须为 true 或 false")
			return
		}
		isRead = &b
	}

	recs, err := h.repository.GetAiRecommendations(isRead)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取建议列表成功", recs)
}

func (h *Handler) CreateRecommendation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Type        string                    `json:"type" validate:"required,oneof=optimization cost_reduction training alert"`
		Title       string                    `json:"title" validate:"required"`
		Description string                    `json:"description" validate:"required"`
		Priority    string                    `json:"priority" validate:"omitempty,oneof=low medium high critical"`
		Data        domain.RecommendationData `json:"data"`
	}

	if !h.readAndValidate(w, r, &req) {
		return
	}

	rec := &domain.AiRecommendation{
		Type:        domain.RecommendationType(req.Type),
		Title:       req.Title,
		Description: req.Description,
		Priority:    domain.PriorityMedium,
		Data:        req.Data,
	}
	if req.Priority != "" {
		rec.Priority = domain.Priority(req.Priority)
	}

	if err := h.repository.CreateAiRecommendation(rec); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "创建建议成功", rec)
}

func (h *Handler) MarkRecommendationRead(w http.ResponseWriter, r *http.Request) {
	rec := r.Context().Value(RecommendationCtx).(*domain.AiRecommendation)

	updated, err := h.repository.MarkAiRecommendationRead(rec.ID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "建议不存在")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "已标记为已读", updated)
}

// GenerateRecommendations 根据需求预测生成建议并保存，高优先级的建议会通过邮件通知经理
func (h *Handler) GenerateRecommendations(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Horizon string `json:"horizon" validate:"omitempty,oneof=7days 14days 30days"`
	}

	if !h.readAndValidate(w, r, &req) {
		return
	}

	horizon := forecast.Horizon7Days
	if req.Horizon != "" {
		horizon = forecast.Horizon(req.Horizon)
	}

	forecasts, err := h.repository.GetDemandForecasts("", "")
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	predictions := h.engine.Predict(forecasts, horizon, h.now())

	saved := make([]*domain.AiRecommendation, 0)
	for _, rc := range forecast.Recommend(predictions) {
		rec := &domain.AiRecommendation{
			Type:        rc.Category.RecommendationType(),
			Title:       rc.Title,
			Description: rc.Description,
			Priority:    rc.Priority,
			Data: domain.RecommendationData{
				Category: string(rc.Category),
				Impact:   rc.Impact,
				Days:     rc.Days,
				Horizon:  string(horizon),
			},
		}

		if err := h.repository.CreateAiRecommendation(rec); err != nil {
			h.internalServerError(w, r, err)
			return
		}
		saved = append(saved, rec)

		if rec.Priority == domain.PriorityHigh || rec.Priority == domain.PriorityCritical {
			h.notifyManager(r.Context(), domain.MailTypeRecommendationAlert, domain.RecommendationAlertMailData{
				Title:       rec.Title,
				Description: rec.Description,
				Priority:    string(rec.Priority),
				Impact:      rc.Impact,
			})
		}
	}

	h.successResponse(w, r, "生成建议成功", saved)
}

// notifyManager 向经理发送提醒邮件，没有配置经理邮箱时直接跳过
// 邮件投递失败不影响请求本身，只记录日志
func (h *Handler) notifyManager(ctx context.Context, mailType string, data any) {
	if h.config.Manager.Email == "" || h.notifier == nil {
		return
	}

	msg := domain.MailMessage{
		Type: mailType,
		To:   h.config.Manager.Email,
		Data: data,
	}
	if err := h.notifier.Publish(ctx, msg); err != nil {
		slog.Error("无法投递提醒邮件", "type", mailType, "error", err)
	}
}
