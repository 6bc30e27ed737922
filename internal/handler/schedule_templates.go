package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/brightline5/shift-planner/backend/internal/domain"
	"github.com/brightline5/shift-planner/backend/internal/utils"
	"github.com/jackc/pgx/v5/pgconn"
)

func (h *Handler) GetAllScheduleTemplates(w http.ResponseWriter, r *http.Request) {
	sts, err := h.repository.GetAllScheduleTemplates()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取所有排班模板成功", sts)
}

func (h *Handler) CreateScheduleTemplate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string                        `json:"name" validate:"required"`
		Description string                        `json:"description"`
		Template    map[string]domain.DayTemplate `json:"template" validate:"required"`
		IsDefault   bool                          `json:"isDefault"`
	}

	if !h.readAndValidate(w, r, &req) {
		return
	}
	if err := utils.ValidateScheduleTemplate(req.Template); err != nil {
		h.badRequest(w, r, err)
		return
	}

	st := &domain.ScheduleTemplate{
		Name:        req.Name,
		Description: req.Description,
		Template:    req.Template,
		IsDefault:   req.IsDefault,
	}

	if err := h.repository.CreateScheduleTemplate(st); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "schedule_templates_name_key":
			h.errorResponse(w, r, "模板名称已存在")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "创建排班模板成功", st)
}

func (h *Handler) GetDefaultScheduleTemplate(w http.ResponseWriter, r *http.Request) {
	st, err := h.repository.GetDefaultScheduleTemplate()
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.successResponse(w, r, "没有默认排班模板", nil)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "获取默认排班模板成功", st)
}

func (h *Handler) GetScheduleTemplate(w http.ResponseWriter, r *http.Request) {
	st := r.Context().Value(ScheduleTemplateCtx).(*domain.ScheduleTemplate)

	h.successResponse(w, r, "获取排班模板成功", st)
}
