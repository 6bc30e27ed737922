package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/brightline5/shift-planner/backend/internal/domain"
	"github.com/brightline5/shift-planner/backend/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

func (h *Handler) GetShifts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := repository.ShiftFilter{
		Date:    query.Get("date"),
		StaffID: query.Get("staffId"),
	}

	if filter.Date != "" {
		if _, err := time.Parse(domain.DateLayout, filter.Date); err != nil {
			h.errorResponse(w, r, "日期必须为 YYYY-MM-DD 格式")
			return
		}
	}
	if filter.StaffID != "" {
		if _, err := uuid.Parse(filter.StaffID); err != nil {
			h.errorResponse(w, r, "员工ID无效")
			return
		}
	}

	shifts, err := h.repository.GetShifts(filter)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取班次列表成功", shifts)
}

// 班次引用的员工不存在时返回 true 并写入响应
func (h *Handler) handleShiftConstraintError(w http.ResponseWriter, r *http.Request, err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.ConstraintName == "shifts_staff_id_fkey" {
		h.errorResponse(w, r, "员工不存在")
		return true
	}
	return false
}

func (h *Handler) CreateShift(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StaffID   string `json:"staffId" validate:"required,uuid"`
		Date      string `json:"date" validate:"required,datetime=2006-01-02"`
		StartTime string `json:"startTime" validate:"required,datetime=15:04"`
		EndTime   string `json:"endTime" validate:"required,datetime=15:04"`
		Position  string `json:"position" validate:"required"`
		Status    string `json:"status" validate:"omitempty,oneof=scheduled confirmed completed cancelled"`
		Notes     string `json:"notes"`
	}

	if !h.readAndValidate(w, r, &req) {
		return
	}

	shift := &domain.Shift{
		StaffID:   req.StaffID,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Position:  req.Position,
		Status:    domain.ShiftStatusScheduled,
		Notes:     req.Notes,
	}
	if req.Status != "" {
		shift.Status = domain.ShiftStatus(req.Status)
	}

	if err := h.repository.CreateShift(shift); err != nil {
		if !h.handleShiftConstraintError(w, r, err) {
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "创建班次成功", shift)
}

func (h *Handler) GetShift(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)

	h.successResponse(w, r, "获取班次成功", shift)
}

func (h *Handler) UpdateShift(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)

	var req struct {
		StaffID   *string `json:"staffId" validate:"omitempty,uuid"`
		Date      *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
		StartTime *string `json:"startTime" validate:"omitempty,datetime=15:04"`
		EndTime   *string `json:"endTime" validate:"omitempty,datetime=15:04"`
		Position  *string `json:"position" validate:"omitempty,min=1"`
		Status    *string `json:"status" validate:"omitempty,oneof=scheduled confirmed completed cancelled"`
		Notes     *string `json:"notes"`
	}

	if !h.readAndValidate(w, r, &req) {
		return
	}

	if req.StaffID != nil {
		shift.StaffID = *req.StaffID
	}
	if req.Date != nil {
		shift.Date = *req.Date
	}
	if req.StartTime != nil {
		shift.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		shift.EndTime = *req.EndTime
	}
	if req.Position != nil {
		shift.Position = *req.Position
	}
	if req.Status != nil {
		shift.Status = domain.ShiftStatus(*req.Status)
	}
	if req.Notes != nil {
		shift.Notes = *req.Notes
	}

	if err := h.repository.UpdateShift(shift); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "班次已被修改，请重试")
		case h.handleShiftConstraintError(w, r, err):
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "更新班次成功", shift)
}

func (h *Handler) DeleteShift(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)

	if err := h.repository.DeleteShift(shift.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除班次成功", nil)
}
