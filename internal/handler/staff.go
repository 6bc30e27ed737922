package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/brightline5/shift-planner/backend/internal/domain"
	"github.com/brightline5/shift-planner/backend/internal/repository"
	"github.com/brightline5/shift-planner/backend/internal/utils"
	"github.com/jackc/pgx/v5/pgconn"
)

func (h *Handler) GetAllStaff(w http.ResponseWriter, r *http.Request) {
	includeInactive := r.URL.Query().Get("includeInactive") == "true"

	staff, err := h.repository.GetAllStaff(includeInactive)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取员工列表成功", staff)
}

// 员工邮箱重复时返回 true 并写入响应
func (h *Handler) handleStaffConstraintError(w http.ResponseWriter, r *http.Request, err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.ConstraintName == "staff_email_key" {
		h.errorResponse(w, r, "邮箱已存在")
		return true
	}
	return false
}

func (h *Handler) CreateStaff(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name         string              `json:"name" validate:"required"`
		Position     string              `json:"position" validate:"required"`
		HourlyRate   float64             `json:"hourlyRate" validate:"gt=0"`
		Email        string              `json:"email" validate:"required,email"`
		Phone        string              `json:"phone"`
		Availability domain.Availability `json:"availability"`
		Skills       []string            `json:"skills"`
		IsActive     *bool               `json:"isActive"`
	}

	if !h.readAndValidate(w, r, &req) {
		return
	}
	if err := utils.ValidateAvailability(req.Availability); err != nil {
		h.badRequest(w, r, err)
		return
	}

	staff := &domain.Staff{
		Name:         req.Name,
		Position:     req.Position,
		HourlyRate:   req.HourlyRate,
		Email:        req.Email,
		Phone:        req.Phone,
		Availability: req.Availability,
		Skills:       req.Skills,
		IsActive:     true,
	}
	if staff.Skills == nil {
		staff.Skills = make([]string, 0)
	}
	if req.IsActive != nil {
		staff.IsActive = *req.IsActive
	}

	if err := h.repository.CreateStaff(staff); err != nil {
		if !h.handleStaffConstraintError(w, r, err) {
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "创建员工成功", staff)
}

func (h *Handler) GetStaff(w http.ResponseWriter, r *http.Request) {
	staff := r.Context().Value(StaffCtx).(*domain.Staff)

	h.successResponse(w, r, "获取员工信息成功", staff)
}

func (h *Handler) UpdateStaff(w http.ResponseWriter, r *http.Request) {
	staff := r.Context().Value(StaffCtx).(*domain.Staff)

	// 未提供的字段保持不变
	var req struct {
		Name         *string              `json:"name" validate:"omitempty,min=1"`
		Position     *string              `json:"position" validate:"omitempty,min=1"`
		HourlyRate   *float64             `json:"hourlyRate" validate:"omitempty,gt=0"`
		Email        *string              `json:"email" validate:"omitempty,email"`
		Phone        *string              `json:"phone"`
		Availability *domain.Availability `json:"availability"`
		Skills       []string             `json:"skills"`
		IsActive     *bool                `json:"isActive"`
	}

	if !h.readAndValidate(w, r, &req) {
		return
	}

	if req.Name != nil {
		staff.Name = *req.Name
	}
	if req.Position != nil {
		staff.Position = *req.Position
	}
	if req.HourlyRate != nil {
		staff.HourlyRate = *req.HourlyRate
	}
	if req.Email != nil {
		staff.Email = *req.Email
	}
	if req.Phone != nil {
		staff.Phone = *req.Phone
	}
	if req.Availability != nil {
		if err := utils.ValidateAvailability(*req.Availability); err != nil {
			h.badRequest(w, r, err)
			return
		}
		staff.Availability = *req.Availability
	}
	if req.Skills != nil {
		staff.Skills = req.Skills
	}
	if req.IsActive != nil {
		staff.IsActive = *req.IsActive
	}

	if err := h.repository.UpdateStaff(staff); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "员工信息已被修改，请重试")
		case h.handleStaffConstraintError(w, r, err):
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "更新员工信息成功", staff)
}

// DeactivateStaff 员工不会被删除，只会被标记为离职，已有的班次仍然保留
func (h *Handler) DeactivateStaff(w http.ResponseWriter, r *http.Request) {
	staff := r.Context().Value(StaffCtx).(*domain.Staff)

	if err := h.repository.DeactivateStaff(staff); err != nil {
		switch {
		case errors.Is(err, repository.ErrStaffAlreadyInactive):
			h.errorResponse(w, r, "员工已离职")
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "员工信息已被修改，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "员工已标记为离职", staff)
}
