package handler

import (
	"fmt"
	"maps"
	"net/http"
	"strconv"

	"github.com/brightline5/shift-planner/backend/internal/domain"
	"github.com/brightline5/shift-planner/backend/internal/repository"
	"github.com/brightline5/shift-planner/backend/internal/scheduler"
	"github.com/brightline5/shift-planner/backend/internal/utils"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

func (h *Handler) GetStaffingNeeds(w http.ResponseWriter, r *http.Request) {
	demand, err := strconv.Atoi(r.URL.Query().Get("demand"))
	if err != nil || demand < 0 {
		h.errorResponse(w, r, "demand 必须为非负整数")
		return
	}

	slot := domain.Timeslot(r.URL.Query().Get("slot"))
	if !slot.Valid() {
		h.errorResponse(w, r, "slot 必须为 morning、afternoon 或 evening")
		return
	}

	h.successResponse(w, r, "计算人手需求成功", scheduler.StaffingNeeds(demand, slot))
}

type GenerateScheduleResponse struct {
	*scheduler.Result
	Persisted bool `json:"persisted"`
}

// GenerateSchedule 根据 [start, end] 内的需求预测和在职员工生成排班
// persist 为 true 时将生成的班次保存到数据库中
func (h *Handler) GenerateSchedule(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Start       string                 `json:"start" validate:"required,datetime=2006-01-02"`
		End         string                 `json:"end" validate:"required,datetime=2006-01-02"`
		Persist     bool                   `json:"persist"`
		Constraints *scheduler.Constraints `json:"constraints"`
	}

	// 请求中没有提供的约束使用默认值
	constraints := h.scheduler.Constraints()
	constraints.PreferredStaffPerPosition = maps.Clone(constraints.PreferredStaffPerPosition)
	req.Constraints = &constraints

	if !h.readAndValidate(w, r, &req) {
		return
	}
	if err := utils.ValidateDateRange(req.Start, req.End); err != nil {
		h.badRequest(w, r, err)
		return
	}

	sched := h.scheduler
	if req.Constraints != nil {
		sched = scheduler.New(*req.Constraints, scheduler.WithOptimizationDiscount(h.config.Scheduling.OptimizationDiscount))
	}

	staff, err := h.repository.GetAllStaff(false)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	forecasts, err := h.repository.GetDemandForecasts(req.Start, req.End)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	result := sched.Generate(staff, forecasts)

	if req.Persist && len(result.Shifts) > 0 {
		for _, shift := range result.Shifts {
			shift.ID = uuid.NewString()
		}
		if err := h.repository.CreateShifts(result.Shifts); err != nil {
			h.internalServerError(w, r, err)
			return
		}
	}

	if len(result.Violations) > 0 {
		h.notifyManager(r.Context(), domain.MailTypeStaffingShortage, domain.StaffingShortageMailData{
			Start:      req.Start,
			End:        req.End,
			Violations: result.Violations,
		})
	}

	h.successResponse(w, r, "生成排班成功", GenerateScheduleResponse{
		Result:    result,
		Persisted: req.Persist,
	})
}

type OptimizeScheduleResponse struct {
	*scheduler.Result
	OriginalShifts     int     `json:"originalShifts"`
	OptimizedShifts    int     `json:"optimizedShifts"`
	ExistingEfficiency float64 `json:"existingEfficiency"`
}

// OptimizeSchedule 将某天已有的排班与重新生成的排班进行比较
func (h *Handler) OptimizeSchedule(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date string `json:"date" validate:"required,datetime=2006-01-02"`
	}

	if !h.readAndValidate(w, r, &req) {
		return
	}

	existing, err := h.repository.GetShifts(repository.ShiftFilter{Date: req.Date})
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	staff, err := h.repository.GetAllStaff(false)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	forecasts, err := h.repository.GetDemandForecasts(req.Date, req.Date)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	result := h.scheduler.Optimize(existing, staff, forecasts)

	h.successResponse(w, r, "优化排班成功", OptimizeScheduleResponse{
		Result:             result,
		OriginalShifts:     len(existing),
		OptimizedShifts:    len(result.Shifts),
		ExistingEfficiency: h.scheduler.Efficiency(existing, staff),
	})
}

// FindCoverage 找出可以顶替空缺班次的在职员工，时薪低的在前
func (h *Handler) FindCoverage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date      string `json:"date" validate:"required,datetime=2006-01-02"`
		StartTime string `json:"startTime" validate:"required,datetime=15:04"`
		EndTime   string `json:"endTime" validate:"required,datetime=15:04"`
		Position  string `json:"position" validate:"required"`
	}

	if !h.readAndValidate(w, r, &req) {
		return
	}

	staff, err := h.repository.GetAllStaff(false)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	candidates := scheduler.FindCoverage(domain.MissingShift{
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Position:  req.Position,
	}, staff)

	h.successResponse(w, r, "查找顶班员工成功", candidates)
}

const exportSheet = "Schedule"

var exportHeader = []any{"Date", "Start", "End", "Staff", "Position", "Hours", "Hourly Rate", "Cost", "Status", "Notes"}

// ExportSchedule 将 [start, end] 内的班次导出为 xlsx
func (h *Handler) ExportSchedule(w http.ResponseWriter, r *http.Request) {
	start := r.URL.Query().Get("start")
	end := r.URL.Query().Get("end")
	if err := utils.ValidateDateRange(start, end); err != nil {
		h.badRequest(w, r, err)
		return
	}

	shifts, err := h.repository.GetShifts(repository.ShiftFilter{Start: start, End: end})
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 离职员工的历史班次也需要显示姓名
	staff, err := h.repository.GetAllStaff(true)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	f, err := buildScheduleWorkbook(shifts, staff)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="schedule_%s_%s.xlsx"`, start, end))
	if err := f.Write(w); err != nil {
		h.logInternalServerError(r, err)
	}
}

func buildScheduleWorkbook(shifts []*domain.Shift, staff []*domain.Staff) (*excelize.File, error) {
	staffByID := make(map[string]*domain.Staff, len(staff))
	for _, s := range staff {
		staffByID[s.ID] = s
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		f.Close()
		return nil, err
	}

	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		f.Close()
		return nil, err
	}

	totalHours, totalCost := 0.0, 0.0
	for i, shift := range shifts {
		name, rate := shift.StaffID, 0.0
		if s, ok := staffByID[shift.StaffID]; ok {
			name, rate = s.Name, s.HourlyRate
		}

		hours := scheduler.ShiftHours(shift.StartTime, shift.EndTime)
		cost := hours * rate
		totalHours += hours
		totalCost += cost

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		row := []any{shift.Date, shift.StartTime, shift.EndTime, name, shift.Position, hours, rate, cost, string(shift.Status), shift.Notes}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			f.Close()
			return nil, err
		}
	}

	// 合计行
	cell, err := excelize.CoordinatesToCellName(1, len(shifts)+2)
	if err != nil {
		f.Close()
		return nil, err
	}
	total := []any{"Total", nil, nil, nil, nil, totalHours, nil, totalCost}
	if err := f.SetSheetRow(exportSheet, cell, &total); err != nil {
		f.Close()
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, err
	}
	if err := f.SetCellStyle(exportSheet, "A1", "J1", bold); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.SetCellStyle(exportSheet, cell, cell, bold); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.SetColWidth(exportSheet, "A", "J", 14); err != nil {
		f.Close()
		return nil, err
	}

	return f, nil
}
