package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/brightline5/shift-planner/backend/internal/domain"
)

// ShiftFilter 的空字段表示不过滤
type ShiftFilter struct {
	Date    string
	Start   string
	End     string
	StaffID string
}

const shiftColumns = `id, staff_id, date, start_time, end_time, position, status, notes, created_at, version`

func scanShift(row scanner) (*domain.Shift, error) {
	s := &domain.Shift{}
	dst := []any{&s.ID, &s.StaffID, &s.Date, &s.StartTime, &s.EndTime, &s.Position, &s.Status, &s.Notes, &s.CreatedAt, &s.Version}
	if err := row.Scan(dst...); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *Repository) GetShifts(filter ShiftFilter) ([]*domain.Shift, error) {
	conditions := make([]string, 0)
	args := make([]any, 0)

	addCondition := func(cond string, arg any) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}

	if filter.Date != "" {
		addCondition("date = $%d", filter.Date)
	}
	if filter.Start != "" {
		addCondition("date >= $%d", filter.Start)
	}
	if filter.End != "" {
		addCondition("date <= $%d", filter.End)
	}
	if filter.StaffID != "" {
		addCondition("staff_id = $%d", filter.StaffID)
	}

	query := `SELECT ` + shiftColumns + ` FROM shifts`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY date, start_time, created_at`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shifts := make([]*domain.Shift, 0)
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, err
		}
		shifts = append(shifts, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return shifts, nil
}

func (r *Repository) GetShiftByID(id string) (*domain.Shift, error) {
	query := `SELECT ` + shiftColumns + ` FROM shifts WHERE id = $1`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	return scanShift(r.dbpool.QueryRowContext(ctx, query, id))
}

func (r *Repository) CreateShift(s *domain.Shift) error {
	query := `
		INSERT INTO shifts (staff_id, date, start_time, end_time, position, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	params := []any{s.StaffID, s.Date, s.StartTime, s.EndTime, s.Position, s.Status, s.Notes}
	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(&s.ID, &s.CreatedAt, &s.Version); err != nil {
		return err
	}

	return nil
}

// CreateShifts 在同一个事务中保存自动生成的班次，要么全部成功要么全部失败
// 班次的 id 由调用方预先生成
func (r *Repository) CreateShifts(shifts []*domain.Shift) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO shifts (id, staff_id, date, start_time, end_time, position, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, version
	`
	for _, s := range shifts {
		params := []any{s.ID, s.StaffID, s.Date, s.StartTime, s.EndTime, s.Position, s.Status, s.Notes}
		if err := tx.QueryRowContext(ctx, query, params...).Scan(&s.CreatedAt, &s.Version); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateShift(s *domain.Shift) error {
	query := `
		UPDATE shifts
		SET
			staff_id = $1,
			date = $2,
			start_time = $3,
			end_time = $4,
			position = $5,
			status = $6,
			notes = $7,
			version = version + 1
		WHERE id = $8 AND version = $9
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	params := []any{s.StaffID, s.Date, s.StartTime, s.EndTime, s.Position, s.Status, s.Notes, s.ID, s.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(&s.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteShift(id string) error {
	query := `
		DELETE FROM shifts WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}
