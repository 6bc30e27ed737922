package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/brightline5/shift-planner/backend/internal/domain"
)

const scheduleTemplateColumns = `id, name, description, template, is_default, created_at`

func scanScheduleTemplate(row scanner) (*domain.ScheduleTemplate, error) {
	st := &domain.ScheduleTemplate{}
	var template []byte

	dst := []any{&st.ID, &st.Name, &st.Description, &template, &st.IsDefault, &st.CreatedAt}
	if err := row.Scan(dst...); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(template, &st.Template); err != nil {
		return nil, err
	}

	return st, nil
}

func (r *Repository) GetAllScheduleTemplates() ([]*domain.ScheduleTemplate, error) {
	query := `SELECT ` + scheduleTemplateColumns + ` FROM schedule_templates ORDER BY created_at`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	templates := make([]*domain.ScheduleTemplate, 0)
	for rows.Next() {
		st, err := scanScheduleTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, st)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return templates, nil
}

func (r *Repository) GetScheduleTemplateByID(id string) (*domain.ScheduleTemplate, error) {
	query := `SELECT ` + scheduleTemplateColumns + ` FROM schedule_templates WHERE id = $1`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	return scanScheduleTemplate(r.dbpool.QueryRowContext(ctx, query, id))
}

// GetDefaultScheduleTemplate 没有默认模板时返回 sql.ErrNoRows
func (r *Repository) GetDefaultScheduleTemplate() (*domain.ScheduleTemplate, error) {
	query := `SELECT ` + scheduleTemplateColumns + ` FROM schedule_templates WHERE is_default LIMIT 1`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	return scanScheduleTemplate(r.dbpool.QueryRowContext(ctx, query))
}

// CreateScheduleTemplate 新模板为默认模板时，其它模板会被取消默认
func (r *Repository) CreateScheduleTemplate(st *domain.ScheduleTemplate) error {
	template, err := json.Marshal(st.Template)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if st.IsDefault {
		if _, err := tx.ExecContext(ctx, `UPDATE schedule_templates SET is_default = FALSE WHERE is_default`); err != nil {
			return err
		}
	}

	query := `
		INSERT INTO schedule_templates (name, description, template, is_default)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	params := []any{st.Name, st.Description, template, st.IsDefault}
	if err := tx.QueryRowContext(ctx, query, params...).Scan(&st.ID, &st.CreatedAt); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}
