package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/brightline5/shift-planner/backend/internal/domain"
)

const demandForecastColumns = `id, date, time_slot, predicted_demand, actual_demand, staffing_recommendation, confidence, created_at`

func scanDemandForecast(row scanner) (*domain.DemandForecast, error) {
	f := &domain.DemandForecast{}
	var actual sql.NullInt32

	dst := []any{&f.ID, &f.Date, &f.TimeSlot, &f.PredictedDemand, &actual, &f.StaffingRecommendation, &f.Confidence, &f.CreatedAt}
	if err := row.Scan(dst...); err != nil {
		return nil, err
	}

	if actual.Valid {
		v := int(actual.Int32)
		f.ActualDemand = &v
	}

	return f, nil
}

// GetDemandForecasts 返回 [start, end] 内的预测，start 和 end 为空时返回全部
// 同一天内按创建时间排序，排班时后创建的预测会覆盖先创建的
func (r *Repository) GetDemandForecasts(start, end string) ([]*domain.DemandForecast, error) {
	query := `SELECT ` + demandForecastColumns + ` FROM demand_forecasts`
	args := make([]any, 0, 2)
	if start != "" && end != "" {
		query += ` WHERE date >= $1 AND date <= $2`
		args = append(args, start, end)
	}
	query += ` ORDER BY date, created_at`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	forecasts := make([]*domain.DemandForecast, 0)
	for rows.Next() {
		f, err := scanDemandForecast(rows)
		if err != nil {
			return nil, err
		}
		forecasts = append(forecasts, f)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return forecasts, nil
}

func (r *Repository) GetDemandForecastByID(id string) (*domain.DemandForecast, error) {
	query := `SELECT ` + demandForecastColumns + ` FROM demand_forecasts WHERE id = $1`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	return scanDemandForecast(r.dbpool.QueryRowContext(ctx, query, id))
}

func (r *Repository) CreateDemandForecast(f *domain.DemandForecast) error {
	query := `
		INSERT INTO demand_forecasts (date, time_slot, predicted_demand, actual_demand, staffing_recommendation, confidence)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	var actual sql.NullInt32
	if f.ActualDemand != nil {
		actual = sql.NullInt32{Int32: int32(*f.ActualDemand), Valid: true}
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	params := []any{f.Date, f.TimeSlot, f.PredictedDemand, actual, f.StaffingRecommendation, f.Confidence}
	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(&f.ID, &f.CreatedAt); err != nil {
		return err
	}

	return nil
}

// UpdateActualDemand 记录某条预测对应的实际顾客数
func (r *Repository) UpdateActualDemand(f *domain.DemandForecast) error {
	query := `
		UPDATE demand_forecasts
		SET actual_demand = $1
		WHERE id = $2
	`

	var actual sql.NullInt32
	if f.ActualDemand != nil {
		actual = sql.NullInt32{Int32: int32(*f.ActualDemand), Valid: true}
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	res, err := r.dbpool.ExecContext(ctx, query, actual, f.ID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}
