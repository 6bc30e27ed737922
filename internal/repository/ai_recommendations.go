package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/brightline5/shift-planner/backend/internal/domain"
)

const aiRecommendationColumns = `id, type, title, description, priority, is_read, data, created_at`

func scanAiRecommendation(row scanner) (*domain.AiRecommendation, error) {
	rec := &domain.AiRecommendation{}
	var data []byte

	dst := []any{&rec.ID, &rec.Type, &rec.Title, &rec.Description, &rec.Priority, &rec.IsRead, &data, &rec.CreatedAt}
	if err := row.Scan(dst...); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(data, &rec.Data); err != nil {
		return nil, err
	}

	return rec, nil
}

// GetAiRecommendations 按创建时间倒序返回建议，isRead 为 nil 时不过滤
func (r *Repository) GetAiRecommendations(isRead *bool) ([]*domain.AiRecommendation, error) {
	query := `SELECT ` + aiRecommendationColumns + ` FROM ai_recommendations`
	args := make([]any, 0, 1)
	if isRead != nil {
		query += ` WHERE is_read = $1`
		args = append(args, *isRead)
	}
	query += ` ORDER BY created_at DESC`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recs := make([]*domain.AiRecommendation, 0)
	for rows.Next() {
		rec, err := scanAiRecommendation(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return recs, nil
}

func (r *Repository) GetAiRecommendationByID(id string) (*domain.AiRecommendation, error) {
	query := `SELECT ` + aiRecommendationColumns + ` FROM ai_recommendations WHERE id = $1`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	return scanAiRecommendation(r.dbpool.QueryRowContext(ctx, query, id))
}

func (r *Repository) CreateAiRecommendation(rec *domain.AiRecommendation) error {
	query := `
		INSERT INTO ai_recommendations (type, title, description, priority, is_read, data)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	data, err := json.Marshal(rec.Data)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	params := []any{rec.Type, rec.Title, rec.Description, rec.Priority, rec.IsRead, data}
	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(&rec.ID, &rec.CreatedAt); err != nil {
		return err
	}

	return nil
}

// MarkAiRecommendationRead 返回已读后的建议，建议不存在时返回 sql.ErrNoRows
func (r *Repository) MarkAiRecommendationRead(id string) (*domain.AiRecommendation, error) {
	query := `
		UPDATE ai_recommendations
		SET is_read = TRUE
		WHERE id = $1
		RETURNING ` + aiRecommendationColumns

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	return scanAiRecommendation(r.dbpool.QueryRowContext(ctx, query, id))
}
