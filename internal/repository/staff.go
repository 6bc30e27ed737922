package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/brightline5/shift-planner/backend/internal/domain"
)

const staffColumns = `id, name, position, hourly_rate, email, phone, availability, skills, is_active, created_at, version`

func scanStaff(row scanner) (*domain.Staff, error) {
	s := &domain.Staff{}
	var availability, skills []byte

	dst := []any{&s.ID, &s.Name, &s.Position, &s.HourlyRate, &s.Email, &s.Phone, &availability, &skills, &s.IsActive, &s.CreatedAt, &s.Version}
	if err := row.Scan(dst...); err != nil {
		return nil, err
	}

	// availability 为 NULL 时保持 nil，表示员工随时有空
	if availability != nil {
		if err := json.Unmarshal(availability, &s.Availability); err != nil {
			return nil, err
		}
	}

	s.Skills = make([]string, 0)
	if skills != nil {
		if err := json.Unmarshal(skills, &s.Skills); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// 将 availability 和 skills 编码为 JSONB 参数，nil availability 写入 NULL
func encodeStaffJSON(s *domain.Staff) (any, []byte, error) {
	var availability any
	if s.Availability != nil {
		data, err := json.Marshal(s.Availability)
		if err != nil {
			return nil, nil, err
		}
		availability = data
	}

	skills := s.Skills
	if skills == nil {
		skills = make([]string, 0)
	}
	skillsData, err := json.Marshal(skills)
	if err != nil {
		return nil, nil, err
	}

	return availability, skillsData, nil
}

// GetAllStaff 按创建时间返回员工名单，排班时按这个顺序分配员工
func (r *Repository) GetAllStaff(includeInactive bool) ([]*domain.Staff, error) {
	query := `SELECT ` + staffColumns + ` FROM staff`
	if !includeInactive {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY created_at, id`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	staff := make([]*domain.Staff, 0)
	for rows.Next() {
		s, err := scanStaff(rows)
		if err != nil {
			return nil, err
		}
		staff = append(staff, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return staff, nil
}

func (r *Repository) GetStaffByID(id string) (*domain.Staff, error) {
	query := `SELECT ` + staffColumns + ` FROM staff WHERE id = $1`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	return scanStaff(r.dbpool.QueryRowContext(ctx, query, id))
}

func (r *Repository) CreateStaff(s *domain.Staff) error {
	query := `
		INSERT INTO staff (name, position, hourly_rate, email, phone, availability, skills, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, version
	`

	availability, skills, err := encodeStaffJSON(s)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	params := []any{s.Name, s.Position, s.HourlyRate, s.Email, s.Phone, availability, skills, s.IsActive}
	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(&s.ID, &s.CreatedAt, &s.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateStaff(s *domain.Staff) error {
	query := `
		UPDATE staff
		SET
			name = $1,
			position = $2,
			hourly_rate = $3,
			email = $4,
			phone = $5,
			availability = $6,
			skills = $7,
			is_active = $8,
			version = version + 1
		WHERE id = $9 AND version = $10
		RETURNING version
	`

	availability, skills, err := encodeStaffJSON(s)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	params := []any{s.Name, s.Position, s.HourlyRate, s.Email, s.Phone, availability, skills, s.IsActive, s.ID, s.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(&s.Version); err != nil {
		return err
	}

	return nil
}

// DeactivateStaff 将员工标记为离职，员工记录不会被删除
func (r *Repository) DeactivateStaff(s *domain.Staff) error {
	if !s.Deactivate() {
		return ErrStaffAlreadyInactive
	}

	query := `
		UPDATE staff
		SET is_active = FALSE, version = version + 1
		WHERE id = $1 AND version = $2
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if err := r.dbpool.QueryRowContext(ctx, query, s.ID, s.Version).Scan(&s.Version); err != nil {
		return err
	}

	return nil
}
