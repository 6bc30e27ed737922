package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"time"

	"github.com/brightline5/shift-planner/backend/internal/config"
)

// ErrStaffAlreadyInactive 员工已经是离职状态
var ErrStaffAlreadyInactive = errors.New("staff already inactive")

//go:embed schema.sql
var schema string

type Repository struct {
	cfg    *config.Config
	dbpool *sql.DB
}

func NewRepository(cfg *config.Config, dbpool *sql.DB) *Repository {
	return &Repository{
		cfg:    cfg,
		dbpool: dbpool,
	}
}

// Migrate 创建所有不存在的表，可以重复执行
func (r *Repository) Migrate() error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, schema)
	return err
}

type scanner interface {
	Scan(dest ...any) error
}
