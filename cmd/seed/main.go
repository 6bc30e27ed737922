package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/brightline5/shift-planner/backend/internal/config"
	"github.com/brightline5/shift-planner/backend/internal/domain"
	"github.com/brightline5/shift-planner/backend/internal/repository"
	"github.com/brightline5/shift-planner/backend/internal/seed"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var start string
	var withActual bool

	flag.IntVar(&op, "op", 0, "要执行的操作 (1: 创建数据库表, 2: 插入随机员工, 3: 插入随机需求预测, 4: 插入默认排班模板)")
	flag.IntVar(&n, "n", 0, "要插入的员工数量或需求预测的天数，为 0 时使用配置中的员工数量或 14 天")
	flag.StringVar(&start, "start", "", "需求预测的起始日期 (YYYY-MM-DD)，默认为今天")
	flag.BoolVar(&withActual, "with-actual", false, "是否同时生成实际顾客数")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 读取配置文件
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法读取配置文件", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 创建数据库连接池
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("无法创建数据库连接池", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open 只是创建数据库连接池对象，并不会立即连接到数据库，因此需要显式地 ping 一下
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("无法连接到数据库", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	// 执行操作
	switch op {
	case 0:
		slog.Error("未指定操作")
	case 1:
		if err := repo.Migrate(); err != nil {
			slog.Error("无法创建数据库表", slog.String("error", err.Error()))
			return
		}
		slog.Info("创建数据库表成功")
	case 2:
		if n <= 0 {
			n = cfg.Seed.StaffCount
		}
		cnt := seed.SeedStaff(repo, n, cfg.Seed.EmailDomain)
		slog.Info("插入员工成功", slog.Int("count", cnt))
	case 3:
		if n <= 0 {
			n = 14
		}
		startDate := time.Now()
		if start != "" {
			startDate, err = time.Parse(domain.DateLayout, start)
			if err != nil {
				slog.Error("起始日期格式错误", slog.String("start", start))
				return
			}
		}
		cnt := seed.SeedDemandForecasts(repo, startDate, n, withActual)
		slog.Info("插入需求预测成功", slog.Int("count", cnt))
	case 4:
		st, err := seed.SeedDefaultTemplate(repo)
		if err != nil {
			slog.Error("无法插入默认排班模板", slog.String("error", err.Error()))
			return
		}
		slog.Info("插入默认排班模板成功", slog.String("id", st.ID))
	default:
		slog.Error("指定的操作非法")
	}
}
