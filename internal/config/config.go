package config

import (
	"errors"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Server      struct {
		Port            string `env:"PORT" envDefault:"3000"`
		ReadTimeout     int    `env:"READ_TIMEOUT" envDefault:"10"`
		WriteTimeout    int    `env:"WRITE_TIMEOUT" envDefault:"15"`
		IdleTimeout     int    `env:"IDLE_TIMEOUT" envDefault:"60"`
		ShutdownTimeout int    `env:"SHUTDOWN_TIMEOUT" envDefault:"10"`
	} `envPrefix:"SERVER_"`
	Database struct {
		DSN                string `env:"DSN,required"`
		ConnectTimeout     int    `env:"CONNECT_TIMEOUT" envDefault:"10"`
		QueryTimeout       int    `env:"QUERY_TIMEOUT" envDefault:"10"`
		TransactionTimeout int    `env:"TRANSACTION_TIMEOUT" envDefault:"20"`
		MaxOpenConns       int    `env:"MAX_OPEN_CONNS" envDefault:"10"`
		MaxIdleConns       int    `env:"MAX_IDLE_CONNS" envDefault:"10"`
		MaxIdleTime        int    `env:"MAX_IDLE_TIME" envDefault:"60"`
	} `envPrefix:"DATABASE_"`
	Manager struct {
		Password string `env:"PASSWORD,required"`
		Email    string `env:"EMAIL"` // 为空时不发送提醒邮件
	} `envPrefix:"MANAGER_"`
	JWT struct {
		Expiration int    `env:"EXPIRATION" envDefault:"43200"` // 12 小时
		Secret     string `env:"SECRET,required"`
	} `envPrefix:"JWT_"`
	Seed struct {
		StaffCount  int    `env:"STAFF_COUNT" envDefault:"20"`
		EmailDomain string `env:"EMAIL_DOMAIN" envDefault:"example.com"`
	} `envPrefix:"SEED_"`
	Email struct {
		SMTP struct {
			Username    string `env:"USERNAME,required"`
			Password    string `env:"PASSWORD,required"`
			Host        string `env:"HOST,required"`
			Port        int    `env:"PORT" envDefault:"465"`
			DialTimeout int    `env:"DIAL_TIMEOUT" envDefault:"10"`
		} `envPrefix:"SMTP_"`
		TemplateDir string `env:"TEMPLATE_DIR" envDefault:"templates"`
	} `envPrefix:"EMAIL_"`
	RabbitMQ struct {
		DSN            string `env:"DSN,required"`
		Queue          string `env:"QUEUE" envDefault:"email_queue"`
		PublishTimeout int    `env:"PUBLISH_TIMEOUT" envDefault:"10"`
	} `envPrefix:"RABBITMQ_"`
	Redis struct {
		Host                string `env:"HOST" envDefault:"localhost"`
		Port                int    `env:"PORT" envDefault:"6379"`
		Password            string `env:"PASSWORD"`
		ConnectTimeout      int    `env:"CONNECT_TIMEOUT" envDefault:"10"`
		OperationExpiration int    `env:"OPERATION_EXPIRATION" envDefault:"10"`
		PredictionTTL       int    `env:"PREDICTION_TTL" envDefault:"3600"` // 1 小时
	} `envPrefix:"REDIS_"`
	Scheduling struct {
		MinStaffPerShift     int     `env:"MIN_STAFF_PER_SHIFT" envDefault:"3"`
		MaxHoursPerWeek      int     `env:"MAX_HOURS_PER_WEEK" envDefault:"40"`
		OvertimeThreshold    int     `env:"OVERTIME_THRESHOLD" envDefault:"40"`
		OptimizationDiscount float64 `env:"OPTIMIZATION_DISCOUNT" envDefault:"0.05"`
	} `envPrefix:"SCHEDULING_"`
	Prediction struct {
		CostAccuracyFactor float64 `env:"COST_ACCURACY_FACTOR" envDefault:"1.05"`
	} `envPrefix:"PREDICTION_"`
}

// LoadConfig 从环境变量中加载配置，当前目录存在 .env 文件时先加载它
// .env 中的值不会覆盖已经存在的环境变量
func LoadConfig() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		aggErr := env.AggregateError{}
		if ok := errors.As(err, &aggErr); ok {
			// 只返回第一个错误使得日志更清晰
			return nil, aggErr.Errors[0]
		}
		return nil, err
	}

	return cfg, nil
}
