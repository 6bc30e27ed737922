// Package cache 使用 redis 缓存需求预测的结果
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/brightline5/shift-planner/backend/internal/domain"
	"github.com/brightline5/shift-planner/backend/internal/forecast"
	"github.com/brightline5/shift-planner/backend/internal/metrics"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// 用于计算历史数据指纹的命名空间
var fingerprintNamespace = uuid.MustParse("6f1c4f0e-9b1e-4c55-8c3f-2b7a52c0d4a1")

type Predictions struct {
	Horizon         forecast.Horizon          `json:"horizon"`
	Predictions     []forecast.Prediction     `json:"predictions"`
	Recommendations []forecast.Recommendation `json:"recommendations"`
}

type PredictionCache struct {
	rdb              *redis.Client
	ttl              time.Duration
	operationTimeout time.Duration
}

func NewPredictionCache(rdb *redis.Client, ttl, operationTimeout time.Duration) *PredictionCache {
	return &PredictionCache{
		rdb:              rdb,
		ttl:              ttl,
		operationTimeout: operationTimeout,
	}
}

// Key 由 horizon、预测的起始日期以及历史数据的指纹组成
// 历史数据发生任何变化时指纹都会改变，旧的缓存自然失效
func Key(horizon forecast.Horizon, day string, forecasts []*domain.DemandForecast) string {
	var sb strings.Builder
	for _, f := range forecasts {
		sb.WriteString(f.ID)
		sb.WriteByte('|')
		sb.WriteString(f.Date)
		sb.WriteByte('|')
		sb.WriteString(strconv.Itoa(f.PredictedDemand))
		sb.WriteByte('|')
		if f.ActualDemand != nil {
			sb.WriteString(strconv.Itoa(*f.ActualDemand))
		}
		sb.WriteByte(';')
	}

	fingerprint := uuid.NewSHA1(fingerprintNamespace, []byte(sb.String()))
	return fmt.Sprintf("predictions_%s_%s_%s", horizon, day, fingerprint)
}

// Get 缓存不存在时返回 (nil, false, nil)
func (c *PredictionCache) Get(ctx context.Context, key string) (*Predictions, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, c.operationTimeout)
	defer cancel()

	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.PredictionCacheTotal.WithLabelValues("miss").Inc()
			return nil, false, nil
		}
		return nil, false, err
	}

	p := &Predictions{}
	if err := json.Unmarshal(data, p); err != nil {
		return nil, false, err
	}

	metrics.PredictionCacheTotal.WithLabelValues("hit").Inc()
	return p, true, nil
}

func (c *PredictionCache) Set(ctx context.Context, key string, p *Predictions) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, c.operationTimeout)
	defer cancel()

	return c.rdb.Set(ctx, key, data, c.ttl).Err()
}
