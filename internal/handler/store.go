package handler

import (
	"context"

	"github.com/brightline5/shift-planner/backend/internal/cache"
	"github.com/brightline5/shift-planner/backend/internal/domain"
	"github.com/brightline5/shift-planner/backend/internal/repository"
)

// Store 是 handler 使用到的持久化操作，由 *repository.Repository 实现
type Store interface {
	GetAllStaff(includeInactive bool) ([]*domain.Staff, error)
	GetStaffByID(id string) (*domain.Staff, error)
	CreateStaff(s *domain.Staff) error
	UpdateStaff(s *domain.Staff) error
	DeactivateStaff(s *domain.Staff) error

	GetShifts(filter repository.ShiftFilter) ([]*domain.Shift, error)
	GetShiftByID(id string) (*domain.Shift, error)
	CreateShift(s *domain.Shift) error
	CreateShifts(shifts []*domain.Shift) error
	UpdateShift(s *domain.Shift) error
	DeleteShift(id string) error

	GetDemandForecasts(start, end string) ([]*domain.DemandForecast, error)
	GetDemandForecastByID(id string) (*domain.DemandForecast, error)
	CreateDemandForecast(f *domain.DemandForecast) error
	UpdateActualDemand(f *domain.DemandForecast) error

	GetAllScheduleTemplates() ([]*domain.ScheduleTemplate, error)
	GetScheduleTemplateByID(id string) (*domain.ScheduleTemplate, error)
	GetDefaultScheduleTemplate() (*domain.ScheduleTemplate, error)
	CreateScheduleTemplate(st *domain.ScheduleTemplate) error

	GetAiRecommendations(isRead *bool) ([]*domain.AiRecommendation, error)
	GetAiRecommendationByID(id string) (*domain.AiRecommendation, error)
	CreateAiRecommendation(rec *domain.AiRecommendation) error
	MarkAiRecommendationRead(id string) (*domain.AiRecommendation, error)
}

// Notifier 投递需要发送的邮件，由 *notify.Publisher 实现
type Notifier interface {
	Publish(ctx context.Context, msg domain.MailMessage) error
}

// PredictionCache 由 *cache.PredictionCache 实现
type PredictionCache interface {
	Get(ctx context.Context, key string) (*cache.Predictions, bool, error)
	Set(ctx context.Context, key string, p *cache.Predictions) error
}
