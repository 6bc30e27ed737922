package handler

import (
	"time"

	"github.com/brightline5/shift-planner/backend/internal/config"
	"github.com/brightline5/shift-planner/backend/internal/forecast"
	"github.com/brightline5/shift-planner/backend/internal/metrics"
	"github.com/brightline5/shift-planner/backend/internal/scheduler"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/crypto/bcrypt"
)

type Handler struct {
	validate            *validator.Validate
	config              *config.Config
	repository          Store
	translator          ut.Translator
	notifier            Notifier
	predictionCache     PredictionCache
	scheduler           *scheduler.Scheduler
	engine              *forecast.Engine
	managerPasswordHash []byte
	now                 func() time.Time

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo Store, notifier Notifier, predictionCache PredictionCache) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	// 经理密码只在内存中保存哈希值
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(cfg.Manager.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &Handler{
		validate:            validate,
		config:              cfg,
		repository:          repo,
		translator:          trans,
		notifier:            notifier,
		predictionCache:     predictionCache,
		scheduler:           scheduler.New(constraintsFromConfig(cfg), scheduler.WithOptimizationDiscount(cfg.Scheduling.OptimizationDiscount)),
		engine:              forecast.NewEngine(cfg.Prediction.CostAccuracyFactor),
		managerPasswordHash: passwordHash,
		now:                 time.Now,

		Mux: chi.NewRouter(),
	}, nil
}

func constraintsFromConfig(cfg *config.Config) scheduler.Constraints {
	c := scheduler.DefaultConstraints()
	c.MinStaffPerShift = cfg.Scheduling.MinStaffPerShift
	c.MaxHoursPerWeek = cfg.Scheduling.MaxHoursPerWeek
	c.OvertimeThreshold = cfg.Scheduling.OvertimeThreshold
	return c
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	// 认证相关
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Get("/check", h.CheckAuth)
	})

	// 以下 API 必须要在经理登录后才允许调用
	h.Mux.Route("/api", func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/staff", func(r chi.Router) {
			r.Get("/", h.GetAllStaff)
			r.Post("/", h.CreateStaff)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.staffInfo)
				r.Get("/", h.GetStaff)
				r.Patch("/", h.UpdateStaff)
				r.Delete("/", h.DeactivateStaff)
			})
		})

		r.Route("/shifts", func(r chi.Router) {
			r.Get("/", h.GetShifts)
			r.Post("/", h.CreateShift)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.shiftInfo)
				r.Get("/", h.GetShift)
				r.Patch("/", h.UpdateShift)
				r.Delete("/", h.DeleteShift)
			})
		})

		r.Route("/demand-forecasts", func(r chi.Router) {
			r.Get("/", h.GetDemandForecasts)
			r.Post("/", h.CreateDemandForecast)
			r.With(h.demandForecast).Patch("/{id}/actual", h.UpdateActualDemand)
		})

		r.Route("/schedule-templates", func(r chi.Router) {
			r.Get("/", h.GetAllScheduleTemplates)
			r.Post("/", h.CreateScheduleTemplate)
			r.Get("/default", h.GetDefaultScheduleTemplate)
			r.With(h.scheduleTemplate).Get("/{id}", h.GetScheduleTemplate)
		})

		r.Route("/recommendations", func(r chi.Router) {
			r.Get("/", h.GetRecommendations)
			r.Post("/", h.CreateRecommendation)
			r.Post("/generate", h.GenerateRecommendations)
			r.With(h.recommendation).Patch("/{id}/read", h.MarkRecommendationRead)
		})

		r.Route("/schedule", func(r chi.Router) {
			r.Get("/staffing-needs", h.GetStaffingNeeds)
			r.Post("/generate", h.GenerateSchedule)
			r.Post("/optimize", h.OptimizeSchedule)
			r.Post("/coverage", h.FindCoverage)
			r.Get("/export", h.ExportSchedule)
		})

		r.Route("/predictions", func(r chi.Router) {
			r.Get("/", h.GetPredictions)
			r.Get("/accuracy", h.GetPredictionAccuracy)
		})

		r.Get("/analytics/metrics", h.GetAnalyticsMetrics)
	})
}
