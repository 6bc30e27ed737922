package handler

type ContextKey string

var (
	RoleCtxKey          ContextKey = "role"
	SubCtxKey           ContextKey = "sub"
	StaffCtx            ContextKey = "staff"
	ShiftCtx            ContextKey = "shift"
	DemandForecastCtx   ContextKey = "demandForecast"
	ScheduleTemplateCtx ContextKey = "scheduleTemplate"
	RecommendationCtx   ContextKey = "recommendation"
)
