package handler

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/brightline5/shift-planner/backend/internal/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type ResponseWriter struct {
	http.ResponseWriter
	StatusCode int
}

func (rw *ResponseWriter) WriteHeader(statusCode int) {
	rw.StatusCode = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (h *Handler) logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &ResponseWriter{ResponseWriter: w, StatusCode: http.StatusOK}
		next.ServeHTTP(rw, r)
		duration := time.Since(start)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		metrics.HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(rw.StatusCode)).Inc()
		metrics.HTTPRequestDurationSeconds.WithLabelValues(r.Method, route).Observe(duration.Seconds())

		slog.Info("已处理请求", "status", rw.StatusCode, "ip", r.RemoteAddr, "method", r.Method, "path", r.URL.Path, "duration", duration)
	})
}

func (h *Handler) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				h.internalServerError(w, r, fmt.Errorf("panic: %v", err))
				stackTrace := string(debug.Stack())
				fmt.Print(stackTrace) // 这里如果用 slog 的话会很乱
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// 解析 cookie 中的 token，token 不存在或无效时返回错误
func (h *Handler) parseAuthCookie(r *http.Request) (*AuthClaims, error) {
	cookie, err := r.Cookie(authCookieName)
	if err != nil {
		return nil, err
	}

	claims := &AuthClaims{}
	_, err = jwt.ParseWithClaims(cookie.Value, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(h.config.JWT.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	return claims, nil
}

func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := h.parseAuthCookie(r)
		if err != nil {
			switch {
			case errors.Is(err, http.ErrNoCookie):
				h.unauthorized(w, r, "未登录")
			default:
				h.unauthorized(w, r, "无效的令牌")
			}
			return
		}

		if claims.Role != RoleManager {
			h.unauthorized(w, r, "权限不足")
			return
		}

		// 将 claims 中的 role 和 sub 附在 context 中
		ctx := r.Context()
		ctx = context.WithValue(ctx, RoleCtxKey, claims.Role)
		ctx = context.WithValue(ctx, SubCtxKey, claims.Subject)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// 路径中的 id 必须是合法的 uuid
func parseIDParam(r *http.Request) (string, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return "", false
	}
	return id.String(), true
}

func (h *Handler) staffInfo(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(r)
		if !ok {
			h.errorResponse(w, r, "员工ID无效")
			return
		}

		staff, err := h.repository.GetStaffByID(id)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.errorResponse(w, r, "员工不存在")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		ctx := context.WithValue(r.Context(), StaffCtx, staff)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) shiftInfo(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(r)
		if !ok {
			h.errorResponse(w, r, "班次ID无效")
			return
		}

		shift, err := h.repository.GetShiftByID(id)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.errorResponse(w, r, "班次不存在")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		ctx := context.WithValue(r.Context(), ShiftCtx, shift)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) demandForecast(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(r)
		if !ok {
			h.errorResponse(w, r, "预测ID无效")
			return
		}

		f, err := h.repository.GetDemandForecastByID(id)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.errorResponse(w, r, "预测不存在")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		ctx := context.WithValue(r.Context(), DemandForecastCtx, f)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) scheduleTemplate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(r)
		if !ok {
			h.errorResponse(w, r, "模板ID无效")
			return
		}

		st, err := h.repository.GetScheduleTemplateByID(id)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.errorResponse(w, r, "模板不存在")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		ctx := context.WithValue(r.Context(), ScheduleTemplateCtx, st)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) recommendation(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(r)
		if !ok {
			h.errorResponse(w, r, "建议ID无效")
			return
		}

		rec, err := h.repository.GetAiRecommendationByID(id)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.errorResponse(w, r, "建议不存在")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		ctx := context.WithValue(r.Context(), RecommendationCtx, rec)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
