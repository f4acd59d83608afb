package httpapi

import (
	"context"
	"net/http"
	"time"

	"superapp-be/internal/auth"
	"superapp-be/internal/logger"
	"superapp-be/internal/metrics"
	"superapp-be/internal/middleware"
	"superapp-be/internal/session"
	"superapp-be/internal/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

const requestTimeout = 15 * time.Second

type Deps struct {
	Registry      *session.Registry
	OTP           *auth.OTPService
	Tokens        middleware.TokenParser
	Limiter       *middleware.RateLimiter
	AllowedOrigin string
	// InternalKey is the X-Service-Auth secret of trusted services. When set,
	// /metrics is only served to them.
	InternalKey string
	// Health reports backing store reachability; nil means always healthy.
	Health func(ctx context.Context) error
}

func NewRouter(d Deps) *chi.Mux {
	h := &Handler{reg: d.Registry, otp: d.OTP}

	r := chi.NewRouter()
	r.Use(logger.RequestIDMiddleware, middleware.InternalService(d.InternalKey), chimw.RealIP, middleware.Logging, chimw.Recoverer)
	r.Use(chimw.Timeout(requestTimeout))
	if d.AllowedOrigin != "" {
		r.Use(middleware.CORS(d.AllowedOrigin))
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if d.Health != nil {
			if err := d.Health(r.Context()); err != nil {
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		if d.InternalKey != "" && !utils.IsInternalRequest(r.Context()) {
			utils.WriteJSONError(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
			return
		}
		writeJSON(w, http.StatusOK, metrics.Snapshot())
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(d.Tokens))
		if d.Limiter != nil {
			r.Use(d.Limiter.Handler)
		}

		r.Post("/auth/otp", h.requestOTP)
		r.Post("/auth/otp/verify", h.verifyOTP)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireUser)
			r.Get("/me", h.me)
			h.registerCart(r)
			h.registerOrders(r)
			h.registerLiked(r)
			h.registerReviews(r)
			h.registerRides(r)
		})
	})

	return r
}
