package controllers

import (
	"net/http"
	"time"

	"github.com/cometcontrol/comet-backend/api/middleware"
	"github.com/cometcontrol/comet-backend/api/responses"
	"github.com/cometcontrol/comet-backend/api/validators"
	"github.com/cometcontrol/comet-backend/internal/ratelimit"
	"github.com/cometcontrol/comet-backend/pkg/auth"
	"github.com/cometcontrol/comet-backend/pkg/config"
	pkgerrors "github.com/cometcontrol/comet-backend/pkg/errors"
	"github.com/cometcontrol/comet-backend/pkg/logger"
	"github.com/cometcontrol/comet-backend/pkg/security"
)

type adminLoginRequest struct {
	Password string `json:"password"`
}

// AdminLogin handles POST /api/admin/auth. Attempts are rate limited per
// client IP before the password is checked, so probing burns the window.
func AdminLogin(cfg config.AdminConfig, limiter *ratelimit.Limiter, policy ratelimit.Policy, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := middleware.ClientIP(r)

		result := limiter.Allow(policy, identity)
		if !result.Allowed {
			err := pkgerrors.New(pkgerrors.CodeRateLimit, "too many login attempts, please retry later").
				WithDetails(map[string]any{"retry_after_seconds": result.RetryAfter(time.Now())})
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload adminLoginRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if !security.VerifySharedSecret(payload.Password, cfg.Password) {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid password"))
			return
		}

		token, err := auth.MintAdminSession(cfg, time.Now())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to mint session"))
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     middleware.AdminSessionCookie,
			Value:    token,
			Path:     "/",
			MaxAge:   int(cfg.SessionTTL.Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		responses.WriteAck(w)
	}
}

// AdminLogout handles POST /api/admin/auth/logout by expiring the session
// cookie.
func AdminLogout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{
			Name:     middleware.AdminSessionCookie,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		responses.WriteAck(w)
	}
}
