package middleware

import (
	"net/http"

	"github.com/cometcontrol/comet-backend/api/responses"
	"github.com/cometcontrol/comet-backend/pkg/auth"
	"github.com/cometcontrol/comet-backend/pkg/config"
	pkgerrors "github.com/cometcontrol/comet-backend/pkg/errors"
	"github.com/cometcontrol/comet-backend/pkg/logger"
)

// AdminSessionCookie carries the signed admin session token.
const AdminSessionCookie = "admin_session"

// AdminAuth rejects requests that lack a valid admin session cookie.
func AdminAuth(cfg config.AdminConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(AdminSessionCookie)
			if err != nil || cookie.Value == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "admin session required"))
				return
			}

			if _, err := auth.ParseAdminSession(cfg, cookie.Value); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid admin session"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
