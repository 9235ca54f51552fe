package controllers

import (
	"net/http"

	"github.com/cometcontrol/comet-backend/api/middleware"
	"github.com/cometcontrol/comet-backend/api/responses"
	"github.com/cometcontrol/comet-backend/api/validators"
	"github.com/cometcontrol/comet-backend/internal/submissions"
	pkgerrors "github.com/cometcontrol/comet-backend/pkg/errors"
	"github.com/cometcontrol/comet-backend/pkg/logger"
	"github.com/cometcontrol/comet-backend/pkg/types"
)

// SubmitContact handles POST /contact.
func SubmitContact(svc submissions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "submission service unavailable"))
			return
		}

		var payload types.ContactMessage
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.SubmitContact(r.Context(), middleware.ClientIP(r), payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteAck(w)
	}
}
