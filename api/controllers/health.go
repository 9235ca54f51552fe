package controllers

import (
	"context"
	"net/http"

	"go.uber.org/multierr"

	"github.com/cometcontrol/comet-backend/api/responses"
	"github.com/cometcontrol/comet-backend/pkg/config"
	pkgerrors "github.com/cometcontrol/comet-backend/pkg/errors"
	"github.com/cometcontrol/comet-backend/pkg/logger"
)

// CatalogPinger reports whether the product catalog is readable.
type CatalogPinger interface {
	Ping() error
}

// StoragePinger reports whether the upload store is writable.
type StoragePinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Comet-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

func HealthReady(cfg *config.Config, logg *logger.Logger, catalog CatalogPinger, storage StoragePinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Comet-Env", cfg.App.Env)

		var err error
		if catalog != nil {
			err = multierr.Append(err, catalog.Ping())
		}
		if storage != nil {
			err = multierr.Append(err, storage.Ping(r.Context()))
		}

		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "dependencies not ready"))
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
