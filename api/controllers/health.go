package controllers

import (
	"net/http"

	"github.com/noormodest/storefront-backend/api/responses"
	"github.com/noormodest/storefront-backend/pkg/blobstore"
	"github.com/noormodest/storefront-backend/pkg/config"
	pkgerrors "github.com/noormodest/storefront-backend/pkg/errors"
	"github.com/noormodest/storefront-backend/pkg/logger"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-NoorModest-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

func HealthReady(cfg *config.Config, blobs blobstore.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-NoorModest-Env", cfg.App.Env)

		if pinger, ok := blobs.(blobstore.Pinger); ok {
			if err := pinger.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "blob store unreachable"))
				return
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
