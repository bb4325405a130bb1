package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/angelmondragon/shopnex/api/responses"
	pkgerrors "github.com/angelmondragon/shopnex/pkg/errors"
	"github.com/angelmondragon/shopnex/pkg/logger"
	"github.com/angelmondragon/shopnex/pkg/storage"
)

const readyTimeout = 2 * time.Second

func HealthLive(env string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Shopnex-Env", env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the storage backend when it supports it. A failing
// backend reports 503 even though the cart keeps working in memory.
func HealthReady(env string, pinger storage.Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Shopnex-Env", env)
		if pinger != nil {
			ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
			defer cancel()
			if err := pinger.Ping(ctx); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.FromStorage(err, "cart storage unavailable"))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
