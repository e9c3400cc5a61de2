package handler

import (
	"context"
	"net/http"

	"innkeep/pkg/config"
	pkghttp "innkeep/pkg/http"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type HealthHandler struct {
	cfg *config.Config
}

func NewHealthHandler(cfg *config.Config) *HealthHandler {
	return &HealthHandler{cfg: cfg}
}

func (h *HealthHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)
}

func (h *HealthHandler) Health(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	h.write(w, pkghttp.WriteSuccess(w, map[string]string{"status": "ok"}))
}

// Ready reports whether the service can reach its database; load balancers
// use it to gate traffic.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.MongoConnTimeout)
	defer cancel()

	if err := h.cfg.Client.Mongo.Ping(ctx, readpref.Primary()); err != nil {
		h.cfg.Log.Warn("Readiness check failed", "error", err)
		h.write(w, pkghttp.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unavailable",
		}))
		return
	}
	h.write(w, pkghttp.WriteSuccess(w, map[string]string{"status": "ready"}))
}

func (h *HealthHandler) write(w http.ResponseWriter, err error) {
	if err != nil {
		h.cfg.Log.Error("Failed to write health response", "error", err)
	}
}
