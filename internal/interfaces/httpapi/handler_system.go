package httpapi

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/match-analysis/internal/usecase"
)

type healthDTO struct {
	Status       string `json:"status"`
	CacheBackend string `json:"cacheBackend"`
}

type cacheClearDTO struct {
	Cleared bool   `json:"cleared"`
	Backend string `json:"backend"`
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	backend := "none"
	if h.cache != nil {
		backend = h.cache.Backend()
	}
	writeSuccess(ctx, w, http.StatusOK, healthDTO{Status: "ok", CacheBackend: backend})
}

func (h *Handler) ClearCache(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ClearCache")
	defer span.End()

	if h.cache == nil {
		writeError(ctx, w, fmt.Errorf("%w: cache is not configured", usecase.ErrDependencyUnavailable))
		return
	}
	if !h.cache.Clear(ctx) {
		h.logger.WarnContext(ctx, "clear cache failed", "backend", h.cache.Backend())
		writeError(ctx, w, fmt.Errorf("%w: %s cache could not be cleared", usecase.ErrDependencyUnavailable, h.cache.Backend()))
		return
	}

	h.logger.InfoContext(ctx, "cache cleared", "backend", h.cache.Backend())
	writeSuccess(ctx, w, http.StatusOK, cacheClearDTO{Cleared: true, Backend: h.cache.Backend()})
}
