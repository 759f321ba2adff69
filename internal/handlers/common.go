package handlers

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/skyairrace/records-api/internal/cache"
	"github.com/skyairrace/records-api/internal/logic"
)

// hashToken creates a SHA256 hash of a token so it can be compared in constant time
func hashToken(token string) string {
	h := sha256.New()
	h.Write([]byte(token))
	return hex.EncodeToString(h.Sum(nil))
}

// Health check endpoint
// @Summary Liveness probe
// @Tags System
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
	})
}

// Ready check endpoint
// @Summary Readiness probe
// @Description Ready once a snapshot is loaded. Reports the Redis cache state when enabled.
// @Tags System
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /ready [get]
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	checks := map[string]bool{
		"snapshot": false,
		"cache":    h.cache.Ping(ctx) == nil,
	}
	body := map[string]interface{}{}

	if ds, err := h.snapshot.Current(); err == nil {
		checks["snapshot"] = true
		body["generation"] = ds.Generation()
		body["loaded_at"] = ds.LoadedAt()
		body["records"] = ds.RecordCount()
		body["challenge_records"] = ds.ChallengeRecordCount()
	}

	// The cache is optional; only the snapshot gates readiness.
	status := http.StatusOK
	if !checks["snapshot"] {
		status = http.StatusServiceUnavailable
	}
	body["ready"] = checks["snapshot"]
	body["checks"] = checks
	h.jsonResponse(w, status, body)
}

// AdminAuthMiddleware validates the admin token
func (h *Handler) AdminAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.adminToken == "" {
			h.errorResponse(w, http.StatusNotFound, "Admin endpoints are disabled")
			return
		}

		token := r.Header.Get("X-Admin-Token")
		if token == "" {
			token = strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		}
		if token == "" {
			h.errorResponse(w, http.StatusUnauthorized, "Missing admin token")
			return
		}

		if subtle.ConstantTimeCompare([]byte(hashToken(token)), []byte(h.adminToken)) != 1 {
			h.logger.Warnw("Rejected admin request", "remote", r.RemoteAddr, "path", r.URL.Path)
			h.errorResponse(w, http.StatusUnauthorized, "Invalid admin token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// dataset returns the current snapshot or writes the unavailable response.
func (h *Handler) dataset(w http.ResponseWriter) (*logic.Dataset, bool) {
	ds, err := h.snapshot.Current()
	if err != nil {
		h.errorResponse(w, http.StatusServiceUnavailable, "データがありません")
		return nil, false
	}
	return ds, true
}

// cachedJSON serves a view from the response cache, computing and storing
// it on a miss. The key covers the snapshot generation so a reload never
// serves a stale view.
func (h *Handler) cachedJSON(w http.ResponseWriter, r *http.Request, ds *logic.Dataset, compute func() (interface{}, error)) {
	ctx := r.Context()
	key := cache.Key(ds.Generation(), r.URL.Path, r.URL.Query().Encode())

	if body, ok := h.cache.Get(ctx, key); ok {
		w.Header().Set("X-Cache", "HIT")
		h.rawResponse(w, http.StatusOK, body)
		return
	}

	data, err := compute()
	if err != nil {
		h.viewError(w, err)
		return
	}
	body, err := json.Marshal(data)
	if err != nil {
		h.logger.Errorw("Failed to encode view", "path", r.URL.Path, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to encode response")
		return
	}
	h.cache.Set(context.WithoutCancel(ctx), key, body)
	if h.cache.Enabled() {
		w.Header().Set("X-Cache", "MISS")
	}
	h.rawResponse(w, http.StatusOK, body)
}

// viewError maps engine errors to responses. Selection errors carry the
// inline message the page shows next to its filter.
func (h *Handler) viewError(w http.ResponseWriter, err error) {
	var perr *paramError
	switch {
	case errors.As(err, &perr):
		h.errorResponse(w, perr.status, perr.msg)
	case errors.Is(err, logic.ErrNoVersions), errors.Is(err, logic.ErrNoControls), errors.Is(err, logic.ErrNoChallenge):
		h.errorResponse(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, logic.ErrUnknownRank):
		h.errorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, logic.ErrSnapshotUnavailable):
		h.errorResponse(w, http.StatusServiceUnavailable, "データがありません")
	default:
		h.logger.Errorw("Failed to build view", "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Internal error")
	}
}

func (h *Handler) rawResponse(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}

func (h *Handler) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) errorResponse(w http.ResponseWriter, status int, message string) {
	h.jsonResponse(w, status, map[string]string{"error": message})
}
