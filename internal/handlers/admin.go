package handlers

import (
	"net/http"
)

// ReloadSnapshot re-fetches the published snapshot
// @Summary Reload snapshot
// @Description Fetches both documents and swaps them in. On failure the previous snapshot keeps serving.
// @Tags Admin
// @Produce json
// @Security AdminToken
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string
// @Failure 502 {object} map[string]string "Fetch or decode failed"
// @Router /admin/reload [post]
func (h *Handler) ReloadSnapshot(w http.ResponseWriter, r *http.Request) {
	ds, err := h.reloader.Reload(r.Context())
	if err != nil {
		h.logger.Errorw("Manual snapshot reload failed", "error", err)
		h.errorResponse(w, http.StatusBadGateway, "Snapshot reload failed")
		return
	}

	h.logger.Infow("Manual snapshot reload", "generation", ds.Generation(), "records", ds.RecordCount())
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"generation":        ds.Generation(),
		"loaded_at":         ds.LoadedAt(),
		"records":           ds.RecordCount(),
		"challenge_records": ds.ChallengeRecordCount(),
	})
}
