package handlers

import (
	"net/http"

	"github.com/skyairrace/records-api/internal/logic"
)

const recentLimit = 5

// GetRanking returns the course ranking for a selection
// @Summary Course ranking
// @Description Filters records by course, versions, control methods and approval, optionally keeps each player's best record, then sorts. Absent parameters take the page defaults; a present but empty versions or controls list is rejected.
// @Tags Ranking
// @Produce json
// @Param category query string false "Category" default(本家)
// @Param course query string false "Course" default(No.1)
// @Param versions query string false "Comma separated versions (default all)"
// @Param controls query string false "Comma separated control methods (default all)"
// @Param approval query string false "all or approved" default(all)
// @Param mode query string false "all or best" default(best)
// @Param sort query string false "player, time, record_date or submitted_at" default(time)
// @Param order query string false "asc or desc" default(asc)
// @Param toggle query string false "Column header picked; flips or restarts the sort"
// @Success 200 {object} models.RankingView
// @Failure 400 {object} map[string]string "Invalid parameter"
// @Failure 422 {object} map[string]string "Empty multi-select"
// @Failure 503 {object} map[string]string "No snapshot loaded"
// @Router /ranking [get]
func (h *Handler) GetRanking(w http.ResponseWriter, r *http.Request) {
	ds, ok := h.dataset(w)
	if !ok {
		return
	}
	h.cachedJSON(w, r, ds, func() (interface{}, error) {
		sel, err := h.rankingSelection(r.URL.Query(), ds)
		if err != nil {
			return nil, err
		}
		return logic.BuildRanking(ds, sel)
	})
}

// GetRankingCount previews the record count of a ranking selection
// @Summary Ranking count preview
// @Description Same parameters as /ranking. An empty multi-select is reported with valid=false instead of an error status.
// @Tags Ranking
// @Produce json
// @Success 200 {object} models.CountPreview
// @Failure 400 {object} map[string]string "Invalid parameter"
// @Failure 503 {object} map[string]string "No snapshot loaded"
// @Router /ranking/count [get]
func (h *Handler) GetRankingCount(w http.ResponseWriter, r *http.Request) {
	ds, ok := h.dataset(w)
	if !ok {
		return
	}
	sel, err := h.rankingSelection(r.URL.Query(), ds)
	if err != nil {
		h.viewError(w, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, logic.PreviewCount(ds, sel))
}

// GetRecent returns the newest submissions
// @Summary Recent submissions
// @Tags Ranking
// @Produce json
// @Param limit query int false "Rows" default(5)
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Invalid parameter"
// @Failure 503 {object} map[string]string "No snapshot loaded"
// @Router /recent [get]
func (h *Handler) GetRecent(w http.ResponseWriter, r *http.Request) {
	ds, ok := h.dataset(w)
	if !ok {
		return
	}
	limit, err := parseIntParam(r.URL.Query(), "limit", recentLimit)
	if err == nil {
		err = h.validate(listQuery{Limit: limit})
	}
	if err != nil {
		h.viewError(w, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"rows": logic.RecentRows(ds, limit),
	})
}
