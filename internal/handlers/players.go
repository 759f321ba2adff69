package handlers

import (
	"net/http"

	"github.com/skyairrace/records-api/internal/logic"
)

// SearchPlayers suggests player identifiers
// @Summary Player search
// @Description Case-insensitive substring match over player identifiers. An empty query returns no suggestions.
// @Tags Players
// @Produce json
// @Param q query string false "Search text"
// @Param limit query int false "Maximum suggestions" default(10)
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Invalid parameter"
// @Failure 503 {object} map[string]string "No snapshot loaded"
// @Router /players [get]
func (h *Handler) SearchPlayers(w http.ResponseWriter, r *http.Request) {
	ds, ok := h.dataset(w)
	if !ok {
		return
	}
	q := r.URL.Query()
	limit, err := parseIntParam(q, "limit", logic.DefaultSearchLimit)
	if err != nil {
		h.viewError(w, err)
		return
	}
	in := listQuery{Query: q.Get("q"), Limit: limit}
	if err := h.validate(in); err != nil {
		h.viewError(w, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"query":   in.Query,
		"players": ds.SearchPlayers(in.Query, in.Limit),
	})
}

// GetPlayer returns the player page header
// @Summary Player overview
// @Description Totals for one player. Unknown players get zero counts.
// @Tags Players
// @Produce json
// @Param user path string true "Player identifier"
// @Success 200 {object} models.PlayerOverview
// @Failure 503 {object} map[string]string "No snapshot loaded"
// @Router /players/{user} [get]
func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ds, ok := h.dataset(w)
	if !ok {
		return
	}
	player := pathParam(r, "user")
	h.cachedJSON(w, r, ds, func() (interface{}, error) {
		return logic.BuildPlayerOverview(ds, player), nil
	})
}

// GetPlayerStamps returns the course completion grid of a player
// @Summary Player stamp rally
// @Tags Players
// @Produce json
// @Param user path string true "Player identifier"
// @Param version query string false "Version (default newest)"
// @Success 200 {object} models.StampRally
// @Failure 400 {object} map[string]string "Unknown version"
// @Failure 503 {object} map[string]string "No snapshot loaded"
// @Router /players/{user}/stamps [get]
func (h *Handler) GetPlayerStamps(w http.ResponseWriter, r *http.Request) {
	ds, ok := h.dataset(w)
	if !ok {
		return
	}
	player := pathParam(r, "user")
	version := r.URL.Query().Get("version")
	h.cachedJSON(w, r, ds, func() (interface{}, error) {
		if version != "" && !ds.HasVersion(version) {
			return nil, badRequest("Unknown version")
		}
		return logic.BuildStampRally(ds, player, version), nil
	})
}

// GetPlayerRecords returns the filtered submissions of a player
// @Summary Player submissions
// @Description Newest submission first. Category and course narrow the table only when given.
// @Tags Players
// @Produce json
// @Param user path string true "Player identifier"
// @Param category query string false "Category"
// @Param course query string false "Course"
// @Param versions query string false "Comma separated versions (default all)"
// @Param controls query string false "Comma separated control methods (default all)"
// @Param approval query string false "all or approved" default(all)
// @Success 200 {object} models.PlayerRecordsView
// @Failure 400 {object} map[string]string "Invalid parameter"
// @Failure 422 {object} map[string]string "Empty multi-select"
// @Failure 503 {object} map[string]string "No snapshot loaded"
// @Router /players/{user}/records [get]
func (h *Handler) GetPlayerRecords(w http.ResponseWriter, r *http.Request) {
	ds, ok := h.dataset(w)
	if !ok {
		return
	}
	player := pathParam(r, "user")
	h.cachedJSON(w, r, ds, func() (interface{}, error) {
		f, err := h.playerFilter(r.URL.Query(), ds)
		if err != nil {
			return nil, err
		}
		return logic.BuildPlayerRecords(ds, player, f)
	})
}

// GetPlayerRecordsCount previews the count of a player submissions filter
// @Summary Player submissions count preview
// @Tags Players
// @Produce json
// @Param user path string true "Player identifier"
// @Success 200 {object} models.CountPreview
// @Failure 400 {object} map[string]string "Invalid parameter"
// @Failure 503 {object} map[string]string "No snapshot loaded"
// @Router /players/{user}/records/count [get]
func (h *Handler) GetPlayerRecordsCount(w http.ResponseWriter, r *http.Request) {
	ds, ok := h.dataset(w)
	if !ok {
		return
	}
	f, err := h.playerFilter(r.URL.Query(), ds)
	if err != nil {
		h.viewError(w, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, logic.PreviewPlayerCount(ds, pathParam(r, "user"), f))
}
