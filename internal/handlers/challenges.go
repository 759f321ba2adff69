package handlers

import (
	"net/http"

	"github.com/skyairrace/records-api/internal/logic"
)

// GetChallenges lists the challenges
// @Summary List challenges
// @Tags Challenges
// @Produce json
// @Success 200 {array} models.ChallengeSummary
// @Failure 503 {object} map[string]string "No snapshot loaded"
// @Router /challenges [get]
func (h *Handler) GetChallenges(w http.ResponseWriter, r *http.Request) {
	ds, ok := h.dataset(w)
	if !ok {
		return
	}
	h.jsonResponse(w, http.StatusOK, logic.ChallengeSummaries(ds))
}

// GetChallenge returns the achievers of a challenge
// @Summary Challenge achievers
// @Description Earliest achievement first. rank keeps achievements at or above that rank.
// @Tags Challenges
// @Produce json
// @Param name path string true "Challenge name"
// @Param rank query string false "Minimum rank"
// @Param approval query string false "all or approved" default(all)
// @Success 200 {object} models.ChallengeView
// @Failure 400 {object} map[string]string "Invalid parameter or unknown rank"
// @Failure 404 {object} map[string]string "Unknown challenge"
// @Failure 503 {object} map[string]string "No snapshot loaded"
// @Router /challenges/{name} [get]
func (h *Handler) GetChallenge(w http.ResponseWriter, r *http.Request) {
	ds, ok := h.dataset(w)
	if !ok {
		return
	}
	name := pathParam(r, "name")
	if _, found := ds.Challenge(name); !found {
		h.errorResponse(w, http.StatusNotFound, "Challenge not found")
		return
	}
	h.cachedJSON(w, r, ds, func() (interface{}, error) {
		f, err := h.challengeFilter(r.URL.Query(), name)
		if err != nil {
			return nil, err
		}
		return logic.BuildChallenge(ds, f)
	})
}

// GetChallengeCount previews the achiever count of a challenge filter
// @Summary Challenge count preview
// @Tags Challenges
// @Produce json
// @Param name path string true "Challenge name"
// @Param rank query string false "Minimum rank"
// @Param approval query string false "all or approved" default(all)
// @Success 200 {object} models.CountPreview
// @Failure 400 {object} map[string]string "Invalid parameter"
// @Failure 503 {object} map[string]string "No snapshot loaded"
// @Router /challenges/{name}/count [get]
func (h *Handler) GetChallengeCount(w http.ResponseWriter, r *http.Request) {
	ds, ok := h.dataset(w)
	if !ok {
		return
	}
	f, err := h.challengeFilter(r.URL.Query(), pathParam(r, "name"))
	if err != nil {
		h.viewError(w, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, logic.PreviewChallengeCount(ds, f))
}
