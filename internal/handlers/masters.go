package handlers

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/skyairrace/records-api/internal/logic"
	"github.com/skyairrace/records-api/internal/models"
)

// pathParam returns a decoded URL parameter. chi matches on the raw path
// when the request carried one, leaving escapes in place.
func pathParam(r *http.Request, name string) string {
	v := chi.URLParam(r, name)
	if r.URL.RawPath == "" {
		return v
	}
	if decoded, err := url.PathUnescape(v); err == nil {
		return decoded
	}
	return v
}

// GetCategories lists the course categories with record counts
// @Summary List categories
// @Tags Masters
// @Produce json
// @Success 200 {object} map[string]interface{} "Categories in course index order"
// @Failure 503 {object} map[string]string "No snapshot loaded"
// @Router /categories [get]
func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	ds, ok := h.dataset(w)
	if !ok {
		return
	}
	defaultCategory := ""
	if ds.HasCategory(logic.DefaultCategory) {
		defaultCategory = logic.DefaultCategory
	}
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"categories":       ds.Categories(),
		"default_category": defaultCategory,
	})
}

// GetCourses lists the courses of one category with record counts
// @Summary List courses of a category
// @Tags Masters
// @Produce json
// @Param category path string true "Category"
// @Success 200 {object} map[string]interface{} "Courses in index order"
// @Failure 404 {object} map[string]string "Unknown category"
// @Failure 503 {object} map[string]string "No snapshot loaded"
// @Router /categories/{category}/courses [get]
func (h *Handler) GetCourses(w http.ResponseWriter, r *http.Request) {
	ds, ok := h.dataset(w)
	if !ok {
		return
	}
	category := pathParam(r, "category")
	if !ds.HasCategory(category) {
		h.errorResponse(w, http.StatusNotFound, "Category not found")
		return
	}
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"category":       category,
		"courses":        ds.CoursesIn(category),
		"default_course": logic.DefaultCourseFor(ds, category),
	})
}

// GetVersions lists game versions, newest first
// @Summary List versions
// @Tags Masters
// @Produce json
// @Success 200 {object} map[string]interface{} "Versions"
// @Failure 503 {object} map[string]string "No snapshot loaded"
// @Router /versions [get]
func (h *Handler) GetVersions(w http.ResponseWriter, r *http.Request) {
	ds, ok := h.dataset(w)
	if !ok {
		return
	}
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"versions": ds.VersionsNewestFirst(),
		"latest":   ds.LatestVersion(),
	})
}

// GetControls lists the control methods with their icons
// @Summary List control methods
// @Tags Masters
// @Produce json
// @Success 200 {array} models.ControlType
// @Router /controls [get]
func (h *Handler) GetControls(w http.ResponseWriter, r *http.Request) {
	h.jsonResponse(w, http.StatusOK, models.ControlTypes)
}
