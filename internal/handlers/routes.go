package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggo/swag"
)

// RouterConfig configures the HTTP surface around the handlers.
type RouterConfig struct {
	AllowedOrigins []string
	RequestTimeout time.Duration
}

// Routes mounts every endpoint on a chi router.
func (h *Handler) Routes(cfg RouterConfig) http.Handler {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(MetricsMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Admin-Token"},
		ExposedHeaders: []string{"X-Cache", "X-Request-Id"},
		MaxAge:         300,
	}))

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/doc.json", h.SwaggerDoc)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/categories", h.GetCategories)
		r.Get("/categories/{category}/courses", h.GetCourses)
		r.Get("/versions", h.GetVersions)
		r.Get("/controls", h.GetControls)

		r.Get("/ranking", h.GetRanking)
		r.Get("/ranking/count", h.GetRankingCount)
		r.Get("/recent", h.GetRecent)

		r.Get("/players", h.SearchPlayers)
		r.Get("/players/{user}", h.GetPlayer)
		r.Get("/players/{user}/stamps", h.GetPlayerStamps)
		r.Get("/players/{user}/records", h.GetPlayerRecords)
		r.Get("/players/{user}/records/count", h.GetPlayerRecordsCount)

		r.Get("/challenges", h.GetChallenges)
		r.Get("/challenges/{name}", h.GetChallenge)
		r.Get("/challenges/{name}/count", h.GetChallengeCount)

		r.With(h.AdminAuthMiddleware).Post("/admin/reload", h.ReloadSnapshot)
	})

	return r
}

// SwaggerDoc serves the registered OpenAPI document
func (h *Handler) SwaggerDoc(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		h.errorResponse(w, http.StatusNotFound, "API documentation not registered")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(doc))
}
