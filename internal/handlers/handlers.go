package handlers

import (
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/skyairrace/records-api/internal/cache"
	"github.com/skyairrace/records-api/internal/logic"
)

type Config struct {
	Snapshot logic.SnapshotProvider
	Reloader logic.Reloader
	Cache    *cache.Cache
	Logger   *zap.Logger
	// AdminToken guards POST /admin/reload. Empty disables the endpoint.
	AdminToken string
}

type Handler struct {
	snapshot   logic.SnapshotProvider
	reloader   logic.Reloader
	cache      *cache.Cache
	logger     *zap.SugaredLogger
	validator  *validator.Validate
	adminToken string
}

func New(cfg Config) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	v := validator.New()
	v.RegisterTagNameFunc(queryTagName)

	h := &Handler{
		snapshot:  cfg.Snapshot,
		reloader:  cfg.Reloader,
		cache:     cfg.Cache,
		logger:    logger.Sugar(),
		validator: v,
	}
	if cfg.AdminToken != "" {
		h.adminToken = hashToken(cfg.AdminToken)
	}
	return h
}
