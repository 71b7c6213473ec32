package handlers

import (
	"context"
	"net/http"
	"time"

	"blog/internal/logger"
	"blog/internal/utils/helpers"

	"go.uber.org/zap"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health godoc
// @Summary Проверка живости сервиса и БД
// @Tags system
// @Produce json
// @Success 200 {object} helpers.Response
// @Failure 503 {object} helpers.Response
// @Router /healthz [get]
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		logger.WithCtx(r.Context()).Error("Healthcheck: БД недоступна", zap.Error(err))
		helpers.Error(w, http.StatusServiceUnavailable, "БД недоступна")
		return
	}
	helpers.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
