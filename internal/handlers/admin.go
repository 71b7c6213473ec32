package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"blog/internal/logger"
	"blog/internal/services"
	"blog/internal/utils/helpers"

	"go.uber.org/zap"
)

// writeServiceError переводит ошибку сервиса в JSON-ответ админского API.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		helpers.ValidationError(w, verr.Fields)
	case errors.Is(err, services.ErrNotFound):
		helpers.Error(w, http.StatusNotFound, "Не найдено")
	case errors.Is(err, services.ErrSlugTaken):
		helpers.Error(w, http.StatusConflict, "Slug уже занят на эту дату публикации")
	default:
		logger.WithCtx(r.Context()).Error("Внутренняя ошибка", zap.String("path", r.URL.Path), zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Ошибка сервера")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		logger.WithCtx(r.Context()).Warn("Невалидный JSON", zap.String("path", r.URL.Path), zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return false
	}
	return true
}
