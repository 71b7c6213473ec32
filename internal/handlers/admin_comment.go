package handlers

import (
	"net/http"

	"blog/internal/forms"
	"blog/internal/models"
	"blog/internal/services"
	"blog/internal/utils/helpers"
)

type AdminCommentHandler struct {
	comments services.CommentService
}

func NewAdminCommentHandler(comments services.CommentService) *AdminCommentHandler {
	return &AdminCommentHandler{comments: comments}
}

// ListForPost godoc
// @Summary Все комментарии поста, включая скрытые
// @Tags admin-comments
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "ID поста"
// @Success 200 {array} models.Comment
// @Router /api/admin/posts/{id}/comments [get]
func (h *AdminCommentHandler) ListForPost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(r, "id")
	if !ok {
		helpers.Error(w, http.StatusBadRequest, "Неверный ID")
		return
	}
	list, err := h.comments.ListForPost(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if list == nil {
		list = []*models.Comment{}
	}
	helpers.JSON(w, http.StatusOK, list)
}

// SetActive godoc
// @Summary Скрыть или показать комментарий
// @Tags admin-comments
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path int true "ID комментария"
// @Param input body models.CommentActiveRequest true "Флаг active"
// @Success 200 {object} helpers.Response
// @Router /api/admin/comments/{id} [patch]
func (h *AdminCommentHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(r, "id")
	if !ok {
		helpers.Error(w, http.StatusBadRequest, "Неверный ID")
		return
	}

	var req models.CommentActiveRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if errs := forms.Validate(req); errs != nil {
		helpers.ValidationError(w, errs)
		return
	}

	if err := h.comments.SetActive(r.Context(), id, *req.Active); err != nil {
		writeServiceError(w, r, err)
		return
	}
	helpers.JSON(w, http.StatusOK, "Обновлено")
}

// Delete godoc
// @Summary Удалить комментарий
// @Tags admin-comments
// @Security ApiKeyAuth
// @Param id path int true "ID комментария"
// @Success 200 {object} helpers.Response
// @Router /api/admin/comments/{id} [delete]
func (h *AdminCommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(r, "id")
	if !ok {
		helpers.Error(w, http.StatusBadRequest, "Неверный ID")
		return
	}
	if err := h.comments.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	helpers.JSON(w, http.StatusOK, "Удалено")
}
