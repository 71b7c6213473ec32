package handlers

import (
	"net/http"
	"strconv"

	"blog/internal/forms"
	"blog/internal/models"
	"blog/internal/reqctx"
	"blog/internal/services"
	"blog/internal/utils/helpers"
)

type AdminPostHandler struct {
	posts services.AdminPostService
}

func NewAdminPostHandler(posts services.AdminPostService) *AdminPostHandler {
	return &AdminPostHandler{posts: posts}
}

// adminPost — пост в ответах админки, с человекочитаемым статусом.
type adminPost struct {
	*models.Post
	StatusLabel string `json:"statusLabel"`
}

func toAdminPost(p *models.Post) adminPost {
	return adminPost{Post: p, StatusLabel: p.Status.Label()}
}

type postListResponse struct {
	Items  []adminPost `json:"items"`
	Total  int         `json:"total"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
}

// List godoc
// @Summary Все посты, включая черновики
// @Tags admin-posts
// @Security ApiKeyAuth
// @Produce json
// @Param limit query int false "Размер страницы (по умолчанию 20)"
// @Param offset query int false "Смещение"
// @Success 200 {object} postListResponse
// @Router /api/admin/posts [get]
func (h *AdminPostHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	items, total, err := h.posts.List(r.Context(), limit, offset)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	out := make([]adminPost, 0, len(items))
	for _, p := range items {
		out = append(out, toAdminPost(p))
	}
	helpers.JSON(w, http.StatusOK, postListResponse{Items: out, Total: total, Limit: limit, Offset: offset})
}

// Get godoc
// @Summary Пост по ID
// @Tags admin-posts
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "ID поста"
// @Success 200 {object} adminPost
// @Failure 404 {object} helpers.Response
// @Router /api/admin/posts/{id} [get]
func (h *AdminPostHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(r, "id")
	if !ok {
		helpers.Error(w, http.StatusBadRequest, "Неверный ID")
		return
	}
	p, err := h.posts.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	helpers.JSON(w, http.StatusOK, toAdminPost(p))
}

// Create godoc
// @Summary Создать пост
// @Tags admin-posts
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param input body models.PostRequest true "Пост"
// @Success 201 {object} adminPost
// @Failure 400 {object} helpers.Response
// @Failure 409 {object} helpers.Response
// @Router /api/admin/posts [post]
func (h *AdminPostHandler) Create(w http.ResponseWriter, r *http.Request) {
	authorID, ok := reqctx.GetUserID(r.Context())
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "Нет пользователя в контексте")
		return
	}

	var req models.PostRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	p, err := h.posts.Create(r.Context(), authorID, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	helpers.JSON(w, http.StatusCreated, toAdminPost(p))
}

// Update godoc
// @Summary Обновить пост
// @Tags admin-posts
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path int true "ID поста"
// @Param input body models.PostRequest true "Пост"
// @Success 200 {object} adminPost
// @Failure 400 {object} helpers.Response
// @Failure 404 {object} helpers.Response
// @Failure 409 {object} helpers.Response
// @Router /api/admin/posts/{id} [patch]
func (h *AdminPostHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(r, "id")
	if !ok {
		helpers.Error(w, http.StatusBadRequest, "Неверный ID")
		return
	}

	var req models.PostRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	p, err := h.posts.Update(r.Context(), id, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	helpers.JSON(w, http.StatusOK, toAdminPost(p))
}

// SetStatus godoc
// @Summary Опубликовать пост или вернуть в черновики
// @Tags admin-posts
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path int true "ID поста"
// @Param input body models.StatusRequest true "DF или PB"
// @Success 200 {object} adminPost
// @Router /api/admin/posts/{id}/status [patch]
func (h *AdminPostHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(r, "id")
	if !ok {
		helpers.Error(w, http.StatusBadRequest, "Неверный ID")
		return
	}

	var req models.StatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if errs := forms.Validate(req); errs != nil {
		helpers.ValidationError(w, errs)
		return
	}

	p, err := h.posts.SetStatus(r.Context(), id, req.Status)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	helpers.JSON(w, http.StatusOK, toAdminPost(p))
}

// Delete godoc
// @Summary Удалить пост вместе с комментариями
// @Tags admin-posts
// @Security ApiKeyAuth
// @Param id path int true "ID поста"
// @Success 200 {object} helpers.Response
// @Router /api/admin/posts/{id} [delete]
func (h *AdminPostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(r, "id")
	if !ok {
		helpers.Error(w, http.StatusBadRequest, "Неверный ID")
		return
	}
	if err := h.posts.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	helpers.JSON(w, http.StatusOK, "Удалено")
}
