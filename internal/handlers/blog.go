package handlers

import (
	"net/http"
	"strconv"

	"blog/internal/logger"
	"blog/internal/models"
	"blog/internal/pagination"
	"blog/internal/services"
	"blog/internal/web"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type BlogHandler struct {
	pages
	posts services.PostService
}

func NewBlogHandler(posts services.PostService, sidebar SidebarSource, view *web.Renderer) *BlogHandler {
	return &BlogHandler{pages: pages{view: view, sidebar: sidebar}, posts: posts}
}

type listPage struct {
	web.Layout
	Posts []*models.Post
	Tag   *models.Tag
	Page  pagination.Page
}

type detailPage struct {
	web.Layout
	Post     *models.Post
	Comments []*models.Comment
	Similar  []*models.PostWithCount
	Form     web.Form
}

// List — GET / и GET /tag/{tag_slug}/, по 2 поста на страницу.
func (h *BlogHandler) List(w http.ResponseWriter, r *http.Request) {
	tagSlug := mux.Vars(r)["tag_slug"]
	rawPage := r.URL.Query().Get("page")

	res, err := h.posts.ListPublished(r.Context(), tagSlug, rawPage)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "list", listPage{
		Layout: h.layout(r, "My Blog"),
		Posts:  res.Posts,
		Tag:    res.Tag,
		Page:   res.Page,
	})
}

// Detail — GET /{year}/{month}/{day}/{slug}/.
func (h *BlogHandler) Detail(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	year, errY := strconv.Atoi(vars["year"])
	month, errM := strconv.Atoi(vars["month"])
	day, errD := strconv.Atoi(vars["day"])
	if errY != nil || errM != nil || errD != nil {
		h.view.NotFound(w, r)
		return
	}

	res, err := h.posts.GetPublishedByDate(r.Context(), year, month, day, vars["slug"])
	if err != nil {
		h.fail(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Debug("Пост открыт", zap.Int64("post_id", res.Post.ID))
	h.render(w, r, http.StatusOK, "detail", detailPage{
		Layout:   h.layout(r, res.Post.Title),
		Post:     res.Post,
		Comments: res.Comments,
		Similar:  res.Similar,
	})
}
