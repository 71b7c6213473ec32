package handlers

import (
	"net/http"

	"blog/internal/models"
	"blog/internal/services"
	"blog/internal/web"
)

type ShareHandler struct {
	pages
	posts services.PostService
	share services.ShareService
}

func NewShareHandler(posts services.PostService, share services.ShareService, sidebar SidebarSource, view *web.Renderer) *ShareHandler {
	return &ShareHandler{pages: pages{view: view, sidebar: sidebar}, posts: posts, share: share}
}

type sharePage struct {
	web.Layout
	Post *models.Post
	Form web.Form
	Sent bool
}

// Share — GET показывает форму, POST отправляет письмо.
func (h *ShareHandler) Share(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(r, "post_id")
	if !ok {
		h.view.NotFound(w, r)
		return
	}

	post, err := h.posts.GetPublishedByID(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	page := sharePage{Layout: h.layout(r, "Share a post"), Post: post}
	if r.Method != http.MethodPost {
		h.render(w, r, http.StatusOK, "share", page)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	page.Form.Values = formValues(r, "name", "email", "to", "comments")

	page.Sent, page.Form.Errors = h.share.Share(r.Context(), post, models.EmailPostForm{
		Name:     page.Form.Values["name"],
		Email:    page.Form.Values["email"],
		To:       page.Form.Values["to"],
		Comments: page.Form.Values["comments"],
	})
	h.render(w, r, http.StatusOK, "share", page)
}
