package handlers

import (
	"net/http"

	"blog/internal/models"
	"blog/internal/services"
	"blog/internal/web"
)

type CommentHandler struct {
	pages
	posts    services.PostService
	comments services.CommentService
}

func NewCommentHandler(posts services.PostService, comments services.CommentService, sidebar SidebarSource, view *web.Renderer) *CommentHandler {
	return &CommentHandler{pages: pages{view: view, sidebar: sidebar}, posts: posts, comments: comments}
}

type commentPage struct {
	web.Layout
	Post    *models.Post
	Comment *models.Comment
	Form    web.Form
}

// Create — POST /{post_id}/comment/. Только для опубликованных постов.
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
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

	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	values := formValues(r, "name", "email", "body")

	comment, errs, err := h.comments.Submit(r.Context(), post, models.CommentForm{
		Name:  values["name"],
		Email: values["email"],
		Body:  values["body"],
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "comment", commentPage{
		Layout:  h.layout(r, "Add a comment"),
		Post:    post,
		Comment: comment,
		Form:    web.Form{Values: values, Errors: errs},
	})
}
