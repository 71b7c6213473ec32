package handlers

import (
	"net/http"
	"strings"

	"blog/internal/models"
	"blog/internal/web"
)

type searchPage struct {
	web.Layout
	Form    web.Form
	Query   string
	Results []*models.Post
}

// Search — GET /search/?query=. Без параметра query показывается пустая форма.
func (h *BlogHandler) Search(w http.ResponseWriter, r *http.Request) {
	page := searchPage{Layout: h.layout(r, "Search")}

	params := r.URL.Query()
	if _, sent := params["query"]; !sent {
		h.render(w, r, http.StatusOK, "search", page)
		return
	}

	page.Form.Values = map[string]string{"query": strings.TrimSpace(params.Get("query"))}

	results, errs, err := h.posts.Search(r.Context(), models.SearchForm{Query: page.Form.Values["query"]})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if errs != nil {
		page.Form.Errors = errs
		h.render(w, r, http.StatusOK, "search", page)
		return
	}

	page.Query = page.Form.Values["query"]
	page.Results = results
	h.render(w, r, http.StatusOK, "search", page)
}
