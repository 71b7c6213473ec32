package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"blog/internal/logger"
	"blog/internal/services"
	"blog/internal/web"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// SidebarSource отдаёт данные боковой колонки (счётчик, последние, обсуждаемые).
type SidebarSource interface {
	Get(ctx context.Context) (*services.Sidebar, error)
}

// pages — общая часть HTML-обработчиков: шаблоны плюс боковая колонка.
type pages struct {
	view    *web.Renderer
	sidebar SidebarSource
}

func (p pages) layout(r *http.Request, title string) web.Layout {
	l := web.Layout{Title: title}
	if p.sidebar == nil {
		return l
	}
	sb, err := p.sidebar.Get(r.Context())
	if err != nil {
		// страница важнее колонки
		logger.WithCtx(r.Context()).Warn("Боковая колонка недоступна", zap.Error(err))
		return l
	}
	l.Sidebar = sb
	return l
}

func (p pages) render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	p.view.Render(w, r, status, page, data)
}

// fail: ErrNotFound -> 404, остальное -> 500.
func (p pages) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, services.ErrNotFound) {
		p.view.NotFound(w, r)
		return
	}
	logger.WithCtx(r.Context()).Error("Ошибка обработки запроса", zap.String("path", r.URL.Path), zap.Error(err))
	p.view.ServerError(w, r)
}

// formValues снимает значения полей формы (POST-тело или query) без пробелов по краям.
func formValues(r *http.Request, names ...string) map[string]string {
	out := make(map[string]string, len(names))
	for _, n := range names {
		out[n] = strings.TrimSpace(r.Form.Get(n))
	}
	return out
}

func pathInt64(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
