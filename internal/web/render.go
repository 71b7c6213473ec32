// Package web рендерит HTML-страницы блога из встроенных шаблонов.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"blog/internal/forms"
	"blog/internal/logger"
	"blog/internal/markup"
	"blog/internal/services"

	"go.uber.org/zap"
)

//go:embed templates
var files embed.FS

//go:embed static
var static embed.FS

// Layout — общие данные базового шаблона. Страницы встраивают его в свои структуры.
type Layout struct {
	Title   string
	Sidebar *services.Sidebar
}

// Form — значения и ошибки HTML-формы для повторного показа.
type Form struct {
	Values map[string]string
	Errors forms.Errors
}

func (f Form) Value(name string) string { return f.Values[name] }

func (f Form) FieldErrors(name string) []string { return f.Errors.Get(name) }

func (f Form) NonFieldErrors() []string { return f.Errors.Get(forms.NonField) }

func (f Form) HasErrors() bool { return len(f.Errors) > 0 }

type Renderer struct {
	pages map[string]*template.Template
}

func Funcs() template.FuncMap {
	return template.FuncMap{
		"markdown": markup.MarkdownHTML,
		"truncatewords_html": func(n int, s template.HTML) template.HTML {
			return template.HTML(markup.TruncateWordsHTML(string(s), n))
		},
		"linebreaks": linebreaks,
		"date": func(t time.Time) string {
			return t.UTC().Format("January 2, 2006")
		},
		"datetime": func(t time.Time) string {
			return t.UTC().Format("January 2, 2006 15:04")
		},
		"pluralize": func(n int) string {
			if n == 1 {
				return ""
			}
			return "s"
		},
		"add": func(a, b int) int { return a + b },
	}
}

// NewRenderer разбирает все страницы templates/*.html вместе с base и partials.
func NewRenderer() (*Renderer, error) {
	pages, err := fs.Glob(files, "templates/*.html")
	if err != nil {
		return nil, err
	}

	r := &Renderer{pages: map[string]*template.Template{}}
	for _, p := range pages {
		name := strings.TrimSuffix(path.Base(p), ".html")
		if name == "base" {
			continue
		}
		t, err := template.New(name).Funcs(Funcs()).ParseFS(files,
			"templates/base.html", "templates/partials/*.html", p)
		if err != nil {
			return nil, fmt.Errorf("шаблон %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render пишет страницу целиком. Ответ собирается в буфер, чтобы ошибка
// шаблона не оставила клиенту половину страницы с кодом 200.
func (r *Renderer) Render(w http.ResponseWriter, req *http.Request, status int, page string, data any) {
	log := logger.WithCtx(req.Context())

	t, ok := r.pages[page]
	if !ok {
		log.Error("Шаблон не найден", zap.String("page", page))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", data); err != nil {
		log.Error("Ошибка рендера шаблона", zap.String("page", page), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// Static раздаёт встроенные css/картинки под префиксом /static/.
func Static() http.Handler {
	sub, _ := fs.Sub(static, "static")
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}

func (r *Renderer) NotFound(w http.ResponseWriter, req *http.Request) {
	r.Render(w, req, http.StatusNotFound, "404", Layout{Title: "Page not found"})
}

func (r *Renderer) ServerError(w http.ResponseWriter, req *http.Request) {
	r.Render(w, req, http.StatusInternalServerError, "500", Layout{Title: "Server error"})
}

// linebreaks: пустая строка делит абзацы, одиночный перевод строки — <br>.
func linebreaks(s string) template.HTML {
	s = strings.ReplaceAll(strings.TrimSpace(s), "\r\n", "\n")
	if s == "" {
		return ""
	}
	var b strings.Builder
	for _, para := range strings.Split(s, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		lines := strings.Split(para, "\n")
		for i, l := range lines {
			lines[i] = template.HTMLEscapeString(l)
		}
		b.WriteString("<p>" + strings.Join(lines, "<br>") + "</p>")
	}
	return template.HTML(b.String())
}
