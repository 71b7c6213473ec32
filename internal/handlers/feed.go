package handlers

import (
	"context"
	"net/http"

	"blog/internal/logger"

	"go.uber.org/zap"
)

type Syndicator interface {
	RSS(ctx context.Context) (string, error)
	Sitemap(ctx context.Context) ([]byte, error)
}

type FeedHandler struct {
	feed Syndicator
}

func NewFeedHandler(feed Syndicator) *FeedHandler {
	return &FeedHandler{feed: feed}
}

// RSS — GET /feed/.
func (h *FeedHandler) RSS(w http.ResponseWriter, r *http.Request) {
	body, err := h.feed.RSS(r.Context())
	if err != nil {
		logger.WithCtx(r.Context()).Error("Ошибка формирования RSS", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	_, _ = w.Write([]byte(body))
}

// Sitemap — GET /sitemap.xml.
func (h *FeedHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	body, err := h.feed.Sitemap(r.Context())
	if err != nil {
		logger.WithCtx(r.Context()).Error("Ошибка формирования sitemap", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write(body)
}
