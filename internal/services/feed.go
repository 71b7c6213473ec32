package services

import (
	"context"
	"encoding/xml"
	"strings"
	"time"

	"blog/internal/logger"
	"blog/internal/markup"
	"blog/internal/repository"

	"github.com/gorilla/feeds"
	"go.uber.org/zap"
)

const (
	FeedTitle       = "My blog"
	FeedDescription = "New posts of my blog."
	FeedSize        = 5
	FeedWords       = 30

	SitemapChangeFreq = "weekly"
	SitemapPriority   = "0.9"
)

// SyndicationService собирает RSS-ленту и sitemap из опубликованных постов.
type SyndicationService struct {
	posts   repository.PostRepo
	siteURL string
}

func NewSyndicationService(posts repository.PostRepo, siteURL string) *SyndicationService {
	return &SyndicationService{posts: posts, siteURL: strings.TrimRight(siteURL, "/")}
}

func (s *SyndicationService) RSS(ctx context.Context) (string, error) {
	log := logger.WithCtx(ctx)

	posts, err := s.posts.LatestPublished(ctx, FeedSize)
	if err != nil {
		log.Error("RSS: ошибка получения постов (repo)", zap.Error(err))
		return "", err
	}

	feed := &feeds.Feed{
		Title:       FeedTitle,
		Link:        &feeds.Link{Href: s.siteURL + "/"},
		Description: FeedDescription,
		Created:     time.Now().UTC(),
	}
	if len(posts) > 0 {
		feed.Created = posts[0].Publish
	}

	for _, p := range posts {
		link := s.siteURL + p.AbsoluteURL()
		feed.Items = append(feed.Items, &feeds.Item{
			Id:          link,
			Title:       p.Title,
			Link:        &feeds.Link{Href: link},
			Description: markup.TruncateWordsHTML(markup.Markdown(p.Body), FeedWords),
			Created:     p.Publish,
		})
	}

	return feed.ToRss()
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

func (s *SyndicationService) Sitemap(ctx context.Context) ([]byte, error) {
	posts, err := s.posts.AllPublished(ctx)
	if err != nil {
		logger.WithCtx(ctx).Error("Sitemap: ошибка получения постов (repo)", zap.Error(err))
		return nil, err
	}

	set := urlSet{Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	for _, p := range posts {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        s.siteURL + p.AbsoluteURL(),
			LastMod:    p.Updated.UTC().Format("2006-01-02"),
			ChangeFreq: SitemapChangeFreq,
			Priority:   SitemapPriority,
		})
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), out...), nil
}
