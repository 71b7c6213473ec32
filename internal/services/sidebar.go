package services

import (
	"context"

	"blog/internal/cache"
	"blog/internal/logger"
	"blog/internal/models"
	"blog/internal/repository"

	"go.uber.org/zap"
)

const (
	LatestPostsCount   = 5
	MostCommentedCount = 5

	sidebarKey = "sidebar"
)

// Sidebar — данные боковой колонки, общие для всех страниц.
type Sidebar struct {
	TotalPosts    int                     `json:"total_posts"`
	LatestPosts   []*models.Post          `json:"latest_posts"`
	MostCommented []*models.PostWithCount `json:"most_commented"`
	Tags          []models.Tag            `json:"tags"`
}

// Invalidator сбрасывает закэшированную боковую колонку после записи.
type Invalidator interface {
	Invalidate(ctx context.Context)
}

type SidebarService struct {
	posts repository.PostRepo
	tags  TagRepo
	cache *cache.Cache
}

// NewSidebarService: c может быть nil — тогда всё считается на каждый запрос.
func NewSidebarService(posts repository.PostRepo, tags TagRepo, c *cache.Cache) *SidebarService {
	return &SidebarService{posts: posts, tags: tags, cache: c}
}

func (s *SidebarService) Get(ctx context.Context) (*Sidebar, error) {
	var sb Sidebar
	err := s.cache.Aside(ctx, sidebarKey, &sb, func() error {
		return s.load(ctx, &sb)
	})
	if err != nil {
		logger.WithCtx(ctx).Error("Ошибка загрузки боковой колонки", zap.Error(err))
		return nil, err
	}
	return &sb, nil
}

func (s *SidebarService) load(ctx context.Context, sb *Sidebar) error {
	total, err := s.TotalPosts(ctx)
	if err != nil {
		return err
	}
	latest, err := s.LatestPosts(ctx, LatestPostsCount)
	if err != nil {
		return err
	}
	most, err := s.MostCommented(ctx, MostCommentedCount)
	if err != nil {
		return err
	}
	tags, err := s.tags.List(ctx)
	if err != nil {
		return err
	}
	sb.TotalPosts, sb.LatestPosts, sb.MostCommented, sb.Tags = total, latest, most, tags
	return nil
}

func (s *SidebarService) TotalPosts(ctx context.Context) (int, error) {
	return s.posts.CountPublished(ctx, nil)
}

func (s *SidebarService) LatestPosts(ctx context.Context, count int) ([]*models.Post, error) {
	return s.posts.LatestPublished(ctx, count)
}

func (s *SidebarService) MostCommented(ctx context.Context, count int) ([]*models.PostWithCount, error) {
	return s.posts.MostCommented(ctx, count)
}

func (s *SidebarService) Invalidate(ctx context.Context) {
	if err := s.cache.Del(ctx, sidebarKey); err != nil {
		logger.WithCtx(ctx).Warn("Не удалось сбросить кэш боковой колонки", zap.Error(err))
	}
}
