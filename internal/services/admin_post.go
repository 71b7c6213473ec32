package services

import (
	"context"
	"strings"
	"time"

	"blog/internal/forms"
	"blog/internal/logger"
	"blog/internal/models"
	"blog/internal/repository"

	"github.com/gosimple/slug"
	"go.uber.org/zap"
)

const maxTags = 10

// AdminPostService — управление постами из админского API (видит и черновики).
type AdminPostService interface {
	List(ctx context.Context, limit, offset int) ([]*models.Post, int, error)
	Get(ctx context.Context, id int64) (*models.Post, error)
	Create(ctx context.Context, authorID int64, req models.PostRequest) (*models.Post, error)
	Update(ctx context.Context, id int64, req models.PostRequest) (*models.Post, error)
	SetStatus(ctx context.Context, id int64, status models.PostStatus) (*models.Post, error)
	Delete(ctx context.Context, id int64) error
}

type adminPostService struct {
	repo    repository.PostRepo
	sidebar Invalidator
	now     func() time.Time
}

func NewAdminPostService(repo repository.PostRepo, sidebar Invalidator) AdminPostService {
	return &adminPostService{repo: repo, sidebar: sidebar, now: time.Now}
}

func (s *adminPostService) List(ctx context.Context, limit, offset int) ([]*models.Post, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, total, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		logger.WithCtx(ctx).Error("Ошибка получения списка постов (admin)", zap.Error(err))
		return nil, 0, err
	}
	return list, total, nil
}

func (s *adminPostService) Get(ctx context.Context, id int64) (*models.Post, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return p, nil
}

func (s *adminPostService) Create(ctx context.Context, authorID int64, req models.PostRequest) (*models.Post, error) {
	log := logger.WithCtx(ctx)
	log.Info("Создание поста",
		zap.Int64("author_id", authorID),
		zap.String("title", strings.TrimSpace(req.Title)),
		zap.Int("tags_count", len(req.Tags)),
	)

	p := &models.Post{AuthorID: authorID, Status: models.StatusDraft, Publish: s.now().UTC()}
	if err := s.apply(p, req); err != nil {
		log.Warn("Валидация поста не пройдена", zap.Error(err))
		return nil, err
	}
	if err := s.checkSlug(ctx, p); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		log.Error("Ошибка создания поста (repo)", zap.Error(err))
		return nil, mapRepoErr(err)
	}

	s.sidebar.Invalidate(ctx)
	log.Info("Пост создан", zap.Int64("id", created.ID), zap.String("status", string(created.Status)))
	return created, nil
}

func (s *adminPostService) Update(ctx context.Context, id int64, req models.PostRequest) (*models.Post, error) {
	log := logger.WithCtx(ctx)
	log.Info("Обновление поста", zap.Int64("id", id))

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.Warn("Пост для обновления не найден (repo)", zap.Int64("id", id), zap.Error(err))
		return nil, mapRepoErr(err)
	}

	// пустой slug при обновлении означает «оставить прежний»
	if strings.TrimSpace(req.Slug) == "" {
		req.Slug = p.Slug
	}
	if err := s.apply(p, req); err != nil {
		log.Warn("Валидация поста не пройдена", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	if err := s.checkSlug(ctx, p); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, p); err != nil {
		log.Error("Ошибка обновления поста (repo)", zap.Int64("id", id), zap.Error(err))
		return nil, mapRepoErr(err)
	}

	s.sidebar.Invalidate(ctx)
	log.Info("Пост обновлён", zap.Int64("id", id))
	return s.Get(ctx, id)
}

func (s *adminPostService) SetStatus(ctx context.Context, id int64, status models.PostStatus) (*models.Post, error) {
	log := logger.WithCtx(ctx)
	if !status.Valid() {
		errs := forms.Errors{}
		errs.Add("status", "Select a valid choice (DF PB).")
		return nil, &ValidationError{Fields: errs}
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		log.Warn("Ошибка смены статуса поста (repo)", zap.Int64("id", id), zap.Error(err))
		return nil, mapRepoErr(err)
	}

	s.sidebar.Invalidate(ctx)
	log.Info("Статус поста изменён", zap.Int64("id", id), zap.String("status", string(status)))
	return s.Get(ctx, id)
}

func (s *adminPostService) Delete(ctx context.Context, id int64) error {
	log := logger.WithCtx(ctx)
	if err := s.repo.Delete(ctx, id); err != nil {
		log.Warn("Ошибка удаления поста (repo)", zap.Int64("id", id), zap.Error(err))
		return mapRepoErr(err)
	}
	s.sidebar.Invalidate(ctx)
	log.Info("Пост удалён", zap.Int64("id", id))
	return nil
}

// apply валидирует запрос и переносит его в пост.
func (s *adminPostService) apply(p *models.Post, req models.PostRequest) error {
	req.Title = strings.TrimSpace(req.Title)
	req.Slug = strings.TrimSpace(req.Slug)

	errs := forms.Validate(req)
	if errs == nil {
		errs = forms.Errors{}
	}

	postSlug := req.Slug
	if postSlug == "" {
		postSlug = slug.Make(req.Title)
	}
	if req.Title != "" && !slug.IsSlug(postSlug) {
		errs.Add("slug", "Enter a valid slug consisting of letters, numbers, underscores or hyphens.")
	}
	tags := normalizeTags(req.Tags)
	if len(tags) > maxTags {
		errs.Add("tags", "Too many tags.")
	}
	if !errs.Valid() {
		return &ValidationError{Fields: errs}
	}

	p.Title = req.Title
	p.Slug = postSlug
	p.Body = req.Body
	p.Tags = tags
	if req.Status != "" {
		p.Status = req.Status
	}
	if req.Publish != nil {
		p.Publish = req.Publish.UTC()
	}
	return nil
}

func (s *adminPostService) checkSlug(ctx context.Context, p *models.Post) error {
	taken, err := s.repo.SlugTaken(ctx, p.Slug, p.Publish, p.ID)
	if err != nil {
		return err
	}
	if taken {
		logger.WithCtx(ctx).Warn("Slug занят на дату публикации", zap.String("slug", p.Slug))
		return ErrSlugTaken
	}
	return nil
}

// normalizeTags убирает пустые и повторяющиеся (по slug) теги.
func normalizeTags(in []string) []models.Tag {
	seen := map[string]struct{}{}
	out := make([]models.Tag, 0, len(in))
	for _, name := range in {
		name = strings.TrimSpace(name)
		tagSlug := slug.Make(name)
		if tagSlug == "" {
			continue
		}
		if _, ok := seen[tagSlug]; ok {
			continue
		}
		seen[tagSlug] = struct{}{}
		out = append(out, models.Tag{Name: name, Slug: tagSlug})
	}
	return out
}
