package services

import (
	"context"
	"strings"
	"time"

	"blog/internal/forms"
	"blog/internal/logger"
	"blog/internal/models"
	"blog/internal/pagination"
	"blog/internal/repository"

	"go.uber.org/zap"
)

const (
	PostsPerPage    = 2
	SimilarLimit    = 4
	SearchThreshold = 0.1
)

type TagRepo interface {
	GetBySlug(ctx context.Context, slug string) (*models.Tag, error)
	List(ctx context.Context) ([]models.Tag, error)
}

type PostPage struct {
	Posts []*models.Post
	Page  pagination.Page
	Tag   *models.Tag
}

type PostDetail struct {
	Post     *models.Post
	Comments []*models.Comment
	Similar  []*models.PostWithCount
}

// PostService — читающая сторона блога. Черновики сюда не попадают никогда.
type PostService interface {
	ListPublished(ctx context.Context, tagSlug, rawPage string) (*PostPage, error)
	GetPublishedByDate(ctx context.Context, year, month, day int, slug string) (*PostDetail, error)
	GetPublishedByID(ctx context.Context, id int64) (*models.Post, error)
	Search(ctx context.Context, form models.SearchForm) ([]*models.Post, forms.Errors, error)
}

type postService struct {
	posts    repository.PostRepo
	comments repository.CommentRepo
	tags     TagRepo
}

func NewPostService(posts repository.PostRepo, comments repository.CommentRepo, tags TagRepo) PostService {
	return &postService{posts: posts, comments: comments, tags: tags}
}

func (s *postService) ListPublished(ctx context.Context, tagSlug, rawPage string) (*PostPage, error) {
	log := logger.WithCtx(ctx)
	log.Debug("Список постов", zap.String("tag", tagSlug), zap.String("page", rawPage))

	out := &PostPage{}
	var tagID *int64
	if tagSlug != "" {
		tag, err := s.tags.GetBySlug(ctx, tagSlug)
		if err != nil {
			log.Warn("Тег не найден", zap.String("tag", tagSlug), zap.Error(err))
			return nil, mapRepoErr(err)
		}
		out.Tag = tag
		tagID = &tag.ID
	}

	total, err := s.posts.CountPublished(ctx, tagID)
	if err != nil {
		log.Error("Ошибка подсчёта постов (repo)", zap.Error(err))
		return nil, err
	}

	out.Page = pagination.New(total, PostsPerPage, rawPage)
	out.Posts, err = s.posts.ListPublished(ctx, tagID, out.Page.Limit(), out.Page.Offset())
	if err != nil {
		log.Error("Ошибка получения списка постов (repo)", zap.Error(err))
		return nil, err
	}

	log.Debug("Список постов получен",
		zap.Int("count", len(out.Posts)),
		zap.Int("page", out.Page.Number),
		zap.Int("pages", out.Page.NumPages),
	)
	return out, nil
}

func (s *postService) GetPublishedByDate(ctx context.Context, year, month, day int, slug string) (*PostDetail, error) {
	log := logger.WithCtx(ctx)

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date нормализует 2024-02-31 в март; такой даты в URL быть не может
	if date.Year() != year || int(date.Month()) != month || date.Day() != day {
		log.Warn("Неверная дата в адресе поста", zap.Int("year", year), zap.Int("month", month), zap.Int("day", day))
		return nil, ErrNotFound
	}

	post, err := s.posts.GetPublishedByDate(ctx, slug, date)
	if err != nil {
		log.Warn("Пост не найден", zap.String("slug", slug), zap.Time("day", date), zap.Error(err))
		return nil, mapRepoErr(err)
	}

	comments, err := s.comments.ListActive(ctx, post.ID)
	if err != nil {
		log.Error("Ошибка получения комментариев (repo)", zap.Int64("post_id", post.ID), zap.Error(err))
		return nil, err
	}

	similar, err := s.posts.SimilarPublished(ctx, post.ID, SimilarLimit)
	if err != nil {
		log.Error("Ошибка получения похожих постов (repo)", zap.Int64("post_id", post.ID), zap.Error(err))
		return nil, err
	}

	return &PostDetail{Post: post, Comments: comments, Similar: similar}, nil
}

func (s *postService) GetPublishedByID(ctx context.Context, id int64) (*models.Post, error) {
	post, err := s.posts.GetPublishedByID(ctx, id)
	if err != nil {
		logger.WithCtx(ctx).Warn("Опубликованный пост не найден", zap.Int64("id", id), zap.Error(err))
		return nil, mapRepoErr(err)
	}
	return post, nil
}

func (s *postService) Search(ctx context.Context, form models.SearchForm) ([]*models.Post, forms.Errors, error) {
	log := logger.WithCtx(ctx)

	form.Query = strings.TrimSpace(form.Query)
	if errs := forms.Validate(form); errs != nil {
		log.Debug("Поиск: пустой запрос")
		return nil, errs, nil
	}

	start := time.Now()
	results, err := s.posts.Search(ctx, form.Query, SearchThreshold)
	if err != nil {
		log.Error("Поиск: ошибка (repo)", zap.String("query", form.Query), zap.Error(err))
		return nil, nil, err
	}

	log.Info("Поиск: готово",
		zap.String("query", form.Query),
		zap.Int("count", len(results)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return results, nil, nil
}
