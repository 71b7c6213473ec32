package services

import (
	"context"
	"strings"

	"blog/internal/forms"
	"blog/internal/logger"
	"blog/internal/models"
	"blog/internal/repository"

	"go.uber.org/zap"
)

type CommentService interface {
	// Submit сохраняет комментарий к опубликованному посту. При невалидной
	// форме ничего не пишет и возвращает ошибки полей.
	Submit(ctx context.Context, post *models.Post, form models.CommentForm) (*models.Comment, forms.Errors, error)
	ListForPost(ctx context.Context, postID int64) ([]*models.Comment, error)
	SetActive(ctx context.Context, id int64, active bool) error
	Delete(ctx context.Context, id int64) error
}

type commentService struct {
	repo    repository.CommentRepo
	sidebar Invalidator
}

func NewCommentService(repo repository.CommentRepo, sidebar Invalidator) CommentService {
	return &commentService{repo: repo, sidebar: sidebar}
}

func (s *commentService) Submit(ctx context.Context, post *models.Post, form models.CommentForm) (*models.Comment, forms.Errors, error) {
	log := logger.WithCtx(ctx)

	form.Name = strings.TrimSpace(form.Name)
	form.Email = strings.TrimSpace(form.Email)
	form.Body = strings.TrimSpace(form.Body)

	if errs := forms.Validate(form); errs != nil {
		log.Info("Комментарий отклонён валидацией", zap.Int64("post_id", post.ID), zap.Int("fields", len(errs)))
		return nil, errs, nil
	}

	created, err := s.repo.Create(ctx, &models.Comment{
		PostID: post.ID,
		Name:   form.Name,
		Email:  form.Email,
		Body:   form.Body,
		Active: true,
	})
	if err != nil {
		log.Error("Ошибка сохранения комментария (repo)", zap.Int64("post_id", post.ID), zap.Error(err))
		return nil, nil, err
	}

	s.sidebar.Invalidate(ctx)
	log.Info("Комментарий добавлен", zap.Int64("post_id", post.ID), zap.Int64("comment_id", created.ID))
	return created, nil, nil
}

func (s *commentService) ListForPost(ctx context.Context, postID int64) ([]*models.Comment, error) {
	return s.repo.ListAll(ctx, postID)
}

func (s *commentService) SetActive(ctx context.Context, id int64, active bool) error {
	log := logger.WithCtx(ctx)
	if err := s.repo.SetActive(ctx, id, active); err != nil {
		log.Warn("Модерация комментария не удалась", zap.Int64("id", id), zap.Error(err))
		return mapRepoErr(err)
	}
	log.Info("Комментарий промодерирован", zap.Int64("id", id), zap.Bool("active", active))
	return nil
}

func (s *commentService) Delete(ctx context.Context, id int64) error {
	log := logger.WithCtx(ctx)
	if err := s.repo.Delete(ctx, id); err != nil {
		log.Warn("Удаление комментария не удалось", zap.Int64("id", id), zap.Error(err))
		return mapRepoErr(err)
	}
	s.sidebar.Invalidate(ctx)
	log.Info("Комментарий удалён", zap.Int64("id", id))
	return nil
}
