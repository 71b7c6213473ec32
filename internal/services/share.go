package services

import (
	"context"
	"fmt"
	"strings"

	"blog/internal/forms"
	"blog/internal/logger"
	"blog/internal/models"

	"go.uber.org/zap"
)

type ShareService interface {
	// Share отправляет письмо с рекомендацией поста. sent=true только после
	// успешной передачи письма SMTP-серверу; повторов нет.
	Share(ctx context.Context, post *models.Post, form models.EmailPostForm) (sent bool, errs forms.Errors)
}

type shareService struct {
	mailer  Mailer
	siteURL string
}

func NewShareService(mailer Mailer, siteURL string) ShareService {
	return &shareService{mailer: mailer, siteURL: strings.TrimRight(siteURL, "/")}
}

func (s *shareService) Share(ctx context.Context, post *models.Post, form models.EmailPostForm) (bool, forms.Errors) {
	log := logger.WithCtx(ctx)

	form.Name = strings.TrimSpace(form.Name)
	form.Email = strings.TrimSpace(form.Email)
	form.To = strings.TrimSpace(form.To)

	if errs := forms.Validate(form); errs != nil {
		log.Info("Форма «поделиться» не прошла валидацию", zap.Int64("post_id", post.ID))
		return false, errs
	}

	postURL := s.siteURL + post.AbsoluteURL()
	subject := fmt.Sprintf("%s recommends you read %s", form.Name, post.Title)
	body := fmt.Sprintf("Read %s at %s\n\n%s's comments: %s", post.Title, postURL, form.Name, form.Comments)

	if err := s.mailer.Send([]string{form.To}, form.Email, subject, body); err != nil {
		log.Error("Ошибка отправки письма", zap.Int64("post_id", post.ID), zap.String("to", form.To), zap.Error(err))
		errs := forms.Errors{}
		errs.Add(forms.NonField, "The email could not be sent. Please try again later.")
		return false, errs
	}

	log.Info("Пост отправлен по почте", zap.Int64("post_id", post.ID), zap.String("to", form.To))
	return true, nil
}
