package services

import (
	"errors"

	"blog/internal/forms"
	"blog/internal/repository"
)

var (
	ErrNotFound           = errors.New("не найдено")
	ErrSlugTaken          = errors.New("slug уже занят на эту дату публикации")
	ErrInvalidCredentials = errors.New("неверный логин или пароль")
)

// ValidationError несёт ошибки по полям формы/запроса.
type ValidationError struct {
	Fields forms.Errors
}

func (e *ValidationError) Error() string { return "ошибка валидации: " + e.Fields.Error() }

// mapRepoErr переводит ошибки репозитория в ошибки сервиса.
func mapRepoErr(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrSlugTaken):
		return ErrSlugTaken
	default:
		return err
	}
}
