package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"blog/internal/logger"
	"blog/internal/models"
	"blog/internal/repository"
	"blog/internal/utils"

	"go.uber.org/zap"
)

type UserRepo interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Upsert(ctx context.Context, u *models.User) (int64, error)
}

type AuthService struct {
	repo      UserRepo
	jwtSecret string
	accessTTL time.Duration
}

func NewAuthService(repo UserRepo, jwtSecret string, accessTTL time.Duration) *AuthService {
	return &AuthService{repo: repo, jwtSecret: jwtSecret, accessTTL: accessTTL}
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*models.TokenResponse, error) {
	log := logger.WithCtx(ctx)
	log.Info("Попытка входа", zap.String("username", username))

	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Warn("Пользователь не найден", zap.String("username", username))
			return nil, ErrInvalidCredentials
		}
		log.Error("Ошибка получения пользователя (repo)", zap.Error(err))
		return nil, err
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		log.Warn("Неверный пароль", zap.String("username", username))
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(s.jwtSecret, user.ID, user.Role, s.accessTTL)
	if err != nil {
		log.Error("Ошибка генерации access-токена", zap.Error(err))
		return nil, err
	}

	log.Info("Вход выполнен", zap.String("username", username), zap.String("role", user.Role))
	return &models.TokenResponse{AccessToken: token, ExpiresIn: int64(s.accessTTL.Seconds())}, nil
}

// CreateUser заводит (или перезаписывает) автора/админа. Используется из cmd/createuser.
func (s *AuthService) CreateUser(ctx context.Context, username, email, password, role string) (int64, error) {
	username = strings.TrimSpace(username)
	if username == "" || len(password) < 8 {
		return 0, errors.New("нужны имя пользователя и пароль не короче 8 символов")
	}
	if role != models.RoleAdmin && role != models.RoleAuthor {
		return 0, errors.New("роль должна быть admin или author")
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return 0, err
	}

	id, err := s.repo.Upsert(ctx, &models.User{Username: username, Email: email, PasswordHash: hash, Role: role})
	if err != nil {
		logger.Log.Error("Ошибка создания пользователя", zap.Error(err))
		return 0, err
	}
	logger.Log.Info("Пользователь сохранён", zap.Int64("id", id), zap.String("username", username), zap.String("role", role))
	return id, nil
}
