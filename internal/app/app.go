package app

import (
	"context"
	"time"

	"blog/internal/cache"
	"blog/internal/config"
	"blog/internal/db"
	"blog/internal/handlers"
	"blog/internal/logger"
	"blog/internal/repository"
	"blog/internal/routes"
	"blog/internal/services"
	"blog/internal/web"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// InitApp поднимает БД (с миграциями), Redis, сервисы и маршруты.
// Возвращаемая функция закрывает соединения.
func InitApp(cfg *config.Config) (*mux.Router, func(), error) {
	conn, err := db.NewPostgresConnection(cfg)
	if err != nil {
		return nil, nil, err
	}

	migrateCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := db.Migrate(migrateCtx, conn); err != nil {
		conn.Close()
		return nil, nil, err
	}

	// Redis необязателен: без него боковая колонка считается на каждый запрос
	var redisCache *cache.Cache
	if cfg.RedisAddr != "" {
		redisCache, err = cache.NewRedisCache(context.Background(), cfg.RedisAddr, cfg.CacheTTLDuration())
		if err != nil {
			logger.Log.Warn("Redis недоступен, кэш отключён", zap.String("addr", cfg.RedisAddr), zap.Error(err))
			redisCache = nil
		}
	}

	view, err := web.NewRenderer()
	if err != nil {
		conn.Close()
		return nil, nil, err
	}

	// Репозитории
	postRepo := repository.NewPostRepo(conn)
	commentRepo := repository.NewCommentRepo(conn)
	tagRepo := repository.NewTagRepo(conn)
	userRepo := repository.NewUserRepository(conn)

	// Сервисы
	sidebarSvc := services.NewSidebarService(postRepo, tagRepo, redisCache)
	postSvc := services.NewPostService(postRepo, commentRepo, tagRepo)
	commentSvc := services.NewCommentService(commentRepo, sidebarSvc)
	shareSvc := services.NewShareService(services.NewEmailService(cfg), cfg.SiteURL)
	feedSvc := services.NewSyndicationService(postRepo, cfg.SiteURL)
	adminPostSvc := services.NewAdminPostService(postRepo, sidebarSvc)
	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.AccessTTL())

	// Маршруты
	router := mux.NewRouter()
	routes.InitRoutes(router, routes.Handlers{
		Blog:         handlers.NewBlogHandler(postSvc, sidebarSvc, view),
		Comment:      handlers.NewCommentHandler(postSvc, commentSvc, sidebarSvc, view),
		Share:        handlers.NewShareHandler(postSvc, shareSvc, sidebarSvc, view),
		Feed:         handlers.NewFeedHandler(feedSvc),
		Health:       handlers.NewHealthHandler(conn),
		Auth:         handlers.NewAuthHandler(authSvc),
		AdminPost:    handlers.NewAdminPostHandler(adminPostSvc),
		AdminComment: handlers.NewAdminCommentHandler(commentSvc),
		View:         view,
	}, cfg.JWTSecret)

	cleanup := func() {
		_ = redisCache.Close()
		conn.Close()
	}
	return router, cleanup, nil
}
