// createuser заводит автора или администратора блога:
//
//	go run ./cmd/createuser -username admin -password 'secret123' -role admin
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"blog/internal/config"
	"blog/internal/db"
	"blog/internal/logger"
	"blog/internal/repository"
	"blog/internal/services"

	"go.uber.org/zap"
)

func main() {
	username := flag.String("username", "", "имя пользователя")
	email := flag.String("email", "", "email (необязательно)")
	password := flag.String("password", "", "пароль, не короче 8 символов")
	role := flag.String("role", "admin", "admin или author")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	conn, err := db.NewPostgresConnection(cfg)
	if err != nil {
		logger.Log.Fatal("Ошибка подключения к БД", zap.Error(err))
	}
	defer conn.Close()

	ctx := context.Background()
	if err := db.Migrate(ctx, conn); err != nil {
		logger.Log.Fatal("Ошибка миграций", zap.Error(err))
	}

	auth := services.NewAuthService(repository.NewUserRepository(conn), cfg.JWTSecret, cfg.AccessTTL())
	id, err := auth.CreateUser(ctx, *username, *email, *password, *role)
	if err != nil {
		logger.Log.Fatal("Не удалось создать пользователя", zap.Error(err))
	}
	fmt.Printf("user %q saved with id %d\n", *username, id)
}
