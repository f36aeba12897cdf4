package app

import (
	"context"
	"fmt"
	"os"

	"github.com/avc-dev/shortlinks/internal/browser"
	"github.com/avc-dev/shortlinks/internal/config"
	"github.com/avc-dev/shortlinks/internal/config/db"
	"github.com/avc-dev/shortlinks/internal/handler"
	"github.com/avc-dev/shortlinks/internal/migrations"
	"github.com/avc-dev/shortlinks/internal/repository"
	"github.com/avc-dev/shortlinks/internal/service"
	"github.com/avc-dev/shortlinks/internal/store"
	"github.com/avc-dev/shortlinks/internal/usecase"
	"go.uber.org/zap"
)

// initDependencies инициализирует все зависимости приложения.
// Возвращаемая функция cleanup освобождает удерживаемые ресурсы
func initDependencies(cfg *config.Config, logger *zap.Logger) (*handler.Console, *service.Sweeper, func(), error) {
	generator := service.NewCodeGenerator(cfg.CodeLength)
	registry := store.NewRegistry(generator.GenerateCode, cfg.Retry.MaxAttempts)
	notifications := store.NewNotifications()
	repo := repository.New(registry, notifications)

	archive, cleanup, err := initArchive(cfg, logger)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize event archive: %w", err)
	}

	linkService := service.NewLinkService(repo, archive, logger)
	sweeper := service.NewSweeper(repo, archive, logger, cfg.SweepInterval)

	authService := service.NewAuthService(cfg.JWTSecret, cfg.IdentityFile)
	userID, err := authService.LoadOrCreateIdentity()
	if err != nil {
		// Идентичность есть, но не сохранилась: работаем без персистентности
		logger.Warn("identity token is not persisted", zap.Error(err))
	}

	uc := usecase.NewLinkUsecase(linkService, cfg, logger)
	console := handler.NewConsole(uc, browser.NewSystemOpener(), logger, userID, os.Stdin, os.Stdout)

	return console, sweeper, cleanup, nil
}

// initArchive подключает архив событий, если задан DSN базы данных.
// Без DSN архив отключён и события жизненного цикла не сохраняются
func initArchive(cfg *config.Config, logger *zap.Logger) (service.EventArchive, func(), error) {
	if cfg.DatabaseDSN == "" {
		logger.Info("Event archive disabled, no database DSN configured")
		return nil, func() {}, nil
	}

	ctx := context.Background()

	database, err := db.NewConfig(cfg.DatabaseDSN).Connect(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	migrator := migrations.NewMigrator(database.DB(), logger)
	if err := migrator.RunUp(); err != nil {
		database.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("Event archive enabled")

	return store.NewArchiveStore(database), database.Close, nil
}
