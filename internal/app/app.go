package app

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/avc-dev/shortlinks/internal/config"
	"github.com/avc-dev/shortlinks/internal/handler"
	"github.com/avc-dev/shortlinks/internal/service"
	"go.uber.org/zap"
)

// App представляет консольное приложение реестра коротких ссылок
type App struct {
	config  *config.Config
	logger  *zap.Logger
	console *handler.Console
	sweeper *service.Sweeper
	cleanup func()
}

// New создает новый экземпляр приложения
func New(args []string) (*App, error) {
	cfg, err := config.Load(args)
	if err != nil {
		return nil, err
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}

	console, sweeper, cleanup, err := initDependencies(cfg, logger)
	if err != nil {
		logger.Sync()
		return nil, err
	}

	return &App{
		config:  cfg,
		logger:  logger,
		console: console,
		sweeper: sweeper,
		cleanup: cleanup,
	}, nil
}

// Run запускает приложение: фоновый свипер и консольный цикл.
// По завершении консоли свипер останавливается, ресурсы освобождаются
func Run(args []string) error {
	app, err := New(args)
	if err != nil {
		return err
	}
	defer app.logger.Sync()
	defer app.cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app.sweeper.Start()
	defer app.sweeper.Stop()

	app.logger.Info("Starting shortlinks console",
		zap.Duration("default_ttl", app.config.DefaultTTL),
		zap.Duration("sweep_interval", app.config.SweepInterval),
		zap.Int("code_length", app.config.CodeLength),
	)

	return app.console.Run(ctx)
}
