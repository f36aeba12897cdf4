package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config конфигурация приложения.
// Значения читаются из переменных окружения, флаги командной строки имеют
// приоритет над окружением
type Config struct {
	// BaseURL префикс коротких ссылок в выводе консоли
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost/"`
	// DefaultTTL время жизни ссылки с момента создания
	DefaultTTL time.Duration `env:"DEFAULT_TTL" envDefault:"24h"`
	// CodeLength длина короткого кода
	CodeLength int `env:"CODE_LENGTH" envDefault:"6"`
	// SweepInterval период фоновой очистки истёкших ссылок
	SweepInterval time.Duration `env:"SWEEP_INTERVAL" envDefault:"60s"`
	// IdentityFile путь к файлу токена идентичности пользователя
	IdentityFile string `env:"IDENTITY_FILE" envDefault:"user.token"`
	// JWTSecret секрет подписи токена идентичности
	JWTSecret string `env:"JWT_SECRET" envDefault:"shortlinks-dev-secret"`
	// DatabaseDSN строка подключения к PostgreSQL для архива событий.
	// Пустое значение отключает архив
	DatabaseDSN string `env:"DATABASE_DSN"`

	Retry RetryConfig
}

// RetryConfig настройки повторной генерации кода при коллизиях
type RetryConfig struct {
	MaxAttempts int `env:"GEN_MAX_ATTEMPTS" envDefault:"100"`
}

// Load читает конфигурацию из окружения и применяет флаги командной строки
func Load(args []string) (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	fs := flag.NewFlagSet("shortlinks", flag.ContinueOnError)
	fs.StringVar(&cfg.BaseURL, "b", cfg.BaseURL, "base URL for shortened links")
	fs.DurationVar(&cfg.DefaultTTL, "t", cfg.DefaultTTL, "default link TTL")
	fs.IntVar(&cfg.CodeLength, "l", cfg.CodeLength, "short code length")
	fs.DurationVar(&cfg.SweepInterval, "s", cfg.SweepInterval, "expiry sweep interval")
	fs.StringVar(&cfg.IdentityFile, "f", cfg.IdentityFile, "identity token file path")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN for the event archive")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	if cfg.CodeLength <= 0 {
		return nil, fmt.Errorf("code length must be positive, got %d", cfg.CodeLength)
	}

	if cfg.SweepInterval <= 0 {
		return nil, fmt.Errorf("sweep interval must be positive, got %s", cfg.SweepInterval)
	}

	return cfg, nil
}
