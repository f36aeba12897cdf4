package usecase

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/avc-dev/shortlinks/internal/model"
	"go.uber.org/zap"
)

// CreateResult результат создания короткой ссылки
type CreateResult struct {
	Code     model.Code
	ShortURL string
	Created  bool
}

// CreateShortLinkFromString создает короткую ссылку из строки оригинального
// URL. Выполняет очистку и валидацию строки, TTL берётся из конфигурации.
// Повторное создание той же активной ссылки идемпотентно
func (u *LinkUsecase) CreateShortLinkFromString(urlString string, userID string, maxClicks int64) (CreateResult, error) {
	urlString = strings.TrimSpace(urlString)
	urlString = strings.Trim(urlString, `"'`)

	if urlString == "" {
		return CreateResult{}, ErrEmptyURL
	}

	parsedURL, err := url.Parse(urlString)
	if err != nil || parsedURL.Scheme == "" || parsedURL.Host == "" {
		return CreateResult{}, ErrInvalidURL
	}

	link, created, err := u.service.CreateLink(model.URL(urlString), userID, maxClicks, u.cfg.DefaultTTL)
	if err != nil {
		u.logger.Error("failed to create short link",
			zap.String("original_url", urlString),
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return CreateResult{}, fmt.Errorf("%w: %w", ErrServiceUnavailable, err)
	}

	shortURL, err := url.JoinPath(u.cfg.BaseURL, string(link.Code()))
	if err != nil {
		u.logger.Error("failed to build short URL",
			zap.String("base_url", u.cfg.BaseURL),
			zap.String("code", link.Code().String()),
			zap.Error(err),
		)
		return CreateResult{}, fmt.Errorf("%w: failed to build short URL: %w", ErrServiceUnavailable, err)
	}

	u.logger.Info("short link ready",
		zap.String("code", link.Code().String()),
		zap.Bool("created", created),
		zap.Int64("max_clicks", maxClicks),
	)

	return CreateResult{
		Code:     link.Code(),
		ShortURL: shortURL,
		Created:  created,
	}, nil
}
