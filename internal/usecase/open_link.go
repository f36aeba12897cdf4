package usecase

import (
	"errors"
	"fmt"

	"github.com/avc-dev/shortlinks/internal/model"
	"github.com/avc-dev/shortlinks/internal/service"
	"go.uber.org/zap"
)

// OpenLink регистрирует переход по коду и возвращает оригинальный URL
func (u *LinkUsecase) OpenLink(code string, userID string) (string, error) {
	longURL, err := u.service.OpenLink(model.Code(code), userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLinkNotFound):
			return "", fmt.Errorf("%w: %w", ErrLinkNotFound, err)
		case errors.Is(err, service.ErrLinkInactive):
			return "", fmt.Errorf("%w: %w", ErrLinkInactive, err)
		default:
			u.logger.Error("failed to open link",
				zap.String("code", code),
				zap.String("user_id", userID),
				zap.Error(err),
			)
			return "", fmt.Errorf("%w: %w", ErrServiceUnavailable, err)
		}
	}

	u.logger.Info("link opened",
		zap.String("code", code),
		zap.String("user_id", userID),
	)

	return longURL.String(), nil
}
