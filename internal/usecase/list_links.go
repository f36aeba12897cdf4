package usecase

import (
	"github.com/avc-dev/shortlinks/internal/model"
	"go.uber.org/zap"
)

// ListLinks возвращает снимки всех ссылок пользователя.
// Пустой список означает "ссылок нет", а не ошибку
func (u *LinkUsecase) ListLinks(userID string) []model.LinkSummary {
	summaries := u.service.ListLinks(userID)

	u.logger.Info("ListLinks called",
		zap.String("user_id", userID),
		zap.Int("links_count", len(summaries)),
	)

	return summaries
}
