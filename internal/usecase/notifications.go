package usecase

import (
	"github.com/avc-dev/shortlinks/internal/model"
	"go.uber.org/zap"
)

// Notifications возвращает накопленные уведомления пользователя и очищает
// его очередь (деструктивное чтение)
func (u *LinkUsecase) Notifications(userID string) []model.Notification {
	notes := u.service.Notifications(userID)

	u.logger.Info("notifications drained",
		zap.String("user_id", userID),
		zap.Int("count", len(notes)),
	)

	return notes
}
