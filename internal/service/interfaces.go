package service

import (
	"context"
	"time"

	"github.com/avc-dev/shortlinks/internal/model"
)

// LinkRepository определяет методы для работы с реестром ссылок и
// очередями уведомлений
type LinkRepository interface {
	CreateOrGetLink(ownerID string, longURL model.URL, maxClicks int64, ttl time.Duration, now time.Time) (*model.Link, bool, error)
	GetLinkByCode(code model.Code) (*model.Link, error)
	ListLinksByOwner(ownerID string) []*model.Link
	RemoveExpiredLinks(now time.Time) []*model.Link
	AppendNotification(ownerID string, text string)
	DrainNotifications(ownerID string) []model.Notification
}

// EventArchive определяет архив событий жизненного цикла ссылок.
// Запись выполняется по принципу best-effort, nil-архив означает
// отключённый архив
type EventArchive interface {
	SaveEvent(ctx context.Context, event model.LinkEvent) error
}
