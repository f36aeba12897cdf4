package repository

import (
	"fmt"
	"time"

	"github.com/avc-dev/shortlinks/internal/model"
)

// LinkStore определяет методы хранилища ссылок
type LinkStore interface {
	CreateOrGet(ownerID string, longURL model.URL, maxClicks int64, ttl time.Duration, now time.Time) (*model.Link, bool, error)
	Get(code model.Code) (*model.Link, error)
	ListByOwner(ownerID string) []*model.Link
	RemoveExpired(now time.Time) []*model.Link
}

// NotificationStore определяет методы хранилища очередей уведомлений
type NotificationStore interface {
	Append(ownerID string, text string)
	Drain(ownerID string) []model.Notification
}

// Repository объединяет хранилище ссылок и очереди уведомлений
type Repository struct {
	links LinkStore
	notes NotificationStore
}

// New создает новый Repository
func New(links LinkStore, notes NotificationStore) *Repository {
	return &Repository{
		links: links,
		notes: notes,
	}
}

// CreateOrGetLink возвращает существующую активную ссылку с тем же URL или
// создает новую запись
func (r *Repository) CreateOrGetLink(ownerID string, longURL model.URL, maxClicks int64, ttl time.Duration, now time.Time) (*model.Link, bool, error) {
	link, created, err := r.links.CreateOrGet(ownerID, longURL, maxClicks, ttl, now)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create or get link: %w", err)
	}

	return link, created, nil
}

// GetLinkByCode возвращает запись по коду
func (r *Repository) GetLinkByCode(code model.Code) (*model.Link, error) {
	link, err := r.links.Get(code)
	if err != nil {
		return nil, fmt.Errorf("failed to get link: %w", err)
	}

	return link, nil
}

// ListLinksByOwner возвращает все записи владельца
func (r *Repository) ListLinksByOwner(ownerID string) []*model.Link {
	return r.links.ListByOwner(ownerID)
}

// RemoveExpiredLinks удаляет и возвращает записи, истёкшие по времени
func (r *Repository) RemoveExpiredLinks(now time.Time) []*model.Link {
	return r.links.RemoveExpired(now)
}

// AppendNotification добавляет уведомление в очередь владельца
func (r *Repository) AppendNotification(ownerID string, text string) {
	r.notes.Append(ownerID, text)
}

// DrainNotifications возвращает и очищает очередь уведомлений владельца
func (r *Repository) DrainNotifications(ownerID string) []model.Notification {
	return r.notes.Drain(ownerID)
}
