package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avc-dev/shortlinks/internal/model"
	"github.com/avc-dev/shortlinks/internal/store"
	"go.uber.org/zap"
)

// LinkService содержит бизнес-логику реестра коротких ссылок: создание с
// дедупликацией, регистрацию переходов и выдачу списков
type LinkService struct {
	repo    LinkRepository
	archive EventArchive
	logger  *zap.Logger
}

// NewLinkService создает новый экземпляр LinkService.
// archive может быть nil, тогда события жизненного цикла не архивируются
func NewLinkService(repo LinkRepository, archive EventArchive, logger *zap.Logger) *LinkService {
	return &LinkService{
		repo:    repo,
		archive: archive,
		logger:  logger,
	}
}

// CreateLink создает короткую ссылку или возвращает существующую активную
// ссылку владельца с тем же оригинальным URL. URL принимается как
// непрозрачная строка, валидация остаётся на вызывающей стороне.
// Второй результат true, если ссылка была создана
func (s *LinkService) CreateLink(longURL model.URL, ownerID string, maxClicks int64, ttl time.Duration) (*model.Link, bool, error) {
	link, created, err := s.repo.CreateOrGetLink(ownerID, longURL, maxClicks, ttl, time.Now())
	if err != nil {
		return nil, false, fmt.Errorf("failed to create link: %w", err)
	}

	return link, created, nil
}

// OpenLink регистрирует переход по коду и возвращает оригинальный URL.
// Проверка активности, инкремент счётчика и повторная проверка выполняются
// атомарно на уровне записи: два конкурентных перехода на последний
// оставшийся клик не превысят лимит, и уведомление об исчерпании лимита
// будет добавлено ровно один раз
func (s *LinkService) OpenLink(code model.Code, requesterID string) (model.URL, error) {
	link, err := s.repo.GetLinkByCode(code)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", fmt.Errorf("code %s: %w", code, ErrLinkNotFound)
		}
		return "", fmt.Errorf("failed to open link: %w", err)
	}

	exhausted := false
	ok := link.RegisterClick(time.Now(), func() {
		s.repo.AppendNotification(link.OwnerID(), fmt.Sprintf("Ссылка %s исчерпала лимит переходов.", link.Code()))
		exhausted = true
	})

	if !ok {
		return "", fmt.Errorf("code %s: %w", code, ErrLinkInactive)
	}

	if exhausted {
		s.logger.Info("link exhausted click limit",
			zap.String("code", link.Code().String()),
			zap.String("owner_id", link.OwnerID()),
			zap.Int64("max_clicks", link.MaxClicks()),
		)
		s.archiveEvent(link, model.EventLimitExhausted)
	}

	return link.LongURL(), nil
}

// ListLinks возвращает снимки всех ссылок владельца, включая неактивные,
// ещё не удалённые свипером. Пустой список означает отсутствие ссылок
func (s *LinkService) ListLinks(ownerID string) []model.LinkSummary {
	links := s.repo.ListLinksByOwner(ownerID)
	now := time.Now()

	summaries := make([]model.LinkSummary, 0, len(links))
	for _, link := range links {
		summaries = append(summaries, link.Summary(now))
	}

	return summaries
}

// Notifications возвращает накопленные уведомления владельца и очищает
// очередь
func (s *LinkService) Notifications(ownerID string) []model.Notification {
	return s.repo.DrainNotifications(ownerID)
}

// archiveEvent сохраняет событие жизненного цикла в архив (best-effort)
func (s *LinkService) archiveEvent(link *model.Link, event model.EventType) {
	if s.archive == nil {
		return
	}

	err := s.archive.SaveEvent(context.Background(), model.LinkEvent{
		Code:       link.Code(),
		LongURL:    link.LongURL(),
		OwnerID:    link.OwnerID(),
		Event:      event,
		Clicks:     link.Clicks(),
		OccurredAt: time.Now(),
	})
	if err != nil {
		s.logger.Warn("failed to archive link event",
			zap.String("code", link.Code().String()),
			zap.String("event", string(event)),
			zap.Error(err),
		)
	}
}
