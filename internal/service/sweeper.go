package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/avc-dev/shortlinks/internal/model"
	"go.uber.org/zap"
)

// Sweeper периодически удаляет из реестра ссылки с истёкшим TTL и
// уведомляет владельцев. Ссылки с исчерпанным лимитом, но живым TTL,
// свипер не трогает. Каждый проход независим: паника одного прохода
// логируется и не останавливает расписание
type Sweeper struct {
	repo    LinkRepository
	archive EventArchive
	logger  *zap.Logger

	interval time.Duration

	startOnce sync.Once
	stopOnce  sync.Once
	stop      chan struct{}
	done      chan struct{}
}

// NewSweeper создает новый Sweeper.
// archive может быть nil, тогда удаления не архивируются
func NewSweeper(repo LinkRepository, archive EventArchive, logger *zap.Logger, interval time.Duration) *Sweeper {
	return &Sweeper{
		repo:     repo,
		archive:  archive,
		logger:   logger,
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start запускает фоновую горутину свипера. Повторные вызовы игнорируются
func (s *Sweeper) Start() {
	s.startOnce.Do(func() {
		go s.run()
	})
}

// Stop останавливает свипер и дожидается завершения фоновой горутины.
// Выполняющийся проход не прерывается
func (s *Sweeper) Stop() {
	s.stopOnce.Do(func() {
		close(s.stop)
	})
	<-s.done
}

func (s *Sweeper) run() {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.safeSweep(time.Now())
		}
	}
}

// safeSweep выполняет один проход, гася панику, чтобы не уронить расписание
func (s *Sweeper) safeSweep(now time.Time) {
	defer func() {
		if p := recover(); p != nil {
			s.logger.Error("sweep panicked", zap.Any("panic", p))
		}
	}()

	s.Sweep(now)
}

// Sweep выполняет один проход очистки: собирает истёкшие по времени записи,
// удаляет их из реестра и добавляет по одному уведомлению на удаление
func (s *Sweeper) Sweep(now time.Time) {
	removed := s.repo.RemoveExpiredLinks(now)
	if len(removed) == 0 {
		return
	}

	for _, link := range removed {
		s.repo.AppendNotification(link.OwnerID(), fmt.Sprintf("Ссылка %s удалена по истечению TTL.", link.Code()))
		s.archiveRemoval(link, now)
	}

	s.logger.Info("swept expired links", zap.Int("removed", len(removed)))
}

// archiveRemoval сохраняет событие удаления в архив (best-effort)
func (s *Sweeper) archiveRemoval(link *model.Link, now time.Time) {
	if s.archive == nil {
		return
	}

	err := s.archive.SaveEvent(context.Background(), model.LinkEvent{
		Code:       link.Code(),
		LongURL:    link.LongURL(),
		OwnerID:    link.OwnerID(),
		Event:      model.EventTTLExpired,
		Clicks:     link.Clicks(),
		OccurredAt: now,
	})
	if err != nil {
		s.logger.Warn("failed to archive link removal",
			zap.String("code", link.Code().String()),
			zap.Error(err),
		)
	}
}
