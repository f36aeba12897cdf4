package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/avc-dev/shortlinks/internal/model"
	"github.com/avc-dev/shortlinks/internal/repository"
	"github.com/avc-dev/shortlinks/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeArchive архив событий для тестов
type fakeArchive struct {
	mu     sync.Mutex
	events []model.LinkEvent
	err    error
}

func (f *fakeArchive) SaveEvent(_ context.Context, event model.LinkEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return f.err
	}

	f.events = append(f.events, event)
	return nil
}

func (f *fakeArchive) saved() []model.LinkEvent {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]model.LinkEvent(nil), f.events...)
}

// newTestService собирает сервис поверх настоящего реестра и очередей
func newTestService(t *testing.T, archive EventArchive) (*LinkService, *repository.Repository) {
	t.Helper()

	generator := NewCodeGenerator(DefaultCodeLength)
	registry := store.NewRegistry(generator.GenerateCode, 100)
	repo := repository.New(registry, store.NewNotifications())

	return NewLinkService(repo, archive, zap.NewNop()), repo
}

// TestLinkService_Scenario проверяет сквозной сценарий: две удачные
// попытки открытия, третья неактивна, ровно одно уведомление, ссылка
// остаётся в списке с active=false
func TestLinkService_Scenario(t *testing.T) {
	// Arrange
	archive := &fakeArchive{}
	svc, _ := newTestService(t, archive)

	link, created, err := svc.CreateLink("https://example.com", "user-1", 2, time.Hour)
	require.NoError(t, err)
	require.True(t, created)

	// Act - открываем дважды, оба раза успешно
	for i := 0; i < 2; i++ {
		longURL, err := svc.OpenLink(link.Code(), "user-1")
		require.NoError(t, err)
		assert.Equal(t, model.URL("https://example.com"), longURL)
	}

	// Третья попытка - ссылка неактивна
	_, err = svc.OpenLink(link.Code(), "user-1")

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLinkInactive)
	assert.Equal(t, int64(2), link.Clicks())

	notes := svc.Notifications("user-1")
	require.Len(t, notes, 1)
	assert.Contains(t, notes[0].Text, link.Code().String())
	assert.Contains(t, notes[0].Text, "исчерпала лимит")

	summaries := svc.ListLinks("user-1")
	require.Len(t, summaries, 1)
	assert.False(t, summaries[0].Active)
	assert.Equal(t, int64(2), summaries[0].Clicks)

	events := archive.saved()
	require.Len(t, events, 1)
	assert.Equal(t, model.EventLimitExhausted, events[0].Event)
	assert.Equal(t, link.Code(), events[0].Code)
}

// TestLinkService_OpenLink_NotFound проверяет ошибку при неизвестном коде
func TestLinkService_OpenLink_NotFound(t *testing.T) {
	// Arrange
	svc, _ := newTestService(t, nil)

	// Act
	longURL, err := svc.OpenLink("missing", "user-1")

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLinkNotFound)
	assert.Empty(t, longURL)
}

// TestLinkService_CreateLink_Idempotent проверяет, что повторное создание
// активной ссылки возвращает тот же код
func TestLinkService_CreateLink_Idempotent(t *testing.T) {
	// Arrange
	svc, _ := newTestService(t, nil)

	first, created, err := svc.CreateLink("https://example.com", "user-1", 0, time.Hour)
	require.NoError(t, err)
	require.True(t, created)

	// Act
	second, created, err := svc.CreateLink("https://example.com", "user-1", 0, time.Hour)

	// Assert
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.Code(), second.Code())
	assert.Len(t, svc.ListLinks("user-1"), 1)
}

// TestLinkService_OpenLink_ConcurrentLastClick проверяет гонку за
// последние клики: успешных переходов ровно maxClicks, уведомление одно
func TestLinkService_OpenLink_ConcurrentLastClick(t *testing.T) {
	// Arrange
	const (
		maxClicks = 3
		openers   = 10
	)

	svc, _ := newTestService(t, nil)

	link, _, err := svc.CreateLink("https://example.com", "user-1", maxClicks, time.Hour)
	require.NoError(t, err)

	var (
		succeeded int
		inactive  int
		mu        sync.Mutex
		wg        sync.WaitGroup
	)

	// Act
	for i := 0; i < openers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			_, err := svc.OpenLink(link.Code(), "user-1")

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, ErrLinkInactive):
				inactive++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	// Assert
	assert.Equal(t, maxClicks, succeeded)
	assert.Equal(t, openers-maxClicks, inactive)
	assert.Equal(t, int64(maxClicks), link.Clicks())
	assert.Len(t, svc.Notifications("user-1"), 1)
}

// TestLinkService_Notifications_DrainTwice проверяет деструктивное чтение
// очереди уведомлений
func TestLinkService_Notifications_DrainTwice(t *testing.T) {
	// Arrange
	svc, repo := newTestService(t, nil)
	repo.AppendNotification("user-1", "первое")
	repo.AppendNotification("user-1", "второе")

	// Act
	first := svc.Notifications("user-1")
	second := svc.Notifications("user-1")

	// Assert
	require.Len(t, first, 2)
	assert.Empty(t, second)
}

// TestLinkService_ArchiveFailure проверяет, что ошибка архива не ломает
// регистрацию перехода
func TestLinkService_ArchiveFailure(t *testing.T) {
	// Arrange
	archive := &fakeArchive{err: errors.New("db is down")}
	svc, _ := newTestService(t, archive)

	link, _, err := svc.CreateLink("https://example.com", "user-1", 1, time.Hour)
	require.NoError(t, err)

	// Act
	longURL, err := svc.OpenLink(link.Code(), "user-1")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, model.URL("https://example.com"), longURL)
	assert.Len(t, svc.Notifications("user-1"), 1)
}
