package model

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLink_IsActive проверяет предикат активности для разных комбинаций
// лимита и TTL
func TestLink_IsActive(t *testing.T) {
	createdAt := time.Now()

	tests := []struct {
		name      string
		ttl       time.Duration
		maxClicks int64
		clicks    int64
		now       time.Time
		want      bool
	}{
		{
			name:      "Fresh link without limit",
			ttl:       time.Hour,
			maxClicks: 0,
			clicks:    0,
			now:       createdAt.Add(time.Minute),
			want:      true,
		},
		{
			name:      "Fresh link with limit",
			ttl:       time.Hour,
			maxClicks: 5,
			clicks:    0,
			now:       createdAt.Add(time.Minute),
			want:      true,
		},
		{
			name:      "Limit exhausted",
			ttl:       time.Hour,
			maxClicks: 3,
			clicks:    3,
			now:       createdAt.Add(time.Minute),
			want:      false,
		},
		{
			name:      "TTL expired",
			ttl:       time.Hour,
			maxClicks: 0,
			clicks:    0,
			now:       createdAt.Add(time.Hour + time.Second),
			want:      false,
		},
		{
			name:      "TTL boundary is inclusive",
			ttl:       time.Hour,
			maxClicks: 0,
			clicks:    0,
			now:       createdAt.Add(time.Hour),
			want:      false,
		},
		{
			name:      "Zero TTL never expires by time",
			ttl:       0,
			maxClicks: 0,
			clicks:    0,
			now:       createdAt.Add(24 * 365 * time.Hour),
			want:      true,
		},
		{
			name:      "Unlimited clicks stay active",
			ttl:       time.Hour,
			maxClicks: 0,
			clicks:    1000,
			now:       createdAt.Add(time.Minute),
			want:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			link := NewLink("abc123", "https://example.com", "user-1", createdAt, tt.ttl, tt.maxClicks)
			for i := int64(0); i < tt.clicks; i++ {
				link.RegisterClick(createdAt, nil)
			}

			// Act
			got := link.IsActive(tt.now)

			// Assert
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestLink_ExpiredByTime проверяет чисто временной предикат истечения,
// независимый от лимита переходов
func TestLink_ExpiredByTime(t *testing.T) {
	createdAt := time.Now()

	// Arrange
	link := NewLink("abc123", "https://example.com", "user-1", createdAt, time.Hour, 1)
	require.True(t, link.RegisterClick(createdAt, nil))

	// Assert - лимит исчерпан, но время ещё не вышло
	assert.False(t, link.IsActive(createdAt.Add(time.Minute)))
	assert.False(t, link.ExpiredByTime(createdAt.Add(time.Minute)))
	assert.True(t, link.ExpiredByTime(createdAt.Add(2*time.Hour)))

	// Нулевой TTL не истекает никогда
	eternal := NewLink("xyz999", "https://example.com", "user-1", createdAt, 0, 0)
	assert.False(t, eternal.ExpiredByTime(createdAt.Add(24*365*time.Hour)))
}

// TestLink_RegisterClick_Limit проверяет, что счётчик не превышает лимит и
// колбек исчерпания вызывается ровно один раз
func TestLink_RegisterClick_Limit(t *testing.T) {
	// Arrange
	createdAt := time.Now()
	link := NewLink("abc123", "https://example.com", "user-1", createdAt, time.Hour, 3)
	exhausted := 0

	// Act
	for i := 0; i < 3; i++ {
		ok := link.RegisterClick(createdAt, func() { exhausted++ })
		require.True(t, ok, "click %d should succeed", i+1)
	}
	ok := link.RegisterClick(createdAt, func() { exhausted++ })

	// Assert
	assert.False(t, ok, "click beyond the limit must fail")
	assert.Equal(t, int64(3), link.Clicks())
	assert.Equal(t, 1, exhausted)
}

// TestLink_RegisterClick_NoMutationWhenInactive проверяет, что неуспешный
// переход не мутирует счётчик
func TestLink_RegisterClick_NoMutationWhenInactive(t *testing.T) {
	// Arrange
	createdAt := time.Now().Add(-2 * time.Hour)
	link := NewLink("abc123", "https://example.com", "user-1", createdAt, time.Hour, 0)

	// Act
	ok := link.RegisterClick(time.Now(), nil)

	// Assert
	assert.False(t, ok)
	assert.Equal(t, int64(0), link.Clicks())
}

// TestLink_RegisterClick_Concurrent проверяет, что конкурентные переходы
// никогда не превышают лимит, а уведомление об исчерпании одно
func TestLink_RegisterClick_Concurrent(t *testing.T) {
	// Arrange
	const (
		maxClicks = 5
		openers   = 50
	)

	createdAt := time.Now()
	link := NewLink("abc123", "https://example.com", "user-1", createdAt, time.Hour, maxClicks)

	var (
		succeeded int64
		exhausted int64
		wg        sync.WaitGroup
	)

	// Act
	for i := 0; i < openers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if link.RegisterClick(time.Now(), func() { atomic.AddInt64(&exhausted, 1) }) {
				atomic.AddInt64(&succeeded, 1)
			}
		}()
	}
	wg.Wait()

	// Assert
	assert.Equal(t, int64(maxClicks), succeeded)
	assert.Equal(t, int64(maxClicks), link.Clicks())
	assert.Equal(t, int64(1), exhausted)
}

// TestLink_Summary проверяет снимок состояния ссылки
func TestLink_Summary(t *testing.T) {
	// Arrange
	createdAt := time.Now()
	link := NewLink("abc123", "https://example.com", "user-1", createdAt, time.Hour, 2)
	require.True(t, link.RegisterClick(createdAt, nil))

	// Act
	summary := link.Summary(createdAt.Add(time.Minute))

	// Assert
	assert.Equal(t, Code("abc123"), summary.Code)
	assert.Equal(t, URL("https://example.com"), summary.LongURL)
	assert.Equal(t, int64(1), summary.Clicks)
	assert.Equal(t, int64(2), summary.MaxClicks)
	assert.True(t, summary.Active)
	assert.Equal(t, createdAt, summary.CreatedAt)
}
