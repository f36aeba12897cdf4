package model

import "time"

// EventType тип события жизненного цикла ссылки
type EventType string

const (
	// EventLimitExhausted — лимит переходов исчерпан
	EventLimitExhausted EventType = "limit_exhausted"
	// EventTTLExpired — ссылка удалена по истечению TTL
	EventTTLExpired EventType = "ttl_expired"
)

// LinkEvent представляет запись о событии жизненного цикла для архива
type LinkEvent struct {
	Code       Code
	LongURL    URL
	OwnerID    string
	Event      EventType
	Clicks     int64
	OccurredAt time.Time
}
