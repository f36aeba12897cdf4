package model

import (
	"sync"
	"time"
)

type Code string

func (c Code) String() string {
	return string(c)
}

type URL string

func (U URL) String() string {
	return string(U)
}

// Link представляет короткую ссылку и её жизненный цикл: привязку кода к
// оригинальному URL, владельца, TTL и лимит переходов.
// Счётчик переходов мутируется только под собственным мьютексом записи,
// все остальные поля неизменяемы после создания.
type Link struct {
	code      Code
	longURL   URL
	ownerID   string
	createdAt time.Time
	ttl       time.Duration
	maxClicks int64

	mu     sync.Mutex
	clicks int64
}

// NewLink создает новую запись ссылки с нулевым счётчиком переходов
func NewLink(code Code, longURL URL, ownerID string, createdAt time.Time, ttl time.Duration, maxClicks int64) *Link {
	return &Link{
		code:      code,
		longURL:   longURL,
		ownerID:   ownerID,
		createdAt: createdAt,
		ttl:       ttl,
		maxClicks: maxClicks,
	}
}

func (l *Link) Code() Code {
	return l.code
}

func (l *Link) LongURL() URL {
	return l.longURL
}

func (l *Link) OwnerID() string {
	return l.ownerID
}

func (l *Link) CreatedAt() time.Time {
	return l.createdAt
}

func (l *Link) MaxClicks() int64 {
	return l.maxClicks
}

// Clicks возвращает текущее значение счётчика переходов
func (l *Link) Clicks() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.clicks
}

// IsActive вычисляет активность ссылки на момент now: лимит переходов не
// исчерпан и TTL не истёк. Результат не кешируется
func (l *Link) IsActive(now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.isActiveLocked(now)
}

// isActiveLocked вычисляет предикат активности; вызывающий держит l.mu
func (l *Link) isActiveLocked(now time.Time) bool {
	if l.maxClicks > 0 && l.clicks >= l.maxClicks {
		return false
	}

	return !l.expiredByTime(now)
}

// ExpiredByTime проверяет истечение TTL; предикат чисто временной и не
// зависит от лимита переходов. ttl <= 0 означает "не истекает никогда"
func (l *Link) ExpiredByTime(now time.Time) bool {
	return l.expiredByTime(now)
}

func (l *Link) expiredByTime(now time.Time) bool {
	if l.ttl <= 0 {
		return false
	}

	return !now.Before(l.createdAt.Add(l.ttl))
}

// RegisterClick атомарно регистрирует переход: проверка активности,
// инкремент счётчика и повторная проверка выполняются в одной критической
// секции. Если ссылка неактивна, возвращает false без мутации.
// Если именно этот переход исчерпал лимит, onExhausted вызывается ровно
// один раз, не выходя из критической секции
func (l *Link) RegisterClick(now time.Time, onExhausted func()) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.isActiveLocked(now) {
		return false
	}

	l.clicks++

	if !l.isActiveLocked(now) && onExhausted != nil {
		onExhausted()
	}

	return true
}

// LinkSummary представляет снимок состояния ссылки для вывода списка
type LinkSummary struct {
	Code      Code
	LongURL   URL
	Clicks    int64
	MaxClicks int64
	Active    bool
	CreatedAt time.Time
}

// Summary возвращает консистентный снимок состояния ссылки на момент now
func (l *Link) Summary(now time.Time) LinkSummary {
	l.mu.Lock()
	defer l.mu.Unlock()

	return LinkSummary{
		Code:      l.code,
		LongURL:   l.longURL,
		Clicks:    l.clicks,
		MaxClicks: l.maxClicks,
		Active:    l.isActiveLocked(now),
		CreatedAt: l.createdAt,
	}
}
