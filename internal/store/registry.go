package store

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/avc-dev/shortlinks/internal/model"
)

var (
	ErrNotFound           = errors.New("code not found")
	ErrMaxRetriesExceeded = errors.New("max retries exceeded for code generation")
)

// NewCodeFunc возвращает случайный кандидат короткого кода.
// Уникальность кандидата не гарантируется, её обеспечивает Registry
type NewCodeFunc func() model.Code

// Registry реализует in-memory хранилище ссылок: индекс код→запись и
// индекс владелец→коды. Глобальной блокировки нет: индекс кодов — sync.Map,
// дедупликация и вставка сериализуются мьютексом владельца, мутация
// счётчика переходов — мьютексом самой записи
type Registry struct {
	newCode     NewCodeFunc
	maxAttempts int

	codes  sync.Map // model.Code -> *model.Link
	owners sync.Map // string -> *ownerCodes
}

// ownerCodes набор кодов одного владельца.
// mu сериализует сканирование дубликатов и вставку нового кода
type ownerCodes struct {
	mu    sync.Mutex
	codes []model.Code
}

// NewRegistry создает новое хранилище ссылок.
// newCode используется для чеканки кодов, maxAttempts ограничивает
// количество попыток при коллизиях
func NewRegistry(newCode NewCodeFunc, maxAttempts int) *Registry {
	return &Registry{
		newCode:     newCode,
		maxAttempts: maxAttempts,
	}
}

// CreateOrGet возвращает существующую активную ссылку владельца с тем же
// оригинальным URL или создает новую запись. Сканирование дубликатов и
// вставка выполняются под мьютексом владельца, поэтому два конкурентных
// вызова для одного владельца не создадут две записи на один URL.
// Второй результат true, если запись была создана
func (r *Registry) CreateOrGet(ownerID string, longURL model.URL, maxClicks int64, ttl time.Duration, now time.Time) (*model.Link, bool, error) {
	owner := r.owner(ownerID)

	owner.mu.Lock()
	defer owner.mu.Unlock()

	for _, code := range owner.codes {
		value, ok := r.codes.Load(code)
		if !ok {
			continue
		}

		link := value.(*model.Link)
		if link.LongURL() == longURL && link.IsActive(now) {
			return link, false, nil
		}
	}

	for attempt := 0; attempt < r.maxAttempts; attempt++ {
		code := r.newCode()
		link := model.NewLink(code, longURL, ownerID, now, ttl, maxClicks)

		// LoadOrStore атомарно отбрасывает кандидата, если код уже занят
		if _, loaded := r.codes.LoadOrStore(code, link); loaded {
			continue
		}

		owner.codes = append(owner.codes, code)

		return link, true, nil
	}

	return nil, false, fmt.Errorf("failed to generate unique code after %d attempts: %w", r.maxAttempts, ErrMaxRetriesExceeded)
}

// Get возвращает запись по коду
func (r *Registry) Get(code model.Code) (*model.Link, error) {
	value, ok := r.codes.Load(code)
	if !ok {
		return nil, fmt.Errorf("code %s: %w", code, ErrNotFound)
	}

	return value.(*model.Link), nil
}

// ListByOwner возвращает все записи владельца, ещё присутствующие в индексе
// кодов. Порядок соответствует порядку создания
func (r *Registry) ListByOwner(ownerID string) []*model.Link {
	owner := r.owner(ownerID)

	owner.mu.Lock()
	codes := make([]model.Code, len(owner.codes))
	copy(codes, owner.codes)
	owner.mu.Unlock()

	links := make([]*model.Link, 0, len(codes))
	for _, code := range codes {
		if value, ok := r.codes.Load(code); ok {
			links = append(links, value.(*model.Link))
		}
	}

	return links
}

// RemoveExpired удаляет все записи, истёкшие по времени на момент now, и
// возвращает их. Сначала собирается снимок истёкших кодов, затем каждый
// удаляется из обоих индексов. Записи с исчерпанным лимитом, но живым TTL,
// не удаляются
func (r *Registry) RemoveExpired(now time.Time) []*model.Link {
	var expired []model.Code

	r.codes.Range(func(_, value any) bool {
		link := value.(*model.Link)
		if link.ExpiredByTime(now) {
			expired = append(expired, link.Code())
		}
		return true
	})

	removed := make([]*model.Link, 0, len(expired))
	for _, code := range expired {
		value, ok := r.codes.LoadAndDelete(code)
		if !ok {
			continue
		}

		link := value.(*model.Link)
		r.removeOwnerCode(link.OwnerID(), code)
		removed = append(removed, link)
	}

	return removed
}

// owner возвращает набор кодов владельца, создавая его при отсутствии
func (r *Registry) owner(ownerID string) *ownerCodes {
	value, _ := r.owners.LoadOrStore(ownerID, &ownerCodes{})
	return value.(*ownerCodes)
}

// removeOwnerCode удаляет код из набора владельца
func (r *Registry) removeOwnerCode(ownerID string, code model.Code) {
	owner := r.owner(ownerID)

	owner.mu.Lock()
	defer owner.mu.Unlock()

	for i, c := range owner.codes {
		if c == code {
			owner.codes = append(owner.codes[:i], owner.codes[i+1:]...)
			return
		}
	}
}
