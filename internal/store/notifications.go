package store

import (
	"sync"
	"time"

	"github.com/avc-dev/shortlinks/internal/model"
)

// Notifications хранит очереди уведомлений по владельцам.
// Очереди неограниченны, Append никогда не блокируется
type Notifications struct {
	queues sync.Map // string -> *notificationQueue
}

type notificationQueue struct {
	mu    sync.Mutex
	items []model.Notification
}

// NewNotifications создает новое хранилище очередей уведомлений
func NewNotifications() *Notifications {
	return &Notifications{}
}

// Append добавляет сообщение с меткой времени в очередь владельца,
// создавая очередь при отсутствии
func (n *Notifications) Append(ownerID string, text string) {
	q := n.queue(ownerID)

	q.mu.Lock()
	defer q.mu.Unlock()

	q.items = append(q.items, model.Notification{
		CreatedAt: time.Now(),
		Text:      text,
	})
}

// Drain возвращает все накопленные сообщения владельца в порядке
// добавления и очищает очередь. Для неизвестного владельца и для пустой
// очереди возвращается пустой результат
func (n *Notifications) Drain(ownerID string) []model.Notification {
	q := n.queue(ownerID)

	q.mu.Lock()
	defer q.mu.Unlock()

	items := q.items
	q.items = nil

	return items
}

func (n *Notifications) queue(ownerID string) *notificationQueue {
	value, _ := n.queues.LoadOrStore(ownerID, &notificationQueue{})
	return value.(*notificationQueue)
}
