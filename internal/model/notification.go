package model

import "time"

// Notification представляет сообщение владельцу ссылки о смене её состояния
// (исчерпание лимита переходов или удаление по истечению TTL)
type Notification struct {
	CreatedAt time.Time
	Text      string
}
