package store

import (
	"context"
	"fmt"

	"github.com/avc-dev/shortlinks/internal/config/db"
	"github.com/avc-dev/shortlinks/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ArchiveStore реализует архив событий жизненного цикла ссылок в PostgreSQL.
// Архив пополняется сервисом и свипером по принципу best-effort: ошибка
// записи логируется вызывающим и не влияет на состояние реестра
type ArchiveStore struct {
	pool *pgxpool.Pool
}

// NewArchiveStore создает новый ArchiveStore
func NewArchiveStore(database db.Database) *ArchiveStore {
	// Получаем pgxpool.Pool из адаптера
	adapter, ok := database.(*db.DBAdapter)
	if !ok {
		panic("ArchiveStore requires DBAdapter")
	}

	return &ArchiveStore{
		pool: adapter.Pool,
	}
}

// SaveEvent сохраняет событие жизненного цикла в архив
func (as *ArchiveStore) SaveEvent(ctx context.Context, event model.LinkEvent) error {
	query := `
		INSERT INTO link_events (code, long_url, owner_id, event, clicks, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := as.pool.Exec(ctx, query,
		string(event.Code),
		string(event.LongURL),
		event.OwnerID,
		string(event.Event),
		event.Clicks,
		event.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert link event: %w", err)
	}

	return nil
}
