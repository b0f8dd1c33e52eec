package repo

import "TaskBuckets/internal/cli/cache"

// CacheRepository определяет порт сохранения кэша клиента между запусками.
type CacheRepository interface {
	// Load возвращает сохранённые записи.
	Load() ([]cache.Record, error)

	// Save заменяет сохранённое содержимое переданными записями.
	Save(records []cache.Record) error

	// Clear удаляет все сохранённые записи.
	Clear() error

	Close() error
}
