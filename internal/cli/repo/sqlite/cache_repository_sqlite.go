package sqlite

import (
	"TaskBuckets/internal/cli/cache"
	"TaskBuckets/internal/cli/repo"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// CacheRepositorySQLite — сохранённый кэш клиента (локальная БД SQLite, файл на пользователя).
type CacheRepositorySQLite struct {
	db    *sql.DB
	login string
}

var _ repo.CacheRepository = (*CacheRepositorySQLite)(nil)

// OpenForUser открывает (и создаёт при необходимости) файл БД для указанного логина
// в каталоге base и возвращает репозиторий. Вторым значением возвращается путь к БД.
func OpenForUser(base, login string) (*CacheRepositorySQLite, string, error) {
	if login == "" {
		return nil, "", errors.New("empty login for user store")
	}
	if base == "" {
		return nil, "", errors.New("client db path is not configured")
	}
	dir := filepath.Join(base, repo.UserDirName(login))
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, "", err
	}
	dbPath := filepath.Join(dir, "cache.sqlite")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, "", err
	}
	return &CacheRepositorySQLite{db: db, login: login}, dbPath, nil
}

// Close закрывает соединение с БД.
func (r *CacheRepositorySQLite) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	return err
}

// Migrate гарантирует наличие необходимых таблиц/индексов.
func (r *CacheRepositorySQLite) Migrate() error {
	_, err := r.db.Exec(initialDDL())
	return err
}

// Load возвращает все сохранённые записи.
func (r *CacheRepositorySQLite) Load() ([]cache.Record, error) {
	rows, err := r.db.Query(`SELECT key, value, stale, updated_at FROM cache_entries ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []cache.Record
	for rows.Next() {
		var (
			rec      cache.Record
			key      string
			value    []byte
			staleInt int
			updated  int64
		)
		if err := rows.Scan(&key, &value, &staleInt, &updated); err != nil {
			return nil, err
		}
		rec.Key = cache.Key(key)
		rec.Data = value
		rec.Stale = staleInt != 0
		rec.UpdatedAt = time.UnixMilli(updated)
		res = append(res, rec)
	}
	return res, rows.Err()
}

// Save заменяет содержимое таблицы переданными записями в одной транзакции.
func (r *CacheRepositorySQLite) Save(records []cache.Record) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		// в случае некоммита — откат
		_ = tx.Rollback()
	}()

	if _, err := tx.Exec(`DELETE FROM cache_entries`); err != nil {
		return err
	}
	stmt, err := tx.Prepare(`INSERT INTO cache_entries(key, value, stale, updated_at) VALUES(?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, rec := range records {
		stale := 0
		if rec.Stale {
			stale = 1
		}
		if _, err := stmt.Exec(string(rec.Key), []byte(rec.Data), stale, rec.UpdatedAt.UnixMilli()); err != nil {
			return fmt.Errorf("save %s: %w", rec.Key, err)
		}
	}
	return tx.Commit()
}

// Clear удаляет все сохранённые записи.
func (r *CacheRepositorySQLite) Clear() error {
	_, err := r.db.Exec(`DELETE FROM cache_entries`)
	return err
}
