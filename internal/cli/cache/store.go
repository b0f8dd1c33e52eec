// Package cache хранит локальное зеркало данных сервера: значение, флаг устаревания
// и поколение последней загрузки для каждой записи.
package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"
)

// Entry — снимок записи для чтения.
type Entry struct {
	Data      json.RawMessage
	Stale     bool
	UpdatedAt time.Time
}

// Record — запись в виде, пригодном для сохранения между запусками.
type Record struct {
	Key       Key
	Data      json.RawMessage
	Stale     bool
	UpdatedAt time.Time
}

type entry struct {
	data      json.RawMessage
	stale     bool
	updatedAt time.Time

	gen    uint64
	cancel context.CancelFunc
}

// Store — потокобезопасный кэш по ключам.
type Store struct {
	mu      sync.Mutex
	entries map[Key]*entry
	now     func() time.Time
}

// New создаёт пустой кэш.
func New() *Store {
	return &Store{entries: map[Key]*entry{}, now: time.Now}
}

func (s *Store) slot(key Key) *entry {
	e, ok := s.entries[key]
	if !ok {
		e = &entry{}
		s.entries[key] = e
	}
	return e
}

// Lookup возвращает запись, если в ней есть данные (свежие или устаревшие).
func (s *Store) Lookup(key Key) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok || e.data == nil {
		return Entry{}, false
	}
	return Entry{Data: clone(e.data), Stale: e.stale, UpdatedAt: e.updatedAt}, true
}

// Set записывает свежее значение.
func (s *Store) Set(key Key, data json.RawMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.slot(key)
	e.data = clone(data)
	e.stale = false
	e.updatedAt = s.now()
}

// Invalidate помечает записи устаревшими; следующее чтение пойдёт на сервер.
func (s *Store) Invalidate(keys ...Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		if e, ok := s.entries[k]; ok {
			e.stale = true
		}
	}
}

// InvalidatePrefix помечает устаревшими все записи, чей ключ начинается с prefix.
func (s *Store) InvalidatePrefix(prefix string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, e := range s.entries {
		if k.HasPrefix(prefix) {
			e.stale = true
		}
	}
}

// InvalidateAll помечает устаревшим весь кэш.
func (s *Store) InvalidateAll() { s.InvalidatePrefix("") }

// Snapshot — сохранённые значения записей для отката.
type Snapshot struct {
	entries map[Key]*Entry // nil — записи не было
}

// Snapshot копирует текущие значения указанных ключей.
func (s *Store) Snapshot(keys ...Key) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{entries: make(map[Key]*Entry, len(keys))}
	for _, k := range keys {
		e, ok := s.entries[k]
		if !ok || e.data == nil {
			snap.entries[k] = nil
			continue
		}
		snap.entries[k] = &Entry{Data: clone(e.data), Stale: e.stale, UpdatedAt: e.updatedAt}
	}
	return snap
}

// Restore возвращает записи к значениям из снимка.
func (s *Store) Restore(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, saved := range snap.entries {
		if saved == nil {
			if e, ok := s.entries[k]; ok {
				e.data = nil
				e.stale = false
			}
			continue
		}
		e := s.slot(k)
		e.data = clone(saved.Data)
		e.stale = saved.Stale
		e.updatedAt = saved.UpdatedAt
	}
}

// Fetch — маркер начатой загрузки записи.
type Fetch struct {
	key Key
	gen uint64
}

// BeginFetch регистрирует загрузку ключа и возвращает контекст, который будет отменён,
// если загрузку вытеснит оптимистичная запись.
func (s *Store) BeginFetch(ctx context.Context, key Key) (context.Context, Fetch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.slot(key)
	if e.cancel != nil {
		e.cancel()
	}
	fctx, cancel := context.WithCancel(ctx)
	e.gen++
	e.cancel = cancel
	return fctx, Fetch{key: key, gen: e.gen}
}

// CommitFetch сохраняет результат загрузки, если её не вытеснили. Возвращает false,
// если результат отброшен.
func (s *Store) CommitFetch(f Fetch, data json.RawMessage) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[f.key]
	if !ok || e.gen != f.gen {
		return false
	}
	e.data = clone(data)
	e.stale = false
	e.updatedAt = s.now()
	e.release()
	return true
}

// EndFetch завершает неудачную загрузку.
func (s *Store) EndFetch(f Fetch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[f.key]; ok && e.gen == f.gen {
		e.release()
	}
}

// CancelFetches отменяет загрузки указанных ключей; их результаты будут отброшены.
func (s *Store) CancelFetches(keys ...Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		e, ok := s.entries[k]
		if !ok {
			continue
		}
		if e.cancel != nil {
			e.cancel()
			e.cancel = nil
		}
		e.gen++
	}
}

// CancelFetchesPrefix — CancelFetches для всех ключей с префиксом.
func (s *Store) CancelFetchesPrefix(prefix string) {
	s.mu.Lock()
	keys := make([]Key, 0)
	for k := range s.entries {
		if k.HasPrefix(prefix) {
			keys = append(keys, k)
		}
	}
	s.mu.Unlock()
	s.CancelFetches(keys...)
}

// Keys возвращает ключи записей с данными, отсортированные.
func (s *Store) Keys() []Key {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]Key, 0, len(s.entries))
	for k, e := range s.entries {
		if e.data != nil {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Clear отменяет все загрузки и очищает кэш (выход пользователя).
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		if e.cancel != nil {
			e.cancel()
		}
	}
	s.entries = map[Key]*entry{}
}

// Entries выгружает записи для сохранения.
func (s *Store) Entries() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Record, 0, len(s.entries))
	for k, e := range s.entries {
		if e.data == nil {
			continue
		}
		out = append(out, Record{Key: k, Data: clone(e.data), Stale: e.stale, UpdatedAt: e.updatedAt})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Load загружает сохранённые записи поверх текущих.
func (s *Store) Load(records []Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range records {
		e := s.slot(r.Key)
		e.data = clone(r.Data)
		e.stale = r.Stale
		e.updatedAt = r.UpdatedAt
	}
}

func (e *entry) release() {
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
}

func clone(b json.RawMessage) json.RawMessage {
	if b == nil {
		return nil
	}
	return bytes.Clone(b)
}
