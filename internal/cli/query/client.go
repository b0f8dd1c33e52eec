// Package query — слой синхронизации клиента: чтения через кэш и мутации
// с оптимистичной записью, откатом и инвалидацией.
package query

import (
	"TaskBuckets/internal/cli/cache"
	"TaskBuckets/internal/model"
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// API — операции сервера, которые использует слой синхронизации.
type API interface {
	ListBuckets(ctx context.Context) ([]model.Bucket, error)
	GetBucket(ctx context.Context, id int64) (*model.Bucket, error)
	CreateBucket(ctx context.Context, in model.BucketInput) (*model.Bucket, error)
	UpdateBucket(ctx context.Context, id int64, patch model.BucketPatch) (*model.Bucket, error)
	DeleteBucket(ctx context.Context, id int64) error

	ListTasks(ctx context.Context, bucketID *int64) ([]model.Task, error)
	GetTask(ctx context.Context, id int64) (*model.Task, error)
	CreateTask(ctx context.Context, in model.TaskInput) (*model.Task, error)
	UpdateTask(ctx context.Context, id int64, patch model.TaskPatch) (*model.Task, error)
	ToggleTask(ctx context.Context, id int64) (*model.Task, error)
	DeleteTask(ctx context.Context, id int64) error
}

// Client объединяет API и кэш.
type Client struct {
	api      API
	store    *cache.Store
	notifier Notifier

	bg sync.WaitGroup
}

// New создаёт клиента. notifier == nil — уведомления отбрасываются.
func New(api API, store *cache.Store, notifier Notifier) *Client {
	if notifier == nil {
		notifier = NotifierFunc(func(Notice) {})
	}
	return &Client{api: api, store: store, notifier: notifier}
}

// Store возвращает кэш клиента.
func (c *Client) Store() *cache.Store { return c.store }

// Wait ждёт завершения фоновых мутаций (MoveTask).
func (c *Client) Wait() { c.bg.Wait() }

// Refresh помечает весь кэш устаревшим.
func (c *Client) Refresh() { c.store.InvalidateAll() }

// readThrough отдаёт свежую запись из кэша или загружает её с сервера.
func readThrough[T any](ctx context.Context, c *Client, key cache.Key, load func(context.Context) (T, error)) (T, error) {
	var zero T
	if e, ok := c.store.Lookup(key); ok && !e.Stale {
		var v T
		if err := json.Unmarshal(e.Data, &v); err == nil {
			return v, nil
		}
	}

	fctx, f := c.store.BeginFetch(ctx, key)
	v, err := load(fctx)
	if err != nil {
		c.store.EndFetch(f)
		return zero, err
	}
	raw, err := json.Marshal(v)
	if err != nil {
		c.store.EndFetch(f)
		return zero, fmt.Errorf("encode %s: %w", key, err)
	}
	if !c.store.CommitFetch(f, raw) {
		// загрузку вытеснила более новая запись — отдаём её
		if cur, ok := lookup[T](c.store, key); ok {
			return cur, nil
		}
	}
	return v, nil
}

func lookup[T any](s *cache.Store, key cache.Key) (T, bool) {
	var v T
	e, ok := s.Lookup(key)
	if !ok {
		return v, false
	}
	if err := json.Unmarshal(e.Data, &v); err != nil {
		return v, false
	}
	return v, true
}

func put(s *cache.Store, key cache.Key, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	s.Set(key, raw)
}

// Buckets — все бакеты пользователя.
func (c *Client) Buckets(ctx context.Context) ([]model.Bucket, error) {
	return readThrough(ctx, c, cache.KeyBuckets, c.api.ListBuckets)
}

// Bucket — один бакет.
func (c *Client) Bucket(ctx context.Context, id int64) (model.Bucket, error) {
	return readThrough(ctx, c, cache.BucketKey(id), func(ctx context.Context) (model.Bucket, error) {
		b, err := c.api.GetBucket(ctx, id)
		if err != nil {
			return model.Bucket{}, err
		}
		return *b, nil
	})
}

// Tasks — все задачи пользователя.
func (c *Client) Tasks(ctx context.Context) ([]model.Task, error) {
	return readThrough(ctx, c, cache.KeyTasks, func(ctx context.Context) ([]model.Task, error) {
		return c.api.ListTasks(ctx, nil)
	})
}

// TasksByBucket — производное представление: задачи одного бакета.
func (c *Client) TasksByBucket(ctx context.Context, bucketID int64) ([]model.Task, error) {
	return readThrough(ctx, c, cache.BucketTasksKey(bucketID), func(ctx context.Context) ([]model.Task, error) {
		return c.api.ListTasks(ctx, &bucketID)
	})
}

// Task — одна задача.
func (c *Client) Task(ctx context.Context, id int64) (model.Task, error) {
	return readThrough(ctx, c, cache.TaskKey(id), func(ctx context.Context) (model.Task, error) {
		t, err := c.api.GetTask(ctx, id)
		if err != nil {
			return model.Task{}, err
		}
		return *t, nil
	})
}

// fail откатывает (если есть снимок), уведомляет и инвалидирует ключи.
func (c *Client) fail(op string, err error, snap *cache.Snapshot, keys ...cache.Key) error {
	if snap != nil {
		c.store.Restore(*snap)
	}
	c.notifier.Notify(newNotice(op, err))
	c.store.Invalidate(keys...)
	return err
}
