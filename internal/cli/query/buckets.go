package query

import (
	"TaskBuckets/internal/cli/cache"
	"TaskBuckets/internal/model"
	"context"
)

// CreateBucket создаёт бакет без оптимистичной записи.
func (c *Client) CreateBucket(ctx context.Context, in model.BucketInput) (*model.Bucket, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	b, err := c.api.CreateBucket(ctx, in)
	if err != nil {
		return nil, c.fail("create bucket", err, nil, cache.KeyBuckets)
	}
	c.store.Invalidate(cache.KeyBuckets)
	return b, nil
}

// UpdateBucket применяет изменение оптимистично: список и запись бакета
// переписываются сразу и откатываются при ошибке.
func (c *Client) UpdateBucket(ctx context.Context, id int64, patch model.BucketPatch) (*model.Bucket, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	keys := []cache.Key{cache.KeyBuckets, cache.BucketKey(id)}

	c.store.CancelFetches(keys...)
	snap := c.store.Snapshot(keys...)
	if list, ok := lookup[[]model.Bucket](c.store, cache.KeyBuckets); ok {
		for i := range list {
			if list[i].ID == id {
				list[i] = patch.Apply(list[i])
			}
		}
		put(c.store, cache.KeyBuckets, list)
	}
	if b, ok := lookup[model.Bucket](c.store, cache.BucketKey(id)); ok {
		put(c.store, cache.BucketKey(id), patch.Apply(b))
	}

	b, err := c.api.UpdateBucket(ctx, id, patch)
	if err != nil {
		return nil, c.fail("update bucket", err, &snap, keys...)
	}
	c.store.Invalidate(keys...)
	return b, nil
}

// DeleteBucket удаляет бакет; задачи бакета удаляются сервером, поэтому
// инвалидируются и все записи задач.
func (c *Client) DeleteBucket(ctx context.Context, id int64) error {
	keys := []cache.Key{cache.KeyBuckets, cache.BucketKey(id), cache.KeyTasks}
	c.store.CancelFetches(keys...)
	c.store.CancelFetchesPrefix(string(cache.KeyTasks) + "/")
	if err := c.api.DeleteBucket(ctx, id); err != nil {
		return c.fail("delete bucket", err, nil, keys...)
	}
	c.store.Invalidate(keys...)
	c.store.InvalidatePrefix(string(cache.KeyTasks) + "/")
	return nil
}
