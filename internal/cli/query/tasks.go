package query

import (
	"TaskBuckets/internal/cli/cache"
	"TaskBuckets/internal/model"
	"context"
	"fmt"
)

// CreateTask создаёт задачу без оптимистичной записи.
func (c *Client) CreateTask(ctx context.Context, in model.TaskInput) (*model.Task, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	keys := []cache.Key{cache.KeyTasks, cache.BucketTasksKey(in.BucketID)}
	t, err := c.api.CreateTask(ctx, in)
	if err != nil {
		return nil, c.fail("create task", err, nil, keys...)
	}
	c.store.Invalidate(keys...)
	return t, nil
}

// UpdateTask — оптимистичное обновление: снимок, запись в кэш, запрос,
// затем инвалидация либо откат к снимку.
func (c *Client) UpdateTask(ctx context.Context, id int64, patch model.TaskPatch) (*model.Task, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	snap, keys := c.applyOptimistic(id, patch.Apply, patch.BucketID)

	t, err := c.api.UpdateTask(ctx, id, patch)
	if err != nil {
		return nil, c.fail("update task", err, &snap, keys...)
	}
	c.store.Invalidate(append(keys, cache.BucketTasksKey(t.BucketID))...)
	return t, nil
}

// ToggleTask — оптимистичное переключение completed.
func (c *Client) ToggleTask(ctx context.Context, id int64) (*model.Task, error) {
	flip := func(t model.Task) model.Task {
		t.Completed = !t.Completed
		return t
	}
	snap, keys := c.applyOptimistic(id, flip, nil)

	t, err := c.api.ToggleTask(ctx, id)
	if err != nil {
		return nil, c.fail("toggle task", err, &snap, keys...)
	}
	c.store.Invalidate(append(keys, cache.BucketTasksKey(t.BucketID))...)
	return t, nil
}

// DeleteTask удаляет задачу без оптимистичной записи.
func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	keys := c.taskKeys(id, nil)
	if err := c.api.DeleteTask(ctx, id); err != nil {
		return c.fail("delete task", err, nil, keys...)
	}
	c.store.Invalidate(keys...)
	return nil
}

// MoveTask переносит задачу в другой бакет без снимка: кэш переписывается сразу,
// запрос уходит в фоне. При ошибке в кэш возвращается только прежний bucketId
// (прочие поля могли измениться после переноса), затем уведомление и инвалидация.
// Канал получает результат и закрывается.
func (c *Client) MoveTask(ctx context.Context, id, bucketID int64) <-chan error {
	done := make(chan error, 1)
	if bucketID < 1 {
		done <- fmt.Errorf("%w: bucket is required", model.ErrValidation)
		close(done)
		return done
	}

	orig, known := c.cachedTask(id)
	patch := model.TaskPatch{BucketID: &bucketID}
	_, keys := c.applyOptimistic(id, patch.Apply, &bucketID)

	c.bg.Add(1)
	go func() {
		defer c.bg.Done()
		defer close(done)
		if _, err := c.api.UpdateTask(ctx, id, patch); err != nil {
			if known {
				back := model.TaskPatch{BucketID: &orig.BucketID}
				_, restored := c.applyOptimistic(id, back.Apply, &orig.BucketID)
				keys = append(keys, restored...)
			}
			done <- c.fail("move task", err, nil, keys...)
			return
		}
		c.store.Invalidate(keys...)
		done <- nil
	}()
	return done
}

// taskKeys — записи, затрагиваемые мутацией задачи: общий список, сама задача,
// представление текущего бакета и (при переносе) целевого.
func (c *Client) taskKeys(id int64, target *int64) []cache.Key {
	keys := []cache.Key{cache.KeyTasks, cache.TaskKey(id)}
	if cur, ok := c.cachedTask(id); ok {
		keys = append(keys, cache.BucketTasksKey(cur.BucketID))
		if target != nil && *target != cur.BucketID {
			keys = append(keys, cache.BucketTasksKey(*target))
		}
	} else if target != nil {
		keys = append(keys, cache.BucketTasksKey(*target))
	}
	return keys
}

// cachedTask ищет задачу в записи задачи или в общем списке.
func (c *Client) cachedTask(id int64) (model.Task, bool) {
	if t, ok := lookup[model.Task](c.store, cache.TaskKey(id)); ok {
		return t, true
	}
	if list, ok := lookup[[]model.Task](c.store, cache.KeyTasks); ok {
		for _, t := range list {
			if t.ID == id {
				return t, true
			}
		}
	}
	return model.Task{}, false
}

// applyOptimistic отменяет загрузки затронутых записей, снимает снимок и
// переписывает кэш так, как будто мутация уже прошла.
func (c *Client) applyOptimistic(id int64, apply func(model.Task) model.Task, target *int64) (cache.Snapshot, []cache.Key) {
	keys := c.taskKeys(id, target)
	c.store.CancelFetches(keys...)
	snap := c.store.Snapshot(keys...)

	cur, known := c.cachedTask(id)
	if !known {
		return snap, keys
	}
	next := apply(cur)

	if list, ok := lookup[[]model.Task](c.store, cache.KeyTasks); ok {
		for i := range list {
			if list[i].ID == id {
				list[i] = next
			}
		}
		put(c.store, cache.KeyTasks, list)
	}
	if _, ok := c.store.Lookup(cache.TaskKey(id)); ok {
		put(c.store, cache.TaskKey(id), next)
	}

	from, to := cache.BucketTasksKey(cur.BucketID), cache.BucketTasksKey(next.BucketID)
	if list, ok := lookup[[]model.Task](c.store, from); ok {
		out := list[:0]
		for _, t := range list {
			if t.ID != id {
				out = append(out, t)
			} else if from == to {
				out = append(out, next)
			}
		}
		put(c.store, from, out)
	}
	if from != to {
		if list, ok := lookup[[]model.Task](c.store, to); ok {
			put(c.store, to, append([]model.Task{next}, list...))
		}
	}
	return snap, keys
}
