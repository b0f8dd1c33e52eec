package query

import (
	"TaskBuckets/internal/cli/cache"
	"TaskBuckets/internal/model"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUpdateTask_FailureRollsBackToPreMutationValue(t *testing.T) {
	c, api, rec := newTestClient()
	ctx := context.Background()

	task := model.Task{ID: 1, Title: "Write spec", Priority: model.PriorityHigh, BucketID: 1}
	seedTasks(t, c, task, model.Task{ID: 2, Title: "Other", BucketID: 1})
	before := cachedRaw(t, c, cache.KeyTasks)

	title := "Renamed"
	var during string
	api.On("UpdateTask", mock.Anything, int64(1), mock.Anything).Run(func(args mock.Arguments) {
		during = cachedRaw(t, c, cache.KeyTasks)
	}).Return(nil, errTransport).Once()

	_, err := c.UpdateTask(ctx, 1, model.TaskPatch{Title: &title})
	assert.ErrorIs(t, err, errTransport)

	assert.Contains(t, during, "Renamed", "optimistic write must be visible during the request")
	assert.JSONEq(t, before, cachedRaw(t, c, cache.KeyTasks))

	e, _ := c.Store().Lookup(cache.KeyTasks)
	assert.True(t, e.Stale, "rolled back entry must be refetched")

	require.Len(t, rec.notices, 1)
	assert.Equal(t, "update task", rec.notices[0].Op)
	assert.ErrorIs(t, rec.notices[0].Err, errTransport)
}

func TestUpdateTask_SuccessInvalidatesAffectedEntries(t *testing.T) {
	c, api, rec := newTestClient()
	ctx := context.Background()

	seedTasks(t, c, model.Task{ID: 1, Title: "a", BucketID: 1})
	raw, _ := json.Marshal([]model.Task{{ID: 1, Title: "a", BucketID: 1}})
	c.Store().Set(cache.BucketTasksKey(1), raw)
	c.Store().Set(cache.BucketTasksKey(2), json.RawMessage(`[]`))

	target := int64(2)
	api.On("UpdateTask", mock.Anything, int64(1), model.TaskPatch{BucketID: &target}).
		Return(&model.Task{ID: 1, Title: "a", BucketID: 2}, nil).Once()

	got, err := c.UpdateTask(ctx, 1, model.TaskPatch{BucketID: &target})
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.BucketID)

	for _, k := range []cache.Key{cache.KeyTasks, cache.BucketTasksKey(1), cache.BucketTasksKey(2)} {
		e, ok := c.Store().Lookup(k)
		require.True(t, ok, string(k))
		assert.True(t, e.Stale, string(k))
	}
	// оптимистичная запись перенесла задачу между представлениями
	assert.JSONEq(t, `[]`, cachedRaw(t, c, cache.BucketTasksKey(1)))
	assert.Contains(t, cachedRaw(t, c, cache.BucketTasksKey(2)), `"id":1`)
	assert.Empty(t, rec.notices)
}

func TestUpdateTask_ValidationNeverReachesNetwork(t *testing.T) {
	c, api, rec := newTestClient()
	empty := ""
	_, err := c.UpdateTask(context.Background(), 1, model.TaskPatch{Title: &empty})
	assert.ErrorIs(t, err, model.ErrValidation)
	api.AssertNotCalled(t, "UpdateTask", mock.Anything, mock.Anything, mock.Anything)
	assert.Empty(t, rec.notices)
}

func TestUpdateTask_CancelsInFlightFetch(t *testing.T) {
	c, api, _ := newTestClient()
	seedTasks(t, c, model.Task{ID: 1, Title: "a", BucketID: 1})

	fctx, f := c.Store().BeginFetch(context.Background(), cache.KeyTasks)

	title := "b"
	api.On("UpdateTask", mock.Anything, int64(1), mock.Anything).
		Return(&model.Task{ID: 1, Title: "b", BucketID: 1}, nil).Once()
	_, err := c.UpdateTask(context.Background(), 1, model.TaskPatch{Title: &title})
	require.NoError(t, err)

	assert.Error(t, fctx.Err())
	assert.False(t, c.Store().CommitFetch(f, json.RawMessage(`[{"id":1,"title":"a"}]`)))
	assert.Contains(t, cachedRaw(t, c, cache.KeyTasks), `"title":"b"`)
}

func TestToggleTask_OptimisticAndRollback(t *testing.T) {
	c, api, rec := newTestClient()
	seedTasks(t, c, model.Task{ID: 3, Title: "x", BucketID: 1})
	before := cachedRaw(t, c, cache.KeyTasks)

	var during []model.Task
	api.On("ToggleTask", mock.Anything, int64(3)).Run(func(args mock.Arguments) {
		during, _ = lookup[[]model.Task](c.Store(), cache.KeyTasks)
	}).Return(nil, errTransport).Once()

	_, err := c.ToggleTask(context.Background(), 3)
	assert.Error(t, err)
	require.Len(t, during, 1)
	assert.True(t, during[0].Completed)
	assert.JSONEq(t, before, cachedRaw(t, c, cache.KeyTasks))
	assert.Len(t, rec.notices, 1)
}

func TestCreateAndDelete_NoOptimisticWrite(t *testing.T) {
	c, api, rec := newTestClient()
	ctx := context.Background()
	seedTasks(t, c, model.Task{ID: 1, Title: "a", BucketID: 1})
	before := cachedRaw(t, c, cache.KeyTasks)

	api.On("CreateTask", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		assert.JSONEq(t, before, cachedRaw(t, c, cache.KeyTasks))
	}).Return(nil, errTransport).Once()
	_, err := c.CreateTask(ctx, model.TaskInput{Title: "new", BucketID: 1})
	assert.Error(t, err)
	assert.JSONEq(t, before, cachedRaw(t, c, cache.KeyTasks))
	require.Len(t, rec.notices, 1)

	api.On("DeleteTask", mock.Anything, int64(1)).Return(nil).Once()
	require.NoError(t, c.DeleteTask(ctx, 1))
	e, _ := c.Store().Lookup(cache.KeyTasks)
	assert.True(t, e.Stale)
}

func TestCreateTask_ValidationBeforeNetwork(t *testing.T) {
	c, api, _ := newTestClient()
	_, err := c.CreateTask(context.Background(), model.TaskInput{Title: "x", BucketID: 0})
	assert.ErrorIs(t, err, model.ErrValidation)
	api.AssertNotCalled(t, "CreateTask", mock.Anything, mock.Anything)
}

func TestBucketMutations(t *testing.T) {
	c, api, rec := newTestClient()
	ctx := context.Background()
	raw, _ := json.Marshal([]model.Bucket{{ID: 1, Name: "Inbox", Color: "#3b82f6"}, {ID: 2, Name: "Work", Color: "#ffffff"}})
	c.Store().Set(cache.KeyBuckets, raw)
	seedTasks(t, c, model.Task{ID: 5, BucketID: 2})
	c.Store().Set(cache.BucketTasksKey(2), json.RawMessage(`[{"id":5}]`))

	// невалидный цвет — без сети
	_, err := c.CreateBucket(ctx, model.BucketInput{Name: "X", Color: "red"})
	assert.ErrorIs(t, err, model.ErrValidation)

	// update: ошибка → откат
	before := cachedRaw(t, c, cache.KeyBuckets)
	name := "Job"
	api.On("UpdateBucket", mock.Anything, int64(2), mock.Anything).Return(nil, errTransport).Once()
	_, err = c.UpdateBucket(ctx, 2, model.BucketPatch{Name: &name})
	assert.Error(t, err)
	assert.JSONEq(t, before, cachedRaw(t, c, cache.KeyBuckets))

	// delete: инвалидирует бакеты и все задачи
	api.On("DeleteBucket", mock.Anything, int64(2)).Return(nil).Once()
	require.NoError(t, c.DeleteBucket(ctx, 2))
	for _, k := range []cache.Key{cache.KeyBuckets, cache.KeyTasks, cache.BucketTasksKey(2)} {
		e, _ := c.Store().Lookup(k)
		assert.True(t, e.Stale, string(k))
	}

	api.On("CreateBucket", mock.Anything, model.BucketInput{Name: "New", Color: "#000000"}).
		Return(&model.Bucket{ID: 3, Name: "New", Color: "#000000"}, nil).Once()
	b, err := c.CreateBucket(ctx, model.BucketInput{Name: "New", Color: "#000000"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), b.ID)
	assert.Len(t, rec.notices, 1)
}

func TestMoveTask_SuccessKeepsSpeculativeWriteWithoutRollback(t *testing.T) {
	c, api, rec := newTestClient()
	seedTasks(t, c, model.Task{ID: 1, Title: "Write spec", BucketID: 1})

	target := int64(2)
	api.On("UpdateTask", mock.Anything, int64(1), model.TaskPatch{BucketID: &target}).
		Return(&model.Task{ID: 1, Title: "Write spec", BucketID: 2}, nil).Once()

	done := c.MoveTask(context.Background(), 1, 2)

	// кэш переписан до завершения запроса
	list, ok := lookup[[]model.Task](c.Store(), cache.KeyTasks)
	require.True(t, ok)
	assert.Equal(t, int64(2), list[0].BucketID)

	require.NoError(t, <-done)
	c.Wait()

	list, _ = lookup[[]model.Task](c.Store(), cache.KeyTasks)
	assert.Equal(t, int64(2), list[0].BucketID)
	e, _ := c.Store().Lookup(cache.KeyTasks)
	assert.True(t, e.Stale)
	assert.Empty(t, rec.notices)
}

func TestMoveTask_FailureRestoresBucketAndInvalidates(t *testing.T) {
	c, api, rec := newTestClient()
	seedTasks(t, c, model.Task{ID: 1, Title: "a", BucketID: 1})
	c.Store().Set(cache.BucketTasksKey(1), []byte(`[{"id":1,"title":"a","bucketId":1}]`))
	c.Store().Set(cache.BucketTasksKey(2), []byte(`[]`))

	api.On("UpdateTask", mock.Anything, int64(1), mock.Anything).Return(nil, errTransport).Once()

	err := <-c.MoveTask(context.Background(), 1, 2)
	c.Wait()
	assert.ErrorIs(t, err, errTransport)

	// прежний бакет возвращён, запись помечена устаревшей
	list, _ := lookup[[]model.Task](c.Store(), cache.KeyTasks)
	assert.Equal(t, int64(1), list[0].BucketID)
	e, _ := c.Store().Lookup(cache.KeyTasks)
	assert.True(t, e.Stale)

	inbox, _ := lookup[[]model.Task](c.Store(), cache.BucketTasksKey(1))
	require.Len(t, inbox, 1)
	assert.Equal(t, int64(1), inbox[0].ID)
	other, _ := lookup[[]model.Task](c.Store(), cache.BucketTasksKey(2))
	assert.Empty(t, other)

	require.Len(t, rec.notices, 1)
	assert.Equal(t, "move task", rec.notices[0].Op)
}

func TestMoveTask_InvalidTarget(t *testing.T) {
	c, api, _ := newTestClient()
	err := <-c.MoveTask(context.Background(), 1, 0)
	assert.ErrorIs(t, err, model.ErrValidation)
	api.AssertNotCalled(t, "UpdateTask", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteBucket_CancelsInFlightTaskFetches(t *testing.T) {
	c, api, _ := newTestClient()
	ctx := context.Background()

	viewCtx, view := c.Store().BeginFetch(ctx, cache.BucketTasksKey(2))
	listCtx, _ := c.Store().BeginFetch(ctx, cache.KeyTasks)

	api.On("DeleteBucket", mock.Anything, int64(2)).Return(nil).Once()
	require.NoError(t, c.DeleteBucket(ctx, 2))

	assert.ErrorIs(t, viewCtx.Err(), context.Canceled)
	assert.ErrorIs(t, listCtx.Err(), context.Canceled)
	assert.False(t, c.Store().CommitFetch(view, []byte(`[{"id":9,"bucketId":2}]`)))
}
