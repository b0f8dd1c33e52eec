package query

import (
	"TaskBuckets/internal/model"
	"context"

	"github.com/stretchr/testify/mock"
)

type mockAPI struct{ mock.Mock }

func bucketOrNil(args mock.Arguments) (*model.Bucket, error) {
	if b, ok := args.Get(0).(*model.Bucket); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

func taskOrNil(args mock.Arguments) (*model.Task, error) {
	if t, ok := args.Get(0).(*model.Task); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAPI) ListBuckets(ctx context.Context) ([]model.Bucket, error) {
	args := m.Called(ctx)
	v, _ := args.Get(0).([]model.Bucket)
	return v, args.Error(1)
}

func (m *mockAPI) GetBucket(ctx context.Context, id int64) (*model.Bucket, error) {
	return bucketOrNil(m.Called(ctx, id))
}

func (m *mockAPI) CreateBucket(ctx context.Context, in model.BucketInput) (*model.Bucket, error) {
	return bucketOrNil(m.Called(ctx, in))
}

func (m *mockAPI) UpdateBucket(ctx context.Context, id int64, patch model.BucketPatch) (*model.Bucket, error) {
	return bucketOrNil(m.Called(ctx, id, patch))
}

func (m *mockAPI) DeleteBucket(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockAPI) ListTasks(ctx context.Context, bucketID *int64) ([]model.Task, error) {
	args := m.Called(ctx, bucketID)
	v, _ := args.Get(0).([]model.Task)
	return v, args.Error(1)
}

func (m *mockAPI) GetTask(ctx context.Context, id int64) (*model.Task, error) {
	return taskOrNil(m.Called(ctx, id))
}

func (m *mockAPI) CreateTask(ctx context.Context, in model.TaskInput) (*model.Task, error) {
	return taskOrNil(m.Called(ctx, in))
}

func (m *mockAPI) UpdateTask(ctx context.Context, id int64, patch model.TaskPatch) (*model.Task, error) {
	return taskOrNil(m.Called(ctx, id, patch))
}

func (m *mockAPI) ToggleTask(ctx context.Context, id int64) (*model.Task, error) {
	return taskOrNil(m.Called(ctx, id))
}

func (m *mockAPI) DeleteTask(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

var _ API = (*mockAPI)(nil)

// recorder собирает уведомления.
type recorder struct{ notices []Notice }

func (r *recorder) Notify(n Notice) { r.notices = append(r.notices, n) }
