package service

import (
	"TaskBuckets/internal/model"
	"TaskBuckets/internal/repo"
	"context"

	"github.com/stretchr/testify/mock"
)

// мок для repo.BucketRepository
type mockBucketRepo struct{ mock.Mock }

func bucketOrNil(args mock.Arguments) (*model.Bucket, error) {
	if b, ok := args.Get(0).(*model.Bucket); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBucketRepo) ListByUser(ctx context.Context, userID int64) ([]model.Bucket, error) {
	args := m.Called(ctx, userID)
	list, _ := args.Get(0).([]model.Bucket)
	return list, args.Error(1)
}

func (m *mockBucketRepo) GetByID(ctx context.Context, userID, id int64) (*model.Bucket, error) {
	return bucketOrNil(m.Called(ctx, userID, id))
}

func (m *mockBucketRepo) GetByName(ctx context.Context, userID int64, name string) (*model.Bucket, error) {
	return bucketOrNil(m.Called(ctx, userID, name))
}

func (m *mockBucketRepo) FindInbox(ctx context.Context, userID int64) (*model.Bucket, error) {
	return bucketOrNil(m.Called(ctx, userID))
}

func (m *mockBucketRepo) Create(ctx context.Context, b *model.Bucket) error {
	return m.Called(ctx, b).Error(0)
}

func (m *mockBucketRepo) CreateIfAbsent(ctx context.Context, b *model.Bucket) (bool, error) {
	args := m.Called(ctx, b)
	return args.Bool(0), args.Error(1)
}

func (m *mockBucketRepo) Update(ctx context.Context, userID, id int64, updates map[string]any) (*model.Bucket, error) {
	return bucketOrNil(m.Called(ctx, userID, id, updates))
}

func (m *mockBucketRepo) DeleteWithTasks(ctx context.Context, userID, id int64) (bool, error) {
	args := m.Called(ctx, userID, id)
	return args.Bool(0), args.Error(1)
}

var _ repo.BucketRepository = (*mockBucketRepo)(nil)

// мок для repo.TaskRepository
type mockTaskRepo struct{ mock.Mock }

func taskOrNil(args mock.Arguments) (*model.Task, error) {
	if t, ok := args.Get(0).(*model.Task); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTaskRepo) List(ctx context.Context, userID int64, bucketID *int64) ([]model.Task, error) {
	args := m.Called(ctx, userID, bucketID)
	list, _ := args.Get(0).([]model.Task)
	return list, args.Error(1)
}

func (m *mockTaskRepo) GetByID(ctx context.Context, userID, id int64) (*model.Task, error) {
	return taskOrNil(m.Called(ctx, userID, id))
}

func (m *mockTaskRepo) Create(ctx context.Context, t *model.Task) error {
	return m.Called(ctx, t).Error(0)
}

func (m *mockTaskRepo) Update(ctx context.Context, userID, id int64, updates map[string]any) (*model.Task, error) {
	return taskOrNil(m.Called(ctx, userID, id, updates))
}

func (m *mockTaskRepo) Delete(ctx context.Context, userID, id int64) (bool, error) {
	args := m.Called(ctx, userID, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockTaskRepo) ToggleCompleted(ctx context.Context, userID, id int64) (*model.Task, error) {
	return taskOrNil(m.Called(ctx, userID, id))
}

var _ repo.TaskRepository = (*mockTaskRepo)(nil)
