package service

import (
	"TaskBuckets/internal/model"
	"TaskBuckets/internal/repo"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// TaskService — бизнес-логика задач. Бакет задачи всегда должен принадлежать тому же пользователю.
type TaskService struct {
	tasks   repo.TaskRepository
	buckets repo.BucketRepository
}

func NewTaskService(tasks repo.TaskRepository, buckets repo.BucketRepository) *TaskService {
	return &TaskService{tasks: tasks, buckets: buckets}
}

// List возвращает задачи пользователя; bucketID != nil ограничивает выборку одним бакетом.
func (s *TaskService) List(ctx context.Context, userID int64, bucketID *int64) ([]model.Task, error) {
	return s.tasks.List(ctx, userID, bucketID)
}

func (s *TaskService) Get(ctx context.Context, userID, id int64) (*model.Task, error) {
	t, err := s.tasks.GetByID(ctx, userID, id)
	if err != nil {
		return nil, notFound(err)
	}
	return t, nil
}

func (s *TaskService) Create(ctx context.Context, userID int64, in model.TaskInput) (*model.Task, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := s.requireBucket(ctx, userID, in.BucketID); err != nil {
		return nil, err
	}

	t := &model.Task{
		UserID:      userID,
		BucketID:    in.BucketID,
		Title:       in.Title,
		Description: in.Description,
		Priority:    in.Priority,
	}
	if t.Description != nil && *t.Description == "" {
		t.Description = nil
	}
	if err := s.tasks.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Update применяет частичное изменение; перенос в другой бакет проверяет владельца бакета.
func (s *TaskService) Update(ctx context.Context, userID, id int64, patch model.TaskPatch) (*model.Task, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	current, err := s.tasks.GetByID(ctx, userID, id)
	if err != nil {
		return nil, notFound(err)
	}
	if patch.Empty() {
		return current, nil
	}
	if patch.BucketID != nil && *patch.BucketID != current.BucketID {
		if err := s.requireBucket(ctx, userID, *patch.BucketID); err != nil {
			return nil, err
		}
	}

	updated, err := s.tasks.Update(ctx, userID, id, patch.Updates())
	if err != nil {
		return nil, notFound(err)
	}
	return updated, nil
}

// Toggle инвертирует флаг completed.
func (s *TaskService) Toggle(ctx context.Context, userID, id int64) (*model.Task, error) {
	t, err := s.tasks.ToggleCompleted(ctx, userID, id)
	if err != nil {
		return nil, notFound(err)
	}
	return t, nil
}

func (s *TaskService) Delete(ctx context.Context, userID, id int64) error {
	ok, err := s.tasks.Delete(ctx, userID, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *TaskService) requireBucket(ctx context.Context, userID, bucketID int64) error {
	_, err := s.buckets.GetByID(ctx, userID, bucketID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: bucket %d does not exist", ErrValidation, bucketID)
	}
	return err
}
