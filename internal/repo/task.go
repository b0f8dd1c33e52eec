package repo

import (
	"TaskBuckets/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
)

// TaskRepository — доступ к задачам пользователя.
type TaskRepository interface {
	// List возвращает задачи пользователя (новые первыми), опционально только одного бакета.
	List(ctx context.Context, userID int64, bucketID *int64) ([]model.Task, error)

	GetByID(ctx context.Context, userID, id int64) (*model.Task, error)

	Create(ctx context.Context, t *model.Task) error

	Update(ctx context.Context, userID, id int64, updates map[string]any) (*model.Task, error)

	Delete(ctx context.Context, userID, id int64) (bool, error)

	// ToggleCompleted атомарно инвертирует completed и возвращает обновлённую задачу.
	ToggleCompleted(ctx context.Context, userID, id int64) (*model.Task, error)
}

type taskRepo struct {
	db *gorm.DB
}

// NewTaskRepository создаёт реализацию репозитория для Task.
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepo{db: db}
}

func (r *taskRepo) List(ctx context.Context, userID int64, bucketID *int64) ([]model.Task, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if bucketID != nil {
		q = q.Where("bucket_id = ?", *bucketID)
	}
	var res []model.Task
	err := q.Order("created_at DESC").Order("id DESC").Find(&res).Error
	return res, err
}

func (r *taskRepo) GetByID(ctx context.Context, userID, id int64) (*model.Task, error) {
	var t model.Task
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *taskRepo) Create(ctx context.Context, t *model.Task) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *taskRepo) Update(ctx context.Context, userID, id int64, updates map[string]any) (*model.Task, error) {
	patch := make(map[string]any, len(updates)+1)
	for k, v := range updates {
		patch[k] = v
	}
	patch["updated_at"] = time.Now().UTC()
	return r.apply(ctx, userID, id, patch)
}

func (r *taskRepo) Delete(ctx context.Context, userID, id int64) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&model.Task{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *taskRepo) ToggleCompleted(ctx context.Context, userID, id int64) (*model.Task, error) {
	return r.apply(ctx, userID, id, map[string]any{
		"completed":  gorm.Expr("NOT completed"),
		"updated_at": time.Now().UTC(),
	})
}

func (r *taskRepo) apply(ctx context.Context, userID, id int64, patch map[string]any) (*model.Task, error) {
	tx := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(patch)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, userID, id)
}
