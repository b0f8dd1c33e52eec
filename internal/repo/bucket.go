package repo

import (
	"TaskBuckets/internal/model"
	"context"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BucketRepository — доступ к бакетам. Все выборки ограничены владельцем (user_id).
type BucketRepository interface {
	// ListByUser возвращает бакеты пользователя, новые первыми.
	ListByUser(ctx context.Context, userID int64) ([]model.Bucket, error)

	// GetByID ищет бакет по id+user; чужой или отсутствующий — gorm.ErrRecordNotFound.
	GetByID(ctx context.Context, userID, id int64) (*model.Bucket, error)

	// GetByName ищет бакет по точному имени.
	GetByName(ctx context.Context, userID int64, name string) (*model.Bucket, error)

	// FindInbox ищет бакет с именем "inbox" без учёта регистра.
	FindInbox(ctx context.Context, userID int64) (*model.Bucket, error)

	Create(ctx context.Context, b *model.Bucket) error

	// CreateIfAbsent вставляет бакет; при конфликте (user_id, name) ничего не делает.
	// created=true если запись была создана в этой операции.
	CreateIfAbsent(ctx context.Context, b *model.Bucket) (created bool, err error)

	// Update применяет изменения и обновляет updated_at; возвращает свежую запись.
	Update(ctx context.Context, userID, id int64, updates map[string]any) (*model.Bucket, error)

	// DeleteWithTasks в одной транзакции удаляет задачи бакета, затем сам бакет.
	DeleteWithTasks(ctx context.Context, userID, id int64) (bool, error)
}

type bucketRepo struct {
	db *gorm.DB
}

// NewBucketRepository создаёт реализацию репозитория для Bucket.
func NewBucketRepository(db *gorm.DB) BucketRepository {
	return &bucketRepo{db: db}
}

func (r *bucketRepo) ListByUser(ctx context.Context, userID int64) ([]model.Bucket, error) {
	var res []model.Bucket
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Find(&res).Error
	return res, err
}

func (r *bucketRepo) GetByID(ctx context.Context, userID, id int64) (*model.Bucket, error) {
	var b model.Bucket
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bucketRepo) GetByName(ctx context.Context, userID int64, name string) (*model.Bucket, error) {
	var b model.Bucket
	if err := r.db.WithContext(ctx).Where("user_id = ? AND name = ?", userID, name).First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bucketRepo) FindInbox(ctx context.Context, userID int64) (*model.Bucket, error) {
	var b model.Bucket
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND LOWER(name) = ?", userID, strings.ToLower(model.InboxName)).
		Order("id ASC").
		First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bucketRepo) Create(ctx context.Context, b *model.Bucket) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *bucketRepo) CreateIfAbsent(ctx context.Context, b *model.Bucket) (bool, error) {
	tx := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "name"}},
		DoNothing: true,
	}).Create(b)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *bucketRepo) Update(ctx context.Context, userID, id int64, updates map[string]any) (*model.Bucket, error) {
	patch := make(map[string]any, len(updates)+1)
	for k, v := range updates {
		patch[k] = v
	}
	patch["updated_at"] = time.Now().UTC()

	tx := r.db.WithContext(ctx).Model(&model.Bucket{}).
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

func (r *bucketRepo) DeleteWithTasks(ctx context.Context, userID, id int64) (bool, error) {
	deleted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("bucket_id = ? AND user_id = ?", id, userID).Delete(&model.Task{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&model.Bucket{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}
