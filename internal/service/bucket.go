package service

import (
	"TaskBuckets/internal/model"
	"TaskBuckets/internal/repo"
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BucketService — бизнес-логика бакетов, включая инварианты Inbox.
type BucketService struct {
	repo   repo.BucketRepository
	logger *zap.SugaredLogger
}

func NewBucketService(r repo.BucketRepository, logger *zap.SugaredLogger) *BucketService {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &BucketService{repo: r, logger: logger}
}

// EnsureInbox гарантирует, что у пользователя есть ровно один Inbox.
// Параллельные вызовы не создают дубликатов: вставка идёт через ON CONFLICT DO NOTHING.
func (s *BucketService) EnsureInbox(ctx context.Context, userID int64) (*model.Bucket, error) {
	inbox, err := s.repo.FindInbox(ctx, userID)
	if err == nil {
		return inbox, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	created, err := s.repo.CreateIfAbsent(ctx, &model.Bucket{
		UserID: userID,
		Name:   model.InboxName,
		Color:  model.InboxColor,
	})
	if err != nil {
		return nil, fmt.Errorf("create inbox: %w", err)
	}
	if created {
		s.logger.Infow("inbox created", "user_id", userID)
	}
	return s.repo.FindInbox(ctx, userID)
}

// List возвращает бакеты пользователя; при первом обращении создаёт Inbox.
func (s *BucketService) List(ctx context.Context, userID int64) ([]model.Bucket, error) {
	if _, err := s.EnsureInbox(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.ListByUser(ctx, userID)
}

func (s *BucketService) Get(ctx context.Context, userID, id int64) (*model.Bucket, error) {
	b, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, notFound(err)
	}
	return b, nil
}

// Create валидирует вход и создаёт бакет. Дубликат имени или второй Inbox — ErrConflict.
func (s *BucketService) Create(ctx context.Context, userID int64, in model.BucketInput) (*model.Bucket, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkNameFree(ctx, userID, in.Name, 0); err != nil {
		return nil, err
	}

	b := &model.Bucket{UserID: userID, Name: in.Name, Color: in.Color}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Update применяет частичное изменение. Inbox нельзя переименовать во что-то, кроме варианта "inbox".
func (s *BucketService) Update(ctx context.Context, userID, id int64, patch model.BucketPatch) (*model.Bucket, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	current, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, notFound(err)
	}
	if patch.Empty() {
		return current, nil
	}

	if patch.Name != nil && *patch.Name != current.Name {
		if current.IsInbox() && !model.IsInboxName(*patch.Name) {
			return nil, ErrInboxProtected
		}
		if err := s.checkNameFree(ctx, userID, *patch.Name, current.ID); err != nil {
			return nil, err
		}
	}

	updated, err := s.repo.Update(ctx, userID, id, patch.Updates())
	if err != nil {
		return nil, notFound(err)
	}
	return updated, nil
}

// Delete удаляет бакет вместе с задачами. Inbox удалить нельзя.
func (s *BucketService) Delete(ctx context.Context, userID, id int64) error {
	current, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return notFound(err)
	}
	if current.IsInbox() {
		return ErrInboxProtected
	}
	ok, err := s.repo.DeleteWithTasks(ctx, userID, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// checkNameFree проверяет точный дубликат имени и второй Inbox (без учёта регистра).
// selfID — бакет, который переименовывается, он конфликтом не считается.
func (s *BucketService) checkNameFree(ctx context.Context, userID int64, name string, selfID int64) error {
	existing, err := s.repo.GetByName(ctx, userID, name)
	switch {
	case err == nil && existing.ID != selfID:
		return fmt.Errorf("%w: bucket %q already exists", ErrConflict, name)
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		return err
	}

	if model.IsInboxName(name) {
		inbox, err := s.repo.FindInbox(ctx, userID)
		switch {
		case err == nil && inbox.ID != selfID:
			return fmt.Errorf("%w: inbox already exists", ErrConflict)
		case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}
	}
	return nil
}
