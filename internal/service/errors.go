package service

import (
	"TaskBuckets/internal/model"
	"errors"

	"gorm.io/gorm"
)

// Ошибки бизнес-логики. Хендлеры переводят их в HTTP-статусы.
var (
	ErrNotFound           = errors.New("not found")
	ErrValidation         = model.ErrValidation
	ErrConflict           = errors.New("conflict")
	ErrInboxProtected     = errors.New("inbox bucket is protected")
	ErrLoginTaken         = errors.New("login already taken")
	ErrInvalidCredentials = errors.New("invalid login or password")
)

// notFound переводит gorm.ErrRecordNotFound в ErrNotFound, прочие ошибки пропускает как есть.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
