package model

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Priority — приоритет задачи.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Priorities lists every allowed priority in ascending order.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

// Valid сообщает, входит ли значение в перечисление.
func (p Priority) Valid() bool {
	return slices.Contains(Priorities, p)
}

// ParsePriority разбирает строку; пустая строка даёт low.
func ParsePriority(s string) (Priority, error) {
	if s == "" {
		return PriorityLow, nil
	}
	p := Priority(s)
	if !p.Valid() {
		names := make([]string, len(Priorities))
		for i, v := range Priorities {
			names[i] = string(v)
		}
		return "", fmt.Errorf("%w: priority must be one of %s", ErrValidation, strings.Join(names, ", "))
	}
	return p, nil
}

// Task — серверная модель задачи.
type Task struct {
	ID int64 `gorm:"primaryKey" json:"id"`

	Title       string   `gorm:"not null;size:100" json:"title"`
	Description *string  `gorm:"size:500" json:"description"`
	Priority    Priority `gorm:"not null;size:10;default:low" json:"priority"`

	BucketID int64   `gorm:"not null;index" json:"bucketId"`
	Bucket   *Bucket `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	UserID int64 `gorm:"not null;index" json:"userId"`
	User   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	Completed bool `gorm:"not null;default:false" json:"completed"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// TaskInput — тело запроса на создание задачи.
type TaskInput struct {
	Title       string   `json:"title"`
	Description *string  `json:"description,omitempty"`
	Priority    Priority `json:"priority"`
	BucketID    int64    `json:"bucketId"`
}

// Validate проверяет поля и подставляет приоритет по умолчанию.
func (in *TaskInput) Validate() error {
	if err := ValidateTitle(in.Title); err != nil {
		return err
	}
	if in.Description != nil {
		if err := ValidateDescription(*in.Description); err != nil {
			return err
		}
	}
	p, err := ParsePriority(string(in.Priority))
	if err != nil {
		return err
	}
	in.Priority = p
	if in.BucketID < 1 {
		return fmt.Errorf("%w: bucket is required", ErrValidation)
	}
	return nil
}

// TaskPatch — частичное обновление задачи.
type TaskPatch struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Priority    *Priority `json:"priority,omitempty"`
	BucketID    *int64    `json:"bucketId,omitempty"`
	Completed   *bool     `json:"completed,omitempty"`
}

// Validate проверяет только переданные поля.
func (p TaskPatch) Validate() error {
	if p.Title != nil {
		if err := ValidateTitle(*p.Title); err != nil {
			return err
		}
	}
	if p.Description != nil {
		if err := ValidateDescription(*p.Description); err != nil {
			return err
		}
	}
	if p.Priority != nil && !p.Priority.Valid() {
		return fmt.Errorf("%w: priority must be one of low, medium, high, urgent", ErrValidation)
	}
	if p.BucketID != nil && *p.BucketID < 1 {
		return fmt.Errorf("%w: bucket is required", ErrValidation)
	}
	return nil
}

// Empty сообщает, что патч ничего не меняет.
func (p TaskPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Priority == nil && p.BucketID == nil && p.Completed == nil
}

// Updates строит карту колонок для gorm Updates. Пустое описание очищает колонку.
func (p TaskPatch) Updates() map[string]any {
	updates := map[string]any{}
	if p.Title != nil {
		updates["title"] = *p.Title
	}
	if p.Description != nil {
		if *p.Description == "" {
			updates["description"] = nil
		} else {
			updates["description"] = *p.Description
		}
	}
	if p.Priority != nil {
		updates["priority"] = *p.Priority
	}
	if p.BucketID != nil {
		updates["bucket_id"] = *p.BucketID
	}
	if p.Completed != nil {
		updates["completed"] = *p.Completed
	}
	return updates
}

// Apply возвращает копию задачи с применённым патчем.
func (p TaskPatch) Apply(t Task) Task {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		if *p.Description == "" {
			t.Description = nil
		} else {
			d := *p.Description
			t.Description = &d
		}
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.BucketID != nil {
		t.BucketID = *p.BucketID
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	return t
}
