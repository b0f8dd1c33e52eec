package model

import (
	"strings"
	"time"
)

// InboxName — имя бакета, который создаётся для каждого пользователя автоматически.
const InboxName = "Inbox"

// InboxColor — цвет автосозданного Inbox.
const InboxColor = "#3b82f6"

// Bucket — серверная модель колонки (бакета) задач пользователя.
type Bucket struct {
	ID     int64 `gorm:"primaryKey" json:"id"`
	UserID int64 `gorm:"not null;uniqueIndex:idx_buckets_user_name,priority:1" json:"userId"`

	// Связи
	User *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	Name  string `gorm:"not null;size:50;uniqueIndex:idx_buckets_user_name,priority:2" json:"name"`
	Color string `gorm:"not null;size:7" json:"color"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// IsInbox сообщает, является ли бакет Inbox (сравнение имени без учёта регистра).
func (b *Bucket) IsInbox() bool {
	return b != nil && IsInboxName(b.Name)
}

// IsInboxName сравнивает имя с "inbox" без учёта регистра.
func IsInboxName(name string) bool {
	return strings.EqualFold(name, InboxName)
}

// BucketInput — тело запроса на создание бакета.
type BucketInput struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Validate проверяет поля так же, как форма на клиенте.
func (in BucketInput) Validate() error {
	if err := ValidateBucketName(in.Name); err != nil {
		return err
	}
	return ValidateColor(in.Color)
}

// BucketPatch — частичное обновление бакета; nil означает "не менять".
type BucketPatch struct {
	Name  *string `json:"name,omitempty"`
	Color *string `json:"color,omitempty"`
}

// Validate проверяет только переданные поля.
func (p BucketPatch) Validate() error {
	if p.Name != nil {
		if err := ValidateBucketName(*p.Name); err != nil {
			return err
		}
	}
	if p.Color != nil {
		if err := ValidateColor(*p.Color); err != nil {
			return err
		}
	}
	return nil
}

// Empty сообщает, что патч ничего не меняет.
func (p BucketPatch) Empty() bool {
	return p.Name == nil && p.Color == nil
}

// Updates строит карту колонок для gorm Updates.
func (p BucketPatch) Updates() map[string]any {
	updates := map[string]any{}
	if p.Name != nil {
		updates["name"] = *p.Name
	}
	if p.Color != nil {
		updates["color"] = *p.Color
	}
	return updates
}

// Apply возвращает копию бакета с применённым патчем (для оптимистичных правок на клиенте).
func (p BucketPatch) Apply(b Bucket) Bucket {
	if p.Name != nil {
		b.Name = *p.Name
	}
	if p.Color != nil {
		b.Color = *p.Color
	}
	return b
}
