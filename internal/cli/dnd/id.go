// Package dnd реализует перетаскивание задач между бакетами: разбор
// идентификаторов перетаскиваемых элементов и конечный автомат жеста.
package dnd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Kind — тип перетаскиваемого или целевого элемента.
type Kind int

const (
	KindTask Kind = iota + 1
	KindBucket
)

func (k Kind) String() string {
	switch k {
	case KindTask:
		return "task"
	case KindBucket:
		return "bucket"
	default:
		return "unknown"
	}
}

// ID — разобранный идентификатор вида "task-12" или "bucket-3".
type ID struct {
	Kind  Kind
	Value int64
}

func (id ID) String() string { return fmt.Sprintf("%s-%d", id.Kind, id.Value) }

// TaskID и BucketID собирают идентификаторы для элементов доски.
func TaskID(v int64) ID   { return ID{Kind: KindTask, Value: v} }
func BucketID(v int64) ID { return ID{Kind: KindBucket, Value: v} }

// ErrMalformedID — строка не является идентификатором элемента доски.
var ErrMalformedID = errors.New("malformed drag id")

// ParseID разбирает "task-<n>" или "bucket-<n>"; n — положительное число
// в канонической записи (без знака и ведущих нулей).
func ParseID(s string) (ID, error) {
	prefix, num, ok := strings.Cut(s, "-")
	if !ok {
		return ID{}, fmt.Errorf("%w: %q", ErrMalformedID, s)
	}
	var kind Kind
	switch prefix {
	case "task":
		kind = KindTask
	case "bucket":
		kind = KindBucket
	default:
		return ID{}, fmt.Errorf("%w: %q", ErrMalformedID, s)
	}
	v, err := strconv.ParseInt(num, 10, 64)
	if err != nil || v < 1 || strconv.FormatInt(v, 10) != num {
		return ID{}, fmt.Errorf("%w: %q", ErrMalformedID, s)
	}
	return ID{Kind: kind, Value: v}, nil
}
