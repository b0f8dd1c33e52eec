// Package view готовит данные доски к выводу в терминал.
package view

import (
	"TaskBuckets/internal/model"
	"fmt"
)

// Filter — какие задачи показывать.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// ParseFilter разбирает значение флага --view; пустая строка даёт all.
func ParseFilter(s string) (Filter, error) {
	switch Filter(s) {
	case "", FilterAll:
		return FilterAll, nil
	case FilterActive, FilterCompleted:
		return Filter(s), nil
	}
	return "", fmt.Errorf("%w: view must be one of all, active, completed", model.ErrValidation)
}

// Match сообщает, проходит ли задача фильтр.
func (f Filter) Match(t model.Task) bool {
	switch f {
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	default:
		return true
	}
}

// Apply возвращает задачи, прошедшие фильтр, сохраняя порядок.
func (f Filter) Apply(tasks []model.Task) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}
