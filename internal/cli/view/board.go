package view

import (
	"TaskBuckets/internal/model"
	"sort"
)

// Column — бакет доски с его задачами.
type Column struct {
	Bucket    model.Bucket
	Tasks     []model.Task // после фильтра, по убыванию приоритета
	Total     int
	Completed int
}

// Board — колонки в порядке вывода: сначала Inbox, затем остальные
// в порядке, в котором их вернул сервер (новые первыми).
type Board struct {
	Columns []Column
}

var priorityRank = map[model.Priority]int{
	model.PriorityUrgent: 0,
	model.PriorityHigh:   1,
	model.PriorityMedium: 2,
	model.PriorityLow:    3,
}

// BuildBoard раскладывает задачи по бакетам. Задачи с неизвестным бакетом пропускаются.
func BuildBoard(buckets []model.Bucket, tasks []model.Task, f Filter) Board {
	byBucket := make(map[int64][]model.Task, len(buckets))
	for _, t := range tasks {
		byBucket[t.BucketID] = append(byBucket[t.BucketID], t)
	}

	var inbox, rest []Column
	for _, b := range buckets {
		all := byBucket[b.ID]
		col := Column{Bucket: b, Total: len(all), Tasks: f.Apply(all)}
		for _, t := range all {
			if t.Completed {
				col.Completed++
			}
		}
		sort.SliceStable(col.Tasks, func(i, j int) bool {
			return priorityRank[col.Tasks[i].Priority] < priorityRank[col.Tasks[j].Priority]
		})
		if b.IsInbox() {
			inbox = append(inbox, col)
		} else {
			rest = append(rest, col)
		}
	}
	return Board{Columns: append(inbox, rest...)}
}

// Find возвращает колонку бакета.
func (b Board) Find(bucketID int64) (Column, bool) {
	for _, c := range b.Columns {
		if c.Bucket.ID == bucketID {
			return c, true
		}
	}
	return Column{}, false
}
