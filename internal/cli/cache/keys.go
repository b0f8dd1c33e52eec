package cache

import (
	"strconv"
	"strings"
)

// Key идентифицирует запись кэша.
type Key string

const (
	KeyBuckets Key = "buckets"
	KeyTasks   Key = "tasks"
)

// BucketKey — запись одного бакета.
func BucketKey(id int64) Key { return Key("buckets/" + strconv.FormatInt(id, 10)) }

// TaskKey — запись одной задачи.
func TaskKey(id int64) Key { return Key("tasks/" + strconv.FormatInt(id, 10)) }

// BucketTasksKey — производное представление: задачи одного бакета.
func BucketTasksKey(bucketID int64) Key {
	return Key(BucketTasksPrefix + strconv.FormatInt(bucketID, 10))
}

// BucketTasksPrefix — общий префикс всех BucketTasksKey.
const BucketTasksPrefix = "tasks/bucket/"

// HasPrefix сообщает, начинается ли ключ с prefix.
func (k Key) HasPrefix(prefix string) bool { return strings.HasPrefix(string(k), prefix) }
