package repo

import "time"

// UserContextStore абстракция для хранения контекста пользователя (последний логин
// и время последнего обновления кэша).
type UserContextStore interface {
	SaveLogin(login string) error
	LoadLogin() (string, error)
	SaveLastRefresh(login string, at time.Time) error
	LoadLastRefresh(login string) (time.Time, error)
}
