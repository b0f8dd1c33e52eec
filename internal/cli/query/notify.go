package query

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Notice — сообщение о неудачной мутации.
type Notice struct {
	ID  uuid.UUID
	Op  string
	Err error
	At  time.Time
}

func (n Notice) String() string {
	return fmt.Sprintf("%s failed: %v", n.Op, n.Err)
}

// Notifier получает уведомления о неудачных мутациях.
type Notifier interface {
	Notify(Notice)
}

// NotifierFunc адаптирует функцию к Notifier.
type NotifierFunc func(Notice)

func (f NotifierFunc) Notify(n Notice) { f(n) }

// LogNotifier пишет уведомление в лог и, если задан Out, выводит его пользователю.
type LogNotifier struct {
	Logger *zap.SugaredLogger
	Out    io.Writer
}

func (l LogNotifier) Notify(n Notice) {
	if l.Logger != nil {
		l.Logger.Warnw("mutation failed", "id", n.ID, "op", n.Op, "error", n.Err)
	}
	if l.Out != nil {
		fmt.Fprintf(l.Out, "! %s\n", n)
	}
}

func newNotice(op string, err error) Notice {
	return Notice{ID: uuid.New(), Op: op, Err: err, At: time.Now()}
}
