package dnd

import (
	"TaskBuckets/internal/model"
	"context"
	"math"
)

// ActivationDistance — минимальное смещение указателя, после которого
// нажатие превращается в перетаскивание.
const ActivationDistance = 8

// Point — координаты указателя.
type Point struct{ X, Y float64 }

func (p Point) dist(q Point) float64 { return math.Hypot(p.X-q.X, p.Y-q.Y) }

// State — состояние контроллера.
type State int

const (
	Idle State = iota
	Pressed
	Dragging
)

// Outcome — чем закончился Drop.
type Outcome int

const (
	Ignored    Outcome = iota // не было активного перетаскивания
	Cancelled                 // отпущено вне бакета
	SameBucket                // задача уже в этом бакете
	Invalid                   // идентификаторы не разобрались или задача неизвестна
	Dispatched                // перенос отправлен
)

func (o Outcome) String() string {
	switch o {
	case Ignored:
		return "ignored"
	case Cancelled:
		return "cancelled"
	case SameBucket:
		return "same bucket"
	case Invalid:
		return "invalid"
	case Dispatched:
		return "dispatched"
	default:
		return "unknown"
	}
}

// Mover отправляет перенос задачи без ожидания ответа.
type Mover interface {
	MoveTask(ctx context.Context, taskID, bucketID int64) <-chan error
}

// TaskLookup находит задачу по id среди уже загруженных.
type TaskLookup func(id int64) (model.Task, bool)

// Controller ведёт один жест перетаскивания за раз.
type Controller struct {
	ctx    context.Context
	mover  Mover
	lookup TaskLookup

	state  State
	origin Point
	raw    string
	active *model.Task
}

// NewController создаёт контроллер; ctx передаётся в мутации переноса.
func NewController(ctx context.Context, mover Mover, lookup TaskLookup) *Controller {
	return &Controller{ctx: ctx, mover: mover, lookup: lookup}
}

// State возвращает текущее состояние.
func (c *Controller) State() State { return c.state }

// Active — перетаскиваемая задача (плавающая копия), если жест активен.
func (c *Controller) Active() (model.Task, bool) {
	if c.state != Dragging || c.active == nil {
		return model.Task{}, false
	}
	return *c.active, true
}

// PointerDown начинает жест над элементом с идентификатором id.
func (c *Controller) PointerDown(id string, at Point) {
	c.reset()
	c.state = Pressed
	c.raw = id
	c.origin = at
}

// PointerMove активирует перетаскивание, когда указатель сместился дальше
// ActivationDistance. Возвращает true, если жест перешёл в Dragging.
func (c *Controller) PointerMove(at Point) bool {
	if c.state != Pressed {
		return false
	}
	if c.origin.dist(at) < ActivationDistance {
		return false
	}
	c.state = Dragging
	if id, err := ParseID(c.raw); err == nil && id.Kind == KindTask && c.lookup != nil {
		if t, ok := c.lookup(id.Value); ok {
			c.active = &t
		}
	}
	return true
}

// Drop завершает жест над целью overID ("" — вне целей). Контроллер всегда
// возвращается в Idle. Канал результата возвращается только для Dispatched.
func (c *Controller) Drop(overID string) (Outcome, <-chan error) {
	if c.state != Dragging {
		c.reset()
		return Ignored, nil
	}
	raw := c.raw
	c.reset()

	if overID == "" {
		return Cancelled, nil
	}
	dragged, err := ParseID(raw)
	if err != nil || dragged.Kind != KindTask {
		return Invalid, nil
	}
	target, err := ParseID(overID)
	if err != nil || target.Kind != KindBucket {
		return Invalid, nil
	}
	if c.lookup == nil {
		return Invalid, nil
	}
	task, ok := c.lookup(dragged.Value)
	if !ok {
		return Invalid, nil
	}
	if task.BucketID == target.Value {
		return SameBucket, nil
	}
	return Dispatched, c.mover.MoveTask(c.ctx, dragged.Value, target.Value)
}

// Cancel прерывает жест без мутаций.
func (c *Controller) Cancel() { c.reset() }

func (c *Controller) reset() {
	c.state = Idle
	c.raw = ""
	c.origin = Point{}
	c.active = nil
}
