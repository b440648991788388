package audit

import (
	"go.uber.org/zap"

	"github.com/pedidosapp/order-api/internal/logger"
)

type Event struct {
	UserID   *uint
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

// Writer is the persistence side of the audit trail.
type Writer interface {
	Log(userID *uint, action, entity string, entityID *uint, metadata any) error
}

// Dispatcher persists audit events off the request path. Events are
// dropped when the queue is full; auditing never blocks the API.
type Dispatcher struct {
	logger Writer
	queue  chan Event
}

func NewDispatcher(l Writer) *Dispatcher {
	d := &Dispatcher{
		logger: l,
		queue:  make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.logger.Log(
			ev.UserID,
			ev.Action,
			ev.Entity,
			ev.EntityID,
			ev.Metadata,
		); err != nil {
			logger.Error("audit write failed", zap.String("action", ev.Action), zap.Error(err))
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		logger.Warn("audit queue full, dropping event", zap.String("action", ev.Action))
	}
}
