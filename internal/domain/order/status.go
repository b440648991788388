package order

import "github.com/pedidosapp/order-api/internal/httperr"

// ===============================
// Order Status
// ===============================

type Status string

const (
	StatusPending    Status = "PENDING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusFinished   Status = "FINISHED"
	StatusCancelled  Status = "CANCELLED"
)

// transitions is the single source of truth for the order lifecycle:
// PENDING -> IN_PROGRESS -> FINISHED, plus PENDING -> CANCELLED.
var transitions = map[Status][]Status{
	StatusPending:    {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusFinished},
	StatusFinished:   {},
	StatusCancelled:  {},
}

// ===============================
// Validations
// ===============================

func CanTransition(from, to Status) error {
	for _, next := range transitions[from] {
		if next == to {
			return nil
		}
	}
	return httperr.ErrBusiness("invalid_transition")
}

// CanModifyItems define se os itens do pedido ainda podem ser alterados
func CanModifyItems(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func InitialStatus() Status {
	return StatusPending
}
