package order

import (
	"time"

	"github.com/pedidosapp/order-api/internal/httperr"
	"github.com/pedidosapp/order-api/internal/models"
)

// ===============================
// Domain Actions
// ===============================

type ItemSpec struct {
	Quantity  int
	Flavor    string
	Size      string
	UnitPrice float64
}

func (s ItemSpec) Validate() error {
	if s.Quantity <= 0 {
		return httperr.ErrBusiness("invalid_quantity")
	}
	if s.UnitPrice < 0 {
		return httperr.ErrBusiness("invalid_unit_price")
	}
	return nil
}

// AddItem anexa um item ao pedido e recalcula o total.
func AddItem(o *models.Order, spec ItemSpec) (*models.OrderItem, error) {
	if err := CanModifyItems(Status(o.Status)); err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	item := models.OrderItem{
		OrderID:   o.ID,
		Quantity:  spec.Quantity,
		Flavor:    spec.Flavor,
		Size:      spec.Size,
		UnitPrice: spec.UnitPrice,
	}

	o.Items = append(o.Items, item)
	RecalculateTotal(o)

	return &o.Items[len(o.Items)-1], nil
}

// RemoveItem remove um item do pedido e recalcula o total.
func RemoveItem(o *models.Order, itemID uint) (*models.OrderItem, error) {
	if err := CanModifyItems(Status(o.Status)); err != nil {
		return nil, err
	}

	for i, it := range o.Items {
		if it.ID == itemID {
			removed := it
			o.Items = append(o.Items[:i], o.Items[i+1:]...)
			RecalculateTotal(o)
			return &removed, nil
		}
	}

	return nil, httperr.ErrBusiness("item_not_found")
}

func Cancel(o *models.Order, now time.Time) error {
	if err := CanTransition(Status(o.Status), StatusCancelled); err != nil {
		return err
	}

	o.Status = string(StatusCancelled)
	o.CancelledAt = &now
	return nil
}

func AdvanceToPreparation(o *models.Order) error {
	if err := CanTransition(Status(o.Status), StatusInProgress); err != nil {
		return err
	}

	o.Status = string(StatusInProgress)
	return nil
}

func Finalize(o *models.Order, now time.Time) error {
	if err := CanTransition(Status(o.Status), StatusFinished); err != nil {
		return err
	}

	o.Status = string(StatusFinished)
	o.FinishedAt = &now
	return nil
}

// RecalculateTotal mantém o invariante: total = soma(quantidade * preço unitário)
func RecalculateTotal(o *models.Order) {
	var total float64
	for _, it := range o.Items {
		total += float64(it.Quantity) * it.UnitPrice
	}
	o.TotalPrice = total
}
