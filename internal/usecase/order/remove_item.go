package order

import (
	"context"

	"github.com/pedidosapp/order-api/internal/audit"
	"github.com/pedidosapp/order-api/internal/authz"
	domain "github.com/pedidosapp/order-api/internal/domain/order"
	"github.com/pedidosapp/order-api/internal/models"
)

type RemoveItem struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewRemoveItem(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *RemoveItem {
	return &RemoveItem{
		repo:  repo,
		audit: audit,
	}
}

// Execute localiza o item, valida a posse do pedido dono e remove o
// item recalculando o total.
func (uc *RemoveItem) Execute(
	ctx context.Context,
	user *models.User,
	itemID uint,
) (*models.Order, error) {

	item, err := uc.repo.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	o, err := uc.repo.GetOrder(ctx, item.OrderID)
	if err != nil {
		return nil, err
	}

	if err := authz.RequireOwnerOrAdmin(user, o.UserID); err != nil {
		return nil, err
	}

	removed, err := domain.RemoveItem(o, itemID)
	if err != nil {
		return nil, err
	}

	if err := uc.repo.RemoveItem(ctx, o, removed); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   "item_removed",
		Entity:   "order",
		EntityID: &o.ID,
		Metadata: map[string]any{
			"item_id": itemID,
			"total":   o.TotalPrice,
		},
	})

	return o, nil
}
