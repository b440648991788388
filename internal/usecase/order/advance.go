package order

import (
	"context"

	"github.com/pedidosapp/order-api/internal/audit"
	"github.com/pedidosapp/order-api/internal/authz"
	domain "github.com/pedidosapp/order-api/internal/domain/order"
	"github.com/pedidosapp/order-api/internal/models"
)

type AdvanceOrder struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewAdvanceOrder(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *AdvanceOrder {
	return &AdvanceOrder{
		repo:  repo,
		audit: audit,
	}
}

// Execute move o pedido de PENDING para IN_PROGRESS.
func (uc *AdvanceOrder) Execute(
	ctx context.Context,
	user *models.User,
	orderID uint,
) (*models.Order, error) {

	o, err := uc.repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := authz.RequireOwnerOrAdmin(user, o.UserID); err != nil {
		return nil, err
	}

	from := domain.Status(o.Status)
	if err := domain.AdvanceToPreparation(o); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateOrderStatus(ctx, o, from); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   "order_in_preparation",
		Entity:   "order",
		EntityID: &o.ID,
	})

	return o, nil
}
