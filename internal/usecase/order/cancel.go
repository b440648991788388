package order

import (
	"context"
	"time"

	"github.com/pedidosapp/order-api/internal/audit"
	"github.com/pedidosapp/order-api/internal/authz"
	domain "github.com/pedidosapp/order-api/internal/domain/order"
	"github.com/pedidosapp/order-api/internal/models"
)

type CancelOrder struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancelOrder(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelOrder {
	return &CancelOrder{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CancelOrder) Execute(
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
	if err := domain.Cancel(o, time.Now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateOrderStatus(ctx, o, from); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   "order_cancelled",
		Entity:   "order",
		EntityID: &o.ID,
	})

	return o, nil
}
