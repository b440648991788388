package order

import (
	"context"
	"time"

	"github.com/pedidosapp/order-api/internal/audit"
	"github.com/pedidosapp/order-api/internal/authz"
	domain "github.com/pedidosapp/order-api/internal/domain/order"
	"github.com/pedidosapp/order-api/internal/models"
)

type FinalizeOrder struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewFinalizeOrder(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *FinalizeOrder {
	return &FinalizeOrder{
		repo:  repo,
		audit: audit,
	}
}

// Execute conclui um pedido em preparo. O total fica congelado porque
// itens não são mais editáveis fora de PENDING.
func (uc *FinalizeOrder) Execute(
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
	if err := domain.Finalize(o, time.Now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateOrderStatus(ctx, o, from); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   "order_finished",
		Entity:   "order",
		EntityID: &o.ID,
	})

	return o, nil
}
