package order

import (
	"context"

	"github.com/pedidosapp/order-api/internal/audit"
	domain "github.com/pedidosapp/order-api/internal/domain/order"
	"github.com/pedidosapp/order-api/internal/models"
)

type CreateOrder struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateOrder(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateOrder {
	return &CreateOrder{
		repo:  repo,
		audit: audit,
	}
}

// Execute abre um pedido vazio (PENDING, total 0) para o usuário.
func (uc *CreateOrder) Execute(
	ctx context.Context,
	user *models.User,
) (*models.Order, error) {

	o := &models.Order{
		UserID: user.ID,
		Status: string(domain.InitialStatus()),
	}

	if err := uc.repo.CreateOrder(ctx, o); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   "order_created",
		Entity:   "order",
		EntityID: &o.ID,
	})

	return o, nil
}
