package order

import (
	"context"

	"github.com/pedidosapp/order-api/internal/authz"
	domain "github.com/pedidosapp/order-api/internal/domain/order"
	"github.com/pedidosapp/order-api/internal/models"
)

type GetOrder struct {
	repo domain.Repository
}

func NewGetOrder(repo domain.Repository) *GetOrder {
	return &GetOrder{repo: repo}
}

func (uc *GetOrder) Execute(
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

	return o, nil
}
