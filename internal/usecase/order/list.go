package order

import (
	"context"

	"github.com/pedidosapp/order-api/internal/authz"
	domain "github.com/pedidosapp/order-api/internal/domain/order"
	"github.com/pedidosapp/order-api/internal/models"
)

type ListMyOrders struct {
	repo domain.Repository
}

func NewListMyOrders(repo domain.Repository) *ListMyOrders {
	return &ListMyOrders{repo: repo}
}

func (uc *ListMyOrders) Execute(
	ctx context.Context,
	user *models.User,
) ([]models.Order, error) {
	return uc.repo.ListOrdersByUser(ctx, user.ID)
}

// ListAllOrders é restrito a administradores.
type ListAllOrders struct {
	repo domain.Repository
}

func NewListAllOrders(repo domain.Repository) *ListAllOrders {
	return &ListAllOrders{repo: repo}
}

func (uc *ListAllOrders) Execute(
	ctx context.Context,
	user *models.User,
) ([]models.Order, error) {

	if err := authz.RequireAdmin(user); err != nil {
		return nil, err
	}

	return uc.repo.ListAllOrders(ctx)
}
