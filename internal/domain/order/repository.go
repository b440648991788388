package order

import (
	"context"

	"github.com/pedidosapp/order-api/internal/models"
)

type Repository interface {
	// -------- Order --------
	CreateOrder(
		ctx context.Context,
		o *models.Order,
	) error

	GetOrder(
		ctx context.Context,
		orderID uint,
	) (*models.Order, error)

	// UpdateOrderStatus persists o's status guarded by the status the
	// caller read (from); a stale snapshot must not overwrite a
	// transition that already happened.
	UpdateOrderStatus(
		ctx context.Context,
		o *models.Order,
		from Status,
	) error

	ListOrdersByUser(
		ctx context.Context,
		userID uint,
	) ([]models.Order, error)

	ListAllOrders(
		ctx context.Context,
	) ([]models.Order, error)

	// -------- Items (transactional with the total) --------
	AddItem(
		ctx context.Context,
		o *models.Order,
		item *models.OrderItem,
	) error

	RemoveItem(
		ctx context.Context,
		o *models.Order,
		item *models.OrderItem,
	) error

	GetItem(
		ctx context.Context,
		itemID uint,
	) (*models.OrderItem, error)
}
