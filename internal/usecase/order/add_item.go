package order

import (
	"context"

	"github.com/pedidosapp/order-api/internal/audit"
	"github.com/pedidosapp/order-api/internal/authz"
	domain "github.com/pedidosapp/order-api/internal/domain/order"
	"github.com/pedidosapp/order-api/internal/models"
)

type AddItem struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewAddItem(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *AddItem {
	return &AddItem{
		repo:  repo,
		audit: audit,
	}
}

func (uc *AddItem) Execute(
	ctx context.Context,
	user *models.User,
	orderID uint,
	spec domain.ItemSpec,
) (*models.Order, error) {

	o, err := uc.repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := authz.RequireOwnerOrAdmin(user, o.UserID); err != nil {
		return nil, err
	}

	item, err := domain.AddItem(o, spec)
	if err != nil {
		return nil, err
	}

	if err := uc.repo.AddItem(ctx, o, item); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   "item_added",
		Entity:   "order",
		EntityID: &o.ID,
		Metadata: map[string]any{
			"item_id":  item.ID,
			"quantity": item.Quantity,
			"total":    o.TotalPrice,
		},
	})

	return o, nil
}
