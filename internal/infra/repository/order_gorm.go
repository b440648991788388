package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/pedidosapp/order-api/internal/domain/order"
	"github.com/pedidosapp/order-api/internal/httperr"
	"github.com/pedidosapp/order-api/internal/models"
)

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

// --------------------------------------------------
// Order
// --------------------------------------------------

func (r *OrderGormRepository) CreateOrder(
	ctx context.Context,
	o *models.Order,
) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *OrderGormRepository) GetOrder(
	ctx context.Context,
	orderID uint,
) (*models.Order, error) {

	var o models.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&o, orderID).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("order_not_found")
		}
		return nil, err
	}

	return &o, nil
}

// UpdateOrderStatus só grava se o pedido ainda estiver no status que o
// chamador leu. Duas transições concorrentes sobre o mesmo snapshot
// fazem a segunda falhar em vez de sobrescrever a primeira.
func (r *OrderGormRepository) UpdateOrderStatus(
	ctx context.Context,
	o *models.Order,
	from domain.Status,
) error {
	res := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ? AND status = ?", o.ID, string(from)).
		Updates(map[string]any{
			"status":       o.Status,
			"cancelled_at": o.CancelledAt,
			"finished_at":  o.FinishedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness("invalid_transition")
	}
	return nil
}

func (r *OrderGormRepository) ListOrdersByUser(
	ctx context.Context,
	userID uint,
) ([]models.Order, error) {

	var orders []models.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *OrderGormRepository) ListAllOrders(
	ctx context.Context,
) ([]models.Order, error) {

	var orders []models.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}

	return orders, nil
}

// --------------------------------------------------
// Items
// --------------------------------------------------

// AddItem persists the item and the total in one transaction. The
// total is recomputed pelo banco, a partir das linhas já gravadas, e a
// escrita exige o pedido ainda PENDING: um snapshot em memória lido
// antes de uma edição concorrente nunca vira o total final.
func (r *OrderGormRepository) AddItem(
	ctx context.Context,
	o *models.Order,
	item *models.OrderItem,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(item).Error; err != nil {
			return err
		}
		return r.writeTotal(tx, o)
	})
}

func (r *OrderGormRepository) RemoveItem(
	ctx context.Context,
	o *models.Order,
	item *models.OrderItem,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.OrderItem{}, item.ID).Error; err != nil {
			return err
		}
		return r.writeTotal(tx, o)
	})
}

// writeTotal grava total = soma(quantity * unit_price) dos itens já
// persistidos e recarrega o valor em o.TotalPrice.
func (r *OrderGormRepository) writeTotal(tx *gorm.DB, o *models.Order) error {
	res := tx.Model(&models.Order{}).
		Where("id = ? AND status = ?", o.ID, string(domain.StatusPending)).
		Update("total_price", gorm.Expr(
			"(SELECT COALESCE(SUM(quantity * unit_price), 0) FROM order_items WHERE order_id = ?)",
			o.ID,
		))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// pedido saiu de PENDING entre a leitura e a escrita
		return httperr.ErrBusiness("invalid_state")
	}

	return tx.Raw("SELECT total_price FROM orders WHERE id = ?", o.ID).
		Scan(&o.TotalPrice).Error
}

func (r *OrderGormRepository) GetItem(
	ctx context.Context,
	itemID uint,
) (*models.OrderItem, error) {

	var item models.OrderItem
	if err := r.db.WithContext(ctx).First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("item_not_found")
		}
		return nil, err
	}

	return &item, nil
}

// Compile-time check
var _ domain.Repository = (*OrderGormRepository)(nil)
