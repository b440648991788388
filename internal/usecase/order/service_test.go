package order

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pedidosapp/order-api/internal/audit"
	domain "github.com/pedidosapp/order-api/internal/domain/order"
	"github.com/pedidosapp/order-api/internal/httperr"
	"github.com/pedidosapp/order-api/internal/models"
)

// --- Mocks ---

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateOrder(ctx context.Context, o *models.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockRepository) GetOrder(ctx context.Context, orderID uint) (*models.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockRepository) UpdateOrderStatus(ctx context.Context, o *models.Order, from domain.Status) error {
	args := m.Called(ctx, o, from)
	return args.Error(0)
}

func (m *MockRepository) ListOrdersByUser(ctx context.Context, userID uint) ([]models.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockRepository) ListAllOrders(ctx context.Context) ([]models.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockRepository) AddItem(ctx context.Context, o *models.Order, item *models.OrderItem) error {
	args := m.Called(ctx, o, item)
	return args.Error(0)
}

func (m *MockRepository) RemoveItem(ctx context.Context, o *models.Order, item *models.OrderItem) error {
	args := m.Called(ctx, o, item)
	return args.Error(0)
}

func (m *MockRepository) GetItem(ctx context.Context, itemID uint) (*models.OrderItem, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OrderItem), args.Error(1)
}

type noopAuditWriter struct{}

func (noopAuditWriter) Log(userID *uint, action, entity string, entityID *uint, metadata any) error {
	return nil
}

func newTestDispatcher() *audit.Dispatcher {
	return audit.NewDispatcher(noopAuditWriter{})
}

var (
	owner    = &models.User{ID: 10, Name: "Maria", Active: true}
	admin    = &models.User{ID: 1, Name: "Root", Active: true, Admin: true}
	stranger = &models.User{ID: 99, Name: "Zé", Active: true}
)

func pendingOrder() *models.Order {
	return &models.Order{ID: 1, UserID: owner.ID, Status: string(domain.StatusPending)}
}

// --- Tests ---

func TestCreateOrderStartsPendingAndEmpty(t *testing.T) {
	repo := new(MockRepository)
	repo.On("CreateOrder", mock.Anything, mock.Anything).Return(nil)

	uc := NewCreateOrder(repo, newTestDispatcher())
	o, err := uc.Execute(context.Background(), owner)

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPending), o.Status)
	assert.Equal(t, owner.ID, o.UserID)
	assert.Zero(t, o.TotalPrice)
	assert.Empty(t, o.Items)
	repo.AssertExpectations(t)
}

func TestAddItemUpdatesTotal(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetOrder", mock.Anything, uint(1)).Return(pendingOrder(), nil)
	repo.On("AddItem", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	uc := NewAddItem(repo, newTestDispatcher())
	o, err := uc.Execute(context.Background(), owner, 1, domain.ItemSpec{
		Quantity: 2, Flavor: "calabresa", Size: "grande", UnitPrice: 25.90,
	})

	require.NoError(t, err)
	assert.InDelta(t, 51.80, o.TotalPrice, 0.001)
	repo.AssertExpectations(t)
}

func TestAddItemForbiddenForStranger(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetOrder", mock.Anything, uint(1)).Return(pendingOrder(), nil)

	uc := NewAddItem(repo, newTestDispatcher())
	_, err := uc.Execute(context.Background(), stranger, 1, domain.ItemSpec{
		Quantity: 1, Flavor: "mussarela", Size: "média", UnitPrice: 30,
	})

	assert.True(t, httperr.IsBusiness(err, "not_allowed"))
	repo.AssertNotCalled(t, "AddItem", mock.Anything, mock.Anything, mock.Anything)
}

func TestAddItemAllowedForAdmin(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetOrder", mock.Anything, uint(1)).Return(pendingOrder(), nil)
	repo.On("AddItem", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	uc := NewAddItem(repo, newTestDispatcher())
	_, err := uc.Execute(context.Background(), admin, 1, domain.ItemSpec{
		Quantity: 1, Flavor: "mussarela", Size: "média", UnitPrice: 30,
	})

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestAddItemRejectedWhenNotPending(t *testing.T) {
	repo := new(MockRepository)
	o := pendingOrder()
	o.Status = string(domain.StatusInProgress)
	repo.On("GetOrder", mock.Anything, uint(1)).Return(o, nil)

	uc := NewAddItem(repo, newTestDispatcher())
	_, err := uc.Execute(context.Background(), owner, 1, domain.ItemSpec{
		Quantity: 1, Flavor: "mussarela", Size: "média", UnitPrice: 30,
	})

	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
	repo.AssertNotCalled(t, "AddItem", mock.Anything, mock.Anything, mock.Anything)
}

func TestRemoveItemFlow(t *testing.T) {
	repo := new(MockRepository)
	o := pendingOrder()
	o.Items = []models.OrderItem{{ID: 5, OrderID: 1, Quantity: 2, UnitPrice: 25.90}}
	o.TotalPrice = 51.80

	repo.On("GetItem", mock.Anything, uint(5)).Return(&o.Items[0], nil)
	repo.On("GetOrder", mock.Anything, uint(1)).Return(o, nil)
	repo.On("RemoveItem", mock.Anything, o, mock.Anything).Return(nil)

	uc := NewRemoveItem(repo, newTestDispatcher())
	got, err := uc.Execute(context.Background(), owner, 5)

	require.NoError(t, err)
	assert.Empty(t, got.Items)
	assert.Zero(t, got.TotalPrice)
	repo.AssertExpectations(t)
}

func TestRemoveItemMissing(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetItem", mock.Anything, uint(5)).Return(nil, httperr.ErrBusiness("item_not_found"))

	uc := NewRemoveItem(repo, newTestDispatcher())
	_, err := uc.Execute(context.Background(), owner, 5)

	assert.True(t, httperr.IsBusiness(err, "item_not_found"))
}

func TestCancelOnlyFromPending(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetOrder", mock.Anything, uint(1)).Return(pendingOrder(), nil)
	repo.On("UpdateOrderStatus", mock.Anything, mock.Anything, domain.StatusPending).Return(nil)

	uc := NewCancelOrder(repo, newTestDispatcher())
	o, err := uc.Execute(context.Background(), owner, 1)

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), o.Status)
	repo.AssertExpectations(t)

	inProgress := pendingOrder()
	inProgress.Status = string(domain.StatusInProgress)
	repo2 := new(MockRepository)
	repo2.On("GetOrder", mock.Anything, uint(1)).Return(inProgress, nil)

	uc2 := NewCancelOrder(repo2, newTestDispatcher())
	_, err = uc2.Execute(context.Background(), owner, 1)
	assert.True(t, httperr.IsBusiness(err, "invalid_transition"))
	repo2.AssertNotCalled(t, "UpdateOrderStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestFinalizeRequiresInProgress(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetOrder", mock.Anything, uint(1)).Return(pendingOrder(), nil)

	uc := NewFinalizeOrder(repo, newTestDispatcher())
	_, err := uc.Execute(context.Background(), owner, 1)
	assert.True(t, httperr.IsBusiness(err, "invalid_transition"))

	inProgress := pendingOrder()
	inProgress.Status = string(domain.StatusInProgress)
	repo2 := new(MockRepository)
	repo2.On("GetOrder", mock.Anything, uint(1)).Return(inProgress, nil)
	repo2.On("UpdateOrderStatus", mock.Anything, mock.Anything, domain.StatusInProgress).Return(nil)

	uc2 := NewFinalizeOrder(repo2, newTestDispatcher())
	o, err := uc2.Execute(context.Background(), owner, 1)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusFinished), o.Status)
	assert.NotNil(t, o.FinishedAt)
}

func TestAdvanceToPreparation(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetOrder", mock.Anything, uint(1)).Return(pendingOrder(), nil)
	repo.On("UpdateOrderStatus", mock.Anything, mock.Anything, domain.StatusPending).Return(nil)

	uc := NewAdvanceOrder(repo, newTestDispatcher())
	o, err := uc.Execute(context.Background(), owner, 1)

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusInProgress), o.Status)
}

func TestGetOrderAuthorization(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetOrder", mock.Anything, uint(1)).Return(pendingOrder(), nil)

	uc := NewGetOrder(repo)

	_, err := uc.Execute(context.Background(), owner, 1)
	assert.NoError(t, err)

	_, err = uc.Execute(context.Background(), admin, 1)
	assert.NoError(t, err)

	_, err = uc.Execute(context.Background(), stranger, 1)
	assert.True(t, httperr.IsBusiness(err, "not_allowed"))
}

func TestListAllOrdersAdminOnly(t *testing.T) {
	repo := new(MockRepository)
	repo.On("ListAllOrders", mock.Anything).Return([]models.Order{}, nil)

	uc := NewListAllOrders(repo)

	_, err := uc.Execute(context.Background(), owner)
	assert.True(t, httperr.IsBusiness(err, "admin_only"))

	_, err = uc.Execute(context.Background(), admin)
	assert.NoError(t, err)
}

func TestListMyOrdersScopedToCaller(t *testing.T) {
	repo := new(MockRepository)
	repo.On("ListOrdersByUser", mock.Anything, owner.ID).
		Return([]models.Order{{ID: 1, UserID: owner.ID}}, nil)

	uc := NewListMyOrders(repo)
	orders, err := uc.Execute(context.Background(), owner)

	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, owner.ID, orders[0].UserID)
	repo.AssertExpectations(t)
}
