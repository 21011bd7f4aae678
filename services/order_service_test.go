package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "github.com/rohitkandpal03/shopz-store/errors"
	"github.com/rohitkandpal03/shopz-store/models"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Create(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}
func (m *MockOrderRepository) FindByIDAndUserID(ctx context.Context, orderID, userID uuid.UUID) (*models.Order, error) {
	args := m.Called(ctx, orderID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}
func (m *MockOrderRepository) FindByUserID(ctx context.Context, userID uuid.UUID, page, limit int) ([]models.Order, int64, error) {
	args := m.Called(ctx, userID, page, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.Order), args.Get(1).(int64), args.Error(2)
}

// The db handle stays nil in these tests: every redirect path must bail
// out before the transaction starts.

func TestCreateOrderEmptyCartRedirects(t *testing.T) {
	userRepo := new(MockUserRepository)
	cartRepo := new(MockCartRepository)
	svc := NewOrderService(new(MockOrderRepository), cartRepo, userRepo, nil, nil)

	user := newTestUser(t, "secret123")
	user.Address = &models.ShippingAddress{FullName: "Jordan Baker", StreetAddress: "12 Main Street", City: "Springfield", PostalCode: "12345", Country: "USA"}
	user.PaymentMethod = "PayPal"

	userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil).Once()
	cartRepo.On("FindByUserID", mock.Anything, user.ID).Return(nil, nil).Once()

	_, err := svc.CreateOrder(context.Background(), user.ID)

	redirect, ok := apperrors.AsRedirect(err)
	require.True(t, ok)
	assert.Equal(t, "/cart", redirect.To)
	assert.Equal(t, "Your cart is empty", redirect.Message)
}

func TestCreateOrderMissingAddressRedirects(t *testing.T) {
	userRepo := new(MockUserRepository)
	cartRepo := new(MockCartRepository)
	svc := NewOrderService(new(MockOrderRepository), cartRepo, userRepo, nil, nil)

	user := newTestUser(t, "secret123")
	cart := &models.Cart{
		ID:     uuid.New(),
		UserID: &user.ID,
		Items:  models.CartItems{{ProductID: uuid.New(), Name: "Polo Classic Shirt", Slug: "polo-classic-shirt", Price: "20.00", Qty: 1}},
	}

	userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil).Once()
	cartRepo.On("FindByUserID", mock.Anything, user.ID).Return(cart, nil).Once()

	_, err := svc.CreateOrder(context.Background(), user.ID)

	redirect, ok := apperrors.AsRedirect(err)
	require.True(t, ok)
	assert.Equal(t, "/shipping-address", redirect.To)
}

func TestCreateOrderMissingPaymentMethodRedirects(t *testing.T) {
	userRepo := new(MockUserRepository)
	cartRepo := new(MockCartRepository)
	svc := NewOrderService(new(MockOrderRepository), cartRepo, userRepo, nil, nil)

	user := newTestUser(t, "secret123")
	user.Address = &models.ShippingAddress{FullName: "Jordan Baker", StreetAddress: "12 Main Street", City: "Springfield", PostalCode: "12345", Country: "USA"}
	cart := &models.Cart{
		ID:     uuid.New(),
		UserID: &user.ID,
		Items:  models.CartItems{{ProductID: uuid.New(), Name: "Polo Classic Shirt", Slug: "polo-classic-shirt", Price: "20.00", Qty: 1}},
	}

	userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil).Once()
	cartRepo.On("FindByUserID", mock.Anything, user.ID).Return(cart, nil).Once()

	_, err := svc.CreateOrder(context.Background(), user.ID)

	redirect, ok := apperrors.AsRedirect(err)
	require.True(t, ok)
	assert.Equal(t, "/payment-method", redirect.To)
}

func TestCreateOrderUnknownUser(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewOrderService(new(MockOrderRepository), new(MockCartRepository), userRepo, nil, nil)

	userID := uuid.New()
	userRepo.On("FindByID", mock.Anything, userID).Return(nil, gorm.ErrRecordNotFound).Once()

	_, err := svc.CreateOrder(context.Background(), userID)

	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestGetOrderByIDNotFound(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	svc := NewOrderService(orderRepo, new(MockCartRepository), new(MockUserRepository), nil, nil)

	orderID, userID := uuid.New(), uuid.New()
	orderRepo.On("FindByIDAndUserID", mock.Anything, orderID, userID).Return(nil, gorm.ErrRecordNotFound).Once()

	_, err := svc.GetOrderByID(context.Background(), orderID, userID)

	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Equal(t, "Order not found", apperrors.FormatError(err))
}

func TestGetUserOrders(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	svc := NewOrderService(orderRepo, new(MockCartRepository), new(MockUserRepository), nil, nil)

	userID := uuid.New()
	want := []models.Order{{ID: uuid.New(), UserID: userID}}
	orderRepo.On("FindByUserID", mock.Anything, userID, 2, 10).Return(want, int64(11), nil).Once()

	orders, total, err := svc.GetUserOrders(context.Background(), userID, 2, 10)

	require.NoError(t, err)
	assert.Equal(t, want, orders)
	assert.Equal(t, int64(11), total)
}
