package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	apperrors "github.com/rohitkandpal03/shopz-store/errors"
	"github.com/rohitkandpal03/shopz-store/events"
	"github.com/rohitkandpal03/shopz-store/models"
	"github.com/rohitkandpal03/shopz-store/repository"
)

// OrderEventPublisher publishes order lifecycle events. Publishing is
// best-effort; a broker failure never fails the checkout.
type OrderEventPublisher interface {
	PublishOrderCreated(ctx context.Context, event events.OrderCreated) error
}

// OrderService turns carts into orders and serves order history.
type OrderService interface {
	CreateOrder(ctx context.Context, userID uuid.UUID) (*models.Order, error)
	GetOrderByID(ctx context.Context, orderID, userID uuid.UUID) (*models.Order, error)
	GetUserOrders(ctx context.Context, userID uuid.UUID, page, limit int) ([]models.Order, int64, error)
}

type orderServiceImpl struct {
	orderRepo repository.OrderRepository
	cartRepo  repository.CartRepository
	userRepo  repository.UserRepository
	publisher OrderEventPublisher
	db        *gorm.DB
}

func NewOrderService(orderRepo repository.OrderRepository, cartRepo repository.CartRepository, userRepo repository.UserRepository, publisher OrderEventPublisher, db *gorm.DB) OrderService {
	return &orderServiceImpl{
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
		userRepo:  userRepo,
		publisher: publisher,
		db:        db,
	}
}

// CreateOrder turns the user's cart into an order. Missing
// prerequisites come back as redirect signals (cart, shipping address,
// payment method) rather than failures. The order insert, stock
// decrements and cart reset run in one transaction; a product that ran
// out of stock in the meantime aborts the whole checkout.
func (s *orderServiceImpl) CreateOrder(ctx context.Context, userID uuid.UUID) (*models.Order, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("User not found")
		}
		return nil, err
	}

	cart, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil || len(cart.Items) == 0 {
		return nil, &apperrors.Redirect{To: "/cart", Message: "Your cart is empty"}
	}
	if user.Address == nil {
		return nil, &apperrors.Redirect{To: "/shipping-address", Message: "No shipping address"}
	}
	if user.PaymentMethod == "" {
		return nil, &apperrors.Redirect{To: "/payment-method", Message: "No payment method"}
	}

	order := &models.Order{
		ID:              uuid.New(),
		UserID:          userID,
		ShippingAddress: *user.Address,
		PaymentMethod:   user.PaymentMethod,
		ItemsPrice:      cart.ItemsPrice,
		ShippingPrice:   cart.ShippingPrice,
		TaxPrice:        cart.TaxPrice,
		TotalPrice:      cart.TotalPrice,
	}

	for _, item := range cart.Items {
		price, perr := models.MoneyFromString(item.Price)
		if perr != nil {
			return nil, perr
		}
		order.OrderItems = append(order.OrderItems, models.OrderItem{
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Qty:       item.Qty,
			Price:     price,
			Name:      item.Name,
			Slug:      item.Slug,
			Image:     item.Image,
		})
	}

	orderedItems := append([]models.CartItem(nil), cart.Items...)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		txOrders := repository.NewGormOrderRepository(tx)
		txProducts := repository.NewGormProductRepository(tx)
		txCarts := repository.NewGormCartRepository(tx)

		if err := txOrders.Create(ctx, order); err != nil {
			return err
		}

		for _, item := range orderedItems {
			if err := txProducts.DecrementStock(ctx, item.ProductID, item.Qty); err != nil {
				return err
			}
		}

		cart.Items = models.CartItems{}
		cart.ItemsPrice = models.Money{}
		cart.ShippingPrice = models.Money{}
		cart.TaxPrice = models.Money{}
		cart.TotalPrice = models.Money{}
		return txCarts.Update(ctx, cart)
	})
	if err != nil {
		return nil, err
	}

	event := events.OrderCreated{
		Event:      "order.created",
		OrderID:    order.ID,
		UserID:     userID,
		Items:      orderedItems,
		TotalPrice: order.TotalPrice.String(),
		Timestamp:  time.Now(),
	}
	if s.publisher != nil {
		if err := s.publisher.PublishOrderCreated(ctx, event); err != nil {
			zap.L().Warn("Order event publish failed", zap.Error(err), zap.String("order_id", order.ID.String()))
		}
	}

	return order, nil
}

func (s *orderServiceImpl) GetOrderByID(ctx context.Context, orderID, userID uuid.UUID) (*models.Order, error) {
	order, err := s.orderRepo.FindByIDAndUserID(ctx, orderID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Order not found")
		}
		return nil, err
	}
	return order, nil
}

func (s *orderServiceImpl) GetUserOrders(ctx context.Context, userID uuid.UUID, page, limit int) ([]models.Order, int64, error) {
	return s.orderRepo.FindByUserID(ctx, userID, page, limit)
}
