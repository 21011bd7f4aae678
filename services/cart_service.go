package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	apperrors "github.com/rohitkandpal03/shopz-store/errors"
	"github.com/rohitkandpal03/shopz-store/models"
	"github.com/rohitkandpal03/shopz-store/repository"
)

// Result is the uniform outcome of a mutating storefront operation.
// Faults never propagate past the service boundary; they are converted
// into a failed Result instead.
type Result struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	RedirectTo string `json:"redirectTo,omitempty"`
}

// PageCache invalidates cached renderings of product pages after a
// cart mutation.
type PageCache interface {
	Revalidate(ctx context.Context, path string)
}

// CartItemInput is the payload accepted by AddToCart. Price must be a
// decimal string with exactly two fraction digits.
type CartItemInput struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Name      string `json:"name" validate:"required"`
	Slug      string `json:"slug" validate:"required"`
	Image     string `json:"image"`
	Price     string `json:"price" validate:"required,price"`
	Qty       int    `json:"qty" validate:"required,min=1"`
}

// maxCartRetries bounds how often a read-modify-write is replayed when
// a concurrent request wins the version compare-and-swap.
const maxCartRetries = 3

// CartService is the storefront cart workflow.
type CartService interface {
	GetMyCart(ctx context.Context, sessionCartID string, userID *uuid.UUID) (*models.Cart, error)
	AddToCart(ctx context.Context, sessionCartID string, userID *uuid.UUID, input CartItemInput) Result
	RemoveItemFromCart(ctx context.Context, sessionCartID string, userID *uuid.UUID, productID uuid.UUID) Result
	MigrateCartToUser(ctx context.Context, sessionCartID string, userID uuid.UUID) error
}

type cartServiceImpl struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	cache       PageCache
	validate    *validator.Validate
}

func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository, cache PageCache) CartService {
	return &cartServiceImpl{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		cache:       cache,
		validate:    newValidator(),
	}
}

// GetMyCart resolves the current cart. A user ID takes precedence over
// the session ID; no cart is a valid, non-exceptional state and comes
// back as (nil, nil).
func (s *cartServiceImpl) GetMyCart(ctx context.Context, sessionCartID string, userID *uuid.UUID) (*models.Cart, error) {
	if userID != nil {
		return s.cartRepo.FindByUserID(ctx, *userID)
	}
	if sessionCartID == "" {
		return nil, nil
	}
	return s.cartRepo.FindBySessionID(ctx, sessionCartID)
}

// AddToCart adds one unit of a product to the session's cart, creating
// the cart on first use and merging into an existing line otherwise.
func (s *cartServiceImpl) AddToCart(ctx context.Context, sessionCartID string, userID *uuid.UUID, input CartItemInput) Result {
	var (
		msg string
		err error
	)
	for attempt := 0; attempt < maxCartRetries; attempt++ {
		msg, err = s.addToCart(ctx, sessionCartID, userID, input)
		if !errors.Is(err, apperrors.ErrCartConflict) {
			break
		}
	}
	if err != nil {
		return Result{Success: false, Message: apperrors.FormatError(err)}
	}
	return Result{Success: true, Message: msg}
}

func (s *cartServiceImpl) addToCart(ctx context.Context, sessionCartID string, userID *uuid.UUID, input CartItemInput) (string, error) {
	if sessionCartID == "" {
		return "", apperrors.NotFound("Cart session not found")
	}

	if err := s.validate.Struct(input); err != nil {
		return "", err
	}

	productID, err := uuid.Parse(input.ProductID)
	if err != nil {
		return "", apperrors.Validation("productId must be a valid UUID")
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return "", err
	}

	item, err := toCartItem(productID, input)
	if err != nil {
		return "", err
	}

	cart, err := s.GetMyCart(ctx, sessionCartID, userID)
	if err != nil {
		return "", err
	}

	if cart == nil {
		prices, err := CalcPrice([]models.CartItem{item})
		if err != nil {
			return "", err
		}
		newCart := &models.Cart{
			UserID:        userID,
			SessionCartID: sessionCartID,
			Items:         models.CartItems{item},
		}
		applyPrices(newCart, prices)
		if err := s.cartRepo.Create(ctx, newCart); err != nil {
			return "", apperrors.Persistence(err)
		}
		s.cache.Revalidate(ctx, "/product/"+product.Slug)
		return fmt.Sprintf("%s added to cart", product.Name), nil
	}

	idx := cart.FindItem(productID)
	if idx >= 0 {
		if product.Stock < cart.Items[idx].Qty+1 {
			return "", apperrors.ErrInsufficientStock
		}
		cart.Items[idx].Qty++
	} else {
		if product.Stock < 1 {
			return "", apperrors.ErrInsufficientStock
		}
		item.Qty = 1
		cart.Items = append(cart.Items, item)
	}

	prices, err := CalcPrice(cart.Items)
	if err != nil {
		return "", err
	}
	applyPrices(cart, prices)

	if err := s.cartRepo.Update(ctx, cart); err != nil {
		if errors.Is(err, apperrors.ErrCartConflict) {
			return "", err
		}
		return "", apperrors.Persistence(err)
	}

	s.cache.Revalidate(ctx, "/product/"+product.Slug)

	if idx >= 0 {
		return fmt.Sprintf("%s updated in cart", product.Name), nil
	}
	return fmt.Sprintf("%s added to cart", product.Name), nil
}

// RemoveItemFromCart takes one unit of a product out of the cart. A
// line at qty 1 is removed entirely; an empty cart remains a valid
// persisted state.
func (s *cartServiceImpl) RemoveItemFromCart(ctx context.Context, sessionCartID string, userID *uuid.UUID, productID uuid.UUID) Result {
	var (
		msg string
		err error
	)
	for attempt := 0; attempt < maxCartRetries; attempt++ {
		msg, err = s.removeItemFromCart(ctx, sessionCartID, userID, productID)
		if !errors.Is(err, apperrors.ErrCartConflict) {
			break
		}
	}
	if err != nil {
		return Result{Success: false, Message: apperrors.FormatError(err)}
	}
	return Result{Success: true, Message: msg}
}

func (s *cartServiceImpl) removeItemFromCart(ctx context.Context, sessionCartID string, userID *uuid.UUID, productID uuid.UUID) (string, error) {
	if sessionCartID == "" {
		return "", apperrors.NotFound("Cart session not found")
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return "", err
	}

	cart, err := s.GetMyCart(ctx, sessionCartID, userID)
	if err != nil {
		return "", err
	}
	if cart == nil {
		return "", apperrors.NotFound("Cart not found")
	}

	idx := cart.FindItem(productID)
	if idx < 0 {
		return "", apperrors.NotFound("Item not found")
	}

	if cart.Items[idx].Qty == 1 {
		cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
	} else {
		cart.Items[idx].Qty--
	}

	prices, err := CalcPrice(cart.Items)
	if err != nil {
		return "", err
	}
	applyPrices(cart, prices)

	if err := s.cartRepo.Update(ctx, cart); err != nil {
		if errors.Is(err, apperrors.ErrCartConflict) {
			return "", err
		}
		return "", apperrors.Persistence(err)
	}

	s.cache.Revalidate(ctx, "/product/"+product.Slug)

	return fmt.Sprintf("%s removed from cart", product.Name), nil
}

// MigrateCartToUser hands a session-owned cart over to a freshly
// signed-in user. If the user already has a cart of their own, that
// cart wins and the session cart is left untouched.
func (s *cartServiceImpl) MigrateCartToUser(ctx context.Context, sessionCartID string, userID uuid.UUID) error {
	userCart, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if userCart != nil {
		return nil
	}

	sessionCart, err := s.cartRepo.FindBySessionID(ctx, sessionCartID)
	if err != nil {
		return err
	}
	if sessionCart == nil || sessionCart.UserID != nil {
		return nil
	}

	return s.cartRepo.AssignToUser(ctx, sessionCart.ID, userID)
}

func toCartItem(productID uuid.UUID, input CartItemInput) (models.CartItem, error) {
	price, err := models.MoneyFromString(input.Price)
	if err != nil {
		return models.CartItem{}, apperrors.Validation("price must be a decimal string")
	}
	return models.CartItem{
		ProductID: productID,
		Name:      input.Name,
		Slug:      input.Slug,
		Image:     input.Image,
		Price:     price.StringFixed(2),
		Qty:       input.Qty,
	}, nil
}

func applyPrices(cart *models.Cart, prices PriceSet) {
	cart.ItemsPrice = prices.ItemsPrice
	cart.ShippingPrice = prices.ShippingPrice
	cart.TaxPrice = prices.TaxPrice
	cart.TotalPrice = prices.TotalPrice
}
