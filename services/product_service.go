package services

import (
	"context"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/rohitkandpal03/shopz-store/errors"
	"github.com/rohitkandpal03/shopz-store/models"
	"github.com/rohitkandpal03/shopz-store/repository"
)

// ProductCacheStore caches product detail responses.
type ProductCacheStore interface {
	GetProduct(ctx context.Context, slug string) (*models.Product, bool)
	SetProduct(ctx context.Context, slug string, product *models.Product)
}

// ProductInput is the payload for creating a catalog product.
type ProductInput struct {
	Name        string   `json:"name" validate:"required,min=3"`
	Slug        string   `json:"slug" validate:"required,min=3"`
	Category    string   `json:"category" validate:"required,min=3"`
	Description string   `json:"description" validate:"required,min=3"`
	Brand       string   `json:"brand" validate:"required,min=3"`
	Stock       int      `json:"stock" validate:"gte=0"`
	Images      []string `json:"images" validate:"required,min=1"`
	IsFeatured  bool     `json:"isFeatured"`
	Banner      *string  `json:"banner"`
	Price       string   `json:"price" validate:"required,price"`
}

// ProductService is the catalog read and admin write surface.
type ProductService interface {
	GetLatestProducts(ctx context.Context, limit int) ([]models.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*models.Product, error)
	CreateProduct(ctx context.Context, input ProductInput) (*models.Product, error)
}

type productServiceImpl struct {
	productRepo repository.ProductRepository
	cache       ProductCacheStore
	validate    *validator.Validate
}

func NewProductService(productRepo repository.ProductRepository, cache ProductCacheStore) ProductService {
	return &productServiceImpl{
		productRepo: productRepo,
		cache:       cache,
		validate:    newValidator(),
	}
}

func (s *productServiceImpl) GetLatestProducts(ctx context.Context, limit int) ([]models.Product, error) {
	return s.productRepo.FindLatest(ctx, limit)
}

// GetProductBySlug serves the product detail page, cache first.
func (s *productServiceImpl) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	if product, ok := s.cache.GetProduct(ctx, slug); ok {
		return product, nil
	}

	product, err := s.productRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	s.cache.SetProduct(ctx, slug, product)
	return product, nil
}

func (s *productServiceImpl) CreateProduct(ctx context.Context, input ProductInput) (*models.Product, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, err
	}

	price, err := models.MoneyFromString(input.Price)
	if err != nil {
		return nil, apperrors.Validation("price must be a decimal string")
	}

	product := &models.Product{
		Name:        input.Name,
		Slug:        input.Slug,
		Category:    input.Category,
		Description: input.Description,
		Brand:       input.Brand,
		Images:      input.Images,
		Price:       price,
		Stock:       input.Stock,
		IsFeatured:  input.IsFeatured,
		Banner:      input.Banner,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}
