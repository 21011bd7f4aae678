package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/rohitkandpal03/shopz-store/errors"
	"github.com/rohitkandpal03/shopz-store/services"
)

type ProductController struct {
	productService services.ProductService
	latestLimit    int
}

func NewProductController(productService services.ProductService, latestLimit int) *ProductController {
	return &ProductController{
		productService: productService,
		latestLimit:    latestLimit,
	}
}

// GetLatestProducts serves the storefront home page product strip.
func (pc *ProductController) GetLatestProducts(c *gin.Context) {
	limit := pc.latestLimit
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 && parsed <= 50 {
			limit = parsed
		}
	}

	products, err := pc.productService.GetLatestProducts(c.Request.Context(), limit)
	if err != nil {
		zap.L().Error("Failed to fetch latest products", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

// GetProductBySlug serves a single product detail page.
func (pc *ProductController) GetProductBySlug(c *gin.Context) {
	product, err := pc.productService.GetProductBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if apperrors.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		zap.L().Error("Failed to fetch product", zap.Error(err), zap.String("slug", c.Param("slug")))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch product"})
		return
	}

	c.JSON(http.StatusOK, product)
}

// CreateProduct adds a product to the catalog (admin).
func (pc *ProductController) CreateProduct(c *gin.Context) {
	var input services.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, services.Result{Success: false, Message: "Invalid payload"})
		return
	}

	product, err := pc.productService.CreateProduct(c.Request.Context(), input)
	if err != nil {
		c.JSON(http.StatusOK, services.Result{Success: false, Message: apperrors.FormatError(err)})
		return
	}

	c.JSON(http.StatusCreated, product)
}
