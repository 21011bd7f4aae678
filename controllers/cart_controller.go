package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rohitkandpal03/shopz-store/middleware"
	"github.com/rohitkandpal03/shopz-store/models"
	"github.com/rohitkandpal03/shopz-store/services"
)

type CartController struct {
	cartService services.CartService
}

func NewCartController(cartService services.CartService) *CartController {
	return &CartController{cartService: cartService}
}

// GetCart returns the current cart. No cart yet is a valid state and
// comes back as an empty cart, not an error.
func (cc *CartController) GetCart(c *gin.Context) {
	sessionCartID := middleware.GetSessionCartID(c)
	userID := middleware.GetUserID(c)

	cart, err := cc.cartService.GetMyCart(c.Request.Context(), sessionCartID, userID)
	if err != nil {
		zap.L().Error("Failed to get cart", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get cart"})
		return
	}

	if cart == nil {
		cart = &models.Cart{
			SessionCartID: sessionCartID,
			UserID:        userID,
			Items:         models.CartItems{},
		}
	}

	c.JSON(http.StatusOK, cart)
}

// AddItem adds one unit of a product to the cart. Every failure is a
// structured {success:false, message} result, never a raw fault.
func (cc *CartController) AddItem(c *gin.Context) {
	var input services.CartItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, services.Result{Success: false, Message: "Invalid payload"})
		return
	}

	sessionCartID := middleware.GetSessionCartID(c)
	userID := middleware.GetUserID(c)

	result := cc.cartService.AddToCart(c.Request.Context(), sessionCartID, userID, input)
	c.JSON(http.StatusOK, result)
}

// RemoveItem takes one unit of a product out of the cart.
func (cc *CartController) RemoveItem(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, services.Result{Success: false, Message: "Invalid product id"})
		return
	}

	sessionCartID := middleware.GetSessionCartID(c)
	userID := middleware.GetUserID(c)

	result := cc.cartService.RemoveItemFromCart(c.Request.Context(), sessionCartID, userID, productID)
	c.JSON(http.StatusOK, result)
}
