package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/rohitkandpal03/shopz-store/errors"
	"github.com/rohitkandpal03/shopz-store/middleware"
	"github.com/rohitkandpal03/shopz-store/services"
)

type OrderController struct {
	orderService services.OrderService
}

func NewOrderController(orderService services.OrderService) *OrderController {
	return &OrderController{orderService: orderService}
}

// PlaceOrder checks the cart out into an order. Missing prerequisites
// surface as redirect signals, which are passed through to the client
// rather than reported as failures.
func (oc *OrderController) PlaceOrder(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == nil {
		c.JSON(http.StatusUnauthorized, services.Result{Success: false, Message: "Unauthorized"})
		return
	}

	order, err := oc.orderService.CreateOrder(c.Request.Context(), *userID)
	if err != nil {
		if redirect, ok := apperrors.AsRedirect(err); ok {
			c.JSON(http.StatusOK, services.Result{
				Success:    false,
				Message:    redirect.Message,
				RedirectTo: redirect.To,
			})
			return
		}
		zap.L().Error("Checkout failed", zap.Error(err), zap.String("user_id", userID.String()))
		c.JSON(http.StatusOK, services.Result{Success: false, Message: apperrors.FormatError(err)})
		return
	}

	c.JSON(http.StatusOK, services.Result{
		Success:    true,
		Message:    "Order created",
		RedirectTo: "/order/" + order.ID.String(),
	})
}

// GetOrder returns one of the user's orders.
func (oc *OrderController) GetOrder(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}

	order, err := oc.orderService.GetOrderByID(c.Request.Context(), orderID, *userID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		zap.L().Error("Failed to fetch order", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch order"})
		return
	}

	c.JSON(http.StatusOK, order)
}

// GetMyOrders lists the user's orders, newest first.
func (oc *OrderController) GetMyOrders(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit < 1 || limit > 100 {
		limit = 10
	}

	orders, total, err := oc.orderService.GetUserOrders(c.Request.Context(), *userID, page, limit)
	if err != nil {
		zap.L().Error("Failed to fetch orders", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"meta": gin.H{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}
