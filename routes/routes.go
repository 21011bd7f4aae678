package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/rohitkandpal03/shopz-store/controllers"
	"github.com/rohitkandpal03/shopz-store/middleware"
)

// Register wires up all storefront routes.
func Register(
	r *gin.Engine,
	tokens middleware.TokenValidator,
	productController *controllers.ProductController,
	cartController *controllers.CartController,
	authController *controllers.AuthController,
	orderController *controllers.OrderController,
) {
	products := r.Group("/products")
	{
		products.GET("/", productController.GetLatestProducts)
		products.GET("/:slug", productController.GetProductBySlug)
		products.POST("/", middleware.RequireAuth(tokens), productController.CreateProduct)
	}

	cart := r.Group("/cart")
	cart.Use(middleware.Authenticate(tokens))
	{
		cart.GET("/", cartController.GetCart)
		cart.POST("/add", cartController.AddItem)
		cart.DELETE("/remove/:product_id", cartController.RemoveItem)
	}

	auth := r.Group("/auth")
	auth.Use(middleware.RateLimit())
	{
		auth.POST("/sign-in", authController.SignIn)
		auth.POST("/sign-up", authController.SignUp)
		auth.POST("/sign-out", authController.SignOut)
	}

	user := r.Group("/user")
	user.Use(middleware.RequireAuth(tokens))
	{
		user.PUT("/address", authController.UpdateAddress)
		user.PUT("/payment-method", authController.UpdatePaymentMethod)
	}

	orders := r.Group("/orders")
	orders.Use(middleware.RequireAuth(tokens))
	{
		orders.POST("/", orderController.PlaceOrder)
		orders.GET("/", orderController.GetMyOrders)
		orders.GET("/:id", orderController.GetOrder)
	}
}
