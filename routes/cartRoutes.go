package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/wenixstore/wenix-api/controllers"
	"github.com/wenixstore/wenix-api/middlewares"
)

func CartRoutes(server *gin.Engine) {
	// Adding to the cart hangs off the product detail path, storefront-style.
	server.POST("/product/:id", controllers.AddToCart)
	server.GET("/cart", controllers.GetCart)

	server.GET("/checkout", middlewares.RequireAuth(), controllers.GetCheckout)
	server.POST("/checkout", middlewares.RequireAuth(), controllers.Checkout)
}
