package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/wenixstore/wenix-api/controllers"
)

func OrderRoutes(server *gin.Engine) {
	server.GET("/api/orders", controllers.GetOrders)
	server.POST("/api/orders", controllers.CreateOrderViaAPI)
}
