package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/wenixstore/wenix-api/controllers"
	"github.com/wenixstore/wenix-api/middlewares"
)

func ProductRoutes(server *gin.Engine) {
	server.GET("/products", controllers.GetProducts)
	server.GET("/product/:id", controllers.GetProduct)

	admin := server.Group("/admin", middlewares.Authenticate(), middlewares.RequireAdmin())
	{
		admin.POST("/products", controllers.CreateProduct)
		admin.POST("/products/:id/image", controllers.UploadProductImage)
		admin.POST("/categories", controllers.CreateCategory)
	}
}
