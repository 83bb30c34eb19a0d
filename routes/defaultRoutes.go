package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/wenixstore/wenix-api/controllers"
)

func DefaultRoutes(server *gin.Engine) {
	server.GET("/", controllers.GetHome)
	server.GET("/search", controllers.SearchProducts)
}
