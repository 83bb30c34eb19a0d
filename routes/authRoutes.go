package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/wenixstore/wenix-api/controllers"
)

func AuthRoutes(server *gin.Engine) {
	server.POST("/register", controllers.Register)
	server.POST("/login", controllers.Login)
	server.POST("/logout", controllers.Logout)
}
