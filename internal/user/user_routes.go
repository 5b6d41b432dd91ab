package user

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/jverbeek/hockeyclub/config"
)

// RegisterUserRoutes wires the auth endpoints.
func RegisterUserRoutes(router *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	controller := NewUserController(NewUserRepository(db), cfg)

	auth := router.Group("/auth")
	{
		auth.POST("/login", controller.Login)
		auth.POST("/refresh", controller.Refresh)
	}
}
