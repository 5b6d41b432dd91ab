package roster

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	mw "github.com/jverbeek/hockeyclub/internal/middleware"
	"github.com/jverbeek/hockeyclub/internal/user"
	"github.com/jverbeek/hockeyclub/pkg/events"
	"github.com/jverbeek/hockeyclub/pkg/rmiddleware"
)

// RegisterRosterRoutes wires player and jersey number endpoints.
func RegisterRosterRoutes(router *gin.RouterGroup, db *gorm.DB, jwtSecret string, log *logrus.Logger, dispatcher events.Dispatcher) {
	players := NewPlayerRepository(db)
	requests := NewJerseyRequestRepository(db)
	alloc := NewAllocator(players, log)
	workflow := NewRequestWorkflow(players, requests, alloc, log)
	controller := NewRosterController(players, alloc, workflow, dispatcher)
	userRepo := user.NewUserRepository(db)

	authenticated := router.Group("/")
	authenticated.Use(mw.AuthMiddleware(jwtSecret, db))
	{
		authenticated.GET("/rosters/:roster_id/numbers", controller.AvailableNumbers)
		authenticated.POST("/jersey-requests", controller.CreateNumberRequest)

		admin := authenticated.Group("/")
		admin.Use(rmiddleware.LeagueManagerMiddleware(userRepo))
		{
			admin.POST("/players", controller.CreatePlayer)
			admin.PUT("/players/:user_id/jersey", controller.AssignNumber)
			admin.GET("/jersey-requests", controller.ListNumberRequests)
			admin.POST("/jersey-requests/:request_id/review", controller.ReviewNumberRequest)
		}
	}
}
