package league

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	mw "github.com/jverbeek/hockeyclub/internal/middleware"
	"github.com/jverbeek/hockeyclub/internal/user"
	"github.com/jverbeek/hockeyclub/pkg/events"
	"github.com/jverbeek/hockeyclub/pkg/rmiddleware"
)

// RegisterLeagueRoutes wires season plan and signup endpoints.
func RegisterLeagueRoutes(router *gin.RouterGroup, db *gorm.DB, jwtSecret string, log *logrus.Logger, dispatcher events.Dispatcher) {
	repo := NewLeagueRepository(db)
	plans := NewPlanManager(repo, log)
	ledger := NewLedger(repo)
	controller := NewLeagueController(repo, plans, ledger, dispatcher)
	userRepo := user.NewUserRepository(db)

	authenticated := router.Group("/")
	authenticated.Use(mw.AuthMiddleware(jwtSecret, db))
	{
		// Signups are open to every authenticated role; the role middleware
		// also loads the roles the controller uses for the admin exemption.
		signup := authenticated.Group("/")
		signup.Use(rmiddleware.RoleMiddleware(userRepo, user.RolePlayer, user.RoleLeagueManager, user.RoleAdmin))
		{
			signup.POST("/leagues/:competition_id/signups", controller.UpsertIntent)
			signup.GET("/leagues/:competition_id/plan", controller.GetPlan)
		}

		admin := authenticated.Group("/")
		admin.Use(rmiddleware.LeagueManagerMiddleware(userRepo))
		{
			admin.PUT("/leagues/:competition_id/plan", controller.UpsertPlan)
			admin.GET("/leagues/:competition_id/signups", controller.ListIntents)
		}
	}
}
