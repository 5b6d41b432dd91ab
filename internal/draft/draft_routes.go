package draft

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/jverbeek/hockeyclub/internal/competition"
	"github.com/jverbeek/hockeyclub/internal/league"
	mw "github.com/jverbeek/hockeyclub/internal/middleware"
	"github.com/jverbeek/hockeyclub/internal/roster"
	"github.com/jverbeek/hockeyclub/internal/user"
	"github.com/jverbeek/hockeyclub/pkg/events"
	"github.com/jverbeek/hockeyclub/pkg/rmiddleware"
)

// RegisterDraftRoutes wires draft session, pick, captain, and sub-pool
// endpoints.
func RegisterDraftRoutes(router *gin.RouterGroup, db *gorm.DB, jwtSecret string, log *logrus.Logger, dispatcher events.Dispatcher) {
	repo := NewDraftRepository(db)
	compRepo := competition.NewCompetitionRepository(db)
	leagueRepo := league.NewLeagueRepository(db)
	playerRepo := roster.NewPlayerRepository(db)
	userRepo := user.NewUserRepository(db)

	engine := NewEngine(repo, compRepo, leagueRepo, playerRepo, log)
	registry := NewCaptainRegistry(repo, log)
	controller := NewDraftController(repo, engine, registry, compRepo, dispatcher)

	authenticated := router.Group("/")
	authenticated.Use(mw.AuthMiddleware(jwtSecret, db))
	{
		// Picks and bench changes are open to captains too; the controller
		// resolves captaincy after the role middleware loads the roles.
		member := authenticated.Group("/")
		member.Use(rmiddleware.RoleMiddleware(userRepo, user.RolePlayer, user.RoleLeagueManager, user.RoleAdmin))
		{
			member.GET("/leagues/:competition_id/draft", controller.GetDraft)
			member.POST("/leagues/:competition_id/draft/picks", controller.Pick)
			member.POST("/teams/:team_id/subpool", controller.AddSubPoolMember)
			member.POST("/teams/:team_id/subpool/remove", controller.RemoveSubPoolMember)
		}

		admin := authenticated.Group("/")
		admin.Use(rmiddleware.LeagueManagerMiddleware(userRepo))
		{
			admin.POST("/leagues/:competition_id/draft", controller.StartDraft)
			admin.POST("/leagues/:competition_id/draft/close", controller.CloseDraft)
			admin.PUT("/teams/:team_id/captain", controller.SetCaptain)
		}
	}
}
