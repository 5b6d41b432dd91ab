package competition

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	mw "github.com/jverbeek/hockeyclub/internal/middleware"
	"github.com/jverbeek/hockeyclub/internal/user"
	"github.com/jverbeek/hockeyclub/pkg/rmiddleware"
)

// RegisterCompetitionRoutes wires competition and team endpoints.
func RegisterCompetitionRoutes(router *gin.RouterGroup, db *gorm.DB, jwtSecret string) {
	repo := NewCompetitionRepository(db)
	userRepo := user.NewUserRepository(db)
	controller := NewCompetitionController(repo)

	public := router.Group("/competitions")
	{
		public.GET("", controller.GetAllCompetitions)
		public.GET("/:competition_id", controller.GetCompetition)
	}

	authenticated := router.Group("/")
	authenticated.Use(mw.AuthMiddleware(jwtSecret, db))
	{
		admin := authenticated.Group("/")
		admin.Use(rmiddleware.LeagueManagerMiddleware(userRepo))
		{
			admin.POST("/competitions", controller.CreateCompetition)
			admin.POST("/competitions/:competition_id/teams", controller.AddTeam)
			admin.POST("/teams/:team_id/members", controller.AddMember)
			admin.DELETE("/teams/:team_id/members/:user_id", controller.RemoveMember)
		}
	}
}
