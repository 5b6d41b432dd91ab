package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/jverbeek/hockeyclub/config"
	"github.com/jverbeek/hockeyclub/internal/competition"
	"github.com/jverbeek/hockeyclub/internal/draft"
	"github.com/jverbeek/hockeyclub/internal/league"
	"github.com/jverbeek/hockeyclub/internal/roster"
	"github.com/jverbeek/hockeyclub/internal/user"
	"github.com/jverbeek/hockeyclub/pkg/events"
)

// SetupRoutes builds the gin engine and registers every feature's routes.
func SetupRoutes(db *gorm.DB, cfg *config.Config, log *logrus.Logger, dispatcher events.Dispatcher) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"service": "hockeyclub", "status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	jwtSecret := cfg.JWT.AccessTokenSecret

	api := r.Group("/api")
	user.RegisterUserRoutes(api, db, cfg)
	competition.RegisterCompetitionRoutes(api, db, jwtSecret)
	roster.RegisterRosterRoutes(api, db, jwtSecret, log, dispatcher)
	league.RegisterLeagueRoutes(api, db, jwtSecret, log, dispatcher)
	draft.RegisterDraftRoutes(api, db, jwtSecret, log, dispatcher)

	return r
}
