package main

import (
	"log"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/jverbeek/hockeyclub/config"
	_ "github.com/jverbeek/hockeyclub/docs"
	"github.com/jverbeek/hockeyclub/internal/competition"
	"github.com/jverbeek/hockeyclub/internal/draft"
	"github.com/jverbeek/hockeyclub/internal/league"
	"github.com/jverbeek/hockeyclub/internal/metrics"
	"github.com/jverbeek/hockeyclub/internal/roster"
	"github.com/jverbeek/hockeyclub/internal/user"
	"github.com/jverbeek/hockeyclub/pkg/events"
	"github.com/jverbeek/hockeyclub/routes"
)

// @title HockeyClub Roster & Draft API
// @version 1.0
// @description Roster allocation and league-draft workflow engine for the club site.
// @host localhost:8090
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := config.Initialize(); err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	cfg := config.GetConfig()

	appLog := logrus.New()
	appLog.SetFormatter(&logrus.JSONFormatter{})
	if cfg.App.Env == "development" {
		appLog.SetLevel(logrus.DebugLevel)
		appLog.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	err := config.DB.AutoMigrate(
		&user.User{}, &user.Role{},
		&roster.Player{}, &roster.RetiredNumber{}, &roster.JerseyNumberRequest{},
		&competition.Competition{}, &competition.Team{}, &competition.TeamMembership{},
		&league.SeasonPlan{}, &league.SignupIntent{},
		&draft.CaptainControl{}, &draft.DraftSession{}, &draft.DraftPick{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}
	log.Println("AutoMigrate successful")

	if err := user.SeedAdmin(config.DB); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	metrics.Register()

	var dispatcher events.Dispatcher = &events.LogDispatcher{Log: appLog}
	if cfg.Redis.Addr != "" {
		dispatcher = events.Multi{
			&events.LogDispatcher{Log: appLog},
			&events.RedisDispatcher{
				Client:  redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr}),
				Channel: cfg.Redis.EventChannel,
				Log:     appLog,
			},
		}
	}

	r := routes.SetupRoutes(config.DB, cfg, appLog, dispatcher)

	log.Printf("Starting server on port %s in %s mode\n", cfg.App.Port, cfg.App.Env)
	if err := r.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
