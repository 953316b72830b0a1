package main

import (
	"time"

	"go.uber.org/zap"

	"scriblet/database"
	"scriblet/game"
	"scriblet/game/words"
	"scriblet/handlers"
	"scriblet/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	logger, err := utils.InitLogger()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	config, err := database.LoadConfig("config.json")
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	// PostgreSQL keeps finished scoreboards and Redis keeps resume
	// tokens. Both are optional: the server runs fully in memory
	// without them.
	var archive *game.Archive
	if config.DBHost != "" {
		db, err := database.InitPostgreSQL(config, logger)
		if err != nil {
			logger.Fatal("Failed to initialize PostgreSQL", zap.Error(err))
		}
		archive = game.NewArchive(db, logger)
	} else {
		logger.Info("No database configured, score archiving disabled")
	}

	var sessions *game.SessionStore
	if rdb, err := database.InitRedis(logger); err != nil {
		logger.Warn("Failed to initialize Redis, session resume disabled", zap.Error(err))
	} else {
		sessions = game.NewSessionStore(rdb, logger)
	}

	hub := game.NewHub(logger, words.NewSupply(), game.SystemTickers{}, sessions, archive)
	go hub.Run()
	go utils.CronCleaner(hub, logger)

	router := gin.New()
	router.Use(gin.Recovery(), utils.RequestLogger(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     config.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/", handlers.Liveness)
	router.GET("/health", handlers.Health)
	router.GET("/rooms", handlers.ListRooms(hub))
	router.GET("/ws", game.ServeWS(hub, logger))

	if err := router.Run(":" + config.Port); err != nil {
		logger.Fatal("Failed to run HTTP server", zap.Error(err))
	}
}
