package routes

import (
	"math/rand"
	"time"

	"vanguard/controllers"
	"vanguard/middleware"
	"vanguard/services/match"
	"vanguard/services/redis"
	"vanguard/services/storage"
	syncservice "vanguard/services/sync"
	"vanguard/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRoutes wires the storage, the lifecycle engine and all API routes
func SetupRoutes(router *gin.Engine, db *gorm.DB, redisClient *redis.RedisClient) {
	store := storage.New(db, redisClient)
	codes := utils.NewCodeGenerator(rand.NewSource(time.Now().UnixNano()))

	engine := match.NewEngine(store, store, codes, match.BasicValidator{})
	engine.OnTermination(syncservice.NewSyncManager(redisClient, db))
	queries := engine.Queries()

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes group
	api := router.Group("/")

	api.GET("/", controllers.Info)
	api.GET("/ping", controllers.Ping)

	api.POST("/players", controllers.RegisterPlayer(db))
	api.POST("/login", controllers.Login(db))

	// Public pre-join view, no token needed
	api.GET("/matches/:match_code", controllers.GetMatchDetails(queries))

	authentication := api.Group("/auth")
	authentication.Use(middleware.AuthRequired)
	{
		authentication.DELETE("/logout", controllers.Logout)

		authentication.GET("/matches/my", controllers.GetPlayerMatches(queries))

		authentication.POST("/matches", controllers.CreateMatch(engine))

		authentication.POST("/matches/:match_code/join", controllers.JoinMatch(engine))

		authentication.GET("/matches/:match_code/status", controllers.GetPlayerMatchStatus(queries))

		authentication.GET("/matches/:match_code/state", controllers.GetMatchState(queries))

		authentication.POST("/matches/:match_code/turn", controllers.SubmitTurn(engine))

		authentication.POST("/matches/:match_code/abandon", controllers.AbandonMatch(engine))
	}
}
