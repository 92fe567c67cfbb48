package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/shercoin/shercoin/config"
	"github.com/shercoin/shercoin/controllers"
	"github.com/shercoin/shercoin/economy"
	"github.com/shercoin/shercoin/middleware"
	"github.com/shercoin/shercoin/utils"
)

// SetupRouter wires routes, middlewares, and controllers around the economy
// engine.
func SetupRouter(engine *economy.Engine) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Replace default console logger with file-based zap logger
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	authController := controllers.NewAuthController(engine)
	gameController := controllers.NewGameController(engine)
	boostController := controllers.NewBoostController(engine)
	taskController := controllers.NewTaskController(engine)
	articleController := controllers.NewArticleController(engine)
	bonusController := controllers.NewBonusController(engine)

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware())
	authGroup.POST("/telegram", authController.TelegramLogin)

	// The tap loop runs at up to 20 requests per second per player, so it
	// sits behind the engine's per-account window instead of the IP bucket.
	game := api.Group("")
	game.Use(middleware.AuthRequired())
	game.GET("/profile", gameController.Profile)
	game.POST("/tap", gameController.Tap)

	protected := api.Group("")
	protected.Use(middleware.AuthRequired(), middleware.RateLimitMiddleware())

	protected.GET("/transactions", gameController.History)

	protected.GET("/boosts", boostController.List)
	protected.POST("/boosts/activate", boostController.Activate)

	protected.GET("/tasks", taskController.List)
	protected.POST("/tasks/start", taskController.Start)
	protected.POST("/tasks/verify", taskController.Verify)
	protected.POST("/tasks/claim", taskController.Claim)

	protected.GET("/articles", articleController.List)
	protected.POST("/articles/complete", articleController.Complete)

	protected.GET("/referrals", bonusController.Referrals)
	protected.POST("/promo/claim", bonusController.ClaimPromo)
	protected.GET("/daily-login", bonusController.DailyLoginStatus)
	protected.POST("/daily-login/claim", bonusController.ClaimDailyLogin)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, 40400, "route not found")
	})

	return r
}
