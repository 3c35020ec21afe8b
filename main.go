package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"main/config"
	"main/handler"
	"main/middleware"
	"main/repository"
	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func init() {
	if err := godotenv.Load(); err != nil && os.Getenv("GO_ENV") != "test" {
		log.Printf("No .env file loaded: %v", err)
	}

	requiredEnvVars := []string{
		"MONGO_URI",
		"MONGO_DB",
		"JWT_SECRET_KEY",
		"JWT_EXPIRATION_TIME",
		"REFRESH_TOKEN_EXPIRATION_TIME",
		"PORT",
	}
	for _, envVar := range requiredEnvVars {
		if os.Getenv(envVar) == "" && os.Getenv("GO_ENV") != "test" {
			log.Fatalf("Required environment variable %s is not set", envVar)
		}
	}

	utils.InitValidator()
	utils.InitJWT()
	utils.InitMongoClient()
}

// initCaches wires up the Redis-backed blacklist and caches. Redis being
// unreachable is tolerated; auth still works, just without token
// revocation and with stats recomputed on every request.
func initCaches() {
	redisURL := utils.GetEnvAsString("REDIS_URL", "redis://localhost:6379")

	blacklist, err := services.NewTokenBlacklist(redisURL)
	if err != nil {
		log.Printf("Token blacklist disabled: %v", err)
	} else {
		services.TokenBlacklist = blacklist
	}

	sessionCache, err := services.NewSessionCache(redisURL)
	if err != nil {
		log.Printf("Session cache disabled: %v", err)
	} else {
		services.GlobalSessionCache = sessionCache
	}

	statsTTL := utils.GetEnvAsDuration("STATS_CACHE_TTL", 30*time.Second)
	statsCache, err := services.NewStatsCache(redisURL, statsTTL)
	if err != nil {
		log.Printf("Stats cache disabled: %v", err)
	} else {
		services.GlobalStatsCache = statsCache
	}
}

func setupRouter(blobStore *services.BlobStore, uploadService *services.UploadService) *gin.Engine {
	router := gin.Default()

	sessionRepo := repository.GetSessionRepo(utils.MongoClient)
	activitiesRepo := repository.GetActivitiesRepo(utils.MongoClient)
	activitiesHandler := handler.NewActivitiesHandler(activitiesRepo)

	// Large enough for a multi-file attachment batch
	maxRequestSize := int64(utils.GetEnvAsUint64("MAX_REQUEST_SIZE", 32*1024*1024))

	router.Use(middleware.RequestTracingMiddleware())
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.RequestSizeLimiter(maxRequestSize))
	router.Use(middleware.SessionMiddleware(sessionRepo))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	public := router.Group("/api")
	{
		public.GET("/health", handler.HealthCheckHandler)

		auth := public.Group("/auth")
		{
			auth.POST("/register", handler.RegistrationHandler)
			auth.POST("/login", func(c *gin.Context) {
				handler.LoginHandler(c, sessionRepo)
			})
			auth.POST("/refresh", handler.RefreshTokenHandler)
		}
	}

	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("/auth/logout", func(c *gin.Context) {
			handler.LogoutHandler(c, sessionRepo)
		})

		activities := protected.Group("/activities")
		{
			activities.GET("", activitiesHandler.ListActivities)
			activities.POST("", activitiesHandler.CreateActivity)
			activities.GET("/stream", func(c *gin.Context) {
				handler.StreamActivities(c, activitiesRepo)
			})
			activities.GET("/stats", func(c *gin.Context) {
				handler.GetActivityStats(c, activitiesRepo)
			})
			activities.GET("/export", func(c *gin.Context) {
				handler.ExportActivitiesCSV(c, activitiesRepo)
			})
			activities.GET("/:id", activitiesHandler.GetActivity)
			activities.PUT("/:id", activitiesHandler.UpdateActivity)
			activities.PATCH("/:id", activitiesHandler.UpdateActivity)
			activities.DELETE("/:id", func(c *gin.Context) {
				activitiesHandler.DeleteActivity(c, blobStore)
			})
		}

		profile := protected.Group("/profile")
		{
			profile.GET("", handler.GetProfileHandler)
			profile.PUT("", handler.UpdateProfileHandler)
			profile.PATCH("", handler.UpdateProfileHandler)
			profile.PUT("/score-target", handler.UpdateScoreTargetHandler)
			profile.PUT("/display-name", handler.UpdateDisplayNameHandler)
		}

		protected.POST("/uploads", func(c *gin.Context) {
			handler.UploadAttachmentsHandler(c, uploadService)
		})

		twofa := protected.Group("/2fa")
		{
			twofa.POST("/generate", handler.Generate2FASecretHandler)
			twofa.POST("/enable", handler.Enable2FAHandler)
			twofa.POST("/verify", handler.Verify2FAHandler)
			twofa.POST("/disable", handler.Disable2FAHandler)
			twofa.POST("/recovery", handler.UseRecoveryCodeHandler)
		}

		sessions := protected.Group("/sessions")
		{
			sessions.GET("/active", func(c *gin.Context) {
				handler.GetActiveSessions(c, sessionRepo)
			})
			sessions.POST("/logout-all", func(c *gin.Context) {
				handler.LogoutAllSessions(c, sessionRepo)
			})
		}
	}

	files := router.Group("/files")
	files.Use(middleware.AuthMiddleware())
	files.Use(middleware.CacheControlMiddleware("86400"))
	{
		files.GET("/*path", func(c *gin.Context) {
			handler.ServeAttachmentHandler(c, blobStore)
		})
		files.DELETE("/*path", func(c *gin.Context) {
			handler.DeleteAttachmentHandler(c, blobStore)
		})
	}

	return router
}

func main() {
	initCaches()

	storageCfg := config.LoadStorageConfig()
	blobStore, err := services.OpenBlobStore(storageCfg.BlobPath, storageCfg.PublicBaseURL)
	if err != nil {
		log.Fatalf("Failed to open blob store: %v", err)
	}
	defer blobStore.Close()

	uploadService := &services.UploadService{
		Store:   blobStore,
		MaxSize: storageCfg.MaxUploadSize,
	}

	dbCfg := config.LoadDatabaseConfig()
	if err := repository.SetupIndexes(utils.MongoClient.Database(dbCfg.DatabaseName)); err != nil {
		log.Printf("Index setup failed: %v", err)
	}

	router := setupRouter(blobStore, uploadService)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	serverAddr := fmt.Sprintf(":%s", port)
	log.Printf("Server starting on %s", serverAddr)
	if err := router.Run(serverAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
