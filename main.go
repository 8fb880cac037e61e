package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"notable/config"
	"notable/handler"
	"notable/middleware"
	"notable/repository"
	"notable/services"
	"notable/usecase"
	"notable/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func init() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil && os.Getenv("GO_ENV") != "test" {
		log.Printf("No .env file loaded: %v", err)
	}

	requiredEnvVars := []string{
		"MONGO_URI",
		"MONGO_DB",
		"JWT_SECRET_KEY",
	}

	for _, envVar := range requiredEnvVars {
		if os.Getenv(envVar) == "" && os.Getenv("GO_ENV") != "test" {
			log.Fatalf("Required environment variable %s is not set", envVar)
		}
	}
}

func setupRouter(cfg *config.Config) *gin.Engine {
	utils.RegisterCustomValidators()

	router := gin.New()

	router.Use(gin.Logger())
	router.Use(middleware.EnhancedRecoveryMiddleware())
	router.Use(middleware.RequestTracingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestSizeLimiter(cfg.Server.MaxRequestSize))
	router.Use(middleware.MetricsMiddleware())

	// Repositories
	userRepo := repository.GetUserRepo(utils.MongoClient)
	notesRepo := repository.GetNotesRepo(utils.MongoClient)
	tokenRepo := repository.GetTokenRepo(utils.MongoClient)

	// Services
	userService := &usecase.UserService{
		UsersRepo: userRepo,
		NotesRepo: notesRepo,
		TokenRepo: tokenRepo,
	}
	tokenService := &usecase.TokenService{
		TokenRepo: tokenRepo,
		UsersRepo: userRepo,
	}
	notesService := &usecase.NotesService{
		NotesRepo: notesRepo,
	}
	statsService := &usecase.StatsService{
		UsersRepo: userRepo,
		NotesRepo: notesRepo,
		Timezone:  cfg.Stats.Timezone,
	}
	statsHandler := handler.NewStatsHandler(statsService)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public routes (no authentication required)
	public := router.Group("/api")
	{
		public.POST("/register", func(c *gin.Context) {
			handler.RegistrationHandler(c, userService)
		})
		public.POST("/token", func(c *gin.Context) {
			handler.LoginHandler(c, userService, tokenService)
		})
		public.POST("/token/refresh", func(c *gin.Context) {
			handler.RefreshTokenHandler(c, tokenService)
		})
	}

	// Protected routes (authentication required)
	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("/logout", func(c *gin.Context) {
			handler.LogoutHandler(c, tokenService)
		})

		user := protected.Group("/user")
		{
			user.GET("/profile", func(c *gin.Context) {
				handler.GetUserProfileHandler(c, userService)
			})
			user.DELETE("", func(c *gin.Context) {
				handler.DeleteUserHandler(c, userService)
			})
		}

		notes := protected.Group("/notes")
		{
			notes.GET("", func(c *gin.Context) {
				handler.GetUserNotesHandler(c, notesService)
			})
			notes.POST("", func(c *gin.Context) {
				handler.CreateNoteHandler(c, notesService)
			})
			notes.GET("/:id", func(c *gin.Context) {
				handler.GetNoteHandler(c, notesService)
			})
			notes.PUT("/:id", func(c *gin.Context) {
				handler.UpdateNoteHandler(c, notesService)
			})
			notes.PATCH("/:id", func(c *gin.Context) {
				handler.PatchNoteHandler(c, notesService)
			})
			notes.DELETE("/:id", func(c *gin.Context) {
				handler.DeleteNoteHandler(c, notesService)
			})
		}

		// Admin-only dashboard
		dashboard := protected.Group("/dashboard")
		dashboard.Use(middleware.AdminMiddleware())
		{
			dashboard.GET("/stats", statsHandler.GetDashboardStats)
			dashboard.GET("/users", statsHandler.GetUserStats)
			dashboard.GET("/notes-per-day", statsHandler.GetNotesPerDay)
			dashboard.GET("/notes-per-user", statsHandler.GetNotesPerUser)
			dashboard.GET("/system", statsHandler.GetSystemStats)
		}
	}

	return router
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	services.InitJWT(cfg.JWT)

	utils.InitMongoClient(
		cfg.Database.URI,
		cfg.Database.MaxPoolSize,
		cfg.Database.MinPoolSize,
		cfg.Database.MaxConnIdleTime,
	)
	defer utils.CloseMongoClient()

	db := utils.MongoClient.Database(cfg.Database.DatabaseName)
	if err := repository.SetupIndexes(db); err != nil {
		log.Fatalf("Failed to set up indexes: %v", err)
	}

	// Revocation stays correct without Redis; the cache is a fast path.
	cache, err := services.NewRevocationCache(cfg.Redis.URL)
	if err != nil {
		log.Printf("Redis unavailable, revocation checks fall back to MongoDB: %v", err)
	} else {
		services.RevocationCache = cache
		defer cache.Close()
	}

	router := setupRouter(cfg)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	sig := <-signalChan
	log.Printf("Caught signal %s, shutting down", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	log.Println("Server shutdown complete")
}
