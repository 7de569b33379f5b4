package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"foodgram/database"
	"foodgram/internal/cache"
	"foodgram/internal/config"
	"foodgram/internal/http-api/handler"
	"foodgram/internal/http-api/middleware"
	"foodgram/internal/http-api/repository"
	"foodgram/internal/http-api/service"
	"foodgram/internal/storage"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	redisCache, err := cache.New(cfg.RedisAddr, cfg.RedisPassword, cfg.CacheTTL)
	if err != nil {
		logger.Error("redis connection failed", "error", err)
		os.Exit(1)
	}
	defer redisCache.Close()
	if !redisCache.Enabled() {
		logger.Warn("redis not configured, reference-data caching disabled")
	}

	images, err := storage.NewImageStore(cfg.MediaPath)
	if err != nil {
		logger.Error("media directory unavailable", "error", err, "path", cfg.MediaPath)
		os.Exit(1)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	tagRepo := repository.NewTagRepo(db)
	ingredientRepo := repository.NewIngredientRepo(db)
	recipeRepo := repository.NewRecipeRepo(db)
	relationRepo := repository.NewRelationRepository(db)
	subRepo := repository.NewSubscriptionRepository(db)

	// Services
	authSvc := service.NewAuthService(userRepo, refreshTokenRepo, cfg)
	userSvc := service.NewUserService(userRepo, subRepo)
	tagSvc := service.NewTagService(tagRepo, redisCache, logger)
	ingredientSvc := service.NewIngredientService(ingredientRepo, redisCache, logger)
	recipeSvc := service.NewRecipeService(recipeRepo, tagRepo, ingredientRepo, relationRepo, subRepo, images, logger)
	relationSvc := service.NewRelationService(relationRepo, recipeRepo)
	subSvc := service.NewSubscriptionService(subRepo, userRepo, recipeRepo)
	shoppingSvc := service.NewShoppingListService(relationRepo)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
	r.Use(corsMiddleware(cfg.CORSOrigins))

	// Stored recipe images are served straight from disk
	r.Static("/media/recipes", images.Dir())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	handler.NewAuthHandler(authSvc, cfg.AccessTokenTTL).RegisterRoutes(api.Group("/auth"))
	handler.NewUserHandler(userSvc, subSvc, authSvc).RegisterRoutes(api.Group("/users"))
	handler.NewTagHandler(tagSvc, authSvc).RegisterRoutes(api.Group("/tags"))
	handler.NewIngredientHandler(ingredientSvc, authSvc).RegisterRoutes(api.Group("/ingredients"))
	handler.NewRecipeHandler(recipeSvc, relationSvc, shoppingSvc, authSvc).RegisterRoutes(api.Group("/recipes"))

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("api server starting", "addr", addr, "env", cfg.GoEnv)
	if err := r.Run(addr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.IsDevelopment() {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

// corsMiddleware allows the configured frontend origins.
func corsMiddleware(origins []string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[strings.TrimRight(o, "/")] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && (allowed["*"] || allowed[strings.TrimRight(origin, "/")]) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, PUT, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
