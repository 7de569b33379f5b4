package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"foodgram/internal/http-api/dto"
	"foodgram/internal/http-api/middleware"
	"foodgram/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService service.UserService
	subService  service.SubscriptionService
	authService service.AuthService
}

func NewUserHandler(
	userService service.UserService,
	subService service.SubscriptionService,
	authService service.AuthService,
) *UserHandler {
	return &UserHandler{userService: userService, subService: subService, authService: authService}
}

func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	// Public routes; the viewer is resolved when a token is present so
	// is_subscribed comes back right
	rg.GET("/", middleware.OptionalAuth(h.authService), h.List)
	rg.GET("/:user_id", middleware.OptionalAuth(h.authService), h.Get)

	// Authenticated routes
	rg.GET("/me", middleware.AuthMiddleware(h.authService), h.Me)
	rg.GET("/subscriptions", middleware.AuthMiddleware(h.authService), h.ListSubscriptions)
	rg.POST("/:user_id/subscribe", middleware.AuthMiddleware(h.authService), h.Subscribe)
	rg.DELETE("/:user_id/subscribe", middleware.AuthMiddleware(h.authService), h.Unsubscribe)
}

func (h *UserHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	page, pageSize := parsePagination(c)
	profiles, total, err := h.userService.ListProfiles(ctx, c.GetString("userID"), page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.FromUserProfiles(profiles, total))
}

func (h *UserHandler) Get(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	profile, err := h.userService.GetProfile(ctx, c.GetString("userID"), c.Param("user_id"))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.FromUserProfile(profile))
}

func (h *UserHandler) Me(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	userID := c.GetString("userID")
	profile, err := h.userService.GetProfile(ctx, userID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.FromUserProfile(profile))
}

func (h *UserHandler) Subscribe(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	view, err := h.subService.Subscribe(ctx, c.GetString("userID"), c.Param("user_id"), parseRecipesLimit(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		case errors.Is(err, service.ErrSelfSubscription), errors.Is(err, service.ErrAlreadySubscribed):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.SubscriptionFromView(view))
}

func (h *UserHandler) Unsubscribe(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.subService.Unsubscribe(ctx, c.GetString("userID"), c.Param("user_id")); err != nil {
		if errors.Is(err, service.ErrNotSubscribed) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *UserHandler) ListSubscriptions(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	page, pageSize := parsePagination(c)
	views, total, err := h.subService.ListSubscriptions(ctx, c.GetString("userID"), parseRecipesLimit(c), page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.SubscriptionListFromViews(views, total))
}

// parsePagination reads page/page_size with the shared defaults.
func parsePagination(c *gin.Context) (page, pageSize int) {
	page = 1
	pageSize = 20

	if p := c.Query("page"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil && parsed > 0 {
			page = parsed
		}
	}
	if ps := c.Query("page_size"); ps != "" {
		if parsed, err := strconv.Atoi(ps); err == nil && parsed > 0 && parsed <= 100 {
			pageSize = parsed
		}
	}
	return page, pageSize
}

// parseRecipesLimit reads recipes_limit; 0 means unlimited.
func parseRecipesLimit(c *gin.Context) int {
	if rl := c.Query("recipes_limit"); rl != "" {
		if parsed, err := strconv.Atoi(rl); err == nil && parsed > 0 {
			return parsed
		}
	}
	return 0
}
