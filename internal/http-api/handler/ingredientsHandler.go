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

type IngredientHandler struct {
	svc         service.IngredientService
	authService service.AuthService
}

func NewIngredientHandler(svc service.IngredientService, authService service.AuthService) *IngredientHandler {
	return &IngredientHandler{svc: svc, authService: authService}
}

func (h *IngredientHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/", h.Search)
	rg.GET("/:ingredient_id", h.Get)
	rg.POST("/", middleware.AuthMiddleware(h.authService), middleware.RequireAdmin(), h.Create)
}

// Search handles GET /api/ingredients?name=<prefix-or-substring>.
// Prefix matches come first, substring matches after; no name lists all.
func (h *IngredientHandler) Search(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	ingredients, err := h.svc.Search(ctx, c.Query("name"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]dto.IngredientResponse, 0, len(ingredients))
	for _, ing := range ingredients {
		resp = append(resp, dto.IngredientFromModel(ing))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *IngredientHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("ingredient_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	ing, err := h.svc.GetByID(ctx, id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "ingredient not found"})
		return
	}
	c.JSON(http.StatusOK, dto.IngredientFromModel(*ing))
}

func (h *IngredientHandler) Create(c *gin.Context) {
	var in dto.CreateIngredientDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	ing := in.ToModel()
	if err := h.svc.Create(ctx, &ing); err != nil {
		if errors.Is(err, service.ErrIngredientConflict) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, dto.IngredientFromModel(ing))
}
