package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"foodgram/internal/http-api/dto"
	"foodgram/internal/http-api/middleware"
	"foodgram/internal/http-api/repository"
	"foodgram/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type RecipeHandler struct {
	svc         service.RecipeService
	relationSvc service.RelationService
	shoppingSvc service.ShoppingListService
	authService service.AuthService
}

func NewRecipeHandler(
	svc service.RecipeService,
	relationSvc service.RelationService,
	shoppingSvc service.ShoppingListService,
	authService service.AuthService,
) *RecipeHandler {
	return &RecipeHandler{
		svc:         svc,
		relationSvc: relationSvc,
		shoppingSvc: shoppingSvc,
		authService: authService,
	}
}

func (h *RecipeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	// Public reads; viewer-dependent flags resolve when a token is present
	rg.GET("/", middleware.OptionalAuth(h.authService), h.List)
	rg.GET("/:recipe_id", middleware.OptionalAuth(h.authService), h.Get)

	authed := middleware.AuthMiddleware(h.authService)
	rg.GET("/download_shopping_cart", authed, h.DownloadShoppingCart)
	rg.POST("/", authed, h.Create)
	rg.PUT("/:recipe_id", authed, h.Update)
	rg.PATCH("/:recipe_id", authed, h.Update)
	rg.DELETE("/:recipe_id", authed, h.Delete)

	rg.POST("/:recipe_id/favorite", authed, h.AddFavorite)
	rg.DELETE("/:recipe_id/favorite", authed, h.RemoveFavorite)
	rg.POST("/:recipe_id/shopping_cart", authed, h.AddToCart)
	rg.DELETE("/:recipe_id/shopping_cart", authed, h.RemoveFromCart)
}

func (h *RecipeHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	page, pageSize := parsePagination(c)
	filters := service.RecipeListFilters{
		AuthorID:       c.Query("author"),
		TagSlugs:       c.QueryArray("tags"),
		FavoritedOnly:  boolQuery(c, "is_favorited"),
		InShoppingCart: boolQuery(c, "is_in_shopping_cart"),
		Page:           page,
		PageSize:       pageSize,
	}

	views, total, err := h.svc.List(ctx, c.GetString("userID"), filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.RecipeListFromViews(views, total))
}

func (h *RecipeHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("recipe_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	view, err := h.svc.GetByID(ctx, c.GetString("userID"), id)
	if err != nil {
		if errors.Is(err, service.ErrRecipeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.RecipeFromView(view))
}

func (h *RecipeHandler) Create(c *gin.Context) {
	var in dto.CreateRecipeDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	view, err := h.svc.Create(ctx, c.GetString("userID"), in.ToInput())
	if err != nil {
		h.writeRecipeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.RecipeFromView(view))
}

func (h *RecipeHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("recipe_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var in dto.UpdateRecipeDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	view, err := h.svc.Update(ctx, c.GetString("userID"), c.GetString("role"), id, in.ToInput())
	if err != nil {
		h.writeRecipeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.RecipeFromView(view))
}

func (h *RecipeHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("recipe_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.Delete(ctx, c.GetString("userID"), c.GetString("role"), id); err != nil {
		h.writeRecipeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) AddFavorite(c *gin.Context) {
	h.addRelation(c, repository.KindFavorite)
}

func (h *RecipeHandler) RemoveFavorite(c *gin.Context) {
	h.removeRelation(c, repository.KindFavorite)
}

func (h *RecipeHandler) AddToCart(c *gin.Context) {
	h.addRelation(c, repository.KindShoppingCart)
}

func (h *RecipeHandler) RemoveFromCart(c *gin.Context) {
	h.removeRelation(c, repository.KindShoppingCart)
}

func (h *RecipeHandler) addRelation(c *gin.Context, kind repository.RelationKind) {
	id, err := strconv.ParseInt(c.Param("recipe_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	recipe, err := h.relationSvc.Add(ctx, kind, c.GetString("userID"), id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecipeNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		case errors.Is(err, service.ErrAlreadyInList):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, dto.RecipeShortFromModel(recipe))
}

func (h *RecipeHandler) removeRelation(c *gin.Context, kind repository.RelationKind) {
	id, err := strconv.ParseInt(c.Param("recipe_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.relationSvc.Remove(ctx, kind, c.GetString("userID"), id); err != nil {
		if errors.Is(err, service.ErrNotInList) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) DownloadShoppingCart(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	text, err := h.shoppingSvc.BuildShoppingList(ctx, c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="shopping_cart.txt"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(text))
}

// boolQuery treats "1" and "true" as set, anything else as unset.
func boolQuery(c *gin.Context, key string) bool {
	v := c.Query(key)
	return v == "1" || v == "true"
}

// writeRecipeError maps the create/update/delete sentinels to statuses.
func (h *RecipeHandler) writeRecipeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrRecipeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "you are not the author of this recipe"})
	case errors.Is(err, service.ErrMissingTags),
		errors.Is(err, service.ErrInvalidTagReference),
		errors.Is(err, service.ErrMissingIngredients),
		errors.Is(err, service.ErrDuplicateIngredient),
		errors.Is(err, service.ErrInvalidIngredientAmount),
		errors.Is(err, service.ErrInvalidIngredientReference),
		errors.Is(err, service.ErrInvalidCookingTime),
		errors.Is(err, service.ErrInvalidImage):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
