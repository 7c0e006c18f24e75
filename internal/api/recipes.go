package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/maaz-official/Recipe-App-Backend/internal/middleware"
	"github.com/maaz-official/Recipe-App-Backend/internal/models"
	"github.com/maaz-official/Recipe-App-Backend/internal/service"
)

type RecipeHandler struct {
	recipes *service.RecipeService
	likes   *service.LikeService
	images  *service.ImageService
}

// NewRecipeHandler wires the recipe routes. images may be nil when S3 is
// not configured; the upload route then answers 503.
func NewRecipeHandler(recipes *service.RecipeService, likes *service.LikeService, images *service.ImageService) *RecipeHandler {
	return &RecipeHandler{
		recipes: recipes,
		likes:   likes,
		images:  images,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup, authn gin.HandlerFunc) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/published", h.ListPublished)
		recipes.GET("/:id", h.GetRecipe)
		recipes.POST("", authn, h.CreateRecipe)
		recipes.PUT("/:id", authn, h.UpdateRecipe)
		recipes.DELETE("/:id", authn, h.DeleteRecipe)
		recipes.POST("/publish/:id", authn, middleware.AdminOnly(), h.PublishRecipe)
		recipes.GET("/category/:categoryId", h.RecipesByCategory)
		recipes.GET("/tag/:tagId", h.RecipesByTag)
		recipes.POST("/:id/like", authn, h.LikeRecipe)
		recipes.DELETE("/:id/unlike", authn, h.UnlikeRecipe)
		recipes.POST("/:id/image", authn, h.UploadImage)
	}
}

type CreateRecipeRequest struct {
	Name         string                `json:"name" binding:"required"`
	Description  string                `json:"description"`
	CategoryID   uuid.UUID             `json:"category_id" binding:"required"`
	TagIDs       []uuid.UUID           `json:"tag_ids"`
	Ingredients  models.IngredientList `json:"ingredients" binding:"required,min=1"`
	Instructions models.StringArray    `json:"instructions" binding:"required,min=1"`
	CookingTime  int                   `json:"cooking_time" binding:"required,gt=0"`
	Difficulty   string                `json:"difficulty" binding:"omitempty,oneof=Easy Medium Hard"`
	Servings     int                   `json:"servings" binding:"required,gt=0"`
	ImageURL     string                `json:"image_url"`
	Nutrition    models.Nutrition      `json:"nutrition"`
}

type UpdateRecipeRequest struct {
	Name         *string                `json:"name"`
	Description  *string                `json:"description"`
	CategoryID   *uuid.UUID             `json:"category_id"`
	TagIDs       *[]uuid.UUID           `json:"tag_ids"`
	Ingredients  *models.IngredientList `json:"ingredients"`
	Instructions *models.StringArray    `json:"instructions"`
	CookingTime  *int                   `json:"cooking_time" binding:"omitempty,gt=0"`
	Difficulty   *string                `json:"difficulty" binding:"omitempty,oneof=Easy Medium Hard"`
	Servings     *int                   `json:"servings" binding:"omitempty,gt=0"`
	ImageURL     *string                `json:"image_url"`
	Nutrition    *models.Nutrition      `json:"nutrition"`
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	recipes, err := h.recipes.ListRecipes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

func (h *RecipeHandler) ListPublished(c *gin.Context) {
	recipes, err := h.recipes.ListPublished(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, service.ErrNotFound)
		return
	}

	recipe, err := h.recipes.GetRecipe(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	// The author is always the caller; the payload cannot name one.
	recipe := models.Recipe{
		Name:         req.Name,
		Description:  req.Description,
		CategoryID:   req.CategoryID,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
		CookingTime:  req.CookingTime,
		Difficulty:   req.Difficulty,
		Servings:     req.Servings,
		ImageURL:     req.ImageURL,
		Nutrition:    req.Nutrition,
		AuthorID:     user.ID,
	}

	created, err := h.recipes.CreateRecipe(c.Request.Context(), &recipe, req.TagIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, service.ErrNotFound)
		return
	}

	var req UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	recipe, err := h.recipes.UpdateRecipe(c.Request.Context(), id, user, service.RecipePatch{
		Name:         req.Name,
		Description:  req.Description,
		CategoryID:   req.CategoryID,
		TagIDs:       req.TagIDs,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
		CookingTime:  req.CookingTime,
		Difficulty:   req.Difficulty,
		Servings:     req.Servings,
		ImageURL:     req.ImageURL,
		Nutrition:    req.Nutrition,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, service.ErrNotFound)
		return
	}

	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	if err := h.recipes.DeleteRecipe(c.Request.Context(), id, user); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "recipe removed"})
}

func (h *RecipeHandler) PublishRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, service.ErrNotFound)
		return
	}

	recipe, err := h.recipes.PublishRecipe(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) RecipesByCategory(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("categoryId"))
	if err != nil {
		respondError(c, service.ErrNotFound)
		return
	}

	recipes, err := h.recipes.RecipesByCategory(c.Request.Context(), categoryID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

func (h *RecipeHandler) RecipesByTag(c *gin.Context) {
	tagID, err := uuid.Parse(c.Param("tagId"))
	if err != nil {
		respondError(c, service.ErrNotFound)
		return
	}

	recipes, err := h.recipes.RecipesByTag(c.Request.Context(), tagID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

func (h *RecipeHandler) LikeRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, service.ErrNotFound)
		return
	}

	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	outcome, err := h.likes.LikeRecipe(c.Request.Context(), id, user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": outcome.String()})
}

func (h *RecipeHandler) UnlikeRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, service.ErrNotFound)
		return
	}

	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	outcome, err := h.likes.UnlikeRecipe(c.Request.Context(), id, user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": outcome.String()})
}

func (h *RecipeHandler) UploadImage(c *gin.Context) {
	if h.images == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image uploads are not configured"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, service.ErrNotFound)
		return
	}

	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	// Ownership is checked before anything reaches S3.
	recipe, err := h.recipes.GetRecipe(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !service.CanModify(user, recipe.AuthorID) {
		respondError(c, service.ErrForbidden)
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer file.Close()

	url, err := h.images.UploadRecipeImage(c.Request.Context(), id, fileHeader.Header.Get("Content-Type"), file)
	if err != nil {
		respondError(c, err)
		return
	}

	updated, err := h.recipes.SetImageURL(c.Request.Context(), id, user, url)
	if err != nil {
		// The URL never made it into the recipe, so the object would be
		// unreachable; remove it rather than leave it orphaned.
		if delErr := h.images.DeleteImage(c.Request.Context(), url); delErr != nil {
			log.Printf("failed to clean up uploaded image %s: %v", url, delErr)
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}
