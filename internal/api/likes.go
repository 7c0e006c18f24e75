package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/maaz-official/Recipe-App-Backend/internal/middleware"
	"github.com/maaz-official/Recipe-App-Backend/internal/service"
)

type LikeHandler struct {
	likes *service.LikeService
}

func NewLikeHandler(likes *service.LikeService) *LikeHandler {
	return &LikeHandler{likes: likes}
}

func (h *LikeHandler) RegisterRoutes(router *gin.RouterGroup, authn gin.HandlerFunc) {
	likes := router.Group("/likes")
	{
		likes.GET("/recipe/:recipeId", h.LikesForRecipe)
		likes.GET("/user/:userId", h.LikesByUser)
		likes.POST("/:recipeId", authn, h.LikeRecipe)
		likes.DELETE("/:recipeId", authn, h.UnlikeRecipe)
	}
}

func (h *LikeHandler) LikesForRecipe(c *gin.Context) {
	recipeID, err := uuid.Parse(c.Param("recipeId"))
	if err != nil {
		respondError(c, service.ErrNotFound)
		return
	}

	recipe, users, err := h.likes.RecipeLikes(c.Request.Context(), recipeID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"recipe":      recipe.Name,
		"total_likes": len(users),
		"users":       users,
	})
}

func (h *LikeHandler) LikesByUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		respondError(c, service.ErrNotFound)
		return
	}

	recipes, err := h.likes.RecipesLikedBy(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

func (h *LikeHandler) LikeRecipe(c *gin.Context) {
	recipeID, err := uuid.Parse(c.Param("recipeId"))
	if err != nil {
		respondError(c, service.ErrNotFound)
		return
	}

	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	outcome, err := h.likes.LikeRecipe(c.Request.Context(), recipeID, user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": outcome.String()})
}

func (h *LikeHandler) UnlikeRecipe(c *gin.Context) {
	recipeID, err := uuid.Parse(c.Param("recipeId"))
	if err != nil {
		respondError(c, service.ErrNotFound)
		return
	}

	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	outcome, err := h.likes.UnlikeRecipe(c.Request.Context(), recipeID, user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": outcome.String()})
}
