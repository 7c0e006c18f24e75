package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/maaz-official/Recipe-App-Backend/internal/middleware"
	"github.com/maaz-official/Recipe-App-Backend/internal/service"
)

type CommentHandler struct {
	comments *service.CommentService
}

func NewCommentHandler(comments *service.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

func (h *CommentHandler) RegisterRoutes(router *gin.RouterGroup, authn gin.HandlerFunc) {
	comments := router.Group("/comments")
	{
		comments.GET("/recipe/:recipeId", h.CommentsByRecipe)
		comments.GET("/user/:userId", h.CommentsByUser)
		comments.GET("/:id", h.GetComment)
		comments.POST("/:recipeId", authn, h.CreateComment)
		comments.PUT("/:id", authn, h.UpdateComment)
		comments.DELETE("/:id", authn, h.DeleteComment)
	}
}

type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
}

type UpdateCommentRequest struct {
	Content *string `json:"content"`
	Rating  *int    `json:"rating" binding:"omitempty,min=1,max=5"`
}

func (h *CommentHandler) CommentsByRecipe(c *gin.Context) {
	recipeID, err := uuid.Parse(c.Param("recipeId"))
	if err != nil {
		respondError(c, service.ErrNotFound)
		return
	}

	comments, err := h.comments.CommentsByRecipe(c.Request.Context(), recipeID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

func (h *CommentHandler) CommentsByUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		respondError(c, service.ErrNotFound)
		return
	}

	comments, err := h.comments.CommentsByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

func (h *CommentHandler) GetComment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, service.ErrNotFound)
		return
	}

	comment, err := h.comments.GetComment(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

func (h *CommentHandler) CreateComment(c *gin.Context) {
	recipeID, err := uuid.Parse(c.Param("recipeId"))
	if err != nil {
		respondError(c, service.ErrNotFound)
		return
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	comment, err := h.comments.CreateComment(c.Request.Context(), user.ID, recipeID, req.Content, req.Rating)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func (h *CommentHandler) UpdateComment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, service.ErrNotFound)
		return
	}

	var req UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	comment, err := h.comments.UpdateComment(c.Request.Context(), id, user, service.CommentPatch{
		Content: req.Content,
		Rating:  req.Rating,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

func (h *CommentHandler) DeleteComment(c *gin.Context) {
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

	if err := h.comments.DeleteComment(c.Request.Context(), id, user); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "comment removed"})
}
