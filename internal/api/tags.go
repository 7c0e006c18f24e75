package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/maaz-official/Recipe-App-Backend/internal/middleware"
	"github.com/maaz-official/Recipe-App-Backend/internal/service"
)

type TagHandler struct {
	tags    *service.TagService
	recipes *service.RecipeService
}

func NewTagHandler(tags *service.TagService, recipes *service.RecipeService) *TagHandler {
	return &TagHandler{
		tags:    tags,
		recipes: recipes,
	}
}

func (h *TagHandler) RegisterRoutes(router *gin.RouterGroup, authn gin.HandlerFunc) {
	tags := router.Group("/tags")
	{
		tags.GET("", h.ListTags)
		tags.GET("/:id", h.GetTag)
		tags.POST("", authn, middleware.AdminOnly(), h.CreateTag)
		tags.PUT("/:id", authn, middleware.AdminOnly(), h.UpdateTag)
		tags.DELETE("/:id", authn, middleware.AdminOnly(), h.DeleteTag)
		tags.GET("/recipes/:tagId", h.RecipesByTag)
	}
}

type CreateTagRequest struct {
	Name string `json:"name" binding:"required"`
}

type UpdateTagRequest struct {
	Name *string `json:"name"`
}

func (h *TagHandler) ListTags(c *gin.Context) {
	tags, err := h.tags.ListTags(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tags)
}

func (h *TagHandler) GetTag(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, service.ErrNotFound)
		return
	}

	tag, err := h.tags.GetTag(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tag)
}

func (h *TagHandler) CreateTag(c *gin.Context) {
	var req CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	tag, err := h.tags.CreateTag(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tag)
}

func (h *TagHandler) UpdateTag(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, service.ErrNotFound)
		return
	}

	var req UpdateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	tag, err := h.tags.UpdateTag(c.Request.Context(), id, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tag)
}

func (h *TagHandler) DeleteTag(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, service.ErrNotFound)
		return
	}

	if err := h.tags.DeleteTag(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "tag removed"})
}

func (h *TagHandler) RecipesByTag(c *gin.Context) {
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
