package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/maaz-official/Recipe-App-Backend/internal/middleware"
	"github.com/maaz-official/Recipe-App-Backend/internal/service"
)

type UserHandler struct {
	auth  *service.AuthService
	users *service.UserService
}

func NewUserHandler(auth *service.AuthService, users *service.UserService) *UserHandler {
	return &UserHandler{
		auth:  auth,
		users: users,
	}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup, authn gin.HandlerFunc) {
	users := router.Group("/users")
	{
		users.POST("/register", h.Register)
		users.POST("/login", h.Login)
		users.GET("", authn, middleware.AdminOnly(), h.ListUsers)
		users.GET("/:id", authn, h.GetUser)
		users.PUT("/:id", authn, h.UpdateUser)
		users.DELETE("/:id", authn, middleware.AdminOnly(), h.DeleteUser)
		users.POST("/favorites/:userId/:recipeId", authn, h.AddFavorite)
		users.DELETE("/favorites/:userId/:recipeId", authn, h.RemoveFavorite)
	}
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,min=6"`
}

func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, token, err := h.auth.Register(req.Name, req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":  user,
		"token": token,
	})
}

func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, token, err := h.auth.Login(req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  user,
		"token": token,
	})
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.users.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, service.ErrNotFound)
		return
	}

	user, err := h.users.GetUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, service.ErrNotFound)
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.users.UpdateUser(c.Request.Context(), id, service.UserPatch{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, service.ErrNotFound)
		return
	}

	if err := h.users.DeleteUser(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user removed"})
}

func (h *UserHandler) AddFavorite(c *gin.Context) {
	userID, recipeID, ok := h.favoriteParams(c)
	if !ok {
		return
	}

	outcome, err := h.users.AddFavorite(c.Request.Context(), userID, recipeID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": outcome.String()})
}

func (h *UserHandler) RemoveFavorite(c *gin.Context) {
	userID, recipeID, ok := h.favoriteParams(c)
	if !ok {
		return
	}

	outcome, err := h.users.RemoveFavorite(c.Request.Context(), userID, recipeID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": outcome.String()})
}

func (h *UserHandler) favoriteParams(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		respondError(c, service.ErrNotFound)
		return uuid.Nil, uuid.Nil, false
	}
	recipeID, err := uuid.Parse(c.Param("recipeId"))
	if err != nil {
		respondError(c, service.ErrNotFound)
		return uuid.Nil, uuid.Nil, false
	}
	return userID, recipeID, true
}
