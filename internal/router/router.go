package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/maaz-official/Recipe-App-Backend/internal/api"
	"github.com/maaz-official/Recipe-App-Backend/internal/middleware"
	"github.com/maaz-official/Recipe-App-Backend/internal/service"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Users      *api.UserHandler
	Recipes    *api.RecipeHandler
	Categories *api.CategoryHandler
	Tags       *api.TagHandler
	Comments   *api.CommentHandler
	Likes      *api.LikeHandler
}

// Setup configures the application routes. redisClient may be nil, which
// disables rate limiting.
func Setup(db *gorm.DB, auth *service.AuthService, handlers Handlers, redisClient *redis.Client) *gin.Engine {
	engine := gin.Default()

	engine.Use(cors.Default())

	if redisClient != nil {
		limiter := middleware.NewRequestRateLimiter(redisClient)
		engine.Use(limiter.Middleware())
	}

	authn := middleware.Auth(auth, db)

	root := engine.Group("/api")
	handlers.Users.RegisterRoutes(root, authn)
	handlers.Recipes.RegisterRoutes(root, authn)
	handlers.Categories.RegisterRoutes(root, authn)
	handlers.Tags.RegisterRoutes(root, authn)
	handlers.Comments.RegisterRoutes(root, authn)
	handlers.Likes.RegisterRoutes(root, authn)

	return engine
}
