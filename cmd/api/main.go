package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/maaz-official/Recipe-App-Backend/config"
	"github.com/maaz-official/Recipe-App-Backend/internal/api"
	"github.com/maaz-official/Recipe-App-Backend/internal/database"
	"github.com/maaz-official/Recipe-App-Backend/internal/router"
	"github.com/maaz-official/Recipe-App-Backend/internal/server"
	"github.com/maaz-official/Recipe-App-Backend/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient, err = database.NewRedisClient(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
	}

	authService := service.NewAuthService(db, cfg.JWTSecret, cfg.TokenTTL)
	userService := service.NewUserService(db)
	recipeService := service.NewRecipeService(db)
	likeService := service.NewLikeService(db)
	categoryService := service.NewCategoryService(db)
	tagService := service.NewTagService(db)
	commentService := service.NewCommentService(db)

	var imageService *service.ImageService
	if cfg.S3Bucket != "" {
		imageService, err = service.NewImageService(context.Background(), cfg)
		if err != nil {
			log.Fatalf("Failed to initialize image service: %v", err)
		}
	}

	engine := router.Setup(db, authService, router.Handlers{
		Users:      api.NewUserHandler(authService, userService),
		Recipes:    api.NewRecipeHandler(recipeService, likeService, imageService),
		Categories: api.NewCategoryHandler(categoryService),
		Tags:       api.NewTagHandler(tagService, recipeService),
		Comments:   api.NewCommentHandler(commentService),
		Likes:      api.NewLikeHandler(likeService),
	}, redisClient)

	srv := server.New(engine, cfg.ServerHost+":"+cfg.ServerPort)

	errChan := make(chan error, 1)
	go func() {
		log.Printf("Starting server on %s:%s", cfg.ServerHost, cfg.ServerPort)
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
