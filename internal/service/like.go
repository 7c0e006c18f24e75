package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maaz-official/Recipe-App-Backend/internal/models"
)

// LikeService manages the recipe-likes relationship set.
type LikeService struct {
	db *gorm.DB
}

func NewLikeService(db *gorm.DB) *LikeService {
	return &LikeService{db: db}
}

// LikeRecipe adds the user to the recipe's likes set.
func (s *LikeService) LikeRecipe(ctx context.Context, recipeID, userID uuid.UUID) (ToggleOutcome, error) {
	if err := s.requireRecipe(ctx, recipeID); err != nil {
		return NotPresent, err
	}
	return addMembership(s.db.WithContext(ctx), &models.RecipeLike{RecipeID: recipeID, UserID: userID})
}

// UnlikeRecipe removes the user from the recipe's likes set.
func (s *LikeService) UnlikeRecipe(ctx context.Context, recipeID, userID uuid.UUID) (ToggleOutcome, error) {
	if err := s.requireRecipe(ctx, recipeID); err != nil {
		return NotPresent, err
	}
	return removeMembership(s.db.WithContext(ctx), &models.RecipeLike{RecipeID: recipeID, UserID: userID})
}

// RecipeLikes returns the recipe together with the users who liked it.
func (s *LikeService) RecipeLikes(ctx context.Context, recipeID uuid.UUID) (*models.Recipe, []models.User, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	users := make([]models.User, 0)
	err := s.db.WithContext(ctx).
		Joins("JOIN recipe_likes ON recipe_likes.user_id = users.id").
		Where("recipe_likes.recipe_id = ?", recipeID).
		Find(&users).Error
	if err != nil {
		return nil, nil, err
	}
	return &recipe, users, nil
}

// RecipesLikedBy lists the recipes a user has liked. A missing user is
// NotFound; a user with no likes is an empty list.
func (s *LikeService) RecipesLikedBy(ctx context.Context, userID uuid.UUID) ([]models.Recipe, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	recipes := make([]models.Recipe, 0)
	err := s.db.WithContext(ctx).
		Joins("JOIN recipe_likes ON recipe_likes.recipe_id = recipes.id").
		Where("recipe_likes.user_id = ?", userID).
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}
	return recipes, nil
}

func (s *LikeService) requireRecipe(ctx context.Context, recipeID uuid.UUID) error {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
