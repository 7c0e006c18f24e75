package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maaz-official/Recipe-App-Backend/internal/models"
)

// RecipePatch carries the fields a caller supplied for an update. Nil keeps
// the stored value; non-nil is applied even when zero.
type RecipePatch struct {
	Name         *string
	Description  *string
	CategoryID   *uuid.UUID
	TagIDs       *[]uuid.UUID
	Ingredients  *models.IngredientList
	Instructions *models.StringArray
	CookingTime  *int
	Difficulty   *string
	Servings     *int
	ImageURL     *string
	Nutrition    *models.Nutrition
}

type RecipeService struct {
	db *gorm.DB
}

func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

func (s *RecipeService) ListRecipes(ctx context.Context) ([]models.Recipe, error) {
	return s.findRecipes(ctx, s.db.WithContext(ctx))
}

// ListPublished returns only recipes whose published flag is set.
func (s *RecipeService) ListPublished(ctx context.Context) ([]models.Recipe, error) {
	return s.findRecipes(ctx, s.db.WithContext(ctx).Where("is_published = ?", true))
}

func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).
		Preload("Category").
		Preload("Tags").
		Preload("Author").
		First(&recipe, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	likes, err := s.likeUserIDs(ctx, recipe.ID)
	if err != nil {
		return nil, err
	}
	recipe.Likes = likes
	return &recipe, nil
}

// CreateRecipe stores a new recipe. The author is always the resolved
// caller; the referenced category and tags must exist.
func (s *RecipeService) CreateRecipe(ctx context.Context, recipe *models.Recipe, tagIDs []uuid.UUID) (*models.Recipe, error) {
	if err := s.requireCategory(ctx, recipe.CategoryID); err != nil {
		return nil, err
	}
	tags, err := s.loadTags(ctx, tagIDs)
	if err != nil {
		return nil, err
	}
	recipe.Tags = tags
	recipe.IsPublished = false

	if err := s.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return nil, err
	}
	recipe.Likes = []uuid.UUID{}
	return recipe, nil
}

// UpdateRecipe applies a presence-aware patch, owner or admin only.
func (s *RecipeService) UpdateRecipe(ctx context.Context, id uuid.UUID, actor *models.User, patch RecipePatch) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !CanModify(actor, recipe.AuthorID) {
		return nil, ErrForbidden
	}

	if patch.Name != nil {
		recipe.Name = *patch.Name
	}
	if patch.Description != nil {
		recipe.Description = *patch.Description
	}
	if patch.CategoryID != nil {
		if err := s.requireCategory(ctx, *patch.CategoryID); err != nil {
			return nil, err
		}
		recipe.CategoryID = *patch.CategoryID
	}
	if patch.Ingredients != nil {
		recipe.Ingredients = *patch.Ingredients
	}
	if patch.Instructions != nil {
		recipe.Instructions = *patch.Instructions
	}
	if patch.CookingTime != nil {
		recipe.CookingTime = *patch.CookingTime
	}
	if patch.Difficulty != nil {
		recipe.Difficulty = *patch.Difficulty
	}
	if patch.Servings != nil {
		recipe.Servings = *patch.Servings
	}
	if patch.ImageURL != nil {
		recipe.ImageURL = *patch.ImageURL
	}
	if patch.Nutrition != nil {
		recipe.Nutrition = *patch.Nutrition
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if patch.TagIDs != nil {
			tags, err := s.loadTags(ctx, *patch.TagIDs)
			if err != nil {
				return err
			}
			if err := tx.Model(&recipe).Association("Tags").Replace(tags); err != nil {
				return err
			}
		}
		return tx.Save(&recipe).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetRecipe(ctx, id)
}

// DeleteRecipe removes a recipe with its comments, likes and favorite rows,
// owner or admin only.
func (s *RecipeService) DeleteRecipe(ctx context.Context, id uuid.UUID, actor *models.User) error {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if !CanModify(actor, recipe.AuthorID) {
		return ErrForbidden
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.UserFavorite{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&recipe).Association("Tags").Clear(); err != nil {
			return err
		}
		return tx.Delete(&recipe).Error
	})
}

// PublishRecipe marks a recipe published. There is no unpublish.
func (s *RecipeService) PublishRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	recipe.IsPublished = true
	if err := s.db.WithContext(ctx).Save(&recipe).Error; err != nil {
		return nil, err
	}
	return s.GetRecipe(ctx, id)
}

// RecipesByCategory lists published recipes in a category. A missing
// category is NotFound; a category with no recipes is an empty list.
func (s *RecipeService) RecipesByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.Recipe, error) {
	if err := s.requireCategory(ctx, categoryID); err != nil {
		return nil, err
	}
	return s.findRecipes(ctx, s.db.WithContext(ctx).
		Where("category_id = ? AND is_published = ?", categoryID, true))
}

// RecipesByTag lists published recipes carrying a tag, with the same
// missing-parent-vs-empty distinction as RecipesByCategory.
func (s *RecipeService) RecipesByTag(ctx context.Context, tagID uuid.UUID) ([]models.Recipe, error) {
	var tag models.Tag
	if err := s.db.WithContext(ctx).First(&tag, "id = ?", tagID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.findRecipes(ctx, s.db.WithContext(ctx).
		Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
		Where("recipe_tags.tag_id = ? AND is_published = ?", tagID, true))
}

// SetImageURL persists a new image location for a recipe, owner or admin only.
func (s *RecipeService) SetImageURL(ctx context.Context, id uuid.UUID, actor *models.User, url string) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !CanModify(actor, recipe.AuthorID) {
		return nil, ErrForbidden
	}

	recipe.ImageURL = url
	if err := s.db.WithContext(ctx).Save(&recipe).Error; err != nil {
		return nil, err
	}
	return s.GetRecipe(ctx, id)
}

func (s *RecipeService) findRecipes(ctx context.Context, query *gorm.DB) ([]models.Recipe, error) {
	recipes := make([]models.Recipe, 0)
	if err := query.Preload("Category").Preload("Tags").Find(&recipes).Error; err != nil {
		return nil, err
	}
	for i := range recipes {
		likes, err := s.likeUserIDs(ctx, recipes[i].ID)
		if err != nil {
			return nil, err
		}
		recipes[i].Likes = likes
	}
	return recipes, nil
}

func (s *RecipeService) likeUserIDs(ctx context.Context, recipeID uuid.UUID) ([]uuid.UUID, error) {
	var likes []models.RecipeLike
	if err := s.db.WithContext(ctx).Where("recipe_id = ?", recipeID).Find(&likes).Error; err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, len(likes))
	for i, l := range likes {
		ids[i] = l.UserID
	}
	return ids, nil
}

func (s *RecipeService) requireCategory(ctx context.Context, id uuid.UUID) error {
	var category models.Category
	if err := s.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *RecipeService) loadTags(ctx context.Context, ids []uuid.UUID) ([]models.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var tags []models.Tag
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&tags).Error; err != nil {
		return nil, err
	}
	if len(tags) != len(ids) {
		return nil, ErrNotFound
	}
	return tags, nil
}
