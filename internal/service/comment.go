package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maaz-official/Recipe-App-Backend/internal/models"
)

// CommentPatch carries the fields a caller supplied for an update.
type CommentPatch struct {
	Content *string
	Rating  *int
}

type CommentService struct {
	db *gorm.DB
}

func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{db: db}
}

func (s *CommentService) GetComment(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	var comment models.Comment
	if err := s.db.WithContext(ctx).Preload("User").First(&comment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &comment, nil
}

// CommentsByRecipe lists comments on a recipe. A missing recipe is
// NotFound; a recipe without comments is an empty list.
func (s *CommentService) CommentsByRecipe(ctx context.Context, recipeID uuid.UUID) ([]models.Comment, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	comments := make([]models.Comment, 0)
	if err := s.db.WithContext(ctx).Preload("User").Where("recipe_id = ?", recipeID).Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// CommentsByUser lists a user's comments with the same
// missing-parent-vs-empty distinction as CommentsByRecipe.
func (s *CommentService) CommentsByUser(ctx context.Context, userID uuid.UUID) ([]models.Comment, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	comments := make([]models.Comment, 0)
	if err := s.db.WithContext(ctx).Preload("Recipe").Where("user_id = ?", userID).Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// CreateComment attaches a new comment by the resolved caller to an
// existing recipe.
func (s *CommentService) CreateComment(ctx context.Context, userID, recipeID uuid.UUID, content string, rating int) (*models.Comment, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	comment := models.Comment{
		UserID:   userID,
		RecipeID: recipe.ID,
		Content:  content,
		Rating:   rating,
	}
	if err := s.db.WithContext(ctx).Create(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// UpdateComment applies a presence-aware patch, owner or admin only.
func (s *CommentService) UpdateComment(ctx context.Context, id uuid.UUID, actor *models.User, patch CommentPatch) (*models.Comment, error) {
	var comment models.Comment
	if err := s.db.WithContext(ctx).First(&comment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !CanModify(actor, comment.UserID) {
		return nil, ErrForbidden
	}

	if patch.Content != nil {
		comment.Content = *patch.Content
	}
	if patch.Rating != nil {
		comment.Rating = *patch.Rating
	}

	if err := s.db.WithContext(ctx).Save(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// DeleteComment removes a comment, owner or admin only.
func (s *CommentService) DeleteComment(ctx context.Context, id uuid.UUID, actor *models.User) error {
	var comment models.Comment
	if err := s.db.WithContext(ctx).First(&comment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if !CanModify(actor, comment.UserID) {
		return ErrForbidden
	}

	return s.db.WithContext(ctx).Delete(&comment).Error
}
