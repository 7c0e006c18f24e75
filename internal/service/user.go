package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maaz-official/Recipe-App-Backend/internal/models"
)

// UserPatch carries the fields a caller supplied for an update. A nil field
// keeps the stored value; a non-nil field is applied even when it is empty.
type UserPatch struct {
	Name     *string
	Email    *string
	Password *string
}

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser loads a user with their favorite recipe ids.
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	favorites, err := s.favoriteRecipeIDs(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	user.Favorites = favorites
	return &user, nil
}

// UpdateUser applies a presence-aware patch. A supplied password is hashed
// through SetPassword; no other field touches the credential hash.
func (s *UserService) UpdateUser(ctx context.Context, id uuid.UUID, patch UserPatch) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.Email != nil && *patch.Email != user.Email {
		var existing models.User
		err := s.db.WithContext(ctx).Where("email = ? AND id <> ?", *patch.Email, id).First(&existing).Error
		if err == nil {
			return nil, ErrConflict
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.Email = *patch.Email
	}
	if patch.Password != nil {
		if err := user.SetPassword(*patch.Password); err != nil {
			return nil, err
		}
	}

	if err := s.db.WithContext(ctx).Save(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes a user and their comments, likes and favorites in one
// transaction. It refuses while the user still authors recipes, so no
// recipe is left pointing at a gone author.
func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	var authored int64
	if err := s.db.WithContext(ctx).Model(&models.Recipe{}).Where("author_id = ?", id).Count(&authored).Error; err != nil {
		return err
	}
	if authored > 0 {
		return ErrConflict
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.RecipeLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.UserFavorite{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
}

// AddFavorite puts a recipe into the user's favorites set. Both sides of
// the relation must exist.
func (s *UserService) AddFavorite(ctx context.Context, userID, recipeID uuid.UUID) (ToggleOutcome, error) {
	if err := s.requirePair(ctx, userID, recipeID); err != nil {
		return NotPresent, err
	}
	return addMembership(s.db.WithContext(ctx), &models.UserFavorite{UserID: userID, RecipeID: recipeID})
}

// RemoveFavorite takes a recipe out of the user's favorites set.
func (s *UserService) RemoveFavorite(ctx context.Context, userID, recipeID uuid.UUID) (ToggleOutcome, error) {
	if err := s.requirePair(ctx, userID, recipeID); err != nil {
		return NotPresent, err
	}
	return removeMembership(s.db.WithContext(ctx), &models.UserFavorite{UserID: userID, RecipeID: recipeID})
}

func (s *UserService) requirePair(ctx context.Context, userID, recipeID uuid.UUID) error {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *UserService) favoriteRecipeIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var favorites []models.UserFavorite
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&favorites).Error; err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, len(favorites))
	for i, f := range favorites {
		ids[i] = f.RecipeID
	}
	return ids, nil
}
