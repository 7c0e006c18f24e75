package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maaz-official/Recipe-App-Backend/internal/models"
)

func TestCreateCategoryConflict(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCategoryService(db)
	ctx := context.Background()

	_, err := svc.CreateCategory(ctx, "Dessert", "sweet things")
	require.NoError(t, err)

	_, err = svc.CreateCategory(ctx, "Dessert", "other sweet things")
	assert.ErrorIs(t, err, ErrConflict)

	var count int64
	db.Model(&models.Category{}).Where("name = ?", "Dessert").Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestUpdateCategoryMerge(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCategoryService(db)
	ctx := context.Background()

	category, err := svc.CreateCategory(ctx, "Dessert", "sweet things")
	require.NoError(t, err)

	updated, err := svc.UpdateCategory(ctx, category.ID, CategoryPatch{
		Name: strPtr("Desserts"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Desserts", updated.Name)
	assert.Equal(t, "sweet things", updated.Description)
}

func TestUpdateCategoryNameConflict(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCategoryService(db)
	ctx := context.Background()

	_, err := svc.CreateCategory(ctx, "Dessert", "")
	require.NoError(t, err)
	second, err := svc.CreateCategory(ctx, "Dinner", "")
	require.NoError(t, err)

	_, err = svc.UpdateCategory(ctx, second.ID, CategoryPatch{Name: strPtr("Dessert")})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestDeleteCategoryReferenced(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCategoryService(db)
	recipes := NewRecipeService(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author@example.com", models.RoleUser)
	category := createTestCategory(t, db, "Dessert")
	recipe := createTestRecipe(t, db, author.ID, category.ID, "Cake")

	err := svc.DeleteCategory(ctx, category.ID)
	assert.ErrorIs(t, err, ErrConflict)

	require.NoError(t, recipes.DeleteRecipe(ctx, recipe.ID, author))
	assert.NoError(t, svc.DeleteCategory(ctx, category.ID))
}

func TestCreateTagConflict(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTagService(db)
	ctx := context.Background()

	_, err := svc.CreateTag(ctx, "vegan")
	require.NoError(t, err)

	_, err = svc.CreateTag(ctx, "vegan")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestDeleteTagReferenced(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTagService(db)
	recipes := NewRecipeService(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author@example.com", models.RoleUser)
	category := createTestCategory(t, db, "Dessert")
	tag, err := svc.CreateTag(ctx, "vegan")
	require.NoError(t, err)

	created, err := recipes.CreateRecipe(ctx, &models.Recipe{
		Name:         "Tagged",
		CategoryID:   category.ID,
		Ingredients:  models.IngredientList{{Name: "tofu", Quantity: "100g"}},
		Instructions: models.StringArray{"fry"},
		CookingTime:  15,
		Servings:     1,
		AuthorID:     author.ID,
	}, []uuid.UUID{tag.ID})
	require.NoError(t, err)

	err = svc.DeleteTag(ctx, tag.ID)
	assert.ErrorIs(t, err, ErrConflict)

	require.NoError(t, recipes.DeleteRecipe(ctx, created.ID, author))
	assert.NoError(t, svc.DeleteTag(ctx, tag.ID))
}
