package service

import (
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/maaz-official/Recipe-App-Backend/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Tag{},
		&models.Recipe{},
		&models.Comment{},
		&models.RecipeLike{},
		&models.UserFavorite{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email, role string) *models.User {
	t.Helper()
	user := models.User{
		Name:  "Test User",
		Email: email,
		Role:  role,
	}
	if err := user.SetPassword("secret1"); err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return &user
}

func createTestCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()
	category := models.Category{Name: name, Description: "test category"}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("failed to create category: %v", err)
	}
	return &category
}

func createTestRecipe(t *testing.T, db *gorm.DB, authorID, categoryID uuid.UUID, name string) *models.Recipe {
	t.Helper()
	recipe := models.Recipe{
		Name:        name,
		Description: "test recipe",
		CategoryID:  categoryID,
		Ingredients: models.IngredientList{
			{Name: "flour", Quantity: "200g"},
		},
		Instructions: models.StringArray{"mix", "bake"},
		CookingTime:  30,
		Servings:     4,
		AuthorID:     authorID,
	}
	if err := db.Create(&recipe).Error; err != nil {
		t.Fatalf("failed to create recipe: %v", err)
	}
	return &recipe
}
