package database

import (
	"gorm.io/gorm"

	"github.com/maaz-official/Recipe-App-Backend/internal/models"
)

// Migrate creates or updates the schema for every model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Tag{},
		&models.Recipe{},
		&models.Comment{},
		&models.RecipeLike{},
		&models.UserFavorite{},
	)
}
