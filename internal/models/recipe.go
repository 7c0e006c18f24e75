package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

// DefaultRecipeImage is used when a recipe is created without an image URL.
const DefaultRecipeImage = "https://defaultimage.com/recipe.png"

// StringArray is a custom type for string slices stored as JSONB
type StringArray []string

// Value implements the driver.Valuer interface
func (a StringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *StringArray) Scan(value interface{}) error {
	if value == nil {
		*a = StringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// Ingredient is a name+quantity pair; the list keeps its order.
type Ingredient struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
}

// IngredientList is stored as a JSONB array of ingredient objects.
type IngredientList []Ingredient

func (l IngredientList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return json.Marshal(l)
}

func (l *IngredientList) Scan(value interface{}) error {
	if value == nil {
		*l = IngredientList{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, l)
}

// Nutrition holds per-recipe nutrition facts. All values are non-negative.
type Nutrition struct {
	Calories float64 `gorm:"type:float" json:"calories" binding:"min=0"`
	Protein  float64 `gorm:"type:float" json:"protein" binding:"min=0"`
	Fat      float64 `gorm:"type:float" json:"fat" binding:"min=0"`
	Carbs    float64 `gorm:"type:float" json:"carbs" binding:"min=0"`
}

type Recipe struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	Name         string         `gorm:"size:255;not null" json:"name"`
	Description  string         `gorm:"type:text" json:"description"`
	CategoryID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"category_id"`
	Category     *Category      `json:"category,omitempty"`
	Tags         []Tag          `gorm:"many2many:recipe_tags" json:"tags,omitempty"`
	Ingredients  IngredientList `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	Instructions StringArray    `gorm:"type:jsonb;not null;default:'[]'" json:"instructions"`
	CookingTime  int            `gorm:"not null" json:"cooking_time"`
	Difficulty   string         `gorm:"size:10;not null;default:'Easy'" json:"difficulty"`
	Servings     int            `gorm:"not null" json:"servings"`
	ImageURL     string         `gorm:"size:255" json:"image_url"`
	Nutrition    Nutrition      `gorm:"embedded;embeddedPrefix:nutrition_" json:"nutrition"`
	AuthorID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"author_id"`
	Author       *User          `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	IsPublished  bool           `gorm:"not null;default:false" json:"is_published"`
	// Likes is filled from recipe_likes on read; it is not a column.
	Likes []uuid.UUID `gorm:"-" json:"likes"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.Difficulty == "" {
		r.Difficulty = DifficultyEasy
	}
	if r.ImageURL == "" {
		r.ImageURL = DefaultRecipeImage
	}
	return nil
}
