package integration

import (
	"context"
	"fmt"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/maaz-official/Recipe-App-Backend/internal/database"
	"github.com/maaz-official/Recipe-App-Backend/internal/models"
	"github.com/maaz-official/Recipe-App-Backend/internal/service"
)

// setupPostgres starts a containerized PostgreSQL and returns a migrated
// connection. Tests are skipped where docker is unavailable.
func setupPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	if _, err := exec.LookPath("docker"); err != nil {
		t.Skip("docker not installed, skipping container-based test")
	}

	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "postpass",
				"POSTGRES_DB":       "recipes_test",
			},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("5432/tcp"),
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			).WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("failed to start container: %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := container.Terminate(ctx); err != nil {
			t.Errorf("failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get container host: %v", err)
	}
	mappedPort, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("failed to get container port: %v", err)
	}

	dsn := fmt.Sprintf("host=%s port=%s user=postgres password=postpass dbname=recipes_test sslmode=disable",
		host, mappedPort.Port())

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func TestRecipeLifecycleAgainstPostgres(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()

	auth := service.NewAuthService(db, "integration-secret", time.Hour)
	recipes := service.NewRecipeService(db)
	categories := service.NewCategoryService(db)
	likes := service.NewLikeService(db)
	users := service.NewUserService(db)

	author, token, err := auth.Register("Author", "author@example.com", "secret1")
	require.NoError(t, err)
	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, author.ID, claims.UserID)

	fan, _, err := auth.Register("Fan", "fan@example.com", "secret1")
	require.NoError(t, err)

	category, err := categories.CreateCategory(ctx, "Dessert", "sweet things")
	require.NoError(t, err)

	created, err := recipes.CreateRecipe(ctx, &models.Recipe{
		Name:         "Cake",
		CategoryID:   category.ID,
		Ingredients:  models.IngredientList{{Name: "flour", Quantity: "200g"}},
		Instructions: models.StringArray{"mix", "bake"},
		CookingTime:  30,
		Servings:     4,
		AuthorID:     author.ID,
	}, nil)
	require.NoError(t, err)
	assert.False(t, created.IsPublished)

	// Like idempotence exercises the real ON CONFLICT path.
	outcome, err := likes.LikeRecipe(ctx, created.ID, fan.ID)
	require.NoError(t, err)
	assert.Equal(t, service.Added, outcome)

	outcome, err = likes.LikeRecipe(ctx, created.ID, fan.ID)
	require.NoError(t, err)
	assert.Equal(t, service.AlreadyPresent, outcome)

	outcome, err = users.AddFavorite(ctx, fan.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, service.Added, outcome)

	// Deleting the recipe takes its likes and favorites with it.
	require.NoError(t, recipes.DeleteRecipe(ctx, created.ID, author))

	var likeCount, favoriteCount int64
	db.Model(&models.RecipeLike{}).Where("recipe_id = ?", created.ID).Count(&likeCount)
	db.Model(&models.UserFavorite{}).Where("recipe_id = ?", created.ID).Count(&favoriteCount)
	assert.Zero(t, likeCount)
	assert.Zero(t, favoriteCount)
}

func TestConcurrentLikesAgainstPostgres(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()

	auth := service.NewAuthService(db, "integration-secret", time.Hour)
	recipes := service.NewRecipeService(db)
	categories := service.NewCategoryService(db)
	likes := service.NewLikeService(db)

	author, _, err := auth.Register("Author", "author@example.com", "secret1")
	require.NoError(t, err)
	category, err := categories.CreateCategory(ctx, "Dessert", "")
	require.NoError(t, err)

	created, err := recipes.CreateRecipe(ctx, &models.Recipe{
		Name:         "Cake",
		CategoryID:   category.ID,
		Ingredients:  models.IngredientList{{Name: "flour", Quantity: "200g"}},
		Instructions: models.StringArray{"mix"},
		CookingTime:  30,
		Servings:     4,
		AuthorID:     author.ID,
	}, nil)
	require.NoError(t, err)

	// Racing likes from the same user end up as a single membership row.
	const attempts = 8
	results := make(chan service.ToggleOutcome, attempts)
	errs := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		go func() {
			outcome, err := likes.LikeRecipe(ctx, created.ID, author.ID)
			results <- outcome
			errs <- err
		}()
	}

	added := 0
	for i := 0; i < attempts; i++ {
		require.NoError(t, <-errs)
		if <-results == service.Added {
			added++
		}
	}
	assert.Equal(t, 1, added)

	var count int64
	db.Model(&models.RecipeLike{}).
		Where("recipe_id = ? AND user_id = ?", created.ID, author.ID).
		Count(&count)
	assert.Equal(t, int64(1), count)
}
