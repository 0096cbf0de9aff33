package services_test

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/recipedb/recipedb/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a pure-Go in-memory SQLite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Recipe{},
		&models.Step{},
		&models.RecipeIngredient{},
		&models.RecipeCategory{},
		&models.CookbookRecipe{},
		&models.Ingredient{},
		&models.Category{},
		&models.Cookbook{},
		&models.Image{},
		&models.Pantry{},
		&models.PantryIngredient{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func intPtr(v int) *int { return &v }

func seedIngredient(t *testing.T, db *gorm.DB, name string) uint64 {
	t.Helper()
	row := models.Ingredient{Name: name}
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("failed to seed ingredient %s: %v", name, err)
	}
	return row.IngredientID
}

func seedCategory(t *testing.T, db *gorm.DB, name string) uint64 {
	t.Helper()
	row := models.Category{Name: name}
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("failed to seed category %s: %v", name, err)
	}
	return row.CategoryID
}

func seedCookbook(t *testing.T, db *gorm.DB, userID uint64, name string) uint64 {
	t.Helper()
	row := models.Cookbook{UserID: userID, Name: name}
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("failed to seed cookbook %s: %v", name, err)
	}
	return row.CookbookID
}
