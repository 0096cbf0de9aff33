// data.go
//
// Recipe catalog data service.
//
// This file is part of recipedb.
// recipedb is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// recipedb is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with recipedb.
// If not, see <https://www.gnu.org/licenses/>.

package helpers

import (
	"testing"

	"github.com/recipedb/recipedb/internal/models"
	"gorm.io/gorm"
)

// CreateTestIngredient creates a catalog ingredient and returns its id
func CreateTestIngredient(t *testing.T, db *gorm.DB, name string) uint64 {
	t.Helper()
	ingredient := models.Ingredient{Name: name}
	if err := db.Create(&ingredient).Error; err != nil {
		t.Fatalf("Failed to create ingredient %s: %v", name, err)
	}
	return ingredient.IngredientID
}

// CreateTestCategory creates a catalog category and returns its id
func CreateTestCategory(t *testing.T, db *gorm.DB, name string) uint64 {
	t.Helper()
	category := models.Category{Name: name}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("Failed to create category %s: %v", name, err)
	}
	return category.CategoryID
}

// CreateTestCookbook creates a cookbook and returns its id
func CreateTestCookbook(t *testing.T, db *gorm.DB, userID uint64, name string) uint64 {
	t.Helper()
	cookbook := models.Cookbook{UserID: userID, Name: name}
	if err := db.Create(&cookbook).Error; err != nil {
		t.Fatalf("Failed to create cookbook %s: %v", name, err)
	}
	return cookbook.CookbookID
}

// CreateTestRecipe creates a bare recipe row and returns its id
func CreateTestRecipe(t *testing.T, db *gorm.DB, userID uint64, name string) uint64 {
	t.Helper()
	recipe := models.Recipe{
		UserID:             userID,
		Name:               name,
		Servings:           4,
		CaloriesPerServing: 250,
		PrepTime:           10,
		CookTime:           20,
	}
	if err := db.Create(&recipe).Error; err != nil {
		t.Fatalf("Failed to create recipe %s: %v", name, err)
	}
	return recipe.RecipeID
}

// AttachTestIngredient links an ingredient to a recipe
func AttachTestIngredient(t *testing.T, db *gorm.DB, recipeID, ingredientID uint64, amount float64, amountType string) uint64 {
	t.Helper()
	row := models.RecipeIngredient{
		RecipeID:     recipeID,
		IngredientID: ingredientID,
		Amount:       amount,
		AmountType:   amountType,
	}
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("Failed to attach ingredient %d to recipe %d: %v", ingredientID, recipeID, err)
	}
	return row.RecipeIngredientID
}

// AttachTestStep appends a step row to a recipe
func AttachTestStep(t *testing.T, db *gorm.DB, recipeID uint64, stepNo int, content string) uint64 {
	t.Helper()
	row := models.Step{
		RecipeID: recipeID,
		StepNo:   stepNo,
		Content:  content,
	}
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("Failed to attach step %d to recipe %d: %v", stepNo, recipeID, err)
	}
	return row.StepID
}

// AttachTestCategory links a category to a recipe
func AttachTestCategory(t *testing.T, db *gorm.DB, recipeID, categoryID uint64) {
	t.Helper()
	row := models.RecipeCategory{RecipeID: recipeID, CategoryID: categoryID}
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("Failed to attach category %d to recipe %d: %v", categoryID, recipeID, err)
	}
}
