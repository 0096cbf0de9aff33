// recipe_assemble.go
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

package services

import (
	"errors"
	"fmt"

	"github.com/recipedb/recipedb/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// IngredientLine is one ingredient of an assembled recipe, joined to the
// ingredient catalog for its name.
type IngredientLine struct {
	ID           uint64  `json:"id"`
	IngredientID uint64  `json:"ingredientId"`
	Name         string  `json:"name"`
	Amount       float64 `json:"amount"`
	AmountType   string  `json:"amountType"`
}

// StepLine is one step of an assembled recipe.
type StepLine struct {
	ID      uint64 `json:"id"`
	StepNo  int    `json:"stepNo"`
	Content string `json:"content"`
}

// CategoryRef is a category reference of an assembled recipe.
type CategoryRef struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// CookbookRef is a cookbook reference of an assembled recipe.
type CookbookRef struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// ImageRef is an image attachment of an assembled recipe.
type ImageRef struct {
	ID     uint64 `json:"id"`
	Source string `json:"source"`
	Title  string `json:"title"`
	Alt    string `json:"alt"`
}

// AssembledRecipe is the composite view of a recipe and all of its child
// collections. It is reconstructed from current rows on every call and never
// cached; the rows remain the only source of truth.
type AssembledRecipe struct {
	ID                 uint64           `json:"id"`
	UserID             uint64           `json:"userId"`
	Name               string           `json:"name"`
	Description        *string          `json:"description"`
	Servings           int              `json:"servings"`
	CaloriesPerServing int              `json:"caloriesPerServing"`
	PrepTime           int              `json:"prepTime"`
	CookTime           int              `json:"cookTime"`
	Rating             *int             `json:"rating"`
	Ingredients        []IngredientLine `json:"ingredients"`
	Steps              []StepLine       `json:"steps"`
	Categories         []CategoryRef    `json:"categories"`
	Cookbooks          []CookbookRef    `json:"cookbooks"`
	Images             []ImageRef       `json:"images"`
}

// AssembleRecipe builds the composite view for one recipe id. A missing base
// row is ErrNotFound; empty child collections are empty slices, not errors.
//
// The five child fetches run outside any transaction. Concurrent writers can
// interleave, so the aggregate may be a torn view (partially old, partially
// new). That is an accepted tradeoff for this read-heavy catalog; the next
// read self-heals.
func AssembleRecipe(db *gorm.DB, recipeID uint64) (*AssembledRecipe, error) {
	if recipeID == 0 {
		return nil, fmt.Errorf("%w: recipe id", ErrInvalidInput)
	}

	silent := db.Session(&gorm.Session{Logger: db.Logger.LogMode(logger.Silent)})

	var recipe models.Recipe
	if err := silent.Where("recipe_id = ?", recipeID).First(&recipe).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: recipe %d", ErrNotFound, recipeID)
		}
		return nil, err
	}

	out := &AssembledRecipe{
		ID:                 recipe.RecipeID,
		UserID:             recipe.UserID,
		Name:               recipe.Name,
		Description:        recipe.Description,
		Servings:           recipe.Servings,
		CaloriesPerServing: recipe.CaloriesPerServing,
		PrepTime:           recipe.PrepTime,
		CookTime:           recipe.CookTime,
		Rating:             recipe.Rating,
		Ingredients:        make([]IngredientLine, 0),
		Steps:              make([]StepLine, 0),
		Categories:         make([]CategoryRef, 0),
		Cookbooks:          make([]CookbookRef, 0),
		Images:             make([]ImageRef, 0),
	}

	// Steps come back in insertion order. StepNo is caller-asserted and is
	// not re-sorted or deduplicated here.
	var steps []models.Step
	if err := silent.Where("recipe_id = ?", recipeID).Order("step_id").Find(&steps).Error; err != nil {
		return nil, err
	}
	for _, s := range steps {
		out.Steps = append(out.Steps, StepLine{ID: s.StepID, StepNo: s.StepNo, Content: s.Content})
	}

	if err := silent.Table("recipe_ingredients ri").
		Select("ri.recipe_ingredient_id AS id, ri.ingredient_id, i.name, ri.amount, ri.amount_type").
		Joins("JOIN ingredients i ON i.ingredient_id = ri.ingredient_id").
		Where("ri.recipe_id = ?", recipeID).
		Order("ri.recipe_ingredient_id").
		Scan(&out.Ingredients).Error; err != nil {
		return nil, err
	}

	if err := silent.Table("recipe_categories rc").
		Select("rc.category_id AS id, c.name").
		Joins("JOIN categories c ON c.category_id = rc.category_id").
		Where("rc.recipe_id = ?", recipeID).
		Order("rc.recipe_category_id").
		Scan(&out.Categories).Error; err != nil {
		return nil, err
	}

	if err := silent.Table("cookbook_recipes cr").
		Select("cr.cookbook_id AS id, cb.name").
		Joins("JOIN cookbooks cb ON cb.cookbook_id = cr.cookbook_id").
		Where("cr.recipe_id = ?", recipeID).
		Order("cr.cookbook_recipe_id").
		Scan(&out.Cookbooks).Error; err != nil {
		return nil, err
	}

	images, err := GetImagesFor(db, "recipe", recipeID)
	if err != nil {
		return nil, err
	}
	out.Images = images

	return out, nil
}
