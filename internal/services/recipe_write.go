// recipe_write.go
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
	"github.com/recipedb/recipedb/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// StepInput is one step of a create or update payload. A zero ID means
// insert; a non-zero ID merges the existing row in place. The id accepts a
// JSON number or a stringified number; the strict numeric-only decoding
// applies to the recipe scalars, not to upsert ids echoed back by clients.
type StepInput struct {
	ID      types.FlexUint64 `json:"id"`
	StepNo  int              `json:"stepNo"`
	Content string           `json:"content"`
}

// RecipeIngredientInput is one ingredient line of a create or update payload.
type RecipeIngredientInput struct {
	ID           types.FlexUint64 `json:"id"`
	IngredientID uint64           `json:"ingredientId"`
	Amount       float64          `json:"amount"`
	AmountType   string           `json:"amountType"`
}

// CreateRecipeInput carries the scalar recipe fields plus optional child
// collections created in the same transaction. Numeric fields are declared
// as numbers so JSON decoding rejects numeric strings before validation runs.
type CreateRecipeInput struct {
	UserID             uint64                  `json:"userId"`
	Name               string                  `json:"name"`
	Description        *string                 `json:"description"`
	Servings           int                     `json:"servings"`
	CaloriesPerServing int                     `json:"caloriesPerServing"`
	PrepTime           *int                    `json:"prepTime"`
	CookTime           *int                    `json:"cookTime"`
	Rating             *int                    `json:"rating"`
	Steps              []StepInput             `json:"steps"`
	Ingredients        []RecipeIngredientInput `json:"ingredients"`
	Categories         []uint64                `json:"categories"`
	Cookbooks          []uint64                `json:"cookbooks"`
}

// UpdateRecipeInput carries the mandatory scalar fields plus optional child
// collections, each applied as an upsert-by-id.
type UpdateRecipeInput struct {
	RecipeID           uint64                  `json:"id"`
	UserID             uint64                  `json:"userId"`
	Name               string                  `json:"name"`
	Description        *string                 `json:"description"`
	Servings           int                     `json:"servings"`
	CaloriesPerServing int                     `json:"caloriesPerServing"`
	PrepTime           *int                    `json:"prepTime"`
	CookTime           *int                    `json:"cookTime"`
	Rating             *int                    `json:"rating"`
	Steps              []StepInput             `json:"steps"`
	Ingredients        []RecipeIngredientInput `json:"ingredients"`
	Categories         []uint64                `json:"categories"`
	Cookbooks          []uint64                `json:"cookbooks"`
}

func validateRecipeScalars(name string, userID uint64, servings, calories int, prepTime, cookTime *int) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if userID == 0 {
		return fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}
	if servings <= 0 {
		return fmt.Errorf("%w: servings must be positive", ErrInvalidInput)
	}
	if calories <= 0 {
		return fmt.Errorf("%w: caloriesPerServing must be positive", ErrInvalidInput)
	}
	if prepTime == nil || *prepTime < 0 {
		return fmt.Errorf("%w: prepTime must be a non-negative number", ErrInvalidInput)
	}
	if cookTime == nil || *cookTime < 0 {
		return fmt.Errorf("%w: cookTime must be a non-negative number", ErrInvalidInput)
	}
	return nil
}

// CreateRecipe validates the scalar fields before any I/O, then inserts the
// recipe row and every child row inside one transaction. A single failed
// insert rolls back the whole recipe; no partial aggregate is ever visible.
func CreateRecipe(db *gorm.DB, in CreateRecipeInput) (uint64, error) {
	if err := validateRecipeScalars(in.Name, in.UserID, in.Servings, in.CaloriesPerServing, in.PrepTime, in.CookTime); err != nil {
		return 0, err
	}
	for _, s := range in.Steps {
		if s.StepNo <= 0 || s.Content == "" {
			return 0, fmt.Errorf("%w: step requires a positive stepNo and content", ErrInvalidInput)
		}
	}
	for _, ri := range in.Ingredients {
		if ri.IngredientID == 0 {
			return 0, fmt.Errorf("%w: ingredient requires an ingredientId", ErrInvalidInput)
		}
	}

	var recipeID uint64
	err := db.Transaction(func(tx *gorm.DB) error {
		recipe := models.Recipe{
			UserID:             in.UserID,
			Name:               in.Name,
			Description:        in.Description,
			Servings:           in.Servings,
			CaloriesPerServing: in.CaloriesPerServing,
			PrepTime:           *in.PrepTime,
			CookTime:           *in.CookTime,
			Rating:             in.Rating,
		}
		if err := tx.Create(&recipe).Error; err != nil {
			return err
		}
		recipeID = recipe.RecipeID

		for _, s := range in.Steps {
			step := models.Step{RecipeID: recipeID, StepNo: s.StepNo, Content: s.Content}
			if err := tx.Create(&step).Error; err != nil {
				return err
			}
		}
		for _, ri := range in.Ingredients {
			row := models.RecipeIngredient{
				RecipeID:     recipeID,
				IngredientID: ri.IngredientID,
				Amount:       ri.Amount,
				AmountType:   ri.AmountType,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		for _, categoryID := range in.Categories {
			row := models.RecipeCategory{RecipeID: recipeID, CategoryID: categoryID}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		for _, cookbookID := range in.Cookbooks {
			row := models.CookbookRecipe{RecipeID: recipeID, CookbookID: cookbookID}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return recipeID, nil
}

// UpdateRecipe updates the base row and applies each child collection as an
// upsert-by-id inside one transaction. Child rows omitted from the payload
// are kept, not deleted (additive semantics).
func UpdateRecipe(db *gorm.DB, in UpdateRecipeInput) error {
	if in.RecipeID == 0 {
		return fmt.Errorf("%w: recipe id is required", ErrInvalidInput)
	}
	if err := validateRecipeScalars(in.Name, in.UserID, in.Servings, in.CaloriesPerServing, in.PrepTime, in.CookTime); err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.Session(&gorm.Session{Logger: tx.Logger.LogMode(logger.Silent)}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("recipe_id = ?", in.RecipeID).
			First(&recipe).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: recipe %d", ErrNotFound, in.RecipeID)
			}
			return err
		}

		updates := map[string]interface{}{
			"user_id":              in.UserID,
			"name":                 in.Name,
			"servings":             in.Servings,
			"calories_per_serving": in.CaloriesPerServing,
			"prep_time":            *in.PrepTime,
			"cook_time":            *in.CookTime,
		}
		if in.Description != nil {
			updates["description"] = *in.Description
		}
		if in.Rating != nil {
			updates["rating"] = *in.Rating
		}
		if err := tx.Model(&recipe).Updates(updates).Error; err != nil {
			return err
		}

		for _, s := range in.Steps {
			if s.ID != 0 {
				if err := tx.Model(&models.Step{}).
					Where("step_id = ? AND recipe_id = ?", s.ID.Uint64(), in.RecipeID).
					Updates(map[string]interface{}{"step_no": s.StepNo, "content": s.Content}).Error; err != nil {
					return err
				}
			} else {
				step := models.Step{RecipeID: in.RecipeID, StepNo: s.StepNo, Content: s.Content}
				if err := tx.Create(&step).Error; err != nil {
					return err
				}
			}
		}

		for _, ri := range in.Ingredients {
			if ri.ID != 0 {
				if err := tx.Model(&models.RecipeIngredient{}).
					Where("recipe_ingredient_id = ? AND recipe_id = ?", ri.ID.Uint64(), in.RecipeID).
					Updates(map[string]interface{}{
						"ingredient_id": ri.IngredientID,
						"amount":        ri.Amount,
						"amount_type":   ri.AmountType,
					}).Error; err != nil {
					return err
				}
			} else {
				row := models.RecipeIngredient{
					RecipeID:     in.RecipeID,
					IngredientID: ri.IngredientID,
					Amount:       ri.Amount,
					AmountType:   ri.AmountType,
				}
				if err := tx.Create(&row).Error; err != nil {
					return err
				}
			}
		}

		for _, categoryID := range in.Categories {
			var count int64
			if err := tx.Model(&models.RecipeCategory{}).
				Where("recipe_id = ? AND category_id = ?", in.RecipeID, categoryID).
				Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				row := models.RecipeCategory{RecipeID: in.RecipeID, CategoryID: categoryID}
				if err := tx.Create(&row).Error; err != nil {
					return err
				}
			}
		}

		for _, cookbookID := range in.Cookbooks {
			var count int64
			if err := tx.Model(&models.CookbookRecipe{}).
				Where("recipe_id = ? AND cookbook_id = ?", in.RecipeID, cookbookID).
				Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				row := models.CookbookRecipe{RecipeID: in.RecipeID, CookbookID: cookbookID}
				if err := tx.Create(&row).Error; err != nil {
					return err
				}
			}
		}

		return nil
	})
}

// RemoveRecipe deletes a recipe and its children in strict dependency order
// inside one transaction. A missing recipe is reported as ErrNotFound after
// the transaction rolls back; nothing is left partially deleted.
func RemoveRecipe(db *gorm.DB, recipeID uint64) (int64, error) {
	if recipeID == 0 {
		return 0, fmt.Errorf("%w: recipe id", ErrInvalidInput)
	}

	var affected int64
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.RecipeCategory{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.CookbookRecipe{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.Step{}).Error; err != nil {
			return err
		}
		result := tx.Where("recipe_id = ?", recipeID).Delete(&models.Recipe{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: recipe %d", ErrNotFound, recipeID)
		}
		affected = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}

// RemoveAllRecipesByUser deletes every recipe owned by a user, children
// first, in one transaction.
func RemoveAllRecipesByUser(db *gorm.DB, userID uint64) (int64, error) {
	if userID == 0 {
		return 0, fmt.Errorf("%w: user id", ErrInvalidInput)
	}

	var affected int64
	err := db.Transaction(func(tx *gorm.DB) error {
		owned := tx.Model(&models.Recipe{}).Select("recipe_id").Where("user_id = ?", userID)
		if err := deleteRecipeChildren(tx, owned); err != nil {
			return err
		}
		result := tx.Where("user_id = ?", userID).Delete(&models.Recipe{})
		if result.Error != nil {
			return result.Error
		}
		affected = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}

// RemoveAllRecipes clears the recipe tables entirely, children included, in
// dependency order inside one transaction.
func RemoveAllRecipes(db *gorm.DB) (int64, error) {
	var affected int64
	err := db.Transaction(func(tx *gorm.DB) error {
		all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		if err := all.Delete(&models.RecipeCategory{}).Error; err != nil {
			return err
		}
		if err := all.Delete(&models.CookbookRecipe{}).Error; err != nil {
			return err
		}
		if err := all.Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := all.Delete(&models.Step{}).Error; err != nil {
			return err
		}
		result := all.Delete(&models.Recipe{})
		if result.Error != nil {
			return result.Error
		}
		affected = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}

func deleteRecipeChildren(tx *gorm.DB, recipeIDs *gorm.DB) error {
	if err := tx.Where("recipe_id IN (?)", recipeIDs).Delete(&models.RecipeCategory{}).Error; err != nil {
		return err
	}
	if err := tx.Where("recipe_id IN (?)", recipeIDs).Delete(&models.CookbookRecipe{}).Error; err != nil {
		return err
	}
	if err := tx.Where("recipe_id IN (?)", recipeIDs).Delete(&models.RecipeIngredient{}).Error; err != nil {
		return err
	}
	if err := tx.Where("recipe_id IN (?)", recipeIDs).Delete(&models.Step{}).Error; err != nil {
		return err
	}
	return nil
}
