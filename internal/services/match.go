// match.go
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
	"fmt"

	"github.com/recipedb/recipedb/internal/models"
	"gorm.io/gorm"
)

// PantryItem is a caller-supplied available ingredient. Only IngredientID
// participates in matching; amount and unit are carried for display and are
// never compared (no unit conversion, presence only).
type PantryItem struct {
	IngredientID uint64  `json:"ingredientId"`
	Amount       float64 `json:"amount"`
	AmountType   string  `json:"amountType"`
}

// CanBeMade reports whether every ingredient row of the recipe is covered by
// the pantry, matched by ingredient id only. Invalid input (zero recipe id,
// empty pantry) and an unknown recipe return false — callers treat false as
// "cannot determine", distinct from an empty match list.
//
// A recipe with zero ingredient rows is vacuously makeable. That is
// intended: "glass of water" is a legitimate recipe.
func CanBeMade(db *gorm.DB, recipeID uint64, pantry []PantryItem) bool {
	if recipeID == 0 || len(pantry) == 0 {
		return false
	}

	var exists int64
	if err := db.Model(&models.Recipe{}).Where("recipe_id = ?", recipeID).Count(&exists).Error; err != nil || exists == 0 {
		return false
	}

	var required []uint64
	if err := db.Model(&models.RecipeIngredient{}).
		Where("recipe_id = ?", recipeID).
		Pluck("ingredient_id", &required).Error; err != nil {
		return false
	}

	available := make(map[uint64]struct{}, len(pantry))
	for _, item := range pantry {
		if item.IngredientID != 0 {
			available[item.IngredientID] = struct{}{}
		}
	}

	// Every required ingredient is checked; a single miss fails the recipe.
	for _, id := range required {
		if _, ok := available[id]; !ok {
			return false
		}
	}
	return true
}

// WhatCanBeMade returns the recipes fully makeable from the pantry. Recipes
// using any pantry ingredient form the candidate superset; each candidate is
// then filtered through CanBeMade so the result matches the operation's name.
// The final list is deduplicated by recipe id and paginated.
func WhatCanBeMade(db *gorm.DB, pantry []PantryItem, opts PageOptions) (*SearchResult, error) {
	opts = opts.withDefaults()

	if len(pantry) == 0 {
		return nil, fmt.Errorf("%w: pantry ingredients are required", ErrInvalidInput)
	}
	pantryIDs := make([]uint64, 0, len(pantry))
	for _, item := range pantry {
		if item.IngredientID == 0 {
			return nil, fmt.Errorf("%w: pantry ingredient requires an ingredientId", ErrInvalidInput)
		}
		pantryIDs = append(pantryIDs, item.IngredientID)
	}

	var candidates []uint64
	if err := db.Model(&models.RecipeIngredient{}).
		Where("ingredient_id IN ?", dedupIDs(pantryIDs)).
		Pluck("recipe_id", &candidates).Error; err != nil {
		return nil, err
	}

	makeable := make([]uint64, 0, len(candidates))
	for _, recipeID := range dedupIDs(candidates) {
		if CanBeMade(db, recipeID, pantry) {
			makeable = append(makeable, recipeID)
		}
	}

	return paginateIDs(db, makeable, opts)
}
