// pantry.go
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
	"github.com/recipedb/recipedb/internal/pagination"
	"github.com/recipedb/recipedb/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// PantryIngredientInput is one pantry entry of a create or update payload.
// A zero ID inserts, a non-zero ID merges in place; the id decodes from a
// JSON number or a stringified number.
type PantryIngredientInput struct {
	ID           types.FlexUint64 `json:"id"`
	IngredientID uint64           `json:"ingredientId"`
	Amount       float64          `json:"amount"`
	AmountType   string           `json:"amountType"`
}

// AssembledPantry is a pantry plus its ingredient entries joined to catalog
// names.
type AssembledPantry struct {
	ID          uint64           `json:"id"`
	UserID      uint64           `json:"userId"`
	Name        string           `json:"name"`
	Ingredients []IngredientLine `json:"ingredients"`
}

// PantryList is one page of a user's pantries (without their entries).
type PantryList struct {
	Results []models.Pantry `json:"results"`
	pagination.Page
}

// CreatePantry inserts a pantry and its initial entries in one transaction.
func CreatePantry(db *gorm.DB, userID uint64, name string, items []PantryIngredientInput) (uint64, error) {
	if userID == 0 || name == "" {
		return 0, fmt.Errorf("%w: userId and name are required", ErrInvalidInput)
	}

	var pantryID uint64
	err := db.Transaction(func(tx *gorm.DB) error {
		pantry := models.Pantry{UserID: userID, Name: name}
		if err := tx.Create(&pantry).Error; err != nil {
			return err
		}
		pantryID = pantry.PantryID

		for _, item := range items {
			if item.IngredientID == 0 {
				return fmt.Errorf("%w: pantry entry requires an ingredientId", ErrInvalidInput)
			}
			row := models.PantryIngredient{
				PantryID:     pantryID,
				IngredientID: item.IngredientID,
				Amount:       item.Amount,
				AmountType:   item.AmountType,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return pantryID, nil
}

// GetPantry returns one pantry with its entries joined to ingredient names.
func GetPantry(db *gorm.DB, pantryID uint64) (*AssembledPantry, error) {
	if pantryID == 0 {
		return nil, fmt.Errorf("%w: pantry id", ErrInvalidInput)
	}

	silent := db.Session(&gorm.Session{Logger: db.Logger.LogMode(logger.Silent)})

	var pantry models.Pantry
	if err := silent.Where("pantry_id = ?", pantryID).First(&pantry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: pantry %d", ErrNotFound, pantryID)
		}
		return nil, err
	}

	out := &AssembledPantry{
		ID:          pantry.PantryID,
		UserID:      pantry.UserID,
		Name:        pantry.Name,
		Ingredients: make([]IngredientLine, 0),
	}

	if err := silent.Table("pantry_ingredients pi").
		Select("pi.pantry_ingredient_id AS id, pi.ingredient_id, i.name, pi.amount, pi.amount_type").
		Joins("JOIN ingredients i ON i.ingredient_id = pi.ingredient_id").
		Where("pi.pantry_id = ?", pantryID).
		Order("pi.pantry_ingredient_id").
		Scan(&out.Ingredients).Error; err != nil {
		return nil, err
	}

	return out, nil
}

// ListPantriesByUser pages through a user's pantries.
func ListPantriesByUser(db *gorm.DB, userID uint64, opts PageOptions) (*PantryList, error) {
	if userID == 0 {
		return nil, fmt.Errorf("%w: user id", ErrInvalidInput)
	}
	opts = opts.withDefaults()

	var total int64
	if err := db.Model(&models.Pantry{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, err
	}

	page, err := pagination.Paginate(total, opts.Size, opts.Page)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	results := make([]models.Pantry, 0, opts.Size)
	if err := db.Where("user_id = ?", userID).
		Order("pantry_id").
		Limit(opts.Size).
		Offset(page.Offset(opts.Size)).
		Find(&results).Error; err != nil {
		return nil, err
	}

	return &PantryList{Results: results, Page: page}, nil
}

// UpsertPantryIngredients applies pantry entries as upserts-by-id inside one
// transaction, mirroring the recipe writer's child semantics.
func UpsertPantryIngredients(db *gorm.DB, pantryID uint64, items []PantryIngredientInput) error {
	if pantryID == 0 {
		return fmt.Errorf("%w: pantry id", ErrInvalidInput)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var pantry models.Pantry
		if err := tx.Session(&gorm.Session{Logger: tx.Logger.LogMode(logger.Silent)}).
			Where("pantry_id = ?", pantryID).First(&pantry).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: pantry %d", ErrNotFound, pantryID)
			}
			return err
		}

		for _, item := range items {
			if item.IngredientID == 0 {
				return fmt.Errorf("%w: pantry entry requires an ingredientId", ErrInvalidInput)
			}
			if item.ID != 0 {
				if err := tx.Model(&models.PantryIngredient{}).
					Where("pantry_ingredient_id = ? AND pantry_id = ?", item.ID.Uint64(), pantryID).
					Updates(map[string]interface{}{
						"ingredient_id": item.IngredientID,
						"amount":        item.Amount,
						"amount_type":   item.AmountType,
					}).Error; err != nil {
					return err
				}
			} else {
				row := models.PantryIngredient{
					PantryID:     pantryID,
					IngredientID: item.IngredientID,
					Amount:       item.Amount,
					AmountType:   item.AmountType,
				}
				if err := tx.Create(&row).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// RemovePantry deletes a pantry and its entries in one transaction.
func RemovePantry(db *gorm.DB, pantryID uint64) (int64, error) {
	if pantryID == 0 {
		return 0, fmt.Errorf("%w: pantry id", ErrInvalidInput)
	}

	var affected int64
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("pantry_id = ?", pantryID).Delete(&models.PantryIngredient{}).Error; err != nil {
			return err
		}
		result := tx.Where("pantry_id = ?", pantryID).Delete(&models.Pantry{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: pantry %d", ErrNotFound, pantryID)
		}
		affected = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}

// PantryItems converts a stored pantry's entries to the match engine's input
// shape.
func PantryItems(db *gorm.DB, pantryID uint64) ([]PantryItem, error) {
	pantry, err := GetPantry(db, pantryID)
	if err != nil {
		return nil, err
	}
	items := make([]PantryItem, 0, len(pantry.Ingredients))
	for _, line := range pantry.Ingredients {
		items = append(items, PantryItem{
			IngredientID: line.IngredientID,
			Amount:       line.Amount,
			AmountType:   line.AmountType,
		})
	}
	return items, nil
}
