// catalog.go
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
	"strings"

	"github.com/recipedb/recipedb/internal/models"
	"github.com/recipedb/recipedb/internal/pagination"
	"gorm.io/gorm"
)

// CatalogPage is one page of shared reference rows (ingredients or
// categories) or cookbooks.
type CatalogPage[T any] struct {
	Results []T `json:"results"`
	pagination.Page
}

// ListIngredients returns the ingredient catalog, optionally filtered by a
// case-insensitive name substring, paginated.
func ListIngredients(db *gorm.DB, filter string, opts PageOptions) (*CatalogPage[models.Ingredient], error) {
	return listByName[models.Ingredient](db, filter, opts)
}

// ListCategories returns the category catalog, filtered and paginated.
func ListCategories(db *gorm.DB, filter string, opts PageOptions) (*CatalogPage[models.Category], error) {
	return listByName[models.Category](db, filter, opts)
}

// ListCookbooks returns cookbooks, filtered and paginated.
func ListCookbooks(db *gorm.DB, filter string, opts PageOptions) (*CatalogPage[models.Cookbook], error) {
	return listByName[models.Cookbook](db, filter, opts)
}

func listByName[T any](db *gorm.DB, filter string, opts PageOptions) (*CatalogPage[T], error) {
	opts = opts.withDefaults()

	var model T
	query := db.Model(&model)
	if filter != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(filter)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	page, err := pagination.Paginate(total, opts.Size, opts.Page)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	results := make([]T, 0, opts.Size)
	if err := query.
		Order("name").
		Limit(opts.Size).
		Offset(page.Offset(opts.Size)).
		Find(&results).Error; err != nil {
		return nil, err
	}

	return &CatalogPage[T]{Results: results, Page: page}, nil
}

// CreateIngredient inserts a catalog ingredient, or returns the existing row
// sharing the same name.
func CreateIngredient(db *gorm.DB, name string) (*models.Ingredient, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	var ingredient models.Ingredient
	if err := db.Where("name = ?", name).
		FirstOrCreate(&ingredient, models.Ingredient{Name: name}).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

// CreateCategory inserts a catalog category, or returns the existing row
// sharing the same name.
func CreateCategory(db *gorm.DB, name string) (*models.Category, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	var category models.Category
	if err := db.Where("name = ?", name).
		FirstOrCreate(&category, models.Category{Name: name}).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// CreateCookbook inserts a cookbook owned by a user.
func CreateCookbook(db *gorm.DB, userID uint64, name string) (*models.Cookbook, error) {
	if name == "" || userID == 0 {
		return nil, fmt.Errorf("%w: name and userId are required", ErrInvalidInput)
	}
	cookbook := models.Cookbook{UserID: userID, Name: name}
	if err := db.Create(&cookbook).Error; err != nil {
		return nil, err
	}
	return &cookbook, nil
}
