// recipe_search.go
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
	"sort"
	"strings"

	"github.com/recipedb/recipedb/internal/models"
	"github.com/recipedb/recipedb/internal/pagination"
	"gorm.io/gorm"
	"gorm.io/hints"
)

// Search modes accepted by SearchRecipes.
const (
	SearchByName       = "name"
	SearchByIngredient = "ingredient"
	SearchByCategory   = "category"
)

// PageOptions carries the already-type-coerced paging parameters from the
// controller layer.
type PageOptions struct {
	Page int
	Size int
}

func (o PageOptions) withDefaults() PageOptions {
	if o.Page <= 0 {
		o.Page = 1
	}
	if o.Size <= 0 {
		o.Size = pagination.DefaultPageSize
	}
	return o
}

// SearchResult is a page of assembled recipes plus the page descriptor.
type SearchResult struct {
	Results []*AssembledRecipe `json:"results"`
	pagination.Page
}

// SearchRecipes routes a search to one of three strategies. Empty terms mean
// "no filter" and return the whole catalog, paginated. Each strategy derives
// its own total row count; zero matches is a successful empty page, not an
// error.
//
// The multi-step lookups run outside a transaction, so a concurrent writer
// can interleave with them (see AssembleRecipe).
func SearchRecipes(db *gorm.DB, terms, mode string, opts PageOptions) (*SearchResult, error) {
	opts = opts.withDefaults()

	switch mode {
	case SearchByName, SearchByIngredient, SearchByCategory:
	default:
		return nil, fmt.Errorf("%w: unknown search mode %q", ErrInvalidInput, mode)
	}

	if terms == "" {
		return searchAll(db, opts)
	}

	switch mode {
	case SearchByName:
		return searchByName(db, terms, opts)
	case SearchByIngredient:
		return searchByIngredient(db, terms, opts)
	default:
		return searchByCategory(db, terms, opts)
	}
}

// searchAll returns every recipe, paginated at the SQL level so the number
// of assemble calls is bounded by the page size.
func searchAll(db *gorm.DB, opts PageOptions) (*SearchResult, error) {
	var total int64
	if err := db.Model(&models.Recipe{}).Count(&total).Error; err != nil {
		return nil, err
	}

	page, err := pagination.Paginate(total, opts.Size, opts.Page)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var ids []uint64
	if err := db.Model(&models.Recipe{}).
		Order("recipe_id").
		Limit(opts.Size).
		Offset(page.Offset(opts.Size)).
		Pluck("recipe_id", &ids).Error; err != nil {
		return nil, err
	}

	return assemblePage(db, ids, page)
}

// searchByName matches terms as a case-insensitive substring of the recipe
// name. Candidate ids are paginated in SQL before any assembly happens.
func searchByName(db *gorm.DB, terms string, opts PageOptions) (*SearchResult, error) {
	needle := "%" + strings.ToLower(terms) + "%"

	var total int64
	if err := db.Model(&models.Recipe{}).
		Where("LOWER(name) LIKE ?", needle).
		Count(&total).Error; err != nil {
		return nil, err
	}

	page, err := pagination.Paginate(total, opts.Size, opts.Page)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	scan := db.Model(&models.Recipe{})
	if db.Dialector.Name() == "mysql" {
		scan = scan.Clauses(hints.UseIndex("idx_recipes_name"))
	}

	var ids []uint64
	if err := scan.
		Where("LOWER(name) LIKE ?", needle).
		Order("recipe_id").
		Limit(opts.Size).
		Offset(page.Offset(opts.Size)).
		Pluck("recipe_id", &ids).Error; err != nil {
		return nil, err
	}

	return assemblePage(db, ids, page)
}

// searchByIngredient treats terms as comma-separated ingredient name
// fragments. Each fragment resolves to catalog rows by substring match, then
// to recipe ids through recipe_ingredients. Recipes matched by more than one
// fragment appear once.
func searchByIngredient(db *gorm.DB, terms string, opts PageOptions) (*SearchResult, error) {
	fragments := splitTerms(terms)
	if len(fragments) == 0 {
		return emptyResult(opts)
	}

	ingredientIDs := make([]uint64, 0)
	for _, fragment := range fragments {
		var ids []uint64
		if err := db.Model(&models.Ingredient{}).
			Where("LOWER(name) LIKE ?", "%"+fragment+"%").
			Pluck("ingredient_id", &ids).Error; err != nil {
			return nil, err
		}
		ingredientIDs = append(ingredientIDs, ids...)
	}
	if len(ingredientIDs) == 0 {
		return emptyResult(opts)
	}

	var recipeIDs []uint64
	if err := db.Model(&models.RecipeIngredient{}).
		Where("ingredient_id IN ?", dedupIDs(ingredientIDs)).
		Pluck("recipe_id", &recipeIDs).Error; err != nil {
		return nil, err
	}

	return paginateIDs(db, dedupIDs(recipeIDs), opts)
}

// searchByCategory is the same pipeline as searchByIngredient through the
// category catalog and recipe_categories join table.
func searchByCategory(db *gorm.DB, terms string, opts PageOptions) (*SearchResult, error) {
	fragments := splitTerms(terms)
	if len(fragments) == 0 {
		return emptyResult(opts)
	}

	categoryIDs := make([]uint64, 0)
	for _, fragment := range fragments {
		var ids []uint64
		if err := db.Model(&models.Category{}).
			Where("LOWER(name) LIKE ?", "%"+fragment+"%").
			Pluck("category_id", &ids).Error; err != nil {
			return nil, err
		}
		categoryIDs = append(categoryIDs, ids...)
	}
	if len(categoryIDs) == 0 {
		return emptyResult(opts)
	}

	var recipeIDs []uint64
	if err := db.Model(&models.RecipeCategory{}).
		Where("category_id IN ?", dedupIDs(categoryIDs)).
		Pluck("recipe_id", &recipeIDs).Error; err != nil {
		return nil, err
	}

	return paginateIDs(db, dedupIDs(recipeIDs), opts)
}

// paginateIDs pages an in-memory candidate id list and assembles the page.
func paginateIDs(db *gorm.DB, ids []uint64, opts PageOptions) (*SearchResult, error) {
	page, err := pagination.Paginate(int64(len(ids)), opts.Size, opts.Page)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	start := page.Offset(opts.Size)
	if start > len(ids) {
		start = len(ids)
	}
	end := start + opts.Size
	if end > len(ids) {
		end = len(ids)
	}

	return assemblePage(db, ids[start:end], page)
}

func assemblePage(db *gorm.DB, ids []uint64, page pagination.Page) (*SearchResult, error) {
	results := make([]*AssembledRecipe, 0, len(ids))
	for _, id := range ids {
		recipe, err := AssembleRecipe(db, id)
		if err != nil {
			// Child tables can hold orphaned recipe ids when a recipe was
			// removed outside the transactional writer. Skip those.
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return nil, err
		}
		results = append(results, recipe)
	}
	return &SearchResult{Results: results, Page: page}, nil
}

func emptyResult(opts PageOptions) (*SearchResult, error) {
	page, err := pagination.Paginate(0, opts.Size, opts.Page)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return &SearchResult{Results: make([]*AssembledRecipe, 0), Page: page}, nil
}

// splitTerms breaks a comma-separated fragment list, trimming whitespace and
// lowercasing for case-insensitive matching. Empty fragments are dropped.
func splitTerms(terms string) []string {
	parts := strings.Split(terms, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(strings.ToLower(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// dedupIDs removes duplicate ids and returns them in ascending order so
// pagination over the list is stable between requests.
func dedupIDs(ids []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(ids))
	out := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
