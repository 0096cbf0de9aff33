// search.go
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

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/recipedb/recipedb/internal/services"
	"github.com/recipedb/recipedb/internal/utils"
	"gorm.io/gorm"
)

// SearchHandler handles recipe search and listing routes
type SearchHandler struct {
	DB *gorm.DB
}

// GetRecipes handles GET /api/recipes
// @Summary List all recipes
// @Description Get the full recipe catalog as assembled aggregates, paginated
// @Tags Search
// @Accept json
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} services.SearchResult
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /recipes [get]
func (h *SearchHandler) GetRecipes(c *fiber.Ctx) error {
	result, err := services.SearchRecipes(h.DB, "", services.SearchByName, parsePageOptions(c))
	if err != nil {
		return mapServiceError(c, err, "getRecipes")
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

// SearchRecipes handles GET /api/recipes/search
// @Summary Search recipes
// @Description Search recipes by name substring, or by comma-separated ingredient or category name fragments
// @Tags Search
// @Accept json
// @Produce json
// @Param terms query string false "Search terms; empty returns the whole catalog"
// @Param mode query string true "Search mode: name, ingredient or category"
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} services.SearchResult
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /recipes/search [get]
func (h *SearchHandler) SearchRecipes(c *fiber.Ctx) error {
	terms := c.Query("terms")
	mode := c.Query("mode", services.SearchByName)

	result, err := services.SearchRecipes(h.DB, terms, mode, parsePageOptions(c))
	if err != nil {
		return mapServiceError(c, err, "searchRecipes")
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

// CheckMakeable handles POST /api/recipes/:id/makeable
// @Summary Check whether a recipe can be made
// @Description Report whether the posted pantry covers every ingredient of the recipe, matched by ingredient id
// @Tags Search
// @Accept json
// @Produce json
// @Param id path int true "Recipe ID"
// @Param body body []services.PantryItem true "Available pantry items"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /recipes/{id}/makeable [post]
func (h *SearchHandler) CheckMakeable(c *fiber.Ctx) error {
	recipeID, err := parseUintParam(c, "id")
	if err != nil || recipeID == 0 {
		return utils.ErrorResponse(c, "Invalid recipe id", fiber.StatusBadRequest, "recipe.validation.input")
	}

	var body pantryBody
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "recipe.validation.input")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"recipeId": recipeID,
		"canMake":  services.CanBeMade(h.DB, recipeID, body.Ingredients.Slice()),
	})
}

// ListMakeable handles POST /api/recipes/makeable
// @Summary List recipes makeable from a pantry
// @Description Return the recipes whose every ingredient is covered by the posted pantry, deduplicated and paginated
// @Tags Search
// @Accept json
// @Produce json
// @Param body body []services.PantryItem true "Available pantry items"
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} services.SearchResult
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /recipes/makeable [post]
func (h *SearchHandler) ListMakeable(c *fiber.Ctx) error {
	var body pantryBody
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "recipe.validation.input")
	}

	result, err := services.WhatCanBeMade(h.DB, body.Ingredients.Slice(), parsePageOptions(c))
	if err != nil {
		return mapServiceError(c, err, "listMakeable")
	}
	return c.Status(fiber.StatusOK).JSON(result)
}
