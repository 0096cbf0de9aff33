// recipes.go
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
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/recipedb/recipedb/internal/services"
	"github.com/recipedb/recipedb/internal/utils"
	"gorm.io/gorm"
)

// RecipeHandler handles recipe aggregate routes
type RecipeHandler struct {
	DB *gorm.DB
}

// GetRecipe handles GET /api/recipes/:id
// @Summary Get one assembled recipe
// @Description Get a recipe with its steps, ingredients, categories, cookbooks and images
// @Tags Recipes
// @Accept json
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 200 {object} services.AssembledRecipe
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /recipes/{id} [get]
func (h *RecipeHandler) GetRecipe(c *fiber.Ctx) error {
	recipeID, err := parseUintParam(c, "id")
	if err != nil || recipeID == 0 {
		return utils.ErrorResponse(c, "Invalid recipe id", fiber.StatusBadRequest, "recipe.validation.input")
	}

	recipe, err := services.AssembleRecipe(h.DB, recipeID)
	if err != nil {
		return mapServiceError(c, err, "getRecipe")
	}

	return c.Status(fiber.StatusOK).JSON(recipe)
}

// CreateRecipe handles POST /api/recipes
// @Summary Create a recipe
// @Description Create a recipe with optional steps, ingredients, categories and cookbook links in one transaction
// @Tags Recipes
// @Accept json
// @Produce json
// @Param body body services.CreateRecipeInput true "Recipe to create"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /recipes [post]
func (h *RecipeHandler) CreateRecipe(c *fiber.Ctx) error {
	var body services.CreateRecipeInput
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "recipe.validation.input")
	}

	recipeID, err := services.CreateRecipe(h.DB, body)
	if err != nil {
		return mapServiceError(c, err, "createRecipe")
	}

	return utils.MutationSuccessResponse(c, recipeID, 1)
}

// UpdateRecipe handles PUT /api/recipes/:id
// @Summary Update a recipe
// @Description Update recipe scalars and upsert child rows by id; omitted children are kept
// @Tags Recipes
// @Accept json
// @Produce json
// @Param id path int true "Recipe ID"
// @Param body body services.UpdateRecipeInput true "Recipe fields"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /recipes/{id} [put]
func (h *RecipeHandler) UpdateRecipe(c *fiber.Ctx) error {
	recipeID, err := parseUintParam(c, "id")
	if err != nil || recipeID == 0 {
		return utils.ErrorResponse(c, "Invalid recipe id", fiber.StatusBadRequest, "recipe.validation.input")
	}

	var body services.UpdateRecipeInput
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "recipe.validation.input")
	}
	body.RecipeID = recipeID

	if err := services.UpdateRecipe(h.DB, body); err != nil {
		return mapServiceError(c, err, "updateRecipe")
	}

	return utils.MutationSuccessResponse(c, recipeID, 1)
}

// DeleteRecipe handles DELETE /api/recipes/:id
// @Summary Delete a recipe
// @Description Delete a recipe and all of its child rows in one transaction
// @Tags Recipes
// @Accept json
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /recipes/{id} [delete]
func (h *RecipeHandler) DeleteRecipe(c *fiber.Ctx) error {
	recipeID, err := parseUintParam(c, "id")
	if err != nil || recipeID == 0 {
		return utils.ErrorResponse(c, "Invalid recipe id", fiber.StatusBadRequest, "recipe.validation.input")
	}

	affectedRows, err := services.RemoveRecipe(h.DB, recipeID)
	if err != nil {
		return mapServiceError(c, err, "deleteRecipe")
	}

	return utils.MutationSuccessResponse(c, recipeID, affectedRows)
}

// DeleteRecipes handles DELETE /api/recipes
// @Summary Delete all recipes
// @Description Delete every recipe, or every recipe of one user when userId is given
// @Tags Recipes
// @Accept json
// @Produce json
// @Param userId query int false "Limit deletion to one user"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /recipes [delete]
func (h *RecipeHandler) DeleteRecipes(c *fiber.Ctx) error {
	var userID uint64
	if raw := c.Query("userId"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return utils.ErrorResponse(c, "Invalid userId", fiber.StatusBadRequest, "recipe.validation.input")
		}
		userID = parsed
	}

	var affectedRows int64
	var err error
	if userID != 0 {
		affectedRows, err = services.RemoveAllRecipesByUser(h.DB, userID)
	} else {
		affectedRows, err = services.RemoveAllRecipes(h.DB)
	}
	if err != nil {
		return mapServiceError(c, err, "deleteRecipes")
	}

	return utils.MutationSuccessResponse(c, userID, affectedRows)
}
