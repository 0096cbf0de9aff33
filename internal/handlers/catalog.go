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

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/recipedb/recipedb/internal/services"
	"github.com/recipedb/recipedb/internal/utils"
	"gorm.io/gorm"
)

// CatalogHandler handles ingredient, category and cookbook catalog routes
type CatalogHandler struct {
	DB *gorm.DB
}

type catalogCreateBody struct {
	UserID uint64 `json:"userId"`
	Name   string `json:"name"`
}

// GetIngredients handles GET /api/ingredients
// @Summary List catalog ingredients
// @Description Get the shared ingredient catalog, optionally filtered by name substring, paginated
// @Tags Catalog
// @Accept json
// @Produce json
// @Param filter query string false "Case-insensitive name substring"
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /ingredients [get]
func (h *CatalogHandler) GetIngredients(c *fiber.Ctx) error {
	result, err := services.ListIngredients(h.DB, c.Query("filter"), parsePageOptions(c))
	if err != nil {
		return mapServiceError(c, err, "getIngredients")
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

// CreateIngredient handles POST /api/ingredients
// @Summary Create a catalog ingredient
// @Description Insert an ingredient, or return the existing row with the same name
// @Tags Catalog
// @Accept json
// @Produce json
// @Param body body object true "Ingredient name"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /ingredients [post]
func (h *CatalogHandler) CreateIngredient(c *fiber.Ctx) error {
	var body catalogCreateBody
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "catalog.validation.input")
	}

	ingredient, err := services.CreateIngredient(h.DB, body.Name)
	if err != nil {
		return mapServiceError(c, err, "createIngredient")
	}
	return utils.MutationSuccessResponse(c, ingredient.IngredientID, 1)
}

// GetCategories handles GET /api/categories
// @Summary List catalog categories
// @Description Get the category catalog, optionally filtered by name substring, paginated
// @Tags Catalog
// @Accept json
// @Produce json
// @Param filter query string false "Case-insensitive name substring"
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /categories [get]
func (h *CatalogHandler) GetCategories(c *fiber.Ctx) error {
	result, err := services.ListCategories(h.DB, c.Query("filter"), parsePageOptions(c))
	if err != nil {
		return mapServiceError(c, err, "getCategories")
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

// CreateCategory handles POST /api/categories
// @Summary Create a catalog category
// @Description Insert a category, or return the existing row with the same name
// @Tags Catalog
// @Accept json
// @Produce json
// @Param body body object true "Category name"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /categories [post]
func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var body catalogCreateBody
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "catalog.validation.input")
	}

	category, err := services.CreateCategory(h.DB, body.Name)
	if err != nil {
		return mapServiceError(c, err, "createCategory")
	}
	return utils.MutationSuccessResponse(c, category.CategoryID, 1)
}

// GetCookbooks handles GET /api/cookbooks
// @Summary List cookbooks
// @Description Get cookbooks, optionally filtered by name substring, paginated
// @Tags Catalog
// @Accept json
// @Produce json
// @Param filter query string false "Case-insensitive name substring"
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /cookbooks [get]
func (h *CatalogHandler) GetCookbooks(c *fiber.Ctx) error {
	result, err := services.ListCookbooks(h.DB, c.Query("filter"), parsePageOptions(c))
	if err != nil {
		return mapServiceError(c, err, "getCookbooks")
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

// CreateCookbook handles POST /api/cookbooks
// @Summary Create a cookbook
// @Description Insert a cookbook owned by a user
// @Tags Catalog
// @Accept json
// @Produce json
// @Param body body object true "Cookbook owner and name"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /cookbooks [post]
func (h *CatalogHandler) CreateCookbook(c *fiber.Ctx) error {
	var body catalogCreateBody
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "catalog.validation.input")
	}

	cookbook, err := services.CreateCookbook(h.DB, body.UserID, body.Name)
	if err != nil {
		return mapServiceError(c, err, "createCookbook")
	}
	return utils.MutationSuccessResponse(c, cookbook.CookbookID, 1)
}
