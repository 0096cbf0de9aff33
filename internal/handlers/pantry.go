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

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/recipedb/recipedb/internal/services"
	"github.com/recipedb/recipedb/internal/types"
	"github.com/recipedb/recipedb/internal/utils"
	"gorm.io/gorm"
)

// PantryHandler handles stored pantry routes
type PantryHandler struct {
	DB *gorm.DB
}

type pantryWriteBody struct {
	UserID      uint64                                         `json:"userId"`
	Name        string                                         `json:"name"`
	Ingredients types.FlexList[services.PantryIngredientInput] `json:"ingredients"`
}

// CreatePantry handles POST /api/pantries
// @Summary Create a pantry
// @Description Create a pantry and its initial ingredient entries in one transaction
// @Tags Pantries
// @Accept json
// @Produce json
// @Param body body object true "Pantry owner, name and entries"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /pantries [post]
func (h *PantryHandler) CreatePantry(c *fiber.Ctx) error {
	var body pantryWriteBody
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "pantry.validation.input")
	}

	pantryID, err := services.CreatePantry(h.DB, body.UserID, body.Name, body.Ingredients.Slice())
	if err != nil {
		return mapServiceError(c, err, "createPantry")
	}
	return utils.MutationSuccessResponse(c, pantryID, 1)
}

// GetPantry handles GET /api/pantries/:id
// @Summary Get one pantry
// @Description Get a pantry with its entries joined to ingredient names
// @Tags Pantries
// @Accept json
// @Produce json
// @Param id path int true "Pantry ID"
// @Success 200 {object} services.AssembledPantry
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /pantries/{id} [get]
func (h *PantryHandler) GetPantry(c *fiber.Ctx) error {
	pantryID, err := parseUintParam(c, "id")
	if err != nil || pantryID == 0 {
		return utils.ErrorResponse(c, "Invalid pantry id", fiber.StatusBadRequest, "pantry.validation.input")
	}

	pantry, err := services.GetPantry(h.DB, pantryID)
	if err != nil {
		return mapServiceError(c, err, "getPantry")
	}
	return c.Status(fiber.StatusOK).JSON(pantry)
}

// GetPantries handles GET /api/pantries
// @Summary List a user's pantries
// @Description Page through the pantries owned by one user
// @Tags Pantries
// @Accept json
// @Produce json
// @Param userId query int true "Owner user ID"
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} services.PantryList
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /pantries [get]
func (h *PantryHandler) GetPantries(c *fiber.Ctx) error {
	userID := uint64(c.QueryInt("userId", 0))

	result, err := services.ListPantriesByUser(h.DB, userID, parsePageOptions(c))
	if err != nil {
		return mapServiceError(c, err, "getPantries")
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

// UpdatePantry handles PUT /api/pantries/:id
// @Summary Update pantry entries
// @Description Apply pantry ingredient entries as upserts-by-id in one transaction
// @Tags Pantries
// @Accept json
// @Produce json
// @Param id path int true "Pantry ID"
// @Param body body object true "Pantry entries"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /pantries/{id} [put]
func (h *PantryHandler) UpdatePantry(c *fiber.Ctx) error {
	pantryID, err := parseUintParam(c, "id")
	if err != nil || pantryID == 0 {
		return utils.ErrorResponse(c, "Invalid pantry id", fiber.StatusBadRequest, "pantry.validation.input")
	}

	var body pantryWriteBody
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "pantry.validation.input")
	}

	if err := services.UpsertPantryIngredients(h.DB, pantryID, body.Ingredients.Slice()); err != nil {
		return mapServiceError(c, err, "updatePantry")
	}
	return utils.MutationSuccessResponse(c, pantryID, 1)
}

// DeletePantry handles DELETE /api/pantries/:id
// @Summary Delete a pantry
// @Description Delete a pantry and its entries in one transaction
// @Tags Pantries
// @Accept json
// @Produce json
// @Param id path int true "Pantry ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /pantries/{id} [delete]
func (h *PantryHandler) DeletePantry(c *fiber.Ctx) error {
	pantryID, err := parseUintParam(c, "id")
	if err != nil || pantryID == 0 {
		return utils.ErrorResponse(c, "Invalid pantry id", fiber.StatusBadRequest, "pantry.validation.input")
	}

	affectedRows, err := services.RemovePantry(h.DB, pantryID)
	if err != nil {
		return mapServiceError(c, err, "deletePantry")
	}
	return utils.MutationSuccessResponse(c, pantryID, affectedRows)
}

// GetPantryMakeable handles GET /api/pantries/:id/makeable
// @Summary List recipes makeable from a stored pantry
// @Description Run the makeable filter against the entries of a stored pantry
// @Tags Pantries
// @Accept json
// @Produce json
// @Param id path int true "Pantry ID"
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} services.SearchResult
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /pantries/{id}/makeable [get]
func (h *PantryHandler) GetPantryMakeable(c *fiber.Ctx) error {
	pantryID, err := parseUintParam(c, "id")
	if err != nil || pantryID == 0 {
		return utils.ErrorResponse(c, "Invalid pantry id", fiber.StatusBadRequest, "pantry.validation.input")
	}

	items, err := services.PantryItems(h.DB, pantryID)
	if err != nil {
		return mapServiceError(c, err, "getPantryMakeable")
	}

	result, err := services.WhatCanBeMade(h.DB, items, parsePageOptions(c))
	if err != nil {
		return mapServiceError(c, err, "getPantryMakeable")
	}
	return c.Status(fiber.StatusOK).JSON(result)
}
