// common.go
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
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/recipedb/recipedb/internal/pagination"
	"github.com/recipedb/recipedb/internal/services"
	"github.com/recipedb/recipedb/internal/types"
	"github.com/recipedb/recipedb/internal/utils"
)

// pantryBody is the shared request body of the match endpoints. FlexList
// tolerates a single object where an array is expected.
type pantryBody struct {
	Ingredients types.FlexList[services.PantryItem] `json:"ingredients"`
}

// parsePageOptions extracts page/size query parameters. Missing, garbled or
// non-positive values fall back to the defaults.
func parsePageOptions(c *fiber.Ctx) services.PageOptions {
	return services.PageOptions{
		Page: c.QueryInt("page", 1),
		Size: c.QueryInt("size", pagination.DefaultPageSize),
	}
}

// parseUintParam parses a numeric path parameter.
func parseUintParam(c *fiber.Ctx, name string) (uint64, error) {
	return strconv.ParseUint(c.Params(name), 10, 64)
}

// mapServiceError converts a service error to the matching HTTP response.
// Infrastructure errors are logged server-side and answered with a generic
// message so storage details never reach the client.
func mapServiceError(c *fiber.Ctx, err error, errorType string) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return utils.NotFoundResponse(c, err.Error())
	case errors.Is(err, services.ErrInvalidInput):
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, errorType)
	default:
		log.Printf("%s: %v", errorType, err)
		return utils.InternalErrorResponse(c, errorType)
	}
}
