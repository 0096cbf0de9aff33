// uploads.go
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
	"log"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/recipedb/recipedb/internal/models"
	"github.com/recipedb/recipedb/internal/services"
	"github.com/recipedb/recipedb/internal/utils"
	"gorm.io/gorm"
)

// UploadHandler handles image upload and listing routes
type UploadHandler struct {
	DB        *gorm.DB
	UploadDir string
}

// allowed image resource kinds; the images table is shared across them
var uploadResources = map[string]struct{}{
	"recipe":   {},
	"cookbook": {},
}

// UploadImage handles POST /api/uploads/:resource/:id
// @Summary Upload an image
// @Description Store a multipart image file under the upload directory and record it against a resource
// @Tags Uploads
// @Accept multipart/form-data
// @Produce json
// @Param resource path string true "Resource kind (recipe or cookbook)"
// @Param id path int true "Resource ID"
// @Param file formData file true "Image file"
// @Param title formData string false "Image title"
// @Param alt formData string false "Image alt text"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /uploads/{resource}/{id} [post]
func (h *UploadHandler) UploadImage(c *fiber.Ctx) error {
	resource := c.Params("resource")
	if _, ok := uploadResources[resource]; !ok {
		return utils.ErrorResponse(c, "Unknown resource kind", fiber.StatusBadRequest, "upload.validation.input")
	}

	resourceID, err := parseUintParam(c, "id")
	if err != nil || resourceID == 0 {
		return utils.ErrorResponse(c, "Invalid resource id", fiber.StatusBadRequest, "upload.validation.input")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(c, "Missing file field", fiber.StatusBadRequest, "upload.validation.input")
	}

	// Stored filename is a fresh uuid; the original name only survives in
	// the title fallback.
	name := uuid.New().String() + filepath.Ext(file.Filename)
	if err := c.SaveFile(file, filepath.Join(h.UploadDir, name)); err != nil {
		log.Printf("uploadImage: save failed: %v", err)
		return utils.InternalErrorResponse(c, "uploadImage")
	}

	title := c.FormValue("title")
	if title == "" {
		title = file.Filename
	}

	image := models.Image{
		Resource:   resource,
		ResourceID: resourceID,
		Source:     name,
		Title:      title,
		Alt:        c.FormValue("alt"),
	}
	imageID, err := services.SaveImage(h.DB, &image)
	if err != nil {
		return mapServiceError(c, err, "uploadImage")
	}

	return utils.MutationSuccessResponse(c, imageID, 1)
}

// GetImages handles GET /api/uploads/:resource/:id
// @Summary List images of a resource
// @Description Get the image metadata rows attached to a resource
// @Tags Uploads
// @Accept json
// @Produce json
// @Param resource path string true "Resource kind (recipe or cookbook)"
// @Param id path int true "Resource ID"
// @Success 200 {array} services.ImageRef
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /uploads/{resource}/{id} [get]
func (h *UploadHandler) GetImages(c *fiber.Ctx) error {
	resource := c.Params("resource")
	if _, ok := uploadResources[resource]; !ok {
		return utils.ErrorResponse(c, "Unknown resource kind", fiber.StatusBadRequest, "upload.validation.input")
	}

	resourceID, err := parseUintParam(c, "id")
	if err != nil || resourceID == 0 {
		return utils.ErrorResponse(c, "Invalid resource id", fiber.StatusBadRequest, "upload.validation.input")
	}

	refs, err := services.GetImagesFor(h.DB, resource, resourceID)
	if err != nil {
		return mapServiceError(c, err, "getImages")
	}
	return c.Status(fiber.StatusOK).JSON(refs)
}

// DeleteImage handles DELETE /api/uploads/:imageId
// @Summary Delete an image row
// @Description Remove one image metadata row; the stored file is left for offline cleanup
// @Tags Uploads
// @Accept json
// @Produce json
// @Param imageId path int true "Image ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /uploads/{imageId} [delete]
func (h *UploadHandler) DeleteImage(c *fiber.Ctx) error {
	imageID, err := parseUintParam(c, "imageId")
	if err != nil || imageID == 0 {
		return utils.ErrorResponse(c, "Invalid image id", fiber.StatusBadRequest, "upload.validation.input")
	}

	if err := services.RemoveImage(h.DB, imageID); err != nil {
		return mapServiceError(c, err, "deleteImage")
	}
	return utils.MutationSuccessResponse(c, imageID, 1)
}
