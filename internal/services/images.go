package services

import (
	"fmt"

	"github.com/recipedb/recipedb/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GetImagesFor lists the image attachments of one resource. The images table
// is shared across resource kinds; recipes use resource "recipe". Zero rows
// is an empty slice.
func GetImagesFor(db *gorm.DB, resource string, resourceID uint64) ([]ImageRef, error) {
	if resource == "" || resourceID == 0 {
		return nil, fmt.Errorf("%w: resource and resource id are required", ErrInvalidInput)
	}

	refs := make([]ImageRef, 0)
	err := db.Session(&gorm.Session{Logger: db.Logger.LogMode(logger.Silent)}).
		Table("images").
		Select("image_id AS id, source, title, alt").
		Where("resource = ? AND resource_id = ?", resource, resourceID).
		Order("image_id").
		Scan(&refs).Error
	if err != nil {
		return nil, err
	}
	return refs, nil
}

// SaveImage records an uploaded file as an attachment of a resource.
func SaveImage(db *gorm.DB, image *models.Image) (uint64, error) {
	if image.Resource == "" || image.ResourceID == 0 || image.Source == "" {
		return 0, fmt.Errorf("%w: resource, resource id and source are required", ErrInvalidInput)
	}
	if err := db.Create(image).Error; err != nil {
		return 0, err
	}
	return image.ImageID, nil
}

// RemoveImage deletes one image row. A missing row is ErrNotFound.
func RemoveImage(db *gorm.DB, imageID uint64) error {
	if imageID == 0 {
		return fmt.Errorf("%w: image id", ErrInvalidInput)
	}
	result := db.Where("image_id = ?", imageID).Delete(&models.Image{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: image %d", ErrNotFound, imageID)
	}
	return nil
}
