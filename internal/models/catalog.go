package models

import (
	"time"
)

// Ingredient is shared, read-mostly reference data consumed by the search
// and match paths.
type Ingredient struct {
	IngredientID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string `gorm:"size:255;not null;index:idx_ingredients_name" json:"name"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Category is shared, read-mostly reference data.
type Category struct {
	CategoryID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Name       string `gorm:"size:255;not null;index:idx_categories_name" json:"name"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Cookbook groups recipes for a user via CookbookRecipe join rows.
type Cookbook struct {
	CookbookID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     uint64 `gorm:"not null;index" json:"userId"`
	Name       string `gorm:"size:255;not null" json:"name"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Image is a generic attachment keyed by (resource, resource_id). The same
// table serves every resource kind; recipes use resource "recipe".
type Image struct {
	ImageID    uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Resource   string `gorm:"size:64;not null;index:idx_images_resource" json:"resource"`
	ResourceID uint64 `gorm:"not null;index:idx_images_resource" json:"resourceId"`
	Source     string `gorm:"size:512;not null" json:"source"`
	Title      string `gorm:"size:255" json:"title"`
	Alt        string `gorm:"size:255" json:"alt"`
	Meta       JSON   `gorm:"type:json" json:"meta,omitempty"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Pantry is a named set of ingredients a user has on hand.
type Pantry struct {
	PantryID  uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint64 `gorm:"not null;index" json:"userId"`
	Name      string `gorm:"size:255;not null" json:"name"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PantryIngredient is one ingredient entry of a pantry. Amounts are stored
// but the match engine compares presence only.
type PantryIngredient struct {
	PantryIngredientID uint64  `gorm:"primaryKey;autoIncrement" json:"id"`
	PantryID           uint64  `gorm:"not null;index" json:"pantryId"`
	IngredientID       uint64  `gorm:"not null;index" json:"ingredientId"`
	Amount             float64 `json:"amount"`
	AmountType         string  `gorm:"size:64" json:"amountType"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TableName overrides the table name for Ingredient
func (Ingredient) TableName() string {
	return "ingredients"
}

// TableName overrides the table name for Category
func (Category) TableName() string {
	return "categories"
}

// TableName overrides the table name for Cookbook
func (Cookbook) TableName() string {
	return "cookbooks"
}

// TableName overrides the table name for Image
func (Image) TableName() string {
	return "images"
}

// TableName overrides the table name for Pantry
func (Pantry) TableName() string {
	return "pantries"
}

// TableName overrides the table name for PantryIngredient
func (PantryIngredient) TableName() string {
	return "pantry_ingredients"
}
