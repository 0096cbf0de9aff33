package models

import (
	"time"
)

// Recipe is the base row of the recipe aggregate. Child rows (steps,
// ingredients, category and cookbook links, images) live in their own
// tables and are only tied together by the writer's transaction.
type Recipe struct {
	RecipeID           uint64  `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID             uint64  `gorm:"not null;index" json:"userId"`
	Name               string  `gorm:"size:255;not null;index:idx_recipes_name" json:"name"`
	Description        *string `gorm:"size:2048" json:"description"`
	Servings           int     `gorm:"not null" json:"servings"`
	CaloriesPerServing int     `gorm:"not null" json:"caloriesPerServing"`
	PrepTime           int     `gorm:"not null" json:"prepTime"`
	CookTime           int     `gorm:"not null" json:"cookTime"`
	Rating             *int    `json:"rating"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Step is a single instruction of a recipe. StepNo is caller-supplied and
// 1-based; it is stored and returned as-is, never renumbered.
type Step struct {
	StepID    uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	RecipeID  uint64 `gorm:"not null;index" json:"recipeId"`
	StepNo    int    `gorm:"not null" json:"stepNo"`
	Content   string `gorm:"size:2048;not null" json:"content"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RecipeIngredient links a recipe to an entry of the shared ingredient
// catalog. AmountType is a free-text unit string and may be empty.
type RecipeIngredient struct {
	RecipeIngredientID uint64  `gorm:"primaryKey;autoIncrement" json:"id"`
	RecipeID           uint64  `gorm:"not null;index" json:"recipeId"`
	IngredientID       uint64  `gorm:"not null;index" json:"ingredientId"`
	Amount             float64 `gorm:"not null" json:"amount"`
	AmountType         string  `gorm:"size:64" json:"amountType"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// RecipeCategory links a recipe to the shared category catalog.
type RecipeCategory struct {
	RecipeCategoryID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	RecipeID         uint64 `gorm:"not null;index" json:"recipeId"`
	CategoryID       uint64 `gorm:"not null;index" json:"categoryId"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// CookbookRecipe is the join row between cookbooks and recipes; a recipe may
// belong to zero or more cookbooks.
type CookbookRecipe struct {
	CookbookRecipeID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	RecipeID         uint64 `gorm:"not null;index" json:"recipeId"`
	CookbookID       uint64 `gorm:"not null;index" json:"cookbookId"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName overrides the table name for Recipe
func (Recipe) TableName() string {
	return "recipes"
}

// TableName overrides the table name for Step
func (Step) TableName() string {
	return "steps"
}

// TableName overrides the table name for RecipeIngredient
func (RecipeIngredient) TableName() string {
	return "recipe_ingredients"
}

// TableName overrides the table name for RecipeCategory
func (RecipeCategory) TableName() string {
	return "recipe_categories"
}

// TableName overrides the table name for CookbookRecipe
func (CookbookRecipe) TableName() string {
	return "cookbook_recipes"
}
