package services_test

import (
	"testing"

	"github.com/recipedb/recipedb/internal/models"
	"github.com/recipedb/recipedb/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembleRecipeRoundTrip(t *testing.T) {
	db := newTestDB(t)

	flour := seedIngredient(t, db, "flour")
	egg := seedIngredient(t, db, "egg")
	baking := seedCategory(t, db, "baking")
	book := seedCookbook(t, db, 1, "Family Favorites")

	description := "Thin pancakes"
	recipeID, err := services.CreateRecipe(db, services.CreateRecipeInput{
		UserID:             1,
		Name:               "Crepes",
		Description:        &description,
		Servings:           2,
		CaloriesPerServing: 210,
		PrepTime:           intPtr(10),
		CookTime:           intPtr(20),
		Steps: []services.StepInput{
			{StepNo: 1, Content: "Whisk"},
			{StepNo: 2, Content: "Fry"},
		},
		Ingredients: []services.RecipeIngredientInput{
			{IngredientID: flour, Amount: 1, AmountType: "cup"},
			{IngredientID: egg, Amount: 2, AmountType: "whole"},
		},
		Categories: []uint64{baking},
		Cookbooks:  []uint64{book},
	})
	require.NoError(t, err)
	require.NotZero(t, recipeID)

	recipe, err := services.AssembleRecipe(db, recipeID)
	require.NoError(t, err)

	assert.Equal(t, recipeID, recipe.ID)
	assert.Equal(t, "Crepes", recipe.Name)
	require.NotNil(t, recipe.Description)
	assert.Equal(t, description, *recipe.Description)
	assert.Nil(t, recipe.Rating)

	require.Len(t, recipe.Steps, 2)
	assert.Equal(t, 1, recipe.Steps[0].StepNo)
	assert.Equal(t, "Whisk", recipe.Steps[0].Content)

	require.Len(t, recipe.Ingredients, 2)
	assert.Equal(t, "flour", recipe.Ingredients[0].Name)
	assert.Equal(t, flour, recipe.Ingredients[0].IngredientID)

	require.Len(t, recipe.Categories, 1)
	assert.Equal(t, "baking", recipe.Categories[0].Name)

	require.Len(t, recipe.Cookbooks, 1)
	assert.Equal(t, "Family Favorites", recipe.Cookbooks[0].Name)

	assert.Empty(t, recipe.Images)
}

func TestAssembleRecipeIsRepeatable(t *testing.T) {
	db := newTestDB(t)

	flour := seedIngredient(t, db, "flour")
	recipeID, err := services.CreateRecipe(db, services.CreateRecipeInput{
		UserID:             1,
		Name:               "Bread",
		Servings:           8,
		CaloriesPerServing: 180,
		PrepTime:           intPtr(120),
		CookTime:           intPtr(45),
		Ingredients: []services.RecipeIngredientInput{
			{IngredientID: flour, Amount: 4, AmountType: "cups"},
		},
	})
	require.NoError(t, err)

	first, err := services.AssembleRecipe(db, recipeID)
	require.NoError(t, err)
	second, err := services.AssembleRecipe(db, recipeID)
	require.NoError(t, err)

	// Assembly reads, never mutates: repeated calls return the same view.
	assert.Equal(t, first, second)
}

func TestAssembleRecipeEmptyChildren(t *testing.T) {
	db := newTestDB(t)

	recipeID, err := services.CreateRecipe(db, services.CreateRecipeInput{
		UserID:             1,
		Name:               "Glass of Water",
		Servings:           1,
		CaloriesPerServing: 1,
		PrepTime:           intPtr(0),
		CookTime:           intPtr(0),
	})
	require.NoError(t, err)

	recipe, err := services.AssembleRecipe(db, recipeID)
	require.NoError(t, err)

	// Empty collections serialize as [], not null.
	assert.NotNil(t, recipe.Steps)
	assert.NotNil(t, recipe.Ingredients)
	assert.NotNil(t, recipe.Categories)
	assert.NotNil(t, recipe.Cookbooks)
	assert.NotNil(t, recipe.Images)
	assert.Empty(t, recipe.Steps)
}

func TestAssembleRecipeStepOrderFollowsInsertion(t *testing.T) {
	db := newTestDB(t)

	// Steps arrive out of numeric order; assembly must preserve insertion
	// order rather than sorting by stepNo.
	recipeID, err := services.CreateRecipe(db, services.CreateRecipeInput{
		UserID:             1,
		Name:               "Odd Order",
		Servings:           1,
		CaloriesPerServing: 100,
		PrepTime:           intPtr(1),
		CookTime:           intPtr(1),
		Steps: []services.StepInput{
			{StepNo: 3, Content: "Third"},
			{StepNo: 1, Content: "First"},
		},
	})
	require.NoError(t, err)

	recipe, err := services.AssembleRecipe(db, recipeID)
	require.NoError(t, err)
	require.Len(t, recipe.Steps, 2)
	assert.Equal(t, 3, recipe.Steps[0].StepNo)
	assert.Equal(t, 1, recipe.Steps[1].StepNo)
}

func TestAssembleRecipeErrors(t *testing.T) {
	db := newTestDB(t)

	_, err := services.AssembleRecipe(db, 0)
	assert.ErrorIs(t, err, services.ErrInvalidInput)

	_, err = services.AssembleRecipe(db, 42)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestAssembleRecipeSkipsOrphanedJoinRows(t *testing.T) {
	db := newTestDB(t)

	flour := seedIngredient(t, db, "flour")
	recipeID, err := services.CreateRecipe(db, services.CreateRecipeInput{
		UserID:             1,
		Name:               "Orphan Test",
		Servings:           1,
		CaloriesPerServing: 100,
		PrepTime:           intPtr(1),
		CookTime:           intPtr(1),
		Ingredients: []services.RecipeIngredientInput{
			{IngredientID: flour, Amount: 1, AmountType: "cup"},
		},
	})
	require.NoError(t, err)

	// An ingredient row pointing at a missing catalog entry drops out of
	// the join instead of failing the read.
	require.NoError(t, db.Create(&models.RecipeIngredient{
		RecipeID:     recipeID,
		IngredientID: 9999,
		Amount:       1,
		AmountType:   "cup",
	}).Error)

	recipe, err := services.AssembleRecipe(db, recipeID)
	require.NoError(t, err)
	assert.Len(t, recipe.Ingredients, 1)
}
