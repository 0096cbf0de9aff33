package services_test

import (
	"fmt"
	"testing"

	"github.com/recipedb/recipedb/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchRecipesUnknownMode(t *testing.T) {
	db := newTestDB(t)

	_, err := services.SearchRecipes(db, "x", "rating", services.PageOptions{})
	assert.ErrorIs(t, err, services.ErrInvalidInput)
}

func TestSearchRecipesByName(t *testing.T) {
	db := newTestDB(t)

	for _, name := range []string{"Chicken Soup", "chicken curry", "Beef Stew"} {
		_, err := services.CreateRecipe(db, services.CreateRecipeInput{
			UserID:             1,
			Name:               name,
			Servings:           2,
			CaloriesPerServing: 100,
			PrepTime:           intPtr(5),
			CookTime:           intPtr(5),
		})
		require.NoError(t, err)
	}

	// Case-insensitive substring match.
	result, err := services.SearchRecipes(db, "CHICKEN", services.SearchByName, services.PageOptions{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.TotalRecords)
	assert.Len(t, result.Results, 2)

	// Zero matches is an empty page, not an error.
	result, err = services.SearchRecipes(db, "tofu", services.SearchByName, services.PageOptions{})
	require.NoError(t, err)
	assert.Zero(t, result.TotalRecords)
	assert.Empty(t, result.Results)
	assert.Equal(t, 1, result.TotalPages)
}

func TestSearchRecipesEmptyTermsReturnsAll(t *testing.T) {
	db := newTestDB(t)

	for i := 0; i < 5; i++ {
		_, err := services.CreateRecipe(db, services.CreateRecipeInput{
			UserID:             1,
			Name:               fmt.Sprintf("Recipe %d", i),
			Servings:           2,
			CaloriesPerServing: 100,
			PrepTime:           intPtr(5),
			CookTime:           intPtr(5),
		})
		require.NoError(t, err)
	}

	// Empty terms ignore the mode and list the catalog.
	result, err := services.SearchRecipes(db, "", services.SearchByIngredient, services.PageOptions{Page: 1, Size: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), result.TotalRecords)
	assert.Equal(t, 3, result.TotalPages)
	assert.Len(t, result.Results, 2)

	// Last page is short.
	result, err = services.SearchRecipes(db, "", services.SearchByName, services.PageOptions{Page: 3, Size: 2})
	require.NoError(t, err)
	assert.Len(t, result.Results, 1)
}

func TestSearchRecipesByIngredientFragments(t *testing.T) {
	db := newTestDB(t)

	chicken := seedIngredient(t, db, "chicken breast")
	rice := seedIngredient(t, db, "rice")
	tofu := seedIngredient(t, db, "tofu")

	stirFry, err := services.CreateRecipe(db, services.CreateRecipeInput{
		UserID:             1,
		Name:               "Stir Fry",
		Servings:           2,
		CaloriesPerServing: 400,
		PrepTime:           intPtr(10),
		CookTime:           intPtr(10),
		Ingredients: []services.RecipeIngredientInput{
			{IngredientID: chicken, Amount: 1, AmountType: "lb"},
			{IngredientID: rice, Amount: 2, AmountType: "cups"},
		},
	})
	require.NoError(t, err)

	_, err = services.CreateRecipe(db, services.CreateRecipeInput{
		UserID:             1,
		Name:               "Tofu Bowl",
		Servings:           2,
		CaloriesPerServing: 350,
		PrepTime:           intPtr(10),
		CookTime:           intPtr(10),
		Ingredients: []services.RecipeIngredientInput{
			{IngredientID: tofu, Amount: 1, AmountType: "block"},
		},
	})
	require.NoError(t, err)

	// Both fragments resolve to the same recipe; it appears once.
	result, err := services.SearchRecipes(db, "chicken, rice", services.SearchByIngredient, services.PageOptions{})
	require.NoError(t, err)
	require.Len(t, result.Results, 1)
	assert.Equal(t, stirFry, result.Results[0].ID)
	assert.Equal(t, int64(1), result.TotalRecords)

	// Unknown fragment matches nothing.
	result, err = services.SearchRecipes(db, "saffron", services.SearchByIngredient, services.PageOptions{})
	require.NoError(t, err)
	assert.Empty(t, result.Results)
}

func TestSearchRecipesByCategory(t *testing.T) {
	db := newTestDB(t)

	dessert := seedCategory(t, db, "dessert")
	dinner := seedCategory(t, db, "dinner")

	cake, err := services.CreateRecipe(db, services.CreateRecipeInput{
		UserID:             1,
		Name:               "Cake",
		Servings:           8,
		CaloriesPerServing: 500,
		PrepTime:           intPtr(30),
		CookTime:           intPtr(40),
		Categories:         []uint64{dessert},
	})
	require.NoError(t, err)

	_, err = services.CreateRecipe(db, services.CreateRecipeInput{
		UserID:             1,
		Name:               "Roast",
		Servings:           4,
		CaloriesPerServing: 600,
		PrepTime:           intPtr(20),
		CookTime:           intPtr(90),
		Categories:         []uint64{dinner},
	})
	require.NoError(t, err)

	result, err := services.SearchRecipes(db, "dess", services.SearchByCategory, services.PageOptions{})
	require.NoError(t, err)
	require.Len(t, result.Results, 1)
	assert.Equal(t, cake, result.Results[0].ID)
}

func TestSearchRecipesPaginatesIDList(t *testing.T) {
	db := newTestDB(t)

	salt := seedIngredient(t, db, "salt")
	for i := 0; i < 7; i++ {
		_, err := services.CreateRecipe(db, services.CreateRecipeInput{
			UserID:             1,
			Name:               fmt.Sprintf("Salty %d", i),
			Servings:           1,
			CaloriesPerServing: 100,
			PrepTime:           intPtr(1),
			CookTime:           intPtr(1),
			Ingredients: []services.RecipeIngredientInput{
				{IngredientID: salt, Amount: 1, AmountType: "tsp"},
			},
		})
		require.NoError(t, err)
	}

	result, err := services.SearchRecipes(db, "salt", services.SearchByIngredient, services.PageOptions{Page: 1, Size: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(7), result.TotalRecords)
	assert.Equal(t, 3, result.TotalPages)
	assert.Len(t, result.Results, 3)

	last, err := services.SearchRecipes(db, "salt", services.SearchByIngredient, services.PageOptions{Page: 3, Size: 3})
	require.NoError(t, err)
	assert.Len(t, last.Results, 1)

	// A page past the end is empty, not an error.
	past, err := services.SearchRecipes(db, "salt", services.SearchByIngredient, services.PageOptions{Page: 9, Size: 3})
	require.NoError(t, err)
	assert.Empty(t, past.Results)
}

func TestSearchRecipesDefaultsPageOptions(t *testing.T) {
	db := newTestDB(t)

	// Non-positive options fall back to page 1 with the default size; the
	// calculator only ever sees positive values through this path.
	result, err := services.SearchRecipes(db, "", services.SearchByName, services.PageOptions{Page: -1, Size: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, result.CurrentPage)
}
