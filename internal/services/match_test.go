package services_test

import (
	"testing"

	"github.com/recipedb/recipedb/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanBeMade(t *testing.T) {
	db := newTestDB(t)

	egg := seedIngredient(t, db, "egg")
	butter := seedIngredient(t, db, "butter")

	omelette, err := services.CreateRecipe(db, services.CreateRecipeInput{
		UserID:             1,
		Name:               "Omelette",
		Servings:           1,
		CaloriesPerServing: 300,
		PrepTime:           intPtr(5),
		CookTime:           intPtr(5),
		Ingredients: []services.RecipeIngredientInput{
			{IngredientID: egg, Amount: 3, AmountType: "whole"},
			{IngredientID: butter, Amount: 1, AmountType: "tbsp"},
		},
	})
	require.NoError(t, err)

	full := []services.PantryItem{
		{IngredientID: egg, Amount: 12, AmountType: "whole"},
		{IngredientID: butter, Amount: 4, AmountType: "tbsp"},
	}
	partial := []services.PantryItem{
		{IngredientID: egg, Amount: 12, AmountType: "whole"},
	}

	assert.True(t, services.CanBeMade(db, omelette, full))
	assert.False(t, services.CanBeMade(db, omelette, partial))

	// Amounts never participate; a tiny amount of everything still matches.
	tiny := []services.PantryItem{
		{IngredientID: egg, Amount: 0.1, AmountType: "whole"},
		{IngredientID: butter, Amount: 0.1, AmountType: "tsp"},
	}
	assert.True(t, services.CanBeMade(db, omelette, tiny))
}

func TestCanBeMadeVacuouslyTrue(t *testing.T) {
	db := newTestDB(t)

	water := seedIngredient(t, db, "water")
	recipeID, err := services.CreateRecipe(db, services.CreateRecipeInput{
		UserID:             1,
		Name:               "Glass of Water",
		Servings:           1,
		CaloriesPerServing: 1,
		PrepTime:           intPtr(0),
		CookTime:           intPtr(0),
	})
	require.NoError(t, err)

	// A recipe with no ingredient rows is makeable from any non-empty pantry.
	pantry := []services.PantryItem{{IngredientID: water, Amount: 1, AmountType: "glass"}}
	assert.True(t, services.CanBeMade(db, recipeID, pantry))
}

func TestCanBeMadeInvalidInput(t *testing.T) {
	db := newTestDB(t)

	egg := seedIngredient(t, db, "egg")
	pantry := []services.PantryItem{{IngredientID: egg, Amount: 1, AmountType: "whole"}}

	// Zero recipe id, empty pantry and unknown recipe all report false.
	assert.False(t, services.CanBeMade(db, 0, pantry))
	assert.False(t, services.CanBeMade(db, 1, nil))
	assert.False(t, services.CanBeMade(db, 1, []services.PantryItem{}))
	assert.False(t, services.CanBeMade(db, 999, pantry))
}

func TestWhatCanBeMade(t *testing.T) {
	db := newTestDB(t)

	egg := seedIngredient(t, db, "egg")
	flour := seedIngredient(t, db, "flour")
	milk := seedIngredient(t, db, "milk")

	omelette, err := services.CreateRecipe(db, services.CreateRecipeInput{
		UserID:             1,
		Name:               "Omelette",
		Servings:           1,
		CaloriesPerServing: 300,
		PrepTime:           intPtr(5),
		CookTime:           intPtr(5),
		Ingredients: []services.RecipeIngredientInput{
			{IngredientID: egg, Amount: 3, AmountType: "whole"},
		},
	})
	require.NoError(t, err)

	_, err = services.CreateRecipe(db, services.CreateRecipeInput{
		UserID:             1,
		Name:               "Pancakes",
		Servings:           4,
		CaloriesPerServing: 350,
		PrepTime:           intPtr(10),
		CookTime:           intPtr(15),
		Ingredients: []services.RecipeIngredientInput{
			{IngredientID: egg, Amount: 2, AmountType: "whole"},
			{IngredientID: flour, Amount: 1, AmountType: "cup"},
			{IngredientID: milk, Amount: 1, AmountType: "cup"},
		},
	})
	require.NoError(t, err)

	// Eggs alone: the omelette is makeable, the pancakes are not, even
	// though both recipes use a pantry ingredient.
	result, err := services.WhatCanBeMade(db, []services.PantryItem{
		{IngredientID: egg, Amount: 12, AmountType: "whole"},
	}, services.PageOptions{})
	require.NoError(t, err)
	require.Len(t, result.Results, 1)
	assert.Equal(t, omelette, result.Results[0].ID)
	assert.Equal(t, int64(1), result.TotalRecords)

	// The full pantry makes both.
	result, err = services.WhatCanBeMade(db, []services.PantryItem{
		{IngredientID: egg, Amount: 12, AmountType: "whole"},
		{IngredientID: flour, Amount: 5, AmountType: "cups"},
		{IngredientID: milk, Amount: 2, AmountType: "cups"},
	}, services.PageOptions{})
	require.NoError(t, err)
	assert.Len(t, result.Results, 2)
}

func TestWhatCanBeMadeDeduplicatesCandidates(t *testing.T) {
	db := newTestDB(t)

	egg := seedIngredient(t, db, "egg")
	milk := seedIngredient(t, db, "milk")

	// Two pantry ingredients hitting the same recipe yield one result row.
	scrambled, err := services.CreateRecipe(db, services.CreateRecipeInput{
		UserID:             1,
		Name:               "Scrambled Eggs",
		Servings:           1,
		CaloriesPerServing: 250,
		PrepTime:           intPtr(2),
		CookTime:           intPtr(5),
		Ingredients: []services.RecipeIngredientInput{
			{IngredientID: egg, Amount: 2, AmountType: "whole"},
			{IngredientID: milk, Amount: 0.25, AmountType: "cup"},
		},
	})
	require.NoError(t, err)

	result, err := services.WhatCanBeMade(db, []services.PantryItem{
		{IngredientID: egg, Amount: 12, AmountType: "whole"},
		{IngredientID: milk, Amount: 1, AmountType: "liter"},
	}, services.PageOptions{})
	require.NoError(t, err)
	require.Len(t, result.Results, 1)
	assert.Equal(t, scrambled, result.Results[0].ID)
}

func TestWhatCanBeMadeInvalidInput(t *testing.T) {
	db := newTestDB(t)

	_, err := services.WhatCanBeMade(db, nil, services.PageOptions{})
	assert.ErrorIs(t, err, services.ErrInvalidInput)

	_, err = services.WhatCanBeMade(db, []services.PantryItem{{Amount: 1}}, services.PageOptions{})
	assert.ErrorIs(t, err, services.ErrInvalidInput)
}
