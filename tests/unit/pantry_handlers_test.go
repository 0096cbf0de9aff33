package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/recipedb/recipedb/internal/handlers"
	"github.com/recipedb/recipedb/internal/models"
	"github.com/recipedb/recipedb/tests/helpers"
	"gorm.io/gorm"
)

// setupPantryApp wires the pantry and catalog routes without auth middleware
func setupPantryApp(db *gorm.DB) *fiber.App {
	app := fiber.New()
	pantryHandler := &handlers.PantryHandler{DB: db}
	catalogHandler := &handlers.CatalogHandler{DB: db}

	app.Get("/api/pantries", pantryHandler.GetPantries)
	app.Post("/api/pantries", pantryHandler.CreatePantry)
	app.Get("/api/pantries/:id/makeable", pantryHandler.GetPantryMakeable)
	app.Get("/api/pantries/:id", pantryHandler.GetPantry)
	app.Put("/api/pantries/:id", pantryHandler.UpdatePantry)
	app.Delete("/api/pantries/:id", pantryHandler.DeletePantry)

	app.Get("/api/ingredients", catalogHandler.GetIngredients)
	app.Post("/api/ingredients", catalogHandler.CreateIngredient)
	app.Get("/api/categories", catalogHandler.GetCategories)
	app.Post("/api/cookbooks", catalogHandler.CreateCookbook)

	return app
}

// TestPantryLifecycle tests create, read, update and delete of a pantry
func TestPantryLifecycle(t *testing.T) {
	db := setupTestDB(t)
	app := setupPantryApp(db)

	eggID := helpers.CreateTestIngredient(t, db, "egg")
	milkID := helpers.CreateTestIngredient(t, db, "milk")

	// Create
	reqBody := map[string]interface{}{
		"userId": 7,
		"name":   "Fridge",
		"ingredients": []map[string]interface{}{
			{"ingredientId": eggID, "amount": 12, "amountType": "whole"},
		},
	}
	body, _ := json.Marshal(reqBody)
	req := httptest.NewRequest("POST", "/api/pantries", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}
	var created map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	pantryID := uint64(created["id"].(float64))

	// Read
	req = httptest.NewRequest("GET", fmt.Sprintf("/api/pantries/%d", pantryID), nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}
	var pantry map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&pantry); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if pantry["name"] != "Fridge" {
		t.Errorf("Expected name Fridge, got %v", pantry["name"])
	}
	if entries := pantry["ingredients"].([]interface{}); len(entries) != 1 {
		t.Errorf("Expected 1 entry, got %d", len(entries))
	}

	// Update adds a second entry
	updateBody := map[string]interface{}{
		"ingredients": []map[string]interface{}{
			{"ingredientId": milkID, "amount": 1, "amountType": "liter"},
		},
	}
	body, _ = json.Marshal(updateBody)
	req = httptest.NewRequest("PUT", fmt.Sprintf("/api/pantries/%d", pantryID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}
	var entryCount int64
	db.Model(&models.PantryIngredient{}).Where("pantry_id = ?", pantryID).Count(&entryCount)
	if entryCount != 2 {
		t.Errorf("Expected 2 entries after update, got %d", entryCount)
	}

	// Delete
	req = httptest.NewRequest("DELETE", fmt.Sprintf("/api/pantries/%d", pantryID), nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}
	db.Model(&models.PantryIngredient{}).Where("pantry_id = ?", pantryID).Count(&entryCount)
	if entryCount != 0 {
		t.Errorf("Expected no entries after delete, got %d", entryCount)
	}

	// Reading a deleted pantry is a 404
	req = httptest.NewRequest("GET", fmt.Sprintf("/api/pantries/%d", pantryID), nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 404 {
		t.Errorf("Expected status 404, got %d", resp.StatusCode)
	}
}

// TestPantryMakeable tests GET /api/pantries/:id/makeable
func TestPantryMakeable(t *testing.T) {
	db := setupTestDB(t)
	app := setupPantryApp(db)

	eggID := helpers.CreateTestIngredient(t, db, "egg")
	recipeID := helpers.CreateTestRecipe(t, db, 1, "Boiled Egg")
	helpers.AttachTestIngredient(t, db, recipeID, eggID, 1, "whole")

	reqBody := map[string]interface{}{
		"userId": 7,
		"name":   "Fridge",
		"ingredients": []map[string]interface{}{
			{"ingredientId": eggID, "amount": 12, "amountType": "whole"},
		},
	}
	body, _ := json.Marshal(reqBody)
	req := httptest.NewRequest("POST", "/api/pantries", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	var created map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	pantryID := uint64(created["id"].(float64))

	req = httptest.NewRequest("GET", fmt.Sprintf("/api/pantries/%d/makeable", pantryID), nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}
	var result struct {
		Results []map[string]interface{} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(result.Results) != 1 || result.Results[0]["name"] != "Boiled Egg" {
		t.Errorf("Expected Boiled Egg as the only makeable recipe, got %v", result.Results)
	}
}

// TestCatalogListAndCreate tests the ingredient catalog routes
func TestCatalogListAndCreate(t *testing.T) {
	db := setupTestDB(t)
	app := setupPantryApp(db)

	helpers.CreateTestIngredient(t, db, "basil")
	helpers.CreateTestIngredient(t, db, "bay leaf")
	helpers.CreateTestIngredient(t, db, "cumin")

	req := httptest.NewRequest("GET", "/api/ingredients?filter=ba", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}
	var page struct {
		Results      []map[string]interface{} `json:"results"`
		TotalRecords int64                    `json:"totalRecords"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if page.TotalRecords != 2 {
		t.Errorf("Expected 2 matches for filter ba, got %d", page.TotalRecords)
	}

	// Creating an existing name returns the existing row
	body, _ := json.Marshal(map[string]interface{}{"name": "basil"})
	req = httptest.NewRequest("POST", "/api/ingredients", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}
	var count int64
	db.Model(&models.Ingredient{}).Where("name = ?", "basil").Count(&count)
	if count != 1 {
		t.Errorf("Expected a single basil row, got %d", count)
	}
}
