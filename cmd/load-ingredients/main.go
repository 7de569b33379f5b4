package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"foodgram/database"
	"foodgram/internal/config"
	"foodgram/internal/http-api/models"
	"foodgram/internal/http-api/repository"
)

// Seeds the ingredient catalog from a JSON file of
// {"name": ..., "measurement_unit": ...} objects. Re-running is safe:
// rows that already exist are skipped.
func main() {
	log.Println("Starting ingredient import...")

	if err := godotenv.Load(".env"); err != nil {
		log.Printf("No .env file found, using system environment")
	}

	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		log.Fatal("DATABASE_DSN is not set")
	}

	jsonFile := "data/ingredients.json"
	if len(os.Args) > 1 {
		jsonFile = os.Args[1]
	}

	items, err := readIngredientsFile(jsonFile)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", jsonFile, err)
	}
	log.Printf("Loaded %d ingredients from %s", len(items), jsonFile)

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	db, err := database.ConnectDB(&config.Config{DatabaseDSN: dsn}, logger)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	repo := repository.NewIngredientRepo(db)
	created, err := repo.BulkImport(context.Background(), items)
	if err != nil {
		log.Fatalf("Failed to import ingredients: %v", err)
	}

	log.Printf("Import finished: %d created, %d already present", created, int64(len(items))-created)
}

func readIngredientsFile(filename string) ([]models.Ingredient, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	var items []models.Ingredient
	if err := json.NewDecoder(file).Decode(&items); err != nil {
		return nil, fmt.Errorf("failed to decode JSON: %w", err)
	}
	for i, ing := range items {
		if ing.Name == "" {
			return nil, fmt.Errorf("entry %d has an empty name", i)
		}
		if items[i].MeasurementUnit == "" {
			items[i].MeasurementUnit = "г"
		}
	}
	return items, nil
}
