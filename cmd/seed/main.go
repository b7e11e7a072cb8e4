// Package main provides a tool to seed the database with a superuser and
// optional sample catalog data.
//
// Usage:
//
//	DATA_PATH=~/reteta go run ./cmd/seed --email admin@example.com --password changeme
//	DATA_PATH=~/reteta go run ./cmd/seed --email admin@example.com --password changeme --sample-data
package main

import (
	"context"
	"encoding/hex"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/retetaapp/reteta-server/internal/auth"
	"github.com/retetaapp/reteta-server/internal/media/images"
	"github.com/retetaapp/reteta-server/internal/service"
	"github.com/retetaapp/reteta-server/internal/store/sqlite"
)

var (
	email      = flag.String("email", "", "Superuser email (required)")
	password   = flag.String("password", "", "Superuser password (required)")
	sampleData = flag.Bool("sample-data", false, "Also create sample tags, ingredients and a recipe")
)

func main() {
	flag.Parse()

	if *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "both --email and --password are required")
		flag.Usage()
		os.Exit(1)
	}

	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		dataPath = os.ExpandEnv("$HOME/reteta")
	}
	if err := os.MkdirAll(dataPath, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "create data dir: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	dbPath := filepath.Join(dataPath, "reteta.db")
	fmt.Printf("Opening database at: %s\n", dbPath)

	st, err := sqlite.Open(dbPath, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open store: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	authKey, err := auth.LoadOrGenerateKey(dataPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load auth key: %v\n", err)
		os.Exit(1)
	}

	tokenService, err := auth.NewTokenService(hex.EncodeToString(authKey), 15*time.Minute, 720*time.Hour)
	if err != nil {
		fmt.Fprintf(os.Stderr, "token service: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	sessionService := service.NewSessionService(st, tokenService, logger)
	authService := service.NewAuthService(st, tokenService, sessionService, logger)

	user, err := authService.CreateSuperuser(ctx, *email, *password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create superuser: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Superuser created: %s (%s)\n", user.Email, user.ID)

	if !*sampleData {
		return
	}

	storage, err := images.NewStorage(dataPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "image storage: %v\n", err)
		os.Exit(1)
	}

	tagService := service.NewTagService(st, logger)
	ingredientService := service.NewIngredientService(st, logger)
	recipeService := service.NewRecipeService(st, images.NewProcessor(storage, logger), logger)

	var tagIDs []string
	for _, name := range []string{"Mains", "Dessert", "Quick"} {
		tag, err := tagService.Create(ctx, user.ID, service.CreateTagRequest{Name: name})
		if err != nil {
			fmt.Fprintf(os.Stderr, "create tag %q: %v\n", name, err)
			os.Exit(1)
		}
		tagIDs = append(tagIDs, tag.ID)
	}

	var ingredientIDs []string
	for _, name := range []string{"Cabbage", "Pork", "Rice"} {
		ing, err := ingredientService.Create(ctx, user.ID, service.CreateIngredientRequest{Name: name})
		if err != nil {
			fmt.Fprintf(os.Stderr, "create ingredient %q: %v\n", name, err)
			os.Exit(1)
		}
		ingredientIDs = append(ingredientIDs, ing.ID)
	}

	recipe, err := recipeService.Create(ctx, user.ID, service.CreateRecipeRequest{
		Title:         "Sarmale",
		TimeMinutes:   180,
		Price:         25.50,
		Link:          "https://example.com/sarmale",
		TagIDs:        tagIDs[:1],
		IngredientIDs: ingredientIDs,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "create recipe: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Sample data created: %d tags, %d ingredients, recipe %s\n",
		len(tagIDs), len(ingredientIDs), recipe.ID)
}
