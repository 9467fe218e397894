package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"kochbuch/internal/api"
	"kochbuch/internal/importer"
	"kochbuch/internal/recipe"
)

// Config represents the application configuration.
type Config struct {
	DatabaseURL   string `json:"DATABASE_URL"`
	ListenAddr    string `json:"listen_addr"`
	AllowedOrigin string `json:"allowed_origin"`
}

func main() {
	// Read configuration from config.json
	configData, err := os.ReadFile("config.json")
	if err != nil {
		panic(fmt.Errorf("failed to read config.json: %w", err))
	}

	var config Config
	if err := json.Unmarshal(configData, &config); err != nil {
		panic(fmt.Errorf("failed to unmarshal config.json: %w", err))
	}
	if config.ListenAddr == "" {
		config.ListenAddr = ":8080"
	}
	if config.AllowedOrigin == "" {
		config.AllowedOrigin = "http://localhost:8081"
	}

	dbStore, err := recipe.NewPostgresStore(config.DatabaseURL)
	if err != nil {
		panic(fmt.Errorf("error creating postgresstore: %w", err))
	}

	handler := api.NewHandler(importer.New(), dbStore)

	r := gin.Default()

	// Configure CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.AllowedOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.POST("/api/recipes/import", handler.Import)
	r.GET("/api/recipes", handler.GetRecipes)
	r.GET("/api/recipes/:id", handler.GetRecipe)
	r.Run(config.ListenAddr)
}
