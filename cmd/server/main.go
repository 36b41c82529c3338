package main

import (
	"fmt"
	"log"
	"os"

	"github.com/scoremyfood/backend/config"
	httpDelivery "github.com/scoremyfood/backend/internal/delivery/http"
	"github.com/scoremyfood/backend/internal/domain"
	"github.com/scoremyfood/backend/internal/infrastructure/cache"
	"github.com/scoremyfood/backend/internal/infrastructure/off"
	"github.com/scoremyfood/backend/internal/scoring"
	"github.com/scoremyfood/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting ScoreMyFood Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	// Scoring engine: built-in rule base with configured weight overrides.
	// The config is published once here and only read afterwards.
	scoringCfg := scoring.DefaultConfig()
	scoringCfg.Weights = domain.Weights{
		Nutrient:       cfg.Scoring.WeightNutrient,
		Processing:     cfg.Scoring.WeightProcessing,
		Additives:      cfg.Scoring.WeightAdditives,
		Flags:          cfg.Scoring.WeightFlags,
		Micronutrients: cfg.Scoring.WeightMicronutrients,
	}
	engine := scoring.NewEngine(scoringCfg)
	log.Printf("Scoring config version: %s", scoringCfg.Version)

	// Initialize infrastructure dependencies
	memoryCache := cache.NewMemoryCache()
	log.Printf("Cache TTL: %s", cfg.Cache.TTL)

	offClient := off.NewClient(cfg.OFF.BaseURL, cfg.OFF.UserAgent)
	log.Printf("OpenFoodFacts API: %s", cfg.OFF.BaseURL)

	debug := cfg.Server.Environment == "development"
	if debug {
		offClient.SetDebug(true)
		log.Printf("OFF client debug mode enabled")
	}

	// Initialize usecase layer
	productService := usecase.NewProductService(
		memoryCache,
		offClient,
		engine,
		usecase.ProductServiceConfig{
			CacheTTL:           cfg.Cache.TTL,
			EnableDebugLogging: debug,
		},
	)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(productService, engine)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
