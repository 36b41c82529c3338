package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/scoremyfood/backend/internal/domain"
	"github.com/scoremyfood/backend/internal/ingredients"
	"github.com/scoremyfood/backend/internal/scoring"
)

// ProductServiceConfig holds configuration for the product service
type ProductServiceConfig struct {
	CacheTTL           time.Duration
	EnableDebugLogging bool
}

// ProductService looks up products, parses their labels and attaches the
// health score. Flow for a barcode: check cache -> fetch from OpenFoodFacts
// -> parse ingredients -> score -> cache -> return.
type ProductService struct {
	cache              domain.CacheRepository
	source             domain.ProductSource
	engine             *scoring.Engine
	cacheTTL           time.Duration
	enableDebugLogging bool
}

// NewProductService creates a new product service with dependencies
func NewProductService(
	cache domain.CacheRepository,
	source domain.ProductSource,
	engine *scoring.Engine,
	config ProductServiceConfig,
) *ProductService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 168 * time.Hour // Default 7 days
	}

	return &ProductService{
		cache:              cache,
		source:             source,
		engine:             engine,
		cacheTTL:           cacheTTL,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// LookupBarcode returns the analyzed product for a barcode.
func (s *ProductService) LookupBarcode(ctx context.Context, barcode string) (*domain.AnalyzedProduct, error) {
	if barcode == "" {
		return nil, domain.ErrInvalidRequest
	}

	cacheKey := "product:" + barcode

	if cached, err := s.getFromCache(ctx, cacheKey); err == nil && cached != nil {
		if s.enableDebugLogging {
			log.Printf("[PRODUCT] Cache hit for barcode %s", barcode)
		}
		cached.Source = "cache"
		return cached, nil
	}

	record, err := s.source.FetchProduct(ctx, barcode)
	if err != nil {
		return nil, err
	}

	analyzed := s.analyze(record, "openfoodfacts")

	if err := s.setInCache(ctx, cacheKey, analyzed); err != nil && s.enableDebugLogging {
		log.Printf("[PRODUCT] Failed to cache barcode %s: %v", barcode, err)
	}

	return analyzed, nil
}

// AnalyzeText analyzes an already-extracted ingredient list (the OCR
// collaborator sends plain text). Nutrition is unknown for text-only input,
// so nutrient penalties default to zero and the score reflects ingredient
// signals only.
func (s *ProductService) AnalyzeText(ctx context.Context, name, brand, ingredientsText string) (*domain.AnalyzedProduct, error) {
	if ingredientsText == "" {
		return nil, domain.ErrInvalidRequest
	}
	if name == "" {
		name = "Ingredients scan"
	}

	record := &domain.ProductRecord{
		Name:            name,
		Brand:           brand,
		IngredientsText: ingredientsText,
	}
	return s.analyze(record, "text"), nil
}

// analyze runs the parsing and scoring pipeline over a product record.
func (s *ProductService) analyze(record *domain.ProductRecord, source string) *domain.AnalyzedProduct {
	parsed := ingredients.Parse(record.IngredientsText)

	// Prefer the supplier's structured additive list; fall back to codes
	// extracted from the ingredient text.
	if len(record.Additives) == 0 {
		record.Additives = parsed.Additives
	}

	analyzed := &domain.AnalyzedProduct{
		Barcode:         record.Barcode,
		Name:            record.Name,
		Brand:           record.Brand,
		IsBeverage:      s.engine.IsBeverage(record),
		IngredientsText: record.IngredientsText,
		Ingredients:     parsed.Ingredients,
		Additives:       record.Additives,
		Allergens:       parsed.Allergens,
		Traffic:         s.engine.TrafficLights(record),
		Source:          source,
	}

	return s.engine.EnsureScored(analyzed, record)
}

// getFromCache retrieves an analyzed product from cache. Cached values come
// back as generic JSON maps; re-marshalling restores the typed shape.
func (s *ProductService) getFromCache(ctx context.Context, key string) (*domain.AnalyzedProduct, error) {
	value, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("corrupt cache entry: %w", err)
	}
	var analyzed domain.AnalyzedProduct
	if err := json.Unmarshal(raw, &analyzed); err != nil {
		return nil, fmt.Errorf("corrupt cache entry: %w", err)
	}
	return &analyzed, nil
}

// setInCache stores an analyzed product in cache
func (s *ProductService) setInCache(ctx context.Context, key string, analyzed *domain.AnalyzedProduct) error {
	return s.cache.Set(ctx, key, analyzed, s.cacheTTL)
}
