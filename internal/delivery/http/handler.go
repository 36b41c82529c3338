package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/scoremyfood/backend/internal/domain"
	"github.com/scoremyfood/backend/internal/scoring"
	"github.com/scoremyfood/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	products *usecase.ProductService
	engine   *scoring.Engine
}

// NewHandler creates a new HTTP handler
func NewHandler(products *usecase.ProductService, engine *scoring.Engine) *Handler {
	return &Handler{
		products: products,
		engine:   engine,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "scoremyfood-backend",
		"version": "1.0.0",
	})
}

// GetProduct handles GET /api/v1/product/:barcode - looks up OpenFoodFacts
// and returns the score-annotated analysis.
func (h *Handler) GetProduct(c *gin.Context) {
	barcode := c.Param("barcode")

	analyzed, err := h.products.LookupBarcode(c.Request.Context(), barcode)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidRequest):
			c.JSON(http.StatusBadRequest, gin.H{"error": "barcode is required"})
		case errors.Is(err, domain.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": "product lookup failed"})
		}
		return
	}

	c.JSON(http.StatusOK, analyzed)
}

// analyzeTextRequest is the POST /api/v1/analyze/text payload.
type analyzeTextRequest struct {
	IngredientsText string `json:"ingredients_text" binding:"required"`
	Name            string `json:"name,omitempty"`
	Brand           string `json:"brand,omitempty"`
}

// AnalyzeText handles POST /api/v1/analyze/text - scores an
// already-extracted ingredient list without nutrition data.
func (h *Handler) AnalyzeText(c *gin.Context) {
	var req analyzeTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ingredients_text is required"})
		return
	}

	analyzed, err := h.products.AnalyzeText(c.Request.Context(), req.Name, req.Brand, req.IngredientsText)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ingredients_text is required"})
		return
	}

	c.JSON(http.StatusOK, analyzed)
}

// ScoringConfig handles GET /debug/scoring-config - read-only view of the
// live scoring configuration for tuning tools. Not mounted in production.
func (h *Handler) ScoringConfig(c *gin.Context) {
	cfg := h.engine.Config()
	c.JSON(http.StatusOK, gin.H{
		"version":        cfg.Version,
		"weights":        cfg.Weights,
		"solid":          cfg.Solid,
		"beverage":       cfg.Beverage,
		"trans_fat":      cfg.TransFat,
		"fvnl_tiers":     cfg.FVNL,
		"processing_cap": cfg.ProcessingCap,
		"additive_cap":   cfg.AdditiveCap,
		"risk_penalties": cfg.RiskPenalties,
		"code_penalties": cfg.CodePenalties,
		"nova_penalties": cfg.NovaPenalties,
		"flags":          cfg.Flags,
		"micronutrients": cfg.Micro,
		"max_notes":      cfg.MaxNotes,
	})
}
