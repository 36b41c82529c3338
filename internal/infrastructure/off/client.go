package off

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/scoremyfood/backend/internal/domain"
	"golang.org/x/time/rate"
)

// Client handles communication with the Open Food Facts API
type Client struct {
	httpClient  *http.Client
	baseURL     string
	userAgent   string
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a new Open Food Facts API client. OFF asks product
// lookups to stay under 100 req/min, so the limiter allows ~1.6 req/sec
// with a small burst.
func NewClient(baseURL, userAgent string) *Client {
	limiter := rate.NewLimiter(rate.Limit(1.6), 5)

	if userAgent == "" {
		userAgent = "ScoreMyFood/1.0"
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL:     baseURL,
		userAgent:   userAgent,
		rateLimiter: limiter,
	}
}

// SetDebug enables verbose request logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// exponentialBackoff returns the sleep duration before retry n (1-based).
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(500*(1<<(attempt-1))) * time.Millisecond
}

// offResponse is the OFF v2 product envelope: status 1 means found.
type offResponse struct {
	Status  int        `json:"status"`
	Product offProduct `json:"product"`
}

// FetchProduct looks up a barcode and maps the OFF payload to a
// domain.ProductRecord. Returns ErrProductNotFound for unknown barcodes.
func (c *Client) FetchProduct(ctx context.Context, barcode string) (*domain.ProductRecord, error) {
	if barcode == "" {
		return nil, domain.ErrInvalidRequest
	}

	reqURL := fmt.Sprintf("%s/api/v2/product/%s.json", c.baseURL, barcode)

	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("User-Agent", c.userAgent)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if c.debug {
				log.Printf("[OFF] Request error (attempt %d): %v", attempt, err)
			}
			lastErr = fmt.Errorf("%w: %v", domain.ErrOFFAPIFailure, err)
			time.Sleep(exponentialBackoff(attempt))
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode == http.StatusNotFound {
			return nil, domain.ErrProductNotFound
		}
		if resp.StatusCode != http.StatusOK {
			if c.debug {
				log.Printf("[OFF] API error (attempt %d) - Status: %d", attempt, resp.StatusCode)
			}
			lastErr = fmt.Errorf("%w: status %d", domain.ErrOFFAPIFailure, resp.StatusCode)
			time.Sleep(exponentialBackoff(attempt))
			continue
		}

		var offResp offResponse
		if err := json.Unmarshal(body, &offResp); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}

		if offResp.Status != 1 {
			if c.debug {
				log.Printf("[OFF] Product not found: %s", barcode)
			}
			return nil, domain.ErrProductNotFound
		}

		if c.debug {
			log.Printf("[OFF] Found product %s: %q", barcode, offResp.Product.Name())
		}
		return mapToProductRecord(barcode, &offResp.Product), nil
	}

	return nil, lastErr
}
