package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/pricelens/backend/internal/domain"
)

// fetchConcurrency bounds the collection fan-out so the catalog store's
// rate limits are never tripped by one request.
const fetchConcurrency = 4

// Client reads scraped product data from the catalog store API
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a new catalog store client
func NewClient(apiKey, baseURL string) *Client {
	// The store allows 10 requests/sec per key with short bursts
	limiter := rate.NewLimiter(rate.Limit(10), 20)

	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		apiKey:      apiKey,
		baseURL:     baseURL,
		rateLimiter: limiter,
	}
}

// SetDebug enables verbose request logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// doRequest executes an HTTP GET request with proper headers and error handling
func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "PriceLens/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}

	return resp, nil
}

// ListCollections returns every collection name known to the catalog store
func (c *Client) ListCollections(ctx context.Context) ([]string, error) {
	reqURL := fmt.Sprintf("%s/v1/collections?%s", c.baseURL, c.authParams().Encode())

	body, err := c.getWithRetry(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	var listResp collectionListResponse
	if err := json.Unmarshal(body, &listResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if c.debug {
		log.Printf("[CATALOG] ListCollections: %d collections", len(listResp.Collections))
	}

	return listResp.Collections, nil
}

// FetchProducts returns all product records of one collection
func (c *Client) FetchProducts(ctx context.Context, collection string) ([]domain.ProductRecord, error) {
	endpoint := fmt.Sprintf("%s/v1/collections/%s/products", c.baseURL, url.PathEscape(collection))
	reqURL := fmt.Sprintf("%s?%s", endpoint, c.authParams().Encode())

	body, err := c.getWithRetry(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	var productsResp productListResponse
	if err := json.Unmarshal(body, &productsResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if c.debug {
		log.Printf("[CATALOG] FetchProducts(%q): %d products", collection, len(productsResp.Products))
	}

	return MapProducts(collection, productsResp.Products), nil
}

// FetchCollections fetches several collections with bounded concurrency and
// merges the results in the order the collections were requested. A missing
// collection is skipped rather than failing the whole fetch.
func (c *Client) FetchCollections(ctx context.Context, collections []string) ([]domain.ProductRecord, error) {
	perCollection := make([][]domain.ProductRecord, len(collections))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchConcurrency)

	for i, collection := range collections {
		i, collection := i, collection
		g.Go(func() error {
			products, err := c.FetchProducts(gctx, collection)
			if err != nil {
				if errors.Is(err, domain.ErrCollectionNotFound) {
					log.Printf("[CATALOG] collection %q not found, skipping", collection)
					return nil
				}
				return err
			}
			mu.Lock()
			perCollection[i] = products
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := make([]domain.ProductRecord, 0)
	for _, products := range perCollection {
		merged = append(merged, products...)
	}
	return merged, nil
}

// getWithRetry executes a GET with the rate limiter and up to 3 attempts for
// transient failures. 404 maps to ErrCollectionNotFound and is not retried.
func (c *Client) getWithRetry(ctx context.Context, reqURL string) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		resp, err := c.doRequest(ctx, reqURL)
		if err != nil {
			if c.debug {
				log.Printf("[CATALOG] request error (attempt %d): %v", attempt, err)
			}
			lastErr = err
			time.Sleep(time.Duration(attempt*500) * time.Millisecond)
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			if resp.StatusCode == http.StatusNotFound {
				return nil, domain.ErrCollectionNotFound
			}
			if c.debug {
				log.Printf("[CATALOG] API error (attempt %d) - Status: %d, Body: %s", attempt, resp.StatusCode, string(body))
			}
			lastErr = fmt.Errorf("%w: status %d", domain.ErrCatalogUnavailable, resp.StatusCode)
			time.Sleep(time.Duration(attempt*500) * time.Millisecond)
			continue
		}

		return body, nil
	}

	return nil, lastErr
}

// authParams returns the query parameters every catalog request carries.
func (c *Client) authParams() url.Values {
	params := url.Values{}
	params.Add("api_key", c.apiKey)
	return params
}

// collectionListResponse is the wire shape of the collection listing.
type collectionListResponse struct {
	Collections []string `json:"collections"`
}

// productListResponse is the wire shape of a collection's product listing.
type productListResponse struct {
	Products []wireProduct `json:"products"`
}
