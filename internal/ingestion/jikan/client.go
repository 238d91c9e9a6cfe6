package jikan

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

const (
	baseURL = "https://api.jikan.moe/v4"

	// Rate limiting: Jikan allows 3 requests per second
	rateLimit = 3
	rateBurst = 5

	// Retry configuration
	maxRetries   = 3
	initialDelay = 1 * time.Second
	maxDelay     = 8 * time.Second
)

// Client handles Jikan API requests with rate limiting and retry logic.
// Everything it returns is optional enrichment data: callers must degrade
// gracefully when a call fails.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
}

// NewClient creates a new Jikan API client. An empty base falls back to the
// public endpoint.
func NewClient(base string) *Client {
	if base == "" {
		base = baseURL
	}
	return &Client{
		baseURL:     base,
		rateLimiter: rate.NewLimiter(rate.Limit(rateLimit), rateBurst),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// Search fetches anime matching a free-text title query.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]AnimeData, error) {
	params := url.Values{}
	params.Set("q", query)
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	var response AnimeListResponse
	if err := c.doRequest(ctx, "/anime", params, &response); err != nil {
		return nil, fmt.Errorf("failed to search anime: %w", err)
	}
	return response.Data, nil
}

// GetAnime fetches a single anime by its MyAnimeList id.
func (c *Client) GetAnime(ctx context.Context, externalID int64) (*AnimeData, error) {
	var response AnimeResponse
	endpoint := fmt.Sprintf("/anime/%d", externalID)
	if err := c.doRequest(ctx, endpoint, nil, &response); err != nil {
		return nil, fmt.Errorf("failed to fetch anime %d: %w", externalID, err)
	}
	return &response.Data, nil
}

// GetVideos fetches promo/trailer links for an anime by its external id.
func (c *Client) GetVideos(ctx context.Context, externalID int64) ([]PromoVideo, error) {
	var response VideosResponse
	endpoint := fmt.Sprintf("/anime/%d/videos", externalID)
	if err := c.doRequest(ctx, endpoint, nil, &response); err != nil {
		return nil, fmt.Errorf("failed to fetch videos for anime %d: %w", externalID, err)
	}
	return response.Data.Promo, nil
}

// doRequest performs an HTTP request with rate limiting and retry logic
func (c *Client) doRequest(ctx context.Context, endpoint string, params url.Values, result interface{}) error {
	fullURL := c.baseURL + endpoint
	if params != nil {
		fullURL += "?" + params.Encode()
	}

	var lastErr error
	delay := initialDelay

	for attempt := 0; attempt <= maxRetries; attempt++ {
		// Rate limit
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter error: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, "GET", fullURL, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("User-Agent", "AnimeHub/1.0")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			if attempt < maxRetries {
				log.Printf("[Jikan] Request failed (attempt %d/%d): %v, retrying in %v...",
					attempt+1, maxRetries, err, delay)
				time.Sleep(delay)
				delay = minDuration(delay*2, maxDelay)
				continue
			}
			return fmt.Errorf("request failed after %d attempts: %w", maxRetries, err)
		}

		if resp.StatusCode != http.StatusOK {
			bodyBytes, _ := io.ReadAll(resp.Body)
			resp.Body.Close()

			// Retry on rate limit or server errors
			if shouldRetry(resp.StatusCode) && attempt < maxRetries {
				lastErr = fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(bodyBytes))
				log.Printf("[Jikan] HTTP %d (attempt %d/%d), retrying in %v...",
					resp.StatusCode, attempt+1, maxRetries, delay)
				time.Sleep(delay)
				delay = minDuration(delay*2, maxDelay)
				continue
			}
			return fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(bodyBytes))
		}

		err = json.NewDecoder(resp.Body).Decode(result)
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
		return nil
	}

	return fmt.Errorf("request failed after %d attempts: %w", maxRetries, lastErr)
}

func shouldRetry(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests || statusCode >= 500
}

func minDuration(a, b time.Duration) time.Duration {
	if a < b {
		return a
	}
	return b
}
