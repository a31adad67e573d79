package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/mmcdole/cinesearch/internal/domain"
	"golang.org/x/oauth2"
)

const (
	defaultTimeout = 10 * time.Second
	userAgent      = "cinesearch/1.0"

	// TMDB refuses page numbers above this, whatever total_pages says
	maxPages = 500
)

// Config holds TMDB client settings
type Config struct {
	APIKey       string
	AccessToken  string
	BaseURL      string
	ImageBaseURL string
	Language     string
	IncludeAdult bool
}

// Client implements domain.CatalogService against The Movie Database
type Client struct {
	baseURL      string
	imageBaseURL string
	apiKey       string
	language     string
	includeAdult bool
	httpClient   *http.Client
	logger       *slog.Logger
}

// NewClient creates a TMDB client. A v4 access token is sent as a bearer
// header; otherwise the v3 API key is sent as a query parameter.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	httpClient := &http.Client{Timeout: defaultTimeout}
	if cfg.AccessToken != "" {
		src := oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: cfg.AccessToken,
			TokenType:   "Bearer",
		})
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
		httpClient = oauth2.NewClient(ctx, src)
		httpClient.Timeout = defaultTimeout
	}

	return &Client{
		baseURL:      cfg.BaseURL,
		imageBaseURL: cfg.ImageBaseURL,
		apiKey:       cfg.APIKey,
		language:     cfg.Language,
		includeAdult: cfg.IncludeAdult,
		httpClient:   httpClient,
		logger:       logger,
	}
}

// doRequest performs an authenticated GET and returns the body of a 200
func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if c.apiKey != "" {
		query.Set("api_key", c.apiKey)
	}
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("tmdb request", "path", path, "query", query.Get("query"), "page", query.Get("page"))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("tmdb request failed", "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, domain.ErrUnauthorized
	}

	if resp.StatusCode != http.StatusOK {
		var status StatusResponse
		_ = json.Unmarshal(body, &status)
		c.logger.Error("tmdb request error", "status", resp.StatusCode, "message", status.StatusMessage)
		return nil, fmt.Errorf("%w: status %d %s", domain.ErrCatalogUnavailable, resp.StatusCode, status.StatusMessage)
	}

	return body, nil
}

// Search returns one page of movies matching query
func (c *Client) Search(ctx context.Context, query string, page int) (domain.ResultPage, error) {
	if page < 1 {
		page = 1
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))
	params.Set("include_adult", strconv.FormatBool(c.includeAdult))
	if c.language != "" {
		params.Set("language", c.language)
	}

	body, err := c.doRequest(ctx, "/3/search/movie", params)
	if err != nil {
		return domain.ResultPage{}, err
	}

	var resp SearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return domain.ResultPage{}, fmt.Errorf("failed to parse search results: %w", err)
	}

	return c.mapSearch(resp), nil
}

func (c *Client) mapSearch(resp SearchResponse) domain.ResultPage {
	items := make([]domain.MovieSummary, 0, len(resp.Results))
	for _, r := range resp.Results {
		items = append(items, domain.MovieSummary{
			ID:          strconv.FormatInt(r.ID, 10),
			Title:       r.Title,
			ReleaseDate: r.ReleaseDate,
			Overview:    r.Overview,
			PosterPath:  c.imageURL(r.PosterPath),
		})
	}

	return domain.ResultPage{
		Items:      items,
		TotalPages: min(resp.TotalPages, maxPages),
	}
}

// imageURL expands a poster path into a full image URL
func (c *Client) imageURL(path *string) string {
	if path == nil || *path == "" {
		return ""
	}
	return c.imageBaseURL + *path
}
