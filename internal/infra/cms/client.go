package infra_cms

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"

	"github.com/cinetrove/core/internal/config"
	"github.com/cinetrove/core/internal/model"
)

const (
	contentTypeMovie       = "movie"
	contentTypeGenre       = "genre"
	contentTypeDirector    = "director"
	contentTypeActor       = "actor"
	contentTypeReview      = "reviewnew"
	contentTypeAppSettings = "app_settings"

	variantHeader = "x-cs-variant-uid"
)

// Client is a read-mostly client for the headless CMS delivery API. Every
// content type is exposed as a filterable entry collection; reference fields
// are hydrated server-side via include[] parameters.
type Client struct {
	httpClient *http.Client
	cfg        config.CMS
	logger     *slog.Logger
}

type ClientOption func(*Client)

func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func New(cfg config.CMS, opts ...ClientOption) *Client {
	c := &Client{
		cfg:    cfg,
		logger: slog.Default(),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Validate reports whether required credentials are present. The catalog store
// calls this before the first fetch of a bulk load.
func (c *Client) Validate() error {
	return c.cfg.Validate()
}

type entriesQuery struct {
	contentType string
	where       map[string]any
	include     []string
	selector    string
}

type entriesEnvelope struct {
	Entries json.RawMessage `json:"entries"`
}

// entries runs one delivery query and decodes the entry list into out.
// A zero-result query decodes into an empty slice, not an error.
func (c *Client) entries(ctx context.Context, q entriesQuery, out any) error {
	endpoint := fmt.Sprintf("%s/v3/content_types/%s/entries", c.cfg.BaseURL, q.contentType)

	params := url.Values{}
	params.Set("environment", c.cfg.Environment)
	if len(q.where) > 0 {
		filter, err := json.Marshal(q.where)
		if err != nil {
			return fmt.Errorf("failed to encode query filter: %w", err)
		}
		params.Set("query", string(filter))
	}
	for _, ref := range q.include {
		params.Add("include[]", ref)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	c.setAuthHeaders(req)
	// An empty selector must behave exactly like an unpersonalized request,
	// so the header is only attached when variants are active.
	if q.selector != "" {
		req.Header.Set(variantHeader, q.selector)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("cms responded with status %d: %s", resp.StatusCode, string(body))
	}

	var envelope entriesEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if len(envelope.Entries) == 0 {
		return nil
	}
	if err := json.Unmarshal(envelope.Entries, out); err != nil {
		return fmt.Errorf("failed to decode entries: %w", err)
	}

	return nil
}

func (c *Client) setAuthHeaders(req *http.Request) {
	req.Header.Set("api_key", c.cfg.APIKey)
	req.Header.Set("access_token", c.cfg.DeliveryToken)
	req.Header.Set("Content-Type", "application/json")
}

func (c *Client) Movies(ctx context.Context, selector string) ([]model.Movie, error) {
	var entries []movieEntry
	err := c.entries(ctx, entriesQuery{
		contentType: contentTypeMovie,
		include:     []string{"genres", "directors"},
		selector:    selector,
	}, &entries)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch movies: %w", err)
	}

	movies := make([]model.Movie, 0, len(entries))
	for _, e := range entries {
		movies = append(movies, e.ToDomain())
	}
	return movies, nil
}

func (c *Client) Genres(ctx context.Context, selector string) ([]model.Genre, error) {
	var entries []genreEntry
	err := c.entries(ctx, entriesQuery{
		contentType: contentTypeGenre,
		selector:    selector,
	}, &entries)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch genres: %w", err)
	}

	genres := make([]model.Genre, 0, len(entries))
	for _, e := range entries {
		genres = append(genres, e.ToDomain())
	}
	return genres, nil
}

func (c *Client) Directors(ctx context.Context, selector string) ([]model.Director, error) {
	var entries []directorEntry
	err := c.entries(ctx, entriesQuery{
		contentType: contentTypeDirector,
		selector:    selector,
	}, &entries)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch directors: %w", err)
	}

	directors := make([]model.Director, 0, len(entries))
	for _, e := range entries {
		directors = append(directors, e.ToDomain())
	}
	return directors, nil
}

func (c *Client) Actors(ctx context.Context, selector string) ([]model.Actor, error) {
	var entries []actorEntry
	err := c.entries(ctx, entriesQuery{
		contentType: contentTypeActor,
		// Filmography credits reference movies one level down inside a group field.
		include:  []string{"filmography.movie"},
		selector: selector,
	}, &entries)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch actors: %w", err)
	}

	actors := make([]model.Actor, 0, len(entries))
	for _, e := range entries {
		actors = append(actors, e.ToDomain())
	}
	return actors, nil
}

func (c *Client) Reviews(ctx context.Context, selector string) ([]model.Review, error) {
	var entries []reviewEntry
	err := c.entries(ctx, entriesQuery{
		contentType: contentTypeReview,
		selector:    selector,
	}, &entries)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reviews: %w", err)
	}

	reviews := make([]model.Review, 0, len(entries))
	for _, e := range entries {
		reviews = append(reviews, e.ToDomain())
	}
	return reviews, nil
}

func (c *Client) Settings(ctx context.Context, selector string) (*model.AppSettings, error) {
	var entries []appSettingsEntry
	err := c.entries(ctx, entriesQuery{
		contentType: contentTypeAppSettings,
		selector:    selector,
	}, &entries)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch app settings: %w", err)
	}
	if len(entries) == 0 {
		return nil, nil
	}

	settings := entries[0].ToDomain()
	return &settings, nil
}

// CreateReview pushes a locally authored review to the CMS create endpoint.
// The overlay store has already persisted it; this call is best-effort.
func (c *Client) CreateReview(ctx context.Context, review model.Review) error {
	endpoint := fmt.Sprintf("%s/v3/content_types/%s/entries?environment=%s",
		c.cfg.BaseURL, contentTypeReview, url.QueryEscape(c.cfg.Environment))

	payload := map[string]any{
		"entry": FromDomainReview(review),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode review: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	c.setAuthHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("cms responded with status %d: %s", resp.StatusCode, string(respBody))
	}

	return nil
}
