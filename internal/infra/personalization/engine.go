package infra_personalization

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/cinetrove/core/internal/config"
)

// Engine talks to the hosted personalization service. The catalog layer treats
// it as a black box that turns audience traits into variant aliases.
type Engine struct {
	httpClient *http.Client
	baseURL    string
	projectID  string
}

func New(cfg config.Personalization) *Engine {
	return &Engine{
		baseURL:   cfg.BaseURL,
		projectID: cfg.ProjectID,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (e *Engine) SetTraits(ctx context.Context, traits map[string]string) error {
	body, err := json.Marshal(map[string]any{"traits": traits})
	if err != nil {
		return fmt.Errorf("failed to encode traits: %w", err)
	}

	url := fmt.Sprintf("%s/projects/%s/traits", e.baseURL, e.projectID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("personalization responded with status %d: %s", resp.StatusCode, string(respBody))
	}

	return nil
}

type manifestResponse struct {
	Experiences []struct {
		ShortUID        string `json:"shortUid"`
		ActiveVariantID string `json:"activeVariantShortUid"`
	} `json:"experiences"`
}

// VariantAliases returns the active variant alias per experience. Experiences
// without an evaluated variant are skipped.
func (e *Engine) VariantAliases(ctx context.Context) (map[string]string, error) {
	url := fmt.Sprintf("%s/projects/%s/manifest", e.baseURL, e.projectID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("personalization responded with status %d: %s", resp.StatusCode, string(body))
	}

	var manifest manifestResponse
	if err := json.Unmarshal(body, &manifest); err != nil {
		return nil, fmt.Errorf("failed to decode manifest: %w", err)
	}

	aliases := make(map[string]string, len(manifest.Experiences))
	for _, exp := range manifest.Experiences {
		if exp.ActiveVariantID == "" {
			continue
		}
		aliases[exp.ShortUID] = fmt.Sprintf("cs_personalize_%s_%s", exp.ShortUID, exp.ActiveVariantID)
	}

	return aliases, nil
}
