// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Sadiq-Teslim/ules-voting-sub000/models"
)

// maxBody bounds how much of a remote response is read.
const maxBody = 1 << 20

type Endpoints struct {
	TallyURL      string
	ValidationURL string
	// CatalogURL is an http(s) URL or a local file path.
	CatalogURL string
}

// Client talks to the validation, catalog and tally services.
type Client struct {
	http      *http.Client
	endpoints Endpoints
	validate  *validator.Validate
}

func NewClient(httpClient *http.Client, endpoints Endpoints) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		http:      httpClient,
		endpoints: endpoints,
		validate:  validator.New(),
	}
}

// Submit posts a ballot to the tally service and returns its message.
// The submission ID goes out as Idempotency-Key on every attempt.
func (c *Client) Submit(ctx context.Context, p models.SubmissionPayload) (string, error) {
	headers := map[string]string{}
	if p.SubmissionID != "" {
		headers["Idempotency-Key"] = p.SubmissionID
	}
	return c.postJSON(ctx, c.endpoints.TallyURL, p, headers)
}

// Validate asks the validation service whether the voter may vote.
func (c *Client) Validate(ctx context.Context, identity models.VoterIdentity) error {
	_, err := c.postJSON(ctx, c.endpoints.ValidationURL, identity, nil)
	return err
}

// LoadCatalog fetches and checks the category/nominee document. Any decoding
// or consistency problem is reported as ErrMalformedCatalog.
func (c *Client) LoadCatalog(ctx context.Context) (models.Catalog, error) {
	data, err := c.readCatalog(ctx)
	if err != nil {
		return models.Catalog{}, err
	}

	var catalog models.Catalog
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		err = json.Unmarshal(trimmed, &catalog.Categories)
	} else {
		err = json.Unmarshal(trimmed, &catalog)
	}
	if err != nil {
		return models.Catalog{}, fmt.Errorf("%w: %v", ErrMalformedCatalog, err)
	}

	if err := c.validate.Struct(catalog); err != nil {
		return models.Catalog{}, fmt.Errorf("%w: %v", ErrMalformedCatalog, err)
	}

	seen := make(map[string]bool, len(catalog.Categories))
	for _, cat := range catalog.Categories {
		if seen[cat.ID] {
			return models.Catalog{}, fmt.Errorf("%w: duplicate category %q", ErrMalformedCatalog, cat.ID)
		}
		seen[cat.ID] = true
	}

	return catalog, nil
}

func (c *Client) readCatalog(ctx context.Context) ([]byte, error) {
	src := c.endpoints.CatalogURL
	if !strings.HasPrefix(src, "http://") && !strings.HasPrefix(src, "https://") {
		data, err := os.ReadFile(strings.TrimPrefix(src, "file://"))
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog: %w", err)
		}
		return data, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(resp.StatusCode, body)
	}
	return body, nil
}

func (c *Client) postJSON(ctx context.Context, url string, v any, headers map[string]string) (string, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("request to %s failed: %w", url, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", statusError(resp.StatusCode, respBody)
	}

	var msg models.RemoteMessage
	_ = json.Unmarshal(respBody, &msg)
	return msg.Message, nil
}

// statusError keeps the service's message when the body carries one.
func statusError(code int, body []byte) *StatusError {
	var msg models.RemoteMessage
	_ = json.Unmarshal(body, &msg)
	return &StatusError{StatusCode: code, Message: msg.Message}
}
