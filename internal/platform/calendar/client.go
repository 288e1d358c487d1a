// Package calendar provides the client for the external calendar event
// provider. An event is created for a session only after the accept decision
// has committed; provider failures are recorded on the session and never
// revert the acceptance.
package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mentorhub/mentorhub-api/internal/config"
)

// defaultTimeout bounds a single provider call when no timeout is configured.
const defaultTimeout = 10 * time.Second

// ErrProvider is the sentinel wrapped by all provider-side failures so that
// callers can classify them without inspecting transport details.
var ErrProvider = errors.New("calendar: provider request failed")

// EventInput describes the event to create for an accepted session.
type EventInput struct {
	Summary     string    `json:"summary"`
	Description string    `json:"description"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Attendees   []string  `json:"attendees"`
}

// EventRef identifies an event created at the provider.
type EventRef struct {
	ID      string `json:"id"`
	HTMLURL string `json:"html_url"`
}

// Client calls the calendar provider. Implementations must be safe for
// concurrent use.
type Client interface {
	// CreateEvent creates a calendar event and returns the provider's
	// reference for it. Errors wrap ErrProvider.
	CreateEvent(ctx context.Context, input EventInput) (*EventRef, error)
}

// HTTPClient is the production Client backed by the provider's REST API.
type HTTPClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// Verify HTTPClient implements Client.
var _ Client = (*HTTPClient)(nil)

// NewHTTPClient creates a provider client from the calendar configuration.
func NewHTTPClient(cfg config.CalendarConfig) *HTTPClient {
	timeout := defaultTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}

	return &HTTPClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: timeout},
	}
}

// CreateEvent implements Client.
func (c *HTTPClient) CreateEvent(ctx context.Context, input EventInput) (*EventRef, error) {
	body, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding event: %v", ErrProvider, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/events", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", ErrProvider, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProvider, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Read a bounded amount of the body for diagnostics.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: unexpected status %d: %s", ErrProvider, resp.StatusCode, snippet)
	}

	var ref EventRef
	if err := json.NewDecoder(resp.Body).Decode(&ref); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrProvider, err)
	}
	if ref.ID == "" {
		return nil, fmt.Errorf("%w: response missing event id", ErrProvider)
	}

	return &ref, nil
}
