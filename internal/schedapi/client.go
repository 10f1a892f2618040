// Package schedapi provides an HTTP client for the barber scheduling API.
// It covers the three calls the booking flow depends on: the provider
// directory, per-day availability, and appointment creation.
package schedapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/chairtime/booking-flow/internal/session"
	"github.com/chairtime/booking-flow/pkg/logging"
)

const defaultTimeout = 20 * time.Second

// Provider is a bookable professional as returned by the directory endpoint.
type Provider struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

// AvailabilitySlot is one hour of a provider's day. Hour is in [0,23];
// the server guarantees unique hours per day but no ordering.
type AvailabilitySlot struct {
	Hour      int  `json:"hour"`
	Available bool `json:"available"`
}

// Appointment is the created-booking payload. Only Date is consumed by
// the booking flow; the rest is carried for completeness.
type Appointment struct {
	ID         string    `json:"id"`
	ProviderID string    `json:"provider_id"`
	Date       time.Time `json:"date"`
}

// Client is a scheduling API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     session.TokenSource
	logger     *logging.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the transport timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient creates a scheduling API client. The token source supplies the
// bearer credential on every call; pass session.Anonymous() for unauthenticated
// use against a local demo server.
func NewClient(baseURL string, tokens session.TokenSource, logger *logging.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = logging.Default()
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		tokens: tokens,
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListProviders fetches the full provider directory. The list is returned
// wholesale; there is no pagination.
func (c *Client) ListProviders(ctx context.Context) ([]Provider, error) {
	var out []Provider
	if err := c.get(ctx, "/providers/", nil, &out); err != nil {
		return nil, fmt.Errorf("schedapi: list providers: %w", err)
	}
	return out, nil
}

// DailyAvailability fetches the per-hour slots for a provider on the local
// calendar day of date. The time of day is ignored.
func (c *Client) DailyAvailability(ctx context.Context, providerID string, date time.Time) ([]AvailabilitySlot, error) {
	if strings.TrimSpace(providerID) == "" {
		return nil, fmt.Errorf("schedapi: daily availability: empty provider id")
	}
	q := url.Values{}
	q.Set("year", strconv.Itoa(date.Year()))
	q.Set("month", strconv.Itoa(int(date.Month())))
	q.Set("day", strconv.Itoa(date.Day()))

	var out []AvailabilitySlot
	path := "/providers/" + url.PathEscape(providerID) + "/daily-availability"
	if err := c.get(ctx, path, q, &out); err != nil {
		return nil, fmt.Errorf("schedapi: daily availability: %w", err)
	}
	return out, nil
}

// CreateAppointment performs the single booking write. The instant is sent
// as RFC 3339; the server's persisted value is not read back.
func (c *Client) CreateAppointment(ctx context.Context, providerID string, at time.Time) (*Appointment, error) {
	if strings.TrimSpace(providerID) == "" {
		return nil, fmt.Errorf("schedapi: create appointment: empty provider id")
	}
	body := map[string]string{
		"provider_id": providerID,
		"date":        at.Format(time.RFC3339),
	}
	var out Appointment
	if err := c.post(ctx, "/appointments", body, &out); err != nil {
		return nil, fmt.Errorf("schedapi: create appointment: %w", err)
	}
	return &out, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body interface{}, out interface{}) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	if c.tokens != nil {
		token, err := c.tokens.Token(req.Context())
		if err != nil {
			return fmt.Errorf("session token: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := string(respBody)
		if len(msg) > 300 {
			msg = msg[:300]
		}
		return fmt.Errorf("status %d: %s", resp.StatusCode, msg)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}
