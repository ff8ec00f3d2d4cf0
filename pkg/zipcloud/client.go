package zipcloud

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	pkgerrors "github.com/aquaplan/aquatutor-backend/pkg/errors"
)

const (
	defaultBaseURL             = "https://zipcloud.ibsnet.co.jp"
	errorBodyReadLimit   int64 = 1024
	defaultClientTimeout       = 10 * time.Second
	postalCodeLength           = 7
)

// Client wraps the zipcloud postal code lookup API.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the configured API base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// NewClient builds the zipcloud client.
func NewClient(opts ...Option) *Client {
	client := &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultClientTimeout},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: defaultClientTimeout}
	}
	if client.baseURL == "" {
		client.baseURL = defaultBaseURL
	}

	return client
}

// Address is the resolved Japanese address for a postal code.
type Address struct {
	PostalCode string
	Prefecture string
	City       string
	Town       string
}

// NormalizePostalCode strips separators and validates the 7-digit form.
func NormalizePostalCode(raw string) (string, error) {
	cleaned := strings.NewReplacer("-", "", "ー", "", " ", "", "　", "").Replace(strings.TrimSpace(raw))
	if len(cleaned) != postalCodeLength {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "postal code must be 7 digits")
	}
	for _, r := range cleaned {
		if r < '0' || r > '9' {
			return "", pkgerrors.New(pkgerrors.CodeValidation, "postal code must be 7 digits")
		}
	}
	return cleaned, nil
}

// Lookup resolves a postal code to a prefecture/city/town triple.
func (c *Client) Lookup(ctx context.Context, postalCode string) (*Address, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "zipcloud client not configured")
	}
	normalized, err := NormalizePostalCode(postalCode)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("zipcode", normalized)
	lookupURL := fmt.Sprintf("%s/api/search?%s", strings.TrimRight(c.baseURL, "/"), query.Encode())

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, lookupURL, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build postal lookup request")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute postal lookup request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))), "postal lookup request failed")
	}

	var apiResp struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
		Results []struct {
			Address1 string `json:"address1"`
			Address2 string `json:"address2"`
			Address3 string `json:"address3"`
			Zipcode  string `json:"zipcode"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode postal lookup response")
	}

	if apiResp.Status != http.StatusOK {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("zipcloud status %d: %s", apiResp.Status, apiResp.Message), "postal lookup rejected")
	}
	if len(apiResp.Results) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no address found for postal code")
	}

	first := apiResp.Results[0]
	return &Address{
		PostalCode: normalized,
		Prefecture: first.Address1,
		City:       first.Address2,
		Town:       first.Address3,
	}, nil
}
