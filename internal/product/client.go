package product

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Accessor defines the remote operations the rest of the application depends
// on. This interface is implemented by *Client and can be used for testing.
type Accessor interface {
	List(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id string) (Product, error)
	Create(ctx context.Context, p Product) (Product, error)
	Update(ctx context.Context, id string, p Product) (Product, error)
	Delete(ctx context.Context, id string) error
	VerifyID(ctx context.Context, id string) (bool, error)
}

// Ensure Client implements Accessor at compile time.
var _ Accessor = (*Client)(nil)

// Client talks to the product catalog HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultAPIBase   = "127.0.0.1:3002"
	defaultUserAgent = "vitrine/0.1"
	defaultTimeout   = 5 * time.Second

	productsPath = "/bp/products"
	verifyPath   = "/bp/products/verification/"
)

// NewClient builds a Client for the provided host:port or URL. A zero
// timeout uses the default.
func NewClient(apiBase string, timeout time.Duration) (*Client, error) {
	base, err := parseBaseURL(apiBase)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: timeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// List retrieves every catalog record.
func (c *Client) List(ctx context.Context) ([]Product, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	raw, err := c.do(ctx, http.MethodGet, productsPath, nil)
	if err != nil {
		return nil, err
	}
	list, err := extractList(raw)
	if err != nil {
		return nil, malformedError(err)
	}
	return list, nil
}

// GetByID retrieves a single record.
func (c *Client) GetByID(ctx context.Context, id string) (Product, error) {
	if c == nil {
		return Product{}, fmt.Errorf("client is nil")
	}
	raw, err := c.do(ctx, http.MethodGet, productsPath+"/"+id, nil)
	if err != nil {
		return Product{}, err
	}
	p, err := extractOne(raw)
	if err != nil {
		return Product{}, malformedError(err)
	}
	return p, nil
}

// Create posts a new record and returns the server's copy of it.
func (c *Client) Create(ctx context.Context, p Product) (Product, error) {
	if c == nil {
		return Product{}, fmt.Errorf("client is nil")
	}
	raw, err := c.do(ctx, http.MethodPost, productsPath, p)
	if err != nil {
		return Product{}, err
	}
	created, err := extractOne(raw)
	if err != nil {
		return Product{}, malformedError(err)
	}
	return created, nil
}

// Update replaces the record's mutable fields. The id travels in the path
// only, never in the body.
func (c *Client) Update(ctx context.Context, id string, p Product) (Product, error) {
	if c == nil {
		return Product{}, fmt.Errorf("client is nil")
	}
	raw, err := c.do(ctx, http.MethodPut, productsPath+"/"+id, updatePayload(p))
	if err != nil {
		return Product{}, err
	}
	updated, err := extractOne(raw)
	if err != nil {
		return Product{}, malformedError(err)
	}
	if updated.ID == "" {
		updated.ID = id
	}
	return updated, nil
}

// Delete removes the record.
func (c *Client) Delete(ctx context.Context, id string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	_, err := c.do(ctx, http.MethodDelete, productsPath+"/"+id, nil)
	return err
}

// VerifyID reports whether a record with the given id already exists.
func (c *Client) VerifyID(ctx context.Context, id string) (bool, error) {
	if c == nil {
		return false, fmt.Errorf("client is nil")
	}
	raw, err := c.do(ctx, http.MethodGet, verifyPath+id, nil)
	if err != nil {
		return false, err
	}
	var exists bool
	if err := json.Unmarshal(bytes.TrimSpace(raw), &exists); err != nil {
		return false, malformedError(fmt.Errorf("decode verification response: %w", err))
	}
	return exists, nil
}

// do executes one request and returns the raw response body. Failures come
// back already classified as *APIError.
func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	rel := &url.URL{Path: path}
	reqURL := c.baseURL.ResolveReference(rel)

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, connectivityError(c.baseURL.String(), err)
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, malformedError(fmt.Errorf("read response: %w", err))
	}
	if resp.StatusCode >= 400 {
		return nil, classifyStatus(resp.StatusCode, payload)
	}
	return payload, nil
}

func parseBaseURL(apiBase string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiBase)
	if trimmed == "" {
		trimmed = defaultAPIBase
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api base %q: %w", apiBase, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
