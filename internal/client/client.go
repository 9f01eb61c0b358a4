// Package client is the REST client for the Canton Store backend. It owns
// the network round-trips the state engines deliberately do not perform:
// authentication, catalog reads, and order submission. Tokens obtained here
// are handed to the session engine verbatim; the client never interprets
// claims or makes authorization decisions.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"github.com/gregjones/httpcache"
	"github.com/rs/zerolog/log"

	"github.com/iahmedd-k/Canton-Store/internal/catalog"
)

// submitMaxTries bounds order submission retries on transient failures.
const submitMaxTries = 4

// Client talks to the storefront backend.
type Client struct {
	baseURL string
	httpc   *http.Client
	cached  *http.Client
	token   func() string
}

// Option configures a Client.
type Option func(*Client)

// WithTokenSource supplies the bearer token attached to authenticated
// requests. Typically wired to the session engine's Token accessor.
func WithTokenSource(fn func() string) Option {
	return func(c *Client) {
		c.token = fn
	}
}

// New creates a backend client. Catalog reads go through an in-memory
// HTTP response cache; everything else uses a plain client.
func New(cfg Config, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpc:   &http.Client{Timeout: cfg.Timeout},
		cached: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: httpcache.NewTransport(httpcache.NewMemoryCache()),
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// loginResponse tolerates the token and user id shapes the backend has
// returned over time.
type loginResponse struct {
	Token        string `json:"token"`
	AccessToken  string `json:"accessToken"`
	AccessToken2 string `json:"access_token"`
	UserID       string `json:"userId"`
	ID           string `json:"id"`
	MongoID      string `json:"_id"`
	User         struct {
		ID      string `json:"id"`
		MongoID string `json:"_id"`
	} `json:"user"`
}

func (r loginResponse) token() string {
	return firstNonEmpty(r.Token, r.AccessToken, r.AccessToken2)
}

func (r loginResponse) userID() string {
	return firstNonEmpty(r.User.ID, r.User.MongoID, r.UserID, r.ID, r.MongoID)
}

// Login exchanges credentials for a bearer token and user id.
func (c *Client) Login(ctx context.Context, email, password string) (string, string, error) {
	return c.authRequest(ctx, "/users/login", map[string]string{
		"email":    email,
		"password": password,
	})
}

// Register creates an account and returns the same token pair as Login.
func (c *Client) Register(ctx context.Context, name, email, password string) (string, string, error) {
	return c.authRequest(ctx, "/users/signup", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
}

func (c *Client) authRequest(ctx context.Context, path string, payload map[string]string) (string, string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal credentials: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return "", "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("auth request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", "", fmt.Errorf("auth request failed: %s", resp.Status)
	}

	var out loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", "", fmt.Errorf("failed to parse auth response: %w", err)
	}

	token, userID := out.token(), out.userID()
	if token == "" || userID == "" {
		return "", "", errors.New("auth response missing token or user id")
	}

	return token, userID, nil
}

// Products fetches the catalog. Responses are served through the HTTP cache
// when the backend sends cache headers.
func (c *Client) Products(ctx context.Context) ([]catalog.Product, error) {
	var raw json.RawMessage
	if err := c.getJSON(ctx, c.cached, "/products/", &raw); err != nil {
		return nil, err
	}

	// The backend has returned both a bare array and a {products: []} wrapper.
	var products []catalog.Product
	if err := json.Unmarshal(raw, &products); err == nil {
		return products, nil
	}

	var wrapped struct {
		Products []catalog.Product `json:"products"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("failed to parse products response: %w", err)
	}

	return wrapped.Products, nil
}

// Product fetches one catalog entry by id, tolerating both the wrapped
// {product: {...}} and bare object response shapes.
func (c *Client) Product(ctx context.Context, id string) (catalog.Product, error) {
	if id == "" {
		return catalog.Product{}, errors.New("product id is required")
	}

	var raw json.RawMessage
	if err := c.getJSON(ctx, c.cached, "/products/"+id, &raw); err != nil {
		return catalog.Product{}, err
	}

	var wrapped struct {
		Product *catalog.Product `json:"product"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Product != nil && wrapped.Product.ID != "" {
		return *wrapped.Product, nil
	}

	var product catalog.Product
	if err := json.Unmarshal(raw, &product); err != nil {
		return catalog.Product{}, fmt.Errorf("failed to parse product response: %w", err)
	}
	if product.ID == "" {
		return catalog.Product{}, errors.New("product response missing id")
	}

	return product, nil
}

// Reviews fetches the reviews for a product.
func (c *Client) Reviews(ctx context.Context, productID string) ([]catalog.Review, error) {
	var out struct {
		Reviews []catalog.Review `json:"reviews"`
	}
	if err := c.getJSON(ctx, c.httpc, "/products/"+productID+"/reviews", &out); err != nil {
		return nil, err
	}

	return out.Reviews, nil
}

// ReviewInput is a new review as collected from the shopper.
type ReviewInput struct {
	Rating  int
	Comment string
	Name    string
	Email   string
}

// SubmitReview posts a review for a product and returns the stored review.
func (c *Client) SubmitReview(ctx context.Context, productID string, review ReviewInput) (catalog.Review, error) {
	payload := map[string]any{
		"rating":    review.Rating,
		"comment":   review.Comment,
		"name":      review.Name,
		"email":     review.Email,
		"productId": productID,
	}

	var out struct {
		Review catalog.Review `json:"review"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/products/"+productID+"/reviews", payload, &out); err != nil {
		return catalog.Review{}, fmt.Errorf("failed to submit review: %w", err)
	}

	return out.Review, nil
}

// Categories fetches the category listing through the same cache.
func (c *Client) Categories(ctx context.Context) ([]catalog.Category, error) {
	var categories []catalog.Category
	if err := c.getJSON(ctx, c.cached, "/categories/", &categories); err != nil {
		return nil, err
	}

	return categories, nil
}

// Order is one entry from the order history endpoint.
type Order struct {
	ID         string  `json:"_id"`
	TotalPrice float64 `json:"totalprice"`
	Status     string  `json:"status"`
	CreatedAt  string  `json:"createdAt"`
}

// Orders fetches the caller's order history. Requires a token source.
// The endpoint has returned both a bare array and an {orders: []} wrapper.
func (c *Client) Orders(ctx context.Context) ([]Order, error) {
	var raw json.RawMessage
	if err := c.getJSON(ctx, c.httpc, "/orders/", &raw); err != nil {
		return nil, err
	}

	var orders []Order
	if err := json.Unmarshal(raw, &orders); err == nil {
		return orders, nil
	}

	var wrapped struct {
		Orders []Order `json:"orders"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("failed to parse orders response: %w", err)
	}

	return wrapped.Orders, nil
}

// SubmitOrder posts an order, retrying transient failures with exponential
// backoff. The idempotency key makes the retries safe on the backend side.
// Returns the created order id.
func (c *Client) SubmitOrder(ctx context.Context, order OrderRequest) (string, error) {
	body, err := json.Marshal(order)
	if err != nil {
		return "", fmt.Errorf("failed to marshal order: %w", err)
	}

	key := uuid.NewString()

	operation := func() (string, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewReader(body))
		if err != nil {
			return "", backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Idempotency-Key", key)
		c.authorize(req)

		resp, err := c.httpc.Do(req)
		if err != nil {
			log.Debug().Err(err).Msg("order submission failed, will retry")
			return "", err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= http.StatusInternalServerError {
			log.Debug().Str("status", resp.Status).Msg("order submission failed, will retry")
			return "", fmt.Errorf("order submission failed: %s", resp.Status)
		}
		if resp.StatusCode >= http.StatusMultipleChoices {
			return "", backoff.Permanent(fmt.Errorf("order rejected: %s", resp.Status))
		}

		var out struct {
			ID string `json:"_id"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return "", backoff.Permanent(fmt.Errorf("failed to parse order response: %w", err))
		}
		if out.ID == "" {
			return "", backoff.Permanent(errors.New("order response missing id"))
		}

		return out.ID, nil
	}

	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(submitMaxTries))
}

func (c *Client) getJSON(ctx context.Context, httpc *http.Client, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	c.authorize(req)

	resp, err := httpc.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("request failed: %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	return nil
}

// doJSON issues a JSON-bodied request with the bearer token attached and
// decodes the response into out when out is non-nil.
func (c *Client) doJSON(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.authorize(req)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("request failed: %s", resp.Status)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	return nil
}

func (c *Client) authorize(req *http.Request) {
	if c.token == nil {
		return
	}
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
