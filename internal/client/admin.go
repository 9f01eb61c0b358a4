package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Admin operations for the dashboard. Every call carries the bearer token
// and the backend re-authorizes it; the session engine's IsAdmin is only a
// UI gate in front of these.

// ProductInput is the product create/update form. ImagePaths are local files
// uploaded as multipart parts, matching the dashboard's form submission.
type ProductInput struct {
	Name        string
	Price       float64
	Stock       int
	Category    string
	Description string
	ImagePaths  []string
}

// CreateProduct adds a product to the catalog.
func (c *Client) CreateProduct(ctx context.Context, in ProductInput) error {
	return c.submitProductForm(ctx, http.MethodPost, "/products/", in)
}

// UpdateProduct replaces the product's details.
func (c *Client) UpdateProduct(ctx context.Context, id string, in ProductInput) error {
	return c.submitProductForm(ctx, http.MethodPut, "/products/"+id, in)
}

// DeleteProduct removes a product from the catalog.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	if err := c.doJSON(ctx, http.MethodDelete, "/products/"+id, nil, nil); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

// CreateCategory adds a category.
func (c *Client) CreateCategory(ctx context.Context, name string) error {
	payload := map[string]string{"name": name}
	if err := c.doJSON(ctx, http.MethodPost, "/categories/", payload, nil); err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// DeleteCategory removes a category.
func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	if err := c.doJSON(ctx, http.MethodDelete, "/categories/"+id, nil, nil); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}

// UpdateOrderStatus sets an order's status. The backend stores statuses
// lowercase. Returns the updated order when the backend echoes it back.
func (c *Client) UpdateOrderStatus(ctx context.Context, id, status string) (Order, error) {
	payload := map[string]string{"status": strings.ToLower(status)}

	var out struct {
		Order *Order `json:"order"`
	}
	if err := c.doJSON(ctx, http.MethodPut, "/orders/"+id, payload, &out); err != nil {
		return Order{}, fmt.Errorf("failed to update order status: %w", err)
	}

	if out.Order != nil {
		return *out.Order, nil
	}

	return Order{ID: id, Status: strings.ToLower(status)}, nil
}

func (c *Client) submitProductForm(ctx context.Context, method, path string, in ProductInput) error {
	body, contentType, err := encodeProductForm(in)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)
	c.authorize(req)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("product request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("product request failed: %s", resp.Status)
	}

	return nil
}

func encodeProductForm(in ProductInput) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"name":        in.Name,
		"price":       strconv.FormatFloat(in.Price, 'f', -1, 64),
		"stock":       strconv.Itoa(in.Stock),
		"category":    in.Category,
		"description": in.Description,
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("failed to encode product form: %w", err)
		}
	}

	for _, path := range in.ImagePaths {
		if err := attachImage(w, path); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to encode product form: %w", err)
	}

	return &buf, w.FormDataContentType(), nil
}

func attachImage(w *multipart.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to read image: %w", err)
	}
	defer f.Close()

	part, err := w.CreateFormFile("images", filepath.Base(path))
	if err != nil {
		return fmt.Errorf("failed to encode product form: %w", err)
	}

	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("failed to encode product form: %w", err)
	}

	return nil
}
