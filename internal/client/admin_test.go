package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adminToken() Option {
	return WithTokenSource(func() string { return "tok-admin" })
}

func TestClient_CreateProduct(t *testing.T) {
	dir := t.TempDir()
	imgPath := filepath.Join(dir, "chair.jpg")
	require.NoError(t, os.WriteFile(imgPath, []byte("jpeg-bytes"), 0600))

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/products/", r.URL.Path)
		assert.Equal(t, "Bearer tok-admin", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Oak Chair", r.FormValue("name"))
		assert.Equal(t, "1249.5", r.FormValue("price"))
		assert.Equal(t, "12", r.FormValue("stock"))
		assert.Equal(t, "c-seating", r.FormValue("category"))
		assert.Equal(t, "Solid oak", r.FormValue("description"))

		file, header, err := r.FormFile("images")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "chair.jpg", header.Filename)
		data, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "jpeg-bytes", string(data))

		w.WriteHeader(http.StatusCreated)
	}), adminToken())

	err := c.CreateProduct(context.Background(), ProductInput{
		Name:        "Oak Chair",
		Price:       1249.5,
		Stock:       12,
		Category:    "c-seating",
		Description: "Solid oak",
		ImagePaths:  []string{imgPath},
	})
	require.NoError(t, err)
}

func TestClient_UpdateProduct(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/products/p-chair", r.URL.Path)

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Oak Chair MkII", r.FormValue("name"))
	}), adminToken())

	err := c.UpdateProduct(context.Background(), "p-chair", ProductInput{
		Name:  "Oak Chair MkII",
		Price: 1500,
	})
	require.NoError(t, err)
}

func TestClient_DeleteProduct(t *testing.T) {
	t.Run("deletes by id", func(t *testing.T) {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodDelete, r.Method)
			require.Equal(t, "/products/p-chair", r.URL.Path)
			assert.Equal(t, "Bearer tok-admin", r.Header.Get("Authorization"))
		}), adminToken())

		require.NoError(t, c.DeleteProduct(context.Background(), "p-chair"))
	})

	t.Run("surfaces a rejection", func(t *testing.T) {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusForbidden)
		}), adminToken())

		err := c.DeleteProduct(context.Background(), "p-chair")
		assert.ErrorContains(t, err, "403")
	})
}

func TestClient_Categories_Admin(t *testing.T) {
	t.Run("creates with a name payload", func(t *testing.T) {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/categories/", r.URL.Path)

			var payload map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			assert.Equal(t, "Seating", payload["name"])

			w.WriteHeader(http.StatusCreated)
		}), adminToken())

		require.NoError(t, c.CreateCategory(context.Background(), "Seating"))
	})

	t.Run("deletes by id", func(t *testing.T) {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodDelete, r.Method)
			require.Equal(t, "/categories/c-seating", r.URL.Path)
		}), adminToken())

		require.NoError(t, c.DeleteCategory(context.Background(), "c-seating"))
	})
}

func TestClient_UpdateOrderStatus(t *testing.T) {
	t.Run("lowercases the status and decodes the wrapper", func(t *testing.T) {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPut, r.Method)
			require.Equal(t, "/orders/o-1", r.URL.Path)

			var payload map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			assert.Equal(t, "shipped", payload["status"])

			w.Write([]byte(`{"order":{"_id":"o-1","status":"shipped","totalprice":2750}}`))
		}), adminToken())

		order, err := c.UpdateOrderStatus(context.Background(), "o-1", "Shipped")
		require.NoError(t, err)
		assert.Equal(t, "o-1", order.ID)
		assert.Equal(t, "shipped", order.Status)
		assert.Equal(t, float64(2750), order.TotalPrice)
	})

	t.Run("falls back when the backend returns no order", func(t *testing.T) {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		}), adminToken())

		order, err := c.UpdateOrderStatus(context.Background(), "o-2", "Delivered")
		require.NoError(t, err)
		assert.Equal(t, "o-2", order.ID)
		assert.Equal(t, "delivered", order.Status)
	})
}
