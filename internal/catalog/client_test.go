package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toyshop/internal/domain"
)

func TestGetByID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/products/p1", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":"p1","name":"Wooden Train","slug":"wooden-train","price":500,"salePrice":450,"images":["train.jpg"],"inStock":true}`))
	}))
	defer srv.Close()

	product, err := New(srv.URL).GetByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "Wooden Train", product.Name)
	assert.Equal(t, int64(450), product.SalePrice)
	assert.Equal(t, "train.jpg", product.Image())
}

func TestGetByIDNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := New(srv.URL).GetByID(context.Background(), "ghost")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestGetBySlug(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/products/slug/plush-bear", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":"p2","name":"Plush Bear","slug":"plush-bear","price":250}`))
	}))
	defer srv.Close()

	product, err := New(srv.URL).GetBySlug(context.Background(), "plush-bear")
	require.NoError(t, err)
	assert.Equal(t, "p2", product.ID)
	assert.Empty(t, product.Image())
}

func TestGetByIDUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := New(srv.URL).GetByID(context.Background(), "p1")
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrNotFound))
}
