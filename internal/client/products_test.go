package client

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/vivass/storefront/pkg/errors"
	"github.com/vivass/storefront/pkg/httpclient"

	"github.com/vivass/storefront/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testDoer() HTTPDoer {
	cfg := httpclient.DefaultConfig()
	cfg.MaxRetries = 0
	return httpclient.New(cfg)
}

const productListBody = `{
	"products": [
		{
			"id": 1,
			"name": "Платье миди",
			"slug": "plate-midi",
			"description": "Летнее платье",
			"price": 4590,
			"old_price": 5990,
			"image_url": "https://img.vivass.ru/dress-1.jpg",
			"badge": "SALE",
			"sizes": ["42", "44", "46"],
			"category": "Платья"
		},
		{
			"id": 2,
			"name": "Блуза шёлковая",
			"slug": "bluza-shelk",
			"price": 2590.50,
			"old_price": null,
			"sizes": ["44", "46"],
			"category": "Блузы"
		}
	]
}`

func TestProductsClient_List_MapsWireFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(productListBody))
	}))
	defer srv.Close()

	c := NewProductsClient(testDoer(), srv.URL, testLogger())
	products, err := c.List(context.Background(), domain.Filter{})
	require.NoError(t, err)
	require.Len(t, products, 2)

	first := products[0]
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, "Платье миди", first.Name)
	assert.Equal(t, int64(459000), first.Price, "rubles convert to kopecks")
	assert.Equal(t, int64(599000), first.OldPrice)
	assert.Equal(t, "https://img.vivass.ru/dress-1.jpg", first.ImageRef)
	assert.Equal(t, "SALE", first.Badge)
	assert.Equal(t, []string{"42", "44", "46"}, first.Sizes)

	second := products[1]
	assert.Equal(t, int64(259050), second.Price, "fractional rubles convert exactly")
	assert.Zero(t, second.OldPrice, "null old_price maps to zero")
}

func TestProductsClient_List_OmitsUnconstrainedAxes(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"products":[]}`))
	}))
	defer srv.Close()

	c := NewProductsClient(testDoer(), srv.URL, testLogger())

	tests := []struct {
		name   string
		filter domain.Filter
		want   string
	}{
		{"no filter", domain.Filter{}, ""},
		{"all sentinel both axes", domain.Filter{Category: domain.FilterAll, Size: domain.FilterAll}, ""},
		{"category only", domain.Filter{Category: "Платья", Size: domain.FilterAll}, "category=" + `%D0%9F%D0%BB%D0%B0%D1%82%D1%8C%D1%8F`},
		{"size only", domain.Filter{Category: "", Size: "46"}, "size=46"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.List(context.Background(), tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, gotQuery)
		})
	}
}

func TestProductsClient_List_BothAxesConstrained(t *testing.T) {
	var gotCategory, gotSize string
	var hasCategory, hasSize bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotCategory, hasCategory = q.Get("category"), q.Has("category")
		gotSize, hasSize = q.Get("size"), q.Has("size")
		w.Write([]byte(`{"products":[]}`))
	}))
	defer srv.Close()

	c := NewProductsClient(testDoer(), srv.URL, testLogger())
	_, err := c.List(context.Background(), domain.Filter{Category: "Туники", Size: "48"})
	require.NoError(t, err)

	assert.True(t, hasCategory)
	assert.True(t, hasSize)
	assert.Equal(t, "Туники", gotCategory)
	assert.Equal(t, "48", gotSize)
}

func TestProductsClient_List_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	}))
	defer srv.Close()

	c := NewProductsClient(testDoer(), srv.URL, testLogger())
	_, err := c.List(context.Background(), domain.Filter{})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUpstream)
}

func TestProductsClient_List_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	c := NewProductsClient(testDoer(), srv.URL, testLogger())
	_, err := c.List(context.Background(), domain.Filter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode products response")
}

func TestProductsClient_Create_SendsDecimalPrice(t *testing.T) {
	var gotBody map[string]json.RawMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/products", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":7,"name":"Костюм","slug":"kostyum","price":7990,"category":"Костюмы","sizes":["46"]}`))
	}))
	defer srv.Close()

	c := NewProductsClient(testDoer(), srv.URL, testLogger())
	product, err := c.Create(context.Background(), CreateProductInput{
		Name:     "Костюм",
		Price:    799000,
		Category: "Костюмы",
		Sizes:    []string{"46"},
	})
	require.NoError(t, err)

	// Price crosses the wire as a bare decimal literal in rubles.
	assert.Equal(t, "7990", string(gotBody["price"]))
	_, hasOldPrice := gotBody["old_price"]
	assert.False(t, hasOldPrice, "zero old_price is omitted")

	assert.Equal(t, int64(7), product.ID)
	assert.Equal(t, int64(799000), product.Price)
}

func TestProductsClient_Create_ValidationErrorFromUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":"INVALID_INPUT","message":"name is required"}}`))
	}))
	defer srv.Close()

	c := NewProductsClient(testDoer(), srv.URL, testLogger())
	_, err := c.Create(context.Background(), CreateProductInput{Name: "x", Price: 1, Category: "Платья"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.Contains(t, err.Error(), "name is required")
}
