package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vivass/storefront/internal/domain"
)

func addDress(t *testing.T, env *testEnv, size string) *http.Response {
	t.Helper()

	return env.do(t, http.MethodPost, "/api/v1/cart/items", jsonBody(t, map[string]any{
		"product_id": 1,
		"size":       size,
		"name":       "Платье \"Элегант\"",
		"unit_price": 499000,
	}))
}

func TestGetCart_IssuesSessionCookie(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodGet, "/api/v1/cart", nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var sessionCookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == SessionCookieName {
			sessionCookie = c
		}
	}
	require.NotNil(t, sessionCookie, "first request must set the session cookie")
	assert.True(t, sessionCookie.HttpOnly)
	assert.NotEmpty(t, sessionCookie.Value)

	cart := decodeData[domain.Cart](t, resp)
	assert.Empty(t, cart.Lines)
	assert.Equal(t, "RUB", cart.Currency)
}

func TestCart_SessionCookieIsStable(t *testing.T) {
	env := newTestEnv(t)

	first := env.do(t, http.MethodGet, "/api/v1/cart", nil)
	require.Equal(t, http.StatusOK, first.StatusCode)
	require.NotEmpty(t, first.Cookies())

	// The jar replays the cookie; the server must not issue a new one.
	second := env.do(t, http.MethodGet, "/api/v1/cart", nil)
	require.Equal(t, http.StatusOK, second.StatusCode)
	for _, c := range second.Cookies() {
		assert.NotEqual(t, SessionCookieName, c.Name)
	}
}

func TestAddItem_ThenGetCart(t *testing.T) {
	env := newTestEnv(t)

	resp := addDress(t, env, "M")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cart := decodeData[domain.Cart](t, resp)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 1, cart.Lines[0].Quantity)

	resp = env.do(t, http.MethodGet, "/api/v1/cart", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cart = decodeData[domain.Cart](t, resp)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, int64(499000), cart.Total())
}

func TestAddItem_SameIdentityMerges(t *testing.T) {
	env := newTestEnv(t)

	addDress(t, env, "M")
	resp := addDress(t, env, "M")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cart := decodeData[domain.Cart](t, resp)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 2, cart.Lines[0].Quantity)
}

func TestAddItem_DifferentSizeIsSeparateLine(t *testing.T) {
	env := newTestEnv(t)

	addDress(t, env, "M")
	resp := addDress(t, env, "L")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cart := decodeData[domain.Cart](t, resp)
	assert.Len(t, cart.Lines, 2)
}

func TestAddItem_ValidationError(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/api/v1/cart/items", jsonBody(t, map[string]any{
		"product_id": 0,
		"name":       "",
	}))

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestChangeQuantity_Delta(t *testing.T) {
	env := newTestEnv(t)
	addDress(t, env, "M")

	resp := env.do(t, http.MethodPut, "/api/v1/cart/items/1/quantity?size=M",
		jsonBody(t, map[string]int{"delta": 2}))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cart := decodeData[domain.Cart](t, resp)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 3, cart.Lines[0].Quantity)
}

func TestChangeQuantity_NegativeDeltaRemovesLine(t *testing.T) {
	env := newTestEnv(t)
	addDress(t, env, "M")

	resp := env.do(t, http.MethodPut, "/api/v1/cart/items/1/quantity?size=M",
		jsonBody(t, map[string]int{"delta": -1}))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cart := decodeData[domain.Cart](t, resp)
	assert.Empty(t, cart.Lines)
}

func TestChangeQuantity_UnknownLineIs404(t *testing.T) {
	env := newTestEnv(t)
	addDress(t, env, "M")

	resp := env.do(t, http.MethodPut, "/api/v1/cart/items/99/quantity?size=M",
		jsonBody(t, map[string]int{"delta": 1}))

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRemoveItem(t *testing.T) {
	env := newTestEnv(t)
	addDress(t, env, "M")
	addDress(t, env, "L")

	resp := env.do(t, http.MethodDelete, "/api/v1/cart/items/1?size=M", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cart := decodeData[domain.Cart](t, resp)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, "L", cart.Lines[0].Size)
}

func TestClearCart(t *testing.T) {
	env := newTestEnv(t)
	addDress(t, env, "M")

	resp := env.do(t, http.MethodDelete, "/api/v1/cart", nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/v1/cart", nil)
	cart := decodeData[domain.Cart](t, resp)
	assert.Empty(t, cart.Lines)
}

func TestCheckout_NotImplemented(t *testing.T) {
	env := newTestEnv(t)
	addDress(t, env, "M")

	resp := env.do(t, http.MethodPost, "/api/v1/cart/checkout", nil)
	assert.Equal(t, http.StatusNotImplemented, resp.StatusCode)

	// The cart is untouched by the stub.
	resp = env.do(t, http.MethodGet, "/api/v1/cart", nil)
	cart := decodeData[domain.Cart](t, resp)
	assert.Len(t, cart.Lines, 1)
}

func TestContentType_Enforced(t *testing.T) {
	env := newTestEnv(t)

	req, err := http.NewRequest(http.MethodPost, env.server.URL+"/api/v1/cart/items",
		jsonBody(t, map[string]any{"product_id": 1, "name": "x", "unit_price": 100}))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "text/plain")

	resp, err := env.client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)
}
