package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noormodest/storefront-backend/api/middleware"
	cartsvc "github.com/noormodest/storefront-backend/internal/cart"
	"github.com/noormodest/storefront-backend/internal/catalog"
	checkoutsvc "github.com/noormodest/storefront-backend/internal/checkout"
	wishlistsvc "github.com/noormodest/storefront-backend/internal/wishlist"
	"github.com/noormodest/storefront-backend/pkg/blobstore"
	"github.com/noormodest/storefront-backend/pkg/config"
)

func testRouter(t *testing.T) http.Handler {
	t.Helper()

	store, err := blobstore.NewSQLite(context.Background(), config.StorageConfig{
		Driver:     config.StorageDriverSQLite,
		SQLitePath: fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()),
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})

	cfg := &config.Config{
		App:  config.AppConfig{Env: config.AppEnvDev, Port: "8080"},
		CORS: config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
		Cart: config.CartConfig{MaxQtyPerLine: 5},
		Checkout: config.CheckoutConfig{
			FlatShippingPaise:          9900,
			FreeShippingThresholdPaise: 99900,
			TaxRateBasisPoints:         1800,
		},
	}

	cat := catalog.Default()
	cartMgr, err := cartsvc.NewManager(store, cfg.Cart.MaxQtyPerLine, nil)
	require.NoError(t, err)
	wishlistMgr, err := wishlistsvc.NewManager(store, nil)
	require.NoError(t, err)
	checkoutSvc, err := checkoutsvc.NewService(store, cfg.Checkout, nil)
	require.NoError(t, err)

	return NewRouter(cfg, nil, store, cat, cartMgr, wishlistMgr, checkoutSvc)
}

func doJSON(t *testing.T, router http.Handler, method, path, sessionID string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sessionID != "" {
		req.Header.Set(middleware.SessionIDHeader, sessionID)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var envelope struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope.Data
}

func TestHealthEndpoints(t *testing.T) {
	t.Parallel()

	router := testRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/health/live", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/health/ready", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProductListAndFilters(t *testing.T) {
	t.Parallel()

	router := testRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/products", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeData(t, rec)
	assert.GreaterOrEqual(t, data["count"].(float64), float64(100))

	// Category scope plus a degenerate price range yields an empty list.
	rec = doJSON(t, router, http.MethodGet, "/api/v1/products?category=abayas&price_min=0&price_max=0", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data = decodeData(t, rec)
	assert.Zero(t, data["count"].(float64))

	// Unknown category is empty, not an error.
	rec = doJSON(t, router, http.MethodGet, "/api/v1/products?category=no-such-category", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data = decodeData(t, rec)
	assert.Zero(t, data["count"].(float64))

	// Unknown sort key is rejected.
	rec = doJSON(t, router, http.MethodGet, "/api/v1/products?sort=bogus", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Non-numeric price bound is rejected.
	rec = doJSON(t, router, http.MethodGet, "/api/v1/products?price_min=abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProductDetail(t *testing.T) {
	t.Parallel()

	router := testRouter(t)
	first := catalog.Default().All()[0]

	rec := doJSON(t, router, http.MethodGet, "/api/v1/products/"+first.Slug, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeData(t, rec)
	assert.Equal(t, first.ID, data["id"])

	rec = doJSON(t, router, http.MethodGet, "/api/v1/products/no-such-slug", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListCategories(t *testing.T) {
	t.Parallel()

	router := testRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/categories", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeData(t, rec)
	assert.Equal(t, float64(4), data["count"])
}

func TestCategoryFacets(t *testing.T) {
	t.Parallel()

	router := testRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/categories/abayas/facets", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeData(t, rec)
	assert.NotEmpty(t, data["sizes"])
	assert.NotEmpty(t, data["colors"])
	assert.NotEmpty(t, data["fabrics"])
}

func TestCollections(t *testing.T) {
	t.Parallel()

	router := testRouter(t)

	for _, path := range []string{
		"/api/v1/collections/featured",
		"/api/v1/collections/new-arrivals",
		"/api/v1/collections/sale",
	} {
		rec := doJSON(t, router, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestCartFlow(t *testing.T) {
	t.Parallel()

	router := testRouter(t)
	cat := catalog.Default()

	var product catalog.Product
	for _, p := range cat.All() {
		if p.InStock {
			product = p
			break
		}
	}
	require.NotEmpty(t, product.ID)

	// First touch mints a session id.
	rec := doJSON(t, router, http.MethodGet, "/api/v1/cart", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	sessionID := rec.Header().Get(middleware.SessionIDHeader)
	require.NotEmpty(t, sessionID)

	add := map[string]any{
		"product_id": product.ID,
		"color":      product.Colors[0].Name,
		"size":       product.Sizes[0],
		"quantity":   1,
	}
	rec = doJSON(t, router, http.MethodPost, "/api/v1/cart", sessionID, add)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), decodeData(t, rec)["item_count"])

	// Same variant merges.
	add["quantity"] = 2
	rec = doJSON(t, router, http.MethodPost, "/api/v1/cart", sessionID, add)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(3), decodeData(t, rec)["item_count"])

	// Update to zero empties the cart.
	update := map[string]any{
		"product_id": product.ID,
		"color":      product.Colors[0].Name,
		"size":       product.Sizes[0],
		"quantity":   0,
	}
	rec = doJSON(t, router, http.MethodPatch, "/api/v1/cart/items", sessionID, update)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(0), decodeData(t, rec)["item_count"])

	// Unknown variant add fails validation.
	bad := map[string]any{
		"product_id": product.ID,
		"color":      product.Colors[0].Name,
		"size":       "XXXS",
		"quantity":   1,
	}
	rec = doJSON(t, router, http.MethodPost, "/api/v1/cart", sessionID, bad)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Unknown product is not found.
	bad["product_id"] = "no-such-product"
	bad["size"] = product.Sizes[0]
	rec = doJSON(t, router, http.MethodPost, "/api/v1/cart", sessionID, bad)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWishlistFlow(t *testing.T) {
	t.Parallel()

	router := testRouter(t)
	product := catalog.Default().All()[0]

	rec := doJSON(t, router, http.MethodGet, "/api/v1/wishlist", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	sessionID := rec.Header().Get(middleware.SessionIDHeader)
	require.NotEmpty(t, sessionID)

	body := map[string]any{"product_id": product.ID}
	rec = doJSON(t, router, http.MethodPost, "/api/v1/wishlist", sessionID, body)
	require.Equal(t, http.StatusOK, rec.Code)

	// Saving again stays a single entry.
	rec = doJSON(t, router, http.MethodPost, "/api/v1/wishlist", sessionID, body)
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeData(t, rec)
	assert.Len(t, data["product_ids"], 1)

	rec = doJSON(t, router, http.MethodDelete, "/api/v1/wishlist/"+product.ID, sessionID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data = decodeData(t, rec)
	assert.Empty(t, data["product_ids"])

	// Unknown product cannot be saved.
	rec = doJSON(t, router, http.MethodPost, "/api/v1/wishlist", sessionID, map[string]any{"product_id": "nope"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCheckoutFlow(t *testing.T) {
	t.Parallel()

	router := testRouter(t)
	cat := catalog.Default()

	var product catalog.Product
	for _, p := range cat.All() {
		if p.InStock {
			product = p
			break
		}
	}
	require.NotEmpty(t, product.ID)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/cart", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	sessionID := rec.Header().Get(middleware.SessionIDHeader)

	address := map[string]any{
		"full_name":   "Ayesha Khan",
		"phone":       "+919876543210",
		"line1":       "14 Rose Garden Road",
		"city":        "Hyderabad",
		"state":       "Telangana",
		"postal_code": "500001",
	}

	// Checkout with an empty cart is rejected.
	rec = doJSON(t, router, http.MethodPost, "/api/v1/checkout", sessionID, map[string]any{"address": address})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	add := map[string]any{
		"product_id": product.ID,
		"color":      product.Colors[0].Name,
		"size":       product.Sizes[0],
		"quantity":   1,
	}
	rec = doJSON(t, router, http.MethodPost, "/api/v1/cart", sessionID, add)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/checkout", sessionID, map[string]any{"address": address})
	require.Equal(t, http.StatusCreated, rec.Code)
	order := decodeData(t, rec)
	assert.NotEmpty(t, order["number"])
	wantTotal := order["subtotal_paise"].(float64) + order["shipping_paise"].(float64) + order["tax_paise"].(float64)
	assert.Equal(t, wantTotal, order["total_paise"])
	assert.NotZero(t, order["tax_paise"])

	// The cart is cleared and the order shows up in history.
	rec = doJSON(t, router, http.MethodGet, "/api/v1/cart", sessionID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(0), decodeData(t, rec)["item_count"])

	rec = doJSON(t, router, http.MethodGet, "/api/v1/orders", sessionID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), decodeData(t, rec)["count"])

	// A second order, then page the history down to one.
	rec = doJSON(t, router, http.MethodPost, "/api/v1/cart", sessionID, add)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, router, http.MethodPost, "/api/v1/checkout", sessionID, map[string]any{"address": address})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/orders", sessionID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(2), decodeData(t, rec)["count"])

	rec = doJSON(t, router, http.MethodGet, "/api/v1/orders?limit=1", sessionID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), decodeData(t, rec)["count"])

	rec = doJSON(t, router, http.MethodGet, "/api/v1/orders?limit=abc", sessionID, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSessionsAreIsolated(t *testing.T) {
	t.Parallel()

	router := testRouter(t)
	cat := catalog.Default()

	var product catalog.Product
	for _, p := range cat.All() {
		if p.InStock {
			product = p
			break
		}
	}

	recA := doJSON(t, router, http.MethodGet, "/api/v1/cart", "", nil)
	sessionA := recA.Header().Get(middleware.SessionIDHeader)
	recB := doJSON(t, router, http.MethodGet, "/api/v1/cart", "", nil)
	sessionB := recB.Header().Get(middleware.SessionIDHeader)
	require.NotEqual(t, sessionA, sessionB)

	add := map[string]any{
		"product_id": product.ID,
		"color":      product.Colors[0].Name,
		"size":       product.Sizes[0],
		"quantity":   2,
	}
	rec := doJSON(t, router, http.MethodPost, "/api/v1/cart", sessionA, add)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/cart", sessionB, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(0), decodeData(t, rec)["item_count"])
}
