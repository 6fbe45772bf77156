package checkout

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noormodest/storefront-backend/internal/cart"
	"github.com/noormodest/storefront-backend/internal/catalog"
	"github.com/noormodest/storefront-backend/pkg/blobstore"
	"github.com/noormodest/storefront-backend/pkg/config"
)

func testCheckoutConfig() config.CheckoutConfig {
	return config.CheckoutConfig{
		FlatShippingPaise:          9900,
		FreeShippingThresholdPaise: 99900,
		TaxRateBasisPoints:         1800,
	}
}

func setup(t *testing.T) (*Service, *cart.Manager) {
	t.Helper()
	store, err := blobstore.NewSQLite(context.Background(), config.StorageConfig{
		Driver:     config.StorageDriverSQLite,
		SQLitePath: fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()),
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})

	svc, err := NewService(store, testCheckoutConfig(), nil)
	require.NoError(t, err)
	cartMgr, err := cart.NewManager(store, 5, nil)
	require.NoError(t, err)
	return svc, cartMgr
}

func testAddress() Address {
	return Address{
		FullName:   "Ayesha Khan",
		Phone:      "+919876543210",
		Line1:      "14 Rose Garden Road",
		City:       "Hyderabad",
		State:      "Telangana",
		PostalCode: "500001",
	}
}

func testProduct(id string, pricePaise int64) catalog.Product {
	return catalog.Product{
		ID:         id,
		Name:       "Test " + id,
		PricePaise: pricePaise,
		Currency:   "INR",
		Colors:     []catalog.ColorOption{{Name: "Black", Hex: "#000000"}},
		Sizes:      []string{"M"},
		InStock:    true,
	}
}

func TestShippingWaivedAboveThreshold(t *testing.T) {
	t.Parallel()

	svc, _ := setup(t)

	assert.Equal(t, int64(9900), svc.ShippingPaise(50000))
	assert.Equal(t, int64(9900), svc.ShippingPaise(99899))
	assert.Zero(t, svc.ShippingPaise(99900))
	assert.Zero(t, svc.ShippingPaise(500000))
}

func TestTaxAppliedToSubtotal(t *testing.T) {
	t.Parallel()

	svc, _ := setup(t)

	assert.Equal(t, int64(18000), svc.TaxPaise(100000))
	assert.Equal(t, int64(198), svc.TaxPaise(1099))
	assert.Zero(t, svc.TaxPaise(0))
}

func TestPlaceOrderRejectsEmptyCart(t *testing.T) {
	t.Parallel()

	svc, cartMgr := setup(t)
	ctx := context.Background()

	c, err := cartMgr.Load(ctx, "sess-empty")
	require.NoError(t, err)

	_, err = svc.PlaceOrder(ctx, c, testAddress())
	assert.Error(t, err)
}

func TestPlaceOrderPricesAndClearsCart(t *testing.T) {
	t.Parallel()

	svc, cartMgr := setup(t)
	ctx := context.Background()

	c, err := cartMgr.Load(ctx, "sess-place")
	require.NoError(t, err)
	black := catalog.ColorOption{Name: "Black", Hex: "#000000"}
	require.NoError(t, c.AddItem(ctx, testProduct("p1", 40000), black, "M", 2))

	order, err := svc.PlaceOrder(ctx, c, testAddress())
	require.NoError(t, err)

	assert.Equal(t, int64(80000), order.SubtotalPaise)
	assert.Equal(t, int64(9900), order.ShippingPaise)
	assert.Equal(t, int64(14400), order.TaxPaise)
	assert.Equal(t, int64(104300), order.TotalPaise)
	assert.True(t, strings.HasPrefix(order.Number, "NMW-"))
	assert.Len(t, order.Items, 1)
	assert.WithinDuration(t, time.Now().UTC(), order.PlacedAt, time.Minute)

	// The cart empties once the order is recorded.
	assert.Zero(t, c.ItemCount())
	reloaded, err := cartMgr.Load(ctx, "sess-place")
	require.NoError(t, err)
	assert.Empty(t, reloaded.Items())
}

func TestPlaceOrderAboveThresholdShipsFree(t *testing.T) {
	t.Parallel()

	svc, cartMgr := setup(t)
	ctx := context.Background()

	c, err := cartMgr.Load(ctx, "sess-free")
	require.NoError(t, err)
	black := catalog.ColorOption{Name: "Black", Hex: "#000000"}
	require.NoError(t, c.AddItem(ctx, testProduct("p1", 249900), black, "M", 1))

	order, err := svc.PlaceOrder(ctx, c, testAddress())
	require.NoError(t, err)

	assert.Zero(t, order.ShippingPaise)
	assert.Equal(t, int64(44982), order.TaxPaise)
	assert.Equal(t, int64(294882), order.TotalPaise)
}

func TestListOrdersNewestFirst(t *testing.T) {
	t.Parallel()

	svc, cartMgr := setup(t)
	ctx := context.Background()

	c, err := cartMgr.Load(ctx, "sess-history")
	require.NoError(t, err)
	black := catalog.ColorOption{Name: "Black", Hex: "#000000"}

	require.NoError(t, c.AddItem(ctx, testProduct("p1", 50000), black, "M", 1))
	first, err := svc.PlaceOrder(ctx, c, testAddress())
	require.NoError(t, err)

	require.NoError(t, c.AddItem(ctx, testProduct("p2", 70000), black, "M", 1))
	second, err := svc.PlaceOrder(ctx, c, testAddress())
	require.NoError(t, err)

	orders, err := svc.ListOrders(ctx, "sess-history")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID)
	assert.Equal(t, first.ID, orders[1].ID)
}

func TestListOrdersEmptyHistory(t *testing.T) {
	t.Parallel()

	svc, _ := setup(t)

	orders, err := svc.ListOrders(context.Background(), "sess-none")
	require.NoError(t, err)
	assert.Empty(t, orders)
}
