package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/noormodest/storefront-backend/api/routes"
	cartsvc "github.com/noormodest/storefront-backend/internal/cart"
	"github.com/noormodest/storefront-backend/internal/catalog"
	checkoutsvc "github.com/noormodest/storefront-backend/internal/checkout"
	wishlistsvc "github.com/noormodest/storefront-backend/internal/wishlist"
	"github.com/noormodest/storefront-backend/pkg/blobstore"
	"github.com/noormodest/storefront-backend/pkg/config"
	"github.com/noormodest/storefront-backend/pkg/logger"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	blobs, err := newBlobStore(context.Background(), cfg, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap blob store", err)
		os.Exit(1)
	}
	defer func() {
		if err := blobs.Close(); err != nil {
			logg.Error(context.Background(), "error closing blob store", err)
		}
	}()

	cat := catalog.Default()

	cartMgr, err := cartsvc.NewManager(blobs, cfg.Cart.MaxQtyPerLine, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart manager", err)
		os.Exit(1)
	}

	wishlistMgr, err := wishlistsvc.NewManager(blobs, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create wishlist manager", err)
		os.Exit(1)
	}

	checkoutSvc, err := checkoutsvc.NewService(blobs, cfg.Checkout, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"storage":  cfg.Storage.Driver,
		"products": cat.Len(),
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, blobs, cat, cartMgr, wishlistMgr, checkoutSvc),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

type closableStore interface {
	blobstore.Store
	Close() error
}

func newBlobStore(ctx context.Context, cfg *config.Config, logg *logger.Logger) (closableStore, error) {
	if cfg.Storage.IsRedis() {
		return blobstore.NewRedis(ctx, cfg.Redis, logg)
	}
	return blobstore.NewSQLite(ctx, cfg.Storage, logg)
}
