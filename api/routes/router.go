package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/noormodest/storefront-backend/api/controllers"
	"github.com/noormodest/storefront-backend/api/middleware"
	cartsvc "github.com/noormodest/storefront-backend/internal/cart"
	"github.com/noormodest/storefront-backend/internal/catalog"
	checkoutsvc "github.com/noormodest/storefront-backend/internal/checkout"
	wishlistsvc "github.com/noormodest/storefront-backend/internal/wishlist"
	"github.com/noormodest/storefront-backend/pkg/blobstore"
	"github.com/noormodest/storefront-backend/pkg/config"
	"github.com/noormodest/storefront-backend/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	blobs blobstore.Store,
	cat *catalog.Catalog,
	cartMgr *cartsvc.Manager,
	wishlistMgr *wishlistsvc.Manager,
	checkoutSvc *checkoutsvc.Service,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.CORS(cfg.CORS),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, blobs, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(cat, logg))
			r.Get("/{slug}", controllers.GetProduct(cat, logg))
		})

		r.Get("/categories", controllers.ListCategories(cat, logg))
		r.Get("/categories/{slug}/facets", controllers.CategoryFacets(cat, logg))

		r.Route("/collections", func(r chi.Router) {
			r.Get("/featured", controllers.FeaturedProducts(cat, logg))
			r.Get("/new-arrivals", controllers.NewArrivalProducts(cat, logg))
			r.Get("/sale", controllers.SaleProducts(cat, logg))
		})

		// Session-scoped state below.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Session(logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.GetCart(cartMgr, logg))
				r.Post("/", controllers.AddCartItem(cartMgr, cat, logg))
				r.Delete("/", controllers.ClearCart(cartMgr, logg))
				r.Patch("/items", controllers.UpdateCartItem(cartMgr, logg))
				r.Delete("/items", controllers.RemoveCartItem(cartMgr, logg))
			})

			r.Route("/wishlist", func(r chi.Router) {
				r.Get("/", controllers.GetWishlist(wishlistMgr, cat, logg))
				r.Post("/", controllers.AddWishlistItem(wishlistMgr, cat, logg))
				r.Delete("/{productId}", controllers.RemoveWishlistItem(wishlistMgr, cat, logg))
			})

			r.Post("/checkout", controllers.PlaceOrder(checkoutSvc, cartMgr, logg))
			r.Get("/orders", controllers.ListOrders(checkoutSvc, logg))
		})
	})

	return r
}
