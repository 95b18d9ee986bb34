package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danielcarreno/foodrush-backend/api/controllers"
	"github.com/danielcarreno/foodrush-backend/api/middleware"
	"github.com/danielcarreno/foodrush-backend/internal/cart"
	"github.com/danielcarreno/foodrush-backend/internal/catalog"
	"github.com/danielcarreno/foodrush-backend/internal/orders"
	"github.com/danielcarreno/foodrush-backend/pkg/config"
	"github.com/danielcarreno/foodrush-backend/pkg/geocode"
	"github.com/danielcarreno/foodrush-backend/pkg/logger"
)

// Deps carries everything the router wires into handlers. GeocodeClient and
// the Redis entry in Pingers may be nil.
type Deps struct {
	Config        *config.Config
	Logger        *logger.Logger
	Pingers       map[string]controllers.Pinger
	Sessions      *cart.Manager
	Products      *catalog.ProductRepository
	Orders        orders.Service
	GeocodeClient *geocode.Client
	Registry      *prometheus.Registry
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.Pingers))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Customer(cfg.App.DefaultCustomerID, logg))

		r.Route("/restaurants", func(r chi.Router) {
			r.Get("/", controllers.RestaurantList())
			r.Get("/{restaurantId}", controllers.RestaurantDetail(logg))
			r.Get("/{restaurantId}/products", controllers.RestaurantProducts(deps.Products, logg))
		})
		r.Get("/categories", controllers.CategoryList())
		r.Get("/promotions", controllers.PromotionList())

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(deps.Sessions, logg))
			r.Delete("/", controllers.CartClear(deps.Sessions, logg))
			r.Post("/items", controllers.CartAddItem(deps.Sessions, deps.Products, logg))
			r.Delete("/items/{itemId}", controllers.CartRemoveItem(deps.Sessions, logg))
		})

		r.Post("/checkout", controllers.Checkout(deps.Orders, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.OrderList(deps.Orders, logg))
			r.Get("/{orderId}", controllers.OrderDetail(deps.Orders, logg))
		})

		r.Route("/vendor/orders", func(r chi.Router) {
			r.Get("/", controllers.VendorOpenOrders(deps.Orders, logg))
			r.Patch("/{orderId}/status", controllers.VendorUpdateOrderStatus(deps.Orders, logg))
		})

		r.Get("/geocode", controllers.GeocodeAddress(deps.GeocodeClient, logg))
	})

	return r
}
