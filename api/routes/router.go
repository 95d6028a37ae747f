package routes

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/orderdesk/api/controllers"
	"github.com/angelmondragon/orderdesk/api/middleware"
	"github.com/angelmondragon/orderdesk/api/responses"
	"github.com/angelmondragon/orderdesk/pkg/config"
	"github.com/angelmondragon/orderdesk/pkg/db"
	pkgerrors "github.com/angelmondragon/orderdesk/pkg/errors"
	"github.com/angelmondragon/orderdesk/pkg/logger"
	"github.com/angelmondragon/orderdesk/pkg/metrics"
	"github.com/angelmondragon/orderdesk/pkg/redis"
)

// Infra carries the shared clients the router needs. Redis and the metrics
// fields are optional.
type Infra struct {
	DB          db.Pinger
	Redis       *redis.Client
	Gatherer    prometheus.Gatherer
	HTTPMetrics *metrics.HTTPMetrics
}

func NewRouter(cfg *config.Config, logg *logger.Logger, infra Infra, svc Services) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(infra.HTTPMetrics),
		middleware.SecureHeaders(cfg.App.IsProd()),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		responses.WriteError(req.Context(), nil, w, pkgerrors.New(pkgerrors.CodeNotFound,
			fmt.Sprintf("No handler found for %s %s", req.Method, req.URL.Path)))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		err := pkgerrors.New(pkgerrors.CodeMethod, fmt.Sprintf("Method %s not supported", req.Method))
		responses.WriteError(req.Context(), nil, w, err)
	})

	var (
		idempotencyStore redis.IdempotencyStore
		rateLimitStore   redis.RateLimitStore
	)
	readiness := []controllers.Dependency{{Name: "database", Pinger: infra.DB}}
	if infra.Redis != nil {
		idempotencyStore = infra.Redis
		rateLimitStore = infra.Redis
		readiness = append(readiness, controllers.Dependency{Name: "redis", Pinger: infra.Redis})
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readiness...))
	})

	if cfg.Metrics.Enabled && infra.Gatherer != nil {
		r.Method(http.MethodGet, cfg.Metrics.Path, promhttp.HandlerFor(infra.Gatherer, promhttp.HandlerOpts{}))
	}

	writePolicy := middleware.NewWriteRateLimitPolicy(
		"writes",
		cfg.RateLimit.WriteWindow,
		cfg.RateLimit.WriteIPLimit,
		cfg.RateLimit.WriteEmailLimit,
	)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.ReadLimit(cfg.RateLimit.ReadPerMinute, logg))
		r.Use(middleware.WriteRateLimit(writePolicy, rateLimitStore, logg))
		r.Use(middleware.Idempotency(idempotencyStore, cfg.Idempotency.TTL, logg))

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", controllers.ListCustomers(svc.Customers, logg))
			r.Post("/", controllers.CreateCustomer(svc.Customers, logg))
			r.Get("/{id}", controllers.GetCustomer(svc.Customers, logg))
			r.Put("/{id}", controllers.UpdateCustomer(svc.Customers, logg))
			r.Delete("/{id}", controllers.DeleteCustomer(svc.Customers, logg))
		})

		r.Route("/suppliers", func(r chi.Router) {
			r.Get("/", controllers.ListSuppliers(svc.Suppliers, logg))
			r.Post("/", controllers.CreateSupplier(svc.Suppliers, logg))
			r.Get("/{id}", controllers.GetSupplier(svc.Suppliers, logg))
			r.Put("/{id}", controllers.UpdateSupplier(svc.Suppliers, logg))
			r.Delete("/{id}", controllers.DeleteSupplier(svc.Suppliers, logg))
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", controllers.ListUsers(svc.Users, logg))
			r.Post("/", controllers.CreateUser(svc.Users, logg))
			r.Get("/{id}", controllers.GetUser(svc.Users, logg))
			r.Put("/{id}", controllers.UpdateUser(svc.Users, logg))
			r.Patch("/{id}", controllers.PatchUser(svc.Users, logg))
			r.Delete("/{id}", controllers.DeleteUser(svc.Users, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(svc.Products, logg))
			r.Post("/", controllers.CreateProduct(svc.Products, logg))
			r.Get("/{id}", controllers.GetProduct(svc.Products, logg))
			r.Put("/{id}", controllers.UpdateProduct(svc.Products, logg))
			r.Delete("/{id}", controllers.DeleteProduct(svc.Products, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.ListOrders(svc.Orders, logg))
			r.Post("/", controllers.CreateOrder(svc.Orders, logg))
			r.Get("/customer/{customerId}", controllers.ListCustomerOrders(svc.Orders, logg))
			r.Get("/{id}", controllers.GetOrder(svc.Orders, logg))
			r.Put("/{id}", controllers.UpdateOrder(svc.Orders, logg))
			r.Delete("/{id}", controllers.DeleteOrder(svc.Orders, logg))
		})

		r.Route("/order-items", func(r chi.Router) {
			r.Get("/", controllers.ListOrderItems(svc.OrderItems, logg))
			r.Post("/order/{orderId}", controllers.AddOrderItem(svc.OrderItems, logg))
			r.Get("/{id}", controllers.GetOrderItem(svc.OrderItems, logg))
			r.Put("/{id}", controllers.UpdateOrderItem(svc.OrderItems, logg))
			r.Delete("/{id}", controllers.DeleteOrderItem(svc.OrderItems, logg))
		})
	})

	return r
}
