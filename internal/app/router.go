package app

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/linemk/shop-dashboard/internal/app/handlers"
	"github.com/linemk/shop-dashboard/internal/jwt-new/jwtmiddleware"
	"github.com/linemk/shop-dashboard/internal/lib/logger/handlers/urllog"
	"github.com/linemk/shop-dashboard/internal/service"
)

type RouterConfig struct {
	PingMessage    string
	AllowedOrigins []string
	// JWTSecret: пустой секрет оставляет админские маршруты открытыми
	JWTSecret     string
	UploadDir     string
	PublicPath    string
	MaxUploadSize int64
}

type Services struct {
	Customers  service.CustomerService
	Products   service.ProductService
	Orders     service.OrderService
	Categories service.CategoryService
	Uploads    service.UploadService
	Auth       service.AuthServiceInterface
}

func NewRouter(log *slog.Logger, cfg RouterConfig, svc Services) http.Handler {
	router := chi.NewRouter()
	// настройка middleware
	router.Use(middleware.RequestID)
	router.Use(urllog.CustomLoggerMiddleware(log))
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// админские маршруты закрываются JWT только при заданном секрете
	admin := func(r chi.Router) chi.Router {
		if cfg.JWTSecret == "" {
			return r
		}
		return r.With(jwtmiddleware.NewJWTMiddleware(cfg.JWTSecret))
	}

	router.Route("/api", func(r chi.Router) {
		r.Get("/ping", handlers.PingHandler(log, cfg.PingMessage))
		r.Get("/demo", handlers.DemoHandler(log))
		r.Post("/auth", handlers.AuthHandler(log, svc.Auth))

		// витрина: чтение каталога, регистрация покупателя, оформление заказа
		r.Get("/products", handlers.ListProductsHandler(log, svc.Products))
		r.Get("/products/{id}", handlers.GetProductHandler(log, svc.Products))
		r.Get("/categories", handlers.ListCategoriesHandler(log, svc.Categories))
		r.Get("/categories/{id}", handlers.GetCategoryHandler(log, svc.Categories))
		r.Post("/customers", handlers.CreateCustomerHandler(log, svc.Customers))
		r.Post("/orders", handlers.PlaceOrderHandler(log, svc.Orders))

		r.Group(func(r chi.Router) {
			r = admin(r)

			r.Post("/upload", handlers.UploadHandler(log, svc.Uploads, cfg.MaxUploadSize))
			r.Delete("/upload", handlers.DeleteUploadHandler(log, svc.Uploads))

			r.Get("/customers", handlers.ListCustomersHandler(log, svc.Customers))
			r.Get("/customers/{id}", handlers.GetCustomerHandler(log, svc.Customers))
			r.Put("/customers/{id}", handlers.UpdateCustomerHandler(log, svc.Customers))
			r.Delete("/customers/{id}", handlers.DeleteCustomerHandler(log, svc.Customers))

			r.Post("/products", handlers.CreateProductHandler(log, svc.Products))
			r.Put("/products/{id}", handlers.UpdateProductHandler(log, svc.Products))
			r.Delete("/products/{id}", handlers.DeleteProductHandler(log, svc.Products))

			r.Get("/orders", handlers.ListOrdersHandler(log, svc.Orders))
			r.Get("/orders/{id}", handlers.GetOrderHandler(log, svc.Orders))
			r.Put("/orders/{id}", handlers.UpdateOrderHandler(log, svc.Orders))
			r.Delete("/orders/{id}", handlers.DeleteOrderHandler(log, svc.Orders))

			r.Post("/categories", handlers.CreateCategoryHandler(log, svc.Categories))
			r.Put("/categories/{id}", handlers.UpdateCategoryHandler(log, svc.Categories))
			r.Delete("/categories/{id}", handlers.DeleteCategoryHandler(log, svc.Categories))
		})
	})

	if cfg.UploadDir != "" && cfg.PublicPath != "" {
		public := "/" + strings.Trim(cfg.PublicPath, "/")
		fs := http.StripPrefix(public+"/", http.FileServer(http.Dir(cfg.UploadDir)))
		router.Get(public+"/*", fs.ServeHTTP)
	}

	return router
}
