package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	_ "github.com/rogerio-castellano/erp-analytics/docs"
	"github.com/rogerio-castellano/erp-analytics/internal/http/handlers"
	mw "github.com/rogerio-castellano/erp-analytics/internal/http/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

func NewRouter() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", handlers.HealthHandler)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Group(func(r chi.Router) {
		r.Use(mw.RateLimit)

		r.Post("/register", handlers.RegisterHandler)
		r.Post("/login", handlers.LoginHandler)

		r.Group(func(r chi.Router) {
			r.Use(mw.Auth)

			r.Route("/products", func(r chi.Router) {
				r.Post("/", handlers.CreateProductHandler)
				r.Get("/", handlers.GetProductsHandler)
				r.Get("/search", handlers.FilterProductsHandler)
				r.Get("/summary", handlers.InventorySummaryHandler)
				r.Get("/{id}", handlers.GetProductByIDHandler)
				r.Put("/{id}", handlers.UpdateProductHandler)
				r.Delete("/{id}", handlers.DeleteProductHandler)
				r.Post("/{id}/adjust", handlers.AdjustQuantityHandler)
			})

			r.Route("/orders", func(r chi.Router) {
				r.Post("/", handlers.CreateOrderHandler)
				r.Get("/", handlers.GetOrdersHandler)
				r.Get("/search", handlers.FilterOrdersHandler)
				r.Get("/summary", handlers.OrderSummaryHandler)
				r.Get("/{id}", handlers.GetOrderByIDHandler)
				r.Put("/{id}", handlers.UpdateOrderHandler)
				r.Patch("/{id}/status", handlers.UpdateOrderStatusHandler)
				r.Delete("/{id}", handlers.DeleteOrderHandler)
			})

			r.Route("/suppliers", func(r chi.Router) {
				r.Post("/", handlers.CreateSupplierHandler)
				r.Get("/", handlers.GetSuppliersHandler)
				r.Get("/search", handlers.FilterSuppliersHandler)
				r.Get("/summary", handlers.SupplierSummaryHandler)
				r.Get("/{id}", handlers.GetSupplierByIDHandler)
				r.Put("/{id}", handlers.UpdateSupplierHandler)
				r.Delete("/{id}", handlers.DeleteSupplierHandler)
			})

			r.Get("/dashboard", handlers.DashboardHandler)
			r.Get("/analytics", handlers.AnalyticsHandler)
			r.Get("/analytics/export", handlers.ExportAnalyticsHandler)
		})
	})

	return r
}
