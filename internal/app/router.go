package app

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"

	"github.com/jiudi-gallery/jiudi-gallery/internal/auth"
	"github.com/jiudi-gallery/jiudi-gallery/internal/catalog/items"
	"github.com/jiudi-gallery/jiudi-gallery/internal/catalog/products"
	"github.com/jiudi-gallery/jiudi-gallery/internal/catalog/suppliers"
	"github.com/jiudi-gallery/jiudi-gallery/internal/contact"
	"github.com/jiudi-gallery/jiudi-gallery/internal/dashboard"
	"github.com/jiudi-gallery/jiudi-gallery/internal/sales/customers"
	"github.com/jiudi-gallery/jiudi-gallery/internal/sales/orders"
	"github.com/jiudi-gallery/jiudi-gallery/internal/storefront"
)

// RouterParams aggregates the handlers mounted on the HTTP router.
type RouterParams struct {
	Middleware []func(http.Handler) http.Handler

	Auth       *auth.Handler
	Products   *products.Handler
	Items      *items.Handler
	Suppliers  *suppliers.Handler
	Customers  *customers.Handler
	Orders     *orders.Handler
	Dashboard  *dashboard.Handler
	Storefront *storefront.Handler
	Contact    *contact.Handler
}

// NewRouter assembles the full route tree. Admin routes sit behind the
// session check; storefront and contact submission stay public with a
// tighter rate limit.
func NewRouter(p RouterParams) http.Handler {
	r := chi.NewRouter()
	for _, mw := range p.Middleware {
		r.Use(mw)
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			p.Auth.MountRoutes(r)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(auth.RequireAdmin)
			r.Route("/dashboard", p.Dashboard.MountRoutes)
			r.Route("/products", p.Products.MountRoutes)
			r.Route("/items", p.Items.MountRoutes)
			r.Route("/suppliers", p.Suppliers.MountRoutes)
			r.Route("/customers", p.Customers.MountRoutes)
			r.Route("/sales-orders", p.Orders.MountRoutes)
			r.Route("/inquiries", p.Contact.MountAdminRoutes)
		})

		r.Route("/web", func(r chi.Router) {
			r.Use(httprate.Limit(30, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP)))
			p.Storefront.MountRoutes(r)
			r.Route("/contact", p.Contact.MountPublicRoutes)
		})
	})

	return r
}
