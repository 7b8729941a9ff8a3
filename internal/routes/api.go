package routes

import (
	"net/http"

	"github.com/mesa-pos/mesa/internal/middleware"
	"github.com/mesa-pos/mesa/internal/router"
)

// RegisterAPIRoutes registers the customer and waiter JSON API. All cart and
// checkout routes run behind the session middleware so every request is tied
// to one table-side session. Checkout carries a strict rate limit since it
// reaches the kitchen backend.
func RegisterAPIRoutes(r *router.Router, deps APIDeps) {
	// Menu catalog (no session needed)
	r.Get("/api/menu", deps.MenuHandler.List)
	r.Get("/api/menu/{id}", deps.MenuHandler.Get)

	// Session cart
	session := r.Group(middleware.Session)
	session.Get("/api/cart", deps.CartHandler.Get)
	session.Delete("/api/cart", deps.CartHandler.Clear)
	session.Post("/api/cart/items", deps.CartHandler.AddItem, middleware.MaxBodySize(middleware.SmallMaxBodySize))
	session.Put("/api/cart/items/{key}", deps.CartHandler.UpdateLine, middleware.MaxBodySize(middleware.SmallMaxBodySize))
	session.Delete("/api/cart/items/{key}", deps.CartHandler.RemoveLine)
	session.Post("/api/cart/voucher", deps.CartHandler.ApplyVoucher, middleware.MaxBodySize(middleware.SmallMaxBodySize))
	session.Delete("/api/cart/voucher", deps.CartHandler.RemoveVoucher)

	// Order submission
	session.Post("/api/checkout", deps.CheckoutHandler.Submit,
		middleware.MaxBodySize(middleware.SmallMaxBodySize),
		middleware.RateLimit(middleware.StrictRateLimiterConfig()),
	)

	// Waiter routes
	r.Put("/api/menu/{id}/availability", deps.MenuHandler.SetAvailability, middleware.MaxBodySize(middleware.SmallMaxBodySize))
	r.Get("/api/tables", deps.TableHandler.List)
	r.Post("/api/tables/{id}/occupy", deps.TableHandler.Occupy)
	r.Post("/api/tables/{id}/bill", deps.TableHandler.OpenBill)
	r.Post("/api/tables/{id}/settle", deps.TableHandler.Settle, middleware.MaxBodySize(middleware.SmallMaxBodySize))

	// Business summary
	r.Get("/api/dashboard/summary", deps.DashboardHandler.Summary)
}

// RegisterOpsRoutes registers health and metrics endpoints.
func RegisterOpsRoutes(r *router.Router, deps OpsDeps) {
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	if deps.Metrics != nil {
		r.Handle(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}
}
